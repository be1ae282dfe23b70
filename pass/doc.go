// Package pass captures per-pass resource dependencies during the setup
// phase and builds the live-pass DAG and its topological schedule.
//
// Dependencies are recorded as flat CSR-style arrays: one shared List of
// resource handles per dependency kind (image-read, image-write,
// buffer-read, buffer-write), with Begin/Length giving each pass its
// contiguous slice. This mirrors the render graph's data-oriented layout
// end to end — no per-pass slice allocation, one growing buffer per kind.
package pass
