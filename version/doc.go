// Package version assigns per-resource version numbers to every read and
// write recorded during setup, then builds the producer index that maps a
// versioned handle back to the pass that produced it.
//
// Both stages run in a single forward sweep over passes in declaration
// order, matching the setup callbacks' own order — a resource's version
// counter only ever advances, never rewinds, so replaying the sweep is
// deterministic given the same dependency lists.
package version
