// Package barrier builds the per-pass synchronization plan: for every
// resource a scheduled pass touches, it compares that pass's desired
// access against the physical slot's last recorded use and emits the
// ops needed to make the transition safe — an aliasing op when the slot
// changes logical owner, a transition op when access or usage bits
// change, and a UAV op when a prior write is followed by another
// storage access on the same slot.
package barrier
