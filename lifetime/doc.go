// Package lifetime computes each resource's first/last used schedule
// index and greedily aliases transient resources onto shared physical
// slots. Two resources may share a slot only when they are exactly
// compatible (same format/size/usage/etc) and their [first, last]
// intervals do not overlap; imported resources are always given their
// own slot and never aliased.
package lifetime
