// Package cull computes the set of passes transitively required to
// produce a graph's declared outputs, via a reverse breadth-first search
// seeded from each output's producer and walked backward through read
// sites to their producers.
package cull
