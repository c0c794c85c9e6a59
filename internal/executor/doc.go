// Package executor runs the block multiplication kernel under the two
// strategies the benchmark compares: every block in turn on the calling
// goroutine, or one goroutine per block joined before returning.
//
// The parallel strategy writes the shared output without locks. This is
// safe only because blockmul.Blocks yields pairwise disjoint blocks covering
// the output once; never hand overlapping blocks to two tasks.
package executor
