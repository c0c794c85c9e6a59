// Package benchmark sweeps block sizes over a pair of input matrices, times
// the sequential and parallel strategies for each size, and collects the
// results into an ordered Report.
//
// The harness never checks for cancellation inside a multiplication pass;
// the context is consulted between block sizes only.
package benchmark
