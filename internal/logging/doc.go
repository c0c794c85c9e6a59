// Package logging provides a unified logging interface for the benchmark.
// It abstracts the underlying logging implementation so the executor, the
// harness and the metrics server log the same way regardless of backend.
package logging
