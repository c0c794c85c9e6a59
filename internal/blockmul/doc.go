// Package blockmul implements the block-partitioned kernel of the benchmark.
//
// The n×n output is split into r×r blocks (truncated at the right and bottom
// edges). Blocks are pairwise disjoint and cover every cell exactly once, so
// each one can be computed independently of the others. The package has no
// knowledge of concurrency; scheduling belongs to the executor.
package blockmul
