package blockmul

import "iter"

// Block is the square region of the output whose top-left cell is
// (Row, Col). It covers rows [Row, min(Row+Size, n)) and columns
// [Col, min(Col+Size, n)).
type Block struct {
	Row, Col, Size int
}

// Rows returns the half-open row range of b in an n×n matrix.
func (b Block) Rows(n int) (start, end int) {
	return b.Row, min(b.Row+b.Size, n)
}

// Cols returns the half-open column range of b in an n×n matrix.
func (b Block) Cols(n int) (start, end int) {
	return b.Col, min(b.Col+b.Size, n)
}

// Cells returns the number of output cells b covers in an n×n matrix.
func (b Block) Cells(n int) int {
	r0, r1 := b.Rows(n)
	c0, c1 := b.Cols(n)
	return (r1 - r0) * (c1 - c0)
}

// Blocks enumerates the blocks of an n×n matrix for block size r in row-major
// order of their top-left corner. It yields nothing when n <= 0, and panics
// when r < 1.
func Blocks(n, r int) iter.Seq[Block] {
	if r < 1 {
		panic(badBlockSize)
	}
	return func(yield func(Block) bool) {
		for row := 0; row < n; row += r {
			for col := 0; col < n; col += r {
				if !yield(Block{Row: row, Col: col, Size: r}) {
					return
				}
			}
		}
	}
}

// PerSide returns ⌈n/r⌉, the number of blocks along one edge.
func PerSide(n, r int) int {
	if n <= 0 {
		return 0
	}
	if r < 1 {
		panic(badBlockSize)
	}
	return (n + r - 1) / r
}

// Count returns ⌈n/r⌉², the number of blocks Blocks(n, r) yields.
func Count(n, r int) int {
	s := PerSide(n, r)
	return s * s
}

// LegacyCount returns ⌈n/r⌉·n, the block figure printed by the first
// version of the report. It is kept only for output compatibility.
func LegacyCount(n, r int) int {
	return PerSide(n, r) * max(n, 0)
}
