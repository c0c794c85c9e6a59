package blockmul

const (
	badBlockSize = "blockmul: block size must be at least 1"
	badOrigin    = "blockmul: block origin outside the matrix"
	shortA       = "blockmul: insufficient length of a"
	shortB       = "blockmul: insufficient length of b"
	shortC       = "blockmul: insufficient length of c"
)

// ComputeBlock writes C[i,j] = Σ_k A[i,k]·B[k,j] for every cell of the block
// at (row, col) of size r. a, b and c are n×n row-major matrices. Cells
// outside the block are neither read from nor written to c.
//
// Arithmetic is plain int32 and wraps on overflow.
func ComputeBlock(a, b, c []int32, n, r, row, col int) {
	if r < 1 {
		panic(badBlockSize)
	}
	if row < 0 || col < 0 || row >= n || col >= n {
		panic(badOrigin)
	}
	checkLengths(a, b, c, n)

	rowEnd := min(row+r, n)
	colEnd := min(col+r, n)
	for i := row; i < rowEnd; i++ {
		ai := a[i*n : i*n+n]
		ci := c[i*n : i*n+n]
		for j := col; j < colEnd; j++ {
			var sum int32
			for k, aik := range ai {
				sum += aik * b[k*n+j]
			}
			ci[j] = sum
		}
	}
}

// ComputeSequential applies ComputeBlock to every block in enumeration order.
func ComputeSequential(a, b, c []int32, n, r int) {
	for blk := range Blocks(n, r) {
		ComputeBlock(a, b, c, n, r, blk.Row, blk.Col)
	}
}

// ComputeFull returns A×B computed with the unblocked triple loop. It is the
// reference the blocked strategies are checked against.
func ComputeFull(a, b []int32, n int) []int32 {
	c := make([]int32, n*n)
	if n == 0 {
		return c
	}
	checkLengths(a, b, c, n)
	for i := range n {
		for j := range n {
			var sum int32
			for k := range n {
				sum += a[i*n+k] * b[k*n+j]
			}
			c[i*n+j] = sum
		}
	}
	return c
}

func checkLengths(a, b, c []int32, n int) {
	nn := n * n
	if len(a) < nn {
		panic(shortA)
	}
	if len(b) < nn {
		panic(shortB)
	}
	if len(c) < nn {
		panic(shortC)
	}
}
