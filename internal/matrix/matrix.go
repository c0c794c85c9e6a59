package matrix

import (
	"math/rand/v2"

	apperrors "github.com/agbru/matbench/internal/errors"
)

const (
	// MinValue and MaxValue bound the generated elements.
	MinValue = -100
	MaxValue = 100

	// MaxSafeOrder is the largest order for which every product-sum of two
	// generated matrices fits in an int32: n * MaxValue² <= math.MaxInt32.
	// Above it, accumulation wraps silently.
	MaxSafeOrder = 214748
)

// Matrix is an N×N grid of int32 stored row-major: element (i,j) is
// Data[i*N+j].
type Matrix struct {
	N    int
	Data []int32
}

// New returns a zero-filled matrix of order n. It panics for a negative n.
func New(n int) Matrix {
	if n < 0 {
		panic("matrix: negative order")
	}
	return Matrix{N: n, Data: make([]int32, n*n)}
}

// FromSlice wraps data as a matrix of order n after checking its length.
func FromSlice(n int, data []int32) (Matrix, error) {
	m := Matrix{N: n, Data: data}
	if err := m.Validate("matrix"); err != nil {
		return Matrix{}, err
	}
	return m, nil
}

// At returns element (i,j).
func (m Matrix) At(i, j int) int32 { return m.Data[i*m.N+j] }

// Set stores v at (i,j).
func (m Matrix) Set(i, j int, v int32) { m.Data[i*m.N+j] = v }

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := Matrix{N: m.N, Data: make([]int32, len(m.Data))}
	copy(out.Data, m.Data)
	return out
}

// Zero resets every element to 0.
func (m Matrix) Zero() { clear(m.Data) }

// Validate reports a DimensionError when the order is not positive or the
// backing slice does not hold exactly N*N elements. name identifies the
// operand in the error.
func (m Matrix) Validate(name string) error {
	if m.N <= 0 {
		return apperrors.DimensionError{Operand: "n", Got: m.N}
	}
	if len(m.Data) != m.N*m.N {
		return apperrors.DimensionError{Operand: name, Want: m.N * m.N, Got: len(m.Data)}
	}
	return nil
}

// ValidateProduct checks the three operands of C = A×B: each must be valid
// and all must share the same order.
func ValidateProduct(a, b, c Matrix) error {
	if err := a.Validate("A"); err != nil {
		return err
	}
	if err := b.Validate("B"); err != nil {
		return err
	}
	if err := c.Validate("C"); err != nil {
		return err
	}
	if b.N != a.N {
		return apperrors.DimensionError{Operand: "B", Want: a.N, Got: b.N}
	}
	if c.N != a.N {
		return apperrors.DimensionError{Operand: "C", Want: a.N, Got: c.N}
	}
	return nil
}

// Equal reports whether a and b have the same order and elements.
func Equal(a, b Matrix) bool {
	return a.N == b.N && FirstDifference(a.Data, b.Data) < 0
}

// FirstDifference returns the first index at which want and got differ, or
// -1 when they are identical. A length mismatch is reported at the shorter
// length.
func FirstDifference(want, got []int32) int {
	n := min(len(want), len(got))
	for i := range n {
		if want[i] != got[i] {
			return i
		}
	}
	if len(want) != len(got) {
		return n
	}
	return -1
}

// NewSeed returns a fresh seed drawn from the runtime's random source.
func NewSeed() uint64 {
	return rand.Uint64()
}

// Generate returns an n×n matrix whose elements are drawn uniformly from
// [MinValue, MaxValue]. The same (n, seed) pair always yields the same matrix.
func Generate(n int, seed uint64) Matrix {
	m := New(n)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range m.Data {
		m.Data[i] = int32(rng.IntN(MaxValue-MinValue+1) + MinValue)
	}
	return m
}
