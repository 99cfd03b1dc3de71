package typesystem

import "golang.org/x/exp/constraints"

// maxOf returns the larger of two ordered values; used when folding member
// sizes into a struct/union's alignment, mirroring the teacher's reach for
// golang.org/x/exp generics helpers ahead of stdlib slices/maps adoption.
func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// align rounds n up to the next multiple of alignment (alignment must be a
// power of two); used by FinishStruct-adjacent layout computations.
func align[T constraints.Integer](n, alignment T) T {
	if alignment <= 0 {
		return n
	}
	return (n + alignment - 1) / alignment * alignment
}
