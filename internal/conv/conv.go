// Package conv provides checked integer narrowing for automaton identifiers.
//
// State, edge and node identifiers are stored in 32 bits. Overflowing them
// means the automaton outgrew its representation, which is a programming
// error, so these helpers panic instead of returning an error.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms cannot overflow the check itself.
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToInt32 converts n to int32.
// Panics if n is outside the int32 range.
//
//go:inline
func IntToInt32(n int) int32 {
	if n < math.MinInt32 || n > math.MaxInt32 {
		panic("integer overflow: int value out of int32 range")
	}
	return int32(n)
}

// Uint64ToInt converts n to int, saturating at math.MaxInt. Repetition
// counts are compared against configured limits, so saturation is safe there.
func Uint64ToInt(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
