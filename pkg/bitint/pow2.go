/*
Package bitint provides power-of-2 bit manipulation helpers used for FFT
window sizing and buffer allocation.

All operations are O(1), allocation-free and safe to call from hot paths.
*/
package bitint

import "math/bits"

// NextPowerOfTwo returns the next power of 2 >= size. Powers of 2 are
// returned unchanged; zero and negative inputs return 1.
//
// The size-1 subtraction is what preserves exact powers of 2: without it,
// bits.Len of an exact power would point one position too high and the
// result would be doubled.
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return int(1 << bits.Len64(uint64(size-1)))
}

// IsPowerOfTwo reports whether n is a positive power of 2. Powers of 2 have
// exactly one bit set, so n&(n-1) clears to zero only for them.
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
