// Package conv provides checked integer conversions for decoded values.
//
// Wire formats carry every integer as int64. These helpers narrow them to
// the Go types of the syntax tree and report values that do not fit instead
// of truncating them silently.
package conv

import "math"

// Int64ToInt converts n to int.
// Reports false if n does not fit on this platform.
//
//go:inline
func Int64ToInt(n int64) (int, bool) {
	if n < math.MinInt || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}

// Int64ToByte converts n to a byte.
// Reports false if n is outside 0..255.
//
//go:inline
func Int64ToByte(n int64) (byte, bool) {
	if n < 0 || n > math.MaxUint8 {
		return 0, false
	}
	return byte(n), true
}

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
