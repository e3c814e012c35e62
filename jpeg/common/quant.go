package common

// ZigZag maps a zig-zag scan index (0..63, low to high frequency) to the
// natural row-major position within an 8x8 block, per spec §4.4.
var ZigZag = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// QuantTable holds the 64 divisors for one DQT slot, stored at their
// natural (post zig-zag) positions so block decode can index it directly
// by the same natural index it scatters coefficients into.
type QuantTable struct {
	Values  [64]int32
	Defined bool
}

// Dequantize multiplies each natural-order coefficient by the matching
// quantization table entry, in place.
func Dequantize(coef *[64]int32, q *QuantTable) {
	for i := 0; i < 64; i++ {
		coef[i] *= q.Values[i]
	}
}

// DivCeil computes ceil(a/b) for positive integers, used throughout the
// MCU/component geometry math (§3: component plane and MCU-count
// formulas all divide-and-round-up).
func DivCeil(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
