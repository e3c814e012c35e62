package common

import "testing"

// TestIDCTZeroCoefficientsIsFlatGray confirms the all-zero block (no DC,
// no AC) decodes to the level-shift identity: a flat mid-gray block.
func TestIDCTZeroCoefficientsIsFlatGray(t *testing.T) {
	var coef [64]int32
	out := make([]byte, 64)
	IDCT(coef, out, 0, 8)
	for i, v := range out {
		if v != 128 {
			t.Errorf("out[%d] = %d, want 128", i, v)
		}
	}
}

// TestIDCTRespectsOffsetAndStride confirms the block is written at the
// given offset/stride without touching bytes outside its footprint, so
// one component plane's blocks can be decoded directly into position.
func TestIDCTRespectsOffsetAndStride(t *testing.T) {
	var coef [64]int32
	const stride = 24
	out := make([]byte, stride*16)
	for i := range out {
		out[i] = 0xAA
	}

	offset := 2*stride + 3
	IDCT(coef, out, offset, stride)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got := out[offset+y*stride+x]; got != 128 {
				t.Errorf("out[%d,%d] = %d, want 128", y, x, got)
			}
		}
	}
	// A byte just outside the block's row footprint must be untouched.
	if got := out[offset+0*stride+8]; got != 0xAA {
		t.Errorf("byte outside block footprint modified: got %d", got)
	}
}

// TestIDCTDCOnly checks a pure-DC block produces the expected uniform
// level-shifted value, per the arithmetic the fast DC-only path uses.
func TestIDCTDCOnly(t *testing.T) {
	var coef [64]int32
	coef[0] = 64
	out := make([]byte, 64)
	IDCT(coef, out, 0, 8)

	want := byte(136) // clamp(((64<<3+32)>>6)+128, 0, 255)
	for i, v := range out {
		if v != want {
			t.Errorf("out[%d] = %d, want %d", i, v, want)
		}
	}
}
