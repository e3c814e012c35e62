package baseline

import "github.com/suey1711/suypixel/jpeg/common"

// ycbcrToRGB converts one full-range BT.601 YCbCr sample triple to RGB,
// per §4.7's exact coefficients.
func ycbcrToRGB(y, cb, cr byte) (r, g, b byte) {
	Y := float64(y)
	Cb := float64(cb) - 128
	Cr := float64(cr) - 128

	rf := Y + 1.402*Cr
	gf := Y - 0.344136*Cb - 0.714136*Cr
	bf := Y + 1.772*Cb

	return byte(common.Clamp(int(rf+0.5), 0, 255)),
		byte(common.Clamp(int(gf+0.5), 0, 255)),
		byte(common.Clamp(int(bf+0.5), 0, 255))
}
