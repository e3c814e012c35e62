package baseline

// upsample replicates comp's plane — whose sampling density relative to
// the frame maximum is hMax/comp.spec.H horizontally and vMax/comp.spec.V
// vertically — up to full resolution by nearest-neighbor replication
// (§4.6), then crops the padded MCU grid down to the frame's true width
// and height.
func upsample(hMax, vMax, width, height int, comp *frameComponent) []byte {
	sx := hMax / comp.spec.H
	sy := vMax / comp.spec.V

	out := make([]byte, width*height)
	for y := 0; y < height; y++ {
		srcRow := (y / sy) * comp.planeW
		dstRow := y * width
		if sx == 1 {
			copy(out[dstRow:dstRow+width], comp.plane[srcRow:srcRow+width])
			continue
		}
		for x := 0; x < width; x++ {
			out[dstRow+x] = comp.plane[srcRow+x/sx]
		}
	}
	return out
}
