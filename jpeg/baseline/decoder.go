// Package baseline decodes sequential baseline (SOF0) JPEG streams into
// raw 8-bit grayscale or RGB pixel buffers.
package baseline

import (
	"github.com/suey1711/suypixel/jpeg/common"
)

// Image is the result of decoding one baseline JPEG stream. Pix is
// tightly packed, row-major, Width*Height bytes for a 1-component
// (grayscale) image or Width*Height*3 interleaved RGB bytes for a
// 3-component image.
type Image struct {
	Width  int
	Height int
	NComp  int
	Pix    []byte
	JFIF   *common.JFIFHeader // nil if the stream carried no APP0 JFIF segment
}

type frameComponent struct {
	spec   common.ComponentSpec
	plane  []byte
	planeW int
	planeH int
}

// Decoder accumulates the tables and frame structure built up while
// walking a stream's segments, then runs the entropy-coded scan once
// SOF0/DQT/DHT/DRI/SOS have all been seen.
type Decoder struct {
	sof    *common.SOF0Info
	jfif   *common.JFIFHeader
	quant  [4]common.QuantTable
	dc     [4]common.HuffmanTable
	ac     [4]common.HuffmanTable
	dcSet  [4]bool
	acSet  [4]bool
	ri     int
	comps  []frameComponent
	hMax   int
	vMax   int
	mcusX  int
	mcusY  int
}

// Decode parses and decodes one complete baseline JPEG stream.
func Decode(buf []byte) (*Image, error) {
	segs, err := common.Split(buf)
	if err != nil {
		return nil, err
	}

	d := &Decoder{}
	var sos *common.SOSInfo
	var entropy []byte

	for i := 0; i < len(segs); i++ {
		seg := segs[i]
		switch seg.Kind {
		case common.KindAPP0:
			jfif, ok, err := common.ParseAPP0JFIF(seg.Payload, seg.Offset)
			if err != nil {
				return nil, err
			}
			if ok {
				d.jfif = jfif
			}

		case common.KindSOF0:
			if d.sof != nil {
				return nil, common.Errf(common.MalformedContainer, seg.Offset, "more than one SOF segment")
			}
			sof, err := common.ParseSOF0(seg.Payload, seg.Offset)
			if err != nil {
				return nil, err
			}
			d.sof = sof
			d.initComponents()

		case common.KindSOFOther:
			return nil, common.Errf(common.UnsupportedFeature, seg.Offset, "SOF marker 0x%02X: only baseline sequential (SOF0) frames are supported", seg.Marker)

		case common.KindDQT:
			entries, err := common.ParseDQT(seg.Payload, seg.Offset)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				d.quant[e.Slot] = e.Table
			}

		case common.KindDHT:
			entries, err := common.ParseDHT(seg.Payload, seg.Offset)
			if err != nil {
				return nil, err
			}
			for _, e := range entries {
				if e.Class == 0 {
					d.dc[e.Slot] = e.Table
					d.dcSet[e.Slot] = true
				} else {
					d.ac[e.Slot] = e.Table
					d.acSet[e.Slot] = true
				}
			}

		case common.KindDRI:
			interval, err := common.ParseDRI(seg.Payload, seg.Offset)
			if err != nil {
				return nil, err
			}
			d.ri = interval

		case common.KindSOS:
			if d.sof == nil {
				return nil, common.Errf(common.MalformedContainer, seg.Offset, "SOS segment before SOF0")
			}
			s, err := common.ParseSOS(seg.Payload, seg.Offset)
			if err != nil {
				return nil, err
			}
			if i+1 >= len(segs) || segs[i+1].Kind != common.KindEntropy {
				return nil, common.Errf(common.MalformedContainer, seg.Offset, "SOS segment without entropy-coded data")
			}
			sos = s
			entropy = segs[i+1].Payload
			i++
		}
	}

	if d.sof == nil {
		return nil, common.Errf(common.MalformedContainer, 0, "stream has no SOF0 segment")
	}
	if sos == nil {
		return nil, common.Errf(common.MalformedContainer, 0, "stream has no SOS segment")
	}

	if err := d.decodeScan(sos, entropy); err != nil {
		return nil, err
	}

	return d.assembleImage()
}

func (d *Decoder) initComponents() {
	hMax, vMax := 0, 0
	for _, c := range d.sof.Components {
		if c.H > hMax {
			hMax = c.H
		}
		if c.V > vMax {
			vMax = c.V
		}
	}
	d.hMax, d.vMax = hMax, vMax

	mcuW := 8 * hMax
	mcuH := 8 * vMax
	d.mcusX = common.DivCeil(d.sof.Width, mcuW)
	d.mcusY = common.DivCeil(d.sof.Height, mcuH)

	d.comps = make([]frameComponent, len(d.sof.Components))
	for i, c := range d.sof.Components {
		planeW := d.mcusX * c.H * 8
		planeH := d.mcusY * c.V * 8
		d.comps[i] = frameComponent{
			spec:   c,
			plane:  make([]byte, planeW*planeH),
			planeW: planeW,
			planeH: planeH,
		}
	}
}

// decodeScan walks every MCU of the single scan this decoder supports,
// decoding each component's blocks in SOS order and writing dequantized,
// inverse-transformed samples straight into that component's plane.
func (d *Decoder) decodeScan(sos *common.SOSInfo, entropy []byte) error {
	compIdx := make([]int, len(sos.Components))
	dcSel := make([]int, len(sos.Components))
	acSel := make([]int, len(sos.Components))

	for i, sc := range sos.Components {
		found := -1
		for j, c := range d.comps {
			if c.spec.ID == sc.ComponentID {
				found = j
				break
			}
		}
		if found < 0 {
			return common.Errf(common.MalformedContainer, 0, "scan references undeclared component id %d", sc.ComponentID)
		}
		if sc.DCTable > 3 || !d.dcSet[sc.DCTable] {
			return common.Errf(common.TableError, 0, "missing DC huffman table %d", sc.DCTable)
		}
		if sc.ACTable > 3 || !d.acSet[sc.ACTable] {
			return common.Errf(common.TableError, 0, "missing AC huffman table %d", sc.ACTable)
		}
		if !d.quant[d.comps[found].spec.Tq].Defined {
			return common.Errf(common.TableError, 0, "missing quantization table %d", d.comps[found].spec.Tq)
		}
		compIdx[i] = found
		dcSel[i] = sc.DCTable
		acSel[i] = sc.ACTable
	}

	br := common.NewBitReader(entropy)
	dcPred := make([]int, len(d.comps))
	restartCount := 0
	mcuCount := 0
	totalMCUs := d.mcusX * d.mcusY

	for my := 0; my < d.mcusY; my++ {
		for mx := 0; mx < d.mcusX; mx++ {
			for i := range sos.Components {
				ci := compIdx[i]
				comp := &d.comps[ci]
				dcTable := &d.dc[dcSel[i]]
				acTable := &d.ac[acSel[i]]

				for by := 0; by < comp.spec.V; by++ {
					for bx := 0; bx < comp.spec.H; bx++ {
						var coef [64]int32
						if err := decodeBlock(br, &coef, dcTable, acTable, &dcPred[ci]); err != nil {
							return err
						}
						common.Dequantize(&coef, &d.quant[comp.spec.Tq])

						px := (mx*comp.spec.H + bx) * 8
						py := (my*comp.spec.V + by) * 8
						common.IDCT(coef, comp.plane, py*comp.planeW+px, comp.planeW)
					}
				}
			}

			mcuCount++
			if d.ri > 0 && mcuCount%d.ri == 0 && mcuCount != totalMCUs {
				br.AlignToByte()
				if err := br.ExpectRestart(restartCount); err != nil {
					return err
				}
				restartCount++
				for i := range dcPred {
					dcPred[i] = 0
				}
			}
		}
	}

	return nil
}

// decodeBlock decodes one 8x8 block's DC and AC coefficients into coef at
// their natural (post zig-zag) positions, per §4.4.
func decodeBlock(br *common.BitReader, coef *[64]int32, dcTable, acTable *common.HuffmanTable, dcPred *int) error {
	size, err := dcTable.DecodeSymbol(br)
	if err != nil {
		return err
	}
	if size > 11 {
		return common.Errf(common.EntropyError, br.Offset(), "dc coefficient category %d out of range", size)
	}
	diff, err := common.ReceiveExtend(br, int(size))
	if err != nil {
		return err
	}
	*dcPred += diff
	coef[common.ZigZag[0]] = int32(*dcPred)

	k := 1
	for k < 64 {
		rs, err := acTable.DecodeSymbol(br)
		if err != nil {
			return err
		}
		run := int(rs >> 4)
		cat := int(rs & 0x0F)

		if cat == 0 {
			if run == 15 { // ZRL: 16 zero coefficients
				k += 16
				continue
			}
			break // EOB
		}

		k += run
		if k >= 64 {
			return common.Errf(common.EntropyError, br.Offset(), "ac run length overruns block")
		}
		val, err := common.ReceiveExtend(br, cat)
		if err != nil {
			return err
		}
		coef[common.ZigZag[k]] = int32(val)
		k++
	}

	return nil
}

func (d *Decoder) assembleImage() (*Image, error) {
	w, h := d.sof.Width, d.sof.Height
	img := &Image{Width: w, Height: h, NComp: len(d.comps), JFIF: d.jfif}

	if len(d.comps) == 1 {
		img.Pix = upsample(d.hMax, d.vMax, w, h, &d.comps[0])
		return img, nil
	}

	yPlane := upsample(d.hMax, d.vMax, w, h, &d.comps[0])
	cbPlane := upsample(d.hMax, d.vMax, w, h, &d.comps[1])
	crPlane := upsample(d.hMax, d.vMax, w, h, &d.comps[2])

	img.Pix = make([]byte, w*h*3)
	for i := 0; i < w*h; i++ {
		r, g, b := ycbcrToRGB(yPlane[i], cbPlane[i], crPlane[i])
		img.Pix[i*3+0] = r
		img.Pix[i*3+1] = g
		img.Pix[i*3+2] = b
	}
	return img, nil
}
