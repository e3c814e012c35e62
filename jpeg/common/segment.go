package common

// Segment is the single discriminated value spec.md's Design Notes call
// for: every marker the splitter produces becomes one of these, rather
// than each marker class being a base type of some decoder aggregate.
type Segment struct {
	Kind    SegmentKind
	Marker  byte // second byte after 0xFF; 0 for the synthetic Entropy kind
	Payload []byte
	Offset  int // byte offset of the 0xFF marker prefix in the source
}

// SegmentKind discriminates the Segment values the splitter can produce.
type SegmentKind int

const (
	KindSOI SegmentKind = iota
	KindEOI
	KindAPP0
	KindAPPn
	KindSOF0
	KindSOFOther // any SOF variant other than SOF0 — unsupported, kept so the decoder can say which
	KindDHT
	KindDQT
	KindDRI
	KindSOS
	KindCOM
	KindEntropy // synthetic: the unstuffed scan payload immediately following a SOS segment
	KindUnknown
)

func classify(marker byte) SegmentKind {
	switch {
	case marker == SOF0:
		return KindSOF0
	case IsSOF(marker):
		return KindSOFOther
	case marker == DHT:
		return KindDHT
	case marker == DQT:
		return KindDQT
	case marker == DRI:
		return KindDRI
	case marker == SOS:
		return KindSOS
	case marker == COM:
		return KindCOM
	case marker == APP0:
		return KindAPP0
	case IsAPPn(marker):
		return KindAPPn
	default:
		return KindUnknown
	}
}

// Split scans a full JFIF/JPEG byte buffer into an ordered list of
// Segments (§4.1). It validates SOI/EOI framing, segment lengths, and
// unstuffs 0xFF00 inside the entropy-coded data that follows SOS,
// leaving restart markers embedded in the synthetic KindEntropy payload
// for the bit reader to consume (§4.3/§4.8).
func Split(buf []byte) ([]Segment, error) {
	r := NewReader(buf)

	b0, err := r.ReadByte()
	if err != nil {
		return nil, Errf(MalformedContainer, 0, "missing SOI marker")
	}
	b1, err := r.ReadByte()
	if err != nil || b0 != 0xFF || b1 != SOI {
		return nil, Errf(MalformedContainer, 0, "missing SOI marker")
	}

	segs := []Segment{{Kind: KindSOI, Marker: SOI, Offset: 0}}

	sawSOS := false
	for {
		markerOffset := r.Offset()
		b, err := r.ReadByte()
		if err != nil {
			return nil, Errf(MalformedContainer, markerOffset, "missing EOI marker")
		}
		if b != 0xFF {
			return nil, Errf(MalformedContainer, markerOffset, "expected marker, found 0x%02X", b)
		}

		var m byte
		for {
			m, err = r.ReadByte()
			if err != nil {
				return nil, Errf(MalformedContainer, r.Offset(), "truncated marker")
			}
			if m != 0xFF {
				break
			}
		}
		if m == 0x00 {
			return nil, Errf(MalformedContainer, markerOffset, "unexpected stuffed byte outside entropy data")
		}

		if m == EOI {
			segs = append(segs, Segment{Kind: KindEOI, Marker: m, Offset: markerOffset})
			return segs, nil
		}
		if IsRST(m) {
			return nil, Errf(MalformedContainer, markerOffset, "unexpected restart marker outside scan")
		}

		var payload []byte
		if HasLength(m) {
			length, err := r.ReadUint16()
			if err != nil {
				return nil, err
			}
			if length < 2 {
				return nil, Errf(MalformedContainer, markerOffset, "segment length %d shorter than its own length field", length)
			}
			payload, err = r.ReadN(int(length) - 2)
			if err != nil {
				return nil, err
			}
		}

		kind := classify(m)
		segs = append(segs, Segment{Kind: kind, Marker: m, Payload: payload, Offset: markerOffset})

		if kind == KindSOS {
			if sawSOS {
				return nil, Errf(UnsupportedFeature, markerOffset, "multi-scan images are not supported")
			}
			sawSOS = true
			entropyOffset := r.Offset()
			entropy, err := readEntropyData(r)
			if err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Kind: KindEntropy, Payload: entropy, Offset: entropyOffset})
		}
	}
}

// readEntropyData accumulates the scan's entropy-coded bytes, unstuffing
// 0xFF00 to a literal 0xFF and preserving embedded RSTn markers, until it
// finds the next real (non-stuffed, non-restart) marker. The reader's
// cursor is left positioned at that marker's 0xFF prefix so the caller's
// normal marker loop picks it up.
func readEntropyData(r *Reader) ([]byte, error) {
	var buf []byte
	for {
		if r.Len() == 0 {
			return nil, Errf(MalformedContainer, r.Offset(), "missing EOI marker")
		}
		b, _ := r.ReadByte()
		if b != 0xFF {
			buf = append(buf, b)
			continue
		}

		// Consecutive 0xFF bytes are fill; only the first non-0xFF byte
		// after the run decides what this marker prefix means.
		for {
			nb, ok := r.Peek()
			if !ok {
				return nil, Errf(MalformedContainer, r.Offset(), "missing EOI marker")
			}
			if nb != 0xFF {
				break
			}
			if err := r.Skip(1); err != nil {
				return nil, err
			}
		}

		marker, _ := r.Peek()
		switch {
		case marker == 0x00:
			_ = r.Skip(1)
			buf = append(buf, 0xFF)
		case IsRST(marker):
			_ = r.Skip(1)
			buf = append(buf, 0xFF, marker)
		default:
			r.pos--
			return buf, nil
		}
	}
}

// ComponentSpec is one component descriptor from an SOF0 segment.
type ComponentSpec struct {
	ID byte
	H  int
	V  int
	Tq int
}

// SOF0Info is the typed record an SOF0 segment parses into.
type SOF0Info struct {
	Precision  int
	Width      int
	Height     int
	Components []ComponentSpec
}

// ParseSOF0 decodes a Start Of Frame (baseline) payload. The length
// check follows the corrected formula from the Design Notes: length =
// 8 + 3*numComponents (2 length bytes + 1 precision + 2 height + 2
// width + 1 count, then 3 bytes per component) — the payload handed in
// here already excludes the 2 length bytes, so the check is against
// 6 + 3*numComponents.
func ParseSOF0(payload []byte, offset int) (*SOF0Info, error) {
	if len(payload) < 6 {
		return nil, Errf(MalformedContainer, offset, "SOF0 segment too short")
	}
	precision := int(payload[0])
	if precision != 8 {
		return nil, Errf(UnsupportedFeature, offset, "sample precision %d bits, only 8-bit baseline supported", precision)
	}
	height := int(payload[1])<<8 | int(payload[2])
	width := int(payload[3])<<8 | int(payload[4])
	n := int(payload[5])

	if width <= 0 || height <= 0 {
		return nil, Errf(MalformedContainer, offset, "invalid dimensions %dx%d", width, height)
	}
	if n != 1 && n != 3 {
		return nil, Errf(UnsupportedFeature, offset, "%d components, only 1 (grayscale) or 3 (YCbCr) supported", n)
	}
	if len(payload) != 6+n*3 {
		return nil, Errf(MalformedContainer, offset, "SOF0 segment length %d does not match %d components", len(payload)+2, n)
	}

	comps := make([]ComponentSpec, n)
	for i := 0; i < n; i++ {
		o := 6 + i*3
		c := ComponentSpec{
			ID: payload[o],
			H:  int(payload[o+1] >> 4),
			V:  int(payload[o+1] & 0x0F),
			Tq: int(payload[o+2]),
		}
		if c.H < 1 || c.H > 2 || c.V < 1 || c.V > 2 {
			return nil, Errf(UnsupportedFeature, offset, "sampling factors %dx%d outside supported {1,2}x{1,2}", c.H, c.V)
		}
		if c.Tq > 3 {
			return nil, Errf(MalformedContainer, offset, "quantization table selector %d out of range", c.Tq)
		}
		comps[i] = c
	}

	return &SOF0Info{Precision: precision, Width: width, Height: height, Components: comps}, nil
}

// DQTEntry is one quantization table parsed out of a (possibly
// multi-table) DQT segment.
type DQTEntry struct {
	Slot  int
	Table QuantTable
}

// ParseDQT decodes a Define Quantization Table segment, which may carry
// more than one table back to back.
func ParseDQT(payload []byte, offset int) ([]DQTEntry, error) {
	var entries []DQTEntry
	pos := 0
	for pos < len(payload) {
		pqTq := payload[pos]
		pq := pqTq >> 4
		tq := int(pqTq & 0x0F)
		if tq > 3 {
			return nil, Errf(TableError, offset, "quantization table slot %d out of range", tq)
		}
		pos++

		var t QuantTable
		t.Defined = true
		if pq == 0 {
			if pos+64 > len(payload) {
				return nil, Errf(MalformedContainer, offset, "truncated 8-bit quantization table")
			}
			// The DQT payload lists the 64 entries in zig-zag scan
			// order; reindex into natural order here so Values lines
			// up with the natural-order coef array Dequantize is
			// applied to after block decode.
			for i := 0; i < 64; i++ {
				t.Values[ZigZag[i]] = int32(payload[pos+i])
			}
			pos += 64
		} else {
			return nil, Errf(UnsupportedFeature, offset, "16-bit quantization tables are not supported")
		}
		entries = append(entries, DQTEntry{Slot: tq, Table: t})
	}
	return entries, nil
}

// DHTEntry is one Huffman table parsed out of a (possibly multi-table)
// DHT segment. Class 0 is DC, class 1 is AC.
type DHTEntry struct {
	Class int
	Slot  int
	Table HuffmanTable
}

// ParseDHT decodes a Define Huffman Table segment.
func ParseDHT(payload []byte, offset int) ([]DHTEntry, error) {
	var entries []DHTEntry
	pos := 0
	for pos < len(payload) {
		tcTh := payload[pos]
		tc := int(tcTh >> 4)
		th := int(tcTh & 0x0F)
		if th > 3 {
			return nil, Errf(TableError, offset, "huffman table slot %d out of range", th)
		}
		if tc > 1 {
			return nil, Errf(UnsupportedFeature, offset, "huffman table class %d is not DC or AC", tc)
		}
		pos++

		if pos+16 > len(payload) {
			return nil, Errf(MalformedContainer, offset, "truncated huffman length counts")
		}
		var t HuffmanTable
		total := 0
		for i := 0; i < 16; i++ {
			t.Bits[i] = int(payload[pos+i])
			total += t.Bits[i]
		}
		pos += 16

		if pos+total > len(payload) {
			return nil, Errf(MalformedContainer, offset, "truncated huffman symbol list")
		}
		t.Values = append([]byte(nil), payload[pos:pos+total]...)
		pos += total

		if err := t.Build(); err != nil {
			return nil, err
		}

		entries = append(entries, DHTEntry{Class: tc, Slot: th, Table: t})
	}
	return entries, nil
}

// ParseDRI decodes a Define Restart Interval segment.
func ParseDRI(payload []byte, offset int) (int, error) {
	if len(payload) != 2 {
		return 0, Errf(MalformedContainer, offset, "DRI segment must be exactly 2 bytes")
	}
	return int(payload[0])<<8 | int(payload[1]), nil
}

// ScanComponentSpec is one component's table selection within an SOS
// segment.
type ScanComponentSpec struct {
	ComponentID byte
	DCTable     int
	ACTable     int
}

// SOSInfo is the typed record an SOS segment parses into.
type SOSInfo struct {
	Components []ScanComponentSpec
}

// ParseSOS decodes a Start Of Scan segment. Baseline's spectral
// selection (0..63) and successive approximation (0) fields are
// validated but not otherwise used.
func ParseSOS(payload []byte, offset int) (*SOSInfo, error) {
	if len(payload) < 1 {
		return nil, Errf(MalformedContainer, offset, "SOS segment too short")
	}
	ns := int(payload[0])
	if len(payload) < 1+ns*2+3 {
		return nil, Errf(MalformedContainer, offset, "SOS segment too short for %d components", ns)
	}

	comps := make([]ScanComponentSpec, ns)
	for i := 0; i < ns; i++ {
		o := 1 + i*2
		comps[i] = ScanComponentSpec{
			ComponentID: payload[o],
			DCTable:     int(payload[o+1] >> 4),
			ACTable:     int(payload[o+1] & 0x0F),
		}
	}

	tail := payload[1+ns*2:]
	spectralStart := tail[0]
	spectralEnd := tail[1]
	approx := tail[2]
	if spectralStart != 0 || spectralEnd != 63 || approx != 0 {
		return nil, Errf(UnsupportedFeature, offset, "non-baseline spectral selection/successive approximation")
	}

	return &SOSInfo{Components: comps}, nil
}

// JFIFHeader is the typed record an APP0 "JFIF\0" segment parses into.
// The thumbnail dimensions are exposed but its pixel data is not
// interpreted, per §1/§6.
type JFIFHeader struct {
	VersionMajor byte
	VersionMinor byte
	DensityUnits byte
	DensityX     uint16
	DensityY     uint16
	ThumbWidth   byte
	ThumbHeight  byte
}

// ParseAPP0JFIF decodes an APP0 segment carrying the "JFIF\0" identifier.
// Non-JFIF APP0 payloads (e.g. a bare JFXX extension) are reported via ok=false
// rather than an error, since APP0 without the JFIF identifier is simply
// opaque application data.
func ParseAPP0JFIF(payload []byte, offset int) (jfif *JFIFHeader, ok bool, err error) {
	if len(payload) < 5 || string(payload[0:5]) != "JFIF\x00" {
		return nil, false, nil
	}
	if len(payload) < 14 {
		return nil, false, Errf(MalformedContainer, offset, "APP0 JFIF segment too short")
	}
	major, minor := payload[5], payload[6]
	if major != 1 || (minor != 1 && minor != 2) {
		return nil, false, Errf(UnsupportedFeature, offset, "unsupported JFIF version %d.%02d", major, minor)
	}
	units := payload[7]
	if units > 2 {
		return nil, false, Errf(MalformedContainer, offset, "invalid JFIF density units %d", units)
	}
	return &JFIFHeader{
		VersionMajor: major,
		VersionMinor: minor,
		DensityUnits: units,
		DensityX:     uint16(payload[8])<<8 | uint16(payload[9]),
		DensityY:     uint16(payload[10])<<8 | uint16(payload[11]),
		ThumbWidth:   payload[12],
		ThumbHeight:  payload[13],
	}, true, nil
}
