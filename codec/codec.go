// Package codec provides the common interface and process-wide registry
// that the jpeg and bmp packages plug into, so a caller holding an
// unidentified byte buffer can decode it without naming a format.
package codec

// Image is the common decode result every registered Decoder produces:
// tightly packed, row-major 8-bit samples, Width*Height*NComp bytes
// (NComp 1 for grayscale, 3 for RGB).
type Image struct {
	Width  int
	Height int
	NComp  int
	Pix    []byte
}

// Decoder is the interface every image format plugs into the registry
// with.
type Decoder interface {
	// Name returns a short, human-readable identifier, e.g. "jpeg" or "bmp".
	Name() string

	// Sniff reports whether data looks like this decoder's format, by
	// inspecting a leading magic sequence. It never returns true on a
	// misidentification it can cheaply rule out, but is not a full
	// validity check — Decode can still fail on a positively sniffed buffer.
	Sniff(data []byte) bool

	// Decode decodes a complete in-memory buffer of this format.
	Decode(data []byte) (*Image, error)
}
