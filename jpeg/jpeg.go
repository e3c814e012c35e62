// Package jpeg adapts the baseline JPEG decoder to the codec registry.
package jpeg

import (
	"github.com/suey1711/suypixel/codec"
	"github.com/suey1711/suypixel/jpeg/baseline"
)

func init() {
	codec.Register(decoder{})
}

type decoder struct{}

func (decoder) Name() string { return "jpeg" }

// Sniff reports whether data starts with the SOI marker (0xFFD8), which
// every JPEG stream — baseline or otherwise — begins with.
func (decoder) Sniff(data []byte) bool {
	return len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8
}

func (decoder) Decode(data []byte) (*codec.Image, error) {
	img, err := baseline.Decode(data)
	if err != nil {
		return nil, err
	}
	return &codec.Image{Width: img.Width, Height: img.Height, NComp: img.NComp, Pix: img.Pix}, nil
}

// Decode decodes a baseline JPEG stream directly, bypassing the
// registry, returning the full result including any JFIF header found.
func Decode(data []byte) (*baseline.Image, error) {
	return baseline.Decode(data)
}
