package bmp

import (
	"bytes"

	"github.com/suey1711/suypixel/codec"
)

func init() {
	codec.Register(decoder{})
}

type decoder struct{}

func (decoder) Name() string { return "bmp" }

// Sniff reports whether data starts with the "BM" file-header magic.
func (decoder) Sniff(data []byte) bool {
	return len(data) >= 2 && data[0] == 'B' && data[1] == 'M'
}

func (decoder) Decode(data []byte) (*codec.Image, error) {
	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &codec.Image{Width: img.Width, Height: img.Height, NComp: 3, Pix: img.Pix}, nil
}
