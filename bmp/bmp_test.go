package bmp

import (
	"bytes"
	"testing"
)

// buildBitmap assembles a minimal 2x2 24-bit BI_RGB bitmap from rows
// given top-down, storing them bottom-up as a real BMP file does, along
// with their 4-byte padding.
func buildBitmap(rowsTopDown [][3]byte) []byte {
	width, height := 2, 2
	rowSize := ((width*3 + 3) / 4) * 4
	pixelDataSize := rowSize * height
	fileSize := fileHeaderSize + infoHeaderSize + pixelDataSize

	var buf bytes.Buffer
	buf.WriteString("BM")
	put32(&buf, uint32(fileSize))
	put32(&buf, 0) // reserved
	put32(&buf, uint32(fileHeaderSize+infoHeaderSize))

	put32(&buf, infoHeaderSize)
	put32(&buf, uint32(int32(width)))
	put32(&buf, uint32(int32(height))) // positive: bottom-up
	put16(&buf, 1)                     // planes
	put16(&buf, 24)                    // bpp
	put32(&buf, 0)                     // BI_RGB
	put32(&buf, uint32(pixelDataSize))
	put32(&buf, 2835)
	put32(&buf, 2835)
	put32(&buf, 0)
	put32(&buf, 0)

	// rowsTopDown[0] is the logical top row; the file stores bottom row first.
	for y := height - 1; y >= 0; y-- {
		px := rowsTopDown[y]
		for x := 0; x < width; x++ {
			buf.WriteByte(px[2]) // B
			buf.WriteByte(px[1]) // G
			buf.WriteByte(px[0]) // R
		}
		for p := width * 3; p < rowSize; p++ {
			buf.WriteByte(0)
		}
	}

	return buf.Bytes()
}

func put16(buf *bytes.Buffer, v uint16) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
}

func put32(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 24))
}

func TestDecodeBottomUpReordering(t *testing.T) {
	red := [3]byte{255, 0, 0}
	blue := [3]byte{0, 0, 255}
	data := buildBitmap([][3]byte{red, blue}) // logical top row red, bottom row blue

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("got %dx%d", img.Width, img.Height)
	}

	top := img.Pix[0:3]
	if !bytes.Equal(top, []byte{255, 0, 0}) {
		t.Errorf("top row = %v, want red", top)
	}
	bottom := img.Pix[1*2*3 : 1*2*3+3]
	if !bytes.Equal(bottom, []byte{0, 0, 255}) {
		t.Errorf("bottom row = %v, want blue", bottom)
	}
}

func TestDecodeRejectsWrongBitDepth(t *testing.T) {
	data := buildBitmap([][3]byte{{0, 0, 0}, {0, 0, 0}})
	data[28] = 8 // corrupt bpp field to 8
	if _, err := Decode(bytes.NewReader(data)); err == nil {
		t.Fatal("expected an error for non-24-bit bitmap")
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	data := buildBitmap([][3]byte{{0, 0, 0}, {0, 0, 0}})
	data[0] = 'X'
	if _, err := Decode(bytes.NewReader(data)); err == nil {
		t.Fatal("expected an error for bad magic")
	}
}
