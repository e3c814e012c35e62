package common

import "testing"

func TestBitReaderNextBits(t *testing.T) {
	br := NewBitReader([]byte{0b10110100, 0b11000000})
	if v, err := br.NextBits(4); err != nil || v != 0b1011 {
		t.Fatalf("NextBits(4) = %d, %v", v, err)
	}
	if v, err := br.NextBits(4); err != nil || v != 0b0100 {
		t.Fatalf("NextBits(4) = %d, %v", v, err)
	}
	if v, err := br.NextBits(2); err != nil || v != 0b11 {
		t.Fatalf("NextBits(2) = %d, %v", v, err)
	}
}

func TestBitReaderUnstuffedMarkerIsFatal(t *testing.T) {
	br := NewBitReader([]byte{0xFF, 0xD9})
	if _, err := br.NextBit(); err == nil {
		t.Fatal("expected an error reading into a marker byte")
	}
}

func TestBitReaderExpectRestart(t *testing.T) {
	data := []byte{0x00, 0xFF, byte(RST0 + 3), 0x00}
	br := NewBitReader(data)
	if _, err := br.NextBits(8); err != nil {
		t.Fatalf("NextBits: %v", err)
	}
	br.AlignToByte()
	if err := br.ExpectRestart(3); err != nil {
		t.Fatalf("ExpectRestart(3): %v", err)
	}
	if v, err := br.NextBits(8); err != nil || v != 0x00 {
		t.Fatalf("NextBits after restart = %d, %v", v, err)
	}
}

func TestBitReaderExpectRestartMismatch(t *testing.T) {
	data := []byte{0xFF, byte(RST0 + 1)}
	br := NewBitReader(data)
	if err := br.ExpectRestart(0); err == nil {
		t.Fatal("expected a restart-desync error")
	}
}
