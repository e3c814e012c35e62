package common

import "testing"

func TestReaderBasics(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	b, err := r.ReadByte()
	if err != nil || b != 0x01 {
		t.Fatalf("ReadByte = %d, %v", b, err)
	}

	u, err := r.ReadUint16()
	if err != nil || u != 0x0203 {
		t.Fatalf("ReadUint16 = %d, %v", u, err)
	}

	n, err := r.ReadN(2)
	if err != nil || len(n) != 2 || n[0] != 0x04 || n[1] != 0x05 {
		t.Fatalf("ReadN = %#v, %v", n, err)
	}

	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}
	if _, err := r.ReadByte(); err == nil {
		t.Fatal("expected an error reading past the end")
	}
}

func TestReaderSkip(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	if err := r.Skip(2); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	b, err := r.ReadByte()
	if err != nil || b != 3 {
		t.Fatalf("ReadByte after Skip = %d, %v", b, err)
	}
	if err := r.Skip(5); err == nil {
		t.Fatal("expected an error skipping past the end")
	}
}
