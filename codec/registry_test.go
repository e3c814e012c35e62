package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDecoder struct {
	name  string
	magic byte
}

func (f fakeDecoder) Name() string { return f.name }
func (f fakeDecoder) Sniff(data []byte) bool {
	return len(data) > 0 && data[0] == f.magic
}
func (f fakeDecoder) Decode(data []byte) (*Image, error) {
	return &Image{Width: 1, Height: 1, NComp: 1, Pix: []byte{data[0]}}, nil
}

func newTestRegistry() *Registry {
	return &Registry{decoders: make(map[string]Decoder)}
}

func TestRegistryGetAndList(t *testing.T) {
	r := newTestRegistry()
	a := fakeDecoder{name: "a", magic: 0xAA}
	b := fakeDecoder{name: "b", magic: 0xBB}
	r.Register(a)
	r.Register(b)

	got, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, ErrCodecNotFound)

	assert.Len(t, r.List(), 2)
}

func TestRegistryDetect(t *testing.T) {
	r := newTestRegistry()
	r.Register(fakeDecoder{name: "a", magic: 0xAA})
	r.Register(fakeDecoder{name: "b", magic: 0xBB})

	d, err := r.Detect([]byte{0xBB, 0x01})
	require.NoError(t, err)
	assert.Equal(t, "b", d.Name())

	_, err = r.Detect([]byte{0xCC})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
