package codec

import "sync"

// Registry holds the set of decoders available to Detect and Get.
type Registry struct {
	mu      sync.RWMutex
	decoders map[string]Decoder
	order   []Decoder // sniff order, in registration order
}

var defaultRegistry = &Registry{
	decoders: make(map[string]Decoder),
}

// Register adds a decoder to the default registry.
func Register(d Decoder) {
	defaultRegistry.Register(d)
}

// Get retrieves a decoder by name from the default registry.
func Get(name string) (Decoder, error) {
	return defaultRegistry.Get(name)
}

// List returns every decoder registered with the default registry.
func List() []Decoder {
	return defaultRegistry.List()
}

// Detect finds the first registered decoder whose Sniff recognizes data.
func Detect(data []byte) (Decoder, error) {
	return defaultRegistry.Detect(data)
}

// Register adds a decoder, keyed by its Name.
func (r *Registry) Register(d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decoders[d.Name()] = d
	r.order = append(r.order, d)
}

// Get retrieves a decoder by name.
func (r *Registry) Get(name string) (Decoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decoders[name]
	if !ok {
		return nil, ErrCodecNotFound
	}
	return d, nil
}

// List returns every registered decoder, in registration order.
func (r *Registry) List() []Decoder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Decoder, len(r.order))
	copy(out, r.order)
	return out
}

// Detect walks registered decoders in registration order and returns the
// first one whose Sniff recognizes data.
func (r *Registry) Detect(data []byte) (Decoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.order {
		if d.Sniff(data) {
			return d, nil
		}
	}
	return nil, ErrUnsupportedFormat
}
