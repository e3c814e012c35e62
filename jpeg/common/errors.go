package common

import "fmt"

// Kind is the externally observable error taxonomy from the decoder's
// error-handling design: every fatal condition belongs to exactly one of
// these, regardless of which package detected it.
type Kind int

const (
	// MalformedContainer covers missing/wrong magic, truncated segments,
	// missing SOI/EOI, bad segment length, unexpected marker.
	MalformedContainer Kind = iota
	// UnsupportedFeature covers anything outside baseline 8-bit Huffman
	// SOF0: progressive/arithmetic/hierarchical/lossless SOF variants,
	// non-8-bit precision, too many components, sampling factors outside
	// {1,2}, 16-bit DQT, non-zero successive approximation.
	UnsupportedFeature
	// TableError covers duplicate/missing DQT or DHT at point of use, a
	// Huffman length-count sum over 256, or a non-prefix-free code set.
	TableError
	// EntropyError covers an undecodable Huffman prefix, AC run overflow,
	// restart desync, or an EOI encountered mid-scan.
	EntropyError
	// IOError covers an underlying read failure.
	IOError
)

func (k Kind) String() string {
	switch k {
	case MalformedContainer:
		return "malformed container"
	case UnsupportedFeature:
		return "unsupported feature"
	case TableError:
		return "table error"
	case EntropyError:
		return "entropy error"
	case IOError:
		return "i/o error"
	default:
		return "unknown error"
	}
}

// Error is the single error type the decoder returns. It carries the
// offset (byte position in the original stream) at which the condition
// was detected, alongside the coarse Kind.
type Error struct {
	Kind   Kind
	Offset int
	Msg    string
	Err    error // wrapped cause, if any; may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at offset %d: %s: %v", e.Kind, e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Errf builds an *Error with a formatted message.
func Errf(kind Kind, offset int, format string, args ...interface{}) error {
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error that wraps an underlying cause (typically an
// io.Reader failure).
func Wrap(kind Kind, offset int, msg string, cause error) error {
	return &Error{Kind: kind, Offset: offset, Msg: msg, Err: cause}
}
