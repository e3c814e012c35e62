package codec

import "errors"

var (
	// ErrCodecNotFound is returned when a codec is not found in the registry.
	ErrCodecNotFound = errors.New("codec not found")

	// ErrUnsupportedFormat indicates no registered decoder recognized the data.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
