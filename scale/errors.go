package scale

import "errors"

// Sentinel errors for conversion operations.
// These errors enable reliable error classification using errors.Is().
var (
	// ErrUnsupportedFormat indicates a pixel format with no packed
	// single-plane layout.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")

	// ErrShortBuffer indicates a source or destination buffer smaller
	// than its geometry and stride require.
	ErrShortBuffer = errors.New("buffer too small for frame geometry")

	// ErrInvalidStride indicates a stride smaller than one row of pixels.
	ErrInvalidStride = errors.New("stride smaller than row width")
)
