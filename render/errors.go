package render

import "errors"

// Sentinel errors for manager construction.
// These errors enable reliable error classification using errors.Is().
//
// The frame path itself never returns errors: malformed input, pool
// exhaustion, incompatibility, and configuration races all degrade to a
// dropped unit of work with a log line.
var (
	// ErrNilRegistry indicates a nil capability registry.
	ErrNilRegistry = errors.New("capability registry cannot be nil")

	// ErrNilMessenger indicates a nil host messenger.
	ErrNilMessenger = errors.New("messenger cannot be nil")

	// ErrNilRenderContext indicates the registry returned no render
	// context.
	ErrNilRenderContext = errors.New("render context cannot be nil")
)
