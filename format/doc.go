// Package format defines the pixel formats understood by the render
// pipeline and pure translation helpers over them.
//
// The render manager negotiates a single packed pixel format per stream
// and uses these helpers to derive byte widths for frame copies and
// human-readable names for diagnostics. The package holds no state; every
// function is a pure mapping over the PixelFormat enum.
package format
