package format

// PixelFormat identifies a packed single-plane pixel layout.
//
// Only packed formats appear here. Planar layouts (YUV420 and friends)
// require per-plane stride handling that the frame copy path does not
// support, so they are deliberately absent.
type PixelFormat int

const (
	// FormatUnknown is the zero value; no frame carries it.
	FormatUnknown PixelFormat = iota
	// FormatXRGB8888 is 32-bit packed RGB with an unused high byte.
	FormatXRGB8888
	// FormatRGBA8888 is 32-bit packed RGBA.
	FormatRGBA8888
	// FormatBGRA8888 is 32-bit packed BGRA.
	FormatBGRA8888
	// FormatRGB565 is 16-bit packed RGB, 5-6-5 bit split.
	FormatRGB565
	// FormatRGB555 is 16-bit packed RGB, 1-5-5-5 bit split with the
	// high bit unused.
	FormatRGB555
)

// BytesPerPixel returns the byte width of one pixel, or 0 when the
// format has no fixed per-pixel width.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatXRGB8888, FormatRGBA8888, FormatBGRA8888:
		return 4
	case FormatRGB565, FormatRGB555:
		return 2
	}
	return 0
}

// String returns a human-readable format name for diagnostics.
func (f PixelFormat) String() string {
	switch f {
	case FormatXRGB8888:
		return "XRGB8888"
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatBGRA8888:
		return "BGRA8888"
	case FormatRGB565:
		return "RGB565"
	case FormatRGB555:
		return "RGB555"
	}
	return "unknown"
}

// WidthToBytes translates a width in pixels to a width in bytes for the
// given format. Returns 0 when the format has no per-pixel byte width.
func WidthToBytes(width uint32, f PixelFormat) uint32 {
	bpp := f.BytesPerPixel()
	if bpp == 0 {
		return 0
	}
	return width * uint32(bpp)
}
