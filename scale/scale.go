package scale

import (
	"image"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/opd-ai/retrorender/format"
)

// Context holds the parameters and scratch state for one conversion pair.
//
// A Context converts frames of a fixed source geometry/format into a fixed
// destination geometry/format. The zero value is not usable; obtain
// contexts through GetCachedContext.
type Context struct {
	srcWidth  uint32
	srcHeight uint32
	srcFormat format.PixelFormat
	dstWidth  uint32
	dstHeight uint32
	dstFormat format.PixelFormat

	// RGBA intermediates, allocated once per context.
	srcImage *image.RGBA
	dstImage *image.RGBA
}

// GetCachedContext returns a context matching the given parameters,
// reusing prev when it already matches. Pass nil on first use.
//
// Returns nil when either format has no packed single-plane layout or a
// dimension is zero; callers must treat a nil context as "conversion
// unavailable".
func GetCachedContext(prev *Context, srcWidth, srcHeight uint32, srcFormat format.PixelFormat,
	dstWidth, dstHeight uint32, dstFormat format.PixelFormat) *Context {
	if prev != nil && prev.matches(srcWidth, srcHeight, srcFormat, dstWidth, dstHeight, dstFormat) {
		return prev
	}

	if srcFormat.BytesPerPixel() == 0 || dstFormat.BytesPerPixel() == 0 {
		logrus.WithFields(logrus.Fields{
			"function":   "GetCachedContext",
			"src_format": srcFormat.String(),
			"dst_format": dstFormat.String(),
		}).Error("Pixel format has no packed single-plane layout")
		return nil
	}
	if srcWidth == 0 || srcHeight == 0 || dstWidth == 0 || dstHeight == 0 {
		return nil
	}

	if prev != nil {
		prev.Release()
	}

	c := &Context{
		srcWidth:  srcWidth,
		srcHeight: srcHeight,
		srcFormat: srcFormat,
		dstWidth:  dstWidth,
		dstHeight: dstHeight,
		dstFormat: dstFormat,
		srcImage:  image.NewRGBA(image.Rect(0, 0, int(srcWidth), int(srcHeight))),
	}
	if srcWidth != dstWidth || srcHeight != dstHeight {
		c.dstImage = image.NewRGBA(image.Rect(0, 0, int(dstWidth), int(dstHeight)))
	}

	logrus.WithFields(logrus.Fields{
		"function":   "GetCachedContext",
		"src_format": srcFormat.String(),
		"src_size":   [2]uint32{srcWidth, srcHeight},
		"dst_format": dstFormat.String(),
		"dst_size":   [2]uint32{dstWidth, dstHeight},
	}).Debug("Created conversion context")

	return c
}

func (c *Context) matches(srcWidth, srcHeight uint32, srcFormat format.PixelFormat,
	dstWidth, dstHeight uint32, dstFormat format.PixelFormat) bool {
	return c.srcWidth == srcWidth && c.srcHeight == srcHeight && c.srcFormat == srcFormat &&
		c.dstWidth == dstWidth && c.dstHeight == dstHeight && c.dstFormat == dstFormat
}

// Scale converts one frame from src into dst.
//
// src must hold srcHeight rows of srcStride bytes; dst must hold dstHeight
// rows of dstStride bytes. When source and destination geometry differ the
// intermediate is resampled with bilinear filtering.
func (c *Context) Scale(src []byte, srcStride int, dst []byte, dstStride int) error {
	srcRow := int(format.WidthToBytes(c.srcWidth, c.srcFormat))
	dstRow := int(format.WidthToBytes(c.dstWidth, c.dstFormat))
	if srcStride < srcRow || dstStride < dstRow {
		return ErrInvalidStride
	}
	if len(src) < srcStride*(int(c.srcHeight)-1)+srcRow {
		return ErrShortBuffer
	}
	if len(dst) < dstStride*(int(c.dstHeight)-1)+dstRow {
		return ErrShortBuffer
	}

	if err := unpackRGBA(c.srcImage, src, srcStride, c.srcFormat); err != nil {
		return err
	}

	out := c.srcImage
	if c.dstImage != nil {
		draw.BiLinear.Scale(c.dstImage, c.dstImage.Bounds(), c.srcImage, c.srcImage.Bounds(), draw.Src, nil)
		out = c.dstImage
	}

	return packRGBA(dst, dstStride, out, c.dstFormat)
}

// Release drops the context's scratch images. Safe to call more than once;
// the context must not be used afterwards.
func (c *Context) Release() {
	c.srcImage = nil
	c.dstImage = nil
}

// DstFormat returns the destination pixel format the context packs into.
func (c *Context) DstFormat() format.PixelFormat {
	return c.dstFormat
}

// unpackRGBA expands packed src pixels into the RGBA intermediate.
func unpackRGBA(img *image.RGBA, src []byte, srcStride int, f format.PixelFormat) error {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	for y := 0; y < h; y++ {
		srcOff := y * srcStride
		dstOff := y * img.Stride
		switch f {
		case format.FormatRGBA8888:
			copy(img.Pix[dstOff:dstOff+w*4], src[srcOff:srcOff+w*4])
		case format.FormatXRGB8888:
			for x := 0; x < w; x++ {
				s := src[srcOff+x*4 : srcOff+x*4+4]
				d := img.Pix[dstOff+x*4 : dstOff+x*4+4]
				d[0] = s[2]
				d[1] = s[1]
				d[2] = s[0]
				d[3] = 0xff
			}
		case format.FormatBGRA8888:
			for x := 0; x < w; x++ {
				s := src[srcOff+x*4 : srcOff+x*4+4]
				d := img.Pix[dstOff+x*4 : dstOff+x*4+4]
				d[0] = s[2]
				d[1] = s[1]
				d[2] = s[0]
				d[3] = s[3]
			}
		case format.FormatRGB565:
			for x := 0; x < w; x++ {
				v := uint16(src[srcOff+x*2]) | uint16(src[srcOff+x*2+1])<<8
				d := img.Pix[dstOff+x*4 : dstOff+x*4+4]
				d[0] = expand5(uint8(v >> 11))
				d[1] = expand6(uint8(v >> 5 & 0x3f))
				d[2] = expand5(uint8(v & 0x1f))
				d[3] = 0xff
			}
		case format.FormatRGB555:
			for x := 0; x < w; x++ {
				v := uint16(src[srcOff+x*2]) | uint16(src[srcOff+x*2+1])<<8
				d := img.Pix[dstOff+x*4 : dstOff+x*4+4]
				d[0] = expand5(uint8(v >> 10 & 0x1f))
				d[1] = expand5(uint8(v >> 5 & 0x1f))
				d[2] = expand5(uint8(v & 0x1f))
				d[3] = 0xff
			}
		default:
			return ErrUnsupportedFormat
		}
	}
	return nil
}

// packRGBA packs the RGBA intermediate into dst in the given format.
func packRGBA(dst []byte, dstStride int, img *image.RGBA, f format.PixelFormat) error {
	w := img.Rect.Dx()
	h := img.Rect.Dy()

	for y := 0; y < h; y++ {
		srcOff := y * img.Stride
		dstOff := y * dstStride
		switch f {
		case format.FormatRGBA8888:
			copy(dst[dstOff:dstOff+w*4], img.Pix[srcOff:srcOff+w*4])
		case format.FormatXRGB8888:
			for x := 0; x < w; x++ {
				s := img.Pix[srcOff+x*4 : srcOff+x*4+4]
				d := dst[dstOff+x*4 : dstOff+x*4+4]
				d[0] = s[2]
				d[1] = s[1]
				d[2] = s[0]
				d[3] = 0
			}
		case format.FormatBGRA8888:
			for x := 0; x < w; x++ {
				s := img.Pix[srcOff+x*4 : srcOff+x*4+4]
				d := dst[dstOff+x*4 : dstOff+x*4+4]
				d[0] = s[2]
				d[1] = s[1]
				d[2] = s[0]
				d[3] = s[3]
			}
		case format.FormatRGB565:
			for x := 0; x < w; x++ {
				s := img.Pix[srcOff+x*4 : srcOff+x*4+4]
				v := uint16(s[0]>>3)<<11 | uint16(s[1]>>2)<<5 | uint16(s[2]>>3)
				dst[dstOff+x*2] = byte(v)
				dst[dstOff+x*2+1] = byte(v >> 8)
			}
		case format.FormatRGB555:
			for x := 0; x < w; x++ {
				s := img.Pix[srcOff+x*4 : srcOff+x*4+4]
				v := uint16(s[0]>>3)<<10 | uint16(s[1]>>3)<<5 | uint16(s[2]>>3)
				dst[dstOff+x*2] = byte(v)
				dst[dstOff+x*2+1] = byte(v >> 8)
			}
		default:
			return ErrUnsupportedFormat
		}
	}
	return nil
}

// expand5 widens a 5-bit channel to 8 bits, replicating high bits so full
// intensity maps to 0xff.
func expand5(v uint8) uint8 {
	return v<<3 | v>>2
}

// expand6 widens a 6-bit channel to 8 bits.
func expand6(v uint8) uint8 {
	return v<<2 | v>>4
}
