// Package scale implements pixel format conversion and scaling for packed
// single-plane frames.
//
// A Context carries the source and destination geometry plus reusable
// scratch images, so repeated conversions between the same format pair pay
// the allocation cost once. Contexts are expensive to construct and cheap
// to reuse; callers obtain them through GetCachedContext, which revalidates
// an existing context against the requested parameters the way a cached
// swscale context would:
//
//	ctx = scale.GetCachedContext(ctx, srcW, srcH, srcFmt, dstW, dstH, dstFmt)
//	err := ctx.Scale(src, srcStride, dst, dstStride)
//
// Conversion goes through an RGBA intermediate. When source and destination
// geometry differ, the intermediate is resampled with bilinear filtering
// before packing into the destination format. Planar formats are not
// supported; they would need per-plane stride arrays.
package scale
