package render

import (
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/retrorender/format"
	"github.com/opd-ai/retrorender/scale"
)

// copyFrame copies one frame into a render buffer, converting pixel format
// when the buffer's format differs from the stream's.
//
// Matching formats take a plain copy: one contiguous copy when the strides
// agree, otherwise row by row at the destination stride, copying exactly
// the format's byte width per row so padding bytes are never touched.
// Mismatched formats go through a cached conversion context keyed by the
// destination format; only packed single-plane formats are supported.
//
// The buffer's memory is always released before returning.
func (m *Manager) copyFrame(buffer RenderBuffer, f format.PixelFormat, data []byte, size, width, height uint32) {
	target := buffer.GetMemory()
	defer buffer.ReleaseMemory()

	if target == nil {
		logrus.WithFields(logrus.Fields{
			"function": "copyFrame",
		}).Debug("Render buffer has no writable memory")
		return
	}

	targetHeight := buffer.GetHeight()
	if targetHeight == 0 {
		logrus.WithFields(logrus.Fields{
			"function": "copyFrame",
		}).Debug("Render buffer reports zero height")
		return
	}

	sourceStride := size / height
	targetStride := buffer.GetFrameSize() / targetHeight

	if f == buffer.GetFormat() {
		if sourceStride == targetStride {
			copy(target, data[:size])
			return
		}

		widthBytes := format.WidthToBytes(width, f)
		if widthBytes == 0 {
			return
		}
		if widthBytes > sourceStride {
			widthBytes = sourceStride
		}
		if widthBytes > targetStride {
			widthBytes = targetStride
		}

		// The buffer's reported geometry can lag the stream's after a
		// dimension change; copy only the rows the target can hold.
		rows := height
		if rows > targetHeight {
			rows = targetHeight
		}
		if targetStride*(rows-1)+widthBytes > uint32(len(target)) {
			logrus.WithFields(logrus.Fields{
				"function":   "copyFrame",
				"rows":       rows,
				"target_len": len(target),
			}).Debug("Render buffer too small for frame")
			return
		}
		for i := uint32(0); i < rows; i++ {
			copy(target[targetStride*i:targetStride*i+widthBytes],
				data[sourceStride*i:sourceStride*i+widthBytes])
		}
		return
	}

	// Conversion contexts are expensive to build and cheap to reuse;
	// GetCachedContext revalidates geometry and source format itself.
	// scalerMu also serializes use of the context's scratch images.
	m.scalerMu.Lock()
	defer m.scalerMu.Unlock()

	scaler := scale.GetCachedContext(m.scalers[buffer.GetFormat()],
		width, height, f,
		buffer.GetWidth(), buffer.GetHeight(), buffer.GetFormat())
	m.scalers[buffer.GetFormat()] = scaler

	if scaler == nil {
		logrus.WithFields(logrus.Fields{
			"function":   "copyFrame",
			"src_format": f.String(),
			"dst_format": buffer.GetFormat().String(),
		}).Error("No conversion context for format pair")
		return
	}

	if err := scaler.Scale(data, int(sourceStride), target, int(targetStride)); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":   "copyFrame",
			"src_format": f.String(),
			"dst_format": buffer.GetFormat().String(),
			"error":      err,
		}).Error("Frame conversion failed")
	}
}
