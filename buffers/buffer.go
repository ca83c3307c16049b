package buffers

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/retrorender/format"
	"github.com/opd-ai/retrorender/render"
)

// Buffer is one frame of pool-owned memory with manual reference
// counting. It implements render.RenderBuffer.
//
// A buffer leaves its pool with a reference count of one. Acquire and
// Release adjust the count; the final Release returns the buffer to the
// pool's free list.
type Buffer struct {
	pool     *Pool
	data     []byte
	format   format.PixelFormat
	width    uint32
	height   uint32
	refCount atomic.Int32
	loaded   atomic.Bool
}

// Acquire takes a reference on the buffer.
func (b *Buffer) Acquire() {
	b.refCount.Add(1)
}

// Release drops a reference, returning the buffer to its pool when the
// count reaches zero.
func (b *Buffer) Release() {
	count := b.refCount.Add(-1)
	if count == 0 {
		b.pool.returnBuffer(b)
		return
	}
	if count < 0 {
		logrus.WithFields(logrus.Fields{
			"function": "Buffer.Release",
			"pool_id":  b.pool.id,
			"count":    count,
		}).Error("Reference count went negative")
	}
}

// GetMemory returns the writable backing bytes.
func (b *Buffer) GetMemory() []byte {
	return b.data
}

// ReleaseMemory unmaps the backing bytes. Software buffers stay resident,
// so this is a no-op kept for the RenderBuffer contract.
func (b *Buffer) ReleaseMemory() {}

// UploadTexture marks the contents ready for drawing. Software targets
// have no GPU copy, so the upload always succeeds.
func (b *Buffer) UploadTexture() bool {
	return true
}

// IsLoaded reports whether the current contents have been uploaded.
func (b *Buffer) IsLoaded() bool {
	return b.loaded.Load()
}

// SetLoaded marks the upload state.
func (b *Buffer) SetLoaded(loaded bool) {
	b.loaded.Store(loaded)
}

// GetFormat returns the buffer's pixel format.
func (b *Buffer) GetFormat() format.PixelFormat {
	return b.format
}

// GetWidth returns the buffer's width in pixels.
func (b *Buffer) GetWidth() uint32 {
	return b.width
}

// GetHeight returns the buffer's height in pixels.
func (b *Buffer) GetHeight() uint32 {
	return b.height
}

// GetFrameSize returns the size of the backing memory in bytes.
func (b *Buffer) GetFrameSize() uint32 {
	return uint32(len(b.data))
}

// GetPool returns the pool that owns this buffer.
func (b *Buffer) GetPool() render.BufferPool {
	return b.pool
}

// RefCount exposes the current reference count for tests.
func (b *Buffer) RefCount() int32 {
	return b.refCount.Load()
}
