package buffers

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/opd-ai/retrorender/format"
	"github.com/opd-ai/retrorender/render"
)

// Pool owns a bounded set of reusable software buffers of one pixel
// format. It implements render.BufferPool.
//
// A pool is created with its format and the maximum geometry it must
// support, then configured with the stream geometry by its renderer before
// buffers are requested. Buffers are recycled through a free list; the
// pool never holds more than capacity buffers in flight.
type Pool struct {
	id        string
	format    format.PixelFormat
	maxWidth  uint32
	maxHeight uint32
	capacity  int

	mu        sync.Mutex
	width     uint32
	height    uint32
	free      []*Buffer
	allocated int

	visibleRenderers atomic.Int32
}

// NewPool creates a pool for the given format, bounded geometry, and
// buffer capacity.
func NewPool(f format.PixelFormat, maxWidth, maxHeight uint32, capacity int) *Pool {
	pool := &Pool{
		id:        uuid.NewString(),
		format:    f,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		capacity:  capacity,
	}

	logrus.WithFields(logrus.Fields{
		"function":   "NewPool",
		"pool_id":    pool.id,
		"format":     f.String(),
		"max_width":  maxWidth,
		"max_height": maxHeight,
		"capacity":   capacity,
	}).Debug("Created software buffer pool")

	return pool
}

// Configure sets the geometry for buffers handed out from now on.
// Existing free buffers of a different geometry are dropped. Returns false
// when the geometry exceeds the pool's bounds.
func (p *Pool) Configure(width, height uint32) bool {
	if width == 0 || height == 0 || width > p.maxWidth || height > p.maxHeight {
		logrus.WithFields(logrus.Fields{
			"function":   "Pool.Configure",
			"pool_id":    p.id,
			"width":      width,
			"height":     height,
			"max_width":  p.maxWidth,
			"max_height": p.maxHeight,
		}).Error("Geometry outside pool bounds")
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.width != width || p.height != height {
		p.allocated -= len(p.free)
		p.free = nil
	}
	p.width = width
	p.height = height

	return true
}

// HasVisibleRenderer reports whether a visible renderer is attached.
func (p *Pool) HasVisibleRenderer() bool {
	return p.visibleRenderers.Load() > 0
}

// AttachRenderer records a visible renderer on this pool.
func (p *Pool) AttachRenderer() {
	p.visibleRenderers.Add(1)
}

// DetachRenderer removes a visible renderer from this pool.
func (p *Pool) DetachRenderer() {
	p.visibleRenderers.Add(-1)
}

// GetBuffer returns a free buffer able to hold size bytes with one
// reference owned by the caller, or nil when the pool is unconfigured or
// exhausted.
func (p *Pool) GetBuffer(size uint32) render.RenderBuffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.width == 0 || p.height == 0 {
		logrus.WithFields(logrus.Fields{
			"function": "Pool.GetBuffer",
			"pool_id":  p.id,
		}).Debug("Pool not configured")
		return nil
	}

	frameSize := format.WidthToBytes(p.width, p.format) * p.height
	if frameSize < size {
		frameSize = size
	}

	if n := len(p.free); n > 0 {
		buffer := p.free[n-1]
		p.free = p.free[:n-1]
		if uint32(len(buffer.data)) >= frameSize {
			buffer.refCount.Store(1)
			buffer.loaded.Store(false)
			return buffer
		}
		// Undersized leftover from an earlier geometry; drop it.
		p.allocated--
	}

	if p.allocated >= p.capacity {
		logrus.WithFields(logrus.Fields{
			"function":  "Pool.GetBuffer",
			"pool_id":   p.id,
			"allocated": p.allocated,
			"capacity":  p.capacity,
		}).Debug("Pool exhausted")
		return nil
	}

	buffer := &Buffer{
		pool:   p,
		data:   make([]byte, frameSize),
		format: p.format,
		width:  p.width,
		height: p.height,
	}
	buffer.refCount.Store(1)
	p.allocated++

	return buffer
}

// IsCompatible reports whether the pool can serve the profile. The
// software path supports every scaling method and view mode but no shader
// filter.
func (p *Pool) IsCompatible(settings render.VideoSettings) bool {
	return settings.VideoFilter == ""
}

// Flush reclaims every idle buffer. Buffers still referenced return to
// the free list on their final Release.
func (p *Pool) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.allocated -= len(p.free)
	p.free = nil
}

// ID returns the pool's diagnostic identifier.
func (p *Pool) ID() string {
	return p.id
}

// Format returns the pool's pixel format.
func (p *Pool) Format() format.PixelFormat {
	return p.format
}

// returnBuffer places a fully released buffer back on the free list.
func (p *Pool) returnBuffer(b *Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Geometry moved on while the buffer was in flight; let it go.
	if b.width != p.width || b.height != p.height {
		p.allocated--
		return
	}

	b.loaded.Store(false)
	p.free = append(p.free, b)
}
