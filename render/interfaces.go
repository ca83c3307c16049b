package render

import (
	"sync"

	"github.com/opd-ai/retrorender/format"
)

// RenderBuffer is one frame's worth of renderer-owned memory, reference
// counted, owned by a BufferPool and transiently referenced by the manager
// and a renderer.
//
// Every Acquire must be matched by a Release on every code path. GetMemory
// and ReleaseMemory bracket raw access to the backing bytes; the frame copy
// path never leaves memory mapped past its own scope.
type RenderBuffer interface {
	// Acquire takes a reference on the buffer.
	Acquire()

	// Release drops a reference. The buffer returns to its pool when the
	// count reaches zero.
	Release()

	// GetMemory returns the writable backing bytes, or nil if the buffer
	// cannot be mapped.
	GetMemory() []byte

	// ReleaseMemory unmaps memory obtained from GetMemory.
	ReleaseMemory()

	// UploadTexture uploads the buffer contents to GPU memory. Returns
	// false when the upload failed.
	UploadTexture() bool

	// IsLoaded reports whether UploadTexture has already run for the
	// current contents.
	IsLoaded() bool

	// SetLoaded marks the upload state.
	SetLoaded(loaded bool)

	// GetFormat returns the buffer's pixel format.
	GetFormat() format.PixelFormat

	// GetWidth returns the buffer's width in pixels.
	GetWidth() uint32

	// GetHeight returns the buffer's height in pixels.
	GetHeight() uint32

	// GetFrameSize returns the size of the backing memory in bytes.
	GetFrameSize() uint32

	// GetPool returns the pool that owns this buffer.
	GetPool() BufferPool
}

// BufferPool owns a set of reusable render buffers sized for one renderer
// backend.
type BufferPool interface {
	// HasVisibleRenderer reports whether a visible renderer is currently
	// attached to this pool. Frames are only copied into pools with a
	// visible renderer.
	HasVisibleRenderer() bool

	// GetBuffer returns a free buffer capable of holding size bytes, or
	// nil when the pool is exhausted. The returned buffer carries one
	// reference owned by the caller.
	GetBuffer(size uint32) RenderBuffer

	// IsCompatible reports whether the pool can serve the given video
	// settings profile.
	IsCompatible(settings VideoSettings) bool
}

// BufferManager enumerates buffer pools in a stable registration order.
// The order defines the priority among simultaneously compatible render
// backends.
type BufferManager interface {
	// GetBufferPools returns all registered pools in registration order.
	GetBufferPools() []BufferPool

	// FlushPools discards pending state in every pool.
	FlushPools()
}

// Renderer consumes render buffers and draws them. One instance exists per
// compatible (buffer pool, video settings profile) combination.
type Renderer interface {
	// Configure prepares the renderer for a stream. Returns false when
	// the renderer cannot handle the format or geometry.
	Configure(f format.PixelFormat, width, height uint32) bool

	// Flush discards any buffered frame state.
	Flush()

	// FrameMove advances per-tick renderer state.
	FrameMove()

	// PreRender runs before a draw.
	PreRender(clear bool)

	// SetBuffer hands the renderer the buffer to draw. The renderer must
	// Acquire the buffer if it keeps it past the call.
	SetBuffer(buffer RenderBuffer)

	// RenderFrame draws the current buffer.
	RenderFrame(clear bool, alpha uint8)

	// IsCompatible reports whether this renderer can serve the given
	// video settings profile.
	IsCompatible(settings VideoSettings) bool

	// Supports reports whether the renderer implements a render feature.
	Supports(feature Feature) bool

	SetScalingMethod(method ScalingMethod)
	SetViewMode(mode ViewMode)
	SetRenderRotation(rotationDegCCW uint32)

	// GetBufferPool returns the pool this renderer draws from.
	GetBufferPool() BufferPool
}

// CapabilityRegistry creates renderers and answers capability queries for
// the process. It stands in for the host's process-info registry.
type CapabilityRegistry interface {
	// CreateRenderer instantiates a renderer for the pool, or nil when
	// no backend serves it.
	CreateRenderer(pool BufferPool, settings RenderSettings) Renderer

	// HasScalingMethod reports whether the process supports a scaling
	// method.
	HasScalingMethod(method ScalingMethod) bool

	// GetDefaultScalingMethod returns the fallback scaling method.
	GetDefaultScalingMethod() ScalingMethod

	// GetRenderSystemName returns a human-readable backend name for the
	// pool, for diagnostics.
	GetRenderSystemName(pool BufferPool) string

	// GetBufferManager returns the process buffer-pool manager.
	GetBufferManager() BufferManager

	// GetRenderContext returns the host rendering context.
	GetRenderContext() RenderContext
}

// RenderContext is the host's coordinate-space, clipping, and GPU-access
// surface. All methods are called from the UI/render thread.
type RenderContext interface {
	SetRenderingResolution(res Resolution)
	GetVideoResolution() Resolution
	SetVideoResolution(res Resolution)

	SetViewWindow(x1, y1, x2, y2 float32)
	SetIdentityTransform()
	RemoveTransform()

	GetScissors() Rect
	SetScissors(region Rect)
	Clear(color uint32)

	IsFullScreenVideo() bool
	SetFullScreenVideo(fullscreen bool)

	// MergeAlpha merges a color with the current compositing alpha.
	MergeAlpha(color uint32) uint32

	// GraphicsLock returns the global exclusion serializing GPU command
	// submission with other GPU consumers in the host.
	GraphicsLock() sync.Locker
}

// Messenger delivers one-shot notifications to the host UI.
type Messenger interface {
	// SwitchToFullscreen asks the host to enter fullscreen video. Fired
	// exactly once per configuration that starts from unconfigured.
	SwitchToFullscreen()
}

// SettingsOverride supplies per-control overrides of the base video
// settings. A nil override means "use the base settings unchanged".
type SettingsOverride interface {
	HasVideoFilter() bool
	GetVideoFilter() string

	HasViewMode() bool
	GetViewMode() ViewMode

	HasRotation() bool
	GetRotation() uint32

	// GetDimensions returns the target rectangle for control rendering.
	GetDimensions() Rect
}
