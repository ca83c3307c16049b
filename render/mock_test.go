package render

import (
	"sync"

	"github.com/opd-ai/retrorender/format"
)

// Mock collaborators shared by the render manager tests.

type mockBuffer struct {
	pool      *mockPool
	data      []byte
	format    format.PixelFormat
	width     uint32
	height    uint32
	refCount  int32
	loaded    bool
	uploadOK  bool
	uploads   int
	memoryOps int
}

func newMockBuffer(pool *mockPool, f format.PixelFormat, width, height, size uint32) *mockBuffer {
	return &mockBuffer{
		pool:     pool,
		data:     make([]byte, size),
		format:   f,
		width:    width,
		height:   height,
		refCount: 1,
		uploadOK: true,
	}
}

func (b *mockBuffer) Acquire()            { b.refCount++ }
func (b *mockBuffer) Release()            { b.refCount-- }
func (b *mockBuffer) GetMemory() []byte   { b.memoryOps++; return b.data }
func (b *mockBuffer) ReleaseMemory()      { b.memoryOps-- }
func (b *mockBuffer) UploadTexture() bool { b.uploads++; return b.uploadOK }
func (b *mockBuffer) IsLoaded() bool      { return b.loaded }
func (b *mockBuffer) SetLoaded(l bool)    { b.loaded = l }

func (b *mockBuffer) GetFormat() format.PixelFormat { return b.format }
func (b *mockBuffer) GetWidth() uint32              { return b.width }
func (b *mockBuffer) GetHeight() uint32             { return b.height }
func (b *mockBuffer) GetFrameSize() uint32          { return uint32(len(b.data)) }
func (b *mockBuffer) GetPool() BufferPool           { return b.pool }

type mockPool struct {
	visible    bool
	compatible bool
	exhausted  bool
	format     format.PixelFormat
	width      uint32
	height     uint32
	buffers    []*mockBuffer
	flushes    int
}

func newMockPool(f format.PixelFormat, width, height uint32) *mockPool {
	return &mockPool{
		visible:    true,
		compatible: true,
		format:     f,
		width:      width,
		height:     height,
	}
}

func (p *mockPool) HasVisibleRenderer() bool { return p.visible }

func (p *mockPool) GetBuffer(size uint32) RenderBuffer {
	if p.exhausted {
		return nil
	}
	buffer := newMockBuffer(p, p.format, p.width, p.height, size)
	p.buffers = append(p.buffers, buffer)
	return buffer
}

func (p *mockPool) IsCompatible(settings VideoSettings) bool { return p.compatible }

func (p *mockPool) Flush() { p.flushes++ }

type mockBufferManager struct {
	pools   []BufferPool
	flushes int
}

func (m *mockBufferManager) GetBufferPools() []BufferPool { return m.pools }

func (m *mockBufferManager) FlushPools() {
	m.flushes++
	for _, pool := range m.pools {
		pool.(*mockPool).Flush()
	}
}

type mockRenderer struct {
	pool          BufferPool
	compatible    bool
	configureOK   bool
	configures    int
	flushes       int
	frameMoves    int
	preRenders    int
	setBuffers    []RenderBuffer
	renderFrames  int
	lastAlpha     uint8
	lastClear     bool
	scalingMethod ScalingMethod
	viewMode      ViewMode
	rotation      uint32
	features      map[Feature]bool
}

func newMockRenderer(pool BufferPool) *mockRenderer {
	return &mockRenderer{
		pool:        pool,
		compatible:  true,
		configureOK: true,
	}
}

func (r *mockRenderer) Configure(f format.PixelFormat, width, height uint32) bool {
	r.configures++
	return r.configureOK
}

func (r *mockRenderer) Flush()               { r.flushes++ }
func (r *mockRenderer) FrameMove()           { r.frameMoves++ }
func (r *mockRenderer) PreRender(clear bool) { r.preRenders++ }

func (r *mockRenderer) SetBuffer(buffer RenderBuffer) {
	r.setBuffers = append(r.setBuffers, buffer)
}

func (r *mockRenderer) RenderFrame(clear bool, alpha uint8) {
	r.renderFrames++
	r.lastClear = clear
	r.lastAlpha = alpha
}

func (r *mockRenderer) IsCompatible(settings VideoSettings) bool { return r.compatible }
func (r *mockRenderer) Supports(feature Feature) bool            { return r.features[feature] }

func (r *mockRenderer) SetScalingMethod(m ScalingMethod)  { r.scalingMethod = m }
func (r *mockRenderer) SetViewMode(m ViewMode)            { r.viewMode = m }
func (r *mockRenderer) SetRenderRotation(rotation uint32) { r.rotation = rotation }

func (r *mockRenderer) GetBufferPool() BufferPool { return r.pool }

type mockRegistry struct {
	bufferManager  *mockBufferManager
	context        *mockContext
	renderers      []*mockRenderer
	creates        int
	createFails    bool
	configureFails bool
	scalingOK      map[ScalingMethod]bool
	defaultMethod  ScalingMethod
}

func newMockRegistry(pools ...*mockPool) *mockRegistry {
	manager := &mockBufferManager{}
	for _, pool := range pools {
		manager.pools = append(manager.pools, pool)
	}
	return &mockRegistry{
		bufferManager: manager,
		context:       newMockContext(),
		scalingOK: map[ScalingMethod]bool{
			ScalingMethodNearest: true,
			ScalingMethodLinear:  true,
		},
		defaultMethod: ScalingMethodNearest,
	}
}

func (r *mockRegistry) CreateRenderer(pool BufferPool, settings RenderSettings) Renderer {
	r.creates++
	if r.createFails {
		return nil
	}
	renderer := newMockRenderer(pool)
	renderer.configureOK = !r.configureFails
	r.renderers = append(r.renderers, renderer)
	return renderer
}

func (r *mockRegistry) HasScalingMethod(method ScalingMethod) bool { return r.scalingOK[method] }
func (r *mockRegistry) GetDefaultScalingMethod() ScalingMethod     { return r.defaultMethod }
func (r *mockRegistry) GetRenderSystemName(pool BufferPool) string { return "mock" }
func (r *mockRegistry) GetBufferManager() BufferManager            { return r.bufferManager }
func (r *mockRegistry) GetRenderContext() RenderContext            { return r.context }

type mockContext struct {
	mu            sync.Mutex
	renderingRes  []Resolution
	videoRes      Resolution
	setVideoRes   []Resolution
	viewWindows   []Rect
	transforms    int
	removes       int
	scissors      Rect
	scissorCalls  []Rect
	clears        int
	fullscreen    bool
	fullscreenSet []bool
	alphaValue    uint32
}

func newMockContext() *mockContext {
	return &mockContext{
		videoRes:   Resolution{Width: 320, Height: 240, RefreshRate: 60},
		scissors:   Rect{X1: 0, Y1: 0, X2: 1920, Y2: 1080},
		alphaValue: 0xFF000000,
	}
}

func (c *mockContext) SetRenderingResolution(res Resolution) {
	c.renderingRes = append(c.renderingRes, res)
}

func (c *mockContext) GetVideoResolution() Resolution { return c.videoRes }

func (c *mockContext) SetVideoResolution(res Resolution) {
	c.setVideoRes = append(c.setVideoRes, res)
}

func (c *mockContext) SetViewWindow(x1, y1, x2, y2 float32) {
	c.viewWindows = append(c.viewWindows, Rect{X1: x1, Y1: y1, X2: x2, Y2: y2})
}

func (c *mockContext) SetIdentityTransform() { c.transforms++ }
func (c *mockContext) RemoveTransform()      { c.removes++ }

func (c *mockContext) GetScissors() Rect { return c.scissors }

func (c *mockContext) SetScissors(region Rect) {
	c.scissorCalls = append(c.scissorCalls, region)
}

func (c *mockContext) Clear(color uint32) { c.clears++ }

func (c *mockContext) IsFullScreenVideo() bool { return c.fullscreen }

func (c *mockContext) SetFullScreenVideo(fullscreen bool) {
	c.fullscreen = fullscreen
	c.fullscreenSet = append(c.fullscreenSet, fullscreen)
}

func (c *mockContext) MergeAlpha(color uint32) uint32 { return c.alphaValue }

func (c *mockContext) GraphicsLock() sync.Locker { return &c.mu }

type mockMessenger struct {
	fullscreenSwitches int
}

func (m *mockMessenger) SwitchToFullscreen() { m.fullscreenSwitches++ }

type mockOverride struct {
	hasFilter   bool
	filter      string
	hasViewMode bool
	viewMode    ViewMode
	hasRotation bool
	rotation    uint32
	dimensions  Rect
}

func (o *mockOverride) HasVideoFilter() bool   { return o.hasFilter }
func (o *mockOverride) GetVideoFilter() string { return o.filter }
func (o *mockOverride) HasViewMode() bool      { return o.hasViewMode }
func (o *mockOverride) GetViewMode() ViewMode  { return o.viewMode }
func (o *mockOverride) HasRotation() bool      { return o.hasRotation }
func (o *mockOverride) GetRotation() uint32    { return o.rotation }
func (o *mockOverride) GetDimensions() Rect    { return o.dimensions }
