package render

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/retrorender/format"
	"github.com/opd-ai/retrorender/scale"
)

// Manager orchestrates the handoff of decoded frames from a producer to
// the renderers attached to compatible buffer pools.
//
// Two locks guard disjoint data: stateMu guards the state machine, and
// bufferMu guards the active render-buffer set, the cached frame, and the
// playback speed. Neither lock is held across unbounded-latency work; the
// large copies into the frame cache run with bufferMu released. The
// renderer set is owned by the UI/render thread and needs no lock of its
// own; the scaler cache has a dedicated lock because both the producer and
// render paths convert frames.
type Manager struct {
	registry  CapabilityRegistry
	context   RenderContext
	messenger Messenger

	// Stream descriptor, replaced wholesale on each Configure call.
	format    format.PixelFormat
	width     uint32
	height    uint32
	maxWidth  uint32
	maxHeight uint32

	state   State
	stateMu sync.Mutex

	// Active buffer set: at most one buffer per pool with a visible
	// renderer, swapped atomically per ingested frame.
	renderBuffers []RenderBuffer

	// One-frame cache, retained while playback speed is zero so a late
	// renderer can still materialize a buffer.
	cachedFrame    []byte
	hasCachedFrame bool

	speed    float64
	bufferMu sync.Mutex

	flushPending            atomic.Bool
	updateResolutionPending atomic.Bool

	// UI/render thread only.
	renderers []Renderer

	// Conversion contexts keyed by destination format, shared between
	// the producer and render paths.
	scalers  map[format.PixelFormat]*scale.Context
	scalerMu sync.Mutex

	baseSettings VideoSettings
	settingsMu   sync.RWMutex
}

// NewManager creates a render manager bound to a capability registry and
// a host messenger.
func NewManager(registry CapabilityRegistry, messenger Messenger) (*Manager, error) {
	logrus.WithFields(logrus.Fields{
		"function": "NewManager",
	}).Info("Creating render manager")

	if registry == nil {
		return nil, ErrNilRegistry
	}
	if messenger == nil {
		return nil, ErrNilMessenger
	}
	context := registry.GetRenderContext()
	if context == nil {
		return nil, ErrNilRenderContext
	}

	return &Manager{
		registry:  registry,
		context:   context,
		messenger: messenger,
		state:     StateUnconfigured,
		speed:     1.0,
		scalers:   make(map[format.PixelFormat]*scale.Context),
		baseSettings: VideoSettings{
			ScalingMethod: registry.GetDefaultScalingMethod(),
			ViewMode:      ViewModeNormal,
		},
	}, nil
}

// Initialize brackets the start of the manager's usable lifetime.
func (m *Manager) Initialize() {
	logrus.WithFields(logrus.Fields{
		"function": "Initialize",
	}).Debug("Initializing render manager")
}

// Deinitialize releases every scaler context and active buffer reference,
// drops the renderer set, and forces the state back to unconfigured. Safe
// to call even if the manager was never configured.
func (m *Manager) Deinitialize() {
	logrus.WithFields(logrus.Fields{
		"function": "Deinitialize",
	}).Debug("Deinitializing render manager")

	m.scalerMu.Lock()
	for dstFormat, scaler := range m.scalers {
		if scaler != nil {
			scaler.Release()
		}
		delete(m.scalers, dstFormat)
	}
	m.scalerMu.Unlock()

	m.bufferMu.Lock()
	for _, buffer := range m.renderBuffers {
		buffer.Release()
	}
	m.renderBuffers = nil
	m.cachedFrame = nil
	m.hasCachedFrame = false
	m.bufferMu.Unlock()

	m.renderers = nil

	m.stateMu.Lock()
	m.state = StateUnconfigured
	m.stateMu.Unlock()
}

// Configure records a new stream descriptor: pixel format, the negotiated
// frame size, and the upper bound a pool must support. From unconfigured
// it arms the configuring transition; otherwise it requests a flush and
// arms reconfiguration. The transition to configured commits on the next
// FrameMove tick.
//
// Safe to call concurrently with AddFrame; AddFrame checks state and
// dimensions before touching any buffer.
func (m *Manager) Configure(f format.PixelFormat, nominalWidth, nominalHeight, maxWidth, maxHeight uint32) bool {
	logrus.WithFields(logrus.Fields{
		"function":       "Configure",
		"format":         f.String(),
		"nominal_width":  nominalWidth,
		"nominal_height": nominalHeight,
		"max_width":      maxWidth,
		"max_height":     maxHeight,
	}).Info("Configuring video stream")

	m.format = f
	m.maxWidth = maxWidth
	m.maxHeight = maxHeight
	m.width = nominalWidth
	m.height = nominalHeight

	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	if m.state == StateUnconfigured {
		m.state = StateConfiguring
	} else {
		m.Flush()
		m.state = StateReconfiguring
	}

	return true
}

// SetSpeed records the playback speed. A speed of exactly zero means
// paused; paused ingestion retains a copy of each frame in the cache.
func (m *Manager) SetSpeed(speed float64) {
	m.bufferMu.Lock()
	m.speed = speed
	m.bufferMu.Unlock()
}

// AddFrame ingests one decoded frame. The frame is copied into a buffer
// from every pool that currently has a visible renderer, and the active
// buffer set is swapped to the new buffers.
//
// Dropped frames are expected under backpressure: the call is a silent
// no-op when the manager is not configured, a flush is pending, or the
// input is malformed. A frame whose dimensions differ from the stream
// descriptor is not ingested; it triggers a reconfiguration instead and
// the next frame proceeds normally.
func (m *Manager) AddFrame(data []byte, size, width, height, orientationDegCCW uint32) {
	if m.flushPending.Load() || m.getState() != StateConfigured {
		return
	}

	if data == nil || size == 0 || uint32(len(data)) < size || width == 0 || height == 0 {
		logrus.WithFields(logrus.Fields{
			"function": "AddFrame",
			"size":     size,
			"data_len": len(data),
			"width":    width,
			"height":   height,
		}).Debug("Dropping malformed frame")
		return
	}

	if width != m.width || height != m.height {
		logrus.WithFields(logrus.Fields{
			"function":   "AddFrame",
			"old_width":  m.width,
			"old_height": m.height,
			"new_width":  width,
			"new_height": height,
		}).Debug("Frame dimensions changed, reconfiguring")
		m.Configure(m.format, width, height, m.maxWidth, m.maxHeight)
		return
	}

	// Copy the frame into every pool with a visible renderer.
	var renderBuffers []RenderBuffer
	for _, pool := range m.registry.GetBufferManager().GetBufferPools() {
		if !pool.HasVisibleRenderer() {
			continue
		}

		buffer := pool.GetBuffer(size)
		if buffer == nil {
			logrus.WithFields(logrus.Fields{
				"function": "AddFrame",
				"size":     size,
			}).Debug("Unable to get render buffer for frame")
			continue
		}

		m.copyFrame(buffer, m.format, data, size, width, height)
		renderBuffers = append(renderBuffers, buffer)
	}

	m.bufferMu.Lock()
	defer m.bufferMu.Unlock()

	// Swap the active buffer set, releasing the previous references.
	for _, buffer := range m.renderBuffers {
		buffer.Release()
	}
	m.renderBuffers = renderBuffers

	// Cache the frame if it arrived while paused. The copy itself runs
	// with bufferMu released so a large frame never stalls the buffer
	// lock.
	if m.speed == 0 {
		cachedFrame := m.cachedFrame
		m.cachedFrame = nil

		if !m.hasCachedFrame {
			cachedFrame = make([]byte, size)
			m.hasCachedFrame = true
		}

		if len(cachedFrame) > 0 {
			m.bufferMu.Unlock()
			copy(cachedFrame, data[:len(cachedFrame)])
			m.bufferMu.Lock()
			m.cachedFrame = cachedFrame
		}
	}
}

// FrameMove advances the manager by one UI tick: it resolves any pending
// flush, commits an armed state transition, and forwards the tick to every
// live renderer. The state lock is released before renderer work runs.
func (m *Manager) FrameMove() {
	m.checkFlush()
	m.updateResolution()

	configured := false

	m.stateMu.Lock()
	switch m.state {
	case StateConfiguring:
		m.messenger.SwitchToFullscreen()
		m.state = StateConfigured

		logrus.WithFields(logrus.Fields{
			"function": "FrameMove",
			"format":   m.format.String(),
			"width":    m.width,
			"height":   m.height,
		}).Info("Renderer configured on first frame")

	case StateReconfiguring:
		logrus.WithFields(logrus.Fields{
			"function":  "FrameMove",
			"renderers": len(m.renderers),
		}).Debug("Reconfiguring renderers")

		for _, renderer := range m.renderers {
			renderer.Configure(m.format, m.width, m.height)
		}
		m.state = StateConfigured
	}
	if m.state == StateConfigured {
		configured = true
	}
	m.stateMu.Unlock()

	if configured {
		for _, renderer := range m.renderers {
			renderer.FrameMove()
		}
	}
}

// Flush requests that all in-flight buffered and cached frame state be
// discarded without tearing down configuration. Only a flag is set here;
// the work happens in checkFlush at the top of the next tick. Safe to call
// from any goroutine.
func (m *Manager) Flush() {
	m.flushPending.Store(true)
}

// checkFlush performs a pending flush: manager buffers and cache first,
// then renderer buffers, then the pools. The ordering prevents a renderer
// from being handed a buffer that is about to be invalidated. While the
// flush is pending, ingestion and buffer access no-op.
func (m *Manager) checkFlush() {
	if !m.flushPending.Load() {
		return
	}

	logrus.WithFields(logrus.Fields{
		"function": "checkFlush",
	}).Debug("Flushing render buffers")

	m.bufferMu.Lock()
	for _, buffer := range m.renderBuffers {
		buffer.Release()
	}
	m.renderBuffers = nil
	m.cachedFrame = nil
	m.hasCachedFrame = false
	m.bufferMu.Unlock()

	for _, renderer := range m.renderers {
		renderer.Flush()
	}

	m.registry.GetBufferManager().FlushPools()

	m.flushPending.Store(false)
}

// TriggerUpdateResolution requests a display-resolution update at the next
// tick. Safe to call from any goroutine.
func (m *Manager) TriggerUpdateResolution() {
	m.updateResolutionPending.Store(true)
}

// updateResolution consumes a pending resolution trigger. The switch only
// applies while the context shows fullscreen video; otherwise the trigger
// stays armed for a later tick.
func (m *Manager) updateResolution() {
	if !m.updateResolutionPending.Load() {
		return
	}

	if m.context.IsFullScreenVideo() {
		m.context.SetVideoResolution(Resolution{Width: m.width, Height: m.height})
		m.updateResolutionPending.Store(false)
	}
}

// SetRenderSettings replaces the base video settings merged into every
// effective profile.
func (m *Manager) SetRenderSettings(settings VideoSettings) {
	m.settingsMu.Lock()
	m.baseSettings = settings
	m.settingsMu.Unlock()
}

// GetRenderBuffer returns the current buffer for the given pool with a
// reference acquired for the caller, or nil when the pool has no current
// buffer, the manager is not configured, or a flush is pending. Callers
// must Release the buffer when done.
func (m *Manager) GetRenderBuffer(pool BufferPool) RenderBuffer {
	if m.flushPending.Load() || m.getState() != StateConfigured {
		return nil
	}

	m.bufferMu.Lock()
	defer m.bufferMu.Unlock()

	for _, buffer := range m.renderBuffers {
		if buffer.GetPool() == pool {
			buffer.Acquire()
			return buffer
		}
	}

	return nil
}

// createRenderBuffer materializes a buffer for the pool from the cached
// frame, so a renderer created while paused still has content to draw.
// No-op when the pool already has a current buffer or no cache exists.
func (m *Manager) createRenderBuffer(pool BufferPool) {
	if m.flushPending.Load() || m.getState() != StateConfigured {
		return
	}

	m.bufferMu.Lock()
	defer m.bufferMu.Unlock()

	if m.hasRenderBufferLocked(pool) || !m.hasCachedFrame {
		return
	}

	cachedFrame := m.cachedFrame
	m.cachedFrame = nil

	if len(cachedFrame) == 0 {
		logrus.WithFields(logrus.Fields{
			"function": "createRenderBuffer",
		}).Error("Failed to create render buffer, no cached frame")
		return
	}

	logrus.WithFields(logrus.Fields{
		"function": "createRenderBuffer",
		"size":     len(cachedFrame),
	}).Debug("Creating render buffer from cached frame")

	buffer := pool.GetBuffer(uint32(len(cachedFrame)))
	if buffer != nil {
		m.bufferMu.Unlock()
		m.copyFrame(buffer, m.format, cachedFrame, uint32(len(cachedFrame)), m.width, m.height)
		m.bufferMu.Lock()
		m.renderBuffers = append(m.renderBuffers, buffer)
	}

	m.cachedFrame = cachedFrame
}

// hasRenderBufferLocked reports whether the pool has a current buffer.
// Caller must hold bufferMu.
func (m *Manager) hasRenderBufferLocked(pool BufferPool) bool {
	for _, buffer := range m.renderBuffers {
		if buffer.GetPool() == pool {
			return true
		}
	}
	return false
}

func (m *Manager) getState() State {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.state
}
