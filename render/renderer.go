package render

import (
	"github.com/sirupsen/logrus"
)

// GetRenderer resolves the renderer for a draw call. The effective profile
// is computed from the base settings and the optional override, then the
// buffer pools are checked in registration order; the first pool that
// yields a usable renderer wins, which makes the priority among
// simultaneously compatible backends deterministic.
//
// Returns nil when the manager is unconfigured or no pool yields a
// compatible renderer; the caller must treat nil as "nothing to draw".
func (m *Manager) GetRenderer(override SettingsOverride) Renderer {
	m.stateMu.Lock()
	unconfigured := m.state == StateUnconfigured
	m.stateMu.Unlock()
	if unconfigured {
		return nil
	}

	effective := m.getEffectiveSettings(override)

	var renderer Renderer
	for _, pool := range m.registry.GetBufferManager().GetBufferPools() {
		renderer = m.getRendererForPool(pool, effective)
		if renderer != nil {
			break
		}
	}

	if renderer != nil {
		renderer.SetScalingMethod(effective.ScalingMethod)
		renderer.SetViewMode(effective.ViewMode)
		renderer.SetRenderRotation(effective.RotationDegCCW)
	}

	return renderer
}

// getRendererForPool returns a live renderer bound to the pool and
// compatible with the profile, creating and registering one when none
// exists. A freshly created renderer is configured with the current stream
// descriptor and primed with a buffer from the cached frame before it is
// registered.
func (m *Manager) getRendererForPool(pool BufferPool, videoSettings VideoSettings) Renderer {
	if !pool.IsCompatible(videoSettings) {
		logrus.WithFields(logrus.Fields{
			"function":       "getRendererForPool",
			"scaling_method": videoSettings.ScalingMethod.String(),
		}).Error("Buffer pool is not compatible with effective settings")
		return nil
	}

	for _, renderer := range m.renderers {
		if renderer.GetBufferPool() != pool {
			continue
		}
		if !renderer.IsCompatible(videoSettings) {
			continue
		}
		return renderer
	}

	logrus.WithFields(logrus.Fields{
		"function":      "getRendererForPool",
		"render_system": m.registry.GetRenderSystemName(pool),
	}).Info("Creating renderer")

	renderer := m.registry.CreateRenderer(pool, RenderSettings{Video: videoSettings})
	if renderer == nil || !renderer.Configure(m.format, m.width, m.height) {
		logrus.WithFields(logrus.Fields{
			"function":      "getRendererForPool",
			"render_system": m.registry.GetRenderSystemName(pool),
			"format":        m.format.String(),
		}).Error("Failed to create renderer")
		return nil
	}

	// Ensure the new renderer has a buffer to draw before it becomes
	// reachable; while paused this materializes one from the cache.
	m.createRenderBuffer(renderer.GetBufferPool())

	m.renderers = append(m.renderers, renderer)

	return renderer
}

// getEffectiveSettings merges the override over the base settings and
// sanitizes the scaling method against the capability registry.
func (m *Manager) getEffectiveSettings(override SettingsOverride) VideoSettings {
	m.settingsMu.RLock()
	effective := m.baseSettings
	m.settingsMu.RUnlock()

	if override != nil {
		if override.HasVideoFilter() {
			effective.VideoFilter = override.GetVideoFilter()
		}
		if override.HasViewMode() {
			effective.ViewMode = override.GetViewMode()
		}
		if override.HasRotation() {
			effective.RotationDegCCW = override.GetRotation()
		}
	}

	if !m.registry.HasScalingMethod(effective.ScalingMethod) {
		effective.ScalingMethod = m.registry.GetDefaultScalingMethod()
	}

	return effective
}

// SupportsRenderFeature reports whether any live renderer implements the
// feature.
func (m *Manager) SupportsRenderFeature(feature Feature) bool {
	for _, renderer := range m.renderers {
		if renderer.Supports(feature) {
			return true
		}
	}
	return false
}

// SupportsScalingMethod reports whether any buffer pool can serve a
// profile using the method.
func (m *Manager) SupportsScalingMethod(method ScalingMethod) bool {
	for _, pool := range m.registry.GetBufferManager().GetBufferPools() {
		if pool.IsCompatible(VideoSettings{ScalingMethod: method}) {
			return true
		}
	}
	return false
}
