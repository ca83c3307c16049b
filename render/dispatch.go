package render

// RenderWindow draws the fullscreen presentation. The rendering coordinate
// space is swapped to the video resolution for the duration of the draw
// and restored to the caller's resolution afterwards.
func (m *Manager) RenderWindow(clear bool, coordsRes Resolution) {
	renderer := m.GetRenderer(nil)
	if renderer == nil {
		return
	}

	m.context.SetRenderingResolution(m.context.GetVideoResolution())

	m.renderInternal(renderer, clear, 255)

	m.context.SetRenderingResolution(coordsRes)
}

// RenderControl draws the content into a UI-defined rectangle, clipped
// against the current clip region, with alpha derived from the host's
// compositing state when requested. Fullscreen video mode is suspended for
// the duration of the draw and restored afterwards. The override must be
// non-nil; it supplies the control's target dimensions.
func (m *Manager) RenderControl(clear, useAlpha bool, renderRegion Rect, override SettingsOverride) {
	renderer := m.GetRenderer(override)
	if renderer == nil {
		return
	}

	wasFullscreen := m.context.IsFullScreenVideo()
	if wasFullscreen {
		m.context.SetFullScreenVideo(false)
	}

	coords := override.GetDimensions()
	m.context.SetViewWindow(coords.X1, coords.Y1, coords.X2, coords.Y2)
	m.context.SetIdentityTransform()

	if clear {
		old := m.context.GetScissors()
		m.context.SetScissors(renderRegion.Intersect(old))
		m.context.Clear(0)
		m.context.SetScissors(old)
	}

	alpha := uint8(255)
	if useAlpha {
		alpha = uint8(m.context.MergeAlpha(0xFF000000) >> 24)
	}

	m.renderInternal(renderer, false, alpha)

	m.context.RemoveTransform()

	if wasFullscreen {
		m.context.SetFullScreenVideo(true)
	}
}

// ClearBackground clears the output to black.
func (m *Manager) ClearBackground() {
	m.context.Clear(0)
}

// renderInternal runs the shared draw path: pre-render hook, buffer fetch
// and upload under the graphics exclusion, then the frame-render hook.
//
// The graphics lock is scoped to the fetch and upload only; GPU upload is
// not thread-safe with other GPU work in the host, but the renderer's own
// draw does not need the exclusion. Once an upload starts it completes
// before the buffer is handed off. The loaded flag keeps the upload
// idempotent across draws of the same buffer.
func (m *Manager) renderInternal(renderer Renderer, clear bool, alpha uint8) {
	renderer.PreRender(clear)

	graphicsLock := m.context.GraphicsLock()
	graphicsLock.Lock()

	renderBuffer := m.GetRenderBuffer(renderer.GetBufferPool())

	// No buffer yet; try to materialize one from the paused-frame cache.
	if renderBuffer == nil {
		m.createRenderBuffer(renderer.GetBufferPool())
		renderBuffer = m.GetRenderBuffer(renderer.GetBufferPool())
	}

	if renderBuffer != nil {
		uploaded := true

		if !renderBuffer.IsLoaded() {
			uploaded = renderBuffer.UploadTexture()
			renderBuffer.SetLoaded(true)
		}

		if uploaded {
			renderer.SetBuffer(renderBuffer)
		}

		renderBuffer.Release()
	}

	graphicsLock.Unlock()

	renderer.RenderFrame(clear, alpha)
}
