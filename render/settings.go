package render

// ScalingMethod selects the filter used when a frame is stretched to the
// output size.
type ScalingMethod int

const (
	// ScalingMethodNearest is unfiltered nearest-neighbor sampling.
	ScalingMethodNearest ScalingMethod = iota
	// ScalingMethodLinear is bilinear filtering.
	ScalingMethodLinear
)

// String returns a human-readable scaling method name.
func (m ScalingMethod) String() string {
	switch m {
	case ScalingMethodNearest:
		return "nearest"
	case ScalingMethodLinear:
		return "linear"
	}
	return "unknown"
}

// ViewMode selects how the video rectangle maps onto the output window.
type ViewMode int

const (
	// ViewModeNormal letterboxes the video at its native aspect ratio.
	ViewModeNormal ViewMode = iota
	// ViewModeStretch4x3 stretches to a 4:3 rectangle.
	ViewModeStretch4x3
	// ViewModeFullscreen stretches to fill the output.
	ViewModeFullscreen
	// ViewModeOriginal displays at native size without scaling.
	ViewModeOriginal
)

// Feature identifies an optional renderer capability.
type Feature int

const (
	// FeatureRotation is arbitrary 90-degree rotation support.
	FeatureRotation Feature = iota
	// FeatureStretch is view-mode stretching support.
	FeatureStretch
	// FeatureZoom is pixel-zoom support.
	FeatureZoom
	// FeaturePixelRatio is non-square pixel aspect support.
	FeaturePixelRatio
)

// VideoSettings is the profile used to match buffer pools and renderers.
// The glossary calls the merged, sanitized form the "effective profile".
type VideoSettings struct {
	// VideoFilter names a shader preset, empty for none.
	VideoFilter string

	// ScalingMethod is the stretch filter.
	ScalingMethod ScalingMethod

	// ViewMode maps the video rectangle onto the output.
	ViewMode ViewMode

	// RotationDegCCW rotates the video counterclockwise, degrees.
	RotationDegCCW uint32
}

// RenderSettings bundles the settings handed to a renderer at creation.
type RenderSettings struct {
	Video VideoSettings
}

// Resolution describes an output display mode.
type Resolution struct {
	Width       uint32
	Height      uint32
	RefreshRate float64
}

// Rect is an axis-aligned rectangle in output coordinates.
type Rect struct {
	X1, Y1, X2, Y2 float32
}

// Intersect clips r against other, returning the overlapping region. An
// empty intersection collapses to a zero-area rectangle.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		X1: maxf(r.X1, other.X1),
		Y1: maxf(r.Y1, other.Y1),
		X2: minf(r.X2, other.X2),
		Y2: minf(r.Y2, other.Y2),
	}
	if out.X2 < out.X1 {
		out.X2 = out.X1
	}
	if out.Y2 < out.Y1 {
		out.Y2 = out.Y1
	}
	return out
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
