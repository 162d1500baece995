package renderer

// RendererBuilderOption is a creation-time setting applied by NewRenderer
// before the backend is stood up.
type RendererBuilderOption func(*renderer)

// WithPresentMode selects how finished frames reach the display. The default
// is PresentModeUncapped; pass PresentModeVSync to cap at the display
// refresh rate and rule out tearing.
//
// Parameters:
//   - mode: the present mode
//
// Returns:
//   - RendererBuilderOption: the option
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.cfg.presentMode = mode
	}
}

// WithMSAA sets the sample count for the main render pass. The default is
// MSAA4x; use MSAAOff for single-sampled rendering. MSAA8x and MSAA16x
// depend on adapter support.
//
// Parameters:
//   - count: the sample count
//
// Returns:
//   - RendererBuilderOption: the option
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.cfg.sampleCount = count
	}
}

// WithForceSoftwareRenderer makes adapter selection prefer a CPU fallback
// (SwiftShader, lavapipe) over hardware. Useful on headless machines and for
// comparing against the CPU rasterizer under identical scenes.
//
// Parameters:
//   - force: true to force the fallback adapter
//
// Returns:
//   - RendererBuilderOption: the option
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.cfg.forceFallbackAdapter = force
	}
}
