package renderer

// RendererBackendType selects which GPU API implementation backs the
// Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU renders through WebGPU (wgpu-native).
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how finished frames are handed to the display.
type PresentMode int

const (
	// PresentModeVSync queues frames for the next vertical blank. Frame rate
	// is capped at the display's refresh rate and tearing cannot occur.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped replaces the pending frame immediately. Lowest
	// latency, but frames may tear. This is the default.
	PresentModeUncapped
)

// MSAASampleCount is the multisample anti-aliasing sample count for the main
// render pass. WebGPU guarantees 1 and 4 everywhere; 8 and 16 depend on the
// adapter.
type MSAASampleCount uint32

const (
	// MSAAOff renders single-sampled.
	MSAAOff MSAASampleCount = 1

	// MSAA4x renders with 4 samples per pixel, the guaranteed and default
	// setting.
	MSAA4x MSAASampleCount = 4

	// MSAA8x renders with 8 samples per pixel where the adapter supports it.
	MSAA8x MSAASampleCount = 8

	// MSAA16x renders with 16 samples per pixel where the adapter supports
	// it.
	MSAA16x MSAASampleCount = 16
)

// backendConfig carries the creation-time settings NewRenderer collects from
// its options and hands to the backend constructor.
type backendConfig struct {
	forceFallbackAdapter bool
	sampleCount          MSAASampleCount
	presentMode          PresentMode
}

// RendererBackend is what the Renderer facade delegates GPU work to. It
// currently has a single realization, the WebGPU backend.
type RendererBackend interface {
	wgpuRendererBackend
}
