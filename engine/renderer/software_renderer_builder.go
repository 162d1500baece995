package renderer

// SoftwareRendererOption is a functional option applied to a software renderer during construction via NewSoftwareRenderer.
type SoftwareRendererOption func(*softwareRendererImpl)

// WithSoftwareWorkers sets the number of rasterizer row bands each draw call
// is split into. Values of one or less rasterize on the calling goroutine;
// zero (the default) uses one band per logical CPU.
//
// Parameters:
//   - workers: the band/worker count
//
// Returns:
//   - SoftwareRendererOption: a function that applies the worker count option to a software renderer
func WithSoftwareWorkers(workers int) SoftwareRendererOption {
	return func(s *softwareRendererImpl) {
		s.workers = workers
	}
}

// WithFrustumCulling controls whether DrawMesh rejects meshes whose bounding
// sphere falls entirely outside the camera frustum before transforming any
// vertices. Enabled by default.
//
// Parameters:
//   - enabled: true to cull, false to transform and rasterize every mesh
//
// Returns:
//   - SoftwareRendererOption: a function that applies the culling option to a software renderer
func WithFrustumCulling(enabled bool) SoftwareRendererOption {
	return func(s *softwareRendererImpl) {
		s.cull = enabled
	}
}
