package raster

// RasterizerOption is a functional option for configuring a Rasterizer.
type RasterizerOption func(*rasterizerImpl)

// WithWorkers sets the number of row bands each draw call is split into.
// Values of one or less disable the band pool and rasterize on the calling
// goroutine.
//
// Parameters:
//   - workers: the band/worker count
//
// Returns:
//   - RasterizerOption: functional option to set the worker count
func WithWorkers(workers int) RasterizerOption {
	return func(r *rasterizerImpl) {
		r.workers = workers
	}
}

// WithDepthWrite controls whether covered pixels update the depth buffer.
// Depth testing always runs; disabling writes is useful for overlay passes
// that should test against, but not occlude, earlier geometry.
//
// Parameters:
//   - enabled: true to write depth for covered pixels
//
// Returns:
//   - RasterizerOption: functional option to set depth writing
func WithDepthWrite(enabled bool) RasterizerOption {
	return func(r *rasterizerImpl) {
		r.depthWrite = enabled
	}
}
