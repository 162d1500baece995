// Package raster implements CPU triangle rasterization for the lit shading
// pipeline. It reproduces what the GPU's fixed-function stages do between the
// shading package's vertex and fragment programs: viewport transform,
// edge-function coverage, barycentric linear interpolation of the per-vertex
// outputs, and a less-than depth test. All shading math comes from the
// shading package; the rasterizer adds none of its own.
package raster

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/glint-go/engine/shading"
)

const (
	// nearWEpsilon is the minimum clip-space w accepted for rasterization.
	// A triangle with any vertex at or below it is dropped whole; there is
	// no near-plane clipping.
	nearWEpsilon float32 = 1e-6

	// bandQueueSize and bandIdleTimeout configure the scanline band worker pool.
	bandQueueSize   = 256
	bandIdleTimeout = 1 * time.Second
)

// rasterizerImpl is the implementation of the Rasterizer interface.
type rasterizerImpl struct {
	mu *sync.Mutex

	fb         *Framebuffer
	depthWrite bool

	// bandPool manages a bounded set of reusable goroutines that rasterize
	// disjoint row bands of the framebuffer. Workers persist across frames,
	// avoiding per-frame goroutine spawn/teardown overhead.
	bandPool worker.DynamicWorkerPool
	workers  int
}

// Rasterizer defines the interface for the CPU rasterization stage.
// Callers transform mesh vertices with shading.TransformVertex, then hand the
// resulting outputs here; the rasterizer projects them to the framebuffer,
// interpolates across each triangle, and shades covered pixels with
// shading.ShadeFragment.
type Rasterizer interface {
	// Framebuffer returns the render target the rasterizer draws into.
	//
	// Returns:
	//   - *Framebuffer: the owned framebuffer
	Framebuffer() *Framebuffer

	// Resize replaces the framebuffer with one of the given dimensions.
	// The new framebuffer starts cleared.
	//
	// Parameters:
	//   - width: new framebuffer width in pixels
	//   - height: new framebuffer height in pixels
	Resize(width, height int)

	// Clear fills the framebuffer with the given color and resets depth.
	//
	// Parameters:
	//   - r, g, b, a: clear color components in [0, 1]
	Clear(r, g, b, a float32)

	// DrawTriangles rasterizes indexed triangles into the framebuffer. Every
	// three consecutive indices form one triangle referencing the transformed
	// vertex outputs. Both winding orders are shaded (no face culling);
	// triangles behind or crossing the camera plane are dropped whole.
	//
	// Parameters:
	//   - vertices: transformed vertex outputs, indexed by the index slice
	//   - indices: triangle indices into vertices
	//   - params: the per-draw-call fragment shading parameters
	DrawTriangles(vertices []shading.VertexOutput, indices []uint32, params shading.FragmentParams)

	// Workers returns the number of row bands the framebuffer is split into
	// per draw call.
	//
	// Returns:
	//   - int: the configured worker count
	Workers() int
}

var _ Rasterizer = &rasterizerImpl{}

// NewRasterizer creates a Rasterizer with an owned framebuffer of the given
// dimensions. By default it splits each draw call across one row band per
// logical CPU; use WithWorkers to override.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//   - options: functional options to configure the rasterizer
//
// Returns:
//   - Rasterizer: the newly created rasterizer
func NewRasterizer(width, height int, options ...RasterizerOption) Rasterizer {
	r := &rasterizerImpl{
		mu:         &sync.Mutex{},
		fb:         NewFramebuffer(width, height),
		depthWrite: true,
		workers:    runtime.NumCPU(),
	}
	for _, option := range options {
		option(r)
	}
	if r.workers > 1 {
		r.bandPool = worker.NewDynamicWorkerPool(r.workers, bandQueueSize, bandIdleTimeout)
	}
	return r
}

func (r *rasterizerImpl) Framebuffer() *Framebuffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fb
}

func (r *rasterizerImpl) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fb = NewFramebuffer(width, height)
}

func (r *rasterizerImpl) Clear(cr, cg, cb, ca float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fb.Clear(cr, cg, cb, ca)
}

func (r *rasterizerImpl) Workers() int {
	return r.workers
}

func (r *rasterizerImpl) DrawTriangles(vertices []shading.VertexOutput, indices []uint32, params shading.FragmentParams) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tris := prepareTriangles(vertices, indices, r.fb.width, r.fb.height)
	if len(tris) == 0 {
		return
	}

	bands := r.workers
	if bands > r.fb.height {
		bands = r.fb.height
	}
	if bands <= 1 || r.bandPool == nil {
		r.scanRows(tris, params, 0, r.fb.height)
		return
	}

	// Split the framebuffer into disjoint row bands, one task per band. Bands
	// never share pixels, so tasks write the color and depth buffers without
	// coordination. A WaitGroup provides the per-frame barrier since
	// pool.Wait() blocks until workers idle-exit, which is unsuitable for
	// frame-rate workloads.
	rowsPerBand := (r.fb.height + bands - 1) / bands
	var wg sync.WaitGroup
	for b := 0; b < bands; b++ {
		y0 := b * rowsPerBand
		y1 := y0 + rowsPerBand
		if y1 > r.fb.height {
			y1 = r.fb.height
		}
		wg.Add(1)
		r.bandPool.SubmitTask(worker.Task{
			ID: b,
			Do: func() (any, error) {
				defer wg.Done()
				r.scanRows(tris, params, y0, y1)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// screenVertex pairs a vertex output with its projected screen-space position.
type screenVertex struct {
	x, y, z float32
	out     shading.VertexOutput
}

// preparedTriangle holds per-triangle setup shared read-only by all bands.
type preparedTriangle struct {
	v0, v1, v2 screenVertex
	invArea    float32
	minX, maxX int
	minY, maxY int
}

// prepareTriangles projects vertex outputs to screen space and performs the
// per-triangle setup: near-plane rejection, degenerate rejection, winding
// normalization, and bounding box computation. Triangles with any vertex at
// w <= nearWEpsilon are dropped whole. Back-facing triangles are flipped
// rather than culled, matching a cull-mode-none pipeline.
func prepareTriangles(vertices []shading.VertexOutput, indices []uint32, width, height int) []preparedTriangle {
	tris := make([]preparedTriangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		o0 := vertices[indices[i]]
		o1 := vertices[indices[i+1]]
		o2 := vertices[indices[i+2]]

		if o0.ClipPosition[3] <= nearWEpsilon ||
			o1.ClipPosition[3] <= nearWEpsilon ||
			o2.ClipPosition[3] <= nearWEpsilon {
			continue
		}

		v0 := toScreen(o0, width, height)
		v1 := toScreen(o1, width, height)
		v2 := toScreen(o2, width, height)

		// Signed doubled area; zero means the triangle projects to a line.
		area := edgeFunction(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
		if area == 0 {
			continue
		}
		if area < 0 {
			v0, v2 = v2, v0
			area = -area
		}

		minX := int(math.Floor(float64(min3f(v0.x, v1.x, v2.x))))
		maxX := int(math.Ceil(float64(max3f(v0.x, v1.x, v2.x))))
		minY := int(math.Floor(float64(min3f(v0.y, v1.y, v2.y))))
		maxY := int(math.Ceil(float64(max3f(v0.y, v1.y, v2.y))))
		if minX < 0 {
			minX = 0
		}
		if minY < 0 {
			minY = 0
		}
		if maxX > width {
			maxX = width
		}
		if maxY > height {
			maxY = height
		}
		if minX >= maxX || minY >= maxY {
			continue
		}

		tris = append(tris, preparedTriangle{
			v0:      v0,
			v1:      v1,
			v2:      v2,
			invArea: 1.0 / area,
			minX:    minX,
			maxX:    maxX,
			minY:    minY,
			maxY:    maxY,
		})
	}
	return tris
}

// scanRows rasterizes every prepared triangle's intersection with the row
// range [y0, y1). Pixel centers sit at half-integer coordinates.
func (r *rasterizerImpl) scanRows(tris []preparedTriangle, params shading.FragmentParams, y0, y1 int) {
	fb := r.fb
	for ti := range tris {
		tri := &tris[ti]
		top := tri.minY
		if top < y0 {
			top = y0
		}
		bottom := tri.maxY
		if bottom > y1 {
			bottom = y1
		}

		for y := top; y < bottom; y++ {
			rowBase := y * fb.width
			py := float32(y) + 0.5

			for x := tri.minX; x < tri.maxX; x++ {
				px := float32(x) + 0.5

				w0 := edgeFunction(tri.v1.x, tri.v1.y, tri.v2.x, tri.v2.y, px, py)
				w1 := edgeFunction(tri.v2.x, tri.v2.y, tri.v0.x, tri.v0.y, px, py)
				w2 := edgeFunction(tri.v0.x, tri.v0.y, tri.v1.x, tri.v1.y, px, py)
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}

				w0 *= tri.invArea
				w1 *= tri.invArea
				w2 *= tri.invArea

				z := w0*tri.v0.z + w1*tri.v1.z + w2*tri.v2.z
				pixelIndex := rowBase + x
				if !(z < fb.depth[pixelIndex]) {
					continue
				}

				frag := shading.Interpolate(tri.v0.out, tri.v1.out, tri.v2.out, w0, w1, w2)
				rgba := shading.ShadeFragment(frag, params)

				bufIdx := pixelIndex * 4
				fb.pix[bufIdx+0] = colorByte(rgba[0])
				fb.pix[bufIdx+1] = colorByte(rgba[1])
				fb.pix[bufIdx+2] = colorByte(rgba[2])
				fb.pix[bufIdx+3] = colorByte(rgba[3])
				if r.depthWrite {
					fb.depth[pixelIndex] = z
				}
			}
		}
	}
}

// toScreen performs the perspective divide and viewport transform. NDC maps
// to pixels with +x right and +y up flipped to the framebuffer's top-down
// rows; z passes through unchanged since the projection already lands it in
// [0, 1].
func toScreen(out shading.VertexOutput, width, height int) screenVertex {
	invW := 1.0 / out.ClipPosition[3]
	ndcX := out.ClipPosition[0] * invW
	ndcY := out.ClipPosition[1] * invW
	ndcZ := out.ClipPosition[2] * invW
	return screenVertex{
		x:   (ndcX*0.5 + 0.5) * float32(width),
		y:   (1.0 - (ndcY*0.5 + 0.5)) * float32(height),
		z:   ndcZ,
		out: out,
	}
}

// edgeFunction computes the signed doubled area of the triangle (a, b, c).
// Positive when c lies to the left of the directed edge a->b.
func edgeFunction(ax, ay, bx, by, cx, cy float32) float32 {
	return (cx-ax)*(by-ay) - (cy-ay)*(bx-ax)
}

func min3f(a, b, c float32) float32 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func max3f(a, b, c float32) float32 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}
