package renderer

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/Carmen-Shannon/glint-go/common"
	"github.com/Carmen-Shannon/glint-go/engine/camera"
	"github.com/Carmen-Shannon/glint-go/engine/light"
	"github.com/Carmen-Shannon/glint-go/engine/mesh"
	"github.com/Carmen-Shannon/glint-go/engine/raster"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/material"
	"github.com/Carmen-Shannon/glint-go/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
)

// softwareRendererImpl is the implementation of the SoftwareRenderer interface.
type softwareRendererImpl struct {
	mu *sync.Mutex

	rasterizer raster.Rasterizer

	// samplers caches one CPU texture sampler per textured material, built
	// from the material's decoded diffuse texture on first use.
	samplers map[material.Material]shading.Sampler

	// scratch holds transformed vertex outputs, reused across draw calls to
	// avoid a per-draw allocation.
	scratch []shading.VertexOutput

	workers int
	cull    bool
}

// SoftwareRenderer runs the lit shading pipeline entirely on the CPU: the
// same vertex and fragment programs the GPU pipeline executes, driven by the
// raster package instead of a device. It needs no window, surface, or
// adapter, which makes it suitable for headless rendering, tests, and
// presenting through a plain pixel blitter.
//
// It is not a RendererBackend; draw calls take the scene components directly
// rather than going through bind groups and GPU buffers.
type SoftwareRenderer interface {
	// Rasterizer returns the underlying CPU rasterizer.
	//
	// Returns:
	//   - raster.Rasterizer: the rasterizer draws are submitted to
	Rasterizer() raster.Rasterizer

	// Resize replaces the render target with one of the given dimensions.
	// The new target starts cleared.
	//
	// Parameters:
	//   - width: new render target width in pixels
	//   - height: new render target height in pixels
	Resize(width, height int)

	// Clear fills the render target with the given color and resets depth.
	// Call once at the start of each frame before any DrawMesh calls.
	//
	// Parameters:
	//   - r, g, b, a: clear color components in [0, 1]
	Clear(r, g, b, a float32)

	// DrawMesh renders one mesh with the lit shading pipeline: the mesh is
	// frustum-culled by its bounding sphere, its vertices are transformed
	// with matrices derived from the camera and model matrix, and covered
	// pixels are shaded with the light, camera position, and material.
	// A nil or disabled light contributes nothing, leaving geometry black.
	//
	// Parameters:
	//   - cam: the camera supplying view/projection matrices and the eye position
	//   - lightSource: the point light shading this draw, may be nil
	//   - m: the mesh geometry to draw
	//   - mat: the material supplying the base color source
	//   - model: the object's model matrix (column-major)
	//
	// Returns:
	//   - error: an error if a required component is missing or the material's texture cannot be decoded
	DrawMesh(cam camera.Camera, lightSource light.Light, m mesh.Mesh, mat material.Material, model [16]float32) error

	// Pixels returns the render target's RGBA pixel buffer, top row first.
	// The slice aliases the live buffer; copy it before the next draw if it
	// needs to outlive the frame.
	//
	// Returns:
	//   - []byte: the RGBA pixel buffer
	Pixels() []byte

	// Image returns the render target as an image, sharing the live pixel
	// buffer.
	//
	// Returns:
	//   - *image.RGBA: the render target image
	Image() *image.RGBA
}

var _ SoftwareRenderer = &softwareRendererImpl{}

// NewSoftwareRenderer creates a SoftwareRenderer with a render target of the
// given dimensions. Frustum culling is enabled by default and draw calls are
// split across one rasterizer band per logical CPU.
//
// Parameters:
//   - width: render target width in pixels
//   - height: render target height in pixels
//   - options: variadic list of SoftwareRendererOption functions to configure the renderer
//
// Returns:
//   - SoftwareRenderer: the newly created renderer
func NewSoftwareRenderer(width, height int, options ...SoftwareRendererOption) SoftwareRenderer {
	s := &softwareRendererImpl{
		mu:       &sync.Mutex{},
		samplers: make(map[material.Material]shading.Sampler),
		cull:     true,
	}
	for _, option := range options {
		option(s)
	}

	var rasterOptions []raster.RasterizerOption
	if s.workers > 0 {
		rasterOptions = append(rasterOptions, raster.WithWorkers(s.workers))
	}
	s.rasterizer = raster.NewRasterizer(width, height, rasterOptions...)

	return s
}

func (s *softwareRendererImpl) Rasterizer() raster.Rasterizer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rasterizer
}

func (s *softwareRendererImpl) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rasterizer.Resize(width, height)
}

func (s *softwareRendererImpl) Clear(r, g, b, a float32) {
	s.rasterizer.Clear(r, g, b, a)
}

func (s *softwareRendererImpl) DrawMesh(cam camera.Camera, lightSource light.Light, m mesh.Mesh, mat material.Material, model [16]float32) error {
	if cam == nil || m == nil || mat == nil {
		return errors.New("camera, mesh, and material are all required for a draw call")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cull {
		vp := cam.ViewProjectionMatrix()
		frustum := common.ExtractFrustumFromMatrix(vp[:])
		center := common.MulPoint4(model[:], 0, 0, 0)
		radius := m.BoundingRadius() * maxAxisScale(model)
		if !frustum.SphereInFrustum(center[0], center[1], center[2], radius) {
			return nil
		}
	}

	// One derivation per draw call; every vertex shares the derived matrices.
	derived := cam.TransformSet(model).Derive()

	vertices := m.Vertices()
	if cap(s.scratch) < len(vertices) {
		s.scratch = make([]shading.VertexOutput, len(vertices))
	}
	outputs := s.scratch[:len(vertices)]
	for i := range vertices {
		outputs[i] = shading.TransformVertex(vertices[i].ShadingInput(), derived)
	}

	params, err := s.fragmentParams(cam, lightSource, mat)
	if err != nil {
		return err
	}

	s.rasterizer.DrawTriangles(outputs, m.Indices(), params)
	return nil
}

func (s *softwareRendererImpl) Pixels() []byte {
	return s.rasterizer.Framebuffer().Pixels()
}

func (s *softwareRendererImpl) Image() *image.RGBA {
	return s.rasterizer.Framebuffer().Image()
}

// fragmentParams assembles the per-draw-call fragment inputs from the scene
// components. Caller must hold the mutex.
func (s *softwareRendererImpl) fragmentParams(cam camera.Camera, lightSource light.Light, mat material.Material) (shading.FragmentParams, error) {
	params := shading.FragmentParams{
		CameraPosition: cam.Position(),
		UseTexture:     mat.UseTexture(),
		FlatColor:      mat.FlatColor(),
	}
	if lightSource != nil && lightSource.Enabled() {
		params.Light = lightSource.ShadingParams()
	}
	if mat.UseTexture() {
		sampler, err := s.materialSampler(mat)
		if err != nil {
			return shading.FragmentParams{}, err
		}
		params.Texture = sampler
	}
	return params, nil
}

// materialSampler returns the cached CPU sampler for a textured material,
// decoding the diffuse texture on first use. Caller must hold the mutex.
func (s *softwareRendererImpl) materialSampler(mat material.Material) (shading.Sampler, error) {
	if cached, ok := s.samplers[mat]; ok {
		return cached, nil
	}

	tex := mat.DiffuseTexture()
	if tex == nil {
		return nil, fmt.Errorf("material %q selects its texture source but has no diffuse texture", mat.Name())
	}
	pixels, width, height, err := tex.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode diffuse texture for material %q: %w", mat.Name(), err)
	}

	samplerConfig := defaultMaterialSampler()
	if tex.SamplerData != nil {
		samplerConfig = *tex.SamplerData
	}
	sampler := raster.NewTextureSampler(
		common.TextureStagingData{Pixels: pixels, Width: width, Height: height},
		samplerConfig,
	)
	s.samplers[mat] = sampler
	return sampler, nil
}

// defaultMaterialSampler mirrors the GPU backend's sampler defaults: repeat
// addressing with linear filtering.
func defaultMaterialSampler() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeRepeat,
		AddressModeV: wgpu.AddressModeRepeat,
		AddressModeW: wgpu.AddressModeRepeat,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
	}
}

// maxAxisScale returns the largest basis-vector length of the model matrix's
// upper 3x3 block, used to conservatively scale a model-space bounding radius
// into world space.
func maxAxisScale(model [16]float32) float32 {
	var maxLenSq float32
	for col := 0; col < 3; col++ {
		x := model[col*4]
		y := model[col*4+1]
		z := model[col*4+2]
		lenSq := x*x + y*y + z*z
		if lenSq > maxLenSq {
			maxLenSq = lenSq
		}
	}
	return float32(math.Sqrt(float64(maxLenSq)))
}
