package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/glint-go/common"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/glint-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is the GPU-facing facade of the engine. It owns the backend for
// the selected GPU API and a cache of registered render pipelines, and
// exposes the full frame flow a caller drives per frame: WriteBuffers for
// uniform refreshes, then BeginFrame, DrawCall per mesh, EndFrame, Present.
// Resource setup (mesh buffers, bind groups, textures, samplers) happens once
// up front through the Init methods.
type Renderer interface {
	// Pipeline returns the registered pipeline cached under key, or nil when
	// no pipeline with that key was registered.
	//
	// Parameters:
	//   - key: the pipeline cache key
	//
	// Returns:
	//   - pipeline.Pipeline: the cached pipeline or nil
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines compiles each pipeline's GPU objects through the
	// backend and caches it under its PipelineKey. Keys already present are
	// skipped, so re-registering is harmless.
	//
	// Parameters:
	//   - pipelines: the pipeline configurations to compile and cache
	//
	// Returns:
	//   - error: the first compilation failure, if any
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the backend's swapchain and render targets for a
	// new surface size. Wire this to the window's resize callback.
	//
	// Parameters:
	//   - width: new surface width in pixels
	//   - height: new surface height in pixels
	Resize(width, height int)

	// InitMeshBuffers uploads marshaled vertex/index data into GPU buffers
	// stored on the provider.
	//
	// Parameters:
	//   - provider: destination for the created buffers
	//   - vertexData: marshaled vertex bytes
	//   - indexData: marshaled index bytes
	//   - indexCount: number of indices, consumed by indexed draws
	//
	// Returns:
	//   - error: an error when buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the buffers and bind group a layout descriptor
	// calls for and stores them on the provider. Texture and sampler
	// bindings must be initialized first via InitTextureView and
	// InitSampler.
	//
	// Parameters:
	//   - provider: destination for the created resources
	//   - descriptor: the bind group layout being satisfied
	//   - bufferUsageOverrides: extra usage flags OR'd in per binding, nil-safe
	//   - bufferSizeOverrides: buffer sizes replacing MinBindingSize per binding, nil-safe
	//
	// Returns:
	//   - error: an error when a binding cannot be satisfied
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// InitTextureView uploads staged pixels into a GPU texture and stores
	// its view on the provider at the given binding.
	//
	// Parameters:
	//   - provider: destination for the created view
	//   - bindingKey: binding index within the provider's group
	//   - stagingData: pixel bytes plus dimensions
	//
	// Returns:
	//   - error: an error when texture creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a GPU sampler from staged settings and stores it
	// on the provider at the given binding. Zero-valued settings mean
	// repeat addressing with linear filtering.
	//
	// Parameters:
	//   - provider: destination for the created sampler
	//   - bindingKey: binding index within the provider's group
	//   - samplerStagingData: addressing and filtering settings
	//
	// Returns:
	//   - error: an error when sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers pushes a batch of uniform uploads (camera, light, object
	// transforms) to the GPU queue. Called once per frame before BeginFrame
	// with every buffer that changed.
	//
	// Parameters:
	//   - writes: the queued uploads
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain image and opens the frame's
	// render pass. Pair with EndFrame; skip the frame when it errors.
	//
	// Returns:
	//   - error: an error when the swapchain image cannot be acquired
	BeginFrame() error

	// DrawCall encodes one indexed, instanced draw into the open render
	// pass. Bind group providers bind to group slots in slice order, so
	// their order must match the pipeline's group numbering.
	//
	// Parameters:
	//   - pipelineKey: cache key of a registered pipeline
	//   - meshProvider: provider carrying the geometry buffers
	//   - instanceCount: number of instances to draw
	//   - bindGroups: providers for groups 0..n in order
	//
	// Returns:
	//   - error: an error when no pipeline is registered under pipelineKey
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame closes the render pass and submits the frame's commands to
	// the GPU. The frame is not visible until Present.
	EndFrame()

	// Present hands the finished frame to the display. Call once per frame
	// after EndFrame.
	Present()

	// SetPresentMode changes how frames reach the display. Takes effect at
	// the next Resize.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)
}

type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	cfg         backendConfig

	pipelineCache map[string]pipeline.Pipeline
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer drawing to the given window's surface. The
// backend is stood up immediately: adapter and device acquisition, surface
// configuration, and render target creation all happen here, so a returned
// Renderer is ready for pipeline registration.
//
// Parameters:
//   - backendType: the GPU API to render through
//   - window: the window whose surface is rendered to
//   - options: creation-time settings (present mode, MSAA, adapter choice)
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		backendType:   backendType,
		pipelineCache: make(map[string]pipeline.Pipeline),
		cfg: backendConfig{
			sampleCount: MSAA4x,
			presentMode: PresentModeUncapped,
		},
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPUBackend(window.SurfaceDescriptor(), r.cfg)
	}

	r.backend.ConfigureSurface(window.Width(), window.Height())
	return r
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return err
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferUsageOverrides, bufferSizeOverrides)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("no render pipeline registered under %q", pipelineKey)
	}

	r.backend.DrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}
