package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/glint-go/common"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuRendererBackend is the WebGPU realization of the backend contract the
// Renderer facade delegates to. One instance owns the wgpu instance, adapter,
// device and surface for the lifetime of the renderer.
type wgpuRendererBackend interface {
	// ConfigureSurface (re)configures the swapchain and rebuilds the
	// size-dependent render targets (depth buffer and, when enabled, the
	// MSAA color target). Call on creation and again whenever the window
	// surface changes size.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode changes how finished frames reach the display. Takes
	// effect at the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the present mode
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline compiles a pipeline configuration into a GPU
	// render pipeline: shader modules, bind group layouts merged across the
	// two stages, the pipeline layout, and the pipeline object itself. The
	// compiled pipeline is stored back on p.
	//
	// Parameters:
	//   - p: the pipeline configuration to compile
	//
	// Returns:
	//   - error: an error when any GPU object creation fails
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitMeshBuffers uploads marshaled vertex and index data into fresh GPU
	// buffers stored on the provider, and records the index count used by
	// indexed draws.
	//
	// Parameters:
	//   - provider: destination for the created buffers
	//   - vertexData: marshaled vertex bytes
	//   - indexData: marshaled index bytes
	//   - indexCount: number of indices in indexData
	//
	// Returns:
	//   - error: an error when buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates the uniform buffers a layout descriptor calls
	// for (unless the provider already carries them), then creates the bind
	// group wiring buffers, texture views and samplers to their bindings.
	// Texture and sampler bindings must be populated via InitTextureView and
	// InitSampler beforehand.
	//
	// Parameters:
	//   - provider: destination for the created resources
	//   - descriptor: the bind group layout being satisfied
	//   - bufferUsageOverrides: extra usage flags OR'd in per binding, nil-safe
	//   - bufferSizeOverrides: buffer sizes replacing MinBindingSize per binding, nil-safe
	//
	// Returns:
	//   - error: an error when a binding cannot be satisfied or creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// InitTextureView uploads staged pixels into a new 2D texture and stores
	// its view on the provider at the given binding.
	//
	// Parameters:
	//   - provider: destination for the created view
	//   - bindingKey: binding index the texture occupies in its group
	//   - stagingData: pixel bytes plus dimensions
	//
	// Returns:
	//   - error: an error when texture or view creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler from staged settings and stores it on
	// the provider at the given binding. Zero-valued settings fall back to
	// repeat addressing with linear filtering.
	//
	// Parameters:
	//   - provider: destination for the created sampler
	//   - bindingKey: binding index the sampler occupies in its group
	//   - samplerStagingData: addressing and filtering settings
	//
	// Returns:
	//   - error: an error when sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers pushes a batch of uniform uploads to the GPU queue.
	// Writes whose destination buffer does not exist are skipped.
	//
	// Parameters:
	//   - writes: the queued uploads
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next swapchain image and opens the frame's
	// render pass. Pair with EndFrame.
	//
	// Returns:
	//   - error: an error when the swapchain image cannot be acquired
	BeginFrame() error

	// DrawCall encodes one indexed, instanced draw into the open render
	// pass. Bind group providers are bound to group slots in slice order.
	//
	// Parameters:
	//   - p: the compiled pipeline to draw with
	//   - meshProvider: provider carrying the geometry buffers
	//   - instanceCount: number of instances
	//   - bindGroups: providers bound to groups 0..n in order
	DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame closes the render pass and submits the frame's commands.
	// The frame is not visible until Present.
	EndFrame()

	// Present hands the finished swapchain image to the display and drops
	// the frame references.
	Present()
}

type wgpuBackend struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	sampleCount   MSAASampleCount

	// Size-dependent targets, rebuilt by ConfigureSurface. The textures are
	// retained alongside their views so stale pairs can be released on
	// reconfigure.
	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView
	renderPass       *wgpu.RenderPassDescriptor

	// In-flight frame state between BeginFrame and Present.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuBackend{}

// newWGPUBackend stands up the WebGPU stack for a window surface: instance,
// surface, adapter, device and queue. Panics when no adapter or device is
// available, since nothing can render without them.
func newWGPUBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, cfg backendConfig) wgpuRendererBackend {
	runtime.LockOSThread()

	b := &wgpuBackend{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: toWGPUPresentMode(cfg.presentMode),
		sampleCount: cfg.sampleCount,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: cfg.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(fmt.Errorf("no compatible GPU adapter: %w", err))
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Render Device",
	})
	if err != nil {
		panic(fmt.Errorf("GPU device request failed: %w", err))
	}
	b.device = device
	b.queue = device.GetQueue()

	return b
}

// toWGPUPresentMode maps the renderer's present mode to the wgpu equivalent.
func toWGPUPresentMode(mode PresentMode) wgpu.PresentMode {
	if mode == PresentModeVSync {
		return wgpu.PresentModeFifo
	}
	return wgpu.PresentModeImmediate
}

func (b *wgpuBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentMode = toWGPUPresentMode(mode)
}

func (b *wgpuBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	format := preferredSurfaceFormat(capabilities.Formats)
	b.surfaceFormat = &format

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.rebuildRenderTargets(width, height)
}

// rebuildRenderTargets recreates the depth buffer and optional MSAA color
// target at the new surface size, releasing the previous generation, and
// refreshes the cached render pass descriptor that references them.
// Caller holds b.mu.
func (b *wgpuBackend) rebuildRenderTargets(width, height int) {
	b.releaseRenderTargets()

	samples := uint32(b.sampleCount)
	msaa := samples > 1

	if msaa {
		// Rendering lands in the multisampled texture; the swapchain image
		// receives the resolved result as the pass's ResolveTarget.
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Color Target",
			Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   samples,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(fmt.Errorf("MSAA color target creation failed: %w", err))
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			panic(fmt.Errorf("MSAA color target view creation failed: %w", err))
		}
		b.msaaTexture = tex
		b.msaaTextureView = view
	}

	// The depth attachment's sample count has to match the color attachment.
	depthTex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Target",
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(fmt.Errorf("depth target creation failed: %w", err))
	}
	depthView, err := depthTex.CreateView(nil)
	if err != nil {
		panic(fmt.Errorf("depth target view creation failed: %w", err))
	}
	b.depthTexture = depthTex
	b.depthTextureView = depthView

	// Multisampled color is resolved, never stored; depth dies with the
	// frame either way.
	colorStore := wgpu.StoreOpStore
	if msaa {
		colorStore = wgpu.StoreOpDiscard
	}
	b.renderPass = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       b.msaaTextureView, // nil without MSAA; BeginFrame fills in the swapchain view
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    colorStore,
			ClearValue: wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

// releaseRenderTargets frees the current depth/MSAA textures and views, if
// any. Caller holds b.mu.
func (b *wgpuBackend) releaseRenderTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return errors.New("render pipeline needs both a vertex and a fragment shader")
	}

	vs, err := b.device.CreateShaderModule(vertexShader.Module())
	if err != nil {
		return fmt.Errorf("vertex shader module: %w", err)
	}
	fs, err := b.device.CreateShaderModule(fragmentShader.Module())
	if err != nil {
		return fmt.Errorf("fragment shader module: %w", err)
	}

	layouts, err := b.createStageLayouts(vertexShader, fragmentShader)
	if err != nil {
		return err
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return fmt.Errorf("pipeline layout: %w", err)
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    flattenVertexLayouts(vertexShader),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{b.colorTarget(p)},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: depthState(p),
	})
	if err != nil {
		return fmt.Errorf("render pipeline %q: %w", p.PipelineKey(), err)
	}

	p.SetRenderPipeline(created)
	return nil
}

// createStageLayouts merges the bind group layouts declared by the two shader
// stages and creates the GPU layout objects, indexed by group number.
func (b *wgpuBackend) createStageLayouts(vertexShader, fragmentShader shader.Shader) ([]*wgpu.BindGroupLayout, error) {
	merged := mergeStageLayouts(vertexShader.BindGroupLayoutDescriptors(), fragmentShader.BindGroupLayoutDescriptors())

	maxGroup := -1
	for group := range merged {
		if group > maxGroup {
			maxGroup = group
		}
	}

	layouts := make([]*wgpu.BindGroupLayout, maxGroup+1)
	for group, desc := range merged {
		layout, err := b.device.CreateBindGroupLayout(&desc)
		if err != nil {
			return nil, fmt.Errorf("bind group layout for group %d: %w", group, err)
		}
		layouts[group] = layout
	}
	return layouts, nil
}

// colorTarget derives the fragment output target from the pipeline's blend
// configuration and the configured swapchain format.
func (b *wgpuBackend) colorTarget(p pipeline.Pipeline) wgpu.ColorTargetState {
	target := wgpu.ColorTargetState{
		Format:    *b.surfaceFormat,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}
	return target
}

// depthState derives the depth-stencil configuration from the pipeline's
// depth flags. Disabled depth testing maps to an always-passing compare so
// the attachment format stays uniform across pipelines.
func depthState(p pipeline.Pipeline) *wgpu.DepthStencilState {
	compare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		compare = wgpu.CompareFunctionAlways
	}
	return &wgpu.DepthStencilState{
		Format:            wgpu.TextureFormatDepth24Plus,
		DepthWriteEnabled: p.DepthWriteEnabled(),
		DepthCompare:      compare,
		StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
	}
}

// flattenVertexLayouts collects a shader's per-slot vertex buffer layouts
// into one slice, in slot order.
func flattenVertexLayouts(s shader.Shader) []wgpu.VertexBufferLayout {
	bySlot := s.VertexLayouts()
	slots := make([]int, 0, len(bySlot))
	for slot := range bySlot {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	var layouts []wgpu.VertexBufferLayout
	for _, slot := range slots {
		layouts = append(layouts, bySlot[slot]...)
	}
	return layouts
}

func (b *wgpuBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(vertexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Vertex Buffer",
			Size:  uint64(len(vertexData)),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("vertex buffer for %q: %w", provider.Label(), err)
		}
		b.queue.WriteBuffer(buf, 0, vertexData)
		provider.SetVertexBuffer(buf)
	}

	if len(indexData) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: provider.Label() + " Index Buffer",
			Size:  uint64(len(indexData)),
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("index buffer for %q: %w", provider.Label(), err)
		}
		b.queue.WriteBuffer(buf, 0, indexData)
		provider.SetIndexBuffer(buf)
	}

	provider.SetIndexCount(indexCount)
	return nil
}

func (b *wgpuBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(descriptor.Entries) == 0 {
		return nil
	}

	layout := provider.BindGroupLayout()
	if layout == nil {
		created, err := b.device.CreateBindGroupLayout(&descriptor)
		if err != nil {
			return fmt.Errorf("bind group layout for %q: %w", provider.Label(), err)
		}
		layout = created
		provider.SetBindGroupLayout(layout)
	}

	entries := make([]wgpu.BindGroupEntry, len(descriptor.Entries))
	for i, entry := range descriptor.Entries {
		binding := int(entry.Binding)

		switch {
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			view := provider.TextureView(binding)
			if view == nil {
				return fmt.Errorf("binding %d of %q wants a texture but none was initialized; call InitTextureView first", binding, provider.Label())
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, TextureView: view}

		case entry.Sampler.Type != wgpu.SamplerBindingTypeUndefined:
			samp := provider.Sampler(binding)
			if samp == nil {
				return fmt.Errorf("binding %d of %q wants a sampler but none was initialized; call InitSampler first", binding, provider.Label())
			}
			entries[i] = wgpu.BindGroupEntry{Binding: entry.Binding, Sampler: samp}

		default:
			buf, err := b.bindingBuffer(provider, entry, bufferUsageOverrides, bufferSizeOverrides)
			if err != nil {
				return err
			}
			entries[i] = wgpu.BindGroupEntry{
				Binding: entry.Binding,
				Buffer:  buf,
				Offset:  0,
				Size:    wgpu.WholeSize,
			}
		}
	}

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   provider.Label() + " Bind Group",
		Layout:  layout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("bind group for %q: %w", provider.Label(), err)
	}
	provider.SetBindGroup(bindGroup)

	return nil
}

// bindingBuffer returns the provider's existing buffer for a layout entry or
// creates one sized and flagged for the entry's binding type. Caller holds
// b.mu.
func (b *wgpuBackend) bindingBuffer(provider bind_group_provider.BindGroupProvider, entry wgpu.BindGroupLayoutEntry, usageOverrides map[int]wgpu.BufferUsage, sizeOverrides map[int]uint64) (*wgpu.Buffer, error) {
	binding := int(entry.Binding)
	if buf := provider.Buffer(binding); buf != nil {
		return buf, nil
	}

	var usage wgpu.BufferUsage
	switch entry.Buffer.Type {
	case wgpu.BufferBindingTypeUniform:
		usage = wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	case wgpu.BufferBindingTypeStorage, wgpu.BufferBindingTypeReadOnlyStorage:
		usage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
	}
	if extra, ok := usageOverrides[binding]; ok {
		usage |= extra
	}

	size := entry.Buffer.MinBindingSize
	if override, ok := sizeOverrides[binding]; ok {
		size = override
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Buffer",
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("buffer for binding %d of %q: %w", binding, provider.Label(), err)
	}
	provider.SetBuffer(binding, buf)
	return buf, nil
}

func (b *wgpuBackend) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Textures hold gamma-encoded bytes and the lit fragment shader decodes
	// them explicitly, so the format must be plain Unorm. An sRGB format
	// would add a hardware decode on top of the shader's own.
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     provider.Label() + " Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8Unorm,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("texture for %q: %w", provider.Label(), err)
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture: tex,
			Aspect:  wgpu.TextureAspectAll,
		},
		stagingData.Pixels,
		&wgpu.TextureDataLayout{
			BytesPerRow:  stagingData.Width * 4,
			RowsPerImage: stagingData.Height,
		},
		&wgpu.Extent3D{
			Width:              stagingData.Width,
			Height:             stagingData.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		return fmt.Errorf("texture view for %q: %w", provider.Label(), err)
	}
	provider.SetTextureView(bindingKey, view)

	return nil
}

func (b *wgpuBackend) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         provider.Label() + " Sampler",
		AddressModeU:  common.Coalesce(samplerStagingData.AddressModeU, wgpu.AddressModeRepeat),
		AddressModeV:  common.Coalesce(samplerStagingData.AddressModeV, wgpu.AddressModeRepeat),
		AddressModeW:  common.Coalesce(samplerStagingData.AddressModeW, wgpu.AddressModeRepeat),
		MagFilter:     common.Coalesce(samplerStagingData.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(samplerStagingData.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(samplerStagingData.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(samplerStagingData.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(samplerStagingData.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(samplerStagingData.MaxAnisotropy, 1),
		Compare:       samplerStagingData.Compare,
	})
	if err != nil {
		return fmt.Errorf("sampler for %q: %w", provider.Label(), err)
	}
	provider.SetSampler(bindingKey, samp)

	return nil
}

func (b *wgpuBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		buf := w.Provider.Buffer(w.Binding)
		if buf == nil {
			continue
		}
		b.queue.WriteBuffer(buf, w.Offset, w.Data)
	}
}

func (b *wgpuBackend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A still-held swapchain image means the previous frame never presented;
	// acquiring another would trip wgpu validation.
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("swapchain acquire: %w", err)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("swapchain view: %w", err)
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("command encoder: %w", err)
	}

	// With MSAA the multisampled texture stays the pass's View and the
	// swapchain image resolves out of it; without MSAA the swapchain image
	// is drawn into directly.
	if b.sampleCount > 1 {
		b.renderPass.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPass.ColorAttachments[0].View = view
	}

	b.frameEncoder = encoder
	b.framePass = encoder.BeginRenderPass(b.renderPass)
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuBackend) DrawCall(
	p pipeline.Pipeline,
	meshProvider bind_group_provider.BindGroupProvider,
	instanceCount uint32,
	bindGroups []bind_group_provider.BindGroupProvider,
) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}

	b.framePass.SetPipeline(p.RenderPipeline())
	for slot, bg := range bindGroups {
		b.framePass.SetBindGroup(uint32(slot), bg.BindGroup(), nil)
	}

	b.framePass.SetVertexBuffer(0, meshProvider.VertexBuffer(), 0, wgpu.WholeSize)
	b.framePass.SetIndexBuffer(meshProvider.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	b.framePass.DrawIndexed(uint32(meshProvider.IndexCount()), instanceCount, 0, 0, 0)
}

func (b *wgpuBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}

	b.framePass.End()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		// Nothing to submit; drop the whole frame including the swapchain
		// image so the next BeginFrame can acquire cleanly.
		b.releaseFrame()
		return
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()

	b.frameEncoder.Release()
	b.frameEncoder = nil
}

func (b *wgpuBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()
	b.releaseFrame()
}

// releaseFrame drops every reference held for the in-flight frame. Caller
// holds b.mu.
func (b *wgpuBackend) releaseFrame() {
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	b.framePass = nil
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

// preferredSurfaceFormat picks the swapchain format for the main render pass.
// The lit fragment shader writes gamma-encoded color itself, so an sRGB
// swapchain would encode a second time on write. Prefer a non-sRGB format
// when the adapter offers one.
func preferredSurfaceFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range formats {
		switch f {
		case wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb:
			continue
		default:
			return f
		}
	}
	return formats[0]
}

// mergeStageLayouts unions the bind group layout descriptors declared by the
// vertex and fragment shaders, keyed by group index. A group declared by a
// single stage passes through unchanged; a group declared by both has its
// entries merged by binding number with visibility flags OR'd where the same
// binding appears in each stage.
func mergeStageLayouts(vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor, len(vertexLayouts)+len(fragmentLayouts))
	for group, desc := range vertexLayouts {
		merged[group] = desc
	}

	for group, fragDesc := range fragmentLayouts {
		vertDesc, shared := merged[group]
		if !shared {
			merged[group] = fragDesc
			continue
		}

		byBinding := make(map[uint32]wgpu.BindGroupLayoutEntry, len(vertDesc.Entries)+len(fragDesc.Entries))
		for _, e := range vertDesc.Entries {
			byBinding[e.Binding] = e
		}
		for _, e := range fragDesc.Entries {
			if prev, ok := byBinding[e.Binding]; ok {
				e.Visibility |= prev.Visibility
			}
			byBinding[e.Binding] = e
		}

		entries := make([]wgpu.BindGroupLayoutEntry, 0, len(byBinding))
		for _, e := range byBinding {
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})

		merged[group] = wgpu.BindGroupLayoutDescriptor{
			Label:   vertDesc.Label,
			Entries: entries,
		}
	}

	return merged
}
