package pipeline

import (
	"github.com/Carmen-Shannon/glint-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline pairs a vertex/fragment shader set with the fixed-function state
// (depth, blend, cull, topology) a GPU render pipeline is created from. A
// Pipeline starts out as pure configuration; the renderer compiles it into a
// *wgpu.RenderPipeline during registration and stores the result back via
// SetRenderPipeline.
type Pipeline interface {
	// PipelineKey returns the cache key draw calls reference this pipeline by.
	PipelineKey() string

	// Shader returns the shader attached for the given stage, or nil when
	// that stage has none.
	//
	// Parameters:
	//   - shaderType: the stage to look up (vertex or fragment)
	//
	// Returns:
	//   - shader.Shader: the attached shader or nil
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the compiled GPU pipeline, or nil before
	// registration.
	RenderPipeline() *wgpu.RenderPipeline

	// DepthTestEnabled reports whether fragments are depth-compared.
	DepthTestEnabled() bool

	// DepthWriteEnabled reports whether surviving fragments write depth.
	DepthWriteEnabled() bool

	// BlendEnabled reports whether color output is alpha-blended against the
	// target instead of replacing it.
	BlendEnabled() bool

	// CullMode returns which triangle faces are discarded before
	// rasterization.
	CullMode() wgpu.CullMode

	// Topology returns how the vertex stream is assembled into primitives.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order that counts as front-facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color channels the pipeline may write.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend equation used when blending is enabled.
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the compiled GPU pipeline after registration.
	//
	// Parameters:
	//   - p: the compiled pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

type pipeline struct {
	pipelineKey string

	// Stage shaders, required before the renderer can register the pipeline.
	vertexShader   shader.Shader
	fragmentShader shader.Shader

	// Compiled GPU object, nil until registration.
	renderPipeline *wgpu.RenderPipeline

	// Fixed-function state baked into the GPU pipeline at creation.
	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

var _ Pipeline = &pipeline{}

// standardAlphaBlend is the blend equation installed as the default
// BlendState: premultiplied-style source-over compositing. Inert unless a
// pipeline opts into blending.
var standardAlphaBlend = wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// NewPipeline creates a pipeline configuration under the given cache key.
// Defaults suit an opaque forward pass: depth test and write on, blending
// off, triangle-list topology, counter-clockwise front faces, and no culling
// so screen-flipped geometry still draws.
//
// Parameters:
//   - pipelineKey: the cache key draw calls reference this pipeline by
//   - opts: configuration options applied over the defaults
//
// Returns:
//   - Pipeline: the configured pipeline, not yet registered with a renderer
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	blend := standardAlphaBlend
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState:        &blend,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
