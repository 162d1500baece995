package pipeline

import (
	"github.com/Carmen-Shannon/glint-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption configures a pipeline during construction via
// NewPipeline.
type PipelineBuilderOption func(*pipeline)

// WithVertexShader attaches the vertex-stage shader. Required before the
// pipeline can be registered.
//
// Parameters:
//   - s: the vertex shader
//
// Returns:
//   - PipelineBuilderOption: the option
func WithVertexShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.vertexShader = s
	}
}

// WithFragmentShader attaches the fragment-stage shader. Required before the
// pipeline can be registered.
//
// Parameters:
//   - s: the fragment shader
//
// Returns:
//   - PipelineBuilderOption: the option
func WithFragmentShader(s shader.Shader) PipelineBuilderOption {
	return func(p *pipeline) {
		p.fragmentShader = s
	}
}

// WithDepthTestEnabled toggles depth comparison for fragments. Disabling it
// makes every fragment pass regardless of depth.
//
// Parameters:
//   - enabled: whether fragments are depth-compared
//
// Returns:
//   - PipelineBuilderOption: the option
func WithDepthTestEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthTestEnabled = enabled
	}
}

// WithDepthWriteEnabled toggles depth writes from surviving fragments.
// Typically disabled for transparent passes drawn after opaque geometry.
//
// Parameters:
//   - enabled: whether surviving fragments write depth
//
// Returns:
//   - PipelineBuilderOption: the option
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithBlendEnabled toggles alpha blending of the color output against the
// render target, using the pipeline's BlendState.
//
// Parameters:
//   - enabled: whether color output is blended
//
// Returns:
//   - PipelineBuilderOption: the option
func WithBlendEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = enabled
	}
}

// WithCullMode selects which triangle faces are discarded before
// rasterization.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - PipelineBuilderOption: the option
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology selects how the vertex stream is assembled into primitives.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - PipelineBuilderOption: the option
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithFrontFace selects the winding order that counts as front-facing,
// which orients the cull mode.
//
// Parameters:
//   - frontFace: the front-facing winding order
//
// Returns:
//   - PipelineBuilderOption: the option
func WithFrontFace(frontFace wgpu.FrontFace) PipelineBuilderOption {
	return func(p *pipeline) {
		p.frontFace = frontFace
	}
}

// WithWriteMask restricts which color channels the pipeline writes.
//
// Parameters:
//   - writeMask: the color write mask
//
// Returns:
//   - PipelineBuilderOption: the option
func WithWriteMask(writeMask wgpu.ColorWriteMask) PipelineBuilderOption {
	return func(p *pipeline) {
		p.writeMask = writeMask
	}
}

// WithBlendState replaces the default source-over blend equation. Only takes
// effect on pipelines with blending enabled.
//
// Parameters:
//   - blendState: the blend equation
//
// Returns:
//   - PipelineBuilderOption: the option
func WithBlendState(blendState *wgpu.BlendState) PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendState = blendState
	}
}
