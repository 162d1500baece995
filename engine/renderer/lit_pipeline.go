package renderer

import (
	"github.com/Carmen-Shannon/glint-go/common"
	"github.com/Carmen-Shannon/glint-go/engine/camera"
	"github.com/Carmen-Shannon/glint-go/engine/light"
	"github.com/Carmen-Shannon/glint-go/engine/mesh"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/material"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/glint-go/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
)

// LitPipelineKey is the pipeline cache key for the standard lit forward pass.
const LitPipelineKey = "lit"

// Bind group indices for the lit pipeline. Group 0 is bound once per frame,
// group 1 once per object, and group 2 once per material.
const (
	LitFrameGroup    = 0
	LitObjectGroup   = 1
	LitMaterialGroup = 2
)

// Bindings within the frame group.
const (
	LitCameraBinding = 0
	LitLightBinding  = 1
)

// Bindings within the material group.
const (
	LitMaterialParamsBinding = 0
	LitDiffuseTextureBinding = 1
	LitDiffuseSamplerBinding = 2
)

// NewLitPipeline assembles the render pipeline for the lit forward pass:
// the canonical WGSL vertex and fragment stages from the shading package,
// wired to the bind group layouts below and the standard 32-byte vertex
// layout. Register the result with Renderer.RegisterPipelines, then create
// matching bind groups with the exported layout descriptors.
//
// Returns:
//   - pipeline.Pipeline: the lit pipeline, ready for registration
func NewLitPipeline() pipeline.Pipeline {
	// Both stages declare the frame group, so the descriptor must be
	// identical on each for the merged pipeline layout to match the bind
	// groups created from it.
	frame := LitFrameBindGroupLayout()

	vertexShader := shader.NewShader("lit_vertex", shader.ShaderTypeVertex, shading.LitVertexShaderSource,
		shader.WithBindGroupLayoutDescriptor(LitFrameGroup, frame),
		shader.WithBindGroupLayoutDescriptor(LitObjectGroup, LitObjectBindGroupLayout()),
		shader.WithVertexLayout(0, []wgpu.VertexBufferLayout{LitVertexBufferLayout()}),
	)
	fragmentShader := shader.NewShader("lit_fragment", shader.ShaderTypeFragment, shading.LitFragmentShaderSource,
		shader.WithBindGroupLayoutDescriptor(LitFrameGroup, frame),
		shader.WithBindGroupLayoutDescriptor(LitMaterialGroup, LitMaterialBindGroupLayout()),
	)

	return pipeline.NewPipeline(LitPipelineKey,
		pipeline.WithVertexShader(vertexShader),
		pipeline.WithFragmentShader(fragmentShader),
	)
}

// LitFrameBindGroupLayout returns the layout descriptor for the lit
// pipeline's per-frame data: the camera uniform at binding 0, visible to
// both stages, and the light uniform at binding 1, fragment only. One
// provider typically hosts both buffers and is bound at group 0.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the frame group layout
func LitFrameBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	var cam camera.GPUCameraUniform
	var lt light.GPULightUniform
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Lit Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    LitCameraBinding,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(cam.Size()),
				},
			},
			{
				Binding:    LitLightBinding,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(lt.Size()),
				},
			},
		},
	}
}

// LitObjectBindGroupLayout returns the layout descriptor for the lit
// pipeline's per-object data: the transform uniform (model and normal
// matrices) at binding 0, bound at group 1.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the object group layout
func LitObjectBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	var tf shading.GPUTransformUniform
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Lit Object Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(tf.Size()),
				},
			},
		},
	}
}

// LitMaterialBindGroupLayout returns the layout descriptor for the lit
// pipeline's material data, bound at group 2: the material params uniform,
// the diffuse texture, and its sampler. The texture and sampler bindings are
// always present because the fragment shader samples unconditionally, even
// for flat-color materials.
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the material group layout
func LitMaterialBindGroupLayout() wgpu.BindGroupLayoutDescriptor {
	var mp material.GPUMaterialParams
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Lit Material Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    LitMaterialParamsBinding,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(mp.Size()),
				},
			},
			{
				Binding:    LitDiffuseTextureBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    LitDiffuseSamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// LitVertexBufferLayout returns the vertex buffer layout for the lit
// pipeline: interleaved position, normal, and UV matching mesh.GPUVertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for vertex buffer slot 0
func LitVertexBufferLayout() wgpu.VertexBufferLayout {
	var v mesh.GPUVertex
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(v.Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}

// WhiteTextureStagingData returns a 1x1 white pixel texture. Flat-color
// materials bind this at the diffuse texture slot so the unconditional
// sample in the fragment shader has something to read; the selector ignores
// the sampled value.
//
// Returns:
//   - common.TextureStagingData: a single opaque white RGBA pixel
func WhiteTextureStagingData() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: []byte{255, 255, 255, 255},
		Width:  1,
		Height: 1,
	}
}
