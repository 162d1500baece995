package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option used to configure a Shader during construction.
type ShaderBuilderOption func(*shader)

// WithBindGroupLayoutDescriptor declares the bind group layout for a group
// index this shader binds. The renderer uses these descriptors to create bind
// group layouts and the pipeline layout; groups declared by both stages of a
// pipeline must carry identical descriptors.
//
// Parameters:
//   - group: the bind group index the descriptor applies to
//   - desc: the layout descriptor for the group
//
// Returns:
//   - ShaderBuilderOption: a function that registers the descriptor on the shader
func WithBindGroupLayoutDescriptor(group int, desc wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = desc
	}
}

// WithVertexLayout declares the vertex buffer layouts for a buffer slot.
// Only meaningful on vertex shaders.
//
// Parameters:
//   - slot: the vertex buffer slot index
//   - layouts: the vertex buffer layouts for the slot
//
// Returns:
//   - ShaderBuilderOption: a function that registers the layouts on the shader
func WithVertexLayout(slot int, layouts []wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts[slot] = layouts
	}
}

// WithEntryPoint overrides the entry point name scanned from the source.
// Useful when a source file contains multiple entry points for the same stage.
//
// Parameters:
//   - name: the entry point function name
//
// Returns:
//   - ShaderBuilderOption: a function that sets the entry point on the shader
func WithEntryPoint(name string) ShaderBuilderOption {
	return func(s *shader) {
		s.entryPoint = name
	}
}
