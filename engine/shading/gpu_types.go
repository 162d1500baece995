package shading

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// LitVertexShaderSource is the canonical WGSL implementation of the vertex
// stage. Mirrors TransformVertex exactly; the TransformUniform struct it
// declares matches GPUTransformUniform layout (128 bytes).
//
//go:embed assets/lit_vertex.wgsl
var LitVertexShaderSource string

// LitFragmentShaderSource is the canonical WGSL implementation of the
// fragment stage. Mirrors ComputeLighting and ShadeFragment exactly,
// including the shading constants.
//
//go:embed assets/lit_fragment.wgsl
var LitFragmentShaderSource string

// GPUTransformUniform is the GPU-aligned per-object transform data.
// Matches the WGSL TransformUniform struct layout exactly (see
// LitVertexShaderSource). Size: 128 bytes (two mat4x4<f32>).
type GPUTransformUniform struct {
	Model        [16]float32 // offset  0: model matrix, column-major
	NormalMatrix [16]float32 // offset 64: inverse-transpose model matrix, column-major
}

// Size returns the size of the GPUTransformUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUTransformUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUTransformUniform struct into a byte buffer
// suitable for GPU uniform upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUTransformUniform) Marshal() []byte {
	buf := make([]byte, 128)
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(g.Model[i]))
	}
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(buf[64+i*4:64+(i+1)*4], math.Float32bits(g.NormalMatrix[i]))
	}
	return buf
}

// ToGPUTransform converts derived draw-call transforms into the GPU-aligned
// uniform struct consumed by the lit vertex shader.
//
// Parameters:
//   - d: the derived transforms for the draw call
//
// Returns:
//   - GPUTransformUniform: the GPU-aligned representation
func ToGPUTransform(d DerivedTransforms) GPUTransformUniform {
	return GPUTransformUniform{
		Model:        d.Model,
		NormalMatrix: d.NormalMatrix,
	}
}
