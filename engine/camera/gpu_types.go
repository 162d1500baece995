package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct declared in the lit vertex shader
// (shading.LitVertexShaderSource) exactly. View and projection ride as separate
// matrices so the shader composes projection * view * model in that order.
// Size: 144 bytes (std430 / WGSL aligned).
type GPUCameraUniform struct {
	View       [16]float32 // offset   0: view matrix (mat4x4<f32>)
	Projection [16]float32 // offset  64: projection matrix (mat4x4<f32>)
	Position   [3]float32  // offset 128: world-space camera position (vec3<f32>)
	_pad       float32     // offset 140: padding to 144 bytes
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.View[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Projection[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.Position[i]))
	}
	binary.LittleEndian.PutUint32(buf[140:], 0) // _pad
	return buf
}

// ToGPUCamera snapshots a Camera's current matrices and position into the
// GPU-aligned uniform representation.
//
// Parameters:
//   - c: the camera to snapshot
//
// Returns:
//   - GPUCameraUniform: the GPU-aligned camera uniform
func ToGPUCamera(c Camera) GPUCameraUniform {
	return GPUCameraUniform{
		View:       c.ViewMatrix(),
		Projection: c.ProjectionMatrix(),
		Position:   c.Position(),
	}
}
