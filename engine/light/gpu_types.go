package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/glint-go/engine/shading"
)

// GPULightUniform is the GPU-aligned representation of the point light.
// Matches the WGSL LightUniform struct declared in the lit fragment shader
// (shading.LitFragmentShaderSource) exactly. Size: 64 bytes (four vec3
// slots, each padded to 16-byte alignment).
type GPULightUniform struct {
	Position [3]float32 // offset  0: world-space position
	_pad0    float32    // offset 12: padding to vec3 alignment
	Ambient  [3]float32 // offset 16: Ia
	_pad1    float32    // offset 28: padding to vec3 alignment
	Diffuse  [3]float32 // offset 32: Id
	_pad2    float32    // offset 44: padding to vec3 alignment
	Specular [3]float32 // offset 48: Is
	_pad3    float32    // offset 60: padding to 64-byte size
}

// Size returns the size of the GPULightUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULightUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULightUniform struct into a byte buffer suitable
// for GPU uniform upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, 64)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], 0) // padding
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Ambient[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Ambient[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.Ambient[2]))
	binary.LittleEndian.PutUint32(buf[28:32], 0) // padding
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(g.Diffuse[0]))
	binary.LittleEndian.PutUint32(buf[36:40], math.Float32bits(g.Diffuse[1]))
	binary.LittleEndian.PutUint32(buf[40:44], math.Float32bits(g.Diffuse[2]))
	binary.LittleEndian.PutUint32(buf[44:48], 0) // padding
	binary.LittleEndian.PutUint32(buf[48:52], math.Float32bits(g.Specular[0]))
	binary.LittleEndian.PutUint32(buf[52:56], math.Float32bits(g.Specular[1]))
	binary.LittleEndian.PutUint32(buf[56:60], math.Float32bits(g.Specular[2]))
	binary.LittleEndian.PutUint32(buf[60:64], 0) // padding
	return buf
}

// ToGPULight converts a Light into the GPU-aligned uniform struct consumed
// by the lit fragment shader. Disabled lights marshal with all-zero color
// triples, mirroring Light.ShadingParams.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULightUniform: the GPU-aligned representation
func ToGPULight(l Light) GPULightUniform {
	params := l.ShadingParams()
	return GPULightUniform{
		Position: params.Position,
		Ambient:  params.Ambient,
		Diffuse:  params.Diffuse,
		Specular: params.Specular,
	}
}

// FromShadingParams builds the GPU-aligned uniform struct directly from
// shading parameters, for callers that assemble LightParams without a Light.
//
// Parameters:
//   - params: the shading-stage light parameters
//
// Returns:
//   - GPULightUniform: the GPU-aligned representation
func FromShadingParams(params shading.LightParams) GPULightUniform {
	return GPULightUniform{
		Position: params.Position,
		Ambient:  params.Ambient,
		Diffuse:  params.Diffuse,
		Specular: params.Specular,
	}
}
