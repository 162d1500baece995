package mesh

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/glint-go/engine/shading"
)

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct declared in the lit vertex shader
// (shading.LitVertexShaderSource) exactly: position, normal, and UV at
// locations 0, 1, and 2.
// Size: 32 bytes (std430 aligned, no padding required).
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 32)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(g.TexCoord[0]))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(g.TexCoord[1]))
	return buf
}

// ShadingInput converts the vertex into the form consumed by the shading
// pipeline's vertex stage.
//
// Returns:
//   - shading.VertexInput: the per-vertex shading inputs
func (g *GPUVertex) ShadingInput() shading.VertexInput {
	return shading.VertexInput{
		Position: g.Position,
		Normal:   g.Normal,
		TexCoord: g.TexCoord,
	}
}

// ComputeBoundingRadius returns the radius of the origin-centered sphere
// enclosing every vertex position. NewMesh uses it as the default bounding
// radius, which in turn feeds frustum culling.
//
// Parameters:
//   - vertices: the vertex data to measure
//
// Returns:
//   - float32: the largest vertex distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
