package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParams is the GPU-aligned uniform for the lit fragment shader's
// base-color selection. Matches the WGSL MaterialParams struct declared in
// shading.LitFragmentShaderSource exactly: the vec3 flat color packs the u32
// selector into its alignment padding.
// Size: 16 bytes (one vec4 slot, std140 aligned).
type GPUMaterialParams struct {
	FlatColor  [3]float32 // offset  0: RGB color used when the selector is off (12 bytes)
	UseTexture uint32     // offset 12: 1 to sample the diffuse texture, 0 for the flat color (4 bytes)
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.FlatColor[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.FlatColor[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.FlatColor[2]))
	binary.LittleEndian.PutUint32(buf[12:16], g.UseTexture)
	return buf
}

// ToGPUMaterial converts a Material's base-color state into the GPU-aligned
// uniform struct consumed by the lit fragment shader.
//
// Parameters:
//   - m: the material to convert
//
// Returns:
//   - GPUMaterialParams: the GPU-aligned representation
func ToGPUMaterial(m Material) GPUMaterialParams {
	params := GPUMaterialParams{
		FlatColor: m.FlatColor(),
	}
	if m.UseTexture() {
		params.UseTexture = 1
	}
	return params
}
