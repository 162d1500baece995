package raster

import (
	"math"

	"github.com/Carmen-Shannon/glint-go/common"
	"github.com/Carmen-Shannon/glint-go/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
)

// textureSampler implements shading.Sampler over an RGBA pixel buffer,
// honoring the same wgpu addressing and filtering modes the GPU sampler is
// configured with. One SamplerStagingData therefore drives both backends.
type textureSampler struct {
	pixels   []byte
	width    int
	height   int
	addressU wgpu.AddressMode
	addressV wgpu.AddressMode
	bilinear bool
}

var _ shading.Sampler = &textureSampler{}

// NewTextureSampler builds a shading.Sampler over decoded texture pixels.
// The sampler configuration's U/V address modes and magnification filter are
// honored; mipmapping, anisotropy, and comparison sampling have no software
// equivalent here and are ignored.
//
// Parameters:
//   - texture: decoded RGBA pixel data with dimensions
//   - sampler: the sampler configuration shared with the GPU backend
//
// Returns:
//   - shading.Sampler: a sampler reading the texture's RGB channels
func NewTextureSampler(texture common.TextureStagingData, sampler common.SamplerStagingData) shading.Sampler {
	return &textureSampler{
		pixels:   texture.Pixels,
		width:    int(texture.Width),
		height:   int(texture.Height),
		addressU: sampler.AddressModeU,
		addressV: sampler.AddressModeV,
		bilinear: sampler.MagFilter == wgpu.FilterModeLinear,
	}
}

func (s *textureSampler) Sample(u, v float32) [3]float32 {
	if len(s.pixels) == 0 || s.width == 0 || s.height == 0 {
		return [3]float32{1, 1, 1} // white if no texture
	}
	if s.bilinear {
		return s.sampleBilinear(u, v)
	}
	return s.sampleNearest(u, v)
}

// sampleNearest picks the single texel whose center is closest to (u, v).
func (s *textureSampler) sampleNearest(u, v float32) [3]float32 {
	x := wrapCoord(u*float32(s.width), s.width, s.addressU)
	y := wrapCoord(v*float32(s.height), s.height, s.addressV)
	return s.texel(x, y)
}

// sampleBilinear blends the four texels surrounding (u, v) weighted by the
// fractional sample position. Neighbor coordinates wrap per the address mode
// so filtering stays seamless across tile edges in repeat mode.
func (s *textureSampler) sampleBilinear(u, v float32) [3]float32 {
	// Shift by half a texel so the blend is centered between texel centers.
	fx := u*float32(s.width) - 0.5
	fy := v*float32(s.height) - 0.5

	x0f := float32(math.Floor(float64(fx)))
	y0f := float32(math.Floor(float64(fy)))
	tx := fx - x0f
	ty := fy - y0f

	x0 := wrapCoord(x0f, s.width, s.addressU)
	x1 := wrapCoord(x0f+1, s.width, s.addressU)
	y0 := wrapCoord(y0f, s.height, s.addressV)
	y1 := wrapCoord(y0f+1, s.height, s.addressV)

	c00 := s.texel(x0, y0)
	c10 := s.texel(x1, y0)
	c01 := s.texel(x0, y1)
	c11 := s.texel(x1, y1)

	var out [3]float32
	for i := range out {
		top := c00[i]*(1-tx) + c10[i]*tx
		bottom := c01[i]*(1-tx) + c11[i]*tx
		out[i] = top*(1-ty) + bottom*ty
	}
	return out
}

// texel reads the RGB channels of the texel at integer coordinates (x, y),
// which must already be within bounds.
func (s *textureSampler) texel(x, y int) [3]float32 {
	idx := (y*s.width + x) * 4
	const inv255 = float32(1.0 / 255.0)
	return [3]float32{
		float32(s.pixels[idx+0]) * inv255,
		float32(s.pixels[idx+1]) * inv255,
		float32(s.pixels[idx+2]) * inv255,
	}
}

// wrapCoord maps a continuous texel coordinate to a valid integer index
// according to the address mode. Repeat uses floor-wrap so negative
// coordinates tile correctly; clamp pins to the edge texel.
func wrapCoord(coord float32, size int, mode wgpu.AddressMode) int {
	i := int(math.Floor(float64(coord)))
	switch mode {
	case wgpu.AddressModeClampToEdge:
		if i < 0 {
			return 0
		}
		if i >= size {
			return size - 1
		}
		return i
	case wgpu.AddressModeMirrorRepeat:
		period := 2 * size
		m := i % period
		if m < 0 {
			m += period
		}
		if m >= size {
			m = period - 1 - m
		}
		return m
	default: // wgpu.AddressModeRepeat
		m := i % size
		if m < 0 {
			m += size
		}
		return m
	}
}
