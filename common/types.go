// Package common holds the plain data types and math helpers the engine
// packages exchange: column-major matrix algebra, texture and sampler staging
// structs, image decoding, and frustum culling. Everything here is a plain
// struct or free function; interface-wrapped components live in the engine
// packages that own them.
package common

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	xdraw "golang.org/x/image/draw"
)

// TextureStagingData is a decoded texture ready for binding: raw RGBA pixels
// plus dimensions. The WGPU backend uploads it as-is and the software
// rasterizer samples it directly, so one staging form feeds both paths.
type TextureStagingData struct {
	// Pixels holds row-major RGBA data, 4 bytes per pixel.
	Pixels []byte
	// Width and Height are the pixel dimensions of the Pixels data.
	Width  uint32
	Height uint32
}

// SamplerStagingData carries sampler configuration in wgpu's own enum types.
// The WGPU backend passes the values straight into a SamplerDescriptor; the
// software rasterizer honors the address and filter modes, so one
// configuration drives both backends.
type SamplerStagingData struct {
	// Addressing for texture coordinates outside [0, 1], per axis.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// Filtering for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter selects between mip levels.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp bound the level-of-detail range.
	LodMinClamp, LodMaxClamp float32
	// Compare, when set, makes this a comparison sampler.
	Compare wgpu.CompareFunction
	// MaxAnisotropy caps anisotropic filtering; 1 disables it.
	MaxAnisotropy uint16
}

// ImportedTexture is image data destined for a material's diffuse slot.
// Embedded textures carry raw encoded bytes in Data; external textures carry
// a file path in Path.
type ImportedTexture struct {
	// Name identifies the texture (for example "diffuse" or "checker").
	Name string

	// Path locates an external texture file. Empty for embedded textures.
	Path string

	// Data holds raw encoded image bytes for embedded textures.
	Data []byte

	// MimeType names the encoded format, such as "image/png".
	MimeType string

	// Width and Height are the decoded pixel dimensions, populated by
	// Decode and DecodeScaled.
	Width  int
	Height int

	// SamplerData holds sampler parameters for this texture. When non-nil,
	// these values override the default linear/repeat settings used during
	// material initialization.
	SamplerData *SamplerStagingData
}

// Decode decodes the texture into raw RGBA pixel data, reading the embedded
// Data bytes when present and falling back to the file at Path. PNG and JPEG
// decoders are registered.
//
// Returns:
//   - []byte: row-major RGBA pixels, 4 bytes per pixel
//   - uint32: decoded width in pixels
//   - uint32: decoded height in pixels
//   - error: non-nil if the image cannot be read or decoded
func (t *ImportedTexture) Decode() ([]byte, uint32, uint32, error) {
	rgba, err := t.decodeRGBA()
	if err != nil {
		return nil, 0, 0, err
	}

	t.Width = rgba.Bounds().Dx()
	t.Height = rgba.Bounds().Dy()

	return rgba.Pix, uint32(t.Width), uint32(t.Height), nil
}

// DecodeScaled decodes the texture and downsamples it so that neither
// dimension exceeds maxDim, preserving aspect ratio. Textures already within
// the limit are returned unscaled. Downsampling uses Catmull-Rom resampling.
// Reference: https://pkg.go.dev/golang.org/x/image/draw
//
// Parameters:
//   - maxDim: maximum width or height in pixels (must be > 0)
//
// Returns:
//   - []byte: row-major RGBA pixels, 4 bytes per pixel
//   - uint32: scaled width in pixels
//   - uint32: scaled height in pixels
//   - error: non-nil if the image cannot be read or decoded
func (t *ImportedTexture) DecodeScaled(maxDim int) ([]byte, uint32, uint32, error) {
	if maxDim <= 0 {
		return nil, 0, 0, fmt.Errorf("invalid max dimension %d", maxDim)
	}

	rgba, err := t.decodeRGBA()
	if err != nil {
		return nil, 0, 0, err
	}

	width := rgba.Bounds().Dx()
	height := rgba.Bounds().Dy()

	if width > maxDim || height > maxDim {
		scale := float64(maxDim) / float64(width)
		if height > width {
			scale = float64(maxDim) / float64(height)
		}
		dstW := int(float64(width) * scale)
		dstH := int(float64(height) * scale)
		if dstW < 1 {
			dstW = 1
		}
		if dstH < 1 {
			dstH = 1
		}

		scaled := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), rgba, rgba.Bounds(), xdraw.Src, nil)
		rgba = scaled
		width = dstW
		height = dstH
	}

	t.Width = width
	t.Height = height

	return rgba.Pix, uint32(width), uint32(height), nil
}

// decodeRGBA produces the full-resolution RGBA image from whichever source
// the texture carries.
func (t *ImportedTexture) decodeRGBA() (*image.RGBA, error) {
	if t == nil {
		return nil, errors.New("texture is nil")
	}

	var img image.Image
	var err error

	if len(t.Data) > 0 {
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return nil, fmt.Errorf("decode embedded image: %w", err)
		}
	} else if t.Path != "" {
		file, fileErr := os.Open(t.Path)
		if fileErr != nil {
			return nil, fmt.Errorf("open texture file %s: %w", t.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("decode texture file %s: %w", t.Path, err)
		}
	} else {
		return nil, errors.New("texture has neither data nor path")
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	return rgba, nil
}
