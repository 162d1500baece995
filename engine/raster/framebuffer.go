package raster

import (
	"fmt"
	"image"
	"image/color"
)

// clearDepthValue is the depth every pixel resets to. Depth values live in the
// WebGPU NDC range [0, 1] with smaller values closer to the camera, so the
// farthest representable depth is 1.
const clearDepthValue float32 = 1.0

// Framebuffer is a CPU render target: an RGBA color buffer paired with a
// float32 depth buffer, both in row-major order.
type Framebuffer struct {
	width  int
	height int
	pix    []byte
	depth  []float32
}

// NewFramebuffer allocates a Framebuffer with the given dimensions.
// The color buffer starts zeroed (transparent black) and the depth buffer
// starts at the far plane. Panics if either dimension is not positive.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//
// Returns:
//   - *Framebuffer: the newly allocated framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("raster: invalid framebuffer dimensions %dx%d", width, height))
	}
	f := &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*4),
		depth:  make([]float32, width*height),
	}
	f.ClearDepth()
	return f
}

// Width returns the framebuffer width in pixels.
func (f *Framebuffer) Width() int {
	return f.width
}

// Height returns the framebuffer height in pixels.
func (f *Framebuffer) Height() int {
	return f.height
}

// Clear fills the color buffer with the given color and resets the depth
// buffer to the far plane. Color components are display-referred values in
// [0, 1]; values outside that range are clamped.
//
// Parameters:
//   - r, g, b, a: clear color components
func (f *Framebuffer) Clear(r, g, b, a float32) {
	cr := colorByte(r)
	cg := colorByte(g)
	cb := colorByte(b)
	ca := colorByte(a)
	for i := 0; i < len(f.pix); i += 4 {
		f.pix[i+0] = cr
		f.pix[i+1] = cg
		f.pix[i+2] = cb
		f.pix[i+3] = ca
	}
	f.ClearDepth()
}

// ClearDepth resets every depth value to the far plane without touching the
// color buffer.
func (f *Framebuffer) ClearDepth() {
	for i := range f.depth {
		f.depth[i] = clearDepthValue
	}
}

// Pixels returns the RGBA color buffer. The returned slice shares memory with
// the framebuffer - do not hold it across a Clear or draw.
//
// Returns:
//   - []byte: the color buffer, 4 bytes per pixel in row-major order
func (f *Framebuffer) Pixels() []byte {
	return f.pix
}

// Image wraps the color buffer in an image.RGBA without copying. The image
// shares memory with the framebuffer.
//
// Returns:
//   - *image.RGBA: an image view over the color buffer
func (f *Framebuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.pix,
		Stride: f.width * 4,
		Rect:   image.Rect(0, 0, f.width, f.height),
	}
}

// At returns the color of the pixel at (x, y).
//
// Parameters:
//   - x, y: pixel coordinates, (0, 0) is the top-left corner
//
// Returns:
//   - color.RGBA: the pixel color
func (f *Framebuffer) At(x, y int) color.RGBA {
	i := (y*f.width + x) * 4
	return color.RGBA{R: f.pix[i], G: f.pix[i+1], B: f.pix[i+2], A: f.pix[i+3]}
}

// DepthAt returns the depth value of the pixel at (x, y).
//
// Parameters:
//   - x, y: pixel coordinates, (0, 0) is the top-left corner
//
// Returns:
//   - float32: the depth value in [0, 1]
func (f *Framebuffer) DepthAt(x, y int) float32 {
	return f.depth[y*f.width+x]
}

// colorByte converts a [0, 1] color component to an 8-bit channel value with
// rounding. Out-of-range inputs clamp; NaN maps to 0.
func colorByte(v float32) byte {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}
