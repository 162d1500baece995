package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/Carmen-Shannon/glint-go/common"
	"github.com/Carmen-Shannon/glint-go/engine/camera"
	"github.com/Carmen-Shannon/glint-go/engine/light"
	"github.com/Carmen-Shannon/glint-go/engine/mesh"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/material"
)

var identityModel = [16]float32{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// testCamera places the eye at (0, 0, 5) looking at the origin, with the
// default 45-degree perspective projection.
func testCamera() camera.Camera {
	return camera.NewCamera(camera.WithController(
		camera.NewOrbitController(camera.WithElevation(0)),
	))
}

// unitQuad builds a two-triangle quad spanning ±1 in the XY plane at z = 0,
// facing +Z. Seen from testCamera it covers roughly the middle half of the
// render target.
func unitQuad() mesh.Mesh {
	return mesh.NewMesh(
		mesh.WithName("quad"),
		mesh.WithVertices([]mesh.GPUVertex{
			{Position: [3]float32{-1, -1, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0, 1}},
			{Position: [3]float32{1, -1, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1, 1}},
			{Position: [3]float32{1, 1, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{1, 0}},
			{Position: [3]float32{-1, 1, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0, 0}},
		}),
		mesh.WithIndices([]uint32{0, 1, 2, 0, 2, 3}),
	)
}

// frontLight puts a full-strength point light at the eye position so the quad
// faces it head-on.
func frontLight() light.Light {
	return light.NewLight(
		light.WithPosition(0, 0, 5),
		light.WithAmbient(0.1, 0.1, 0.1),
		light.WithDiffuse(1, 1, 1),
		light.WithSpecular(1, 1, 1),
	)
}

func TestSoftwareRendererDrawsLitQuad(t *testing.T) {
	r := NewSoftwareRenderer(64, 64, WithSoftwareWorkers(1))
	r.Clear(0, 0, 0, 0)

	mat := material.NewMaterial(material.WithName("white"))
	if err := r.DrawMesh(testCamera(), frontLight(), unitQuad(), mat, identityModel); err != nil {
		t.Fatalf("DrawMesh returned error: %v", err)
	}

	fb := r.Rasterizer().Framebuffer()
	center := fb.At(32, 32)
	if center.A != 255 {
		t.Fatalf("center pixel = %v, want opaque coverage", center)
	}
	if center.R < 100 {
		t.Errorf("center pixel = %v, want a brightly lit surface", center)
	}
	if center.R != center.G || center.G != center.B {
		t.Errorf("center pixel = %v, want a gray shade for a white material under white light", center)
	}
	if corner := fb.At(1, 1); corner.A != 0 {
		t.Errorf("corner pixel = %v, want untouched background", corner)
	}
}

func TestSoftwareRendererFrustumCulling(t *testing.T) {
	r := NewSoftwareRenderer(32, 32, WithSoftwareWorkers(1))
	r.Clear(0, 0, 0, 0)

	farModel := identityModel
	farModel[12] = 1000 // translated far off the +X side of the view

	cam := testCamera()
	mat := material.NewMaterial(material.WithName("white"))
	if err := r.DrawMesh(cam, frontLight(), unitQuad(), mat, farModel); err != nil {
		t.Fatalf("DrawMesh returned error: %v", err)
	}
	for i, b := range r.Pixels() {
		if b != 0 {
			t.Fatalf("pixel byte %d = %d after a culled draw, want an untouched buffer", i, b)
		}
	}

	// The same mesh at the origin survives the cull and lands on screen.
	if err := r.DrawMesh(cam, frontLight(), unitQuad(), mat, identityModel); err != nil {
		t.Fatalf("DrawMesh returned error: %v", err)
	}
	if got := r.Rasterizer().Framebuffer().At(16, 16); got.A != 255 {
		t.Errorf("center pixel = %v, want coverage from the visible draw", got)
	}
}

func TestSoftwareRendererNoLightShadesBlack(t *testing.T) {
	tests := []struct {
		name        string
		lightSource light.Light
	}{
		{"disabled light", light.NewLight(light.WithEnabled(false))},
		{"nil light", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSoftwareRenderer(32, 32, WithSoftwareWorkers(1))
			r.Clear(0, 0, 0, 0)

			mat := material.NewMaterial(material.WithName("white"))
			if err := r.DrawMesh(testCamera(), tt.lightSource, unitQuad(), mat, identityModel); err != nil {
				t.Fatalf("DrawMesh returned error: %v", err)
			}
			if got := r.Rasterizer().Framebuffer().At(16, 16); got != (color.RGBA{A: 255}) {
				t.Errorf("center pixel = %v, want opaque black with no light contribution", got)
			}
		})
	}
}

func TestSoftwareRendererTexturedDraw(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test texture: %v", err)
	}
	tex := &common.ImportedTexture{Name: "red", Data: buf.Bytes()}
	mat := material.NewMaterial(material.WithName("red"), material.WithDiffuseTexture(tex))

	r := NewSoftwareRenderer(64, 64, WithSoftwareWorkers(1))
	r.Clear(0, 0, 0, 0)
	cam := testCamera()

	if err := r.DrawMesh(cam, frontLight(), unitQuad(), mat, identityModel); err != nil {
		t.Fatalf("DrawMesh returned error: %v", err)
	}
	center := r.Rasterizer().Framebuffer().At(32, 32)
	if center.R < 100 || center.G != 0 || center.B != 0 {
		t.Errorf("center pixel = %v, want a lit pure-red surface", center)
	}

	// A second draw with the same material reuses the decoded sampler.
	if err := r.DrawMesh(cam, frontLight(), unitQuad(), mat, identityModel); err != nil {
		t.Fatalf("second DrawMesh returned error: %v", err)
	}
	impl := r.(*softwareRendererImpl)
	if len(impl.samplers) != 1 {
		t.Errorf("sampler cache holds %d entries after two draws of one material, want 1", len(impl.samplers))
	}
}

func TestSoftwareRendererTextureDecodeError(t *testing.T) {
	tex := &common.ImportedTexture{Name: "broken", Data: []byte("not an image")}
	mat := material.NewMaterial(material.WithName("broken"), material.WithDiffuseTexture(tex))

	r := NewSoftwareRenderer(16, 16, WithSoftwareWorkers(1))
	if err := r.DrawMesh(testCamera(), frontLight(), unitQuad(), mat, identityModel); err == nil {
		t.Error("DrawMesh with an undecodable texture: expected error")
	}
}

func TestSoftwareRendererRequiresComponents(t *testing.T) {
	r := NewSoftwareRenderer(8, 8, WithSoftwareWorkers(1))
	cam := testCamera()
	m := unitQuad()
	mat := material.NewMaterial(material.WithName("white"))

	if err := r.DrawMesh(nil, nil, m, mat, identityModel); err == nil {
		t.Error("DrawMesh with nil camera: expected error")
	}
	if err := r.DrawMesh(cam, nil, nil, mat, identityModel); err == nil {
		t.Error("DrawMesh with nil mesh: expected error")
	}
	if err := r.DrawMesh(cam, nil, m, nil, identityModel); err == nil {
		t.Error("DrawMesh with nil material: expected error")
	}
}

func TestSoftwareRendererResize(t *testing.T) {
	r := NewSoftwareRenderer(8, 8, WithSoftwareWorkers(1))
	r.Resize(16, 4)

	if got := len(r.Pixels()); got != 16*4*4 {
		t.Errorf("len(Pixels()) after Resize = %d, want %d", got, 16*4*4)
	}
	img := r.Image()
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 4 {
		t.Errorf("Image() bounds = %v, want 16x4", img.Bounds())
	}
}

func BenchmarkSoftwareRendererDrawMesh(b *testing.B) {
	r := NewSoftwareRenderer(256, 256, WithSoftwareWorkers(1))
	cam := testCamera()
	l := frontLight()
	m := unitQuad()
	mat := material.NewMaterial(material.WithName("white"))

	b.ReportAllocs()
	for b.Loop() {
		r.Clear(0, 0, 0, 1)
		if err := r.DrawMesh(cam, l, m, mat, identityModel); err != nil {
			b.Fatal(err)
		}
	}
}
