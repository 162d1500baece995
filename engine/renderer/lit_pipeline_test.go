package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/glint-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewLitPipelineWiring(t *testing.T) {
	p := NewLitPipeline()

	if p.PipelineKey() != LitPipelineKey {
		t.Errorf("PipelineKey() = %q, want %q", p.PipelineKey(), LitPipelineKey)
	}
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
		t.Error("lit pipeline must depth-test and depth-write")
	}
	if p.BlendEnabled() {
		t.Error("lit pipeline must not blend; it writes opaque color")
	}

	vs := p.Shader(shader.ShaderTypeVertex)
	if vs == nil {
		t.Fatal("vertex shader not set")
	}
	if vs.EntryPoint() != "vs_main" {
		t.Errorf("vertex entry point = %q, want vs_main", vs.EntryPoint())
	}
	for _, group := range []int{LitFrameGroup, LitObjectGroup} {
		if _, ok := vs.BindGroupLayoutDescriptors()[group]; !ok {
			t.Errorf("vertex shader missing bind group %d", group)
		}
	}

	fs := p.Shader(shader.ShaderTypeFragment)
	if fs == nil {
		t.Fatal("fragment shader not set")
	}
	if fs.EntryPoint() != "fs_main" {
		t.Errorf("fragment entry point = %q, want fs_main", fs.EntryPoint())
	}
	for _, group := range []int{LitFrameGroup, LitMaterialGroup} {
		if _, ok := fs.BindGroupLayoutDescriptors()[group]; !ok {
			t.Errorf("fragment shader missing bind group %d", group)
		}
	}

	layouts := vs.VertexLayout(0)
	if len(layouts) != 1 {
		t.Fatalf("vertex buffer slot 0 holds %d layouts, want 1", len(layouts))
	}
	if layouts[0].ArrayStride != 32 {
		t.Errorf("vertex stride = %d, want 32", layouts[0].ArrayStride)
	}
	wantAttrs := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
	}
	if len(layouts[0].Attributes) != len(wantAttrs) {
		t.Fatalf("vertex layout has %d attributes, want %d", len(layouts[0].Attributes), len(wantAttrs))
	}
	for i, want := range wantAttrs {
		if got := layouts[0].Attributes[i]; got != want {
			t.Errorf("vertex attribute %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestLitBindGroupLayoutContract(t *testing.T) {
	frame := LitFrameBindGroupLayout()
	if len(frame.Entries) != 2 {
		t.Fatalf("frame group has %d entries, want 2", len(frame.Entries))
	}
	cam := frame.Entries[0]
	if cam.Binding != LitCameraBinding || cam.Visibility != wgpu.ShaderStageVertex|wgpu.ShaderStageFragment {
		t.Errorf("camera entry = %+v, want binding %d visible to both stages", cam, LitCameraBinding)
	}
	if cam.Buffer.MinBindingSize != 144 {
		t.Errorf("camera uniform min size = %d, want 144", cam.Buffer.MinBindingSize)
	}
	lt := frame.Entries[1]
	if lt.Binding != LitLightBinding || lt.Visibility != wgpu.ShaderStageFragment {
		t.Errorf("light entry = %+v, want binding %d fragment-only", lt, LitLightBinding)
	}
	if lt.Buffer.MinBindingSize != 64 {
		t.Errorf("light uniform min size = %d, want 64", lt.Buffer.MinBindingSize)
	}

	object := LitObjectBindGroupLayout()
	if len(object.Entries) != 1 {
		t.Fatalf("object group has %d entries, want 1", len(object.Entries))
	}
	if got := object.Entries[0].Buffer.MinBindingSize; got != 128 {
		t.Errorf("transform uniform min size = %d, want 128", got)
	}
	if object.Entries[0].Visibility != wgpu.ShaderStageVertex {
		t.Errorf("transform entry visibility = %v, want vertex-only", object.Entries[0].Visibility)
	}

	mat := LitMaterialBindGroupLayout()
	if len(mat.Entries) != 3 {
		t.Fatalf("material group has %d entries, want 3", len(mat.Entries))
	}
	if got := mat.Entries[0].Buffer.MinBindingSize; got != 16 {
		t.Errorf("material params min size = %d, want 16", got)
	}
	tex := mat.Entries[1]
	if tex.Texture.SampleType != wgpu.TextureSampleTypeFloat || tex.Texture.ViewDimension != wgpu.TextureViewDimension2D {
		t.Errorf("diffuse texture entry = %+v, want float 2D texture", tex)
	}
	smp := mat.Entries[2]
	if smp.Sampler.Type != wgpu.SamplerBindingTypeFiltering {
		t.Errorf("diffuse sampler entry = %+v, want filtering sampler", smp)
	}
	for _, e := range mat.Entries {
		if e.Visibility != wgpu.ShaderStageFragment {
			t.Errorf("material entry %d visibility = %v, want fragment-only", e.Binding, e.Visibility)
		}
	}
}

func TestMergeBindGroupLayouts(t *testing.T) {
	uniform := wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}

	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "shared", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageVertex, Buffer: uniform},
		}},
		1: {Label: "vertex only", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageVertex, Buffer: uniform},
		}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "shared", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageFragment, Buffer: uniform},
			{Binding: 0, Visibility: wgpu.ShaderStageFragment, Buffer: uniform},
		}},
		2: {Label: "fragment only", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageFragment, Buffer: uniform},
		}},
	}

	merged := mergeStageLayouts(vertex, fragment)
	if len(merged) != 3 {
		t.Fatalf("merged %d groups, want 3", len(merged))
	}

	// Single-stage groups pass through untouched.
	if got := merged[1].Entries[0].Visibility; got != wgpu.ShaderStageVertex {
		t.Errorf("group 1 visibility = %v, want vertex-only", got)
	}
	if got := merged[2].Entries[0].Visibility; got != wgpu.ShaderStageFragment {
		t.Errorf("group 2 visibility = %v, want fragment-only", got)
	}

	// The shared group unions bindings, ORs visibility on the shared one, and
	// sorts by binding number.
	shared := merged[0]
	if len(shared.Entries) != 2 {
		t.Fatalf("shared group has %d entries, want 2", len(shared.Entries))
	}
	if shared.Entries[0].Binding != 0 || shared.Entries[1].Binding != 1 {
		t.Errorf("shared group bindings = %d, %d, want sorted 0, 1",
			shared.Entries[0].Binding, shared.Entries[1].Binding)
	}
	if got := shared.Entries[0].Visibility; got != wgpu.ShaderStageVertex|wgpu.ShaderStageFragment {
		t.Errorf("shared binding 0 visibility = %v, want both stages", got)
	}
	if got := shared.Entries[1].Visibility; got != wgpu.ShaderStageFragment {
		t.Errorf("shared binding 1 visibility = %v, want fragment-only", got)
	}
}

func TestPreferredSurfaceFormat(t *testing.T) {
	tests := []struct {
		name    string
		formats []wgpu.TextureFormat
		want    wgpu.TextureFormat
	}{
		{
			"skips leading srgb",
			[]wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatBGRA8Unorm},
			wgpu.TextureFormatBGRA8Unorm,
		},
		{
			"first non-srgb wins",
			[]wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb},
			wgpu.TextureFormatRGBA8Unorm,
		},
		{
			"all srgb falls back to first",
			[]wgpu.TextureFormat{wgpu.TextureFormatBGRA8UnormSrgb, wgpu.TextureFormatRGBA8UnormSrgb},
			wgpu.TextureFormatBGRA8UnormSrgb,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preferredSurfaceFormat(tt.formats); got != tt.want {
				t.Errorf("preferredSurfaceFormat(%v) = %v, want %v", tt.formats, got, tt.want)
			}
		})
	}
}

func TestWhiteTextureStagingData(t *testing.T) {
	white := WhiteTextureStagingData()
	if white.Width != 1 || white.Height != 1 {
		t.Errorf("dimensions = %dx%d, want 1x1", white.Width, white.Height)
	}
	if len(white.Pixels) != 4 {
		t.Fatalf("len(Pixels) = %d, want 4", len(white.Pixels))
	}
	for i, b := range white.Pixels {
		if b != 255 {
			t.Errorf("Pixels[%d] = %d, want 255", i, b)
		}
	}
}
