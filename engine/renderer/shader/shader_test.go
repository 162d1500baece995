package shader

import (
	"testing"

	"github.com/Carmen-Shannon/glint-go/engine/shading"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestParseEntryPoint(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		shaderType ShaderType
		want       string
	}{
		{
			name:       "vertex stage",
			source:     shading.LitVertexShaderSource,
			shaderType: ShaderTypeVertex,
			want:       "vs_main",
		},
		{
			name:       "fragment stage",
			source:     shading.LitFragmentShaderSource,
			shaderType: ShaderTypeFragment,
			want:       "fs_main",
		},
		{
			name:       "missing stage",
			source:     shading.LitVertexShaderSource,
			shaderType: ShaderTypeFragment,
			want:       "",
		},
		{
			name:       "commented-out annotation ignored",
			source:     "// @vertex\n// fn ghost() {}\n@vertex\nfn real() {}\n",
			shaderType: ShaderTypeVertex,
			want:       "real",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseEntryPoint(tt.source, tt.shaderType); got != tt.want {
				t.Errorf("parseEntryPoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewShader(t *testing.T) {
	desc := wgpu.BindGroupLayoutDescriptor{
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 128,
				},
			},
		},
	}
	s := NewShader("lit_vertex", ShaderTypeVertex, shading.LitVertexShaderSource,
		WithBindGroupLayoutDescriptor(1, desc),
		WithVertexLayout(0, []wgpu.VertexBufferLayout{{ArrayStride: 32}}),
	)

	if s.Key() != "lit_vertex" {
		t.Errorf("Key() = %q, want %q", s.Key(), "lit_vertex")
	}
	if s.EntryPoint() != "vs_main" {
		t.Errorf("EntryPoint() = %q, want %q", s.EntryPoint(), "vs_main")
	}
	if s.Module() == nil || s.Module().WGSLDescriptor.Code != shading.LitVertexShaderSource {
		t.Error("Module() does not carry the WGSL source")
	}
	if got := s.BindGroupLayoutDescriptor(1); len(got.Entries) != 1 || got.Entries[0].Buffer.MinBindingSize != 128 {
		t.Errorf("BindGroupLayoutDescriptor(1) = %+v, want the registered descriptor", got)
	}
	if got := s.BindGroupLayoutDescriptor(3); len(got.Entries) != 0 {
		t.Errorf("BindGroupLayoutDescriptor(3) = %+v, want empty descriptor", got)
	}
	if got := s.VertexLayout(0); len(got) != 1 || got[0].ArrayStride != 32 {
		t.Errorf("VertexLayout(0) = %+v, want the registered layout", got)
	}
}

func TestNewShaderPanicsWithoutSource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewShader with empty source did not panic")
		}
	}()
	NewShader("empty", ShaderTypeVertex, "")
}

// TestCompileSPIRV cross-compiles both canonical shader sources and checks the
// output starts with the SPIR-V magic word. This catches WGSL regressions
// without needing a GPU device.
func TestCompileSPIRV(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		shaderType ShaderType
	}{
		{"lit vertex", shading.LitVertexShaderSource, ShaderTypeVertex},
		{"lit fragment", shading.LitFragmentShaderSource, ShaderTypeFragment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShader(tt.name, tt.shaderType, tt.source)
			words, err := s.CompileSPIRV()
			if err != nil {
				t.Fatalf("CompileSPIRV() error: %v", err)
			}
			if len(words) == 0 {
				t.Fatal("CompileSPIRV() returned no words")
			}
			const spirvMagic = 0x07230203
			if words[0] != spirvMagic {
				t.Errorf("SPIR-V magic = %#x, want %#x", words[0], spirvMagic)
			}
		})
	}
}
