package shader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
)

// ShaderType identifies the pipeline stage a shader implements.
type ShaderType int

const (
	// ShaderTypeVertex marks a shader driving the vertex stage.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment marks a shader driving the fragment stage.
	ShaderTypeFragment
)

var (
	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches @fragment functions and captures the entry point name
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)
)

// Shader is one WGSL stage plus everything pipeline creation needs to wire
// it: entry point, bind group layout descriptors, and vertex buffer layouts.
//
// Bind group layouts and vertex layouts are declared explicitly through
// builder options by whoever assembles the pipeline; the entry point is
// scanned from the source itself.
type Shader interface {
	// Key returns the identifier this shader is cached and looked up under.
	Key() string

	// Source returns the embedded WGSL source.
	Source() string

	// ShaderType returns the pipeline stage of the shader (vertex or fragment).
	ShaderType() ShaderType

	// EntryPoint returns the entry point name scanned from the source, such
	// as "vs_main". Empty when the source carries no annotation for this
	// shader's stage.
	EntryPoint() string

	// BindGroupLayoutDescriptor returns the declared layout descriptor for
	// one bind group index, or an empty descriptor when none was declared.
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors returns every declared bind group layout,
	// keyed by group index. The renderer turns these CPU-side descriptors
	// into wgpu.BindGroupLayout objects and the pipeline layout.
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayout returns the vertex buffer layouts declared for one
	// buffer slot, or nil when none were declared.
	VertexLayout(slot int) []wgpu.VertexBufferLayout

	// VertexLayouts returns every declared vertex buffer layout, keyed by
	// buffer slot.
	VertexLayouts() map[int][]wgpu.VertexBufferLayout

	// Module returns the module descriptor handed to CreateShaderModule,
	// carrying the WGSL code with the shader key as its label.
	Module() *wgpu.ShaderModuleDescriptor

	// CompileSPIRV cross-compiles the WGSL source to SPIR-V words. The WGPU
	// backend consumes WGSL directly; this path validates the source ahead of
	// device creation and serves backends that require SPIR-V input.
	//
	// Returns:
	//   - []uint32: the compiled SPIR-V words, little-endian packed
	//   - error: an error if compilation fails
	CompileSPIRV() ([]uint32, error)
}

// shader carries an embedded WGSL stage and the explicit layout declarations
// attached at construction.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              map[int][]wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader creates a Shader from embedded WGSL source. The entry point name
// is scanned from the source based on the shader type; bind group layouts and
// vertex layouts come from builder options. Panics on empty source, since
// every shader in this engine embeds its WGSL at compile time.
//
// Parameters:
//   - key: the identifier the pipeline cache stores this shader under
//   - shaderType: the pipeline stage (vertex or fragment)
//   - source: the WGSL source code
//   - opts: layout declarations and other creation-time settings
//
// Returns:
//   - Shader: the configured shader
func NewShader(key string, shaderType ShaderType, source string, opts ...ShaderBuilderOption) Shader {
	if source == "" {
		panic(fmt.Sprintf("shader: %s must have WGSL source", key))
	}
	s := &shader{
		key:                        key,
		source:                     source,
		shaderType:                 shaderType,
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		vertexLayouts:              make(map[int][]wgpu.VertexBufferLayout),
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	s.entryPoint = parseEntryPoint(s.source, s.shaderType)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayout(slot int) []wgpu.VertexBufferLayout {
	return s.vertexLayouts[slot]
}

func (s *shader) VertexLayouts() map[int][]wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) CompileSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(s.source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: failed to compile to SPIR-V: %w", s.key, err)
	}

	// SPIR-V is a stream of little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// parseEntryPoint extracts the entry point function name for the given shader
// type from WGSL source. Returns an empty string if no matching entry point
// annotation is found.
func parseEntryPoint(source string, shaderType ShaderType) string {
	cleaned := stripLineComments(source)

	var re *regexp.Regexp
	switch shaderType {
	case ShaderTypeVertex:
		re = vertexEntryRegex
	case ShaderTypeFragment:
		re = fragmentEntryRegex
	default:
		return ""
	}

	if match := re.FindStringSubmatch(cleaned); match != nil {
		return match[1]
	}
	return ""
}

// stripLineComments removes // comments from WGSL source so annotation scans
// cannot match inside commented-out code.
func stripLineComments(source string) string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}
