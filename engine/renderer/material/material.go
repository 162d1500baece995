package material

import (
	"github.com/Carmen-Shannon/glint-go/common"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/bind_group_provider"
)

// Material is a draw call's base-color source plus the GPU bindings that
// deliver it. The base color comes from exactly one of two places: the
// diffuse texture when one is attached, the flat color otherwise. The
// selection is binary, decided at construction, and the two sources are
// never blended.
//
// Surface properties (name, flat color, texture) are read-only once built.
// The GPU references (pipeline key, bind group provider) stay mutable so
// renderer initialization can fill them in afterward.
type Material interface {
	// Name returns the material identifier, used in diagnostics.
	Name() string

	// FlatColor returns the RGB color used when no texture is attached.
	FlatColor() [3]float32

	// UseTexture reports the selected base-color source: true for the
	// diffuse texture, false for the flat color.
	UseTexture() bool

	// DiffuseTexture returns the attached texture, or nil.
	DiffuseTexture() *common.ImportedTexture

	// PipelineKey returns the key of the render pipeline this material
	// draws with.
	PipelineKey() string

	// BindGroupProvider returns the holder of this material's GPU-side
	// resources, or nil before renderer initialization.
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetPipelineKey associates the material with a render pipeline.
	SetPipelineKey(key string)

	// SetBindGroupProvider attaches the holder for this material's GPU-side
	// resources.
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

type material struct {
	name              string
	flatColor         [3]float32
	useTexture        bool
	diffuseTexture    *common.ImportedTexture
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

var _ Material = &material{}

// NewMaterial builds a material, flat white unless options say otherwise.
// The color-source selector follows the texture: attaching a diffuse
// texture selects the texture source, leaving it out selects the flat
// color.
//
// Parameters:
//   - options: functional options to configure the material
//
// Returns:
//   - Material: the configured material
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		flatColor: [3]float32{1, 1, 1},
	}
	for _, opt := range options {
		opt(m)
	}
	m.useTexture = m.diffuseTexture != nil
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) FlatColor() [3]float32 {
	return m.flatColor
}

func (m *material) UseTexture() bool {
	return m.useTexture
}

func (m *material) DiffuseTexture() *common.ImportedTexture {
	return m.diffuseTexture
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
