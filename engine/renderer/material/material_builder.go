package material

import (
	"github.com/Carmen-Shannon/glint-go/common"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a creation-time setting applied by NewMaterial.
type MaterialBuilderOption func(*material)

// WithName sets the material identifier used in diagnostics.
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithFlatColor sets the RGB color the material shades with when no diffuse
// texture is attached.
func WithFlatColor(color [3]float32) MaterialBuilderOption {
	return func(m *material) {
		m.flatColor = color
	}
}

// WithDiffuseTexture attaches a diffuse texture, which switches the
// material's base-color source from the flat color to the texture.
func WithDiffuseTexture(tex *common.ImportedTexture) MaterialBuilderOption {
	return func(m *material) {
		m.diffuseTexture = tex
	}
}

// WithPipelineKey associates the material with a render pipeline at
// construction instead of via SetPipelineKey.
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithBindGroupProvider attaches the holder for the material's GPU-side
// resources at construction instead of via SetBindGroupProvider.
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
