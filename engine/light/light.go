package light

import (
	"github.com/Carmen-Shannon/glint-go/engine/shading"
)

// ambientScale derives the default ambient triple from a single light color.
const ambientScale = 0.1

// Light is the single point light feeding the lit forward pipeline. It
// emits in all directions from a world-space position and carries three
// radiance-like color triples: ambient (Ia), diffuse (Id), and specular
// (Is). Distance attenuation is fixed inside the shading pipeline, so the
// light has no range or falloff configuration.
type Light interface {
	// Position returns the world-space position of the light.
	Position() [3]float32

	// Ambient returns the ambient color triple Ia.
	Ambient() [3]float32

	// Diffuse returns the diffuse color triple Id.
	Diffuse() [3]float32

	// Specular returns the specular color triple Is.
	Specular() [3]float32

	// Enabled reports whether the light contributes to rendering.
	Enabled() bool

	// SetPosition moves the light.
	SetPosition(x, y, z float32)

	// SetColor derives all three triples from one color: ambient becomes
	// the color scaled by 0.1, diffuse and specular become the color
	// itself.
	SetColor(r, g, b float32)

	// SetAmbient sets the ambient color triple Ia.
	SetAmbient(r, g, b float32)

	// SetDiffuse sets the diffuse color triple Id.
	SetDiffuse(r, g, b float32)

	// SetSpecular sets the specular color triple Is.
	SetSpecular(r, g, b float32)

	// SetEnabled switches the light's rendering contribution on or off.
	SetEnabled(enabled bool)

	// ShadingParams returns the light as the parameter struct the shading
	// pipeline consumes. A disabled light yields all-zero color triples at
	// the same position, which leaves geometry black but still
	// attenuation-correct.
	ShadingParams() shading.LightParams
}

type lightImpl struct {
	position [3]float32
	ambient  [3]float32
	diffuse  [3]float32
	specular [3]float32
	enabled  bool
}

var _ Light = &lightImpl{}

// NewLight creates a point light, by default white at (5, 5, 5) with the
// ambient triple scaled to 0.1: a plain studio setup for meter-scale
// meshes.
//
// Parameters:
//   - opts: functional options to configure the light
//
// Returns:
//   - Light: the configured light
func NewLight(opts ...LightBuilderOption) Light {
	l := &lightImpl{
		position: [3]float32{5, 5, 5},
		ambient:  [3]float32{ambientScale, ambientScale, ambientScale},
		diffuse:  [3]float32{1, 1, 1},
		specular: [3]float32{1, 1, 1},
		enabled:  true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Ambient() [3]float32 {
	return l.ambient
}

func (l *lightImpl) Diffuse() [3]float32 {
	return l.diffuse
}

func (l *lightImpl) Specular() [3]float32 {
	return l.specular
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.ambient = [3]float32{r * ambientScale, g * ambientScale, b * ambientScale}
	l.diffuse = [3]float32{r, g, b}
	l.specular = [3]float32{r, g, b}
}

func (l *lightImpl) SetAmbient(r, g, b float32) {
	l.ambient = [3]float32{r, g, b}
}

func (l *lightImpl) SetDiffuse(r, g, b float32) {
	l.diffuse = [3]float32{r, g, b}
}

func (l *lightImpl) SetSpecular(r, g, b float32) {
	l.specular = [3]float32{r, g, b}
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) ShadingParams() shading.LightParams {
	if !l.enabled {
		return shading.LightParams{Position: l.position}
	}
	return shading.LightParams{
		Position: l.position,
		Ambient:  l.ambient,
		Diffuse:  l.diffuse,
		Specular: l.specular,
	}
}
