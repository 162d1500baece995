// package shading implements the lit forward-shading pipeline for a single
// point light: the vertex-stage transform of model-space geometry into world
// and clip space, barycentric interpolation of the per-vertex outputs, and the
// fragment-stage Phong lighting and gamma-correct color composition.
//
// Every function here is pure: all inputs arrive as explicit parameters, no
// package state exists, and invocations are independent, so callers may
// evaluate vertices and fragments concurrently without coordination. The WGSL
// programs embedded in gpu_types.go implement the same pipeline for the GPU
// backend; the two must stay in lockstep constant-for-constant.
package shading

// Fixed shading constants. These are part of the pipeline's observable
// contract and are not configurable.
const (
	// Gamma is the display transfer exponent. Base colors are decoded to
	// linear space with pow(c, Gamma) before lighting and re-encoded with
	// pow(c, 1/Gamma) after.
	Gamma = 2.2

	// Shininess is the Phong specular exponent.
	Shininess = 32

	// Attenuation coefficients for the point light's distance falloff:
	// 1 / (AttenuationConstant + AttenuationLinear*d + AttenuationQuadratic*d*d).
	AttenuationConstant  = 1.0
	AttenuationLinear    = 0.09
	AttenuationQuadratic = 0.032
)

// Sampler samples an RGB color from a bound 2D image at a texture coordinate.
// Implementations own addressing (repeat/clamp) and filtering; the shading
// pipeline ignores any alpha channel the underlying image carries.
type Sampler interface {
	// Sample returns the color at the given texture coordinate.
	//
	// Parameters:
	//   - u: horizontal texture coordinate
	//   - v: vertical texture coordinate
	//
	// Returns:
	//   - [3]float32: sampled RGB color in display (gamma-encoded) space
	Sample(u, v float32) [3]float32
}
