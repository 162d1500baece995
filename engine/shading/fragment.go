package shading

import "math"

// FragmentInput carries the interpolated vertex outputs one fragment
// evaluation consumes. The normal arrives denormalized by interpolation.
type FragmentInput struct {
	WorldPosition [3]float32
	WorldNormal   [3]float32
	TexCoord      [2]float32
}

// LightParams describes the single point light: a world-space position and
// three radiance-like color triples. Constant across one draw call.
type LightParams struct {
	Position [3]float32
	Ambient  [3]float32 // Ia
	Diffuse  [3]float32 // Id
	Specular [3]float32 // Is
}

// FragmentParams bundles every per-draw-call input the fragment stage reads.
// Replaces the implicit bound-uniform state of an immediate-mode shader
// binding model with an explicit value passed to each invocation.
type FragmentParams struct {
	// Light is the point light shading this draw call.
	Light LightParams

	// CameraPosition is the world-space eye point, used only for the
	// specular view direction.
	CameraPosition [3]float32

	// UseTexture selects the base color source: true samples Texture, false
	// uses FlatColor. Strictly binary, never blended.
	UseTexture bool

	// FlatColor is the uniform base color used when UseTexture is false.
	FlatColor [3]float32

	// Texture is the bound 2D sampler read when UseTexture is true. May be
	// nil while UseTexture is false.
	Texture Sampler
}

// Attenuate returns the distance falloff factor for the point light:
// 1 at zero distance, strictly decreasing as distance grows.
//
// Parameters:
//   - dist: distance from the light to the shaded point
//
// Returns:
//   - float32: the attenuation factor in (0, 1]
func Attenuate(dist float32) float32 {
	return 1.0 / (AttenuationConstant + AttenuationLinear*dist + AttenuationQuadratic*dist*dist)
}

// ComputeLighting evaluates the Phong terms for one fragment and returns the
// attenuated linear-space lighting factor, un-clamped. Degenerate inputs
// (fragment at the light position, zero-length normals) produce non-finite
// components that propagate into the result.
//
// Parameters:
//   - in: interpolated fragment inputs
//   - light: the point light for this draw call
//   - cameraPos: world-space eye point
//
// Returns:
//   - [3]float32: (ambient + diffuse + specular) * attenuation, linear space
func ComputeLighting(in FragmentInput, light LightParams, cameraPos [3]float32) [3]float32 {
	norm := normalize3(in.WorldNormal)
	lightDir := normalize3(sub3(light.Position, in.WorldPosition))

	// The diffuse dot reads the raw interpolated normal; only the reflection
	// below uses the renormalized one.
	diff := maxf(dot3(lightDir, in.WorldNormal), 0)

	viewDir := normalize3(sub3(cameraPos, in.WorldPosition))
	reflectDir := reflect3(neg3(lightDir), norm)
	spec := powf(maxf(dot3(viewDir, reflectDir), 0), Shininess)

	dist := length3(sub3(light.Position, in.WorldPosition))
	attenuation := Attenuate(dist)

	var out [3]float32
	for i := 0; i < 3; i++ {
		out[i] = (light.Ambient[i] + light.Diffuse[i]*diff + light.Specular[i]*spec) * attenuation
	}
	return out
}

// ShadeFragment runs the full fragment stage for one fragment: base color
// selection, gamma decode to linear space, multiply by the lighting factor,
// and gamma re-encode for display.
//
// Parameters:
//   - in: interpolated fragment inputs
//   - p: the draw call's fragment-stage parameters
//
// Returns:
//   - [4]float32: display-space RGBA color with alpha fixed at 1
func ShadeFragment(in FragmentInput, p FragmentParams) [4]float32 {
	var base [3]float32
	if p.UseTexture {
		base = p.Texture.Sample(in.TexCoord[0], in.TexCoord[1])
	} else {
		base = p.FlatColor
	}

	lighting := ComputeLighting(in, p.Light, p.CameraPosition)

	var out [4]float32
	for i := 0; i < 3; i++ {
		linear := powf(base[i], Gamma)
		out[i] = powf(linear*lighting[i], 1.0/Gamma)
	}
	out[3] = 1
	return out
}

// normalize3 scales a vector to unit length. Zero-length input divides by
// zero and yields non-finite components; guarding is the caller's concern.
func normalize3(v [3]float32) [3]float32 {
	inv := 1.0 / length3(v)
	return [3]float32{v[0] * inv, v[1] * inv, v[2] * inv}
}

// length3 returns the Euclidean length of a vector.
func length3(v [3]float32) float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// dot3 returns the dot product of two vectors.
func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// sub3 returns a - b component-wise.
func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// neg3 returns the negated vector.
func neg3(v [3]float32) [3]float32 {
	return [3]float32{-v[0], -v[1], -v[2]}
}

// reflect3 mirrors an incident vector about a unit normal: I - 2*dot(N,I)*N.
// Reference: https://registry.khronos.org/OpenGL-Refpages/gl4/html/reflect.xhtml
func reflect3(incident, normal [3]float32) [3]float32 {
	d := 2 * dot3(normal, incident)
	return [3]float32{
		incident[0] - d*normal[0],
		incident[1] - d*normal[1],
		incident[2] - d*normal[2],
	}
}

// maxf returns the larger of two float32 values.
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// powf raises base to exp in float64 precision and truncates back to float32.
func powf(base, exp float32) float32 {
	return float32(math.Pow(float64(base), float64(exp)))
}
