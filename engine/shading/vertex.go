package shading

import (
	"github.com/Carmen-Shannon/glint-go/common"
)

// TransformSet holds the three per-draw-call matrices, column-major. The set
// is supplied externally and treated as immutable for the duration of the
// draw call.
type TransformSet struct {
	Model      [16]float32 // object space -> world space
	View       [16]float32 // world space -> camera space
	Projection [16]float32 // camera space -> clip space
}

// DerivedTransforms holds the matrices the vertex stage actually consumes,
// computed once per draw call from a TransformSet. The normal matrix is the
// inverse-transpose of the model matrix and is only valid for the model
// matrix it was derived from; re-derive whenever the model matrix changes.
type DerivedTransforms struct {
	Model               [16]float32
	ModelViewProjection [16]float32
	NormalMatrix        [16]float32
}

// Derive computes the per-draw-call matrices consumed by TransformVertex.
//
// Returns:
//   - DerivedTransforms: model, projection*view*model, and inverse-transpose model
func (t TransformSet) Derive() DerivedTransforms {
	var d DerivedTransforms
	d.Model = t.Model
	common.Mul4(d.ModelViewProjection[:], t.Projection[:], t.View[:])
	common.Mul4(d.ModelViewProjection[:], d.ModelViewProjection[:], t.Model[:])
	common.NormalMatrix(d.NormalMatrix[:], t.Model[:])
	return d
}

// VertexInput is one vertex as supplied by the external mesh: model-space
// position and normal plus a texture coordinate. The normal is not required
// to be pre-normalized. The texture coordinate slot is carried through the
// pipeline whether or not the material samples a texture.
type VertexInput struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// VertexOutput is the vertex stage's result. ClipPosition feeds
// rasterization only; the remaining fields are interpolated across the
// primitive and consumed by the fragment stage.
type VertexOutput struct {
	ClipPosition  [4]float32
	WorldPosition [3]float32
	WorldNormal   [3]float32
	TexCoord      [2]float32
}

// TransformVertex runs the vertex stage for one vertex: the world-space
// normal is the input normal normalized, transformed by the inverse-transpose
// model matrix, and normalized again; the world-space position is the
// model-transformed position; the clip-space position is the full
// model-view-projection transform. Inputs are assumed well-formed: a
// zero-length normal or singular matrix produces unspecified floating-point
// results rather than an error.
//
// Parameters:
//   - in: the model-space vertex
//   - t: matrices derived from the draw call's TransformSet
//
// Returns:
//   - VertexOutput: clip position plus the world-space values to interpolate
func TransformVertex(in VertexInput, t DerivedTransforms) VertexOutput {
	n := normalize3(in.Normal)
	worldNormal := common.MulDirection(t.NormalMatrix[:], n[0], n[1], n[2])

	world := common.MulPoint4(t.Model[:], in.Position[0], in.Position[1], in.Position[2])
	clip := common.MulPoint4(t.ModelViewProjection[:], in.Position[0], in.Position[1], in.Position[2])

	return VertexOutput{
		ClipPosition:  clip,
		WorldPosition: [3]float32{world[0], world[1], world[2]},
		WorldNormal:   normalize3(worldNormal),
		TexCoord:      in.TexCoord,
	}
}

// Interpolate blends three vertex outputs into one fragment input using
// barycentric weights, reproducing the linear interpolation rasterization
// hardware performs between the two stages. Weights are expected to sum to 1
// for points inside the primitive; no renormalization happens here, so the
// interpolated normal generally is not unit length.
//
// Parameters:
//   - v0, v1, v2: the primitive's vertex outputs
//   - w0, w1, w2: barycentric weights for each vertex
//
// Returns:
//   - FragmentInput: the interpolated fragment-stage inputs
func Interpolate(v0, v1, v2 VertexOutput, w0, w1, w2 float32) FragmentInput {
	var f FragmentInput
	for i := 0; i < 3; i++ {
		f.WorldPosition[i] = v0.WorldPosition[i]*w0 + v1.WorldPosition[i]*w1 + v2.WorldPosition[i]*w2
		f.WorldNormal[i] = v0.WorldNormal[i]*w0 + v1.WorldNormal[i]*w1 + v2.WorldNormal[i]*w2
	}
	f.TexCoord[0] = v0.TexCoord[0]*w0 + v1.TexCoord[0]*w1 + v2.TexCoord[0]*w2
	f.TexCoord[1] = v0.TexCoord[1]*w0 + v1.TexCoord[1]*w1 + v2.TexCoord[1]*w2
	return f
}
