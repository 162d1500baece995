package common

import (
	"math"
)

// Plane is ax + by + cz + d = 0 with (a, b, c) in Normal and d in Distance.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// normalize rescales the plane so the normal has unit length, leaving a
// degenerate zero-normal plane untouched.
func (p *Plane) normalize() {
	length := float32(math.Sqrt(float64(
		p.Normal[0]*p.Normal[0] +
			p.Normal[1]*p.Normal[1] +
			p.Normal[2]*p.Normal[2],
	)))
	if length > 0 {
		invLen := 1.0 / length
		p.Normal[0] *= invLen
		p.Normal[1] *= invLen
		p.Normal[2] *= invLen
		p.Distance *= invLen
	}
}

// Frustum holds the six bounding planes of a view volume, oriented so the
// positive half-space of every plane is inside.
type Frustum struct {
	Planes [6]Plane
}

// Indices into Frustum.Planes.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// ExtractFrustumFromMatrix derives the six planes from a combined
// projection * view matrix using the Gribb/Hartmann method: each plane is
// the matrix's fourth row plus or minus one of the first three rows.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	combos := [6]struct {
		row  int
		sign float32
	}{
		FrustumLeft:   {0, 1},
		FrustumRight:  {0, -1},
		FrustumBottom: {1, 1},
		FrustumTop:    {1, -1},
		FrustumNear:   {2, 1},
		FrustumFar:    {2, -1},
	}

	var f Frustum
	for i, combo := range combos {
		p := &f.Planes[i]
		// Column-major: element (row, col) sits at index col*4 + row.
		p.Normal[0] = viewProj[3] + combo.sign*viewProj[combo.row]
		p.Normal[1] = viewProj[7] + combo.sign*viewProj[4+combo.row]
		p.Normal[2] = viewProj[11] + combo.sign*viewProj[8+combo.row]
		p.Distance = viewProj[15] + combo.sign*viewProj[12+combo.row]
		p.normalize()
	}
	return f
}

// SphereInFrustum reports whether a bounding sphere intersects the frustum.
// A sphere entirely behind any plane is outside; everything else counts as
// visible, so spheres that only graze a corner may still return true
// (conservative culling).
func (f *Frustum) SphereInFrustum(centerX, centerY, centerZ, radius float32) bool {
	for i := range f.Planes {
		p := &f.Planes[i]
		dist := p.Normal[0]*centerX + p.Normal[1]*centerY + p.Normal[2]*centerZ + p.Distance
		if dist < -radius {
			return false
		}
	}
	return true
}
