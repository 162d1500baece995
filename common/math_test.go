package common

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := make([]float32, 16)
	for i := range m {
		m[i] = 7
	}

	Identity(m)

	for i, v := range m {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if v != want {
			t.Errorf("m[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestMul4Identity(t *testing.T) {
	var id [16]float32
	Identity(id[:])

	a := [16]float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}

	var out [16]float32
	Mul4(out[:], id[:], a[:])
	if out != a {
		t.Errorf("identity * a = %v, want %v", out, a)
	}

	Mul4(out[:], a[:], id[:])
	if out != a {
		t.Errorf("a * identity = %v, want %v", out, a)
	}
}

func TestMul4ComposesTranslations(t *testing.T) {
	var ta, tb [16]float32
	Identity(ta[:])
	Identity(tb[:])
	ta[12], ta[13], ta[14] = 1, 2, 3
	tb[12], tb[13], tb[14] = 10, 20, 30

	var out [16]float32
	Mul4(out[:], ta[:], tb[:])

	if out[12] != 11 || out[13] != 22 || out[14] != 33 {
		t.Errorf("composed translation = (%v, %v, %v), want (11, 22, 33)", out[12], out[13], out[14])
	}
}

func TestMul4AliasingSafe(t *testing.T) {
	var a, b, want [16]float32
	Identity(a[:])
	a[12] = 5
	Identity(b[:])
	b[13] = 7
	Mul4(want[:], a[:], b[:])

	// Writing the result over one of the operands must not corrupt it mid-multiply.
	Mul4(a[:], a[:], b[:])
	if a != want {
		t.Errorf("aliased multiply = %v, want %v", a, want)
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	const near, far = 0.1, 100.0

	var proj [16]float32
	Perspective(proj[:], math.Pi/2, 1, near, far)

	// A point on the near plane lands at NDC depth 0, the far plane at 1.
	nearClip := MulPoint4(proj[:], 0, 0, -near)
	if d := nearClip[2] / nearClip[3]; absDiff(d, 0) > 1e-5 {
		t.Errorf("near plane depth = %v, want 0", d)
	}

	farClip := MulPoint4(proj[:], 0, 0, -far)
	if d := farClip[2] / farClip[3]; absDiff(d, 1) > 1e-4 {
		t.Errorf("far plane depth = %v, want 1", d)
	}

	if proj[11] != -1 {
		t.Errorf("proj[11] = %v, want -1 (w must carry -z)", proj[11])
	}
}

func TestPerspectiveAspect(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], math.Pi/2, 2, 0.1, 100)

	// fovY of 90 degrees gives f = 1, so the x scale is 1/aspect.
	if absDiff(proj[0], 0.5) > 1e-6 {
		t.Errorf("proj[0] = %v, want 0.5", proj[0])
	}
	if absDiff(proj[5], 1) > 1e-6 {
		t.Errorf("proj[5] = %v, want 1", proj[5])
	}
}

func TestBuildModelMatrixTranslateScale(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 1, 2, 3, 0, 0, 0, 2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("scale diagonal = (%v, %v, %v), want (2, 3, 4)", m[0], m[5], m[10])
	}
	if m[12] != 1 || m[13] != 2 || m[14] != 3 {
		t.Errorf("translation = (%v, %v, %v), want (1, 2, 3)", m[12], m[13], m[14])
	}
	if m[15] != 1 {
		t.Errorf("m[15] = %v, want 1", m[15])
	}
}

func TestBuildModelMatrixRotationY(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 0, 0, 0, 0, math.Pi/2, 0, 1, 1, 1)

	// A quarter turn around Y maps +X to -Z and +Z to +X.
	xAxis := MulDirection(m[:], 1, 0, 0)
	if absDiff(xAxis[0], 0) > 1e-6 || absDiff(xAxis[1], 0) > 1e-6 || absDiff(xAxis[2], -1) > 1e-6 {
		t.Errorf("rotated +X = %v, want (0, 0, -1)", xAxis)
	}

	zAxis := MulDirection(m[:], 0, 0, 1)
	if absDiff(zAxis[0], 1) > 1e-6 || absDiff(zAxis[1], 0) > 1e-6 || absDiff(zAxis[2], 0) > 1e-6 {
		t.Errorf("rotated +Z = %v, want (1, 0, 0)", zAxis)
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 1, 2, 3, 0.3, 0.7, 0.1, 2, 2, 2)

	var inv, product, id [16]float32
	if !Invert4(inv[:], m[:]) {
		t.Fatal("expected the matrix to be invertible")
	}

	Mul4(product[:], m[:], inv[:])
	Identity(id[:])
	for i := range product {
		if absDiff(product[i], id[i]) > 1e-4 {
			t.Errorf("product[%d] = %v, want %v", i, product[i], id[i])
		}
	}
}

func TestInvert4Singular(t *testing.T) {
	var m [16]float32 // all zeros, determinant 0

	out := [16]float32{42}
	if Invert4(out[:], m[:]) {
		t.Fatal("expected a singular matrix to fail inversion")
	}
	if out[0] != 42 {
		t.Error("expected the output to be left unchanged on failure")
	}
}

func TestTranspose4(t *testing.T) {
	m := [16]float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}

	var out [16]float32
	Transpose4(out[:], m[:])

	if out[0] != 1 || out[1] != 5 || out[4] != 2 || out[12] != 4 {
		t.Errorf("transpose = %v", out)
	}

	// In-place transpose must survive aliasing.
	Transpose4(m[:], m[:])
	if m != out {
		t.Errorf("in-place transpose = %v, want %v", m, out)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	var model [16]float32
	BuildModelMatrix(model[:], 0, 0, 0, 0, 0, 0, 2, 1, 1)

	var nm [16]float32
	if !NormalMatrix(nm[:], model[:]) {
		t.Fatal("expected the inverse-transpose to be computed")
	}

	// For a pure scale the inverse-transpose is the reciprocal scale, so X
	// normal components shrink instead of stretching with the geometry.
	if absDiff(nm[0], 0.5) > 1e-6 || absDiff(nm[5], 1) > 1e-6 || absDiff(nm[10], 1) > 1e-6 {
		t.Errorf("normal matrix diagonal = (%v, %v, %v), want (0.5, 1, 1)", nm[0], nm[5], nm[10])
	}
}

func TestNormalMatrixSingularFallback(t *testing.T) {
	var model [16]float32 // degenerate: zero scale on every axis
	model[12], model[13], model[14] = 4, 5, 6

	var nm [16]float32
	if NormalMatrix(nm[:], model[:]) {
		t.Fatal("expected the singular model matrix to report fallback")
	}
	if nm != model {
		t.Errorf("fallback = %v, want the model matrix %v", nm, model)
	}
}

func TestMulPoint4AppliesTranslation(t *testing.T) {
	var m [16]float32
	Identity(m[:])
	m[12], m[13], m[14] = 1, 2, 3

	p := MulPoint4(m[:], 10, 20, 30)
	want := [4]float32{11, 22, 33, 1}
	if p != want {
		t.Errorf("point = %v, want %v", p, want)
	}
}

func TestMulDirectionIgnoresTranslation(t *testing.T) {
	var m [16]float32
	Identity(m[:])
	m[12], m[13], m[14] = 100, 100, 100

	d := MulDirection(m[:], 1, 0, 0)
	want := [3]float32{1, 0, 0}
	if d != want {
		t.Errorf("direction = %v, want %v", d, want)
	}
}

func TestLookAtTransformsEyeToOrigin(t *testing.T) {
	var view [16]float32
	LookAt(view[:], 0, 0, 5, 0, 0, 0, 0, 1, 0)

	eye := MulPoint4(view[:], 0, 0, 5)
	for i := 0; i < 3; i++ {
		if absDiff(eye[i], 0) > 1e-6 {
			t.Errorf("eye[%d] = %v, want 0", i, eye[i])
		}
	}

	// The target sits straight ahead, along -Z in view space.
	target := MulPoint4(view[:], 0, 0, 0)
	if absDiff(target[2], -5) > 1e-6 {
		t.Errorf("target depth = %v, want -5", target[2])
	}
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1.0}
	b := SliceToBytes(data)

	if len(b) != 4 {
		t.Fatalf("expected 4 bytes, got %d", len(b))
	}
	if bits := binary.LittleEndian.Uint32(b); bits != math.Float32bits(1.0) {
		t.Errorf("bytes = %#x, want %#x", bits, math.Float32bits(1.0))
	}

	if SliceToBytes([]float32(nil)) != nil {
		t.Error("expected nil for an empty slice")
	}
}

func absDiff(a, b float32) float32 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}
