package shading

import (
	"testing"

	"github.com/Carmen-Shannon/glint-go/common"
)

func identityTransformSet() TransformSet {
	var t TransformSet
	common.Identity(t.Model[:])
	common.Identity(t.View[:])
	common.Identity(t.Projection[:])
	return t
}

func TestTransformVertexIdentity(t *testing.T) {
	d := identityTransformSet().Derive()
	in := VertexInput{
		Position: [3]float32{1, 2, 3},
		Normal:   [3]float32{0, 2, 0}, // not pre-normalized
		TexCoord: [2]float32{0.25, 0.75},
	}

	out := TransformVertex(in, d)

	if out.WorldPosition != in.Position {
		t.Errorf("world position = %v, want %v", out.WorldPosition, in.Position)
	}
	want := [4]float32{1, 2, 3, 1}
	if out.ClipPosition != want {
		t.Errorf("clip position = %v, want %v", out.ClipPosition, want)
	}
	if absDiff(out.WorldNormal[1], 1) > 1e-6 || absDiff(out.WorldNormal[0], 0) > 1e-6 {
		t.Errorf("world normal = %v, want unit (0,1,0)", out.WorldNormal)
	}
	if out.TexCoord != in.TexCoord {
		t.Errorf("tex coord = %v, want %v", out.TexCoord, in.TexCoord)
	}
}

func TestWorldNormalUniformScaleInvariance(t *testing.T) {
	in := VertexInput{
		Position: [3]float32{0, 0, 0},
		Normal:   [3]float32{1, 2, -0.5},
	}

	for _, scale := range []float32{0.25, 2, 5, 40} {
		var ts TransformSet
		common.BuildModelMatrix(ts.Model[:], 3, -1, 7, 0.3, 0.9, -0.2, 1, 1, 1)
		// Uniform scale applied on top of rotation+translation must not move
		// the normal direction relative to the unscaled transform.
		var scaled TransformSet
		common.BuildModelMatrix(scaled.Model[:], 3, -1, 7, 0.3, 0.9, -0.2, scale, scale, scale)
		common.Identity(ts.View[:])
		common.Identity(ts.Projection[:])
		common.Identity(scaled.View[:])
		common.Identity(scaled.Projection[:])

		unscaled := TransformVertex(in, ts.Derive())
		got := TransformVertex(in, scaled.Derive())

		for i := range got.WorldNormal {
			if absDiff(got.WorldNormal[i], unscaled.WorldNormal[i]) > 1e-4 {
				t.Errorf("scale %g: normal = %v, want %v", scale, got.WorldNormal, unscaled.WorldNormal)
				break
			}
		}
		if length3(got.WorldNormal) < 0.9999 || length3(got.WorldNormal) > 1.0001 {
			t.Errorf("scale %g: normal length = %g, want unit", scale, length3(got.WorldNormal))
		}
	}
}

func TestWorldNormalNonUniformScaleCorrection(t *testing.T) {
	// Scaling x by 2 skews a 45-degree surface; the inverse-transpose
	// transform counter-scales the normal's x component so it stays
	// perpendicular. Expected direction: normalize(0.5, 1, 0).
	var ts TransformSet
	common.BuildModelMatrix(ts.Model[:], 0, 0, 0, 0, 0, 0, 2, 1, 1)
	common.Identity(ts.View[:])
	common.Identity(ts.Projection[:])

	in := VertexInput{Normal: [3]float32{1, 1, 0}}
	out := TransformVertex(in, ts.Derive())

	want := normalize3([3]float32{0.5, 1, 0})
	for i := range out.WorldNormal {
		if absDiff(out.WorldNormal[i], want[i]) > 1e-5 {
			t.Fatalf("world normal = %v, want %v", out.WorldNormal, want)
		}
	}

	// The model matrix itself would have produced normalize(2, 1, 0); make
	// sure that wrong direction is not what came out.
	wrong := normalize3([3]float32{2, 1, 0})
	if absDiff(out.WorldNormal[0], wrong[0]) < 1e-3 {
		t.Errorf("world normal %v matches the uncorrected model transform", out.WorldNormal)
	}
}

func TestDeriveComposesClipTransform(t *testing.T) {
	var ts TransformSet
	common.BuildModelMatrix(ts.Model[:], 0, 0, -5, 0, 0, 0, 1, 1, 1)
	common.LookAt(ts.View[:], 0, 0, 5, 0, 0, 0, 0, 1, 0)
	common.Perspective(ts.Projection[:], 45*3.14159265/180, 16.0/9.0, 0.1, 100)

	d := ts.Derive()
	out := TransformVertex(VertexInput{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 0, 1}}, d)

	// The vertex sits 10 units in front of the camera: positive w, centered
	// in x and y after perspective division.
	if out.ClipPosition[3] <= 0 {
		t.Fatalf("clip w = %g, want > 0 for a vertex in front of the camera", out.ClipPosition[3])
	}
	ndcX := out.ClipPosition[0] / out.ClipPosition[3]
	ndcY := out.ClipPosition[1] / out.ClipPosition[3]
	if absDiff(ndcX, 0) > 1e-5 || absDiff(ndcY, 0) > 1e-5 {
		t.Errorf("ndc = (%g, %g), want centered", ndcX, ndcY)
	}
	if out.WorldPosition != ([3]float32{0, 0, -5}) {
		t.Errorf("world position = %v, want (0,0,-5)", out.WorldPosition)
	}
}

func TestDeriveNormalMatrixTracksModel(t *testing.T) {
	var a, b TransformSet
	common.BuildModelMatrix(a.Model[:], 0, 0, 0, 0, 0, 0, 2, 1, 1)
	common.BuildModelMatrix(b.Model[:], 0, 0, 0, 0, 0, 0, 1, 3, 1)
	common.Identity(a.View[:])
	common.Identity(a.Projection[:])
	common.Identity(b.View[:])
	common.Identity(b.Projection[:])

	da := a.Derive()
	db := b.Derive()
	if da.NormalMatrix == db.NormalMatrix {
		t.Fatal("normal matrices identical across differing model matrices")
	}

	// Re-deriving after a model change must pick up the new inverse-transpose.
	a.Model = b.Model
	if got := a.Derive().NormalMatrix; got != db.NormalMatrix {
		t.Errorf("re-derived normal matrix = %v, want %v", got, db.NormalMatrix)
	}
}

func TestInterpolate(t *testing.T) {
	v0 := VertexOutput{
		WorldPosition: [3]float32{0, 0, 0},
		WorldNormal:   [3]float32{1, 0, 0},
		TexCoord:      [2]float32{0, 0},
	}
	v1 := VertexOutput{
		WorldPosition: [3]float32{3, 0, 0},
		WorldNormal:   [3]float32{0, 1, 0},
		TexCoord:      [2]float32{1, 0},
	}
	v2 := VertexOutput{
		WorldPosition: [3]float32{0, 3, 0},
		WorldNormal:   [3]float32{0, 0, 1},
		TexCoord:      [2]float32{0, 1},
	}

	t.Run("vertex weights reproduce vertices", func(t *testing.T) {
		cases := []struct {
			w0, w1, w2 float32
			want       VertexOutput
		}{
			{1, 0, 0, v0},
			{0, 1, 0, v1},
			{0, 0, 1, v2},
		}
		for _, tc := range cases {
			got := Interpolate(v0, v1, v2, tc.w0, tc.w1, tc.w2)
			if got.WorldPosition != tc.want.WorldPosition {
				t.Errorf("weights (%g,%g,%g): position = %v, want %v", tc.w0, tc.w1, tc.w2, got.WorldPosition, tc.want.WorldPosition)
			}
			if got.WorldNormal != tc.want.WorldNormal {
				t.Errorf("weights (%g,%g,%g): normal = %v, want %v", tc.w0, tc.w1, tc.w2, got.WorldNormal, tc.want.WorldNormal)
			}
			if got.TexCoord != tc.want.TexCoord {
				t.Errorf("weights (%g,%g,%g): tex coord = %v, want %v", tc.w0, tc.w1, tc.w2, got.TexCoord, tc.want.TexCoord)
			}
		}
	})

	t.Run("centroid averages all vertices", func(t *testing.T) {
		third := float32(1.0 / 3.0)
		got := Interpolate(v0, v1, v2, third, third, third)
		wantPos := [3]float32{1, 1, 0}
		for i := range wantPos {
			if absDiff(got.WorldPosition[i], wantPos[i]) > 1e-6 {
				t.Errorf("centroid position = %v, want %v", got.WorldPosition, wantPos)
				break
			}
		}
		if absDiff(got.TexCoord[0], third) > 1e-6 || absDiff(got.TexCoord[1], third) > 1e-6 {
			t.Errorf("centroid tex coord = %v, want (1/3, 1/3)", got.TexCoord)
		}
	})

	t.Run("interpolation denormalizes normals", func(t *testing.T) {
		got := Interpolate(v0, v1, v2, 0.5, 0.5, 0)
		if l := length3(got.WorldNormal); l >= 1 {
			t.Errorf("interpolated normal length = %g, want < 1 between divergent unit normals", l)
		}
	})
}

func BenchmarkTransformVertex(b *testing.B) {
	var ts TransformSet
	common.BuildModelMatrix(ts.Model[:], 1, 2, 3, 0.4, 0.5, 0.6, 1.5, 1.5, 1.5)
	common.LookAt(ts.View[:], 0, 2, 8, 0, 0, 0, 0, 1, 0)
	common.Perspective(ts.Projection[:], 45*3.14159265/180, 16.0/9.0, 0.1, 100)
	d := ts.Derive()

	in := VertexInput{
		Position: [3]float32{0.5, -0.25, 0.75},
		Normal:   [3]float32{0.3, 0.9, 0.1},
		TexCoord: [2]float32{0.5, 0.5},
	}
	var sink VertexOutput
	for b.Loop() {
		sink = TransformVertex(in, d)
	}
	_ = sink
}
