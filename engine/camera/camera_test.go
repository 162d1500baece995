package camera

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	if got, want := c.Fov(), float32(45.0*(math.Pi/180.0)); absDiff(got, want) > 1e-6 {
		t.Errorf("Fov() = %v, want %v", got, want)
	}
	if got := c.Aspect(); got != 1.0 {
		t.Errorf("Aspect() = %v, want 1", got)
	}
	if got := c.Near(); got != 0.1 {
		t.Errorf("Near() = %v, want 0.1", got)
	}
	if got := c.Far(); got != 100.0 {
		t.Errorf("Far() = %v, want 100", got)
	}
	ux, uy, uz := c.Up()
	if ux != 0 || uy != 1 || uz != 0 {
		t.Errorf("Up() = (%v, %v, %v), want (0, 1, 0)", ux, uy, uz)
	}
	if got := c.Position(); got != [3]float32{0, 0, 0} {
		t.Errorf("Position() without controller = %v, want origin", got)
	}

	// Without a controller the matrices stay identity.
	identity := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
	if got := c.ViewMatrix(); got != identity {
		t.Errorf("ViewMatrix() without controller = %v, want identity", got)
	}
	if got := c.ProjectionMatrix(); got != identity {
		t.Errorf("ProjectionMatrix() without controller = %v, want identity", got)
	}
}

func TestOrbitControllerDefaults(t *testing.T) {
	cc := NewOrbitController()

	if got := cc.Radius(); got != 5.0 {
		t.Errorf("Radius() = %v, want 5", got)
	}
	if got := cc.Azimuth(); got != 0 {
		t.Errorf("Azimuth() = %v, want 0", got)
	}
	if got, want := cc.Elevation(), float32(math.Pi/6); absDiff(got, want) > 1e-6 {
		t.Errorf("Elevation() = %v, want %v", got, want)
	}

	// At azimuth 0 the camera sits on the +Z side of the target:
	// position = target + radius*(cosElev*sinAzim, sinElev, cosElev*cosAzim).
	x, y, z := cc.Position()
	wantY := float32(5.0 * math.Sin(math.Pi/6))
	wantZ := float32(5.0 * math.Cos(math.Pi/6))
	if absDiff(x, 0) > 1e-5 || absDiff(y, wantY) > 1e-5 || absDiff(z, wantZ) > 1e-5 {
		t.Errorf("Position() = (%v, %v, %v), want (0, %v, %v)", x, y, z, wantY, wantZ)
	}
}

func TestOrbitControllerClamps(t *testing.T) {
	cc := NewOrbitController(
		WithRadiusBounds(1.0, 10.0),
		WithElevationBounds(0.1, 1.0),
	)

	t.Run("radius floor", func(t *testing.T) {
		cc.SetRadius(0.01)
		if got := cc.Radius(); got != 1.0 {
			t.Errorf("Radius() after SetRadius(0.01) = %v, want clamp to 1", got)
		}
	})

	t.Run("radius ceiling", func(t *testing.T) {
		cc.SetRadius(500)
		if got := cc.Radius(); got != 10.0 {
			t.Errorf("Radius() after SetRadius(500) = %v, want clamp to 10", got)
		}
	})

	t.Run("zoom respects floor", func(t *testing.T) {
		cc.SetRadius(2)
		cc.Zoom(1000)
		if got := cc.Radius(); got != 1.0 {
			t.Errorf("Radius() after large zoom-in = %v, want clamp to 1", got)
		}
	})

	t.Run("elevation bounds", func(t *testing.T) {
		cc.SetElevation(5.0)
		if got := cc.Elevation(); got != 1.0 {
			t.Errorf("Elevation() after SetElevation(5) = %v, want clamp to 1", got)
		}
		cc.SetElevation(-5.0)
		if got, want := cc.Elevation(), float32(0.1); absDiff(got, want) > 1e-6 {
			t.Errorf("Elevation() after SetElevation(-5) = %v, want clamp to %v", got, want)
		}
	})

	t.Run("orbit up saturates", func(t *testing.T) {
		for range 200 {
			cc.OrbitUp()
		}
		if got := cc.Elevation(); got != 1.0 {
			t.Errorf("Elevation() after repeated OrbitUp = %v, want 1", got)
		}
	})
}

func TestOrbitPreservesRadius(t *testing.T) {
	cc := NewOrbitController(WithTarget(1, 2, 3))

	for range 17 {
		cc.OrbitRight()
	}
	cc.OrbitUp()
	cc.OrbitDown()

	px, py, pz := cc.Position()
	tx, ty, tz := cc.Target()
	dx, dy, dz := px-tx, py-ty, pz-tz
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if absDiff(dist, cc.Radius()) > 1e-4 {
		t.Errorf("distance to target = %v, want radius %v", dist, cc.Radius())
	}
}

func TestOrbitRightAdvancesAzimuth(t *testing.T) {
	cc := NewOrbitController()
	before := cc.Azimuth()
	cc.OrbitRight()
	if got, want := cc.Azimuth(), before+cc.OrbitSpeed(); absDiff(got, want) > 1e-6 {
		t.Errorf("Azimuth() after OrbitRight = %v, want %v", got, want)
	}

	x0, _, _ := cc.Position()
	cc.OrbitRight()
	x1, _, _ := cc.Position()
	if x0 == x1 {
		t.Error("OrbitRight did not move the camera position")
	}
}

func TestCameraUpdateTracksController(t *testing.T) {
	cc := NewOrbitController()
	c := NewCamera(
		WithController(cc),
		WithAspect(16.0/9.0),
	)

	before := c.ViewMatrix()
	cc.SetAzimuth(cc.Azimuth() + 0.5)
	c.Update()
	after := c.ViewMatrix()

	if before == after {
		t.Error("ViewMatrix() unchanged after controller moved and Update() was called")
	}

	// Position delegates straight through to the controller.
	px, py, pz := cc.Position()
	if got := c.Position(); got != [3]float32{px, py, pz} {
		t.Errorf("Position() = %v, want controller position (%v, %v, %v)", got, px, py, pz)
	}
}

func TestTransformSetPairsMatrices(t *testing.T) {
	cc := NewOrbitController()
	c := NewCamera(WithController(cc))

	model := [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 4, 5, 6, 1}
	ts := c.TransformSet(model)

	if ts.Model != model {
		t.Errorf("TransformSet model = %v, want %v", ts.Model, model)
	}
	if ts.View != c.ViewMatrix() {
		t.Error("TransformSet view does not match camera view matrix")
	}
	if ts.Projection != c.ProjectionMatrix() {
		t.Error("TransformSet projection does not match camera projection matrix")
	}
}

func TestGPUCameraUniformLayout(t *testing.T) {
	u := GPUCameraUniform{
		Position: [3]float32{1, 2, 3},
	}
	for i := range 16 {
		u.View[i] = float32(i)
		u.Projection[i] = float32(100 + i)
	}

	if got := u.Size(); got != 144 {
		t.Fatalf("Size() = %d, want 144", got)
	}

	buf := u.Marshal()
	if len(buf) != 144 {
		t.Fatalf("Marshal() len = %d, want 144", len(buf))
	}

	readF32 := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
	}
	if got := readF32(0); got != 0 {
		t.Errorf("view[0] at offset 0 = %v, want 0", got)
	}
	if got := readF32(60); got != 15 {
		t.Errorf("view[15] at offset 60 = %v, want 15", got)
	}
	if got := readF32(64); got != 100 {
		t.Errorf("projection[0] at offset 64 = %v, want 100", got)
	}
	if got := readF32(128); got != 1 {
		t.Errorf("position.x at offset 128 = %v, want 1", got)
	}
	if got := readF32(140); got != 0 {
		t.Errorf("padding at offset 140 = %v, want 0", got)
	}
}

func TestToGPUCameraSnapshotsCamera(t *testing.T) {
	cc := NewOrbitController()
	c := NewCamera(WithController(cc), WithAspect(2.0))

	u := ToGPUCamera(c)
	if u.View != c.ViewMatrix() {
		t.Error("ToGPUCamera view does not match camera")
	}
	if u.Projection != c.ProjectionMatrix() {
		t.Error("ToGPUCamera projection does not match camera")
	}
	if u.Position != c.Position() {
		t.Error("ToGPUCamera position does not match camera")
	}
}

// absDiff returns the absolute difference between two float32 values.
func absDiff(a, b float32) float32 {
	if a > b {
		return a - b
	}
	return b - a
}
