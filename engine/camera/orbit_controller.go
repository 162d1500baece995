package camera

import (
	"math"
	"sync"
)

// orbitController keeps the eye on a sphere around the target. All mutators
// funnel through updatePosition so the cached position always agrees with the
// spherical coordinates.
type orbitController struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32 // around Y, 0 = +Z
	elevation float32 // above the horizontal plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
}

var _ CameraController = &orbitController{}

// NewOrbitController creates an orbit controller circling the origin.
// Defaults suit meter-scale scenes: radius 5, elevation 30 degrees, radius
// bounds [0.5, 100]. Elevation bounds stop short of straight-down and
// straight-up to keep the view matrix away from the up-vector singularity.
//
// Parameters:
//   - options: functional options overriding the defaults
//
// Returns:
//   - CameraController: the configured controller
func NewOrbitController(options ...OrbitControllerOption) CameraController {
	oc := &orbitController{
		mu:        &sync.Mutex{},
		radius:    5.0,
		elevation: float32(math.Pi / 6),

		minRadius:    0.5,
		maxRadius:    100.0,
		minElevation: 0.05,
		maxElevation: float32(math.Pi/2 - 0.1),

		orbitSpeed:       0.03,
		mouseSensitivity: 0.005,
		zoomSpeed:        0.5,
	}
	for _, option := range options {
		option(oc)
	}

	// Options set raw coordinates without clamping, so a caller may start
	// outside the bounds on purpose (for example elevation 0 for a
	// horizon-level shot). Bounds apply from the first mutation onward.
	oc.updatePosition()
	return oc
}

// updatePosition derives the cached eye position from the spherical
// coordinates. Caller must hold the mutex.
func (oc *orbitController) updatePosition() {
	sinAz, cosAz := math.Sincos(float64(oc.azimuth))
	sinEl, cosEl := math.Sincos(float64(oc.elevation))

	horiz := oc.radius * float32(cosEl)
	oc.position[0] = oc.target[0] + horiz*float32(sinAz)
	oc.position[1] = oc.target[1] + oc.radius*float32(sinEl)
	oc.position[2] = oc.target[2] + horiz*float32(cosAz)
}

func (oc *orbitController) Position() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position[0], oc.position[1], oc.position[2]
}

func (oc *orbitController) Target() (x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target[0], oc.target[1], oc.target[2]
}

func (oc *orbitController) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = [3]float32{x, y, z}
	oc.updatePosition()
}

func (oc *orbitController) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = clampf(oc.radius-delta*oc.zoomSpeed, oc.minRadius, oc.maxRadius)
	oc.updatePosition()
}

func (oc *orbitController) OrbitLeft() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth -= oc.orbitSpeed
	oc.updatePosition()
}

func (oc *orbitController) OrbitRight() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth += oc.orbitSpeed
	oc.updatePosition()
}

// OrbitUp clamps only the ceiling (and OrbitDown only the floor) so a
// controller constructed outside the bounds can still step back toward them.
func (oc *orbitController) OrbitUp() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = min(oc.elevation+oc.orbitSpeed, oc.maxElevation)
	oc.updatePosition()
}

func (oc *orbitController) OrbitDown() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = max(oc.elevation-oc.orbitSpeed, oc.minElevation)
	oc.updatePosition()
}

func (oc *orbitController) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitController) SetRadius(radius float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.radius = clampf(radius, oc.minRadius, oc.maxRadius)
	oc.updatePosition()
}

func (oc *orbitController) MinRadius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.minRadius
}

func (oc *orbitController) MaxRadius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.maxRadius
}

func (oc *orbitController) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitController) SetAzimuth(azimuth float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.azimuth = azimuth
	oc.updatePosition()
}

func (oc *orbitController) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}

func (oc *orbitController) SetElevation(elevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.elevation = clampf(elevation, oc.minElevation, oc.maxElevation)
	oc.updatePosition()
}

func (oc *orbitController) MinElevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.minElevation
}

func (oc *orbitController) MaxElevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.maxElevation
}

func (oc *orbitController) OrbitSpeed() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.orbitSpeed
}

func (oc *orbitController) MouseSensitivity() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.mouseSensitivity
}

func (oc *orbitController) ZoomSpeed() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.zoomSpeed
}

func clampf(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
