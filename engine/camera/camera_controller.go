package camera

// CameraController supplies the positional half of the camera: a world-space
// eye position and a look-at target. The orbit model constrains the eye to a
// sphere around the target described by spherical coordinates (radius,
// azimuth, elevation), so every mutation recomputes the position and the eye
// can never drift off the sphere.
type CameraController interface {
	// Position returns the world-space eye position derived from the target
	// and the current spherical coordinates.
	Position() (x, y, z float32)

	// Target returns the world-space look-at point.
	Target() (x, y, z float32)

	// SetTarget moves the look-at point and carries the eye along with it.
	SetTarget(x, y, z float32)

	// Zoom moves the eye along the view ray: positive delta moves toward the
	// target, negative away. The delta is scaled by the zoom speed and the
	// resulting radius is clamped to the radius bounds. Scroll-wheel offsets
	// feed this directly.
	Zoom(delta float32)

	// OrbitLeft swings the eye left around the target by one orbit step.
	OrbitLeft()

	// OrbitRight swings the eye right around the target by one orbit step.
	OrbitRight()

	// OrbitUp raises the eye by one orbit step, stopping at the elevation
	// ceiling.
	OrbitUp()

	// OrbitDown lowers the eye by one orbit step, stopping at the elevation
	// floor.
	OrbitDown()

	// Radius returns the eye's distance from the target.
	Radius() float32

	// SetRadius sets the orbit distance, clamped to the radius bounds.
	SetRadius(radius float32)

	// MinRadius returns the closest allowed orbit distance.
	MinRadius() float32

	// MaxRadius returns the farthest allowed orbit distance.
	MaxRadius() float32

	// Azimuth returns the horizontal angle around the Y axis in radians.
	// Zero places the eye on the +Z side of the target.
	Azimuth() float32

	// SetAzimuth sets the horizontal angle. Azimuth is unbounded; full
	// revolutions wrap naturally through the trigonometry.
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle above the horizontal plane in
	// radians.
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the elevation bounds.
	SetElevation(elevation float32)

	// MinElevation returns the elevation floor in radians.
	MinElevation() float32

	// MaxElevation returns the elevation ceiling in radians.
	MaxElevation() float32

	// OrbitSpeed returns the radians moved per Orbit* call.
	OrbitSpeed() float32

	// MouseSensitivity returns the radians-per-pixel factor for drag input.
	MouseSensitivity() float32

	// ZoomSpeed returns the world units of radius per unit of zoom delta.
	ZoomSpeed() float32
}
