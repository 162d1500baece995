package camera

// OrbitControllerOption is a creation-time setting applied by
// NewOrbitController. Options write raw coordinate and bound values; nothing
// is clamped until the controller is mutated after construction.
type OrbitControllerOption func(*orbitController)

// WithRadius sets the starting distance between eye and target.
func WithRadius(radius float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.radius = radius
	}
}

// WithAzimuth sets the starting horizontal angle in radians. Zero looks down
// the -Z axis from the +Z side of the target.
func WithAzimuth(azimuth float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.azimuth = azimuth
	}
}

// WithElevation sets the starting vertical angle in radians above the
// horizontal plane.
func WithElevation(elevation float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.elevation = elevation
	}
}

// WithTarget sets the world-space pivot the controller orbits around.
func WithTarget(x, y, z float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.target = [3]float32{x, y, z}
	}
}

// WithRadiusBounds sets the closest and farthest allowed orbit distance.
func WithRadiusBounds(minRadius, maxRadius float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.minRadius = minRadius
		oc.maxRadius = maxRadius
	}
}

// WithElevationBounds sets the lowest and highest allowed vertical angle in
// radians. Keep the ceiling below pi/2 unless the camera's up vector is
// adjusted to match.
func WithElevationBounds(minElevation, maxElevation float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.minElevation = minElevation
		oc.maxElevation = maxElevation
	}
}

// WithOrbitSpeed sets the radians moved per Orbit* call.
func WithOrbitSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.orbitSpeed = speed
	}
}

// WithMouseSensitivity sets the radians-per-pixel factor for drag input.
func WithMouseSensitivity(sensitivity float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the world units of radius removed per unit of positive
// zoom delta.
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitController) {
		oc.zoomSpeed = speed
	}
}
