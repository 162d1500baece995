package camera

// CameraBuilderOption is a creation-time setting applied by NewCamera.
// Options assign raw values; NewCamera recomputes the matrices once after
// all options have run, provided a controller was attached.
type CameraBuilderOption func(*perspectiveCamera)

// WithUp sets the camera's up vector.
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.up = [3]float32{x, y, z}
	}
}

// WithFov sets the vertical field of view in radians.
func WithFov(fov float32) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.fov = fov
	}
}

// WithAspect sets the aspect ratio (width / height).
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
func WithNear(near float32) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
func WithFar(far float32) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.far = far
	}
}

// WithController attaches the controller that supplies eye and target
// positions.
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.controller = ctrl
	}
}
