package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/glint-go/common"
	"github.com/Carmen-Shannon/glint-go/engine/shading"
)

// Camera owns the perspective settings and turns the attached controller's
// eye/target state into view and projection matrices. It supplies the
// per-draw-call inputs the lighting model needs from the viewer: the
// view/projection half of a transform set and the world-space eye position
// that the specular term measures against.
type Camera interface {
	// Up returns the camera's up vector.
	Up() (x, y, z float32)

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Position returns the world-space eye position reported by the attached
	// controller, or the origin when no controller is attached.
	Position() [3]float32

	// ViewMatrix returns the current view matrix, column-major.
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current projection matrix, column-major.
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns projection * view, column-major. Frustum
	// planes for culling are extracted from this product.
	ViewProjectionMatrix() [16]float32

	// TransformSet pairs the camera's current view and projection with the
	// given model matrix, forming the per-draw-call transform set the
	// shading pipeline consumes.
	TransformSet(model [16]float32) shading.TransformSet

	// Controller returns the attached controller, or nil.
	Controller() CameraController

	// Update recomputes the matrices from the controller's current state.
	// Call once per frame after input has moved the controller. Does
	// nothing when no controller is attached.
	Update()

	// SetUp sets the up vector and recomputes the matrices.
	SetUp(x, y, z float32)

	// SetFov sets the vertical field of view in radians and recomputes the
	// matrices.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio and recomputes the matrices. Resize
	// handlers call this with the new surface proportions.
	SetAspect(aspect float32)

	// SetNear sets the near plane distance and recomputes the matrices.
	SetNear(near float32)

	// SetFar sets the far plane distance and recomputes the matrices.
	SetFar(far float32)

	// SetController attaches a controller. The matrices are not recomputed
	// until the next Update call.
	SetController(ctrl CameraController)
}

// perspectiveCamera is the single Camera implementation.
type perspectiveCamera struct {
	mu *sync.Mutex

	up [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller CameraController
}

var _ Camera = &perspectiveCamera{}

// NewCamera creates a camera with a 45-degree vertical field of view, square
// aspect, and a [0.1, 100] depth range. The matrices start as identity and
// stay identity until a controller is attached, so a camera without one is
// inert rather than broken.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the configured camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &perspectiveCamera{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		fov:    45.0 * (math.Pi / 180.0),
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	common.Identity(c.viewMatrix[:])
	common.Identity(c.projectionMatrix[:])
	common.Identity(c.viewProjectionMatrix[:])

	for _, option := range options {
		option(c)
	}
	if c.controller != nil {
		c.updateMatrices()
	}
	return c
}

func (c *perspectiveCamera) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *perspectiveCamera) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *perspectiveCamera) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *perspectiveCamera) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *perspectiveCamera) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *perspectiveCamera) Position() [3]float32 {
	c.mu.Lock()
	ctrl := c.controller
	c.mu.Unlock()

	if ctrl == nil {
		return [3]float32{}
	}
	x, y, z := ctrl.Position()
	return [3]float32{x, y, z}
}

func (c *perspectiveCamera) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *perspectiveCamera) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *perspectiveCamera) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *perspectiveCamera) TransformSet(model [16]float32) shading.TransformSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return shading.TransformSet{
		Model:      model,
		View:       c.viewMatrix,
		Projection: c.projectionMatrix,
	}
}

func (c *perspectiveCamera) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *perspectiveCamera) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *perspectiveCamera) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *perspectiveCamera) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *perspectiveCamera) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *perspectiveCamera) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *perspectiveCamera) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *perspectiveCamera) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

// updateMatrices rebuilds view, projection, and their product from the
// controller's eye/target and the perspective settings. No-op without a
// controller. Caller must hold the mutex.
func (c *perspectiveCamera) updateMatrices() {
	if c.controller == nil {
		return
	}

	ex, ey, ez := c.controller.Position()
	cx, cy, cz := c.controller.Target()

	common.LookAt(c.viewMatrix[:], ex, ey, ez, cx, cy, cz, c.up[0], c.up[1], c.up[2])
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
