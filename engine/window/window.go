package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the native window hosting the GPU-rendered view. It owns the
// surface the renderer draws to and routes the input events that drive the
// orbit camera.
type Window interface {
	// SetUpdateCallback sets the function invoked once per message loop
	// iteration, after pending events have been dispatched. Frame rendering
	// hangs off this callback. Pass nil to disable.
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function invoked when the framebuffer
	// changes size, receiving the new dimensions in pixels. Surface
	// reconfiguration and camera aspect updates hang off this callback.
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the function invoked on scroll wheel input.
	// Positive deltas mean scrolling up, which the viewers map to zooming in.
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the function invoked when a key is pressed or
	// repeats, receiving the key code.
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the function invoked when a key is released.
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMiddleMouseDownCallback sets the function invoked when the middle
	// mouse button goes down, receiving the cursor position. Viewers treat
	// this as the start of an orbit drag.
	SetMiddleMouseDownCallback(callback func(x, y int32))

	// SetMiddleMouseUpCallback sets the function invoked when the middle
	// mouse button is released, ending an orbit drag.
	SetMiddleMouseUpCallback(callback func(x, y int32))

	// SetMouseMoveCallback sets the function invoked when the cursor moves.
	SetMouseMoveCallback(callback func(x, y int32))

	// SurfaceDescriptor returns the platform-specific descriptor for
	// creating a WebGPU surface on this window, or nil before the native
	// window exists.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open and processing events.
	IsRunning() bool

	// Close destroys the native window and releases platform resources.
	Close() error

	// ProcessMessages runs the message loop until the window closes,
	// invoking the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int

	// AspectRatio returns width over height, the value the camera's
	// projection wants.
	AspectRatio() float32
}

type engineWindow struct {
	title string

	// Bounds applied to user resizing, and the current framebuffer size.
	// All in pixels; on high-DPI displays the framebuffer size differs from
	// the logical window size.
	maxWidth, maxHeight int
	minWidth, minHeight int
	width, height       int

	platform *glfwWindow

	// Event callbacks, nil until registered.
	onUpdate          func()
	onResize          func(width, height int)
	onScroll          func(delta float32)
	onKeyDown         func(keyCode uint32)
	onKeyUp           func(keyCode uint32)
	onMiddleMouseDown func(x, y int32)
	onMiddleMouseUp   func(x, y int32)
	onMouseMove       func(x, y int32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a native window. Defaults to a 1280x720
// framebuffer titled "Glint Viewer", resizable between 320x240 and 4K.
// Panics if the platform window cannot be created, since nothing downstream
// can run without one.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the live window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Glint Viewer",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}

	platform, err := newGLFWWindow(w)
	if err != nil {
		panic(fmt.Errorf("create platform window: %w", err))
	}
	w.platform = platform
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMiddleMouseDownCallback(callback func(x, y int32)) {
	w.onMiddleMouseDown = callback
}

func (w *engineWindow) SetMiddleMouseUpCallback(callback func(x, y int32)) {
	w.onMiddleMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.platform == nil {
		return nil
	}
	return w.platform.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return w.platform != nil && w.platform.isRunning()
}

func (w *engineWindow) Close() error {
	if w.platform == nil {
		return errors.New("window not initialized")
	}
	return w.platform.close()
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if !w.platform.poll() {
			break
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) AspectRatio() float32 {
	if w.height == 0 {
		return 1
	}
	return float32(w.width) / float32(w.height)
}
