package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow wraps the GLFW handle behind the engineWindow facade. GLFW is
// the only platform backing; everything that touches the glfw package stays
// in this file.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newGLFWWindow initializes GLFW, opens the window, and wires the input
// callbacks through to the parent's registered handlers. GLFW requires all
// window calls on one OS thread, so the calling goroutine is locked.
func newGLFWWindow(w *engineWindow) (*glfwWindow, error) {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize GLFW: %w", err)
	}

	// WebGPU brings its own graphics API; an OpenGL context would only get
	// in the way of surface creation.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create GLFW window: %w", err)
	}

	// Keep user resizing inside the range the renderer can configure a
	// surface for.
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	gw.registerInput()

	// The framebuffer may come back larger than requested on high-DPI
	// displays. The renderer configures its surface in pixels, so track the
	// framebuffer size rather than the logical window size.
	w.width, w.height = win.GetFramebufferSize()

	return gw, nil
}

// registerInput installs the GLFW event handlers. Escape closes the window;
// every other event forwards to the parent's callback when one is set.
func (gw *glfwWindow) registerInput() {
	w := gw.parent
	win := gw.window

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(uint32(key))
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(uint32(key))
			}
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonMiddle {
			return
		}
		xpos, ypos := win.GetCursorPos()
		switch action {
		case glfw.Press:
			if w.onMiddleMouseDown != nil {
				w.onMiddleMouseDown(int32(xpos), int32(ypos))
			}
		case glfw.Release:
			if w.onMiddleMouseUp != nil {
				w.onMiddleMouseUp(int32(xpos), int32(ypos))
			}
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(int32(xpos), int32(ypos))
		}
	})

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
}

// surfaceDescriptor builds the platform-appropriate wgpu surface descriptor
// (Win32 HWND, X11, Wayland, or Metal layer) via the wgpuglfw bridge.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func (gw *glfwWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// isRunning reports whether the window is open: the running flag is still
// set and GLFW has not flagged the window for closing.
func (gw *glfwWindow) isRunning() bool {
	return gw.running && !gw.window.ShouldClose()
}

// close destroys the window and shuts GLFW down.
func (gw *glfwWindow) close() error {
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// poll dispatches pending events without blocking and reports whether the
// window survived them.
func (gw *glfwWindow) poll() bool {
	glfw.PollEvents()
	return gw.isRunning()
}
