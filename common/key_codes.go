package common

// Key codes as delivered by the window's key callbacks. The values are GLFW
// key codes, which equal the ASCII value for printable keys, so the letter
// and digit constants are spelled as their rune literals.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	// Orbit and zoom bindings.
	KeyW = 'W'
	KeyA = 'A'
	KeyS = 'S'
	KeyD = 'D'
	KeyQ = 'Q'
	KeyE = 'E'

	// Viewer toggles.
	KeyB = 'B'
	KeyF = 'F'
	KeyG = 'G'
	KeyL = 'L'
	KeyT = 'T'
	KeyV = 'V'
	KeyX = 'X'

	KeySpace = ' '
)

// Digit row, a contiguous range for numeric selection.
const (
	Key0 = '0'
	Key1 = '1'
	Key2 = '2'
	Key3 = '3'
	Key4 = '4'
	Key5 = '5'
	Key6 = '6'
	Key7 = '7'
	Key8 = '8'
	Key9 = '9'
)
