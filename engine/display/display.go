package display

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Display presents CPU-rendered RGBA frames in a window. It is the output
// end of the software path: the software renderer produces pixel buffers and
// Present hands them to the display, which blits them to the screen on its
// own game loop. The framebuffer size is fixed at construction; resizing the
// window scales the image.
type Display interface {
	// Start opens the window and begins the presentation loop on its own
	// goroutine. Blocks until the first frame has been drawn so callers can
	// Present immediately after. Calling Start on a running display is a
	// no-op.
	//
	// Returns:
	//   - error: an error if the display terminates before presenting a frame
	Start() error

	// Present replaces the displayed frame with the given pixels. The bytes
	// are copied, so the caller may reuse the slice immediately.
	//
	// Parameters:
	//   - frame: RGBA pixel bytes, top row first, exactly width*height*4 long
	//
	// Returns:
	//   - error: an error if the frame length does not match the framebuffer
	Present(frame []byte) error

	// WaitForVSync blocks until the next frame has been drawn to the screen,
	// pacing a render loop to the display refresh. Returns immediately once
	// the display has shut down.
	WaitForVSync()

	// SetKeyHandler sets the function receiving printable key input, one
	// byte per typed character. Viewers use this for mode toggles.
	//
	// Parameters:
	//   - fn: handler function (or nil to disable)
	SetKeyHandler(fn func(b byte))

	// IsRunning returns true while the presentation loop is active.
	//
	// Returns:
	//   - bool: true if the display is running
	IsRunning() bool

	// Done returns a channel closed when the presentation loop exits, either
	// from Close or from the user closing the window.
	//
	// Returns:
	//   - <-chan struct{}: the termination channel
	Done() <-chan struct{}

	// FrameCount returns the number of frames drawn since Start.
	//
	// Returns:
	//   - uint64: the drawn frame count
	FrameCount() uint64

	// Close stops the presentation loop. The window closes on the next
	// update tick.
	//
	// Returns:
	//   - error: always nil; present for interface symmetry with Window
	Close() error
}

// displayImpl is the implementation of the Display interface. It doubles as
// the ebiten.Game driving the window.
type displayImpl struct {
	mu sync.RWMutex

	title  string
	width  int
	height int
	scale  int
	vsync  bool

	running bool

	// frame holds the most recently presented RGBA bytes; canvas is the GPU
	// image they are uploaded to each draw.
	frame  []byte
	canvas *ebiten.Image

	keyHandler func(b byte)

	frameCount atomic.Uint64

	// vsyncChan receives one signal per drawn frame; done closes when the
	// game loop exits.
	vsyncChan chan struct{}
	done      chan struct{}
}

var _ Display = &displayImpl{}
var _ ebiten.Game = &displayImpl{}

// NewDisplay creates a Display with the given framebuffer dimensions. The
// display starts black until the first Present.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//   - options: variadic list of DisplayOption functions to configure the display
//
// Returns:
//   - Display: the configured display (window not yet open)
func NewDisplay(width, height int, options ...DisplayOption) Display {
	d := &displayImpl{
		title:     "Glint Viewer",
		width:     width,
		height:    height,
		scale:     1,
		vsync:     true,
		frame:     make([]byte, width*height*4),
		vsyncChan: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	for _, option := range options {
		option(d)
	}
	return d
}

func (d *displayImpl) Start() error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = true
	d.mu.Unlock()

	ebiten.SetWindowSize(d.width*d.scale, d.height*d.scale)
	ebiten.SetWindowTitle(d.title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(d.vsync)

	go func() {
		defer close(d.done)
		if err := ebiten.RunGame(d); err != nil && !errors.Is(err, ebiten.Termination) {
			log.Printf("display loop exited: %v", err)
		}
		d.mu.Lock()
		d.running = false
		d.mu.Unlock()
	}()

	// Wait for the first drawn frame so the caller can pace against vsync
	// right away. Bail out if the loop dies first (e.g. no display server).
	select {
	case <-d.vsyncChan:
		return nil
	case <-d.done:
		return errors.New("display terminated before presenting a frame")
	}
}

func (d *displayImpl) Present(frame []byte) error {
	if len(frame) != d.width*d.height*4 {
		return fmt.Errorf("frame is %d bytes, want %d for %dx%d RGBA",
			len(frame), d.width*d.height*4, d.width, d.height)
	}
	d.mu.Lock()
	copy(d.frame, frame)
	d.mu.Unlock()
	return nil
}

func (d *displayImpl) WaitForVSync() {
	select {
	case <-d.vsyncChan:
	case <-d.done:
	}
}

func (d *displayImpl) SetKeyHandler(fn func(b byte)) {
	d.mu.Lock()
	d.keyHandler = fn
	d.mu.Unlock()
}

func (d *displayImpl) IsRunning() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.running
}

func (d *displayImpl) Done() <-chan struct{} {
	return d.done
}

func (d *displayImpl) FrameCount() uint64 {
	return d.frameCount.Load()
}

func (d *displayImpl) Close() error {
	d.mu.Lock()
	d.running = false
	d.mu.Unlock()
	return nil
}

// Update implements ebiten.Game. Terminates the loop when the window is
// closed, Close was called, or Escape is pressed, and forwards printable key
// input to the key handler.
func (d *displayImpl) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if !d.IsRunning() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	d.mu.RLock()
	handler := d.keyHandler
	d.mu.RUnlock()
	if handler != nil {
		for _, r := range ebiten.AppendInputChars(nil) {
			if r > 0 && r <= 0xFF {
				handler(byte(r))
			}
		}
	}
	return nil
}

// Draw implements ebiten.Game. Uploads the presented frame to the canvas and
// signals vsync without blocking.
func (d *displayImpl) Draw(screen *ebiten.Image) {
	if d.canvas == nil {
		d.canvas = ebiten.NewImage(d.width, d.height)
	}

	d.mu.RLock()
	d.canvas.WritePixels(d.frame)
	d.mu.RUnlock()
	screen.DrawImage(d.canvas, nil)

	d.frameCount.Add(1)
	select {
	case d.vsyncChan <- struct{}{}:
	default:
	}
}

// Layout implements ebiten.Game. The logical resolution is the fixed
// framebuffer size; ebiten scales it to the window.
func (d *displayImpl) Layout(_, _ int) (int, int) {
	return d.width, d.height
}
