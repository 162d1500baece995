package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/glint-go/engine/profiler"
	"github.com/Carmen-Shannon/glint-go/engine/window"
)

// Engine is the host loop for a viewer. It runs a fixed-rate tick goroutine
// for simulation and input, a render goroutine that drives frames through the
// render callback, and pumps window messages when a window is attached. The
// engine owns no scene state; callers wire the camera, light, meshes, and
// renderer together inside the callbacks.
type Engine interface {
	// Window returns the attached window, or nil when running headless.
	Window() window.Window

	// EnableProfiler turns on periodic frame statistics in the log.
	EnableProfiler()

	// DisableProfiler turns frame statistics off.
	DisableProfiler()

	// SetTickRate sets the simulation rate in ticks per second. Values at
	// or below zero reset to 60. Takes effect immediately on a running
	// engine.
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each simulation tick
	// with the elapsed seconds since the previous tick. Input handling and
	// animation belong here.
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame
	// with the elapsed seconds since the previous frame. The callback owns
	// the frame: it begins, draws, and presents through whichever renderer
	// the caller wired up.
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit caps the render loop at the given frames per
	// second. Zero removes the cap, which is the default.
	SetRenderFrameLimit(fps float64)

	// Run starts the engine goroutines and blocks: on the window message
	// loop when a window is attached, otherwise until Quit is called.
	Run()

	// Quit stops the engine goroutines. Safe to call more than once.
	Quit()
}

type engine struct {
	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate  time.Duration
	tickRateUpdates chan time.Duration

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// NewEngine creates an engine ticking at 60 Hz with an uncapped render loop
// and no window.
//
// Parameters:
//   - options: functional options for window, profiling, tick rate, and
//     frame limit
//
// Returns:
//   - Engine: the configured engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:     make(chan struct{}),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
		tickRateUpdates: make(chan time.Duration, 1),
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.running.Store(true)
	e.start()

	if e.window != nil {
		// The message loop must stay on the thread that created the window.
		// When it drains (window closed), take the goroutines down with it.
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}

	e.wg.Wait()
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel exactly once, no matter how many paths
// race to shut the engine down.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// start launches the engine goroutines, each tracked by the WaitGroup that
// Run waits on.
func (e *engine) start() {
	e.wg.Add(3)
	go e.tickLoop()
	go e.renderLoop()
	go e.awaitQuit()
}

// tickLoop fires the tick callback at the configured rate and applies rate
// changes delivered through tickRateUpdates. Exits when the quit channel
// closes.
func (e *engine) tickLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case rate := <-e.tickRateUpdates:
			ticker.Reset(rate)
			e.engineTickRate = rate
		}
	}
}

// renderLoop drives the render callback as fast as the frame limit allows.
// A panicking frame is logged and shuts the engine down instead of killing
// the process with an unreadable goroutine dump.
func (e *engine) renderLoop() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastRender).Seconds())
		lastRender = now

		if e.renderCallback != nil {
			e.renderCallback(dt)
		}
		if e.profilingEnabled && e.profiler != nil {
			e.profiler.Tick()
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(lastRender); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// awaitQuit holds one WaitGroup slot until shutdown so Run cannot return
// before the quit signal has actually fired.
func (e *engine) awaitQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	rate := time.Second / time.Duration(fps)

	if !e.running.Load() {
		e.engineTickRate = rate
		return
	}
	// Try to hand the rate to the tick loop; if an older update is still
	// queued, drain it and retry so the newest rate wins.
	for {
		select {
		case e.tickRateUpdates <- rate:
			return
		case <-e.tickRateUpdates:
		}
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}
