package engine

import (
	"time"

	"github.com/Carmen-Shannon/glint-go/engine/window"
)

// EngineBuilderOption is a creation-time setting applied by NewEngine.
type EngineBuilderOption func(*engine)

// WithProfiling enables frame statistics logging from the start instead of
// calling EnableProfiler later.
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the simulation rate in ticks per second. Values at or
// below zero fall back to 60.
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithWindow attaches the window whose message loop Run will block on. The
// engine quits when the window closes. Omit to run headless, for example
// when presenting software frames through the display package.
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderFrameLimit caps the render loop at the given frames per second.
// Zero leaves the loop uncapped.
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
