package engine

import (
	"bytes"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine().(*engine)

	if e.engineTickRate != time.Second/60 {
		t.Errorf("expected default tick rate %v, got %v", time.Second/60, e.engineTickRate)
	}
	if e.profiler == nil {
		t.Error("expected a profiler to be constructed by default")
	}
	if e.profilingEnabled {
		t.Error("expected profiling to be disabled by default")
	}
	if e.window != nil {
		t.Error("expected no window by default")
	}
	if e.renderFrameLimit != 0 {
		t.Errorf("expected uncapped render loop by default, got limit %v", e.renderFrameLimit)
	}
}

func TestEngineBuilderOptions(t *testing.T) {
	tests := []struct {
		name   string
		option EngineBuilderOption
		check  func(t *testing.T, e *engine)
	}{
		{
			name:   "tick rate",
			option: WithTickRate(120),
			check: func(t *testing.T, e *engine) {
				if e.engineTickRate != time.Second/120 {
					t.Errorf("expected tick rate %v, got %v", time.Second/120, e.engineTickRate)
				}
			},
		},
		{
			name:   "tick rate falls back to 60",
			option: WithTickRate(-5),
			check: func(t *testing.T, e *engine) {
				if e.engineTickRate != time.Second/60 {
					t.Errorf("expected fallback tick rate %v, got %v", time.Second/60, e.engineTickRate)
				}
			},
		},
		{
			name:   "profiling",
			option: WithProfiling(true),
			check: func(t *testing.T, e *engine) {
				if !e.profilingEnabled {
					t.Error("expected profiling to be enabled")
				}
			},
		},
		{
			name:   "render frame limit",
			option: WithRenderFrameLimit(30),
			check: func(t *testing.T, e *engine) {
				if e.renderFrameLimit != time.Second/30 {
					t.Errorf("expected frame limit %v, got %v", time.Second/30, e.renderFrameLimit)
				}
			},
		},
		{
			name:   "render frame limit uncapped",
			option: WithRenderFrameLimit(0),
			check: func(t *testing.T, e *engine) {
				if e.renderFrameLimit != 0 {
					t.Errorf("expected uncapped render loop, got limit %v", e.renderFrameLimit)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(tt.option).(*engine)
			tt.check(t, e)
		})
	}
}

func TestSetTickRateBeforeRun(t *testing.T) {
	e := NewEngine().(*engine)

	e.SetTickRate(144)
	if e.engineTickRate != time.Second/144 {
		t.Errorf("expected tick rate %v, got %v", time.Second/144, e.engineTickRate)
	}

	select {
	case rate := <-e.tickRateUpdates:
		t.Errorf("expected no pending rate update on a stopped engine, got %v", rate)
	default:
	}
}

func TestSetTickRateWhileRunning(t *testing.T) {
	e := NewEngine().(*engine)
	e.running.Store(true)

	e.SetTickRate(120)
	e.SetTickRate(30) // replaces the pending update

	select {
	case rate := <-e.tickRateUpdates:
		if rate != time.Second/30 {
			t.Errorf("expected latest rate %v to win, got %v", time.Second/30, rate)
		}
	default:
		t.Fatal("expected a pending rate update on the channel")
	}
}

func TestQuitIsIdempotent(t *testing.T) {
	e := NewEngine().(*engine)
	e.running.Store(true)

	e.Quit()
	e.Quit()

	if e.running.Load() {
		t.Error("expected engine to stop running after Quit")
	}
	select {
	case <-e.quitChannel:
	default:
		t.Error("expected quit channel to be closed")
	}
}

func TestEngineRunHeadless(t *testing.T) {
	var ticks, frames atomic.Int64

	e := NewEngine(WithTickRate(240))
	e.SetTickCallback(func(deltaTime float32) { ticks.Add(1) })
	e.SetRenderCallback(func(deltaTime float32) { frames.Add(1) })

	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Run()
	}()

	deadline := time.After(2 * time.Second)
	for ticks.Load() == 0 || frames.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("engine loops did not fire in time: ticks=%d frames=%d", ticks.Load(), frames.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	e.Quit()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
}

func TestRenderPanicShutsDownEngine(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	e := NewEngine()
	e.SetRenderCallback(func(deltaTime float32) { panic("renderer exploded") })

	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Run()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a render panic to shut the engine down")
	}

	if !strings.Contains(buf.String(), "recovered from panic") {
		t.Errorf("expected the recovery to be logged, got %q", buf.String())
	}
}

func TestSetRenderFrameLimit(t *testing.T) {
	e := NewEngine().(*engine)

	e.SetRenderFrameLimit(240)
	if e.renderFrameLimit != time.Second/240 {
		t.Errorf("expected frame limit %v, got %v", time.Second/240, e.renderFrameLimit)
	}

	e.SetRenderFrameLimit(0)
	if e.renderFrameLimit != 0 {
		t.Errorf("expected uncapped render loop, got limit %v", e.renderFrameLimit)
	}
}
