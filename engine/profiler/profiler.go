package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame pacing and memory statistics for the render loop.
// Call Tick once per frame; a stats line goes to the log each time the
// report interval elapses.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// ProfilerOption is a functional option applied during NewProfiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often a stats line is logged. Intervals at or below
// zero fall back to the one-second default.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - ProfilerOption: a function that applies the interval option to a profiler
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// NewProfiler creates a new Profiler. The report interval defaults to one
// second.
//
// Parameters:
//   - options: variadic list of ProfilerOption functions to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Tick records one frame and logs a stats line when the report interval has
// elapsed: FPS, average frame time, heap size, allocation rate, GC pauses,
// and process footprint. Frame time is the number that matters when the
// rasterizer is the bottleneck; FPS alone hides whether a slow second was
// one stall or uniformly slow frames.
//
// Returns:
//   - bool: true if a stats line was logged this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	frameMS := elapsed.Seconds() * 1000 / float64(p.frameCount)

	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap bytes. TotalAlloc: cumulative allocations (tracks
	// churn). Sys: bytes obtained from the OS (process footprint).
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	lastPauseUs, maxPauseUs := p.pauseStats(gcCount)

	log.Printf("[Profiler] FPS: %.2f (%.2f ms/frame) | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, frameMS, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// pauseStats returns the most recent GC pause and the longest pause since
// the previous report, in microseconds. PauseNs is a circular buffer of the
// last 256 pauses, so older cycles are silently out of reach.
func (p *Profiler) pauseStats(gcCount uint32) (lastPauseUs, maxPauseUs uint64) {
	if gcCount == 0 {
		return 0, 0
	}

	lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		pause := p.memStats.PauseNs[i%256] / 1000
		if pause > maxPauseUs {
			maxPauseUs = pause
		}
	}
	return lastPauseUs, maxPauseUs
}
