package profiler

import (
	"runtime"
	"time"

	"github.com/kataras/golog"
)

var logger = golog.Child("[profiler]")

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Frame time is accumulated from the deltas handed to Tick, so the reported rate follows the
// frame clock rather than wall time. Stats are logged at a configurable interval.
type Profiler struct {
	frameCount     int
	elapsed        time.Duration
	worstFrame     time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	// report receives each formatted stats line; defaults to logger.Infof.
	report func(format string, args ...any)
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		report:         logger.Infof,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick should be called once per frame with that frame's delta.
// Logs performance statistics when the accumulated frame time reaches the update interval.
// Statistics include: FPS, worst frame time, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - delta: the time elapsed since the previous frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(delta time.Duration) bool {
	p.frameCount++
	p.elapsed += delta
	p.worstFrame = max(p.worstFrame, delta)

	if p.elapsed < p.updateInterval {
		return false
	}

	seconds := p.elapsed.Seconds()
	fps := float64(p.frameCount) / seconds

	runtime.ReadMemStats(&p.memStats)
	// Alloc: Bytes of allocated heap objects (live memory)
	// Sys: Total bytes of memory obtained from the OS (actual process footprint)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / seconds

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
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
	}

	p.report("FPS: %.2f | Worst frame: %s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		fps, p.worstFrame, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.frameCount = 0
	p.elapsed = 0
	p.worstFrame = 0
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
