package profiler

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// FrameStats is the GPU work recorded in one frame.
type FrameStats struct {
	// Passes is the number of raster passes executed.
	Passes int
	// Draws is the number of procedural draws issued.
	Draws int
	// Blits is the number of texture blits issued.
	Blits int
}

// Profiler tracks frame rate, render work and memory statistics for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	logger         *zap.Logger
	now            func() time.Time
	frameCount     int
	work           FrameStats
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler that reports once per second.
//
// Parameters:
//   - logger: the logger stats are written to, nil for a no-op logger
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *zap.Logger) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{
		logger:         logger.Named("profiler"),
		now:            time.Now,
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// Tick should be called once per frame with that frame's render work.
// Logs frame rate, average work per frame, heap usage, allocation rate and GC pauses
// when the update interval has elapsed.
//
// Parameters:
//   - stats: the work recorded this frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(stats FrameStats) bool {
	p.frameCount++
	p.work.Passes += stats.Passes
	p.work.Draws += stats.Draws
	p.work.Blits += stats.Blits

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	perFrame := func(total int) float64 {
		return float64(total) / float64(p.frameCount)
	}

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}

	p.logger.Info("frame stats",
		zap.Float64("fps", fps),
		zap.Float64("passes_per_frame", perFrame(p.work.Passes)),
		zap.Float64("draws_per_frame", perFrame(p.work.Draws)),
		zap.Float64("blits_per_frame", perFrame(p.work.Blits)),
		zap.Float64("heap_mb", allocMB),
		zap.Float64("alloc_rate_mb_s", allocRateMB),
		zap.Uint32("gc_count", gcCount),
		zap.Uint64("gc_max_pause_us", maxPauseUs),
	)

	p.frameCount = 0
	p.work = FrameStats{}
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
