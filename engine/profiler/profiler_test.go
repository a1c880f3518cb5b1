package profiler

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTickReportsAveragesOncePerInterval(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p := NewProfiler(zap.New(core))

	start := time.Unix(100, 0)
	clock := start
	p.now = func() time.Time { return clock }
	p.lastTime = start

	clock = start.Add(400 * time.Millisecond)
	if p.Tick(FrameStats{Passes: 3, Draws: 2, Blits: 1}) {
		t.Fatal("reported before the interval elapsed")
	}
	clock = start.Add(time.Second)
	if !p.Tick(FrameStats{Passes: 5, Draws: 4, Blits: 1}) {
		t.Fatal("expected a report after one second")
	}

	entries := logs.FilterMessage("frame stats").All()
	if len(entries) != 1 {
		t.Fatalf("got %d reports, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	tests := []struct {
		key  string
		want float64
	}{
		{"fps", 2},
		{"passes_per_frame", 4},
		{"draws_per_frame", 3},
		{"blits_per_frame", 1},
	}
	for _, tt := range tests {
		if got := fields[tt.key]; got != tt.want {
			t.Errorf("%s = %v, want %v", tt.key, got, tt.want)
		}
	}
	if entries[0].LoggerName != "profiler" {
		t.Errorf("logger name = %q", entries[0].LoggerName)
	}

	clock = start.Add(1500 * time.Millisecond)
	if p.Tick(FrameStats{}) {
		t.Error("counters should reset after a report")
	}
}

func TestNilLogger(t *testing.T) {
	p := NewProfiler(nil)
	p.updateInterval = 0
	if !p.Tick(FrameStats{}) {
		t.Error("zero interval should report every tick")
	}
}
