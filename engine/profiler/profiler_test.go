package profiler

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	var lines []string
	p := NewProfiler(
		WithUpdateInterval(100*time.Millisecond),
		WithReporter(func(format string, args ...any) {
			lines = append(lines, fmt.Sprintf(format, args...))
		}),
	)

	reported := 0
	for range 9 {
		if p.Tick(10 * time.Millisecond) {
			reported++
		}
	}
	if reported != 0 {
		t.Fatalf("reported before interval elapsed")
	}
	if !p.Tick(10 * time.Millisecond) {
		t.Fatal("no report after 100ms of frames")
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "FPS: 100.00") {
		t.Fatalf("lines = %q", lines)
	}
	if p.Tick(10 * time.Millisecond) {
		t.Fatal("counters were not reset after reporting")
	}
}

func TestWorstFrame(t *testing.T) {
	var line string
	p := NewProfiler(
		WithUpdateInterval(50*time.Millisecond),
		WithReporter(func(format string, args ...any) { line = fmt.Sprintf(format, args...) }),
	)
	p.Tick(10 * time.Millisecond)
	p.Tick(30 * time.Millisecond)
	p.Tick(10 * time.Millisecond)
	if !strings.Contains(line, "Worst frame: 30ms") {
		t.Fatalf("line = %q", line)
	}
}

func TestDefaultInterval(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(-1))
	if p.updateInterval != time.Second {
		t.Fatalf("updateInterval = %v", p.updateInterval)
	}
}
