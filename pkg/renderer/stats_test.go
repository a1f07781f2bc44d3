package renderer

import (
	"testing"
	"time"
)

func TestRenderStats_Derived(t *testing.T) {
	stats := RenderStats{
		Width:        4,
		Height:       3,
		TotalSamples: 24,
		Rays:         60,
		Elapsed:      2 * time.Second,
	}

	if stats.TotalPixels() != 12 {
		t.Errorf("Expected 12 pixels, got %d", stats.TotalPixels())
	}
	if stats.RaysPerSecond() != 30 {
		t.Errorf("Expected 30 rays/s, got %f", stats.RaysPerSecond())
	}
	if stats.AverageBounces() != 2.5 {
		t.Errorf("Expected 2.5 bounces, got %f", stats.AverageBounces())
	}
}

func TestRenderStats_ZeroValues(t *testing.T) {
	var stats RenderStats
	if stats.RaysPerSecond() != 0 {
		t.Errorf("Expected 0 rays/s for zero elapsed, got %f", stats.RaysPerSecond())
	}
	if stats.AverageBounces() != 0 {
		t.Errorf("Expected 0 bounces for zero samples, got %f", stats.AverageBounces())
	}
}
