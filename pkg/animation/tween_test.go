package animation

import (
	"math"
	"testing"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		value, step, want float64
	}{
		{12.4, 1, 12},
		{12.5, 1, 13},
		{-2.5, 1, -2},
		{-2.6, 1, -3},
		{47, 5, 45},
		{48, 5, 50},
		{0.26, 0.1, 0.3},
		{12.345, 0, 12.345},
	}
	for _, tt := range tests {
		if got := Quantize(tt.value, tt.step); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Quantize(%v, %v) = %v, want %v", tt.value, tt.step, got, tt.want)
		}
	}
}

func TestClampedTween(t *testing.T) {
	forward := ClampedTween(0, 100)
	if got := forward.Evaluate(1.5); got != 100 {
		t.Errorf("forward overshoot = %v, want 100", got)
	}
	if got := forward.Evaluate(0.5); got != 50 {
		t.Errorf("forward midpoint = %v, want 50", got)
	}

	reverse := ClampedTween(100, 0)
	if got := reverse.Evaluate(1.5); got != 0 {
		t.Errorf("reverse overshoot = %v, want 0", got)
	}
	if got := reverse.Evaluate(0.25); got != 75 {
		t.Errorf("reverse quarter = %v, want 75", got)
	}
}

func TestTweenWithoutLerp(t *testing.T) {
	tw := &Tween[string]{Begin: "a", End: "b"}
	if got := tw.Evaluate(0.1); got != "b" {
		t.Errorf("Evaluate without Lerp = %q, want End", got)
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		elapsed, duration, want float64
	}{
		{0, 1000, 0},
		{500, 1000, 0.5},
		{1500, 1000, 1},
		{-10, 1000, 0},
		{10, 0, 1},
	}
	for _, tt := range tests {
		if got := Progress(tt.elapsed, tt.duration); got != tt.want {
			t.Errorf("Progress(%v, %v) = %v, want %v", tt.elapsed, tt.duration, got, tt.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusIdle, "idle"},
		{StatusRunning, "running"},
		{StatusPaused, "paused"},
		{StatusCompleted, "completed"},
		{StatusDestroyed, "destroyed"},
		{Status(42), "Status(42)"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
