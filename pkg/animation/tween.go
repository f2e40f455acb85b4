package animation

import "math"

// Tween interpolates between Begin and End values based on animation progress.
//
// Use [TweenFloat64] for numbers, or create custom tweens with a Lerp
// function. See ExampleTween and ExampleTween_customType for usage patterns.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp interpolates between Begin and End at progress t.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{
		Begin: begin,
		End:   end,
		Lerp:  LerpFloat64,
	}
}

// ClampedTween is a float tween that never passes its End value, whichever
// direction it runs in. Overshooting curves stop at End.
func ClampedTween(begin, end float64) *Tween[float64] {
	return &Tween[float64]{
		Begin: begin,
		End:   end,
		Lerp: func(a, b, t float64) float64 {
			v := LerpFloat64(a, b, t)
			if a > b {
				return math.Max(v, b)
			}
			return math.Min(v, b)
		},
	}
}

// Quantize rounds value to the nearest multiple of step. Halves round toward
// positive infinity. A zero step returns value unchanged.
func Quantize(value, step float64) float64 {
	if step == 0 {
		return value
	}
	return math.Floor(value/step+0.5) * step
}

// Progress returns elapsed/duration clamped to [0, 1]. A non-positive
// duration is treated as already complete.
func Progress(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return clampUnit(elapsed / duration)
}
