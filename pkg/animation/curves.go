package animation

import (
	"math"
	"sort"
)

// Curve maps normalized progress in [0, 1] to an interpolation multiplier.
// The result may leave [0, 1] for curves that overshoot.
type Curve func(float64) float64

// Easing curves transform linear animation progress into natural-feeling motion.
//
// The named curves are the classic Penner set used by counters. Look them up
// by name with [LookupEasing]. Use [CubicBezier] to create custom curves
// matching CSS cubic-bezier().
//
// See ExampleCubicBezier for custom curve usage.

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 {
	return t
}

// EaseInQuad accelerates from zero velocity.
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad decelerates to zero velocity.
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutQuad accelerates until halfway, then decelerates.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseInCubic accelerates from zero velocity.
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic decelerates to zero velocity.
func EaseOutCubic(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

// EaseInOutCubic accelerates until halfway, then decelerates.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return (t-1)*(2*t-2)*(2*t-2) + 1
}

// EaseInExpo accelerates exponentially. Exactly 0 at t = 0.
func EaseInExpo(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

// EaseOutExpo decelerates exponentially. Exactly 1 at t = 1.
func EaseOutExpo(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// DefaultEasing is the easing name used when none is configured.
const DefaultEasing = "linear"

var easings = map[string]Curve{
	"linear":         LinearCurve,
	"easeInQuad":     EaseInQuad,
	"easeOutQuad":    EaseOutQuad,
	"easeInOutQuad":  EaseInOutQuad,
	"easeInCubic":    EaseInCubic,
	"easeOutCubic":   EaseOutCubic,
	"easeInOutCubic": EaseInOutCubic,
	"easeInExpo":     EaseInExpo,
	"easeOutExpo":    EaseOutExpo,
}

// LookupEasing returns the named curve, or false if the name is unknown.
// Names are case sensitive.
func LookupEasing(name string) (Curve, bool) {
	c, ok := easings[name]
	return c, ok
}

// EasingNames returns the recognized easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CSS timing-function presets, for use as a custom counter curve.
var (
	// Ease matches CSS ease.
	Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)
	// EaseIn matches CSS ease-in.
	EaseIn = CubicBezier(0.42, 0.0, 1.0, 1.0)
	// EaseOut matches CSS ease-out.
	EaseOut = CubicBezier(0.0, 0.0, 0.58, 1.0)
	// EaseInOut matches CSS ease-in-out.
	EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)
)

// CubicBezier returns a cubic-bezier easing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the curve.
// The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Fallback to bisection to guarantee a stable solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
