package counter

import (
	"time"

	"github.com/go-drift/countup/pkg/animation"
)

// DefaultDuration is the run length used by DefaultConfig.
const DefaultDuration = 2000 * time.Millisecond

// Config describes a counter. Start from DefaultConfig and override fields;
// a zero Config is rejected because its Duration is zero.
type Config struct {
	// Start is the value shown when a run begins.
	Start float64
	// End is the value a run settles on. Required.
	End *float64
	// Duration is the length of one full run. Must be positive.
	Duration time.Duration
	// Step quantizes displayed values to multiples of Step. Zero disables.
	Step float64
	// Formatter renders values for display. Nil uses PlainFormatter.
	Formatter Formatter
	// Lazy defers the first run until the element becomes visible.
	Lazy bool
	// PlayOnce stops watching visibility after the first visible run.
	PlayOnce bool
	// Easing names the curve applied to progress. Empty means "linear".
	Easing string
	// Curve, when set, replaces the named Easing curve.
	Curve animation.Curve
	// Autostart runs immediately on construction when Lazy is false.
	Autostart bool
}

// DefaultConfig returns the default configuration. End still needs a value.
func DefaultConfig() Config {
	return Config{
		Start:     0,
		Duration:  DefaultDuration,
		Step:      1,
		Easing:    animation.DefaultEasing,
		Autostart: true,
	}
}

// Float returns a pointer to v, for Config.End.
func Float(v float64) *float64 {
	return &v
}
