package animation

import "time"

// Clock provides wall time for frame loops. The default implementation uses
// system time. Tests can inject a fake clock via SetClock, or pass one
// directly to NewFrameLoop, to control animation timing deterministically.
type Clock interface {
	Now() time.Time
}

// TimeSource reports a monotonic timestamp in milliseconds, measured from an
// arbitrary origin. It is the equivalent of a browser's performance.now().
type TimeSource interface {
	NowMillis() float64
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// clock is the package-level time source, replaceable for testing.
var clock Clock = realClock{}

// SetClock replaces the default animation clock. Returns the previous clock
// so callers can restore it during cleanup. Pass nil to restore system time.
func SetClock(c Clock) Clock {
	prev := clock
	if c == nil {
		c = realClock{}
	}
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }

// Millis converts a duration to fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FromMillis converts fractional milliseconds to a duration.
func FromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
