// Package animation provides the timing primitives behind countup counters.
//
// # Core Components
//
//   - [FrameLoop]: the host frame scheduler. Callbacks are queued with
//     RequestFrame and fire once on the next Step, receiving a monotonic
//     timestamp in milliseconds.
//
//   - [Curve]: easing functions that transform linear progress into
//     natural-feeling motion. Named curves are resolved with [LookupEasing].
//
//   - [Tween]: interpolates between begin and end values of any type.
//
//   - [Status]: the run state of a single timeline.
//
// # Basic Usage
//
// Drive a loop from your host's frame source, or let Run do it on a ticker:
//
//	loop := animation.NewFrameLoop(nil)
//	loop.RequestFrame(func(ts float64) {
//	    fmt.Println("frame at", ts)
//	})
//	loop.Step()
package animation

import (
	"context"
	"sync"
	"time"
)

// FrameCallback is invoked by a FrameScheduler with the frame timestamp in
// milliseconds since the scheduler's origin.
type FrameCallback func(timestamp float64)

// FrameScheduler accepts callbacks to run once, asynchronously, at the next
// frame. It is the equivalent of a browser's requestAnimationFrame.
type FrameScheduler interface {
	RequestFrame(cb FrameCallback)
}

// FrameLoop is a FrameScheduler and TimeSource driven by explicit steps.
//
// Callbacks requested during a Step are deferred to the following Step, so a
// callback that reschedules itself runs exactly once per frame.
type FrameLoop struct {
	clock  Clock
	origin time.Time

	mu      sync.Mutex
	pending []FrameCallback
	frames  uint64
}

// NewFrameLoop creates a loop whose timestamps are measured from the
// clock's current time. A nil clock uses the package clock.
func NewFrameLoop(c Clock) *FrameLoop {
	if c == nil {
		c = clock
	}
	return &FrameLoop{
		clock:  c,
		origin: c.Now(),
	}
}

// RequestFrame queues cb for the next Step.
func (l *FrameLoop) RequestFrame(cb FrameCallback) {
	if cb == nil {
		return
	}
	l.mu.Lock()
	l.pending = append(l.pending, cb)
	l.mu.Unlock()
}

// NowMillis returns milliseconds elapsed since the loop was created.
func (l *FrameLoop) NowMillis() float64 {
	return Millis(l.clock.Now().Sub(l.origin))
}

// Step runs every callback queued before the call, all with the same
// timestamp. Returns the number of callbacks invoked.
func (l *FrameLoop) Step() int {
	l.mu.Lock()
	if len(l.pending) == 0 {
		l.mu.Unlock()
		return 0
	}
	// Swap the queue so callbacks can reschedule without holding the lock.
	callbacks := l.pending
	l.pending = nil
	l.frames++
	l.mu.Unlock()

	ts := l.NowMillis()
	for _, cb := range callbacks {
		cb(ts)
	}
	return len(callbacks)
}

// Pending returns the number of callbacks waiting for the next Step.
func (l *FrameLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Frames returns how many non-empty steps have run.
func (l *FrameLoop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Run steps the loop every interval until ctx is done. Callbacks execute on
// the calling goroutine.
func (l *FrameLoop) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Step()
		}
	}
}
