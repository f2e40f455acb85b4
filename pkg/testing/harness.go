package testing

import (
	"fmt"
	"time"

	"github.com/go-drift/countup/pkg/animation"
	"github.com/go-drift/countup/pkg/counter"
	"github.com/go-drift/countup/pkg/platform"
)

// Harness bundles a fake clock, a frame loop on that clock, an in-memory
// document and a visibility tracker.
type Harness struct {
	Clock      *FakeClock
	Loop       *animation.FrameLoop
	Document   *platform.MemoryDocument
	Visibility *platform.VisibilityTracker
}

// NewHarness returns a harness whose clock reads 0ms.
func NewHarness() *Harness {
	clk := NewFakeClock()
	return &Harness{
		Clock:      clk,
		Loop:       animation.NewFrameLoop(clk),
		Document:   platform.NewMemoryDocument(),
		Visibility: platform.NewVisibilityTracker(),
	}
}

// Host returns a counter host backed by the harness.
func (h *Harness) Host() counter.Host {
	return counter.LoopHost(h.Loop, h.Document, h.Visibility.Factory())
}

// Pump runs one frame at the current time and returns the callbacks run.
func (h *Harness) Pump() int {
	return h.Loop.Step()
}

// AdvanceAndPump moves the clock by d, then runs one frame.
func (h *Harness) AdvanceAndPump(d time.Duration) int {
	h.Clock.Advance(d)
	return h.Loop.Step()
}

// PumpUntilIdle steps every interval until no frames are pending. Returns an
// error if frames are still pending after max has elapsed.
func (h *Harness) PumpUntilIdle(interval, max time.Duration) error {
	var waited time.Duration
	for h.Loop.Pending() > 0 {
		if waited > max {
			return fmt.Errorf("frames still pending after %v", max)
		}
		h.Loop.Step()
		h.Clock.Advance(interval)
		waited += interval
	}
	return nil
}

// NowMillis returns the harness time in the same units as frame timestamps.
func (h *Harness) NowMillis() float64 {
	return h.Loop.NowMillis()
}

// Recorder captures counter events in order.
type Recorder struct {
	Events []counter.Event
}

// Record subscribes a new Recorder to every counter event.
func Record(c *counter.Counter) *Recorder {
	r := &Recorder{}
	sub := counter.NewSubscription(func(ev counter.Event) {
		r.Events = append(r.Events, ev)
	})
	c.On(counter.EventStart, sub)
	c.On(counter.EventUpdate, sub)
	c.On(counter.EventComplete, sub)
	return r
}

// Names returns the recorded event names.
func (r *Recorder) Names() []counter.EventName {
	names := make([]counter.EventName, len(r.Events))
	for i, ev := range r.Events {
		names[i] = ev.Name
	}
	return names
}

// Values returns the values of recorded update events.
func (r *Recorder) Values() []float64 {
	var values []float64
	for _, ev := range r.Events {
		if ev.Name == counter.EventUpdate {
			values = append(values, ev.Value)
		}
	}
	return values
}

// Count returns how many events named name were recorded.
func (r *Recorder) Count(name counter.EventName) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
