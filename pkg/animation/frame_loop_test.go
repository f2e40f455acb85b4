package animation

import (
	"context"
	"sync"
	"testing"
	"time"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestFrameLoopTimestamps(t *testing.T) {
	clk := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	loop := NewFrameLoop(clk)

	var got []float64
	record := func(ts float64) { got = append(got, ts) }

	loop.RequestFrame(record)
	loop.Step()
	clk.Advance(16 * time.Millisecond)
	loop.RequestFrame(record)
	loop.RequestFrame(record)
	loop.Step()

	want := []float64{0, 16, 16}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("timestamp[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if loop.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", loop.Frames())
	}
}

func TestFrameLoopDefersReschedule(t *testing.T) {
	loop := NewFrameLoop(&stepClock{})

	calls := 0
	var cb FrameCallback
	cb = func(float64) {
		calls++
		loop.RequestFrame(cb)
	}
	loop.RequestFrame(cb)

	if n := loop.Step(); n != 1 {
		t.Errorf("Step() = %d, want 1", n)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if loop.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", loop.Pending())
	}
}

func TestFrameLoopEmptyStep(t *testing.T) {
	loop := NewFrameLoop(&stepClock{})
	loop.RequestFrame(nil)
	if n := loop.Step(); n != 0 {
		t.Errorf("Step() on empty loop = %d, want 0", n)
	}
	if loop.Frames() != 0 {
		t.Errorf("empty steps should not count as frames")
	}
}

func TestFrameLoopRunStopsOnCancel(t *testing.T) {
	loop := NewFrameLoop(nil)
	ctx, cancel := context.WithCancel(context.Background())

	fired := make(chan struct{})
	loop.RequestFrame(func(float64) {
		close(fired)
		cancel()
	})

	err := loop.Run(ctx, time.Millisecond)
	if err != context.Canceled {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
	select {
	case <-fired:
	default:
		t.Error("expected queued frame to fire before cancel")
	}
}

func TestSetClockRestore(t *testing.T) {
	fake := &stepClock{now: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := SetClock(fake)
	defer SetClock(prev)

	if !Now().Equal(fake.now) {
		t.Errorf("Now() = %v, want %v", Now(), fake.now)
	}
	loop := NewFrameLoop(nil)
	fake.Advance(250 * time.Millisecond)
	if got := loop.NowMillis(); got != 250 {
		t.Errorf("NowMillis() = %v, want 250", got)
	}
}
