// Package counter animates a number in a display element, counting from a
// start value to an end value over a fixed duration.
//
// A Counter is driven by host collaborators: a frame scheduler, a monotonic
// clock, an optional document for locator lookup and an optional visibility
// observer for lazy starts. All methods must be called from the goroutine
// that steps the frame scheduler.
//
//	loop := animation.NewFrameLoop(nil)
//	doc := platform.NewMemoryDocument()
//	doc.Create("visitors")
//
//	cfg := counter.DefaultConfig()
//	cfg.End = counter.Float(1500)
//	cfg.Easing = "easeOutExpo"
//	c, err := counter.New(counter.Locator("#visitors"), cfg, counter.LoopHost(loop, doc, nil))
//
// Runs move through the states of [animation.Status]. Every scheduled frame
// carries the generation of the run that requested it, so a frame left over
// from a stopped or superseded run does nothing when it fires.
package counter

import (
	"time"

	"github.com/go-drift/countup/pkg/animation"
	"github.com/go-drift/countup/pkg/errors"
	"github.com/go-drift/countup/pkg/platform"
)

const opNew = "counter.New"

// Host bundles the collaborators a counter depends on.
type Host struct {
	// Document resolves Locator targets. Optional for Element targets.
	Document platform.Document
	// Scheduler runs frame callbacks. Required.
	Scheduler animation.FrameScheduler
	// Clock measures paused time. Required.
	Clock animation.TimeSource
	// Observers creates visibility watchers. Required for lazy counters.
	Observers platform.ObserverFactory
}

// LoopHost returns a Host using loop as both scheduler and clock.
func LoopHost(loop *animation.FrameLoop, doc platform.Document, observers platform.ObserverFactory) Host {
	return Host{
		Document:  doc,
		Scheduler: loop,
		Clock:     loop,
		Observers: observers,
	}
}

// Counter animates a numeric value into a display element.
type Counter struct {
	element   platform.Element
	start     float64
	end       float64
	duration  float64 // milliseconds
	step      float64
	curve     animation.Curve
	tween     *animation.Tween[float64]
	formatter Formatter
	lazy      bool
	playOnce  bool
	autostart bool

	host     Host
	observer platform.IntersectionObserver
	events   *Bus

	status     animation.Status
	generation uint64

	// elapsed accumulates active run time across pauses, in milliseconds.
	elapsed float64
	// segmentStart is the raw timestamp of the current segment's first
	// frame; origin is that timestamp minus the elapsed time carried in.
	segmentStart float64
	origin       float64
	started      bool

	value    float64
	progress float64
}

// New validates cfg, binds the counter to target and, depending on the
// flags, starts it, waits for visibility, or leaves it idle.
func New(target Target, cfg Config, host Host) (*Counter, error) {
	if target == nil {
		return nil, errors.E(opNew, errors.KindElement, errors.ErrElementRequired, "")
	}
	el, err := target.resolve(host.Document)
	if err != nil {
		return nil, err
	}
	if cfg.Duration <= 0 {
		return nil, errors.E(opNew, errors.KindConfig, errors.ErrInvalidDuration, cfg.Duration.String())
	}
	if cfg.End == nil {
		return nil, errors.E(opNew, errors.KindConfig, errors.ErrEndRequired, "")
	}

	easing := cfg.Easing
	if easing == "" {
		easing = animation.DefaultEasing
	}
	curve, ok := animation.LookupEasing(easing)
	if !ok {
		return nil, errors.E(opNew, errors.KindConfig, errors.ErrInvalidEasing, easing)
	}
	if cfg.Curve != nil {
		curve = cfg.Curve
	}

	if host.Scheduler == nil {
		return nil, errors.E(opNew, errors.KindHost, errors.ErrSchedulerRequired, "")
	}
	if host.Clock == nil {
		return nil, errors.E(opNew, errors.KindHost, errors.ErrClockRequired, "")
	}
	if cfg.Lazy && host.Observers == nil {
		return nil, errors.E(opNew, errors.KindHost, errors.ErrObserverRequired, "")
	}

	formatter := cfg.Formatter
	if formatter == nil {
		formatter = PlainFormatter
	}

	c := &Counter{
		element:   el,
		start:     cfg.Start,
		end:       *cfg.End,
		duration:  animation.Millis(cfg.Duration),
		step:      cfg.Step,
		curve:     curve,
		tween:     animation.ClampedTween(cfg.Start, *cfg.End),
		formatter: formatter,
		lazy:      cfg.Lazy,
		playOnce:  cfg.PlayOnce,
		autostart: cfg.Autostart,
		host:      host,
		events:    NewBus(),
		status:    animation.StatusIdle,
		value:     cfg.Start,
	}

	if c.lazy {
		c.observeVisibility()
	} else if c.autostart {
		c.Animate()
	}
	return c, nil
}

// Animate starts a run, or resumes the paused one from its elapsed time.
// It does nothing while a run is in progress or after Destroy.
func (c *Counter) Animate() {
	if !c.status.CanStart() {
		return
	}
	c.generation++
	c.status = animation.StatusRunning
	c.started = false
	c.requestFrame(c.generation)
}

func (c *Counter) requestFrame(gen uint64) {
	c.host.Scheduler.RequestFrame(func(ts float64) {
		c.frame(gen, ts)
	})
}

// live reports whether frames of run gen should still do work.
func (c *Counter) live(gen uint64) bool {
	return gen == c.generation && c.status == animation.StatusRunning
}

func (c *Counter) frame(gen uint64, ts float64) {
	if !c.live(gen) {
		return
	}

	if !c.started {
		c.started = true
		c.origin = ts - c.elapsed
		c.segmentStart = ts
		c.events.Emit(EventStart, Event{})
		if !c.live(gen) {
			return
		}
	}

	progress := animation.Progress(ts-c.origin, c.duration)
	current := c.tween.Evaluate(c.curve(progress))
	if c.step != 0 {
		current = animation.Quantize(current, c.step)
	}
	c.value = current
	c.progress = progress

	c.element.SetTextContent(c.formatter(current, progress))
	c.events.Emit(EventUpdate, Event{Value: current, Progress: progress})
	if !c.live(gen) {
		return
	}

	if progress < 1 {
		c.requestFrame(gen)
		return
	}

	c.status = animation.StatusCompleted
	c.elapsed = 0
	c.started = false
	c.events.Emit(EventComplete, Event{Value: current, Progress: progress})
}

func (c *Counter) observeVisibility() {
	c.observer = c.host.Observers(c.handleIntersection)
	c.observer.Observe(c.element)
}

func (c *Counter) handleIntersection(entries []platform.IntersectionEntry) {
	for _, entry := range entries {
		if !entry.IsIntersecting {
			continue
		}
		if c.playOnce && c.observer != nil {
			c.observer.Unobserve(c.element)
		}
		c.Animate()
	}
}

// Stop pauses a running counter, banking the active time of the current
// segment so Resume continues where it left off. It does nothing unless the
// counter is running.
func (c *Counter) Stop() {
	if c.status != animation.StatusRunning {
		return
	}
	c.status = animation.StatusPaused
	if c.started {
		c.elapsed += c.host.Clock.NowMillis() - c.segmentStart
		c.started = false
	}
}

// Resume restarts a paused counter from its elapsed time. It does nothing
// unless the counter is paused.
func (c *Counter) Resume() {
	if c.status != animation.StatusPaused {
		return
	}
	c.Animate()
}

// Reset zeroes the elapsed time and shows the start value, unformatted.
// A paused or completed counter becomes idle. A running counter keeps its
// frame chain and begins a fresh run on the next frame. Reset emits nothing.
func (c *Counter) Reset() {
	c.elapsed = 0
	c.started = false
	c.segmentStart = 0
	c.origin = 0
	c.value = c.start
	c.progress = 0
	if c.status == animation.StatusPaused || c.status == animation.StatusCompleted {
		c.status = animation.StatusIdle
	}
	c.element.SetTextContent(FormatNumber(c.start))
}

// Destroy stops the counter, disconnects its visibility watcher and drops
// every event handler. The counter cannot be restarted.
func (c *Counter) Destroy() {
	if c.status == animation.StatusDestroyed {
		return
	}
	c.Stop()
	if c.observer != nil {
		c.observer.Disconnect()
		c.observer = nil
	}
	c.events.Clear()
	c.generation++
	c.status = animation.StatusDestroyed
}

// On registers sub for name.
func (c *Counter) On(name EventName, sub *Subscription) {
	c.events.On(name, sub)
}

// OnFunc registers fn for name and returns its subscription.
func (c *Counter) OnFunc(name EventName, fn Handler) *Subscription {
	return c.events.OnFunc(name, fn)
}

// Off removes sub from name.
func (c *Counter) Off(name EventName, sub *Subscription) {
	c.events.Off(name, sub)
}

// Emit delivers ev to the handlers registered for name.
func (c *Counter) Emit(name EventName, ev Event) {
	c.events.Emit(name, ev)
}

// State returns the counter's run state.
func (c *Counter) State() animation.Status {
	return c.status
}

// Elapsed returns the active run time banked by Stop.
func (c *Counter) Elapsed() time.Duration {
	return animation.FromMillis(c.elapsed)
}

// Value returns the last raw value written, before formatting.
func (c *Counter) Value() float64 {
	return c.value
}

// Progress returns the un-eased progress of the last frame.
func (c *Counter) Progress() float64 {
	return c.progress
}

// Element returns the bound display element.
func (c *Counter) Element() platform.Element {
	return c.element
}

// Bounds returns the start and end values.
func (c *Counter) Bounds() (start, end float64) {
	return c.start, c.end
}

// Reverse reports whether the counter counts down.
func (c *Counter) Reverse() bool {
	return c.start > c.end
}
