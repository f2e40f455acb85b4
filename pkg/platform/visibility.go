package platform

import "sync"

// IntersectionEntry reports a visibility change for one observed element.
type IntersectionEntry struct {
	Target         Element
	IsIntersecting bool
}

// IntersectionObserver watches elements and delivers batches of entries to
// the callback it was created with.
type IntersectionObserver interface {
	Observe(el Element)
	Unobserve(el Element)
	Disconnect()
}

// ObserverFactory creates an observer bound to callback.
type ObserverFactory func(callback func([]IntersectionEntry)) IntersectionObserver

// VisibilityTracker is an in-memory visibility host. Callers flip element
// visibility with SetVisible; observers watching that element receive an
// entry when its state changes.
//
// Callbacks run synchronously on the goroutine calling SetVisible.
type VisibilityTracker struct {
	mu        sync.Mutex
	visible   map[Element]bool
	observers []*trackedObserver
}

// NewVisibilityTracker returns a tracker where every element starts hidden.
func NewVisibilityTracker() *VisibilityTracker {
	return &VisibilityTracker{visible: make(map[Element]bool)}
}

// Factory returns an ObserverFactory creating observers on this tracker.
func (t *VisibilityTracker) Factory() ObserverFactory {
	return t.NewObserver
}

// NewObserver creates an observer bound to callback.
func (t *VisibilityTracker) NewObserver(callback func([]IntersectionEntry)) IntersectionObserver {
	o := &trackedObserver{
		tracker:  t,
		callback: callback,
		targets:  make(map[Element]struct{}),
	}
	t.mu.Lock()
	t.observers = append(t.observers, o)
	t.mu.Unlock()
	return o
}

// SetVisible records el's visibility. If it changed, each observer watching
// el receives a single-entry batch.
func (t *VisibilityTracker) SetVisible(el Element, visible bool) {
	t.SetVisibleAll(map[Element]bool{el: visible})
}

// SetVisibleAll applies several changes at once. Each observer receives at
// most one batch holding the entries for its own targets.
func (t *VisibilityTracker) SetVisibleAll(changes map[Element]bool) {
	t.mu.Lock()
	changed := make(map[Element]bool, len(changes))
	for el, v := range changes {
		if t.visible[el] != v {
			changed[el] = v
		}
		t.visible[el] = v
	}
	observers := append([]*trackedObserver(nil), t.observers...)
	t.mu.Unlock()

	for _, o := range observers {
		var batch []IntersectionEntry
		for el, v := range changed {
			if o.watching(el) {
				batch = append(batch, IntersectionEntry{Target: el, IsIntersecting: v})
			}
		}
		if len(batch) > 0 {
			o.callback(batch)
		}
	}
}

// Visible reports the recorded visibility of el.
func (t *VisibilityTracker) Visible(el Element) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible[el]
}

// Watchers returns how many live observers are watching el.
func (t *VisibilityTracker) Watchers(el Element) int {
	t.mu.Lock()
	observers := append([]*trackedObserver(nil), t.observers...)
	t.mu.Unlock()

	n := 0
	for _, o := range observers {
		if o.watching(el) {
			n++
		}
	}
	return n
}

func (t *VisibilityTracker) remove(o *trackedObserver) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, cur := range t.observers {
		if cur == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

type trackedObserver struct {
	tracker  *VisibilityTracker
	callback func([]IntersectionEntry)

	mu      sync.Mutex
	targets map[Element]struct{}
}

// Observe starts watching el. An element that is already visible is
// reported immediately, as browsers do for a freshly observed target.
func (o *trackedObserver) Observe(el Element) {
	o.mu.Lock()
	o.targets[el] = struct{}{}
	o.mu.Unlock()

	if o.tracker.Visible(el) {
		o.callback([]IntersectionEntry{{Target: el, IsIntersecting: true}})
	}
}

func (o *trackedObserver) Unobserve(el Element) {
	o.mu.Lock()
	delete(o.targets, el)
	o.mu.Unlock()
}

func (o *trackedObserver) Disconnect() {
	o.mu.Lock()
	o.targets = make(map[Element]struct{})
	o.mu.Unlock()
	o.tracker.remove(o)
}

func (o *trackedObserver) watching(el Element) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.targets[el]
	return ok
}
