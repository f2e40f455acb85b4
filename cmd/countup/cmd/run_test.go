package cmd

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/go-drift/countup/cmd/countup/internal/config"
	"github.com/go-drift/countup/pkg/animation"
	"github.com/go-drift/countup/pkg/counter"
	countuptest "github.com/go-drift/countup/pkg/testing"
)

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want action
	}{
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), actionToggle},
		{"reset", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), actionReset},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), actionScrollUp},
		{"k", tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModNone), actionScrollUp},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), actionScrollDown},
		{"j", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), actionScrollDown},
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), actionQuit},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), actionQuit},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), actionQuit},
		{"other", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), actionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyAction(tt.ev); got != tt.want {
				t.Errorf("keyAction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func newTestSession(t *testing.T) (*session, *countuptest.FakeClock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(screen.Fini)
	// Header, two rows, status line.
	screen.SetSize(40, 4)

	off := false
	cfg := resolve(t,
		config.CounterSpec{ID: "a", End: counter.Float(100), Duration: "1s"},
		config.CounterSpec{ID: "b", End: counter.Float(10), Duration: "1s", Autostart: &off},
		config.CounterSpec{ID: "c", End: counter.Float(5), Duration: "1s", Lazy: true},
	)

	clock := countuptest.NewFakeClock()
	s, err := newSession(screen, cfg, clock, zerolog.Nop())
	if err != nil {
		t.Fatalf("newSession() error = %v", err)
	}
	t.Cleanup(s.close)
	return s, clock
}

func states(s *session) []animation.Status {
	out := make([]animation.Status, len(s.counters))
	for i, c := range s.counters {
		out[i] = c.State()
	}
	return out
}

func TestSessionDrivesBoard(t *testing.T) {
	s, clock := newTestSession(t)

	s.tick()
	clock.Advance(500 * time.Millisecond)
	s.tick()

	if got := s.board.Line(1); got != "a: 50" {
		t.Errorf("Line(1) = %q, want %q", got, "a: 50")
	}
	want := []animation.Status{animation.StatusRunning, animation.StatusIdle, animation.StatusIdle}
	for i, st := range states(s) {
		if st != want[i] {
			t.Errorf("counter %d state = %v, want %v", i, st, want[i])
		}
	}

	// Scrolling brings the lazy row into view.
	if !s.handleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)) {
		t.Fatal("scroll ended the session")
	}
	if st := s.counters[2].State(); st != animation.StatusRunning {
		t.Errorf("lazy counter state = %v, want running", st)
	}

	s.apply(actionToggle)
	want = []animation.Status{animation.StatusPaused, animation.StatusRunning, animation.StatusPaused}
	for i, st := range states(s) {
		if st != want[i] {
			t.Errorf("after toggle counter %d state = %v, want %v", i, st, want[i])
		}
	}

	s.apply(actionToggle)
	if st := s.counters[0].State(); st != animation.StatusRunning {
		t.Errorf("after second toggle state = %v, want running", st)
	}

	if s.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q should end the session")
	}
}

func TestSessionReset(t *testing.T) {
	s, clock := newTestSession(t)

	s.tick()
	clock.Advance(time.Second)
	s.tick()
	if st := s.counters[0].State(); st != animation.StatusCompleted {
		t.Fatalf("state = %v, want completed", st)
	}

	s.apply(actionReset)
	s.board.Draw()
	if got := s.board.Line(1); got != "a: 0" {
		t.Errorf("Line(1) = %q, want %q", got, "a: 0")
	}
	if st := s.counters[0].State(); st != animation.StatusIdle {
		t.Errorf("state = %v, want idle", st)
	}
}

func TestSessionResize(t *testing.T) {
	s, _ := newTestSession(t)
	screen := s.screen.(tcell.SimulationScreen)

	screen.SetSize(40, 6)
	s.handleEvent(tcell.NewEventResize(40, 6))
	if st := s.counters[2].State(); st != animation.StatusRunning {
		t.Errorf("lazy counter state = %v, want running after growing the screen", st)
	}
}
