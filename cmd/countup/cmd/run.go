package cmd

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/go-drift/countup/cmd/countup/internal/config"
	"github.com/go-drift/countup/pkg/animation"
	"github.com/go-drift/countup/pkg/counter"
	"github.com/go-drift/countup/pkg/terminal"
)

const statusHelp = "space start/pause  r reset  ↑↓ scroll  q quit"

func newRunCommand(global *GlobalOptions) *cobra.Command {
	var opts counterFlags

	cmd := &cobra.Command{
		Use:   "run [flags]",
		Short: "Animate counters on an interactive terminal board",
		Long: `The "run" command draws every configured counter as a row and animates
it at the configured frame rate.

Keys:
  space       start, pause or resume every counter
  r           reset every counter to its start value
  up/k        scroll up
  down/j      scroll down (lazy counters start when they come into view)
  q, Esc      quit`,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(global, &opts, cmd.Flags())
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return errors.Wrap(err, "failed to open terminal")
			}
			if err := screen.Init(); err != nil {
				return errors.Wrap(err, "failed to initialize terminal")
			}
			defer screen.Fini()

			s, err := newSession(screen, cfg, nil, global.logger)
			if err != nil {
				return err
			}
			return s.run(cmd.Context())
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

type action int

const (
	actionNone action = iota
	actionToggle
	actionReset
	actionScrollUp
	actionScrollDown
	actionQuit
)

// keyAction maps a key press to a board action.
func keyAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyUp:
		return actionScrollUp
	case tcell.KeyDown:
		return actionScrollDown
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return actionToggle
		case 'r', 'R':
			return actionReset
		case 'k':
			return actionScrollUp
		case 'j':
			return actionScrollDown
		case 'q', 'Q':
			return actionQuit
		}
	}
	return actionNone
}

// session drives a board of counters from a single goroutine: frames, key
// presses and resizes are all handled by run's select loop.
type session struct {
	screen   tcell.Screen
	board    *terminal.Board
	loop     *animation.FrameLoop
	counters []*counter.Counter
	interval time.Duration
	logger   zerolog.Logger
}

// newSession lays out the rows for cfg and creates their counters. A nil
// clock uses the package clock.
func newSession(screen tcell.Screen, cfg *config.Config, clock animation.Clock, logger zerolog.Logger) (*session, error) {
	board := terminal.NewBoard(screen, cfg.Title)
	for _, spec := range cfg.Counters {
		if _, err := board.Add(spec.ID, spec.Title); err != nil {
			return nil, err
		}
	}
	board.SetStatus(statusHelp)

	loop := animation.NewFrameLoop(clock)
	counters, err := buildCounters(cfg.Counters, counter.LoopHost(loop, board, board.Observers()))
	if err != nil {
		return nil, err
	}
	for i, c := range counters {
		id := cfg.Counters[i].ID
		c.OnFunc(counter.EventComplete, func(ev counter.Event) {
			logger.Debug().Str("counter", id).Float64("value", ev.Value).Msg("complete")
		})
	}

	return &session{
		screen:   screen,
		board:    board,
		loop:     loop,
		counters: counters,
		interval: cfg.FrameInterval(),
		logger:   logger,
	}, nil
}

// apply performs a board action and reports whether the session goes on.
func (s *session) apply(a action) bool {
	switch a {
	case actionQuit:
		return false
	case actionToggle:
		for _, c := range s.counters {
			switch c.State() {
			case animation.StatusRunning:
				c.Stop()
			case animation.StatusPaused:
				c.Resume()
			default:
				c.Animate()
			}
		}
	case actionReset:
		for _, c := range s.counters {
			c.Reset()
		}
	case actionScrollUp:
		s.board.ScrollBy(-1)
	case actionScrollDown:
		s.board.ScrollBy(1)
	}
	return true
}

// handleEvent applies a terminal event and reports whether the session
// goes on.
func (s *session) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.apply(keyAction(ev))
	case *tcell.EventResize:
		s.screen.Sync()
		s.board.Resize()
	}
	return true
}

// tick runs one frame and redraws the board.
func (s *session) tick() {
	s.loop.Step()
	s.board.Draw()
}

func (s *session) close() {
	for _, c := range s.counters {
		c.Destroy()
	}
}

func (s *session) run(ctx context.Context) error {
	defer s.close()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go s.screen.ChannelEvents(events, quit)

	s.logger.Info().Int("counters", len(s.counters)).Dur("interval", s.interval).Msg("board started")
	s.tick()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !s.handleEvent(ev) {
				s.logger.Info().Uint64("frames", s.loop.Frames()).Msg("board closed")
				return nil
			}
		case <-ticker.C:
			s.tick()
		}
	}
}
