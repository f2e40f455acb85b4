package cmd

import (
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-drift/countup/cmd/countup/internal/config"
	"github.com/go-drift/countup/pkg/animation"
	"github.com/go-drift/countup/pkg/counter"
	"github.com/go-drift/countup/pkg/platform"
	countuptest "github.com/go-drift/countup/pkg/testing"
)

// traceRecord is one line of trace output.
type traceRecord struct {
	Counter  string            `json:"counter"`
	T        float64           `json:"t"`
	Event    counter.EventName `json:"event"`
	Value    float64           `json:"value"`
	Progress float64           `json:"progress"`
	Text     string            `json:"text"`
}

type traceOptions struct {
	Interval time.Duration
	Limit    time.Duration
}

func newTraceCommand(global *GlobalOptions) *cobra.Command {
	var (
		opts  counterFlags
		topts traceOptions
	)

	cmd := &cobra.Command{
		Use:   "trace [flags]",
		Short: "Print counter events as JSON lines",
		Long: `The "trace" command runs the configured counters on a simulated clock
and prints one JSON object per event. Every row counts as visible and
counters that do not start on their own are started once.

The default frame interval follows the configured fps.`,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(global, &opts, cmd.Flags())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				topts.Interval = cfg.FrameInterval()
			}
			return runTrace(cmd.OutOrStdout(), cfg, topts)
		},
	}
	opts.AddFlags(cmd.Flags())
	cmd.Flags().DurationVar(&topts.Interval, "interval", time.Second/config.DefaultFPS, "simulated frame `interval`")
	cmd.Flags().DurationVar(&topts.Limit, "limit", time.Minute, "stop after this much simulated `time`")
	return cmd
}

// runTrace steps the counters of cfg on a fake clock until no frames are
// pending, writing every event to w.
func runTrace(w io.Writer, cfg *config.Config, opts traceOptions) error {
	if opts.Interval <= 0 {
		return errors.Errorf("invalid interval %v", opts.Interval)
	}

	clock := countuptest.NewFakeClock()
	loop := animation.NewFrameLoop(clock)
	doc := platform.NewMemoryDocument()
	visibility := platform.NewVisibilityTracker()

	changes := make(map[platform.Element]bool, len(cfg.Counters))
	for _, spec := range cfg.Counters {
		changes[doc.Create(spec.ID)] = true
	}
	visibility.SetVisibleAll(changes)

	counters, err := buildCounters(cfg.Counters, counter.LoopHost(loop, doc, visibility.Factory()))
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range counters {
			c.Destroy()
		}
	}()

	enc := json.NewEncoder(w)
	var writeErr error
	for i, c := range counters {
		id := cfg.Counters[i].ID
		el := c.Element()
		for _, name := range []counter.EventName{counter.EventStart, counter.EventUpdate, counter.EventComplete} {
			c.OnFunc(name, func(ev counter.Event) {
				if writeErr != nil {
					return
				}
				writeErr = enc.Encode(traceRecord{
					Counter:  id,
					T:        loop.NowMillis(),
					Event:    ev.Name,
					Value:    ev.Value,
					Progress: ev.Progress,
					Text:     el.TextContent(),
				})
			})
		}
	}

	for _, c := range counters {
		if c.State() == animation.StatusIdle {
			c.Animate()
		}
	}

	var elapsed time.Duration
	for loop.Pending() > 0 {
		if elapsed > opts.Limit {
			return errors.Errorf("counters still running after %v", opts.Limit)
		}
		loop.Step()
		if writeErr != nil {
			return errors.Wrap(writeErr, "failed to write trace")
		}
		clock.Advance(opts.Interval)
		elapsed += opts.Interval
	}
	return nil
}
