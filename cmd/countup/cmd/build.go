package cmd

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/go-drift/countup/cmd/countup/internal/config"
	"github.com/go-drift/countup/pkg/counter"
	cuerrors "github.com/go-drift/countup/pkg/errors"
)

// counterFlags describe a single counter given on the command line.
type counterFlags struct {
	Title       string
	Start       float64
	End         float64
	Duration    time.Duration
	Step        float64
	Easing      string
	Bezier      []float64
	Decimals    int
	Prefix      string
	Suffix      string
	Locale      string
	Lazy        bool
	PlayOnce    bool
	NoAutostart bool
}

// AddFlags registers the single counter flags.
func (opts *counterFlags) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.Title, "title", "", "row `title` for the counter")
	f.Float64Var(&opts.Start, "start", 0, "start `value`")
	f.Float64Var(&opts.End, "end", 0, "end `value` (selects a single counter instead of a config file)")
	f.DurationVar(&opts.Duration, "duration", counter.DefaultDuration, "run `duration`")
	f.Float64Var(&opts.Step, "step", 0, "round displayed values to multiples of `step` (0 disables)")
	f.StringVar(&opts.Easing, "easing", "", "easing curve `name` (see countup easings)")
	f.Float64SliceVar(&opts.Bezier, "bezier", nil, "cubic bezier `x1,y1,x2,y2` overriding --easing")
	f.IntVar(&opts.Decimals, "decimals", 0, "fixed number of decimal `places`")
	f.StringVar(&opts.Prefix, "prefix", "", "text shown before the value")
	f.StringVar(&opts.Suffix, "suffix", "", "text shown after the value")
	f.StringVar(&opts.Locale, "locale", "", "BCP 47 `tag` for digit grouping, e.g. en or de-CH")
	f.BoolVar(&opts.Lazy, "lazy", false, "start when the row scrolls into view")
	f.BoolVar(&opts.PlayOnce, "play-once", false, "with --lazy, run only the first time the row is shown")
	f.BoolVar(&opts.NoAutostart, "no-autostart", false, "wait for the toggle key before starting")
}

// spec converts the flags to a counter spec. Flags the user did not set
// stay nil so the counter defaults apply.
func (opts *counterFlags) spec(f *pflag.FlagSet) config.CounterSpec {
	end := opts.End
	spec := config.CounterSpec{
		Title:    opts.Title,
		End:      &end,
		Easing:   opts.Easing,
		Bezier:   opts.Bezier,
		Prefix:   opts.Prefix,
		Suffix:   opts.Suffix,
		Locale:   opts.Locale,
		Lazy:     opts.Lazy,
		PlayOnce: opts.PlayOnce,
	}
	if f.Changed("start") {
		start := opts.Start
		spec.Start = &start
	}
	if f.Changed("duration") {
		spec.Duration = opts.Duration.String()
	}
	if f.Changed("step") {
		step := opts.Step
		spec.Step = &step
	}
	if f.Changed("decimals") {
		decimals := opts.Decimals
		spec.Decimals = &decimals
	}
	if opts.NoAutostart {
		autostart := false
		spec.Autostart = &autostart
	}
	return spec
}

// loadConfig picks the board to show: the file named by --config, the
// single counter described by --end, or ./countup.yaml.
func loadConfig(global *GlobalOptions, opts *counterFlags, f *pflag.FlagSet) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case global.ConfigPath != "":
		cfg, err = config.Load(global.ConfigPath)
	case f.Changed("end"):
		cfg, err = config.Resolve(&config.Config{
			Counters: []config.CounterSpec{opts.spec(f)},
		})
	default:
		var wd string
		wd, err = os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get working directory")
		}
		cfg, err = config.LoadOptional(wd)
	}
	if err != nil {
		return nil, err
	}
	if len(cfg.Counters) == 0 {
		return nil, errors.Errorf("no counters configured: pass --end or create %s", config.FileName)
	}
	return cfg, nil
}

// buildCounters creates one counter per spec, bound to the element whose
// id matches the spec id. On failure the counters built so far are
// destroyed.
func buildCounters(specs []config.CounterSpec, host counter.Host) ([]*counter.Counter, error) {
	counters := make([]*counter.Counter, 0, len(specs))
	fail := func(err error) ([]*counter.Counter, error) {
		for _, c := range counters {
			c.Destroy()
		}
		return nil, err
	}

	for _, spec := range specs {
		cfg, err := spec.CounterConfig()
		if err != nil {
			return fail(err)
		}
		c, err := counter.New(counter.Locator("#"+spec.ID), cfg, host)
		if err != nil {
			var ce *cuerrors.CounterError
			if cuerrors.As(err, &ce) {
				cuerrors.Report(ce)
			}
			return fail(errors.Wrapf(err, "counter %q", spec.ID))
		}
		counters = append(counters, c)
	}
	return counters, nil
}
