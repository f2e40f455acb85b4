// Package cmd implements the countup CLI commands.
//
// The root command dispatches to run (interactive terminal board), trace
// (headless JSON event stream), easings and version.
package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/go-drift/countup/cmd/countup/internal/config"
	cuerrors "github.com/go-drift/countup/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// GlobalOptions hold flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	LogFile    string
	Verbose    bool

	logger  zerolog.Logger
	logFile *os.File
}

// AddFlags registers the global flags.
func (opts *GlobalOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "board description `file` (default ./"+config.FileName+" if present)")
	f.StringVar(&opts.LogFile, "log-file", "", "write logs to `file`")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "include stack traces in error logs")
}

// setupLogging builds the logger. Interactive commands own the terminal,
// so they only log when a log file is given.
func (opts *GlobalOptions) setupLogging(interactive bool) error {
	var w io.Writer
	switch {
	case opts.LogFile != "":
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrap(err, "failed to open log file")
		}
		opts.logFile = f
		w = f
	case interactive:
		w = io.Discard
	default:
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	opts.logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	cuerrors.SetHandler(&cuerrors.LogHandler{Logger: opts.logger, Verbose: opts.Verbose})
	return nil
}

func (opts *GlobalOptions) close() {
	if opts.logFile != nil {
		_ = opts.logFile.Close()
		opts.logFile = nil
	}
}

func newRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "countup",
		Short: "Animated counting numbers for the terminal",
		Long: `countup animates numbers from a start value to an end value with
configurable easing, step rounding and lazy, scroll-triggered starts.

Describe a board in countup.yaml, or pass a single counter with flags.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return opts.setupLogging(c.Name() == "run")
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			opts.close()
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	opts.AddFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newRunCommand(opts),
		newTraceCommand(opts),
		newEasingsCommand(),
		newVersionCommand(),
	)
	return cmd
}

// Execute runs the CLI with os.Args. An interrupt cancels the command
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return newRootCommand().ExecuteContext(ctx)
}
