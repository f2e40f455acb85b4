package errors

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes structured log events.
type LogHandler struct {
	// Logger receives the events.
	Logger zerolog.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// NewLogHandler returns a LogHandler writing to w, or stderr when w is nil.
func NewLogHandler(w io.Writer, verbose bool) *LogHandler {
	if w == nil {
		w = os.Stderr
	}
	return &LogHandler{
		Logger:  zerolog.New(w).With().Timestamp().Logger(),
		Verbose: verbose,
	}
}

// HandleError logs a CounterError.
func (h *LogHandler) HandleError(err *CounterError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().Str("op", err.Op).Str("kind", err.Kind.String()).Err(err.Err)
	if err.Detail != "" {
		ev = ev.Str("detail", err.Detail)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("countup error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	ev := h.Logger.Error().Interface("value", err.Value)
	if err.Op != "" {
		ev = ev.Str("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("countup panic")
}
