// Package errors provides structured error handling for countup.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid counter configuration.
	KindConfig
	// KindElement indicates a missing or unresolvable display element.
	KindElement
	// KindHost indicates a missing host collaborator.
	KindHost
	// KindRender indicates a failure drawing to a display surface.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindElement:
		return "element"
	case KindHost:
		return "host"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Construction failures. CounterError wraps one of these; compare with Is.
var (
	ErrElementRequired   = New("element is required")
	ErrElementNotFound   = New("element not found")
	ErrInvalidDuration   = New("duration must be positive")
	ErrEndRequired       = New("end value is required")
	ErrInvalidEasing     = New("invalid easing function")
	ErrSchedulerRequired = New("frame scheduler is required")
	ErrClockRequired     = New("clock is required")
	ErrDocumentRequired  = New("document is required to resolve a locator")
	ErrObserverRequired  = New("visibility observer is required for lazy counters")
)

// New returns an error with the given text. It is errors.New from the
// standard library, re-exported so callers need a single import.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// CounterError represents a structured error raised by countup.
type CounterError struct {
	// Op is the operation that failed (e.g., "counter.New").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Detail names the offending input, if any (a locator or easing name).
	Detail string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *CounterError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s [%s] %q: %v", e.Op, e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *CounterError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "counter.Emit").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by countup.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *CounterError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
