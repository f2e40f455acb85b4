package animation

import "fmt"

// Status represents the run state of a single timeline.
//
// The status follows this state machine:
//
//	          Start()            Stop()
//	Idle ──────────────► Running ───────► Paused
//	  ▲                   │  ▲              │
//	  │      Reset()      │  └──────────────┘
//	  └────────────────── │     Resume()
//	                      ▼
//	                  Completed
//
// Destroyed is terminal.
type Status int

const (
	// StatusIdle means no run is in progress.
	StatusIdle Status = iota
	// StatusRunning means frames are being scheduled.
	StatusRunning
	// StatusPaused means a run was stopped and can be resumed.
	StatusPaused
	// StatusCompleted means the last run reached its end value.
	StatusCompleted
	// StatusDestroyed means the timeline was torn down.
	StatusDestroyed
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusCompleted:
		return "completed"
	case StatusDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// CanStart reports whether a new or resumed run may begin from s.
func (s Status) CanStart() bool {
	return s != StatusRunning && s != StatusDestroyed
}
