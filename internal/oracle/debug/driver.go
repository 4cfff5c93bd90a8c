// Package debug models the validation oracle's debugger side: the state
// machine of spec.md §4.8/§9 and the Driver interface a concrete
// implementation (internal/oracle/debug.DelveDriver) satisfies. Keeping
// this a narrow interface lets the oracle be tested against a fake
// driver without spawning a real debugger subprocess.
package debug

import (
	"context"
	"time"
)

// State is one state of a single debugging session (spec.md §4.8).
type State int

const (
	StateInvalid State = iota
	StateLaunching
	StateRunning
	StateStopped
	StateCrashed
	StateExited
	StateDetached
	StateUnloaded
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateLaunching:
		return "launching"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateCrashed:
		return "crashed"
	case StateExited:
		return "exited"
	case StateDetached:
		return "detached"
	case StateUnloaded:
		return "unloaded"
	case StateTimedOut:
		return "timed-out"
	default:
		return "invalid"
	}
}

// StopReport describes the debuggee's state at the moment it last
// stopped, enough for the oracle's confirmation test (current frame file
// and line, and the thread-status text searched for the expected
// message substring).
type StopReport struct {
	State  State
	File   string
	Line   int
	Status string // thread-status / exception text, e.g. "SIGSEGV"
}

// Driver launches one debuggee binary and blocks until the debuggee
// first stops, exits or is otherwise lost, or until the timeout elapses,
// returning a StopReport for that state. A StateStopped report describes
// the first stop; the session is not resumed after it, and the oracle
// applies its confirmation test to that one report.
type Driver interface {
	Run(ctx context.Context, binaryPath string, timeout time.Duration) (StopReport, error)
}
