// Package reducectx is the explicit, non-singleton replacement for the
// original's global reducer context (spec.md §9 "Singleton global state:
// avoided"). A Context is constructed once in main and threaded through
// the mapping, printing, search, and oracle calls; nothing in this
// repository keeps reducer state in a package-level variable.
package reducectx

import (
	"fmt"
	"io"
	"log"
	"time"
)

// Context carries the run-wide configuration and logging sink every
// reducer component needs, replacing the original's `GlobalContext`
// singleton (spec.md §9).
type Context struct {
	// SourceFile is the path of the file under reduction.
	SourceFile string
	// ErrorLine is the user-specified 1-based line the crash is attributed to.
	ErrorLine int
	// ErrorMessage is the substring matched against the debugger's
	// thread-status text, case-insensitively; empty matches any stop.
	ErrorMessage string
	// Timeout bounds one debugger session (spec.md §4.8, default 360s).
	Timeout time.Duration
	// TempDir and VisualsDir are the reducer-owned scratch directories of
	// spec.md §6.
	TempDir    string
	VisualsDir string
	// KeepTemp skips clearing TempDir between naive epochs (recovered
	// `--keep-temp`, SPEC_FULL.md §6).
	KeepTemp bool
	// Verbose enables per-variant progress tracing (`-v`).
	Verbose bool

	logger *log.Logger
}

// New constructs a Context. w receives log output when logging is
// enabled (nil disables logging entirely, writing to io.Discard).
func New(w io.Writer) *Context {
	if w == nil {
		w = io.Discard
	}
	return &Context{
		Timeout: 360 * time.Second,
		logger:  log.New(w, "", log.LstdFlags),
	}
}

// Logf writes one timestamped diagnostic line (mirrors the original's
// `autopie.log`, spec.md §6), a no-op when logging was disabled.
func (c *Context) Logf(format string, args ...interface{}) {
	c.logger.Output(2, fmt.Sprintf(format, args...)) //nolint:errcheck
}

// Tracef writes a verbose-only progress line.
func (c *Context) Tracef(format string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	c.Logf(format, args...)
}
