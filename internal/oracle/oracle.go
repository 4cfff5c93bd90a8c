// Package oracle implements the validation oracle of spec.md §4.8: it
// compiles a candidate variant, drives a debugger subprocess against it,
// and confirms whether the debuggee stopped on the expected line with the
// expected message. The first confirmed candidate in ascending file-size
// order is the run's minimum (spec.md §4.8, §5 "Ordering guarantees").
package oracle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"autopie/internal/oracle/debug"
	"autopie/internal/reducectx"
)

// Config is the oracle's compile-time configuration, shared by both
// search strategies.
type Config struct {
	CompilerPath string // e.g. "cc"; SPEC_FULL.md recovered `--language` picks the binary elsewhere
}

// Candidate is one variant file awaiting confirmation, paired with the
// potential error-line list the printing pass adjusted for it.
type Candidate struct {
	Path  string
	Lines []int
}

// Oracle ties a compiler invocation and a debug.Driver together against
// one reducer run's expectations (original file name, error message
// substring, timeout), all carried by the reducer context rather than a
// package-level singleton (spec.md §9).
type Oracle struct {
	cfg    Config
	driver debug.Driver
	rc     *reducectx.Context
}

// New returns an Oracle bound to one reduction run's context.
func New(cfg Config, driver debug.Driver, rc *reducectx.Context) *Oracle {
	return &Oracle{cfg: cfg, driver: driver, rc: rc}
}

// Confirm compiles and debugs one candidate, applying the confirmation
// test of spec.md §4.8. A compile failure, a driver error (e.g. unable
// to launch the debugger at all) and an unconfirmed debug session are all
// traced and reported as (false, nil), a per-candidate skip rather than a
// run abort (spec.md §7 "debug-session"); the returned error is always nil.
func (o *Oracle) Confirm(ctx context.Context, candidatePath string, lines []int) (bool, error) {
	binPath := candidatePath + ".bin"
	defer os.Remove(binPath)

	if !compile(ctx, o.cfg.CompilerPath, candidatePath, binPath) {
		o.rc.Tracef("oracle: compile failed, skipping %s", candidatePath)
		return false, nil
	}

	report, err := o.driver.Run(ctx, binPath, o.rc.Timeout)
	if err != nil {
		o.rc.Tracef("oracle: debug session error on %s: %v", candidatePath, err)
		return false, nil
	}
	if report.State != debug.StateStopped {
		o.rc.Tracef("oracle: %s ended in state %s, not confirmed", candidatePath, report.State)
		return false, nil
	}

	if filepath.Base(report.File) != filepath.Base(o.rc.SourceFile) {
		return false, nil
	}
	if !containsLine(lines, report.Line) {
		return false, nil
	}
	if o.rc.ErrorMessage != "" && !strings.Contains(strings.ToLower(report.Status), strings.ToLower(o.rc.ErrorMessage)) {
		return false, nil
	}
	return true, nil
}

func containsLine(lines []int, line int) bool {
	for _, l := range lines {
		if l == line {
			return true
		}
	}
	return false
}

// ValidateResults implements the batch half of spec.md §4.8: candidates
// are sorted ascending by file size, compiled and debugged in that
// order, and the first confirmed one is renamed to outputPath. Returns
// ErrNoConfirmation if nothing confirmed.
func (o *Oracle) ValidateResults(ctx context.Context, candidates []Candidate, outputPath string) (string, error) {
	sorted := append([]Candidate(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool {
		return fileSize(sorted[i].Path) < fileSize(sorted[j].Path)
	})

	for _, c := range sorted {
		confirmed, err := o.Confirm(ctx, c.Path, c.Lines)
		if err != nil {
			return "", fmt.Errorf("oracle: validating %s: %w", c.Path, err)
		}
		if confirmed {
			if err := os.Rename(c.Path, outputPath); err != nil {
				return "", fmt.Errorf("oracle: finalize %s: %w", c.Path, err)
			}
			o.rc.Logf("oracle: confirmed minimum variant %s -> %s", c.Path, outputPath)
			return outputPath, nil
		}
	}
	return "", ErrNoConfirmation
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// CandidateName renders the `<iteration>_<basename>.<ext>` file name of
// spec.md §6 for a variant written to the temp directory.
func CandidateName(iteration int, baseName, ext string) string {
	return strconv.Itoa(iteration) + "_" + baseName + "." + ext
}
