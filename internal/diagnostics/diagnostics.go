// Package diagnostics prints the tool's user-visible messages: a
// caret-style parse error report and a plain context window (spec.md §7
// "prints a context window (±3 lines) around the error line at start"),
// both adapted from kanso's Rust-like error reporter.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"autopie/internal/parser"
)

// PrintContext prints the ±3 source lines around line (1-based) the way
// the original's startup banner does, so the user can see what the
// reducer believes the crash site is before any variant is built.
func PrintContext(src []byte, line int) {
	lines := strings.Split(string(src), "\n")
	if line < 1 || line > len(lines) {
		color.Red("line %d is outside the source file", line)
		return
	}

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	begin := line - 3
	if begin < 1 {
		begin = 1
	}
	end := line + 3
	if end > len(lines) {
		end = len(lines)
	}

	width := len(fmt.Sprintf("%d", end))
	for n := begin; n <= end; n++ {
		marker := dim("│")
		number := dim(fmt.Sprintf("%*d", width, n))
		if n == line {
			marker = color.New(color.FgRed).Sprint("│")
			number = bold(fmt.Sprintf("%*d", width, n))
		}
		fmt.Printf("%s %s %s\n", number, marker, lines[n-1])
	}
}

// ReportError prints a user-facing error and returns the exit code main
// should use. A *parser.SyntaxError prints a caret-style snippet of the
// offending line; everything else (configuration, oracle.ErrNoConfirmation)
// prints plainly.
func ReportError(src []byte, err error) int {
	se, ok := err.(*parser.SyntaxError)
	if !ok {
		color.Red("❌ %s", err.Error())
		return 1
	}

	color.Red("❌ %s", se.Error())
	lines := strings.Split(string(src), "\n")
	if se.Line < 1 || se.Line > len(lines) {
		return 1
	}
	fmt.Println(lines[se.Line-1])
	color.HiRed(strings.Repeat(" ", max(0, se.Column-1)) + "^")
	return 1
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ReportSuccess prints the final output path on a confirmed reduction.
func ReportSuccess(outputPath string) {
	color.Green("✅ reduced variant confirmed: %s", outputPath)
}
