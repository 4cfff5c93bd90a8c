package parser

import "fmt"

// SyntaxError is a configuration/parse-taxonomy error (spec.md §7): it
// aborts the whole run rather than being skipped like a per-variant
// failure. It carries enough position detail for the caret-style report
// in internal/diagnostics.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: syntax error: %s", e.File, e.Line, e.Column, e.Message)
}
