package mapping

import "errors"

// ErrNoCodeUnits is returned when a source file maps to zero code units
// (spec.md §8, testable property 10): such a file is a degenerate input,
// rejected outright rather than handed to a search strategy.
var ErrNoCodeUnits = errors.New("mapping: source contains no code units")
