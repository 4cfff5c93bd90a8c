package oracle

import "errors"

// ErrNoConfirmation is returned at the end of a run when no candidate
// variant was confirmed in any epoch (spec.md §7 "no-confirmation").
var ErrNoConfirmation = errors.New("oracle: no candidate confirmed the expected crash")
