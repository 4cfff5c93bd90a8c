// Package textutil provides the precise text-range operations the rest of
// the reducer relies on: range-to-text extraction and diagnostic
// quote-escaping (spec.md §4.1).
package textutil

import (
	"strings"

	"autopie/internal/ast"
)

// RangeToText returns the exact bytes of src covered by r, including the
// trailing token. Every node's ast.Range already ends one past its last
// byte (ast.Node.SourceRange sets End from a token's or child's one-past
// End, not clang::Lexer::getLocForEndOfToken's at-the-last-token
// convention), so no further end-of-token correction is needed here
// (spec.md §4.1(ii)).
func RangeToText(src []byte, r ast.Range) []byte {
	begin, end := r.Begin.Offset, r.End.Offset
	if begin < 0 {
		begin = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if begin >= end {
		return nil
	}
	return src[begin:end]
}

// EscapeQuotes backslash-escapes ASCII double quotes for embedding a code
// snippet inside a GraphViz label (spec.md §4.1(iii)). No other character
// is altered.
func EscapeQuotes(text string) string {
	if !strings.ContainsRune(text, '"') {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + 4)
	for _, r := range text {
		if r == '"' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
