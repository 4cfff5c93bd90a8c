package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"autopie/internal/ast"
)

func rangeAt(beginOffset, endOffset int) ast.Range {
	return ast.Range{
		Begin: ast.Position{Offset: beginOffset, Line: 1, Column: beginOffset + 1},
		End:   ast.Position{Offset: endOffset, Line: 1, Column: endOffset + 1},
	}
}

func TestRangeToTextExtractsExactBytes(t *testing.T) {
	src := []byte("int x = 1;")
	r := rangeAt(4, 5) // "x"
	assert.Equal(t, "x", string(RangeToText(src, r)))
}

func TestRangeToTextClampsOutOfBoundsEnd(t *testing.T) {
	src := []byte("abc")
	r := rangeAt(1, 100)
	assert.Equal(t, "bc", string(RangeToText(src, r)))
}

func TestRangeToTextEmptyRangeReturnsNil(t *testing.T) {
	src := []byte("abc")
	assert.Nil(t, RangeToText(src, rangeAt(2, 2)))
}

func TestEscapeQuotesLeavesPlainTextUnchanged(t *testing.T) {
	assert.Equal(t, "foo(bar)", EscapeQuotes("foo(bar)"))
}

func TestEscapeQuotesEscapesEveryQuote(t *testing.T) {
	assert.Equal(t, `printf(\"%d\", x)`, EscapeQuotes(`printf("%d", x)`))
}
