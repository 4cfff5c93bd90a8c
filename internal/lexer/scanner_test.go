package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

func TestTokenizeIdentifiersNumbersAndPunct(t *testing.T) {
	tokens := Tokenize([]byte("int x = 42;"))
	assert.Equal(t, []Kind{Ident, Ident, Punct, Number, Punct, EOF}, kinds(tokens))
	assert.Equal(t, []string{"int", "x", "=", "42", ";", ""}, texts(tokens))
}

func TestTokenizeMultiCharPunctPrefersLongestMatch(t *testing.T) {
	tokens := Tokenize([]byte("a <<= b"))
	assert.Equal(t, "<<=", tokens[1].Text, "<<= must not be split into << and =")
}

func TestTokenizeStringAndCharLiterals(t *testing.T) {
	tokens := Tokenize([]byte(`"hi" 'c'`))
	assert.Equal(t, String, tokens[0].Kind)
	assert.Equal(t, `"hi"`, tokens[0].Text)
	assert.Equal(t, Char, tokens[1].Kind)
	assert.Equal(t, "'c'", tokens[1].Text)
}

func TestTokenizeSkipsLineAndBlockComments(t *testing.T) {
	tokens := Tokenize([]byte("a // comment\nb /* block\nspanning */ c"))
	assert.Equal(t, []string{"a", "b", "c", ""}, texts(tokens))
}

func TestTokenizeEscapedQuoteInsideString(t *testing.T) {
	tokens := Tokenize([]byte(`"a\"b"`))
	assert.Equal(t, String, tokens[0].Kind)
	assert.Equal(t, `"a\"b"`, tokens[0].Text)
}

func TestTokenizeAlwaysTerminatesWithEOF(t *testing.T) {
	tokens := Tokenize([]byte(""))
	assert.Len(t, tokens, 1)
	assert.Equal(t, EOF, tokens[0].Kind)
}

func TestTokenEndPositionIsOnePastLastByte(t *testing.T) {
	tokens := Tokenize([]byte("foo"))
	assert.Equal(t, 0, tokens[0].Pos.Offset)
	assert.Equal(t, 3, tokens[0].End.Offset)
}
