package cli

import (
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// rcFile is a tiny key=value grammar for .autopierc, grounded on kanso's
// participle-based grammar package: one entry per line, "# ..." comments,
// blank lines ignored. Unlike the core C-like grammar (hand-rolled so the
// mapping pass gets stable pointer identity, see DESIGN.md), this format
// has no tree structure worth a recursive descent — participle's
// value-oriented parsing is a good fit here.
type rcFile struct {
	Entries []*rcLine `@@*`
}

type rcLine struct {
	Comment string `  @Comment`
	KV      *rcKV  `| @@`
}

type rcKV struct {
	Key   string `@Ident "="`
	Value string `@Value`
}

var rcLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `#[^\n]*`, nil},
		{"Ident", `[a-zA-Z][a-zA-Z0-9_-]*`, nil},
		{"Equals", `=`, lexer.Push("Value")},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
	"Value": {
		{"Value", `[^\n]*`, lexer.Pop()},
	},
})

var rcParser = participle.MustBuild[rcFile](
	participle.Lexer(rcLexer),
	participle.Elide("Whitespace"),
)

// LoadRCFile reads a .autopierc and returns its key=value entries. A
// missing file is not an error: callers fall back to flag defaults.
func LoadRCFile(path string) (map[string]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	file, err := rcParser.ParseString(path, string(src))
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(file.Entries))
	for _, line := range file.Entries {
		if line.KV == nil {
			continue // comment line
		}
		out[line.KV.Key] = strings.TrimSpace(line.KV.Value)
	}
	return out, nil
}
