// Package cli implements the flag surface shared by cmd/autopie-naive and
// cmd/autopie-delta (spec.md §6, recovered flags from
// original_source/autopie/Common/include/Options.h noted in SPEC_FULL.md
// §6).
package cli

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Options is the parsed, validated flag/rcfile surface one reduction run
// is configured with.
type Options struct {
	LocFile      string
	LocLine      int
	ErrorMessage string
	Ratio        float64
	DumpDot      bool
	Verbose      bool
	Log          bool
	Language     string
	EpochCount   int
	Timeout      time.Duration
	KeepTemp     bool
}

// Parse defines and parses the shared flag set against args (os.Args[1:]
// from main), applying .autopierc defaults first so flags can override
// them, matching the original's "file settings, then command line
// overrides" precedence. A single trailing positional argument (spec.md
// §6, descended from clang-tooling's CommonOptionsParser source-file
// positional) supplies the source file path when -loc-file was not
// given explicitly.
func Parse(args []string) (*Options, error) {
	rc, err := LoadRCFile(".autopierc")
	if err != nil {
		return nil, fmt.Errorf("cli: reading .autopierc: %w", err)
	}

	opts := &Options{
		Ratio:      1.0,
		EpochCount: 5,
		Timeout:    360 * time.Second,
	}
	applyRCDefaults(opts, rc)

	fs := flag.NewFlagSet("autopie", flag.ContinueOnError)
	fs.StringVar(&opts.LocFile, "loc-file", opts.LocFile, "path of the file in which the error occurs")
	fs.IntVar(&opts.LocLine, "loc-line", opts.LocLine, "1-based line number of the error")
	fs.StringVar(&opts.ErrorMessage, "error-message", opts.ErrorMessage, "substring to match against the debugger stop status")
	fs.Float64Var(&opts.Ratio, "ratio", opts.Ratio, "target reduction fraction in (0,1], naive search only")
	fs.BoolVar(&opts.DumpDot, "dump-dot", opts.DumpDot, "emit a GraphViz dependency graph dump per variant")
	fs.BoolVar(&opts.DumpDot, "d", opts.DumpDot, "alias for -dump-dot")
	fs.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "print per-variant progress")
	fs.BoolVar(&opts.Verbose, "v", opts.Verbose, "alias for -verbose")
	fs.BoolVar(&opts.Log, "log", opts.Log, "write a timestamped run log")
	fs.BoolVar(&opts.Log, "l", opts.Log, "alias for -log")
	fs.StringVar(&opts.Language, "language", opts.Language, "c or cpp, default inferred from the input file extension")
	fs.IntVar(&opts.EpochCount, "epoch-count", opts.EpochCount, "naive search epoch count")
	fs.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "per-candidate debugger session timeout")
	fs.BoolVar(&opts.KeepTemp, "keep-temp", opts.KeepTemp, "skip clearing temp/ at start and between naive epochs")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	var locFileSet bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "loc-file" {
			locFileSet = true
		}
	})
	if rest := fs.Args(); len(rest) > 0 {
		if len(rest) > 1 {
			return nil, fmt.Errorf("cli: at most one positional source file argument is accepted, got %d", len(rest))
		}
		if !locFileSet {
			opts.LocFile = rest[0]
		}
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func applyRCDefaults(opts *Options, rc map[string]string) {
	if v, ok := rc["error-message"]; ok {
		opts.ErrorMessage = v
	}
	if v, ok := rc["ratio"]; ok {
		fmt.Sscanf(v, "%g", &opts.Ratio)
	}
	if v, ok := rc["language"]; ok {
		opts.Language = v
	}
	if v, ok := rc["epoch-count"]; ok {
		fmt.Sscanf(v, "%d", &opts.EpochCount)
	}
	if v, ok := rc["timeout"]; ok {
		if d, err := time.ParseDuration(v); err == nil {
			opts.Timeout = d
		}
	}
}

func (o *Options) validate() error {
	if o.LocFile == "" {
		return fmt.Errorf("cli: -loc-file is required")
	}
	if o.LocLine < 1 {
		return fmt.Errorf("cli: -loc-line is required and must be >= 1")
	}
	if o.Ratio <= 0 || o.Ratio > 1 {
		return fmt.Errorf("cli: -ratio must be in (0,1]")
	}
	if o.Language == "" {
		o.Language = inferLanguage(o.LocFile)
	}
	return nil
}

// inferLanguage guesses the compiler invocation mode from the input
// file's extension, the original's LanguageToString/LanguageToExtension
// default path for unambiguous extensions.
func inferLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cpp", ".cc", ".cxx", ".hpp":
		return "cpp"
	default:
		return "c"
	}
}

// CompilerPath returns the compiler binary to invoke for the configured
// language.
func (o *Options) CompilerPath() string {
	if o.Language == "cpp" {
		return "c++"
	}
	return "cc"
}
