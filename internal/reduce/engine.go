// Package reduce ties the parser, mapping pass, oracle, and a chosen
// search.Strategy into the single shared entry point both cmd/ binaries
// call (spec.md §1 overview, §9 "one engine, two strategies").
package reduce

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"autopie/internal/oracle"
	"autopie/internal/oracle/debug"
	"autopie/internal/parser"
	"autopie/internal/reduce/mapping"
	"autopie/internal/reduce/search"
	"autopie/internal/reducectx"
)

// ErrLineOutOfRange is a configuration error (spec.md §7, testable
// property 11): the user-specified error line does not exist in the
// source file.
var ErrLineOutOfRange = fmt.Errorf("reduce: error line is outside the source file")

// Run parses rc.SourceFile, builds the dependency graph, and drives
// strategy to completion, returning the path of the confirmed minimal
// variant.
func Run(ctx context.Context, rc *reducectx.Context, strategy search.Strategy, compilerPath string, driver debug.Driver, dumpDot bool) (string, error) {
	src, err := os.ReadFile(rc.SourceFile)
	if err != nil {
		return "", fmt.Errorf("reduce: reading %s: %w", rc.SourceFile, err)
	}

	if lineCount := bytes.Count(src, []byte("\n")) + 1; rc.ErrorLine < 1 || rc.ErrorLine > lineCount {
		return "", ErrLineOutOfRange
	}

	tu, err := parser.ParseSource(rc.SourceFile, src)
	if err != nil {
		return "", err // *parser.SyntaxError: configuration-level abort, reported verbatim
	}

	graph, mapResult, err := mapping.Map(tu, src, rc.ErrorLine)
	if err != nil {
		return "", err // mapping.ErrNoCodeUnits: configuration-level abort, testable property 10
	}
	rc.Logf("reduce: mapped %d code units, %d potential error lines", mapResult.Len, len(mapResult.PotentialErrorLines))

	// The temp directory is owned exclusively by the reducer and cleared
	// at start (spec.md §5); --keep-temp reinstates the original's
	// interactive "skip clearing" confirmation as a non-interactive flag.
	// An unset rc.TempDir (outside the cmd/ binaries, which fix it at
	// "temp") falls back to an OS-assigned scratch directory instead of
	// writing into the working directory, e.g. for tests.
	if rc.TempDir == "" {
		dir, err := os.MkdirTemp("", "autopie-*")
		if err != nil {
			return "", fmt.Errorf("reduce: creating temp dir: %w", err)
		}
		rc.TempDir = dir
	} else {
		if !rc.KeepTemp {
			os.RemoveAll(rc.TempDir) //nolint:errcheck
		}
		if err := os.MkdirAll(rc.TempDir, 0755); err != nil {
			return "", fmt.Errorf("reduce: creating temp dir: %w", err)
		}
	}

	o := oracle.New(oracle.Config{CompilerPath: compilerPath}, driver, rc)

	base := filepath.Base(rc.SourceFile)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")
	baseName := strings.TrimSuffix(base, filepath.Ext(base))
	// spec.md §6: "the output is temp/autoPieOut.<ext>".
	outputPath := filepath.Join(rc.TempDir, "autoPieOut."+ext)

	deps := search.Deps{
		RC:         rc,
		TU:         tu,
		Src:        src,
		Graph:      graph,
		MapResult:  mapResult,
		Oracle:     o,
		BaseName:   baseName,
		Ext:        ext,
		OutputPath: outputPath,
		DumpDot:    dumpDot,
		VisualsDir: rc.VisualsDir,
	}
	return strategy.Run(ctx, deps)
}
