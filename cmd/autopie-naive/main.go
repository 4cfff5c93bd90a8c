// Command autopie-naive runs the naive iterative-deepening reduction
// strategy of spec.md §4.6 over one source file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"autopie/internal/cli"
	"autopie/internal/diagnostics"
	"autopie/internal/oracle/debug"
	"autopie/internal/reduce"
	"autopie/internal/reduce/search"
	"autopie/internal/reducectx"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	src, err := os.ReadFile(opts.LocFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	diagnostics.PrintContext(src, opts.LocLine)

	rc := reducectx.New(logWriter(opts.Log, opts.LocFile))
	rc.SourceFile = opts.LocFile
	rc.ErrorLine = opts.LocLine
	rc.ErrorMessage = opts.ErrorMessage
	rc.Timeout = opts.Timeout
	rc.Verbose = opts.Verbose
	rc.KeepTemp = opts.KeepTemp
	rc.TempDir = "temp"
	rc.VisualsDir = "visuals"
	if opts.DumpDot {
		if err := os.MkdirAll(rc.VisualsDir, 0755); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	strategy := &search.Naive{Ratio: opts.Ratio, EpochCount: opts.EpochCount}
	driver := &debug.DelveDriver{DlvPath: "dlv"}

	outputPath, err := reduce.Run(context.Background(), rc, strategy, opts.CompilerPath(), driver, opts.DumpDot)
	if err != nil {
		return diagnostics.ReportError(src, err)
	}

	diagnostics.ReportSuccess(outputPath)
	return 0
}

// logWriter returns nil (an untyped nil io.Writer, disabling logging via
// reducectx.New) unless -log/-l asked for a persistent run log.
func logWriter(enabled bool, sourceFile string) io.Writer {
	if !enabled {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(filepath.Dir(sourceFile), "autopie.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil
	}
	return f
}
