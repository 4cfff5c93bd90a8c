// Package search implements the two search strategies of spec.md §4.6
// (naïve iterative deepening) and §4.7 (n-ary partition delta debugging)
// over one shared Strategy interface, so both cmd/ binaries differ only
// in which strategy they pass to internal/reduce.Run.
package search

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"autopie/internal/ast"
	"autopie/internal/depgraph"
	"autopie/internal/oracle"
	"autopie/internal/reduce/mapping"
	"autopie/internal/reducectx"
)

// Deps bundles everything a strategy needs: the parsed tree and source it
// operates against, the graph and mapping result the engine already
// built, the oracle to submit candidates to, and the naming/output
// conventions of spec.md §6.
type Deps struct {
	RC        *reducectx.Context
	TU        *ast.TranslationUnit
	Src       []byte
	Graph     *depgraph.Graph
	MapResult *mapping.Result
	Oracle    *oracle.Oracle
	BaseName  string // file name without extension, for temp variant naming
	Ext       string
	OutputPath string
	// DumpDot and VisualsDir implement spec.md §6 "-d/-dump-dot": when
	// DumpDot is set, each strategy writes the dependency graph to
	// VisualsDir/dotDump_<iteration>_<basename>.dot alongside its variants.
	DumpDot    bool
	VisualsDir string
}

// Strategy runs one search to completion, returning the path of the
// confirmed minimum variant or oracle.ErrNoConfirmation.
type Strategy interface {
	Run(ctx context.Context, deps Deps) (string, error)
}

// dumpDot writes the dependency graph's GraphViz form to
// VisualsDir/dotDump_<iteration>_<basename>.dot when deps.DumpDot is set
// (spec.md §6). Failures are non-fatal: the dump is a debugging aid, not
// part of the reduction itself.
func dumpDot(deps Deps, iteration int) {
	if !deps.DumpDot {
		return
	}
	name := "dotDump_" + strconv.Itoa(iteration) + "_" + deps.BaseName + ".dot"
	f, err := os.Create(filepath.Join(deps.VisualsDir, name))
	if err != nil {
		deps.RC.Tracef("dump-dot: %v", err)
		return
	}
	defer f.Close()
	if err := deps.Graph.WriteDot(f); err != nil {
		deps.RC.Tracef("dump-dot: %v", err)
	}
}
