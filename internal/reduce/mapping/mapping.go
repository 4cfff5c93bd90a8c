// Package mapping implements the post-order mapping pass of spec.md §4.4:
// it walks a parse tree once, assigning contiguous traversal indices to
// every candidate code unit, building the dependency graph, and seeding
// the criterion set (including the signature/brace "potential error-line
// set" workaround for coarse debugger line attribution).
package mapping

import (
	"sort"

	"autopie/internal/ast"
	"autopie/internal/depgraph"
	"autopie/internal/textutil"
)

// Result carries everything the mapping pass produces besides the graph
// itself: the set of indices consumed by duplicate-identity visits (which
// the printing pass must step over to keep its own walk aligned), the
// potential error-line set, and the total traversal length a bitmask must
// cover (spec.md §4.4 "Determinism").
type Result struct {
	SkippedIndices      map[int]bool
	PotentialErrorLines []int
	Len                 int
}

// pendingRef is an unresolved declaration-use pair: decl is the
// referenced declaration node, use is the DeclRefExpr occurrence itself,
// kept only so the pair can be dropped once consumed (spec.md §4.4 rule 4).
type pendingRef struct {
	decl ast.Node
	use  ast.Node
}

type mapper struct {
	graph     *depgraph.Graph
	src       []byte
	errorLine int

	identity map[ast.Node]int
	skipped  map[int]bool
	next     int
	astSeq   int

	pending  []pendingRef
	frontier []int

	funcStack           []*ast.FunctionDecl
	potentialErrorLines map[int]bool
}

// Map runs the mapping pass over a translation unit parsed from src,
// relative to the user's 1-based error line. It returns ErrNoCodeUnits if
// the resulting graph is empty.
func Map(tu *ast.TranslationUnit, src []byte, errorLine int) (*depgraph.Graph, *Result, error) {
	m := &mapper{
		graph:               depgraph.New(),
		src:                 src,
		errorLine:           errorLine,
		identity:            make(map[ast.Node]int),
		skipped:             make(map[int]bool),
		potentialErrorLines: make(map[int]bool),
	}
	m.walk(tu)

	if m.graph.Len() == 0 {
		return nil, nil, ErrNoCodeUnits
	}

	lines := make([]int, 0, len(m.potentialErrorLines))
	for line := range m.potentialErrorLines {
		lines = append(lines, line)
	}
	sort.Ints(lines)

	return m.graph, &Result{
		SkippedIndices:      m.skipped,
		PotentialErrorLines: lines,
		Len:                 m.next,
	}, nil
}

func (m *mapper) walk(n ast.Node) {
	if !n.InMainFile() {
		return // rule 1: header/included content is never a code unit
	}

	if n.Kind() == ast.KindDeclRefExpr {
		m.recordReference(n)
		return // rule 4
	}

	fn, isFn := n.(*ast.FunctionDecl)
	if isFn {
		m.funcStack = append(m.funcStack, fn)
		defer func() { m.funcStack = m.funcStack[:len(m.funcStack)-1] }()
	}

	pendingMark := len(m.pending)
	frontierMark := len(m.frontier)

	for _, child := range n.Children() {
		m.walk(child)
	}

	if !n.Kind().IsCodeUnitKind() {
		return // rule 2: container, visibility marker, non-relevant expression
	}

	m.mapNode(n, isFn, pendingMark, frontierMark)
}

func (m *mapper) recordReference(n ast.Node) {
	dre := n.(*ast.DeclRefExpr)
	if dre.Decl == nil {
		return // unresolved/external identifier: never becomes a variable edge
	}
	m.pending = append(m.pending, pendingRef{decl: dre.Decl, use: n})
}

func (m *mapper) mapNode(n ast.Node, isFn bool, pendingMark, frontierMark int) {
	idx := m.next
	m.next++

	if _, already := m.identity[n]; already {
		m.skipped[idx] = true
		return
	}
	m.identity[n] = idx
	if ds, ok := n.(*ast.DeclStmt); ok {
		// A local declaration's Decl (*ast.VarDecl) is never itself walked
		// as a child (ast.DeclStmt.Children skips it, so it gets exactly
		// one unit, not two), so it would never be resolvable as a pending
		// reference's target. Alias it to the wrapping DeclStmt's index so
		// a later use still links back here (rule 4).
		m.identity[ds.Decl] = idx
	}

	if n.SourceRange().Begin.Line == m.errorLine {
		m.graph.AddCriterion(idx)
		m.addPotentialErrorLines()
	}
	if isFn && n.(*ast.FunctionDecl).IsMain {
		m.graph.AddCriterion(idx) // rule 6
	}

	snippet := string(textutil.RangeToText(m.src, n.SourceRange()))
	m.astSeq++
	m.graph.InsertNodeData(idx, m.astSeq, snippet, n.Kind())

	for _, childIdx := range m.frontier[frontierMark:] {
		m.graph.InsertStatementDependency(idx, childIdx)
	}
	m.frontier = append(m.frontier[:frontierMark], idx)

	stillPending := append([]pendingRef(nil), m.pending[:pendingMark]...)
	for _, ref := range m.pending[pendingMark:] {
		if declIdx, ok := m.identity[ref.decl]; ok {
			m.graph.InsertVariableDependency(declIdx, idx)
		} else {
			stillPending = append(stillPending, ref)
		}
	}
	m.pending = stillPending
}

// addPotentialErrorLines implements the coarse-debugger-line workaround
// of spec.md §4.4 rule 3a: every line of the enclosing function's
// signature, plus its closing brace's line, is added alongside the exact
// criterion line.
func (m *mapper) addPotentialErrorLines() {
	m.potentialErrorLines[m.errorLine] = true
	if len(m.funcStack) == 0 {
		return
	}
	enclosing := m.funcStack[len(m.funcStack)-1]
	for line := enclosing.SignatureBegin.Line; line <= enclosing.SignatureEnd.Line; line++ {
		m.potentialErrorLines[line] = true
	}
	m.potentialErrorLines[enclosing.BraceEnd.Line] = true
}
