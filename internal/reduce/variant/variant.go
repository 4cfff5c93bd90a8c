// Package variant implements the printing pass of spec.md §4.5: given a
// bitmask, it re-walks the parse tree in the same post-order the mapping
// pass used, deletes or replaces the ranges of 0-bit units, and produces
// the resulting source buffer along with the bitmask's adjusted potential
// error-line list.
package variant

import (
	"bytes"
	"sort"

	"autopie/internal/ast"
	"autopie/internal/bitmask"
	"autopie/internal/depgraph"
	"autopie/internal/reduce/mapping"
)

// edit is a half-open byte range of the original buffer replaced by a
// fixed payload. Edits never overlap: a node is only eligible for
// deletion when every one of its statement-parents survives, so a
// deleted ancestor's range always subsumes its descendants' ranges
// without either being independently recorded.
type edit struct {
	begin, end int
	replace    []byte
}

type printer struct {
	src     []byte
	graph   *depgraph.Graph
	mask    *bitmask.Mask
	skipped map[int]bool

	next  int
	edits []edit
	lines []int // mutable copy of the potential error-line list
}

// Print applies mask to tu, returning the resulting source text and the
// adjusted potential error-line list (spec.md §4.5). tu and src must be
// the same tree/buffer the mapping pass that produced res was run
// against; mask must have length res.Len.
func Print(tu *ast.TranslationUnit, src []byte, graph *depgraph.Graph, res *mapping.Result, mask *bitmask.Mask) ([]byte, []int, error) {
	p := &printer{
		src:     src,
		graph:   graph,
		mask:    mask,
		skipped: res.SkippedIndices,
		lines:   append([]int(nil), res.PotentialErrorLines...),
	}
	p.walk(tu)
	return p.apply(), p.lines, nil
}

func (p *printer) walk(n ast.Node) {
	if !n.InMainFile() {
		return
	}
	if n.Kind() == ast.KindDeclRefExpr {
		return
	}
	for _, child := range n.Children() {
		p.walk(child)
	}
	if !n.Kind().IsCodeUnitKind() {
		return
	}

	idx := p.next
	p.next++
	if p.skipped[idx] {
		return
	}

	if p.mask.Get(idx) {
		return // kept: nothing to do
	}
	for _, parent := range p.graph.DirectStatementParents(idx) {
		if parent < p.mask.Len() && !p.mask.Get(parent) {
			return // an ancestor already covers this range
		}
	}

	rng := n.SourceRange()
	begin, end := rng.Begin.Offset, rng.End.Offset

	var replacement []byte
	switch n.Kind() {
	case ast.KindCompoundStmt, ast.KindNullStmt:
		replacement = []byte(";")
	default:
		replacement = nil
	}
	p.edits = append(p.edits, edit{begin: begin, end: end, replace: replacement})

	newlines := bytes.Count(p.src[begin:end], []byte{'\n'})
	deletionLine := n.SourceRange().Begin.Line
	for i, line := range p.lines {
		if line <= deletionLine {
			continue
		}
		gap := line - deletionLine
		dec := newlines
		if gap < dec {
			dec = gap
		}
		p.lines[i] = line - dec
	}
}

func (p *printer) apply() []byte {
	sort.Slice(p.edits, func(i, j int) bool { return p.edits[i].begin < p.edits[j].begin })

	var out bytes.Buffer
	out.Grow(len(p.src))
	cursor := 0
	for _, e := range p.edits {
		if e.begin < cursor {
			continue // defensive: overlapping edits should not occur
		}
		out.Write(p.src[cursor:e.begin])
		out.Write(e.replace)
		cursor = e.end
	}
	out.Write(p.src[cursor:])
	return out.Bytes()
}
