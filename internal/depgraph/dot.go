package depgraph

import (
	"fmt"
	"io"
	"sort"

	"autopie/internal/textutil"
)

// WriteDot renders the dependency graph in the stable GraphViz format of
// spec.md §6: statement edges default-colored, variable edges maroon,
// node labels carrying the escaped snippet and an xlabel with the
// traversal index, AST id, and kind.
func (g *Graph) WriteDot(w io.Writer) error {
	if _, err := io.WriteString(w, "digraph g {\nforcelabels=true;\nrankdir=TD;\n"); err != nil {
		return err
	}

	indices := make([]int, 0, len(g.nodes))
	for idx := range g.nodes {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	for _, idx := range indices {
		info := g.nodes[idx]
		if _, err := fmt.Fprintf(w, "%d[label=\"%s\", xlabel=\"No. %d (%d), %s\", color=\"%s\"];\n",
			idx, textutil.EscapeQuotes(info.Snippet), idx, info.ASTID, info.Kind, info.Color); err != nil {
			return err
		}
	}

	parents := make([]int, 0, len(g.stmtEdges))
	for p := range g.stmtEdges {
		parents = append(parents, p)
	}
	sort.Ints(parents)
	for _, p := range parents {
		children := append([]int(nil), g.stmtEdges[p]...)
		sort.Ints(children)
		for _, c := range children {
			if _, err := fmt.Fprintf(w, "%d -> %d;\n", p, c); err != nil {
				return err
			}
		}
	}

	decls := make([]int, 0, len(g.varEdges))
	for d := range g.varEdges {
		decls = append(decls, d)
	}
	sort.Ints(decls)
	for _, d := range decls {
		uses := append([]int(nil), g.varEdges[d]...)
		sort.Ints(uses)
		for _, u := range uses {
			if _, err := fmt.Fprintf(w, "%d -> %d [color=maroon];\n", d, u); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, "}\n")
	return err
}
