// Package depgraph implements the code-unit dependency graph of spec.md
// §3/§4.3: nodes keyed by traversal index, two edge relations (statement
// containment and variable use), a criterion set, and the character-count
// invariant used to compute a bitmask's surviving ratio.
package depgraph

import "autopie/internal/ast"

// NodeInfo is the debug/diagnostic payload carried per traversal index,
// mirroring the original's `Node` struct (astId, dumpColor, codeSnippet,
// nodeTypeName; spec.md §3).
type NodeInfo struct {
	ASTID      int
	CharCount  int
	Color      string
	Snippet    string
	Kind       ast.Kind
}

// Graph is built once per reduction run by the mapping pass and is
// immutable thereafter (spec.md §3 "Lifecycle", §9 "Singleton global
// state: avoided" — ownership is by value, keyed on traversal index, no
// pointers into the parse tree are retained).
type Graph struct {
	nodes map[int]NodeInfo

	criterion map[int]bool

	stmtEdges   map[int][]int // parent -> children
	stmtInverse map[int][]int // child -> parents
	varEdges    map[int][]int // declaration -> uses
	varInverse  map[int][]int // use -> declarations

	descendantsCache map[int][]int

	totalChars int // 0 until first TotalCharacterCount call, then fixed
}

// New returns an empty graph ready for the mapping pass to populate.
func New() *Graph {
	return &Graph{
		nodes:            make(map[int]NodeInfo),
		criterion:        make(map[int]bool),
		stmtEdges:        make(map[int][]int),
		stmtInverse:      make(map[int][]int),
		varEdges:         make(map[int][]int),
		varInverse:       make(map[int][]int),
		descendantsCache: make(map[int][]int),
	}
}

// AddCriterion marks a traversal index as belonging to the criterion set
// and recolors it green for diagnostics (spec.md §4.3 "Criterion addition
// recolours the node").
func (g *Graph) AddCriterion(idx int) {
	g.criterion[idx] = true
	if info, ok := g.nodes[idx]; ok {
		info.Color = "green"
		g.nodes[idx] = info
	}
}

// IsCriterion reports whether idx is a criterion unit.
func (g *Graph) IsCriterion(idx int) bool {
	return g.criterion[idx]
}

// CriterionIndices returns the criterion set as a slice, for callers that
// need to enumerate it (e.g. the search strategies seeding their initial
// "always kept" bits).
func (g *Graph) CriterionIndices() []int {
	out := make([]int, 0, len(g.criterion))
	for idx := range g.criterion {
		out = append(out, idx)
	}
	return out
}

func insertEdge(forward, inverse map[int][]int, parent, child int) {
	if parent == child {
		return
	}
	for _, existing := range forward[parent] {
		if existing == child {
			// "The dependency has already been made, no need to reintroduce it."
			return
		}
	}
	forward[parent] = append(forward[parent], child)
	inverse[child] = append(inverse[child], parent)
}

// InsertStatementDependency records "parent syntactically contains child":
// deleting parent requires deleting child too (spec.md §4.3).
func (g *Graph) InsertStatementDependency(parent, child int) {
	insertEdge(g.stmtEdges, g.stmtInverse, parent, child)
}

// InsertVariableDependency records "use references this declaration":
// deleting decl requires deleting every kept use (spec.md §4.3).
func (g *Graph) InsertVariableDependency(decl, use int) {
	insertEdge(g.varEdges, g.varInverse, decl, use)
}

// InsertNodeData records or updates the debug payload for a traversal
// index. Re-entering an index that is already present keeps its earlier
// color (criterion recoloring must survive a later re-insertion) and
// replaces everything else, mirroring the original's
// InsertNodeDataForDebugging (spec.md §4.3 "re-enter path").
func (g *Graph) InsertNodeData(idx, astID int, snippet string, kind ast.Kind) {
	color := kind.DefaultColor()
	if existing, ok := g.nodes[idx]; ok {
		color = existing.Color
	}
	g.nodes[idx] = NodeInfo{
		ASTID:     astID,
		CharCount: len(snippet),
		Color:     color,
		Snippet:   snippet,
		Kind:      kind,
	}
}

// NodeInfo returns the debug payload for a traversal index.
func (g *Graph) NodeInfo(idx int) NodeInfo {
	return g.nodes[idx]
}

// Len returns the number of mapped (non-skipped) nodes, i.e. the bitmask
// length the search strategies must operate over.
func (g *Graph) Len() int {
	return len(g.nodes)
}

func bfs(start int, edges map[int][]int) []int {
	queue := []int{start}
	var result []int
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range edges[current] {
			queue = append(queue, next)
			result = append(result, next)
		}
	}
	return result
}

// DescendantsByStatement BFS-searches for all statement-dependent
// descendants of a node (spec.md §4.3).
func (g *Graph) DescendantsByStatement(start int) []int {
	return bfs(start, g.stmtEdges)
}

// DescendantsByVariable BFS-searches for all variable-dependent
// descendants of a node (spec.md §4.3).
func (g *Graph) DescendantsByVariable(start int) []int {
	return bfs(start, g.varEdges)
}

// DescendantsUnion returns the union of statement- and variable-dependent
// descendants, cached per node since the search queries it once per bit
// per bitmask (spec.md §4.3 "Rationale").
func (g *Graph) DescendantsUnion(start int) []int {
	if cached, ok := g.descendantsCache[start]; ok {
		return cached
	}
	union := append(g.DescendantsByStatement(start), g.DescendantsByVariable(start)...)
	g.descendantsCache[start] = union
	return union
}

// DirectStatementParents returns the immediate statement-parents of a
// node (the original's GetParentNodes).
func (g *Graph) DirectStatementParents(start int) []int {
	return g.stmtInverse[start]
}

// TotalCharacterCount computes the graph's corrected total character
// count on first call, correcting each parent's count by subtracting its
// direct statement-children's raw counts so that overlapping nested
// ranges are not double counted (spec.md §3 "Character-count invariant").
// The result, and the corrected per-node counts, are fixed thereafter.
func (g *Graph) TotalCharacterCount() int {
	if g.totalChars != 0 {
		return g.totalChars
	}

	corrected := make(map[int]int, len(g.stmtEdges))
	for parent, children := range g.stmtEdges {
		count := g.nodes[parent].CharCount
		for _, child := range children {
			count -= g.nodes[child].CharCount
		}
		corrected[parent] = count
	}
	for idx, count := range corrected {
		info := g.nodes[idx]
		info.CharCount = count
		g.nodes[idx] = info
	}

	total := 0
	for _, info := range g.nodes {
		total += info.CharCount
	}
	g.totalChars = total
	return g.totalChars
}
