package depgraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"autopie/internal/ast"
)

func TestInsertNodeDataDefaultsColorFromKind(t *testing.T) {
	g := New()
	g.InsertNodeData(0, 1, "foo();", ast.KindCallExpr)
	assert.Equal(t, ast.KindCallExpr.DefaultColor(), g.NodeInfo(0).Color)
}

func TestAddCriterionRecolorsGreenAndSurvivesReentry(t *testing.T) {
	g := New()
	g.InsertNodeData(0, 1, "foo();", ast.KindCallExpr)
	g.AddCriterion(0)
	assert.True(t, g.IsCriterion(0))
	assert.Equal(t, "green", g.NodeInfo(0).Color)

	// Re-entering the same index must not clobber the criterion color.
	g.InsertNodeData(0, 1, "foo();", ast.KindCallExpr)
	assert.Equal(t, "green", g.NodeInfo(0).Color)
}

func TestInsertEdgeIsIdempotentAndIgnoresSelfLoops(t *testing.T) {
	g := New()
	g.InsertStatementDependency(0, 1)
	g.InsertStatementDependency(0, 1) // duplicate
	g.InsertStatementDependency(0, 0) // self-loop

	assert.Equal(t, []int{1}, g.DescendantsByStatement(0))
}

func TestDescendantsByStatementIsTransitive(t *testing.T) {
	g := New()
	g.InsertStatementDependency(0, 1)
	g.InsertStatementDependency(1, 2)

	desc := g.DescendantsByStatement(0)
	assert.ElementsMatch(t, []int{1, 2}, desc)
}

func TestDescendantsUnionCombinesBothRelations(t *testing.T) {
	g := New()
	g.InsertStatementDependency(0, 1)
	g.InsertVariableDependency(0, 2)

	union := g.DescendantsUnion(0)
	assert.ElementsMatch(t, []int{1, 2}, union)
}

func TestDirectStatementParents(t *testing.T) {
	g := New()
	g.InsertStatementDependency(0, 1)
	g.InsertStatementDependency(2, 1)

	assert.ElementsMatch(t, []int{0, 2}, g.DirectStatementParents(1))
}

func TestTotalCharacterCountSubtractsNestedChildren(t *testing.T) {
	g := New()
	g.InsertNodeData(0, 1, "if (x) { y(); }", ast.KindIfStmt) // 15 chars
	g.InsertNodeData(1, 2, "y();", ast.KindExprStmt)          // 4 chars
	g.InsertStatementDependency(0, 1)

	total := g.TotalCharacterCount()
	assert.Equal(t, 15, total, "parent's raw count minus child's raw count, plus the child's own count, must equal the raw total")

	// The correction is also visible per-node.
	assert.Equal(t, 11, g.NodeInfo(0).CharCount)
	assert.Equal(t, 4, g.NodeInfo(1).CharCount)

	assert.Equal(t, 15, g.TotalCharacterCount(), "the total is fixed after the first computation")
}

func TestWriteDotProducesStableOutput(t *testing.T) {
	g := New()
	g.InsertNodeData(0, 1, `say("hi")`, ast.KindCallExpr)
	g.AddCriterion(0)
	g.InsertNodeData(1, 2, "x", ast.KindDeclRefExpr)
	g.InsertStatementDependency(0, 1)
	g.InsertVariableDependency(0, 1)

	var b strings.Builder
	assert.NoError(t, g.WriteDot(&b))
	out := b.String()

	assert.Contains(t, out, "digraph g {")
	assert.Contains(t, out, `label="say(\"hi\")"`)
	assert.Contains(t, out, `color="green"`)
	assert.Contains(t, out, "0 -> 1;")
	assert.Contains(t, out, "0 -> 1 [color=maroon];")
}
