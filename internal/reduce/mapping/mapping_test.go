package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"autopie/internal/ast"
	"autopie/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.TranslationUnit {
	t.Helper()
	tu, err := parser.ParseSource("test.c", []byte(src))
	assert.NoError(t, err)
	return tu
}

func TestMapAssignsContiguousIndices(t *testing.T) {
	tu := mustParse(t, `int main() {
    int x = 1;
    return x;
}`)
	graph, result, err := Map(tu, []byte(`int main() {
    int x = 1;
    return x;
}`), 1)
	assert.NoError(t, err)
	assert.Greater(t, result.Len, 0)

	for i := 0; i < result.Len; i++ {
		if result.SkippedIndices[i] {
			continue
		}
		assert.NotEqual(t, ast.KindInvalid, graph.NodeInfo(i).Kind, "every non-skipped index must have been recorded in the graph")
	}
}

func TestMapRejectsSourceWithNoCodeUnits(t *testing.T) {
	src := "// nothing but a comment\n"
	tu := mustParse(t, src)
	_, _, err := Map(tu, []byte(src), 1)
	assert.ErrorIs(t, err, ErrNoCodeUnits)
}

func TestMainFunctionIsAlwaysCriterion(t *testing.T) {
	src := "int main() {\n  return 0;\n}"
	tu := mustParse(t, src)
	graph, _, err := Map(tu, []byte(src), 1)
	assert.NoError(t, err)

	found := false
	for _, idx := range graph.CriterionIndices() {
		if graph.NodeInfo(idx).Kind == ast.KindFunctionDecl {
			found = true
		}
	}
	assert.True(t, found, "main's FunctionDecl unit must always be in the criterion set")
}

func TestErrorLineProducesACriterionAndPotentialErrorLines(t *testing.T) {
	src := "int f(int a) {\n  return a;\n}\n\nint main() {\n  f(1);\n  return 0;\n}"
	tu := mustParse(t, src)
	graph, result, err := Map(tu, []byte(src), 2) // the "return a;" line inside f

	assert.NoError(t, err)
	assert.Contains(t, result.PotentialErrorLines, 2)

	criterionOnLine2 := false
	for _, idx := range graph.CriterionIndices() {
		criterionOnLine2 = criterionOnLine2 || graph.NodeInfo(idx).Snippet == "return a;"
	}
	assert.True(t, criterionOnLine2)
	// The enclosing function's signature line (1) and closing brace line (3)
	// are both added to the potential error-line set alongside line 2.
	assert.Contains(t, result.PotentialErrorLines, 1)
	assert.Contains(t, result.PotentialErrorLines, 3)
}

func TestLocalDeclRefLinksToItsDeclarationByVariableEdge(t *testing.T) {
	src := "int main() {\n  int x = 1;\n  return x;\n}"
	tu := mustParse(t, src)
	graph, _, err := Map(tu, []byte(src), 1)
	assert.NoError(t, err)

	fn := tu.Decls[0].(*ast.FunctionDecl)
	declStmt := fn.Body.Stmts[0].(*ast.DeclStmt)
	retStmt := fn.Body.Stmts[1]

	var declIdx, useIdx int = -1, -1
	for i := 0; i < graph.Len()+10; i++ {
		info := graph.NodeInfo(i)
		if info.Kind == ast.KindDeclStmt {
			declIdx = i
		}
		if info.Kind == ast.KindReturnStmt {
			useIdx = i
		}
	}
	assert.NotEqual(t, -1, declIdx)
	assert.NotEqual(t, -1, useIdx)
	assert.Contains(t, graph.DescendantsByVariable(declIdx), useIdx, "the declaration must have a variable edge to the statement containing its use")

	_ = declStmt
	_ = retStmt
}

func TestUnresolvedCallNeverProducesAVariableEdge(t *testing.T) {
	src := "void f() {\n  undeclared();\n}"
	tu := mustParse(t, src)
	graph, _, err := Map(tu, []byte(src), 1)
	assert.NoError(t, err)

	for i := 0; i < graph.Len(); i++ {
		assert.Empty(t, graph.DescendantsByVariable(i), "no declaration exists for an unresolved call, so there can be no variable edges at all")
	}
}

func TestDuplicateIdentityVisitIsRecordedAsSkipped(t *testing.T) {
	// A lambda captured and also used as an initializer's sole expression
	// would revisit the same node only if the parser ever produced a DAG;
	// this grammar always produces a tree, so instead we assert the
	// invariant the skip bookkeeping exists to protect: every index up to
	// Len is accounted for as either skipped or present in the graph.
	src := "int main() {\n  return 0;\n}"
	tu := mustParse(t, src)
	graph, result, err := Map(tu, []byte(src), 1)
	assert.NoError(t, err)

	for i := 0; i < result.Len; i++ {
		inGraph := graph.NodeInfo(i).Kind != ast.KindInvalid
		if result.SkippedIndices[i] {
			continue
		}
		assert.True(t, inGraph)
	}
}
