package bitmask

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"autopie/internal/ast"
	"autopie/internal/depgraph"
)

func TestNewMaskIsAllZero(t *testing.T) {
	m := New(4)
	assert.Equal(t, "0000", m.Stringify())
	assert.False(t, m.IsFull())
}

func TestFullMaskIsAllOne(t *testing.T) {
	m := Full(4)
	assert.Equal(t, "1111", m.Stringify())
	assert.True(t, m.IsFull())
}

func TestSetAndGet(t *testing.T) {
	m := New(3)
	m.Set(1, true)
	assert.True(t, m.Get(1))
	assert.False(t, m.Get(0))
	assert.False(t, m.Get(2))
}

func TestCloneIsIndependent(t *testing.T) {
	m := New(3)
	clone := m.Clone()
	clone.Set(0, true)
	assert.False(t, m.Get(0), "mutating the clone must not affect the original")
	assert.True(t, clone.Get(0))
}

func TestIncrementRipplesFromLeastSignificantBit(t *testing.T) {
	m := New(3) // 000
	m.Increment()
	assert.Equal(t, "001", m.Stringify())
	m.Increment()
	assert.Equal(t, "010", m.Stringify())
	m.Increment()
	assert.Equal(t, "011", m.Stringify())
}

func TestIncrementWrapsAroundOnOverflow(t *testing.T) {
	m := Full(3) // 111
	m.Increment()
	assert.Equal(t, "000", m.Stringify(), "incrementing a full mask must wrap silently to all-zero")
}

func buildLinearGraph(t *testing.T) *depgraph.Graph {
	t.Helper()
	g := depgraph.New()
	// 0 -> 1 -> 2 (statement containment). Each range nests its child's,
	// so raw counts are 30, 20 and 10 chars, 10 each once corrected.
	snippets := []string{
		"012345678901234567890123456789",
		"01234567890123456789",
		"0123456789",
	}
	for i, s := range snippets {
		g.InsertNodeData(i, i, s, ast.KindExprStmt)
	}
	g.InsertStatementDependency(0, 1)
	g.InsertStatementDependency(1, 2)
	return g
}

func TestValidateRejectsMaskMissingACriterionBit(t *testing.T) {
	g := buildLinearGraph(t)
	g.AddCriterion(2)

	m := New(3)
	m.Set(0, true)
	m.Set(1, true)
	// bit 2 (criterion) left at 0

	ok, _ := Validate(m, g, Lax)
	assert.False(t, ok, "a mask that clears a criterion bit must be invalid")
}

func TestValidateStrictRejectsSurvivingDescendant(t *testing.T) {
	g := buildLinearGraph(t)
	g.AddCriterion(2)

	m := New(3)
	m.Set(2, true)
	m.Set(1, true) // deleted parent 0, but kept child 1: invalid in Strict mode
	m.Set(0, false)

	ok, _ := Validate(m, g, Strict)
	assert.False(t, ok, "strict mode must reject a deleted node whose descendant survives")
}

func TestValidateLaxAcceptsSurvivingDescendant(t *testing.T) {
	g := buildLinearGraph(t)
	g.AddCriterion(2)

	m := New(3)
	m.Set(2, true)
	m.Set(1, true)
	m.Set(0, false)

	ok, _ := Validate(m, g, Lax)
	assert.True(t, ok, "lax mode leaves descendant bookkeeping to the printing pass")
}

func TestValidateComputesSurvivingRatio(t *testing.T) {
	g := buildLinearGraph(t)
	g.AddCriterion(0)

	full := Full(3)
	ok, ratio := Validate(full, g, Strict)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, ratio, 0.0001, "keeping every node must yield a ratio of 1")

	partial := New(3)
	partial.Set(0, true)
	ok, ratio = Validate(partial, g, Strict)
	assert.True(t, ok)
	assert.Greater(t, ratio, 0.0)
	assert.Less(t, ratio, 1.0)
}
