package ast

// DefaultColor returns the GraphViz diagnostic color for a freshly mapped
// node of this kind, before any criterion recoloring is applied (spec.md
// §4.3, §6): declarations are "crimson", calls are "goldenrod", everything
// else mapped is "darkorchid". Criterion nodes are recolored to "green" by
// the dependency graph itself once added to the criterion set.
func (k Kind) DefaultColor() string {
	switch k {
	case KindFunctionDecl, KindRecordDecl, KindFieldDecl, KindVarDecl:
		return "crimson"
	case KindCallExpr:
		return "goldenrod"
	default:
		return "darkorchid"
	}
}
