// Package ast defines the parse-tree node types the reducer core operates
// on. The tree is produced by internal/parser for a representative C-like
// subset; the rest of the reducer (mapping, depgraph, variant, search,
// oracle) only depends on the Node interface below, so a real Clang-backed
// parser could be substituted behind the same boundary without touching
// the core.
package ast

// Position is a single point in the original source file.
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset
}

// Range is a half-open byte range [Begin, End) into the source buffer.
// End points one past the last byte of the node's last token; the parser
// sets it from that token's own End, so no later correction is applied.
type Range struct {
	Begin Position
	End   Position
}

// Kind discriminates the syntactic category of a Node. Only a subset of
// kinds are code units (see IsCodeUnitKind); the rest exist to give the
// tree shape (TranslationUnit) or are structural leaves skipped by the
// mapping pass (Visibility, a local VarDecl that has a DeclStmt twin).
type Kind int

const (
	KindInvalid Kind = iota

	// Container / skipped.
	KindTranslationUnit
	KindVisibility

	// Declarations (code units).
	KindFunctionDecl
	KindRecordDecl
	KindFieldDecl
	KindVarDecl // top-level / member variable declaration

	// Statements (code units).
	KindCompoundStmt
	KindIfStmt
	KindWhileStmt
	KindForStmt
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindDeclStmt // wraps a local VarDecl; the VarDecl itself is not a unit
	KindExprStmt
	KindNullStmt

	// Relevant expressions (code units).
	KindCallExpr
	KindAssignExpr
	KindCompoundAssignExpr
	KindConditionalExpr
	KindNewExpr
	KindDeleteExpr
	KindLambdaExpr
	KindUnaryExpr

	// Non-relevant expressions: never code units, skipped by the mapping
	// pass, but KindDeclRefExpr still feeds the pending-reference list.
	KindBinaryExpr
	KindDeclRefExpr
	KindMemberExpr
	KindLiteralExpr
	KindParenExpr
	KindIdent
)

func (k Kind) String() string {
	switch k {
	case KindTranslationUnit:
		return "TranslationUnit"
	case KindVisibility:
		return "Visibility"
	case KindFunctionDecl:
		return "FunctionDecl"
	case KindRecordDecl:
		return "RecordDecl"
	case KindFieldDecl:
		return "FieldDecl"
	case KindVarDecl:
		return "VarDecl"
	case KindCompoundStmt:
		return "CompoundStmt"
	case KindIfStmt:
		return "IfStmt"
	case KindWhileStmt:
		return "WhileStmt"
	case KindForStmt:
		return "ForStmt"
	case KindReturnStmt:
		return "ReturnStmt"
	case KindBreakStmt:
		return "BreakStmt"
	case KindContinueStmt:
		return "ContinueStmt"
	case KindDeclStmt:
		return "DeclStmt"
	case KindExprStmt:
		return "ExprStmt"
	case KindNullStmt:
		return "NullStmt"
	case KindCallExpr:
		return "CallExpr"
	case KindAssignExpr:
		return "AssignExpr"
	case KindCompoundAssignExpr:
		return "CompoundAssignExpr"
	case KindConditionalExpr:
		return "ConditionalExpr"
	case KindNewExpr:
		return "NewExpr"
	case KindDeleteExpr:
		return "DeleteExpr"
	case KindLambdaExpr:
		return "LambdaExpr"
	case KindUnaryExpr:
		return "UnaryExpr"
	case KindBinaryExpr:
		return "BinaryExpr"
	case KindDeclRefExpr:
		return "DeclRefExpr"
	case KindMemberExpr:
		return "MemberExpr"
	case KindLiteralExpr:
		return "LiteralExpr"
	case KindParenExpr:
		return "ParenExpr"
	case KindIdent:
		return "Ident"
	default:
		return "Invalid"
	}
}

// IsRelevantExpr reports whether an expression kind is one of the "named
// subset of expressions ... where deleting them would produce a
// syntactically plausible result" of spec.md §3. Binary operators other
// than assignment are deliberately excluded (Open Question (b) in
// DESIGN.md): a bare `a + b;` expression statement is reachable as an
// ExprStmt unit, but the BinaryExpr node itself never is.
func (k Kind) IsRelevantExpr() bool {
	switch k {
	case KindCallExpr, KindAssignExpr, KindCompoundAssignExpr, KindConditionalExpr,
		KindNewExpr, KindDeleteExpr, KindLambdaExpr, KindUnaryExpr:
		return true
	default:
		return false
	}
}

// IsCodeUnitKind reports whether a node of this kind may become a code
// unit, pending the mapping pass's other exclusion rules (included file,
// duplicate identity, local VarDecl with a DeclStmt twin).
func (k Kind) IsCodeUnitKind() bool {
	switch k {
	case KindFunctionDecl, KindRecordDecl, KindFieldDecl, KindVarDecl,
		KindCompoundStmt, KindIfStmt, KindWhileStmt, KindForStmt, KindReturnStmt,
		KindBreakStmt, KindContinueStmt, KindDeclStmt, KindExprStmt, KindNullStmt:
		return true
	default:
		return k.IsRelevantExpr()
	}
}

// Node is implemented by every node in the parse tree. Identity is the
// pointer identity of the concrete type: Go pointers are already stable
// and unique, standing in for the original's `node->getId()`.
type Node interface {
	Kind() Kind
	SourceRange() Range
	// InMainFile reports whether this node's Begin position belongs to the
	// file under reduction, as opposed to an included/synthetic header
	// (spec.md §4.4 rule 1, scenario S5).
	InMainFile() bool
	// Children returns the node's direct syntactic children in source
	// order, for the post-order walk shared by the mapping and printing
	// passes.
	Children() []Node
}
