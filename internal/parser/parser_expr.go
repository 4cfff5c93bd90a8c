package parser

import (
	"autopie/internal/ast"
	"autopie/internal/lexer"
)

// precedence tables for the Pratt parser. Higher binds tighter. Only the
// operators spec.md §3 cares about distinguishing (assignment vs. a
// generic BinaryExpr) need individual node kinds; every binary operator
// that binds tighter than assignment collapses into BinaryExpr, which is
// never itself a code unit (ast.Kind.IsRelevantExpr).
var binaryPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7,
	"<<": 8, ">>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

var compoundAssignOps = map[string]bool{
	"+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
}

var unaryPrefixOps = map[string]bool{
	"!": true, "~": true, "-": true, "+": true, "*": true, "&": true,
	"++": true, "--": true,
}

// parseExpr parses a full expression, including assignment and the
// ternary conditional, at the lowest precedence.
func (p *Parser) parseExpr() (ast.Node, error) {
	return p.parseAssignExpr()
}

// parseAssignExpr handles `=` and the compound assignment operators,
// right-associative, with the ternary conditional as its operand.
func (p *Parser) parseAssignExpr() (ast.Node, error) {
	begin := p.cur().Pos
	lhs, err := p.parseConditionalExpr()
	if err != nil {
		return nil, err
	}

	if p.atText("=") {
		p.advance()
		rhs, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		n := &ast.AssignExpr{LHS: lhs, RHS: rhs}
		n.Range = ast.Range{Begin: begin, End: rhs.SourceRange().End}
		return n, nil
	}

	if op := p.cur().Text; compoundAssignOps[op] && p.at(lexer.Punct) {
		p.advance()
		rhs, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		n := &ast.CompoundAssignExpr{Op: op, LHS: lhs, RHS: rhs}
		n.Range = ast.Range{Begin: begin, End: rhs.SourceRange().End}
		return n, nil
	}

	return lhs, nil
}

// parseConditionalExpr handles `cond ? then : else`.
func (p *Parser) parseConditionalExpr() (ast.Node, error) {
	begin := p.cur().Pos
	cond, err := p.parseBinaryExpr(0)
	if err != nil {
		return nil, err
	}
	if !p.atText("?") {
		return cond, nil
	}
	p.advance()
	then, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	elseExpr, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	n := &ast.ConditionalExpr{Cond: cond, Then: then, Else: elseExpr}
	n.Range = ast.Range{Begin: begin, End: elseExpr.SourceRange().End}
	return n, nil
}

// parseBinaryExpr is the precedence-climbing core. Every level below the
// conditional collapses into ast.BinaryExpr: spec.md §3 only names a
// specific subset of expression kinds as "relevant" (code units), and a
// generic binary operator is not one of them (Open Question (b),
// DESIGN.md), so there is no need for per-operator node types here.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Node, error) {
	lhs, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		op := p.cur().Text
		prec, ok := binaryPrecedence[op]
		if !ok || !p.at(lexer.Punct) || prec < minPrec {
			return lhs, nil
		}
		p.advance()
		rhs, err := p.parseBinaryExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		n := &ast.BinaryExpr{Op: op, LHS: lhs, RHS: rhs}
		n.Range = ast.Range{Begin: lhs.SourceRange().Begin, End: rhs.SourceRange().End}
		lhs = n
	}
}

// parseUnaryExpr handles prefix operators, `new`/`delete`, and a lambda
// introducer, falling through to postfix/primary.
func (p *Parser) parseUnaryExpr() (ast.Node, error) {
	begin := p.cur().Pos

	if p.atText("new") {
		return p.parseNewExpr(begin)
	}
	if p.atText("delete") {
		return p.parseDeleteExpr(begin)
	}
	if p.atText("[") {
		return p.parseLambdaExpr(begin)
	}

	if op := p.cur().Text; p.at(lexer.Punct) && unaryPrefixOps[op] {
		p.advance()
		operand, err := p.parseUnaryExpr()
		if err != nil {
			return nil, err
		}
		n := &ast.UnaryExpr{Op: op, Operand: operand}
		n.Range = ast.Range{Begin: begin, End: operand.SourceRange().End}
		return n, nil
	}

	return p.parsePostfixExpr()
}

func (p *Parser) parseNewExpr(begin ast.Position) (ast.Node, error) {
	p.advance() // "new"
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	n := &ast.NewExpr{Type: typ}
	n.Range.Begin = begin
	n.Range.End = p.cur().Pos

	if p.atText("(") {
		p.advance()
		for !p.atText(")") {
			arg, err := p.parseAssignExpr()
			if err != nil {
				return nil, err
			}
			n.Args = append(n.Args, arg)
			if p.atText(",") {
				p.advance()
				continue
			}
			break
		}
		end, err := p.expect(")")
		if err != nil {
			return nil, err
		}
		n.Range.End = end.End
	}
	return n, nil
}

func (p *Parser) parseDeleteExpr(begin ast.Position) (ast.Node, error) {
	p.advance() // "delete"
	array := false
	if p.atText("[") {
		p.advance()
		if _, err := p.expect("]"); err != nil {
			return nil, err
		}
		array = true
	}
	target, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	n := &ast.DeleteExpr{Target: target, Array: array}
	n.Range = ast.Range{Begin: begin, End: target.SourceRange().End}
	return n, nil
}

// parseLambdaExpr parses a `[captures](params) { body }` lambda. Captures
// are skipped; they never feed a declaration reference the mapping pass
// needs, since a lambda's own body is parsed in a fresh scope chained to
// the enclosing one (closures resolve exactly like nested blocks do).
func (p *Parser) parseLambdaExpr(begin ast.Position) (ast.Node, error) {
	p.advance() // "["
	for !p.atText("]") {
		p.advance()
	}
	if _, err := p.expect("]"); err != nil {
		return nil, err
	}

	n := &ast.LambdaExpr{}
	n.Range.Begin = begin

	p.pushScope()
	defer p.popScope()

	if p.atText("(") {
		p.advance()
		for !p.atText(")") {
			ptyp, err := p.parseType()
			if err != nil {
				return nil, err
			}
			pname := ""
			if p.at(lexer.Ident) {
				pname = p.advance().Text
			}
			param := &ast.Param{Name: pname, Type: ptyp}
			n.Params = append(n.Params, param)
			if pname != "" {
				p.scope.define(pname, param)
			}
			if p.atText(",") {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
	}

	body, err := p.parseCompoundStmt()
	if err != nil {
		return nil, err
	}
	n.Body = body
	n.Range.End = body.Range.End
	return n, nil
}

// parsePostfixExpr handles call, member access, array subscript, and
// postfix increment/decrement, left-associatively.
func (p *Parser) parsePostfixExpr() (ast.Node, error) {
	begin := p.cur().Pos
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.atText("("):
			p.advance()
			call := &ast.CallExpr{Callee: expr}
			for !p.atText(")") {
				arg, err := p.parseAssignExpr()
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
				if p.atText(",") {
					p.advance()
					continue
				}
				break
			}
			end, err := p.expect(")")
			if err != nil {
				return nil, err
			}
			call.Range = ast.Range{Begin: begin, End: end.End}
			expr = call

		case p.atText(".") || p.atText("->"):
			arrow := p.atText("->")
			p.advance()
			nameTok, err := p.expectIdent()
			if err != nil {
				return nil, err
			}
			m := &ast.MemberExpr{Base: expr, Field: nameTok.Text, Arrow: arrow}
			m.Range = ast.Range{Begin: begin, End: nameTok.End}
			expr = m

		case p.atText("["):
			p.advance()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			end, err := p.expect("]")
			if err != nil {
				return nil, err
			}
			// Modelled as a BinaryExpr("[]", base, index): subscript is not
			// one of the relevant expression kinds spec.md §3 names, so it
			// never needs to be a code unit in its own right.
			n := &ast.BinaryExpr{Op: "[]", LHS: expr, RHS: index}
			n.Range = ast.Range{Begin: begin, End: end.End}
			expr = n

		case p.atText("++") || p.atText("--"):
			op := p.advance()
			n := &ast.UnaryExpr{Op: op.Text, Postfix: true, Operand: expr}
			n.Range = ast.Range{Begin: begin, End: op.End}
			expr = n

		default:
			return expr, nil
		}
	}
}

// parsePrimaryExpr parses a literal, identifier (resolved to a
// DeclRefExpr against the lexical scope stack), or parenthesized
// sub-expression.
func (p *Parser) parsePrimaryExpr() (ast.Node, error) {
	tok := p.cur()

	switch {
	case tok.Kind == lexer.Number || tok.Kind == lexer.String || tok.Kind == lexer.Char:
		p.advance()
		n := &ast.LiteralExpr{Text: tok.Text}
		n.Range = ast.Range{Begin: tok.Pos, End: tok.End}
		return n, nil

	case tok.Kind == lexer.Ident:
		p.advance()
		if keywordLiteral(tok.Text) {
			n := &ast.LiteralExpr{Text: tok.Text}
			n.Range = ast.Range{Begin: tok.Pos, End: tok.End}
			return n, nil
		}
		n := &ast.DeclRefExpr{Name: tok.Text, Decl: p.scope.resolve(tok.Text)}
		n.Range = ast.Range{Begin: tok.Pos, End: tok.End}
		return n, nil

	case p.atText("("):
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(")")
		if err != nil {
			return nil, err
		}
		n := &ast.ParenExpr{Inner: inner}
		n.Range = ast.Range{Begin: tok.Pos, End: end.End}
		return n, nil

	default:
		return nil, p.errorf("expected expression, got %q", tok.Text)
	}
}

// keywordLiteral reports whether an identifier-shaped token is actually a
// literal keyword (`true`, `false`, `nullptr`, ...), rather than a name
// that should be resolved against the scope stack.
func keywordLiteral(text string) bool {
	switch text {
	case "true", "false", "nullptr", "NULL", "this":
		return true
	default:
		return false
	}
}
