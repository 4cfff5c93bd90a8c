package parser

import (
	"autopie/internal/ast"
	"autopie/internal/lexer"
)

func (p *Parser) parseCompoundStmt() (*ast.CompoundStmt, error) {
	begin, err := p.expect("{")
	if err != nil {
		return nil, err
	}
	cs := &ast.CompoundStmt{}
	cs.Range.Begin = begin.Pos

	p.pushScope()
	defer p.popScope()

	for !p.atText("}") {
		if p.at(lexer.EOF) {
			return nil, p.errorf("unterminated compound statement")
		}
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		cs.Stmts = append(cs.Stmts, stmt)
	}
	end, err := p.expect("}")
	if err != nil {
		return nil, err
	}
	cs.Range.End = end.End
	return cs, nil
}

func (p *Parser) parseStmt() (ast.Node, error) {
	switch {
	case p.atText("{"):
		return p.parseCompoundStmt()
	case p.atText("if"):
		return p.parseIfStmt()
	case p.atText("while"):
		return p.parseWhileStmt()
	case p.atText("for"):
		return p.parseForStmt()
	case p.atText("return"):
		return p.parseReturnStmt()
	case p.atText("break"):
		begin := p.advance()
		end, err := p.expect(";")
		if err != nil {
			return nil, err
		}
		n := &ast.BreakStmt{}
		n.Range = ast.Range{Begin: begin.Pos, End: end.End}
		return n, nil
	case p.atText("continue"):
		begin := p.advance()
		end, err := p.expect(";")
		if err != nil {
			return nil, err
		}
		n := &ast.ContinueStmt{}
		n.Range = ast.Range{Begin: begin.Pos, End: end.End}
		return n, nil
	case p.atText(";"):
		tok := p.advance()
		n := &ast.NullStmt{}
		n.Range = ast.Range{Begin: tok.Pos, End: tok.End}
		return n, nil
	case p.looksLikeType():
		return p.parseLocalDeclStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLocalDeclStmt() (*ast.DeclStmt, error) {
	begin := p.cur().Pos
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Name: nameTok.Text, Type: typ}
	decl.Range.Begin = begin
	if p.atText("=") {
		p.advance()
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	end, err := p.expect(";")
	if err != nil {
		return nil, err
	}
	decl.Range.End = end.End
	p.scope.define(decl.Name, decl)

	stmt := &ast.DeclStmt{Decl: decl}
	stmt.Range = decl.Range
	return stmt, nil
}

func (p *Parser) expectIdent() (lexer.Token, error) {
	if !p.at(lexer.Ident) {
		return lexer.Token{}, p.errorf("expected identifier, got %q", p.cur().Text)
	}
	return p.advance(), nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	begin := p.cur().Pos
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	end, err := p.expect(";")
	if err != nil {
		return nil, err
	}
	n := &ast.ExprStmt{Expr: expr}
	n.Range = ast.Range{Begin: begin, End: end.End}
	return n, nil
}

func (p *Parser) parseIfStmt() (*ast.IfStmt, error) {
	begin := p.advance().Pos // "if"
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	n := &ast.IfStmt{Cond: cond, Then: then}
	n.Range.Begin = begin
	n.Range.End = then.SourceRange().End
	if p.atText("else") {
		p.advance()
		elseStmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		n.Else = elseStmt
		n.Range.End = elseStmt.SourceRange().End
	}
	return n, nil
}

func (p *Parser) parseWhileStmt() (*ast.WhileStmt, error) {
	begin := p.advance().Pos // "while"
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	n := &ast.WhileStmt{Cond: cond, Body: body}
	n.Range = ast.Range{Begin: begin, End: body.SourceRange().End}
	return n, nil
}

func (p *Parser) parseForStmt() (*ast.ForStmt, error) {
	begin := p.advance().Pos // "for"
	if _, err := p.expect("("); err != nil {
		return nil, err
	}

	n := &ast.ForStmt{}
	p.pushScope()
	defer p.popScope()

	if !p.atText(";") {
		if p.looksLikeType() {
			decl, err := p.parseLocalDeclStmtNoSemi()
			if err != nil {
				return nil, err
			}
			n.Init = decl
		} else {
			exprBegin := p.cur().Pos
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			es := &ast.ExprStmt{Expr: expr}
			es.Range.Begin = exprBegin
			es.Range.End = expr.SourceRange().End
			n.Init = es
		}
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}

	if !p.atText(";") {
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n.Cond = cond
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}

	if !p.atText(")") {
		post, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n.Post = post
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}

	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	n.Body = body
	n.Range = ast.Range{Begin: begin, End: body.SourceRange().End}
	return n, nil
}

// parseLocalDeclStmtNoSemi parses a declarator for a for-loop initializer,
// without consuming the trailing ';' (the caller does, uniformly with the
// condition/post clauses).
func (p *Parser) parseLocalDeclStmtNoSemi() (*ast.DeclStmt, error) {
	begin := p.cur().Pos
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Name: nameTok.Text, Type: typ}
	decl.Range.Begin = begin
	if p.atText("=") {
		p.advance()
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	decl.Range.End = p.cur().Pos
	p.scope.define(decl.Name, decl)
	stmt := &ast.DeclStmt{Decl: decl}
	stmt.Range = decl.Range
	return stmt, nil
}

func (p *Parser) parseReturnStmt() (*ast.ReturnStmt, error) {
	begin := p.advance().Pos // "return"
	n := &ast.ReturnStmt{}
	n.Range.Begin = begin
	if !p.atText(";") {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		n.Value = value
	}
	end, err := p.expect(";")
	if err != nil {
		return nil, err
	}
	n.Range.End = end.End
	return n, nil
}
