// Package parser implements a hand-rolled recursive-descent/Pratt parser
// for a representative C-like subset, producing the internal/ast tree the
// rest of the reducer operates on (spec.md §1 "the parser ... consumed as
// a capability"). See DESIGN.md for the Open Question (b) decisions this
// grammar makes (which expression kinds are "relevant", how generic
// binary operators are handled, the comma operator, overloaded operators).
package parser

import (
	"fmt"

	"autopie/internal/ast"
	"autopie/internal/lexer"
)

// primitiveTypes seeds the set of tokens the parser treats as a type name
// when disambiguating a declaration from an expression statement.
var primitiveTypes = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true,
	"float": true, "double": true, "bool": true, "auto": true,
	"unsigned": true, "signed": true, "const": true, "static": true,
	"size_t": true, "string": true,
}

// Parser holds the mutable state of one parse. It is not safe for
// concurrent use and is discarded after ParseSource returns; the reducer
// never keeps a Parser alive past one invocation (spec.md §9, no
// singleton state).
type Parser struct {
	file    string
	src     []byte
	tokens  []lexer.Token
	pos     int
	scope   *scope
	typeNames map[string]bool
}

// ParseSource parses one translation unit. The returned tree's node
// ranges are byte offsets into src, already end-of-token corrected.
func ParseSource(file string, src []byte) (*ast.TranslationUnit, error) {
	clean := stripDirectives(src)
	p := &Parser{
		file:      file,
		src:       src,
		tokens:    lexer.Tokenize(clean),
		typeNames: make(map[string]bool),
	}
	for name := range primitiveTypes {
		p.typeNames[name] = true
	}
	p.pushScope() // file scope

	tu := &ast.TranslationUnit{}
	tu.Range.Begin = ast.Position{Line: 1, Column: 1, Offset: 0}

	for !p.at(lexer.EOF) {
		decl, err := p.parseTopLevelDecl()
		if err != nil {
			return nil, err
		}
		if decl != nil {
			tu.Decls = append(tu.Decls, decl)
		}
	}
	tu.Range.End = p.cur().Pos
	return tu, nil
}

// --- token cursor helpers ----------------------------------------------

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) at(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) atText(text string) bool {
	return p.cur().Text == text && p.cur().Kind != lexer.String && p.cur().Kind != lexer.Char
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(text string) (lexer.Token, error) {
	if !p.atText(text) {
		return lexer.Token{}, p.errorf("expected %q, got %q", text, p.cur().Text)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	pos := p.cur().Pos
	return &SyntaxError{File: p.file, Line: pos.Line, Column: pos.Column, Message: fmt.Sprintf(format, args...)}
}

// --- top level ------------------------------------------------------

func (p *Parser) parseTopLevelDecl() (ast.Node, error) {
	if p.atText("struct") || p.atText("class") {
		return p.parseRecord()
	}
	return p.parseDeclOrFunction(true)
}

// parseType consumes a type-specifier: one or more identifier-ish tokens
// (including qualifiers such as "const"/"unsigned"), an optional
// "<...>" template argument list, and trailing "*"/"&" pointer/reference
// markers. It returns the type's raw textual spelling.
func (p *Parser) parseType() (string, error) {
	if !p.at(lexer.Ident) {
		return "", p.errorf("expected type, got %q", p.cur().Text)
	}
	start := p.pos
	p.advance()
	for p.atText("::") {
		p.advance()
		if !p.at(lexer.Ident) {
			return "", p.errorf("expected identifier after '::'")
		}
		p.advance()
	}
	if p.atText("<") {
		depth := 0
		for {
			if p.atText("<") {
				depth++
			} else if p.atText(">") {
				depth--
			} else if p.at(lexer.EOF) {
				return "", p.errorf("unterminated template argument list")
			}
			p.advance()
			if depth == 0 {
				break
			}
		}
	}
	for p.atText("*") || p.atText("&") {
		p.advance()
	}
	end := p.pos
	text := ""
	for i := start; i < end; i++ {
		if i > start {
			text += " "
		}
		text += p.tokens[i].Text
	}
	return text, nil
}

// looksLikeType reports whether the current token begins a
// declaration, consulting the registered type-name set (primitives plus
// every struct/class seen so far).
func (p *Parser) looksLikeType() bool {
	return p.at(lexer.Ident) && p.typeNames[p.cur().Text]
}

// parseDeclOrFunction parses `Type Ident (` as a function, or
// `Type Ident [= Expr] ;` as a variable declaration. topLevel controls
// whether the result becomes a global ast.VarDecl (a code unit) or is
// wrapped for local use by the caller.
func (p *Parser) parseDeclOrFunction(topLevel bool) (ast.Node, error) {
	begin := p.cur().Pos
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if !p.at(lexer.Ident) {
		return nil, p.errorf("expected declarator name, got %q", p.cur().Text)
	}
	nameTok := p.advance()

	if p.atText("(") {
		return p.parseFunctionTail(begin, typ, nameTok.Text, nil)
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
	if _, exists := p.typeNames[decl.Name]; topLevel && !exists {
		p.typeNames[decl.Name] = false // ensure the map entry exists without shadowing real types
	}
	return decl, nil
}

// parseFunctionTail parses the parameter list, optional body, and
// attaches the signature/body positions used for the criterion
// "potential error line" workaround (spec.md §3/§4.4).
func (p *Parser) parseFunctionTail(begin ast.Position, returnType, name string, receiver ast.Node) (*ast.FunctionDecl, error) {
	sigBegin := p.cur().Pos
	if _, err := p.expect("("); err != nil {
		return nil, err
	}

	fn := &ast.FunctionDecl{Name: name, ReturnType: returnType, IsMain: name == "main"}
	fn.Range.Begin = begin
	fn.SignatureBegin = sigBegin

	p.pushScope()
	defer p.popScope()

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
		fn.Params = append(fn.Params, param)
		if pname != "" {
			p.scope.define(pname, param)
		}
		if p.atText(",") {
			p.advance()
			continue
		}
		break
	}
	closeParen, err := p.expect(")")
	if err != nil {
		return nil, err
	}
	fn.SignatureEnd = closeParen.End
	p.scope.define(name, fn)

	if p.atText(";") {
		end := p.advance()
		fn.Range.End = end.End
		return fn, nil
	}

	body, err := p.parseCompoundStmt()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	fn.Range.End = body.Range.End
	fn.BraceEnd = body.Range.End
	return fn, nil
}

// parseRecord parses a struct/class declaration.
func (p *Parser) parseRecord() (*ast.RecordDecl, error) {
	begin := p.cur().Pos
	p.advance() // "struct" | "class"
	if !p.at(lexer.Ident) {
		return nil, p.errorf("expected record name")
	}
	name := p.advance().Text
	p.typeNames[name] = true

	rec := &ast.RecordDecl{Name: name}
	rec.Range.Begin = begin

	if p.atText(":") {
		p.advance()
		// Skip an access specifier before the base name if present.
		if p.atText("public") || p.atText("private") || p.atText("protected") {
			p.advance()
		}
		if !p.at(lexer.Ident) {
			return nil, p.errorf("expected base class name")
		}
		rec.BaseName = p.advance().Text
	}

	if _, err := p.expect("{"); err != nil {
		return nil, err
	}

	p.pushScope()
	defer p.popScope()

	for !p.atText("}") {
		if p.atText("public") || p.atText("private") || p.atText("protected") {
			p.advance()
			if _, err := p.expect(":"); err != nil {
				return nil, err
			}
			continue
		}

		memberBegin := p.cur().Pos
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if !p.at(lexer.Ident) {
			return nil, p.errorf("expected member name")
		}
		memberName := p.advance().Text

		if p.atText("(") {
			method, err := p.parseFunctionTail(memberBegin, typ, memberName, rec)
			if err != nil {
				return nil, err
			}
			rec.Methods = append(rec.Methods, method)
			continue
		}

		field := &ast.FieldDecl{Name: memberName, Type: typ}
		field.Range.Begin = memberBegin
		if p.atText("=") {
			p.advance()
			init, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			field.Init = init
		}
		end, err := p.expect(";")
		if err != nil {
			return nil, err
		}
		field.Range.End = end.End
		p.scope.define(field.Name, field)
		rec.Fields = append(rec.Fields, field)
	}

	end, err := p.expect("}")
	if err != nil {
		return nil, err
	}
	rec.Range.End = end.End
	if p.atText(";") {
		end = p.advance()
		rec.Range.End = end.End
	}
	p.scope.parent.define(name, rec)
	return rec, nil
}
