// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"github.com/gogpu/shaderkit/ast"
	"github.com/gogpu/shaderkit/lexer"
)

// isDeclarationStart reports whether the next tokens begin a GLSL
// declaration. It never consumes tokens.
func (p *Parser) isDeclarationStart() bool {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Keyword:
		if tok.Value == "layout" || p.dialect.IsQualifier(tok.Value) {
			return true
		}
		if p.dialect.IsType(tok.Value) {
			return p.nameFollows(1)
		}
	case lexer.Identifier:
		return p.nameFollows(1)
	}
	return false
}

// nameFollows reports whether an identifier follows at offset n, after any
// balanced [...] groups (float[3] x).
func (p *Parser) nameFollows(n int) bool {
	for p.peekAt(n).Is("[") {
		depth := 0
		for {
			tok := p.peekAt(n)
			if tok.Value == "" {
				return false
			}
			n++
			if tok.Is("[") {
				depth++
			} else if tok.Is("]") {
				depth--
				if depth == 0 {
					break
				}
			}
		}
	}
	return p.peekAt(n).Kind == lexer.Identifier
}

// declaration parses a GLSL variable, function or interface block
// declaration, including the terminating ';' or body.
func (p *Parser) declaration() (ast.Statement, *ParseError) {
	layout, quals, err := p.qualifiers()
	if err != nil {
		return nil, err
	}

	// Bare qualifier statement: layout(std140) uniform;
	if p.check(";") {
		p.advance()
		return &ast.VariableDeclaration{Layout: layout, Qualifiers: quals}, nil
	}

	if p.peek().Kind == lexer.Identifier && p.peekAt(1).Is("{") {
		return p.interfaceBlock(layout, quals)
	}

	typ, err := p.typeSpecifier()
	if err != nil {
		return nil, err
	}

	decl := &ast.VariableDeclaration{Layout: layout, Qualifiers: quals, Type: typ}

	// invariant gl_Position; declares nothing new.
	if p.match(";") {
		return decl, nil
	}

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	if p.check("(") {
		return p.function(layout, quals, typ, name)
	}

	if decl.Declarations, err = p.declarators(name); err != nil {
		return nil, err
	}
	return decl, p.expect(";")
}

// qualifiers parses layout(...) blocks and qualifier keywords in any order.
func (p *Parser) qualifiers() (ast.Layout, []string, *ParseError) {
	var layout ast.Layout
	var quals []string
	for {
		tok := p.peek()
		if tok.Kind != lexer.Keyword {
			return layout, quals, nil
		}
		switch {
		case tok.Value == "layout":
			l, err := p.layoutQualifier()
			if err != nil {
				return nil, nil, err
			}
			layout = append(layout, l...)
		case p.dialect.IsQualifier(tok.Value):
			p.advance()
			quals = append(quals, tok.Value)
		default:
			return layout, quals, nil
		}
	}
}

// layoutQualifier parses layout(key, key = value, ...).
func (p *Parser) layoutQualifier() (ast.Layout, *ParseError) {
	p.advance() // layout
	if err := p.expect("("); err != nil {
		return nil, err
	}
	var layout ast.Layout
	for !p.check(")") {
		tok := p.peek()
		if !tok.IsWord() {
			return nil, p.errorf(tok, "expected layout qualifier, got %s", describe(tok))
		}
		p.advance()
		q := ast.LayoutQualifier{Key: tok.Value}
		if p.match("=") {
			value, err := p.expr(int(ast.PrecAssignment))
			if err != nil {
				return nil, err
			}
			q.Value = value
		}
		layout = append(layout, q)
		if !p.match(",") {
			break
		}
	}
	return layout, p.expect(")")
}

// typeSpecifier parses a type name with optional template parameters and
// array dimensions.
func (p *Parser) typeSpecifier() (*ast.Type, *ParseError) {
	typ, err := p.typeName()
	if err != nil {
		return nil, err
	}
	if typ.ArraySizes, err = p.arraySizes(); err != nil {
		return nil, err
	}
	return typ, nil
}

// typeName parses a type name and its template parameters, without array
// dimensions.
func (p *Parser) typeName() (*ast.Type, *ParseError) {
	tok := p.peek()
	if tok.Kind != lexer.Identifier && tok.Kind != lexer.Keyword {
		return nil, p.errorf(tok, "expected type, got %s", describe(tok))
	}
	p.advance()
	typ := &ast.Type{Name: tok.Value}

	if p.wgsl && p.check("<") {
		p.advance()
		for !p.splitGreater() {
			if p.isAtEnd() {
				return nil, p.errorf(p.peek(), "expected \">\", got %s", describe(p.peek()))
			}
			arg, err := p.templateArgument()
			if err != nil {
				return nil, err
			}
			typ.Parameters = append(typ.Parameters, arg)
			if !p.match(",") && !p.check(">") && !p.check(">>") && !p.check(">=") && !p.check(">>=") {
				return nil, p.errorf(p.peek(), "expected \",\" or \">\", got %s", describe(p.peek()))
			}
		}
	}
	return typ, nil
}

// templateArgument parses one template parameter: a nested type when it
// looks like one, otherwise an expression that stops before '<' and '>'.
func (p *Parser) templateArgument() (ast.Expression, *ParseError) {
	tok := p.peek()
	if tok.IsWord() && (p.dialect.IsType(tok.Value) || p.peekAt(1).Is("<")) {
		return p.typeName()
	}
	return p.expr(int(ast.PrecShift))
}

// arraySizes parses zero or more [size] suffixes. An empty [] yields a nil
// entry.
func (p *Parser) arraySizes() ([]ast.Expression, *ParseError) {
	var sizes []ast.Expression
	for p.match("[") {
		if p.match("]") {
			sizes = append(sizes, nil)
			continue
		}
		size, err := p.expression()
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
		if err := p.expect("]"); err != nil {
			return nil, err
		}
	}
	return sizes, nil
}

// declarators parses name[sizes] = init, ... starting after the first name.
func (p *Parser) declarators(name string) ([]*ast.VariableDeclarator, *ParseError) {
	var list []*ast.VariableDeclarator
	for {
		d := &ast.VariableDeclarator{Name: name}
		var err *ParseError
		if d.ArraySizes, err = p.arraySizes(); err != nil {
			return nil, err
		}
		if p.match("=") {
			if d.Init, err = p.expr(int(ast.PrecAssignment)); err != nil {
				return nil, err
			}
		}
		list = append(list, d)

		if !p.match(",") {
			return list, nil
		}
		if name, err = p.expectIdentifier(); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) function(layout ast.Layout, quals []string, typ *ast.Type, name string) (*ast.FunctionDeclaration, *ParseError) {
	p.advance() // (
	fn := &ast.FunctionDeclaration{
		Layout:     layout,
		Qualifiers: quals,
		Type:       typ,
		Name:       name,
	}

	// f(void) has no parameters.
	if p.check("void") && p.peekAt(1).Is(")") {
		p.advance()
	}

	for !p.check(")") {
		param, err := p.parameter()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)
		if !p.match(",") {
			break
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}

	if p.match(";") {
		return fn, nil
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// parameter parses [qualifiers] type [name[sizes]].
func (p *Parser) parameter() (*ast.VariableDeclaration, *ParseError) {
	_, quals, err := p.qualifiers()
	if err != nil {
		return nil, err
	}
	typ, err := p.typeSpecifier()
	if err != nil {
		return nil, err
	}
	param := &ast.VariableDeclaration{Qualifiers: quals, Type: typ}
	if p.peek().Kind == lexer.Identifier {
		d := &ast.VariableDeclarator{Name: p.advance().Value}
		if d.ArraySizes, err = p.arraySizes(); err != nil {
			return nil, err
		}
		param.Declarations = []*ast.VariableDeclarator{d}
	}
	return param, nil
}

// structDecl parses struct Name { members } [declarators];
func (p *Parser) structDecl() (*ast.StructDeclaration, *ParseError) {
	p.advance() // struct
	decl := &ast.StructDeclaration{}
	if p.peek().Kind == lexer.Identifier {
		decl.Name = p.advance().Value
	}

	members, err := p.members()
	if err != nil {
		return nil, err
	}
	decl.Members = members

	if p.peek().Kind == lexer.Identifier {
		name := p.advance().Value
		if decl.Declarations, err = p.declarators(name); err != nil {
			return nil, err
		}
	}
	return decl, p.expect(";")
}

// interfaceBlock parses qualifiers Name { members } [instance[sizes]];
func (p *Parser) interfaceBlock(layout ast.Layout, quals []string) (*ast.InterfaceBlock, *ParseError) {
	block := &ast.InterfaceBlock{
		Layout:     layout,
		Qualifiers: quals,
		Name:       p.advance().Value,
	}

	members, err := p.members()
	if err != nil {
		return nil, err
	}
	block.Members = members

	if p.peek().Kind == lexer.Identifier {
		inst := &ast.VariableDeclarator{Name: p.advance().Value}
		if inst.ArraySizes, err = p.arraySizes(); err != nil {
			return nil, err
		}
		block.Instance = inst
	}
	return block, p.expect(";")
}

// members parses { [layout] [qualifiers] type name, name; ... }.
func (p *Parser) members() ([]*ast.VariableDeclaration, *ParseError) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	var members []*ast.VariableDeclaration
	for !p.match("}") {
		if p.isAtEnd() {
			return nil, p.errorf(p.peek(), "expected \"}\", got %s", describe(p.peek()))
		}
		layout, quals, err := p.qualifiers()
		if err != nil {
			return nil, err
		}
		typ, err := p.typeSpecifier()
		if err != nil {
			return nil, err
		}
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		decls, err := p.declarators(name)
		if err != nil {
			return nil, err
		}
		members = append(members, &ast.VariableDeclaration{
			Layout:       layout,
			Qualifiers:   quals,
			Type:         typ,
			Declarations: decls,
		})
		if err := p.expect(";"); err != nil {
			return nil, err
		}
	}
	return members, nil
}
