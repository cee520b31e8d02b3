// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"github.com/gogpu/shaderkit/ast"
)

// attributes parses a list of attributes (@location(0), @vertex, etc.)
func (p *Parser) attributes() (ast.Layout, *ParseError) {
	var layout ast.Layout
	for p.match("@") {
		tok := p.peek()
		if !tok.IsWord() {
			return nil, p.errorf(tok, "expected attribute name, got %s", describe(tok))
		}
		p.advance()
		attr := ast.LayoutQualifier{Key: tok.Value}

		if p.match("(") {
			if !p.check(")") {
				args, err := p.expression()
				if err != nil {
					return nil, err
				}
				attr.Value = args
			}
			p.match(",")
			if err := p.expect(")"); err != nil {
				return nil, err
			}
		}
		layout = append(layout, attr)
	}
	return layout, nil
}

// wgslAttributed parses attributes followed by the declaration they apply to.
func (p *Parser) wgslAttributed() (ast.Statement, *ParseError) {
	attrs, err := p.attributes()
	if err != nil {
		return nil, err
	}
	switch {
	case p.check("fn"):
		return p.wgslFunction(attrs)
	case p.check("var"), p.check("let"), p.check("const"), p.check("override"):
		return p.wgslVariable(attrs)
	}
	return nil, p.errorf(p.peek(), "expected declaration after attributes, got %s", describe(p.peek()))
}

// wgslFunction parses fn name(params) -> @attrs type { body }.
func (p *Parser) wgslFunction(attrs ast.Layout) (*ast.FunctionDeclaration, *ParseError) {
	p.advance() // fn
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}

	fn := &ast.FunctionDeclaration{Layout: attrs, Name: name}
	for !p.check(")") {
		param, err := p.wgslTypedName()
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

	if p.match("->") {
		if fn.ReturnLayout, err = p.attributes(); err != nil {
			return nil, err
		}
		if fn.Type, err = p.typeSpecifier(); err != nil {
			return nil, err
		}
	}

	if fn.Body, err = p.block(); err != nil {
		return nil, err
	}
	return fn, nil
}

// wgslTypedName parses [@attrs] name : type, used for parameters and
// struct members.
func (p *Parser) wgslTypedName() (*ast.VariableDeclaration, *ParseError) {
	attrs, err := p.attributes()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	typ, err := p.typeSpecifier()
	if err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{
		Layout:       attrs,
		Type:         typ,
		Declarations: []*ast.VariableDeclarator{{Name: name}},
	}, nil
}

// wgslVariable parses var<space, access> name : type = init; and the let,
// const and override forms.
func (p *Parser) wgslVariable(attrs ast.Layout) (*ast.VariableDeclaration, *ParseError) {
	decl := &ast.VariableDeclaration{Layout: attrs, Kind: p.advance().Value}

	if decl.Kind == "var" && p.match("<") {
		for !p.splitGreater() {
			tok := p.peek()
			if !tok.IsWord() {
				return nil, p.errorf(tok, "expected address space or access mode, got %s", describe(tok))
			}
			decl.Qualifiers = append(decl.Qualifiers, p.advance().Value)
			p.match(",")
		}
	}

	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	d := &ast.VariableDeclarator{Name: name}

	if p.match(":") {
		if decl.Type, err = p.typeSpecifier(); err != nil {
			return nil, err
		}
	}
	if p.match("=") {
		if d.Init, err = p.expr(int(ast.PrecAssignment)); err != nil {
			return nil, err
		}
	}
	decl.Declarations = []*ast.VariableDeclarator{d}
	return decl, p.expect(";")
}

// wgslStruct parses struct Name { @attrs member: type, ... }.
func (p *Parser) wgslStruct() (*ast.StructDeclaration, *ParseError) {
	p.advance() // struct
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect("{"); err != nil {
		return nil, err
	}

	decl := &ast.StructDeclaration{Name: name}
	for !p.match("}") {
		if p.isAtEnd() {
			return nil, p.errorf(p.peek(), "expected \"}\", got %s", describe(p.peek()))
		}
		member, err := p.wgslTypedName()
		if err != nil {
			return nil, err
		}
		decl.Members = append(decl.Members, member)
		if !p.match(",") && !p.match(";") && !p.check("}") {
			return nil, p.errorf(p.peek(), "expected \",\" or \"}\", got %s", describe(p.peek()))
		}
	}
	p.match(";")
	return decl, nil
}
