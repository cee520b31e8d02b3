// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"github.com/gogpu/shaderkit/ast"
	"github.com/gogpu/shaderkit/lexer"
)

// expression parses a full expression, comma operator included.
func (p *Parser) expression() (ast.Expression, *ParseError) {
	return p.expr(int(ast.PrecLowest))
}

// expr parses an expression whose operators all bind at least as tightly
// as minBP. Left-associative operators parse their right operand at one
// level above their own; right-associative ones (assignment, ternary) at
// their own level.
func (p *Parser) expr(minBP int) (ast.Expression, *ParseError) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}

	for !p.isAtEnd() {
		tok := p.peek()
		if tok.Kind != lexer.Symbol {
			break
		}

		switch tok.Value {
		case "(", "[", ".", "++", "--":
			if int(ast.PrecPostfix) < minBP {
				return left, nil
			}
			if left, err = p.postfix(left); err != nil {
				return nil, err
			}
			continue

		case "?":
			bp := int(ast.PrecTernary)
			if bp < minBP {
				return left, nil
			}
			p.advance()
			consequent, err := p.expression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(":"); err != nil {
				return nil, err
			}
			// The alternate stops before assignment: a ? b : c = d is (a ? b : c) = d.
			alternate, err := p.expr(bp)
			if err != nil {
				return nil, err
			}
			left = &ast.TernaryExpression{Test: left, Consequent: consequent, Alternate: alternate}
			continue
		}

		prec := ast.BinaryPrecedence(tok.Value)
		bp := int(prec)
		if prec == ast.PrecLowest || bp < minBP {
			break
		}
		p.advance()

		nextBP := bp + 1
		if prec.RightAssociative() {
			nextBP = bp
		}
		right, err := p.expr(nextBP)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Operator: tok.Value, Left: left, Right: right}
	}

	return left, nil
}

// prefix parses an atom or a prefix unary expression.
func (p *Parser) prefix() (ast.Expression, *ParseError) {
	tok := p.peek()

	switch tok.Kind {
	case lexer.Int, lexer.Float, lexer.Bool:
		p.advance()
		return &ast.Literal{Value: tok.Value}, nil

	case lexer.Identifier:
		p.advance()
		return &ast.Identifier{Name: tok.Value}, nil

	case lexer.Keyword:
		if p.dialect.IsType(tok.Value) {
			return p.typeName()
		}
		if isStatementKeyword(tok.Value) || p.dialect.IsQualifier(tok.Value) {
			return nil, p.errorf(tok, "unexpected keyword %q in expression", tok.Value)
		}
		p.advance()
		return &ast.Identifier{Name: tok.Value}, nil

	case lexer.Symbol:
		if tok.Value == "(" {
			p.advance()
			inner, err := p.expression()
			if err != nil {
				return nil, err
			}
			return inner, p.expect(")")
		}
		if ast.IsPrefixOperator(tok.Value) {
			p.advance()
			arg, err := p.expr(int(ast.PrecPrefix))
			if err != nil {
				return nil, err
			}
			return &ast.UnaryExpression{Operator: tok.Value, Prefix: true, Argument: arg}, nil
		}
	}

	return nil, p.errorf(tok, "expected expression, got %s", describe(tok))
}

// postfix parses one call, index, member access or postfix increment
// applied to left.
func (p *Parser) postfix(left ast.Expression) (ast.Expression, *ParseError) {
	tok := p.advance()

	switch tok.Value {
	case "(":
		args, err := p.arguments()
		if err != nil {
			return nil, err
		}
		if arr, ok := arrayType(left); ok {
			return &ast.ArrayExpression{Type: arr, Elements: args}, nil
		}
		return &ast.CallExpression{Callee: left, Arguments: args}, nil

	case "[":
		// float[] is only meaningful as an array constructor type.
		if _, isType := left.(*ast.Type); isType && p.match("]") {
			return &ast.MemberExpression{Object: left, Computed: true}, nil
		}
		index, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpression{Object: left, Property: index, Computed: true}, p.expect("]")

	case ".":
		prop := p.peek()
		if !prop.IsWord() || prop.Kind == lexer.Int || prop.Kind == lexer.Float {
			return nil, p.errorf(prop, "expected member name, got %s", describe(prop))
		}
		p.advance()
		return &ast.MemberExpression{Object: left, Property: &ast.Identifier{Name: prop.Value}}, nil

	default: // ++ --
		return &ast.UnaryExpression{Operator: tok.Value, Argument: left}, nil
	}
}

// arguments parses a parenthesized argument list after '('.
func (p *Parser) arguments() ([]ast.Expression, *ParseError) {
	var args []ast.Expression
	if p.check("void") && p.peekAt(1).Is(")") {
		p.advance()
	}
	for !p.check(")") {
		arg, err := p.expr(int(ast.PrecAssignment))
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(",") {
			break
		}
	}
	return args, p.expect(")")
}

// arrayType recognizes a callee of the form T[] or T[n], which makes the
// call an array constructor.
func arrayType(callee ast.Expression) (*ast.Type, bool) {
	m, ok := callee.(*ast.MemberExpression)
	if !ok || !m.Computed {
		return nil, false
	}
	t, ok := m.Object.(*ast.Type)
	if !ok {
		return nil, false
	}
	switch m.Property.(type) {
	case nil, *ast.Literal, *ast.Identifier:
	default:
		return nil, false
	}
	sizes := append(append([]ast.Expression(nil), t.ArraySizes...), m.Property)
	return &ast.Type{Name: t.Name, Parameters: t.Parameters, ArraySizes: sizes}, true
}

// isStatementKeyword reports whether word only ever starts a statement.
func isStatementKeyword(word string) bool {
	switch word {
	case "if", "else", "for", "while", "do", "switch", "case", "default",
		"return", "break", "continue", "discard", "struct", "precision",
		"layout", "fn", "var", "let", "override", "loop", "continuing":
		return true
	}
	return false
}
