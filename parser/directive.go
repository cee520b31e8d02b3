// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"strings"

	"github.com/gogpu/shaderkit/ast"
	"github.com/gogpu/shaderkit/lexer"
)

// directive parses a preprocessor line from '#' through the end-of-line
// marker the tokenizer inserts.
func (p *Parser) directive() (*ast.PreprocessorStatement, *ParseError) {
	p.advance() // #

	var line []lexer.Token
	for !p.isAtEnd() && !p.peek().IsDirectiveEnd() {
		line = append(line, p.advance())
	}
	p.advance() // end marker

	stmt := &ast.PreprocessorStatement{}
	if len(line) == 0 {
		return stmt, nil
	}
	stmt.Name = line[0].Value
	args := line[1:]

	switch stmt.Name {
	case "define":
		value, err := p.define(line[0], args)
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	case "if", "elif":
		if len(args) > 0 {
			stmt.Value = []ast.Expression{p.condExpression(args)}
		}
	case "ifdef", "ifndef", "undef":
		if len(args) == 1 && args[0].IsWord() {
			stmt.Value = []ast.Expression{&ast.Identifier{Name: args[0].Value}}
		} else if len(args) > 0 {
			stmt.Value = []ast.Expression{&ast.Literal{Value: rawText(args)}}
		}
	default:
		if len(args) > 0 {
			stmt.Value = []ast.Expression{&ast.Literal{Value: rawText(args)}}
		}
	}
	return stmt, nil
}

// define splits #define arguments into the macro name (an Identifier, or a
// CallExpression when a parameter list is directly attached) and the
// replacement text.
func (p *Parser) define(directive lexer.Token, args []lexer.Token) ([]ast.Expression, *ParseError) {
	if len(args) == 0 || !args[0].IsWord() {
		tok := directive
		if len(args) > 0 {
			tok = args[0]
		}
		return nil, p.errorf(tok, "expected macro name after #define")
	}

	nameTok := args[0]
	rest := args[1:]
	var macro ast.Expression = &ast.Identifier{Name: nameTok.Value}

	if len(rest) > 0 && rest[0].Is("(") && adjacent(nameTok, rest[0]) {
		call := &ast.CallExpression{Callee: macro}
		i := 1
		for ; i < len(rest) && !rest[i].Is(")"); i++ {
			if rest[i].Is(",") {
				continue
			}
			call.Arguments = append(call.Arguments, &ast.Identifier{Name: rest[i].Value})
		}
		if i == len(rest) {
			return nil, p.errorf(rest[0], "unterminated macro parameter list")
		}
		macro = call
		rest = rest[i+1:]
	}

	value := []ast.Expression{macro}
	if len(rest) > 0 {
		value = append(value, &ast.Literal{Value: rawText(rest)})
	}
	return value, nil
}

// condExpression parses an #if condition, keeping the raw text when it is
// not a plain expression.
func (p *Parser) condExpression(args []lexer.Token) ast.Expression {
	sub := &Parser{
		tokens:  append([]lexer.Token(nil), args...),
		dialect: p.dialect,
		wgsl:    p.wgsl,
		eof:     p.eof,
	}
	expr, err := sub.expression()
	if err != nil || !sub.isAtEnd() {
		return &ast.Literal{Value: rawText(args)}
	}
	return expr
}

// adjacent reports whether b starts right where a ends in the source.
func adjacent(a, b lexer.Token) bool {
	return a.Pos.Offset+len(a.Value) == b.Pos.Offset
}

// rawText joins tokens, with one space wherever the source had whitespace.
func rawText(tokens []lexer.Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 && !adjacent(tokens[i-1], tok) {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Value)
	}
	return sb.String()
}
