// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package parser builds an AST from GLSL or WGSL source.
//
// Statements are parsed by recursive descent and expressions by a Pratt
// (binding power) loop driven by the precedence table in package ast.
// Parsing stops at the first error; there is no recovery.
package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/gogpu/shaderkit/ast"
	"github.com/gogpu/shaderkit/lang"
	"github.com/gogpu/shaderkit/lexer"
)

// Parser parses a token stream into statements. A Parser holds all of its
// state and is not safe for concurrent use.
type Parser struct {
	tokens  []lexer.Token
	current int
	dialect *lang.Dialect
	wgsl    bool
	eof     lexer.Token
}

// New creates a parser over tokens. Whitespace and comment tokens are
// dropped; the parser works on its own copy of the stream. A nil dialect
// means GLSL.
func New(tokens []lexer.Token, d *lang.Dialect) *Parser {
	if d == nil {
		d = lang.GLSL
	}
	p := &Parser{
		tokens:  lexer.Filter(tokens),
		dialect: d,
		wgsl:    d.Name == lang.WGSL.Name,
	}
	p.eof = endOf(tokens)
	return p
}

// Parse tokenizes and parses source.
func Parse(source string, d *lang.Dialect) ([]ast.Statement, error) {
	return New(lexer.Tokenize(source, d), d).Parse()
}

// Parse parses the whole token stream.
func (p *Parser) Parse() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

// endOf returns a synthetic empty token just past the last token.
func endOf(tokens []lexer.Token) lexer.Token {
	if len(tokens) == 0 {
		return lexer.Token{Kind: lexer.Whitespace, Pos: lexer.Position{Line: 1, Column: 1}}
	}
	last := tokens[len(tokens)-1]
	pos := last.Pos
	pos.Offset += len(last.Value)
	for _, r := range last.Value {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return lexer.Token{Kind: lexer.Whitespace, Pos: pos}
}

// statement parses one statement. It returns nil for an empty statement.
func (p *Parser) statement() (ast.Statement, *ParseError) {
	tok := p.peek()

	if tok.Kind == lexer.Symbol {
		switch tok.Value {
		case "#":
			return p.directive()
		case "{":
			return p.block()
		case ";":
			p.advance()
			return nil, nil
		case "@":
			if p.wgsl {
				return p.wgslAttributed()
			}
		}
	}

	if tok.Kind == lexer.Keyword {
		switch tok.Value {
		case "if":
			return p.ifStmt()
		case "while":
			return p.whileStmt()
		case "do":
			return p.doWhileStmt()
		case "for":
			return p.forStmt()
		case "switch":
			return p.switchStmt()
		case "return":
			return p.returnStmt()
		case "break":
			p.advance()
			return &ast.BreakStatement{}, p.expect(";")
		case "continue":
			p.advance()
			return &ast.ContinueStatement{}, p.expect(";")
		case "discard":
			p.advance()
			return &ast.DiscardStatement{}, p.expect(";")
		case "precision":
			if !p.wgsl {
				return p.precisionStmt()
			}
		case "struct":
			if p.wgsl {
				return p.wgslStruct()
			}
			return p.structDecl()
		case "fn":
			if p.wgsl {
				return p.wgslFunction(nil)
			}
		case "var", "let", "const", "override":
			if p.wgsl {
				return p.wgslVariable(nil)
			}
		}
	}

	if !p.wgsl && p.isDeclarationStart() {
		return p.declaration()
	}
	return p.expressionStmt()
}

func (p *Parser) block() (*ast.BlockStatement, *ParseError) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	block := &ast.BlockStatement{}
	for !p.check("}") {
		if p.isAtEnd() {
			return nil, p.errorf(p.peek(), "expected \"}\", got %s", describe(p.peek()))
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Body = append(block.Body, stmt)
		}
	}
	p.advance()
	return block, nil
}

func (p *Parser) expressionStmt() (*ast.ExpressionStatement, *ParseError) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr}, nil
}

// condition parses the head of if, while and switch. GLSL requires the
// parentheses; in WGSL they are an ordinary grouping.
func (p *Parser) condition() (ast.Expression, *ParseError) {
	if p.wgsl {
		return p.expression()
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	return expr, p.expect(")")
}

func (p *Parser) ifStmt() (*ast.IfStatement, *ParseError) {
	p.advance() // if
	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Test: test}
	if stmt.Consequent, err = p.statement(); err != nil {
		return nil, err
	}
	if p.match("else") {
		if stmt.Alternate, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) whileStmt() (*ast.WhileStatement, *ParseError) {
	p.advance() // while
	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Test: test, Body: body}, nil
}

func (p *Parser) doWhileStmt() (*ast.DoWhileStatement, *ParseError) {
	p.advance() // do
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if err := p.expect("while"); err != nil {
		return nil, err
	}
	test, err := p.condition()
	if err != nil {
		return nil, err
	}
	return &ast.DoWhileStatement{Body: body, Test: test}, p.expect(";")
}

func (p *Parser) forStmt() (*ast.ForStatement, *ParseError) {
	p.advance() // for
	if err := p.expect("("); err != nil {
		return nil, err
	}

	stmt := &ast.ForStatement{}
	var err *ParseError

	switch {
	case p.match(";"):
	case p.wgsl && (p.check("var") || p.check("let") || p.check("const")):
		stmt.Init, err = p.wgslVariable(nil)
	case !p.wgsl && p.isDeclarationStart():
		stmt.Init, err = p.declaration()
	default:
		stmt.Init, err = p.expressionStmt()
	}
	if err != nil {
		return nil, err
	}

	if !p.check(";") {
		if stmt.Test, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}

	if !p.check(")") {
		if stmt.Update, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}

	if stmt.Body, err = p.statement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) switchStmt() (*ast.SwitchStatement, *ParseError) {
	p.advance() // switch
	disc, err := p.condition()
	if err != nil {
		return nil, err
	}
	if err := p.expect("{"); err != nil {
		return nil, err
	}

	stmt := &ast.SwitchStatement{Discriminant: disc}
	var current *ast.SwitchCase
	for !p.check("}") {
		if p.isAtEnd() {
			return nil, p.errorf(p.peek(), "expected \"}\", got %s", describe(p.peek()))
		}

		switch {
		case p.match("case"):
			test, err := p.expression()
			if err != nil {
				return nil, err
			}
			current = &ast.SwitchCase{Test: test}
			stmt.Cases = append(stmt.Cases, current)
			if err := p.caseColon(); err != nil {
				return nil, err
			}
		case p.match("default"):
			current = &ast.SwitchCase{}
			stmt.Cases = append(stmt.Cases, current)
			if err := p.caseColon(); err != nil {
				return nil, err
			}
		default:
			if current == nil {
				return nil, p.errorf(p.peek(), "expected \"case\" or \"default\", got %s", describe(p.peek()))
			}
			s, err := p.statement()
			if err != nil {
				return nil, err
			}
			if s != nil {
				current.Consequent = append(current.Consequent, s)
			}
		}
	}
	p.advance()
	return stmt, nil
}

// caseColon consumes the ':' after a case label. WGSL makes it optional.
func (p *Parser) caseColon() *ParseError {
	if p.wgsl {
		p.match(":")
		return nil
	}
	return p.expect(":")
}

func (p *Parser) returnStmt() (*ast.ReturnStatement, *ParseError) {
	p.advance() // return
	stmt := &ast.ReturnStatement{}
	if !p.check(";") {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Argument = arg
	}
	return stmt, p.expect(";")
}

func (p *Parser) precisionStmt() (*ast.PrecisionStatement, *ParseError) {
	p.advance() // precision
	tok := p.peek()
	if !p.dialect.Precisions.Has(tok.Value) {
		return nil, p.errorf(tok, "expected precision qualifier, got %s", describe(tok))
	}
	p.advance()
	typ, err := p.typeSpecifier()
	if err != nil {
		return nil, err
	}
	return &ast.PrecisionStatement{Precision: tok.Value, Type: typ}, p.expect(";")
}

// Helper methods

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) peek() lexer.Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) lexer.Token {
	if p.current+n >= len(p.tokens) {
		return p.eof
	}
	return p.tokens[p.current+n]
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens)
}

// check reports whether the next token is the symbol or keyword value.
func (p *Parser) check(value string) bool {
	return checkToken(p.peek(), value)
}

func checkToken(tok lexer.Token, value string) bool {
	return tok.Value == value && (tok.Kind == lexer.Symbol || tok.Kind == lexer.Keyword)
}

func (p *Parser) match(value string) bool {
	if p.check(value) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(value string) *ParseError {
	if p.match(value) {
		return nil
	}
	return p.errorf(p.peek(), "expected %q, got %s", value, describe(p.peek()))
}

func (p *Parser) expectIdentifier() (string, *ParseError) {
	tok := p.peek()
	if tok.Kind != lexer.Identifier {
		return "", p.errorf(tok, "expected identifier, got %s", describe(tok))
	}
	p.advance()
	return tok.Value, nil
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Token:   tok,
	}
}

// splitGreater consumes one '>' from a token that starts with '>' (">>",
// ">=", ">>="), leaving the rest in place. Template argument lists need
// this when they close next to another '>' or an initializer.
func (p *Parser) splitGreater() bool {
	tok := p.peek()
	if tok.Kind != lexer.Symbol || len(tok.Value) == 0 || tok.Value[0] != '>' {
		return false
	}
	if tok.Value == ">" {
		p.advance()
		return true
	}
	_, size := utf8.DecodeRuneInString(tok.Value)
	rest := tok
	rest.Value = tok.Value[size:]
	rest.Pos.Offset += size
	rest.Pos.Column++
	p.tokens[p.current] = rest
	return true
}
