// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package generator prints an AST back to shader source.
//
// Output is compact and canonical: statements follow each other without
// separators, whitespace appears only where two tokens would otherwise fuse,
// and preprocessor directives sit on their own lines. Parentheses are
// inserted from the precedence table in package ast, so the output parses
// back to an equal tree.
package generator

import (
	"fmt"
	"strings"

	"github.com/gogpu/shaderkit/ast"
	"github.com/gogpu/shaderkit/lang"
	"github.com/gogpu/shaderkit/lexer"
)

// Options configures generation.
type Options struct {
	// Target selects the output syntax. Nil means GLSL.
	Target *lang.Dialect
}

// DefaultOptions returns options producing GLSL.
func DefaultOptions() Options {
	return Options{Target: lang.GLSL}
}

// Generate prints statements as source text for opts.Target.
//
// Generate panics on node types it does not know; every tree produced by
// package parser is accepted.
func Generate(stmts []ast.Statement, opts Options) string {
	w := newWriter(opts)
	for _, s := range stmts {
		w.statement(s)
	}
	return w.String()
}

// Writer accumulates generated source.
type Writer struct {
	target *lang.Dialect
	wgsl   bool

	out strings.Builder

	// last is the previously written token, used for spacing decisions.
	last lexer.Token
}

func newWriter(opts Options) *Writer {
	target := opts.Target
	if target == nil {
		target = lang.GLSL
	}
	return &Writer{
		target: target,
		wgsl:   target.Name == lang.WGSL.Name,
		last:   lexer.Token{Kind: lexer.Whitespace},
	}
}

// String returns the generated source code.
func (w *Writer) String() string {
	return w.out.String()
}

func (w *Writer) token(kind lexer.Kind, value string) {
	tok := lexer.Token{Kind: kind, Value: value}
	if lexer.NeedsSpace(w.last, tok, w.target) {
		w.out.WriteByte(' ')
	}
	w.out.WriteString(value)
	w.last = tok
}

// word writes an identifier, keyword or literal.
func (w *Writer) word(value string) {
	w.token(lexer.Identifier, value)
}

// literal writes a literal, classified so that NeedsSpace sees numbers.
func (w *Writer) literal(value string) {
	kind := lexer.Identifier
	if value != "" && (value[0] == '.' || (value[0] >= '0' && value[0] <= '9')) {
		kind = lexer.Float
	}
	w.token(kind, value)
}

// sym writes an operator or punctuation symbol.
func (w *Writer) sym(value string) {
	w.token(lexer.Symbol, value)
}

// raw writes text verbatim and resets spacing state.
func (w *Writer) raw(text string) {
	w.out.WriteString(text)
	w.last = lexer.Token{Kind: lexer.Whitespace}
}

// newline starts a fresh line unless already at the start of one.
func (w *Writer) newline() {
	if w.out.Len() == 0 {
		return
	}
	if s := w.out.String(); s[len(s)-1] != '\n' {
		w.out.WriteByte('\n')
	}
	w.last = lexer.Token{Kind: lexer.Whitespace}
}

func unknownNode(n any) string {
	return fmt.Sprintf("generator: unknown node type %T", n)
}
