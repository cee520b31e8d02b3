// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"fmt"
	"strings"

	"github.com/gogpu/shaderkit/lexer"
)

// ParseError is a syntax error at a specific token.
type ParseError struct {
	Message string
	Token   lexer.Token
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token.Pos.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Token.Pos.Line, e.Token.Pos.Column, e.Message)
}

// FormatWithContext returns the error message with source context.
// Shows the problematic line with a caret pointing to the error location.
func (e *ParseError) FormatWithContext(source string) string {
	if source == "" || e.Token.Pos.Line == 0 {
		return e.Error()
	}

	lines := strings.Split(source, "\n")
	lineNum := e.Token.Pos.Line
	if lineNum < 1 || lineNum > len(lines) {
		return e.Error()
	}

	line := strings.TrimRight(lines[lineNum-1], "\r")
	col := e.Token.Pos.Column
	if col < 1 {
		col = 1
	}
	if n := len([]rune(line)); col > n+1 {
		col = n + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", e.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", caretPadding(line, col))

	return sb.String()
}

// caretPadding keeps tabs so the caret lines up with the source line.
func caretPadding(line string, col int) string {
	var sb strings.Builder
	for i, r := range []rune(line) {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	for i := len([]rune(line)); i < col-1; i++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}

func describe(tok lexer.Token) string {
	if tok.Value == "" {
		return "end of input"
	}
	if tok.IsDirectiveEnd() {
		return "end of directive"
	}
	return fmt.Sprintf("%q", tok.Value)
}
