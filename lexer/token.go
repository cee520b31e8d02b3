// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lexer

import (
	"fmt"

	"github.com/gogpu/shaderkit/lang"
)

// Kind classifies a token.
type Kind uint8

const (
	Identifier Kind = iota
	Keyword
	Symbol
	Bool
	Int
	Float
	Comment
	Whitespace
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Keyword:
		return "keyword"
	case Symbol:
		return "symbol"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Comment:
		return "comment"
	case Whitespace:
		return "whitespace"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Position is a location in source text. Line and Column are 1-based;
// Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String formats the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical token. Value is the exact source text, except
// for the directive end marker which is the synthetic "\".
type Token struct {
	Kind  Kind
	Value string
	Pos   Position
}

// String returns a debug representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q @%s", t.Kind, t.Value, t.Pos)
}

// IsWord reports whether the token is word-like: two adjacent word-like
// tokens need a separator to stay distinct.
func (t Token) IsWord() bool {
	switch t.Kind {
	case Identifier, Keyword, Bool, Int, Float:
		return true
	}
	return false
}

// Is reports whether the token is a symbol with the given text.
func (t Token) Is(symbol string) bool {
	return t.Kind == Symbol && t.Value == symbol
}

// IsDirectiveEnd reports whether the token is the marker the tokenizer
// appends at the end of every preprocessor line.
func (t Token) IsDirectiveEnd() bool {
	return t.Kind == Symbol && t.Value == DirectiveEnd
}

// DirectiveEnd is the value of the marker token closing a directive line.
const DirectiveEnd = "\\"

// Filter drops whitespace and comment tokens.
func Filter(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == Whitespace || tok.Kind == Comment {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// NeedsSpace reports whether prev and next must be separated by whitespace
// when printed back to back, so that re-tokenizing yields the same tokens.
func NeedsSpace(prev, next Token, d *lang.Dialect) bool {
	if d == nil {
		d = lang.GLSL
	}
	if prev.IsWord() && next.IsWord() {
		return true
	}
	if prev.Kind == Symbol && next.Kind == Symbol {
		return d.MatchSymbol(prev.Value+next.Value) != prev.Value
	}
	// ".5" would read back as a float.
	if prev.Kind == Symbol && prev.Value == "." && (next.Kind == Int || next.Kind == Float) {
		return true
	}
	return false
}
