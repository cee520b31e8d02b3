// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lexer

import (
	"unicode/utf8"

	"github.com/gogpu/shaderkit/lang"
)

// Lexer tokenizes shader source code for one dialect.
type Lexer struct {
	source  string
	dialect *lang.Dialect

	pos    int
	line   int
	column int

	start     int
	startLine int
	startCol  int

	// lineStart is true while only whitespace has been seen on the current line.
	lineStart bool
	// inDirective is true between a line-leading '#' and the end of its line.
	inDirective bool
	// expectName is true until the first word after '#' has been scanned.
	expectName bool

	tokens []Token
}

// New creates a lexer for source. A nil dialect means GLSL.
func New(source string, d *lang.Dialect) *Lexer {
	if d == nil {
		d = lang.GLSL
	}
	// Estimate ~1 token per 3 characters of source, whitespace included.
	estTokens := len(source) / 3
	if estTokens < 16 {
		estTokens = 16
	}
	return &Lexer{
		source:    source,
		dialect:   d,
		line:      1,
		column:    1,
		lineStart: true,
		tokens:    make([]Token, 0, estTokens),
	}
}

// Tokenize splits source into tokens. It never fails: characters that do
// not start any token become one-character symbols.
func Tokenize(source string, d *lang.Dialect) []Token {
	return New(source, d).Tokenize()
}

// Tokenize returns all tokens from the source, whitespace and comments
// included, in source order.
func (l *Lexer) Tokenize() []Token {
	for !l.isAtEnd() {
		l.mark()
		l.scanToken()
	}
	if l.inDirective {
		l.mark()
		l.endDirective()
	}
	return l.tokens
}

func (l *Lexer) scanToken() {
	r := l.peek()

	// A directive ends at the first newline that is not spliced.
	if l.inDirective && r == '\n' {
		l.endDirective()
		return
	}

	switch {
	case isSpace(r) || l.atSplice():
		l.whitespace()
		return
	case r == '/' && l.peekNext() == '/':
		l.lineComment()
		l.lineStart = false
		return
	case r == '/' && l.peekNext() == '*':
		l.blockComment()
		l.lineStart = false
		return
	case r == '#' && l.lineStart && !l.inDirective:
		l.advance()
		l.addToken(Symbol)
		l.inDirective = true
		l.expectName = true
		l.lineStart = false
		return
	}

	switch {
	case isDigit(r) || (r == '.' && isDigit(l.peekNext())):
		l.number()
	case isWordStart(r):
		l.word()
	default:
		l.symbol()
	}
	l.lineStart = false
	l.expectName = false
}

func (l *Lexer) whitespace() {
	for !l.isAtEnd() {
		if l.atSplice() {
			l.advance() // '\\'
			if l.peek() == '\r' {
				l.advance()
			}
			l.advance() // '\n'
			continue
		}
		r := l.peek()
		if !isSpace(r) {
			break
		}
		if r == '\n' {
			if l.inDirective {
				break
			}
			l.lineStart = true
		}
		l.advance()
	}
	l.addToken(Whitespace)
}

// atSplice reports whether the cursor is on a backslash-newline.
func (l *Lexer) atSplice() bool {
	if l.peek() != '\\' {
		return false
	}
	rest := l.source[l.pos+1:]
	return len(rest) > 0 && (rest[0] == '\n' || (rest[0] == '\r' && len(rest) > 1 && rest[1] == '\n'))
}

func (l *Lexer) endDirective() {
	l.tokens = append(l.tokens, Token{
		Kind:  Symbol,
		Value: DirectiveEnd,
		Pos:   Position{Offset: l.pos, Line: l.line, Column: l.column},
	})
	l.inDirective = false
	l.expectName = false
}

func (l *Lexer) lineComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
	l.addToken(Comment)
}

func (l *Lexer) blockComment() {
	l.advance()
	l.advance()
	depth := 1
	for depth > 0 && !l.isAtEnd() {
		switch {
		case l.dialect.NestedComments && l.peek() == '/' && l.peekNext() == '*':
			l.advance()
			l.advance()
			depth++
		case l.peek() == '*' && l.peekNext() == '/':
			l.advance()
			l.advance()
			depth--
		default:
			l.advance()
		}
	}
	l.addToken(Comment)
}

func (l *Lexer) number() {
	// Hex integers
	if l.peek() == '0' && (l.peekNext() == 'x' || l.peekNext() == 'X') {
		l.advance()
		l.advance()
		for isHexDigit(l.peek()) {
			l.advance()
		}
		if l.peek() == 'u' || l.peek() == 'U' || l.peek() == 'i' {
			l.advance()
		}
		l.addToken(Int)
		return
	}

	float := false
	for isDigit(l.peek()) {
		l.advance()
	}

	// "1." and "1.5" are floats; "1.x" is a member access on 1.
	if l.peek() == '.' {
		next := l.peekNext()
		if !isWordStart(next) || l.exponentAt(l.pos+1) {
			l.advance()
			float = true
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	if l.exponentAt(l.pos) {
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
		float = true
	}

	switch {
	case l.hasPrefix("lf") || l.hasPrefix("LF"):
		l.advance()
		l.advance()
		float = true
	case l.peek() == 'f' || l.peek() == 'F' || l.peek() == 'h':
		l.advance()
		float = true
	case !float && (l.peek() == 'u' || l.peek() == 'U' || l.peek() == 'i'):
		l.advance()
	}

	if float {
		l.addToken(Float)
	} else {
		l.addToken(Int)
	}
}

// exponentAt reports whether an exponent part starts at byte offset i.
func (l *Lexer) exponentAt(i int) bool {
	if i >= len(l.source) || (l.source[i] != 'e' && l.source[i] != 'E') {
		return false
	}
	i++
	if i < len(l.source) && (l.source[i] == '+' || l.source[i] == '-') {
		i++
	}
	return i < len(l.source) && isDigit(rune(l.source[i]))
}

func (l *Lexer) word() {
	for isWordPart(l.peek()) {
		l.advance()
	}
	text := l.source[l.start:l.pos]

	switch {
	case l.expectName:
		if l.dialect.Directives.Has(text) {
			l.addToken(Keyword)
		} else {
			l.addToken(Identifier)
		}
	case text == "true" || text == "false":
		l.addToken(Bool)
	case l.dialect.IsKeyword(text):
		l.addToken(Keyword)
	default:
		l.addToken(Identifier)
	}
}

func (l *Lexer) symbol() {
	if s := l.dialect.MatchSymbol(l.source[l.pos:]); s != "" {
		for i := 0; i < len(s); i++ {
			l.advance()
		}
	} else {
		l.advance()
	}
	l.addToken(Symbol)
}

func (l *Lexer) mark() {
	l.start = l.pos
	l.startLine = l.line
	l.startCol = l.column
}

func (l *Lexer) addToken(kind Kind) {
	l.tokens = append(l.tokens, Token{
		Kind:  kind,
		Value: l.source[l.start:l.pos],
		Pos:   Position{Offset: l.start, Line: l.startLine, Column: l.startCol},
	})
}

func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.isAtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if l.pos+size >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

func (l *Lexer) hasPrefix(s string) bool {
	return len(l.source)-l.pos >= len(s) && l.source[l.pos:l.pos+len(s)] == s
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isWordStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isWordPart(r rune) bool {
	return isWordStart(r) || isDigit(r)
}
