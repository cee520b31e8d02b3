// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shaderkit/lang"
)

type kv struct {
	Kind  Kind
	Value string
}

func simplify(tokens []Token) []kv {
	out := make([]kv, len(tokens))
	for i, tok := range tokens {
		out[i] = kv{tok.Kind, tok.Value}
	}
	return out
}

func TestTokenizeBasic(t *testing.T) {
	tokens := Filter(Tokenize("uniform vec3 color; // tint\nfloat x = 1.0;", lang.GLSL))
	assert.Equal(t, []kv{
		{Keyword, "uniform"},
		{Keyword, "vec3"},
		{Identifier, "color"},
		{Symbol, ";"},
		{Keyword, "float"},
		{Identifier, "x"},
		{Symbol, "="},
		{Float, "1.0"},
		{Symbol, ";"},
	}, simplify(tokens))
}

func TestTokenizeLossless(t *testing.T) {
	sources := []string{
		"void main() {\n\tgl_FragColor = vec4(1, 0, 0, 1); /* red */\n}\n",
		"#version 300 es\nprecision mediump float;\n",
		"#define A \\\n  1\nint x = A;",
		"float f = .5e-3 + 2.f;\n// trailing",
		"/* unterminated",
		"x≈y",
	}
	for _, src := range sources {
		var sb strings.Builder
		for _, tok := range Tokenize(src, lang.GLSL) {
			if tok.IsDirectiveEnd() {
				continue
			}
			sb.WriteString(tok.Value)
		}
		assert.Equal(t, src, sb.String())
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  []kv
	}{
		{"42", []kv{{Int, "42"}}},
		{"0xFF", []kv{{Int, "0xFF"}}},
		{"0x1Fu", []kv{{Int, "0x1Fu"}}},
		{"017", []kv{{Int, "017"}}},
		{"3u", []kv{{Int, "3u"}}},
		{"1.", []kv{{Float, "1."}}},
		{".25", []kv{{Float, ".25"}}},
		{"1e10", []kv{{Float, "1e10"}}},
		{"1.5E-3", []kv{{Float, "1.5E-3"}}},
		{"1.e2", []kv{{Float, "1.e2"}}},
		{"2.0f", []kv{{Float, "2.0f"}}},
		{"2.0lf", []kv{{Float, "2.0lf"}}},
		{"1h", []kv{{Float, "1h"}}},
		{"7i", []kv{{Int, "7i"}}},
		{"1.x", []kv{{Int, "1"}, {Symbol, "."}, {Identifier, "x"}}},
		{"1.0.x", []kv{{Float, "1.0"}, {Symbol, "."}, {Identifier, "x"}}},
		{"1e", []kv{{Int, "1"}, {Identifier, "e"}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, simplify(Tokenize(tt.input, lang.GLSL)))
		})
	}
}

func TestTokenizeSymbols(t *testing.T) {
	tokens := Filter(Tokenize("a<<=b>>c^^d--", lang.GLSL))
	assert.Equal(t, []kv{
		{Identifier, "a"}, {Symbol, "<<="}, {Identifier, "b"}, {Symbol, ">>"},
		{Identifier, "c"}, {Symbol, "^^"}, {Identifier, "d"}, {Symbol, "--"},
	}, simplify(tokens))
}

func TestTokenizeUnknownCharacters(t *testing.T) {
	tokens := Tokenize("a$b≈", lang.GLSL)
	assert.Equal(t, []kv{
		{Identifier, "a"}, {Symbol, "$"}, {Identifier, "b"}, {Symbol, "≈"},
	}, simplify(tokens))
}

func TestTokenizeBool(t *testing.T) {
	tokens := Filter(Tokenize("bool b = true || false;", lang.GLSL))
	require.Len(t, tokens, 7)
	assert.Equal(t, Bool, tokens[3].Kind)
	assert.Equal(t, Bool, tokens[5].Kind)
}

func TestTokenizeComments(t *testing.T) {
	tokens := Tokenize("a/* x\ny */b// z\nc", lang.GLSL)
	assert.Equal(t, []kv{
		{Identifier, "a"},
		{Comment, "/* x\ny */"},
		{Identifier, "b"},
		{Comment, "// z"},
		{Whitespace, "\n"},
		{Identifier, "c"},
	}, simplify(tokens))

	// GLSL block comments do not nest, WGSL ones do.
	glsl := Filter(Tokenize("/* /* */ x */", lang.GLSL))
	assert.Equal(t, "x", glsl[0].Value)
	wgsl := Filter(Tokenize("/* /* */ x */ y", lang.WGSL))
	require.Len(t, wgsl, 1)
	assert.Equal(t, "y", wgsl[0].Value)
}

func TestTokenizeDirectives(t *testing.T) {
	tokens := Filter(Tokenize("#version 300 es\n  #define PLUS(n) n+=1\nfloat a;", lang.GLSL))
	assert.Equal(t, []kv{
		{Symbol, "#"}, {Keyword, "version"}, {Int, "300"}, {Identifier, "es"}, {Symbol, "\\"},
		{Symbol, "#"}, {Keyword, "define"}, {Identifier, "PLUS"}, {Symbol, "("}, {Identifier, "n"},
		{Symbol, ")"}, {Identifier, "n"}, {Symbol, "+="}, {Int, "1"}, {Symbol, "\\"},
		{Keyword, "float"}, {Identifier, "a"}, {Symbol, ";"},
	}, simplify(tokens))
}

func TestTokenizeDirectiveAtEOF(t *testing.T) {
	tokens := Filter(Tokenize("#endif", lang.GLSL))
	assert.Equal(t, []kv{{Symbol, "#"}, {Keyword, "endif"}, {Symbol, "\\"}}, simplify(tokens))
}

func TestTokenizeDirectiveSplice(t *testing.T) {
	tokens := Filter(Tokenize("#define A 1 + \\\n 2\nA", lang.GLSL))
	assert.Equal(t, []kv{
		{Symbol, "#"}, {Keyword, "define"}, {Identifier, "A"}, {Int, "1"}, {Symbol, "+"},
		{Int, "2"}, {Symbol, "\\"}, {Identifier, "A"},
	}, simplify(tokens))
}

func TestTokenizeHashMidLine(t *testing.T) {
	tokens := Filter(Tokenize("#define S(x) #x\n", lang.GLSL))
	assert.Equal(t, []kv{
		{Symbol, "#"}, {Keyword, "define"}, {Identifier, "S"}, {Symbol, "("}, {Identifier, "x"},
		{Symbol, ")"}, {Symbol, "#"}, {Identifier, "x"}, {Symbol, "\\"},
	}, simplify(tokens))
}

func TestTokenizeDirectiveWithComment(t *testing.T) {
	tokens := Filter(Tokenize("#ifdef A // note\nx", lang.GLSL))
	assert.Equal(t, []kv{
		{Symbol, "#"}, {Keyword, "ifdef"}, {Identifier, "A"}, {Symbol, "\\"}, {Identifier, "x"},
	}, simplify(tokens))
}

func TestTokenizeUnknownDirective(t *testing.T) {
	tokens := Filter(Tokenize("#custom thing\n", lang.GLSL))
	assert.Equal(t, Identifier, tokens[1].Kind)
}

func TestTokenizePositions(t *testing.T) {
	tokens := Filter(Tokenize("int a;\n  a = 2;", lang.GLSL))
	require.Len(t, tokens, 7)
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, tokens[0].Pos)
	assert.Equal(t, Position{Offset: 4, Line: 1, Column: 5}, tokens[1].Pos)
	assert.Equal(t, Position{Offset: 9, Line: 2, Column: 3}, tokens[3].Pos)
	assert.Equal(t, Position{Offset: 13, Line: 2, Column: 7}, tokens[5].Pos)
}

func TestTokenizeWGSL(t *testing.T) {
	tokens := Filter(Tokenize("@vertex fn main() -> @builtin(position) vec4<f32> {}", lang.WGSL))
	assert.Equal(t, []kv{
		{Symbol, "@"}, {Identifier, "vertex"}, {Keyword, "fn"}, {Identifier, "main"},
		{Symbol, "("}, {Symbol, ")"}, {Symbol, "->"}, {Symbol, "@"}, {Identifier, "builtin"},
		{Symbol, "("}, {Identifier, "position"}, {Symbol, ")"}, {Keyword, "vec4"},
		{Symbol, "<"}, {Keyword, "f32"}, {Symbol, ">"}, {Symbol, "{"}, {Symbol, "}"},
	}, simplify(tokens))
}

func TestTokenizeEmpty(t *testing.T) {
	assert.Empty(t, Tokenize("", lang.GLSL))
	assert.Equal(t, []kv{{Whitespace, " \n\t"}}, simplify(Tokenize(" \n\t", nil)))
}

func TestNeedsSpace(t *testing.T) {
	id := func(s string) Token { return Token{Kind: Identifier, Value: s} }
	sym := func(s string) Token { return Token{Kind: Symbol, Value: s} }
	num := func(s string) Token { return Token{Kind: Int, Value: s} }

	tests := []struct {
		prev, next Token
		want       bool
	}{
		{id("a"), id("b"), true},
		{Token{Kind: Keyword, Value: "float"}, id("x"), true},
		{id("a"), sym("+"), false},
		{sym("+"), id("a"), false},
		{sym("-"), sym("-"), true},
		{sym("+"), sym("+="), true},
		{sym("/"), sym("/"), true},
		{sym("/"), sym("*"), true},
		{sym("<"), sym("<"), true},
		{sym("="), sym("-"), false},
		{sym(")"), sym(";"), false},
		{sym("*"), sym("-"), false},
		{num("1"), id("u"), true},
		{sym("."), num("5"), true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NeedsSpace(tt.prev, tt.next, lang.GLSL), "%q %q", tt.prev.Value, tt.next.Value)
	}

	// WGSL has no ^^, so ^ ^ is safe to print adjacent there.
	assert.True(t, NeedsSpace(sym("^"), sym("^"), lang.GLSL))
	assert.False(t, NeedsSpace(sym("^"), sym("^"), lang.WGSL))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "identifier", Identifier.String())
	assert.Equal(t, "whitespace", Whitespace.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
