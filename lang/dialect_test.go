// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchSymbol(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<<=1", "<<="},
		{"<<1", "<<"},
		{"<1", "<"},
		{"++i", "++"},
		{"+=", "+="},
		{"//x", "//"},
		{"^^", "^^"},
		{"$", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GLSL.MatchSymbol(tt.input), "input %q", tt.input)
	}
}

func TestWGSLSymbols(t *testing.T) {
	assert.Equal(t, "->", WGSL.MatchSymbol("->f32"))
	assert.Equal(t, "@", WGSL.MatchSymbol("@vertex"))
	assert.Equal(t, "^", WGSL.MatchSymbol("^^"))
	assert.Equal(t, "-", GLSL.MatchSymbol("->"))
}

func TestSymbolsLongestFirst(t *testing.T) {
	for _, d := range []*Dialect{GLSL, WGSL} {
		for i := 1; i < len(d.Symbols); i++ {
			assert.GreaterOrEqual(t, len(d.Symbols[i-1]), len(d.Symbols[i]), "%s: %q before %q", d.Name, d.Symbols[i-1], d.Symbols[i])
		}
	}
}

func TestClassification(t *testing.T) {
	assert.True(t, GLSL.IsKeyword("vec3"))
	assert.True(t, GLSL.IsKeyword("texture"))
	assert.True(t, GLSL.IsKeyword("gl_FragCoord"))
	assert.True(t, GLSL.IsKeyword("uniform"), "qualifiers are reserved")
	assert.False(t, GLSL.IsKeyword("main"))
	assert.False(t, GLSL.IsKeyword("true"))

	assert.True(t, GLSL.IsType("sampler2D"))
	assert.False(t, GLSL.IsType("uniform"))
	assert.True(t, GLSL.IsQualifier("highp"))
	assert.True(t, GLSL.IsExternal("attribute"))
	assert.False(t, GLSL.IsExternal("const"))
	assert.True(t, GLSL.Directives.Has("include"))
	assert.True(t, GLSL.Precisions.Has("mediump"))

	assert.True(t, WGSL.IsKeyword("fn"))
	assert.True(t, WGSL.IsType("f32"))
	assert.True(t, WGSL.IsExternal("storage"))
	assert.False(t, WGSL.IsExternal("private"))
	assert.True(t, WGSL.Stages.Has("vertex"))
	assert.False(t, GLSL.Stages.Has("vertex"))
}

func TestLookup(t *testing.T) {
	d, ok := Lookup("wgsl")
	require.True(t, ok)
	assert.Same(t, WGSL, d)

	d, ok = Lookup("")
	require.True(t, ok)
	assert.Same(t, GLSL, d)

	_, ok = Lookup("hlsl")
	assert.False(t, ok)
}

func TestCustomDialect(t *testing.T) {
	d := New("Tiny", Tables{
		Types:   []string{"num"},
		Symbols: []string{"=", "==", "===", ";"},
	})
	assert.Equal(t, "===", d.MatchSymbol("===="))
	assert.True(t, d.IsKeyword("num"))
	assert.Equal(t, []string{"===", "==", "=", ";"}, d.Symbols)
}

func TestSetSorted(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, NewSet("c", "a", "b").Sorted())
	assert.Empty(t, Set{}.Sorted())
}
