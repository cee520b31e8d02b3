// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package mangler minifies shader source at the token level and optionally
// renames declarations to short identifiers.
//
// The mangler works on the filtered token stream rather than the AST, so it
// accepts fragments the parser would reject. It never fails: anything it
// cannot classify is copied through unchanged.
//
// Renames are recorded in Options.MangleMap, keyed by the declared name or,
// for aggregate members, by "Aggregate.member". Reusing one map across
// several units renames shared names consistently. The map is mutated in
// place and is not safe for concurrent use.
package mangler

import (
	"sort"
	"strings"

	"github.com/gogpu/shaderkit/lang"
	"github.com/gogpu/shaderkit/lexer"
)

// Matcher decides per declaration whether it may be renamed. index is the
// position of tok within tokens, the filtered token stream.
type Matcher func(tok lexer.Token, index int, tokens []lexer.Token) bool

// Options configures Minify.
type Options struct {
	// Mangle enables renaming. Without it Minify only strips comments and
	// whitespace.
	Mangle bool

	// Matcher, if set, vetoes individual declarations.
	Matcher Matcher

	// MangleMap receives the renames. A nil map is replaced by a private one.
	MangleMap map[string]string

	// MangleExternals renames declarations carrying an external storage
	// qualifier (uniform, in, out, attribute, varying, buffer).
	MangleExternals bool

	// MangleProperties renames members of structs and interface blocks.
	MangleProperties bool

	// Dialect selects keyword and symbol tables. Nil means GLSL.
	Dialect *lang.Dialect

	// Reserved names are never renamed. Nil means the dialect's entry points.
	Reserved []string
}

// DefaultOptions returns options that minify GLSL without renaming.
func DefaultOptions() Options {
	return Options{
		Dialect:  lang.GLSL,
		Reserved: []string{"main"},
	}
}

// Minify returns source without comments and redundant whitespace, with
// declarations renamed when opts.Mangle is set.
func Minify(source string, opts Options) string {
	m := newMinifier(source, opts)
	if opts.Mangle {
		m.analyze()
		m.prepare()
	}
	return m.emit()
}

// minifier holds the state of one Minify call.
type minifier struct {
	opts   Options
	d      *lang.Dialect
	tokens []lexer.Token

	// match pairs brackets, parentheses and braces; -1 when unbalanced.
	match []int

	// Set by analyze.
	sites  map[int]site
	pinned map[string]bool
	scopes []*aggregate
	// aggregates is keyed by the index of the closing brace.
	aggregates map[int]*aggregate
	ternary    int
	inCase     bool

	// Set by prepare.
	names   *namer
	values  map[string]bool
	members map[string]string

	out  strings.Builder
	last lexer.Token
}

func newMinifier(source string, opts Options) *minifier {
	d := opts.Dialect
	if d == nil {
		d = lang.GLSL
	}
	if opts.MangleMap == nil {
		opts.MangleMap = make(map[string]string)
	}
	if opts.Reserved == nil {
		opts.Reserved = d.EntryPoints.Sorted()
	}

	m := &minifier{
		opts:       opts,
		d:          d,
		tokens:     lexer.Filter(lexer.Tokenize(source, d)),
		sites:      make(map[int]site),
		pinned:     make(map[string]bool),
		aggregates: make(map[int]*aggregate),
		last:       lexer.Token{Kind: lexer.Whitespace},
	}
	m.match = matchBrackets(m.tokens)
	for _, name := range opts.Reserved {
		m.pinned[name] = true
	}
	return m
}

// prepare seeds the namer and the member index from the map and the unit.
func (m *minifier) prepare() {
	m.names = newNamer(m.d.IsKeyword)
	m.values = make(map[string]bool, len(m.opts.MangleMap))
	m.members = make(map[string]string)

	keys := make([]string, 0, len(m.opts.MangleMap))
	for key, value := range m.opts.MangleMap {
		keys = append(keys, key)
		m.values[value] = true
		m.names.reserve(value)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if dot := strings.LastIndexByte(key, '.'); dot >= 0 {
			member := key[dot+1:]
			if _, ok := m.members[member]; !ok {
				m.members[member] = m.opts.MangleMap[key]
			}
		}
	}

	for _, tok := range m.tokens {
		if tok.Kind == lexer.Identifier {
			m.names.reserve(tok.Value)
		}
	}
	for name := range m.pinned {
		m.names.reserve(name)
	}
}

// rename resolves the output name of the identifier at a site.
func (m *minifier) rename(name string, s site) string {
	if m.values[name] {
		return name
	}
	if s.member && !s.decl {
		if short, ok := m.members[name]; ok {
			return short
		}
		return name
	}
	if !s.member && m.pinned[name] {
		return name
	}
	if short, ok := m.opts.MangleMap[s.key]; ok {
		return short
	}
	if !s.decl {
		return name
	}

	var short string
	if s.member {
		member := s.key[strings.LastIndexByte(s.key, '.')+1:]
		prior, ok := m.members[member]
		if !ok {
			prior = m.names.next()
			m.members[member] = prior
		}
		short = prior
	} else {
		short = m.names.next()
	}
	m.opts.MangleMap[s.key] = short
	m.values[short] = true
	return short
}

// emit writes the minified text.
func (m *minifier) emit() string {
	for i := 0; i < len(m.tokens); i++ {
		tok := m.tokens[i]
		if m.directiveAt(i) {
			i = m.directive(i)
			continue
		}
		if s, ok := m.sites[i]; ok {
			tok.Value = m.rename(tok.Value, s)
		}
		m.write(tok, lexer.NeedsSpace(m.last, tok, m.d))
	}
	return strings.TrimSpace(m.out.String())
}

func (m *minifier) write(tok lexer.Token, space bool) {
	if space {
		m.out.WriteByte(' ')
	}
	m.out.WriteString(tok.Value)
	m.last = tok
}

// directive copies the directive starting at i onto its own line and
// returns the index of its end marker.
func (m *minifier) directive(i int) int {
	if m.out.Len() > 0 {
		if s := m.out.String(); s[len(s)-1] != '\n' {
			m.out.WriteByte('\n')
		}
	}
	m.write(m.tokens[i], false)

	j := i + 1
	for ; j < len(m.tokens) && !m.tokens[j].IsDirectiveEnd(); j++ {
		tok := m.tokens[j]
		var space bool
		// The gap after the directive name and after a #define name is
		// significant: "#define F(x)" differs from "#define F (x)".
		if j == i+2 || (j == i+3 && m.tokens[i+1].Value == "define") {
			space = !adjacent(m.tokens[j-1], tok)
		} else {
			space = lexer.NeedsSpace(m.last, tok, m.d)
		}
		m.write(tok, space)
	}

	m.out.WriteByte('\n')
	m.last = lexer.Token{Kind: lexer.Whitespace}
	return j
}

// directiveAt reports whether a preprocessor line starts at i. A '#' opens
// a directive only as the first token on its line.
func (m *minifier) directiveAt(i int) bool {
	tok := m.tokens[i]
	if !tok.Is("#") {
		return false
	}
	if i == 0 {
		return true
	}
	prev := m.tokens[i-1]
	return prev.IsDirectiveEnd() || prev.Pos.Line < tok.Pos.Line
}

// at returns the token at i, or a whitespace token when i is out of range.
func (m *minifier) at(i int) lexer.Token {
	if i < 0 || i >= len(m.tokens) {
		return lexer.Token{Kind: lexer.Whitespace}
	}
	return m.tokens[i]
}

func adjacent(a, b lexer.Token) bool {
	return a.Pos.Offset+len(a.Value) == b.Pos.Offset
}

// matchBrackets pairs every (, [ and { with its closer outside directives.
func matchBrackets(tokens []lexer.Token) []int {
	match := make([]int, len(tokens))
	for i := range match {
		match[i] = -1
	}

	closers := map[string]string{")": "(", "]": "[", "}": "{"}
	var stack []int
	inDirective := false
	for i, tok := range tokens {
		if tok.Kind != lexer.Symbol {
			continue
		}
		switch {
		case inDirective:
			inDirective = !tok.IsDirectiveEnd()
		case tok.Value == "#" && (i == 0 || tokens[i-1].IsDirectiveEnd() || tokens[i-1].Pos.Line < tok.Pos.Line):
			inDirective = true
		case tok.Value == "(" || tok.Value == "[" || tok.Value == "{":
			stack = append(stack, i)
		default:
			open, ok := closers[tok.Value]
			if !ok || len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if tokens[top].Value != open {
				continue
			}
			stack = stack[:len(stack)-1]
			match[top], match[i] = i, top
		}
	}
	return match
}
