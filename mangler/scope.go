// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package mangler

import (
	"github.com/gogpu/shaderkit/lexer"
)

// site marks an identifier that may be renamed.
type site struct {
	// key is the map key: the bare name, or "prefix.member".
	key string
	// decl is set at a declaration; other sites only reuse existing renames.
	decl bool
	// member is set for aggregate members and for names following '.'.
	member bool
}

// aggregate is a brace-delimited struct or interface block body.
type aggregate struct {
	// prefix qualifies member keys. Empty for anonymous interface blocks,
	// whose members are globals.
	prefix string
	// nested is set when the aggregate is declared inside another one.
	nested bool
	// open is the index of the opening brace.
	open int
}

// analyze walks the token stream once and records every rename site.
// Declarations that must keep their name are pinned so that no other
// declaration of the same name is renamed in this unit.
func (m *minifier) analyze() {
	for i := 0; i < len(m.tokens); i++ {
		tok := m.tokens[i]

		if m.directiveAt(i) {
			for i < len(m.tokens) && !m.tokens[i].IsDirectiveEnd() {
				i++
			}
			continue
		}

		switch tok.Kind {
		case lexer.Identifier:
			m.identifier(i)
			continue
		case lexer.Keyword:
			switch {
			case tok.Value == "layout" && m.at(i+1).Is("("):
				i = m.skipGroup(i + 1)
			case tok.Value == "case":
				m.inCase = true
			}
			continue
		case lexer.Symbol:
		default:
			continue
		}

		switch tok.Value {
		case "@":
			// Attribute names and arguments are never renamed.
			attr := m.at(i + 1)
			if attr.IsWord() {
				i++
			}
			if m.at(i + 1).Is("(") {
				i = m.skipGroup(i + 1)
			}
			if attr.IsWord() && m.d.Stages.Has(attr.Value) {
				m.pinEntryPoint(i + 1)
			}
		case "{":
			m.open(i)
			m.ternary, m.inCase = 0, false
		case "}":
			if n := len(m.scopes); n > 0 {
				m.scopes = m.scopes[:n-1]
			}
			m.ternary, m.inCase = 0, false
		case ";":
			m.ternary, m.inCase = 0, false
		case "?":
			m.ternary++
		case ":":
			if m.ternary > 0 {
				m.ternary--
			} else {
				m.inCase = false
			}
		}
	}
}

// pinEntryPoint pins the name of the function declared at i, skipping any
// further attributes in front of it.
func (m *minifier) pinEntryPoint(i int) {
	for i < len(m.tokens) && m.tokens[i].Is("@") {
		if m.at(i + 1).IsWord() {
			i++
		}
		if m.at(i + 1).Is("(") {
			i = m.skipGroup(i + 1)
		}
		i++
	}
	if fn := m.at(i); fn.Kind == lexer.Keyword && fn.Value == "fn" {
		if name := m.at(i + 1); name.Kind == lexer.Identifier {
			m.pinned[name.Value] = true
		}
	}
}

// skipGroup returns the index of the token closing the group opened at i,
// or i when the group is unbalanced.
func (m *minifier) skipGroup(i int) int {
	if j := m.match[i]; j > i {
		return j
	}
	return i
}

// identifier classifies the identifier at i.
func (m *minifier) identifier(i int) {
	name := m.tokens[i].Value
	prev, next := m.at(i-1), m.at(i+1)

	if prev.Is(".") {
		m.sites[i] = site{key: name, member: true}
		return
	}
	if !m.declares(i, prev, next) {
		m.sites[i] = site{key: name}
		return
	}

	if agg := m.innermost(); agg != nil {
		m.member(i, agg, next)
		return
	}
	if m.pinned[name] || !m.allowed(i) || (!m.opts.MangleExternals && m.external(i)) {
		m.pinned[name] = true
		return
	}
	m.sites[i] = site{key: name, decl: true}
}

// member classifies a declaration directly inside an aggregate body.
func (m *minifier) member(i int, agg *aggregate, next lexer.Token) {
	name := m.tokens[i].Value
	if agg.nested || next.Is("{") {
		return
	}
	if !m.opts.MangleProperties || !m.allowed(i) {
		if agg.prefix == "" {
			m.pinned[name] = true
		}
		return
	}
	if agg.prefix == "" {
		if !m.pinned[name] {
			m.sites[i] = site{key: name, decl: true}
		}
		return
	}
	m.sites[i] = site{key: agg.prefix + "." + name, decl: true, member: true}
}

func (m *minifier) allowed(i int) bool {
	return m.opts.Matcher == nil || m.opts.Matcher(m.tokens[i], i, m.tokens)
}

// innermost returns the aggregate whose body directly encloses the current
// position, or nil inside an ordinary block or at global scope.
func (m *minifier) innermost() *aggregate {
	if n := len(m.scopes); n > 0 {
		return m.scopes[n-1]
	}
	return nil
}

// declares reports whether the identifier at i is the name being declared.
// An identifier followed by another identifier is the declaration's type.
func (m *minifier) declares(i int, prev, next lexer.Token) bool {
	if next.Kind == lexer.Identifier {
		return false
	}

	switch prev.Kind {
	case lexer.Keyword:
		return m.declaring(prev.Value)
	case lexer.Identifier:
		return true
	case lexer.Symbol:
		switch prev.Value {
		case "}":
			if m.aggregates[i-1] != nil {
				return true
			}
		case ",", "]":
			start, inParens := m.segment(i)
			if (!inParens || m.headerList(start-1)) && m.startsDeclaration(start) {
				return true
			}
		case ">":
			if m.varTemplate(i - 1) {
				return true
			}
		}
	}

	return next.Is(":") && m.ternary == 0 && !m.inCase
}

// declaring reports whether a keyword can directly precede a declared name.
func (m *minifier) declaring(word string) bool {
	return m.d.IsType(word) || m.d.IsQualifier(word) || word == "struct" || word == "fn"
}

// varTemplate reports whether the '>' at i closes a var<...> template.
func (m *minifier) varTemplate(i int) bool {
	for j := i - 1; j > 0; j-- {
		tok := m.tokens[j]
		switch {
		case tok.Is("<"):
			prev := m.tokens[j-1]
			return prev.Kind == lexer.Keyword && prev.Value == "var"
		case tok.IsWord(), tok.Is(","):
		default:
			return false
		}
	}
	return false
}

// headerList reports whether the '(' at open begins a function parameter
// list or a for-loop header. Any other group is an expression.
func (m *minifier) headerList(open int) bool {
	if !m.at(open).Is("(") {
		return false
	}
	name := m.at(open - 1)
	if name.Kind == lexer.Keyword {
		return name.Value == "for"
	}
	if name.Kind != lexer.Identifier {
		return false
	}
	ret := m.at(open - 2)
	switch ret.Kind {
	case lexer.Keyword:
		return m.d.IsType(ret.Value) || ret.Value == "fn"
	case lexer.Identifier:
		return true
	}
	return false
}

// startsDeclaration reports whether the statement beginning at start is a
// declaration. A type followed by '(' is a constructor call.
func (m *minifier) startsDeclaration(start int) bool {
	tok := m.at(start)
	switch tok.Kind {
	case lexer.Keyword:
		if m.d.IsType(tok.Value) {
			next := m.at(start + 1)
			return next.Kind == lexer.Identifier || next.Is("[")
		}
		return tok.Value == "layout" || m.declaring(tok.Value)
	case lexer.Identifier:
		return m.at(start+1).Kind == lexer.Identifier
	}
	return false
}

// segment returns the index of the first token of the declaration line
// that governs the token at i. The line runs back to the nearest ';', '{',
// '}', directive or unmatched '(' or '['. A struct or block body followed by
// an instance name belongs to the line. inParens is set when the line was
// cut by an unmatched '(' or '['.
func (m *minifier) segment(i int) (start int, inParens bool) {
	for j := i - 1; j >= 0; j-- {
		tok := m.tokens[j]
		if tok.Kind != lexer.Symbol {
			continue
		}
		switch tok.Value {
		case ")", "]":
			open := m.match[j]
			if open < 0 {
				return j + 1, false
			}
			j = open
		case "(", "[":
			return j + 1, true
		case "}":
			agg := m.aggregates[j]
			if agg == nil || m.at(j+1).Kind != lexer.Identifier {
				return j + 1, false
			}
			j = agg.open
		case ";", "{", lexer.DirectiveEnd:
			return j + 1, false
		}
	}
	return 0, false
}

// external reports whether the declaration line governing i carries an
// external storage qualifier. Parameter lists are never external.
func (m *minifier) external(i int) bool {
	start, inParens := m.segment(i)
	if inParens {
		return false
	}
	for j := start; j < i; j++ {
		tok := m.tokens[j]
		if tok.Is("{") && m.match[j] > j {
			j = m.match[j]
			continue
		}
		if tok.Kind == lexer.Keyword && m.d.IsExternal(tok.Value) {
			return true
		}
	}
	return false
}

// open pushes the scope opened by the brace at i.
func (m *minifier) open(i int) {
	agg := m.aggregateAt(i)
	if agg != nil {
		for _, outer := range m.scopes {
			if outer != nil {
				agg.nested = true
			}
		}
		if c := m.match[i]; c > i {
			m.aggregates[c] = agg
		}
	}
	m.scopes = append(m.scopes, agg)
}

// aggregateAt recognizes struct bodies and interface blocks at the brace i.
func (m *minifier) aggregateAt(i int) *aggregate {
	prev := m.at(i - 1)
	switch {
	case prev.Kind == lexer.Keyword && prev.Value == "struct":
		return &aggregate{prefix: m.instanceAfter(i), open: i}
	case prev.Kind != lexer.Identifier:
		return nil
	case m.at(i-2).Kind == lexer.Keyword && m.at(i-2).Value == "struct":
		return &aggregate{prefix: prev.Value, open: i}
	}

	start, inParens := m.segment(i)
	if inParens {
		return nil
	}
	for j := start; j < i; j++ {
		tok := m.tokens[j]
		if tok.Is("(") {
			j = m.skipGroup(j)
			continue
		}
		if tok.Kind == lexer.Keyword && (tok.Value == "layout" || m.d.IsExternal(tok.Value)) {
			return &aggregate{prefix: m.instanceAfter(i), open: i}
		}
	}
	return nil
}

// instanceAfter returns the instance name following the body opened at i.
func (m *minifier) instanceAfter(i int) string {
	c := m.match[i]
	if c < 0 {
		return ""
	}
	if tok := m.at(c + 1); tok.Kind == lexer.Identifier {
		return tok.Value
	}
	return ""
}
