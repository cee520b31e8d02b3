// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package lang holds the static lexical tables of the supported shading
// languages: keywords, directive names, type and qualifier names, and the
// operator/punctuation table.
//
// Tables are plain data. The tokenizer, parser and mangler only consult them
// through a *Dialect, so another shading language can be supported by
// constructing a new Dialect without touching the scanning logic.
package lang

import (
	"sort"
	"strings"
)

// Set is an exact-text lookup set.
type Set map[string]struct{}

// NewSet builds a set from the given words.
func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Has reports whether word is in the set.
func (s Set) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Sorted returns the words of the set in lexical order.
func (s Set) Sorted() []string {
	words := make([]string, 0, len(s))
	for w := range s {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// Tables is the raw configuration a Dialect is built from.
type Tables struct {
	Keywords    []string
	Directives  []string
	Types       []string
	Qualifiers  []string
	Externals   []string
	Precisions  []string
	EntryPoints []string
	Stages      []string
	Symbols     []string

	NestedComments bool
}

// Dialect describes the lexical surface of one shading language.
type Dialect struct {
	// Name is the canonical dialect name ("GLSL", "WGSL").
	Name string

	// Keywords are reserved words: types, control keywords, reserved words,
	// built-in variables and functions. Words in this set are never renamed.
	Keywords Set

	// Directives are preprocessor directive names, without the leading '#'.
	Directives Set

	// Types are the built-in type names a declaration may start with.
	Types Set

	// Qualifiers are storage, interpolation, precision and declaration
	// keywords that may precede a type.
	Qualifiers Set

	// Externals are the storage qualifiers that make a declaration part of
	// the shader's external interface.
	Externals Set

	// Precisions are the precision qualifiers accepted by a precision statement.
	Precisions Set

	// EntryPoints are names that are never renamed.
	EntryPoints Set

	// Stages are the attribute names marking an entry point function. The
	// marked function keeps its name.
	Stages Set

	// Symbols is the operator/punctuation table, longest first.
	Symbols []string

	// NestedComments is set when block comments nest (WGSL).
	NestedComments bool

	symbols      Set
	maxSymbolLen int
}

// New builds a Dialect from raw tables. Symbols are reordered longest first
// so that matching always prefers the longest operator.
func New(name string, t Tables) *Dialect {
	symbols := append([]string(nil), t.Symbols...)
	sort.SliceStable(symbols, func(i, j int) bool {
		return len(symbols[i]) > len(symbols[j])
	})

	d := &Dialect{
		Name:        name,
		Keywords:    NewSet(t.Keywords...),
		Directives:  NewSet(t.Directives...),
		Types:       NewSet(t.Types...),
		Qualifiers:  NewSet(t.Qualifiers...),
		Externals:   NewSet(t.Externals...),
		Precisions:  NewSet(t.Precisions...),
		EntryPoints: NewSet(t.EntryPoints...),
		Stages:      NewSet(t.Stages...),
		Symbols:     symbols,

		NestedComments: t.NestedComments,

		symbols: NewSet(symbols...),
	}
	for _, s := range symbols {
		if len(s) > d.maxSymbolLen {
			d.maxSymbolLen = len(s)
		}
	}

	// Types and qualifiers are reserved even if a table forgot to list them.
	for w := range d.Types {
		d.Keywords[w] = struct{}{}
	}
	for w := range d.Qualifiers {
		d.Keywords[w] = struct{}{}
	}
	return d
}

// IsKeyword reports whether word is reserved in this dialect.
func (d *Dialect) IsKeyword(word string) bool { return d.Keywords.Has(word) }

// IsType reports whether word is a built-in type name.
func (d *Dialect) IsType(word string) bool { return d.Types.Has(word) }

// IsQualifier reports whether word is a declaration qualifier.
func (d *Dialect) IsQualifier(word string) bool { return d.Qualifiers.Has(word) }

// IsExternal reports whether word is an external storage qualifier.
func (d *Dialect) IsExternal(word string) bool { return d.Externals.Has(word) }

// IsSymbol reports whether s is exactly one entry of the symbol table.
func (d *Dialect) IsSymbol(s string) bool { return d.symbols.Has(s) }

// MatchSymbol returns the longest symbol that prefixes s, or "" if none does.
func (d *Dialect) MatchSymbol(s string) string {
	n := d.maxSymbolLen
	if n > len(s) {
		n = len(s)
	}
	for ; n > 0; n-- {
		if d.symbols.Has(s[:n]) {
			return s[:n]
		}
	}
	return ""
}

// Lookup returns the built-in dialect with the given name (case-insensitive).
func Lookup(name string) (*Dialect, bool) {
	switch strings.ToUpper(name) {
	case "GLSL", "":
		return GLSL, true
	case "WGSL":
		return WGSL, true
	}
	return nil, false
}
