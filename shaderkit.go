// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package shaderkit provides a Pure Go front-end for GLSL and WGSL shader
// source: tokenizer, parser, generator and minifier.
//
// The package offers a simple high-level API. The individual stages live in
// their own packages:
//   - lexer: source text to tokens, lossless and infallible
//   - parser: tokens to an AST (package ast)
//   - generator: AST back to compact canonical source
//   - mangler: token-level minification and identifier renaming
//
// Example usage:
//
//	stmts, err := shaderkit.Parse(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(shaderkit.Generate(stmts, generator.DefaultOptions()))
//
// Minifying with renaming:
//
//	opts := mangler.DefaultOptions()
//	opts.Mangle = true
//	small := shaderkit.Minify(source, opts)
package shaderkit

import (
	"fmt"

	"github.com/gogpu/shaderkit/ast"
	"github.com/gogpu/shaderkit/generator"
	"github.com/gogpu/shaderkit/lang"
	"github.com/gogpu/shaderkit/lexer"
	"github.com/gogpu/shaderkit/mangler"
	"github.com/gogpu/shaderkit/parser"
)

// TokenizeOptions configures tokenization.
type TokenizeOptions struct {
	// Dialect selects keyword and symbol tables (default: GLSL).
	Dialect *lang.Dialect

	// Filter drops whitespace and comment tokens.
	Filter bool
}

// ParseOptions configures parsing.
type ParseOptions struct {
	// Dialect is the source language (default: GLSL).
	Dialect *lang.Dialect
}

// FormatOptions configures Format.
type FormatOptions struct {
	// Dialect is the source language (default: GLSL).
	Dialect *lang.Dialect

	// Target is the output syntax (default: the source dialect).
	Target *lang.Dialect
}

// DefaultOptions returns options formatting GLSL as GLSL.
func DefaultOptions() FormatOptions {
	return FormatOptions{
		Dialect: lang.GLSL,
		Target:  lang.GLSL,
	}
}

// Tokenize splits GLSL source into tokens, whitespace and comments included.
// Concatenating the token values reproduces the source.
func Tokenize(source string) []lexer.Token {
	return TokenizeWithOptions(source, TokenizeOptions{})
}

// TokenizeWithOptions splits source into tokens with custom options.
func TokenizeWithOptions(source string, opts TokenizeOptions) []lexer.Token {
	tokens := lexer.Tokenize(source, opts.Dialect)
	if opts.Filter {
		tokens = lexer.Filter(tokens)
	}
	return tokens
}

// Minify strips comments and whitespace from source and renames
// declarations as configured. It never fails.
func Minify(source string, opts mangler.Options) string {
	return mangler.Minify(source, opts)
}

// Parse parses GLSL source to a list of top-level statements.
//
// A syntax error aborts parsing; the returned error wraps a
// *parser.ParseError carrying the offending token and its position.
func Parse(source string) ([]ast.Statement, error) {
	return ParseWithOptions(source, ParseOptions{})
}

// ParseWithOptions parses source with custom options.
func ParseWithOptions(source string, opts ParseOptions) ([]ast.Statement, error) {
	stmts, err := parser.Parse(source, opts.Dialect)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return stmts, nil
}

// Generate prints statements as compact canonical source.
func Generate(stmts []ast.Statement, opts generator.Options) string {
	return generator.Generate(stmts, opts)
}

// Format parses source and prints it back in canonical form.
//
// The pipeline is:
//  1. Tokenize and parse in opts.Dialect
//  2. Generate for opts.Target
func Format(source string, opts FormatOptions) (string, error) {
	stmts, err := ParseWithOptions(source, ParseOptions{Dialect: opts.Dialect})
	if err != nil {
		return "", err
	}
	target := opts.Target
	if target == nil {
		target = opts.Dialect
	}
	return Generate(stmts, generator.Options{Target: target}), nil
}
