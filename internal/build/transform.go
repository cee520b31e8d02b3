// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package build

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/gogpu/shaderkit"
	"github.com/gogpu/shaderkit/ast"
	"github.com/gogpu/shaderkit/internal/config"
	"github.com/gogpu/shaderkit/lang"
	"github.com/gogpu/shaderkit/mangler"
)

// dumper prints AST trees without pointer addresses so output is stable.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Transform applies one mode to source. Minification uses mangle, whose
// map is updated in place.
func Transform(mode, source string, dialect, target *lang.Dialect, mangle mangler.Options) (string, error) {
	switch mode {
	case config.ModeMinify:
		mangle.Dialect = dialect
		return shaderkit.Minify(source, mangle), nil

	case config.ModeFormat:
		return shaderkit.Format(source, shaderkit.FormatOptions{Dialect: dialect, Target: target})

	case config.ModeTokens:
		var sb strings.Builder
		tokens := shaderkit.TokenizeWithOptions(source, shaderkit.TokenizeOptions{Dialect: dialect, Filter: true})
		for _, tok := range tokens {
			value := tok.Value
			if tok.IsDirectiveEnd() {
				value = "<end>"
			}
			fmt.Fprintf(&sb, "%s\t%s\t%s\n", tok.Pos, tok.Kind, value)
		}
		return sb.String(), nil

	case config.ModeAST:
		stmts, err := shaderkit.ParseWithOptions(source, shaderkit.ParseOptions{Dialect: dialect})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s%d nodes\n", dumper.Sdump(stmts), countNodes(stmts)), nil
	}
	return "", fmt.Errorf("unknown mode %q", mode)
}

// countNodes returns the number of nodes in the trees rooted at stmts.
func countNodes(stmts []ast.Statement) int {
	n := 0
	for _, stmt := range stmts {
		ast.Inspect(stmt, func(ast.Node) bool {
			n++
			return true
		})
	}
	return n
}
