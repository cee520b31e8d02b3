// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package render

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/gogpu/shaderkit/lang"
)

// DefaultStyle is the chroma style used for highlighting.
const DefaultStyle = "monokai"

// Highlight writes source to w with terminal colour escapes for its
// dialect. Unknown dialects and styles fall back to plain text lexing and
// the default chroma style.
func Highlight(w io.Writer, source string, d *lang.Dialect, style string) error {
	if d == nil {
		d = lang.GLSL
	}
	lexer := lexers.Get(strings.ToLower(d.Name))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return err
	}
	return formatter.Format(w, styles.Get(style), it)
}
