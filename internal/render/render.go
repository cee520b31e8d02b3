// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package render formats CLI output for terminals: coloured diagnostics
// with source context, and syntax-highlighted shader source.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/gogpu/shaderkit/internal/config"
	"github.com/gogpu/shaderkit/parser"
)

// ColorEnabled resolves a color setting for f. "auto" enables colour when
// f is a terminal and NO_COLOR is unset.
func ColorEnabled(setting string, f *os.File) bool {
	switch setting {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Printer writes diagnostics, coloured or plain.
type Printer struct {
	out *termenv.Output
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, color bool) *Printer {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI
	}
	return &Printer{out: termenv.NewOutput(w, termenv.WithProfile(profile))}
}

func (p *Printer) style(s string, fg string, bold bool) string {
	st := p.out.String(s).Foreground(p.out.Color(fg))
	if bold {
		st = st.Bold()
	}
	return st.String()
}

func (p *Printer) red(s string) string  { return p.style(s, "1", true) }
func (p *Printer) blue(s string) string { return p.style(s, "4", true) }

// Diagnostic renders err for the file at path. Parse errors show the
// offending source line with a caret under the error column.
func (p *Printer) Diagnostic(path, source string, err error) string {
	var perr *parser.ParseError
	if !errors.As(err, &perr) || perr.Token.Pos.Line == 0 || source == "" {
		return p.plain(path, err.Error())
	}

	text := perr.FormatWithContext(source)
	if !strings.HasPrefix(text, "error: ") {
		return p.plain(path, text)
	}

	var sb strings.Builder
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			sb.WriteString(p.red("error:"))
			sb.WriteString(" ")
			sb.WriteString(p.out.String(strings.TrimPrefix(line, "error: ")).Bold().String())
		case strings.HasPrefix(line, "  --> "):
			sb.WriteString(p.blue("  -->"))
			fmt.Fprintf(&sb, " %s:%d:%d", path, perr.Token.Pos.Line, perr.Token.Pos.Column)
		case i == len(lines)-1 && strings.HasSuffix(line, "^"):
			gutter, caret, _ := strings.Cut(line, "|")
			sb.WriteString(p.blue(gutter + "|"))
			sb.WriteString(strings.TrimSuffix(caret, "^"))
			sb.WriteString(p.red("^"))
		default:
			gutter, rest, _ := strings.Cut(line, "|")
			sb.WriteString(p.blue(gutter + "|"))
			sb.WriteString(rest)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (p *Printer) plain(path, msg string) string {
	if path != "" {
		msg = path + ": " + msg
	}
	return p.red("error:") + " " + p.out.String(msg).Bold().String() + "\n"
}

// Print writes the diagnostic for err.
func (p *Printer) Print(path, source string, err error) {
	_, _ = io.WriteString(p.out, p.Diagnostic(path, source, err))
}
