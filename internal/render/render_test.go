// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shaderkit"
	"github.com/gogpu/shaderkit/lang"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

const broken = "void main() {\n  x = ;\n}\n"

func parseErr(t *testing.T, src string) error {
	t.Helper()
	_, err := shaderkit.Parse(src)
	require.Error(t, err)
	return err
}

func TestDiagnosticPlain(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, false)
	got := p.Diagnostic("lit.frag", broken, parseErr(t, broken))

	want := "error: expected expression, got \";\"\n" +
		"  --> lit.frag:2:7\n" +
		"   |\n" +
		"  2|   x = ;\n" +
		"   |       ^\n"
	assert.Equal(t, want, got)
}

func TestDiagnosticColor(t *testing.T) {
	plain := NewPrinter(&bytes.Buffer{}, false).Diagnostic("lit.frag", broken, parseErr(t, broken))
	colored := NewPrinter(&bytes.Buffer{}, true).Diagnostic("lit.frag", broken, parseErr(t, broken))

	assert.Contains(t, colored, "\x1b[")
	assert.Equal(t, plain, ansi.ReplaceAllString(colored, ""))
}

func TestDiagnosticOtherError(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, false)
	err := fmt.Errorf("read: %w", os.ErrNotExist)
	assert.Equal(t, "error: a.glsl: read: file does not exist\n", p.Diagnostic("a.glsl", "", err))
}

func TestDiagnosticWithoutPath(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, false)
	assert.Equal(t, "error: no input\n", p.Diagnostic("", "", errors.New("no input")))
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).Print("a.glsl", "", errors.New("boom"))
	assert.Equal(t, "error: a.glsl: boom\n", buf.String())
}

func TestColorEnabled(t *testing.T) {
	assert.True(t, ColorEnabled("always", nil))
	assert.False(t, ColorEnabled("never", os.Stdout))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, ColorEnabled("auto", f), "regular files are not terminals")
}

func TestHighlight(t *testing.T) {
	const src = "uniform float time;\nvoid main() {\n  gl_FragColor = vec4(time);\n}\n"

	var buf bytes.Buffer
	require.NoError(t, Highlight(&buf, src, lang.GLSL, DefaultStyle))
	assert.Contains(t, buf.String(), "\x1b[")
	assert.Equal(t, src, ansi.ReplaceAllString(buf.String(), ""))
}

func TestHighlightFallbacks(t *testing.T) {
	const src = "fn main() {}\n"

	var buf bytes.Buffer
	require.NoError(t, Highlight(&buf, src, lang.WGSL, "no-such-style"))
	assert.Equal(t, src, ansi.ReplaceAllString(buf.String(), ""))

	buf.Reset()
	require.NoError(t, Highlight(&buf, src, nil, DefaultStyle))
	assert.Equal(t, src, ansi.ReplaceAllString(buf.String(), ""))
}
