// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package build

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shaderkit/internal/config"
	"github.com/gogpu/shaderkit/internal/manglemap"
	"github.com/gogpu/shaderkit/lang"
	"github.com/gogpu/shaderkit/mangler"
	"github.com/gogpu/shaderkit/parser"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func minifyOptions() mangler.Options {
	opts := mangler.DefaultOptions()
	opts.Mangle = true
	return opts
}

// collector records results sent to Emit.
type collector map[string]string

func (c collector) emit(path, result string) error {
	c[filepath.Base(path)] = result
	return nil
}

func TestTransformModes(t *testing.T) {
	const src = "float x;\nreturn ( x + 1.0 ) * 2.0;"

	out, err := Transform(config.ModeMinify, src, lang.GLSL, lang.GLSL, minifyOptions())
	require.NoError(t, err)
	assert.Equal(t, "float a;return(a+1.0)*2.0;", out)

	out, err = Transform(config.ModeFormat, src, lang.GLSL, lang.GLSL, mangler.Options{})
	require.NoError(t, err)
	assert.Equal(t, "float x;return(x+1.0)*2.0;", out)

	out, err = Transform(config.ModeTokens, "float x;", lang.GLSL, lang.GLSL, mangler.Options{})
	require.NoError(t, err)
	assert.Equal(t, "1:1\tkeyword\tfloat\n1:7\tidentifier\tx\n1:8\tsymbol\t;\n", out)

	out, err = Transform(config.ModeAST, src, lang.GLSL, lang.GLSL, mangler.Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "(*ast.VariableDeclaration)")
	assert.Contains(t, out, "(*ast.ReturnStatement)")
	assert.NotContains(t, out, "0xc0")
	// Declaration, type, declarator; return, two binaries, x and two literals.
	assert.True(t, strings.HasSuffix(out, "\n9 nodes\n"), out)

	_, err = Transform("compile", src, lang.GLSL, lang.GLSL, mangler.Options{})
	assert.Error(t, err)
}

func TestTransformParseError(t *testing.T) {
	_, err := Transform(config.ModeFormat, "float x = ;", lang.GLSL, lang.GLSL, mangler.Options{})
	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 11, perr.Token.Pos.Column)
}

func TestBuildSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.glsl", "float foo;")
	out := collector{}

	b, err := New(Options{Mangle: minifyOptions(), Emit: out.emit, Logger: quiet()})
	require.NoError(t, err)

	stats, err := b.Build(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, Stats{Built: 1}, stats)
	assert.Equal(t, "float a;", out["a.glsl"])

	delete(out, "a.glsl")
	stats, err = b.Build(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, Stats{Skipped: 1}, stats)
	assert.NotContains(t, out, "a.glsl")

	writeFile(t, dir, "a.glsl", "float foo, bar;")
	stats, err = b.Build(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, Stats{Built: 1}, stats)
	assert.Equal(t, "float a,b;", out["a.glsl"])
}

func TestBuildContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.glsl", "void main() {\n  x = ;\n}\n")
	good := writeFile(t, dir, "good.glsl", "void main ( ) { }")
	out := collector{}

	b, err := New(Options{Mode: config.ModeFormat, Emit: out.emit, Logger: quiet()})
	require.NoError(t, err)

	stats, err := b.Build(context.Background(), []string{bad, good})
	assert.Equal(t, Stats{Built: 1, Failed: 1}, stats)
	assert.Equal(t, "void main(){}", out["good.glsl"])

	var ferr *FileError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, bad, ferr.Path)
	assert.Contains(t, ferr.Source, "x = ;")

	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Token.Pos.Line)

	// Failed inputs are retried even when unchanged.
	stats, _ = b.Build(context.Background(), []string{bad, good})
	assert.Equal(t, Stats{Skipped: 1, Failed: 1}, stats)
}

func TestBuildMissingInput(t *testing.T) {
	b, err := New(Options{Logger: quiet(), Emit: collector{}.emit})
	require.NoError(t, err)

	_, err = b.Build(context.Background(), []string{filepath.Join(t.TempDir(), "none.glsl")})
	var ferr *FileError
	require.True(t, errors.As(err, &ferr))
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, ferr.Source)
}

func TestBuildOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	one := writeFile(t, dir, "one.glsl", "float foo;")
	two := writeFile(t, dir, "two.glsl", "float bar, foo;")
	outDir := filepath.Join(dir, "dist") + string(filepath.Separator)

	b, err := New(Options{Mangle: minifyOptions(), Output: outDir, Logger: quiet()})
	require.NoError(t, err)
	_, err = b.Build(context.Background(), []string{one, two})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "dist", "one.glsl"))
	require.NoError(t, err)
	assert.Equal(t, "float a;\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "dist", "two.glsl"))
	require.NoError(t, err)
	assert.Equal(t, "float b,a;\n", string(data))
}

func TestBuildOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.glsl", "float foo;")
	out := filepath.Join(dir, "out.glsl")

	b, err := New(Options{Mangle: minifyOptions(), Output: out, Logger: quiet()})
	require.NoError(t, err)
	_, err = b.Build(context.Background(), []string{in})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "float a;\n", string(data))

	_, err = b.Build(context.Background(), []string{in, in})
	assert.ErrorContains(t, err, "must be a directory")
}

func TestOutputName(t *testing.T) {
	b, err := New(Options{Mode: config.ModeFormat, Target: lang.WGSL, Logger: quiet()})
	require.NoError(t, err)
	assert.Equal(t, "lit.wgsl", b.outputName("shaders/lit.frag"))

	b, err = New(Options{Mode: config.ModeFormat, Logger: quiet()})
	require.NoError(t, err)
	assert.Equal(t, "lit.frag", b.outputName("shaders/lit.frag"))
}

func TestBuildPersistsMangleMap(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "names.yaml")
	first := writeFile(t, dir, "first.glsl", "vec3 shade(vec3 n){return n;}")
	second := writeFile(t, dir, "second.glsl", "vec3 shade(vec3 n);void main(){shade(vec3(0.0));}")

	out := collector{}
	b, err := New(Options{Mangle: minifyOptions(), MapPath: mapPath, Emit: out.emit, Logger: quiet()})
	require.NoError(t, err)
	_, err = b.Build(context.Background(), []string{first})
	require.NoError(t, err)

	saved, err := manglemap.Load(mapPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"shade": "a", "n": "b"}, saved)

	// A fresh builder picks up the persisted names.
	b, err = New(Options{Mangle: minifyOptions(), MapPath: mapPath, Emit: out.emit, Logger: quiet()})
	require.NoError(t, err)
	assert.Equal(t, saved, b.MangleMap())
	_, err = b.Build(context.Background(), []string{second})
	require.NoError(t, err)
	assert.Equal(t, "vec3 a(vec3 b);void main(){a(vec3(0.0));}", out["second.glsl"])
}

func TestBuildCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.glsl", "float x;")
	b, err := New(Options{Logger: quiet(), Emit: collector{}.emit})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.Build(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, fingerprint([]byte("float x;")), fingerprint([]byte("float x;")))
	assert.NotEqual(t, fingerprint([]byte("float x;")), fingerprint([]byte("float y;")))
	// xxhash64 of the empty input with seed 0.
	assert.Equal(t, uint64(0xef46db3751d8e999), fingerprint(nil))
}
