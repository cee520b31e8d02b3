// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shaderkit/lang"
)

const project = `
mode = "format"
dialect = "wgsl"

[mangle]
enabled = true
properties = true
map = "names.yaml"
reserved = ["main", "vs_main"]

[output]
path = "dist"
color = "never"
`

func TestDecode(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode([]byte(project), &cfg))

	assert.Equal(t, ModeFormat, cfg.Mode)
	assert.Equal(t, "wgsl", cfg.Dialect)
	assert.Empty(t, cfg.Target)
	assert.True(t, cfg.Mangle.Enabled)
	assert.False(t, cfg.Mangle.Externals)
	assert.True(t, cfg.Mangle.Properties)
	assert.Equal(t, "names.yaml", cfg.Mangle.Map)
	assert.Equal(t, []string{"main", "vs_main"}, cfg.Mangle.Reserved)
	assert.Equal(t, "dist", cfg.Output.Path)
	assert.Equal(t, ColorNever, cfg.Output.Color)
}

func TestDecodeKeepsDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode([]byte("[mangle]\nenabled = true\n"), &cfg))
	assert.Equal(t, ModeMinify, cfg.Mode)
	assert.Equal(t, "glsl", cfg.Dialect)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
	assert.True(t, cfg.Mangle.Enabled)
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "mode = "},
		{"mode", `mode = "compile"`},
		{"dialect", `dialect = "hlsl"`},
		{"target", `target = "msl"`},
		{"color", "[output]\ncolor = \"sometimes\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, Decode([]byte(tt.data), &cfg))
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Target = "wgsl"
	cfg.Mangle = Mangle{Enabled: true, Externals: true, Map: "m.yaml", Reserved: []string{"main"}}

	data, err := Encode(cfg)
	require.NoError(t, err)

	got := Default()
	require.NoError(t, Decode(data, &got))
	assert.Equal(t, cfg, got)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(project), 0o644))

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, ModeFormat, cfg.Mode)

	_, err = Load(filepath.Join(dir, "missing.toml"), false)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err = Load(filepath.Join(dir, "missing.toml"), true)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		name string
		want *lang.Dialect
	}{
		{"", lang.GLSL},
		{"glsl", lang.GLSL},
		{"GLSL", lang.GLSL},
		{"wgsl", lang.WGSL},
	}
	for _, tt := range tests {
		d, err := ParseDialect(tt.name)
		require.NoError(t, err)
		assert.Same(t, tt.want, d, tt.name)
	}

	_, err := ParseDialect("spirv")
	assert.Error(t, err)
}

func TestExpandPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	cfg := Default()
	cfg.Mangle.Map = "~/names.yaml"
	cfg.Output.Path = "~/dist/"
	require.NoError(t, cfg.ExpandPaths())
	assert.Equal(t, filepath.Join(home, "names.yaml"), cfg.Mangle.Map)
	assert.Equal(t, filepath.Join(home, "dist")+string(filepath.Separator), cfg.Output.Path)

	cfg = Default()
	cfg.Output.Path = "out.glsl"
	require.NoError(t, cfg.ExpandPaths())
	assert.Equal(t, "out.glsl", cfg.Output.Path)
	assert.Empty(t, cfg.Mangle.Map)

	cfg.Mangle.Map = "~other/names.yaml"
	assert.Error(t, cfg.ExpandPaths())
}
