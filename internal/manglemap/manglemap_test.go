// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package manglemap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/shaderkit/mangler"
)

func TestEncodeSorted(t *testing.T) {
	data, err := Encode(map[string]string{
		"wave":            "b",
		"Light.intensity": "c",
		"color":           "a",
	})
	require.NoError(t, err)
	assert.Equal(t, "Light.intensity: c\ncolor: a\nwave: b\n", string(data))
}

func TestEncodeEmpty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)

	m, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestDecodeRejects(t *testing.T) {
	_, err := Decode([]byte("a: x\nb: x\n"))
	assert.ErrorContains(t, err, `both map to "x"`)

	_, err = Decode([]byte("a: ''\n"))
	assert.ErrorContains(t, err, "empty short name")

	_, err = Decode([]byte("[a, b]"))
	assert.Error(t, err)
}

func TestLoadMissing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Empty(t, m)
}

// A map saved after one run renames shared names identically in the next.
func TestSaveLoadAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.yaml")

	opts := mangler.DefaultOptions()
	opts.Mangle = true
	opts.MangleMap = map[string]string{}
	first := mangler.Minify("vec3 shade(vec3 n){return n;}", opts)
	require.NoError(t, Save(path, opts.MangleMap))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, opts.MangleMap, loaded)

	next := mangler.DefaultOptions()
	next.Mangle = true
	next.MangleMap = loaded
	second := mangler.Minify("vec3 shade(vec3 n);void main(){shade(vec3(0.0));}", next)

	assert.Equal(t, "vec3 a(vec3 b){return b;}", first)
	assert.Equal(t, "vec3 a(vec3 b);void main(){a(vec3(0.0));}", second)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: [1"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
