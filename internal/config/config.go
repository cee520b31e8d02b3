// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package config loads shaderkit project configuration from TOML.
//
// A project file looks like:
//
//	mode = "minify"
//	dialect = "glsl"
//
//	[mangle]
//	enabled = true
//	externals = false
//	properties = false
//	map = "shaders.map.yaml"
//	reserved = ["main"]
//
//	[output]
//	path = "dist"
//	color = "auto"
//	highlight = false
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/shaderkit/lang"
)

// DefaultFile is the configuration file name looked up in the working directory.
const DefaultFile = "shaderkit.toml"

// Modes supported by the CLI.
const (
	ModeMinify = "minify"
	ModeFormat = "format"
	ModeTokens = "tokens"
	ModeAST    = "ast"
)

// Color settings.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the project configuration.
type Config struct {
	Mode    string `toml:"mode"`
	Dialect string `toml:"dialect"`
	Target  string `toml:"target"`

	Mangle Mangle `toml:"mangle"`
	Output Output `toml:"output"`
}

// Mangle configures identifier renaming.
type Mangle struct {
	Enabled    bool     `toml:"enabled"`
	Externals  bool     `toml:"externals"`
	Properties bool     `toml:"properties"`
	Map        string   `toml:"map"`
	Reserved   []string `toml:"reserved"`
}

// Output configures where and how results are written.
type Output struct {
	Path      string `toml:"path"`
	Color     string `toml:"color"`
	Highlight bool   `toml:"highlight"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Mode:    ModeMinify,
		Dialect: "glsl",
		Output:  Output{Color: ColorAuto},
	}
}

// Load reads the file at path over Default. A missing file is not an
// error when optional is true.
func Load(path string, optional bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses TOML data into cfg and validates the result. Fields
// absent from data keep their current values.
func Decode(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeMinify, ModeFormat, ModeTokens, ModeAST:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if _, err := ParseDialect(c.Dialect); err != nil {
		return err
	}
	if c.Target != "" {
		if _, err := ParseDialect(c.Target); err != nil {
			return err
		}
	}
	switch c.Output.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color setting %q", c.Output.Color)
	}
	return nil
}

// ExpandPaths resolves a leading "~" in the path settings. A trailing
// separator, which marks Output.Path as a directory, is kept.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{&c.Mangle.Map, &c.Output.Path} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if expanded != *p && strings.HasSuffix(*p, "/") && !strings.HasSuffix(expanded, string(filepath.Separator)) {
			expanded += string(filepath.Separator)
		}
		*p = expanded
	}
	return nil
}

// ParseDialect maps a dialect name to its tables, ignoring case.
// The empty name is GLSL.
func ParseDialect(name string) (*lang.Dialect, error) {
	d, ok := lang.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q", name)
	}
	return d, nil
}
