// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package build runs shaderkit transforms over shader files, once or
// continuously as the files change.
//
// Every input is fingerprinted with xxhash; an input whose content did not
// change since its last successful build is skipped. All builds of a
// Builder are serialized, so the shared mangle map needs no locking.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/gogpu/shaderkit/internal/config"
	"github.com/gogpu/shaderkit/internal/manglemap"
	"github.com/gogpu/shaderkit/lang"
	"github.com/gogpu/shaderkit/mangler"
)

// Options configures a Builder.
type Options struct {
	// Mode is one of the config.Mode* values.
	Mode string

	// Dialect is the source language; Target the output syntax for
	// format mode (default: Dialect).
	Dialect *lang.Dialect
	Target  *lang.Dialect

	// Mangle configures minify mode. A nil MangleMap is loaded from
	// MapPath, or created empty.
	Mangle mangler.Options

	// MapPath is where the mangle map is persisted. Empty disables
	// persistence.
	MapPath string

	// Output is a file (one input) or a directory (several inputs).
	// Empty sends results to Emit.
	Output string

	// Emit receives results when Output is empty. Nil writes them to
	// os.Stdout.
	Emit func(path, result string) error

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Stats counts the outcome of one Build.
type Stats struct {
	Built   int
	Skipped int
	Failed  int
}

// FileError is a failure to process one input. Source is set when the
// file could be read.
type FileError struct {
	Path   string
	Source string
	Err    error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Builder processes inputs according to its Options.
type Builder struct {
	opts   Options
	log    *slog.Logger
	hashes map[string]uint64
}

// New returns a Builder, loading the persisted mangle map if configured.
func New(opts Options) (*Builder, error) {
	if opts.Mode == "" {
		opts.Mode = config.ModeMinify
	}
	if opts.Dialect == nil {
		opts.Dialect = lang.GLSL
	}
	if opts.Target == nil {
		opts.Target = opts.Dialect
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Emit == nil {
		opts.Emit = func(_, result string) error {
			_, err := io.WriteString(os.Stdout, withNewline(result))
			return err
		}
	}
	if opts.Mangle.MangleMap == nil {
		opts.Mangle.MangleMap = map[string]string{}
		if opts.MapPath != "" {
			m, err := manglemap.Load(opts.MapPath)
			if err != nil {
				return nil, fmt.Errorf("build: %w", err)
			}
			opts.Mangle.MangleMap = m
			opts.Logger.Debug("loaded mangle map", "path", opts.MapPath, "names", len(m))
		}
	}
	return &Builder{
		opts:   opts,
		log:    opts.Logger,
		hashes: make(map[string]uint64),
	}, nil
}

// MangleMap returns the map shared by all minify builds.
func (b *Builder) MangleMap() map[string]string {
	return b.opts.Mangle.MangleMap
}

// Build processes inputs in order. Failures do not stop the batch; they
// are returned joined, each as a *FileError.
func (b *Builder) Build(ctx context.Context, inputs []string) (Stats, error) {
	toDir, err := b.outputIsDir(len(inputs))
	if err != nil {
		return Stats{}, err
	}
	return b.build(ctx, inputs, toDir)
}

func (b *Builder) build(ctx context.Context, inputs []string, toDir bool) (Stats, error) {
	var stats Stats
	var errs []error
	for _, path := range inputs {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		built, err := b.buildFile(path, toDir)
		switch {
		case err != nil:
			stats.Failed++
			errs = append(errs, err)
		case built:
			stats.Built++
		default:
			stats.Skipped++
		}
	}

	if stats.Built > 0 && b.opts.Mode == config.ModeMinify && b.opts.MapPath != "" {
		if err := manglemap.Save(b.opts.MapPath, b.opts.Mangle.MangleMap); err != nil {
			errs = append(errs, fmt.Errorf("build: %w", err))
		} else {
			b.log.Debug("saved mangle map", "path", b.opts.MapPath, "names", len(b.opts.Mangle.MangleMap))
		}
	}

	b.log.Debug("build finished", "built", stats.Built, "skipped", stats.Skipped, "failed", stats.Failed)
	return stats, errors.Join(errs...)
}

// buildFile reports whether path was rebuilt.
func (b *Builder) buildFile(path string, toDir bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, &FileError{Path: path, Err: err}
	}

	sum := fingerprint(data)
	if prev, ok := b.hashes[path]; ok && prev == sum {
		b.log.Debug("unchanged", "path", path, "hash", fmt.Sprintf("%016x", sum))
		return false, nil
	}

	source := string(data)
	result, err := Transform(b.opts.Mode, source, b.opts.Dialect, b.opts.Target, b.opts.Mangle)
	if err != nil {
		return false, &FileError{Path: path, Source: source, Err: err}
	}

	if err := b.write(path, result, toDir); err != nil {
		return false, &FileError{Path: path, Source: source, Err: err}
	}
	b.hashes[path] = sum
	b.log.Info("built", "path", path, "mode", b.opts.Mode, "in", len(data), "out", len(result))
	return true, nil
}

func (b *Builder) write(path, result string, toDir bool) error {
	switch {
	case b.opts.Output == "":
		return b.opts.Emit(path, result)
	case toDir:
		if err := os.MkdirAll(b.opts.Output, 0o755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(b.opts.Output, b.outputName(path)), []byte(withNewline(result)), 0o644)
	default:
		return os.WriteFile(b.opts.Output, []byte(withNewline(result)), 0o644)
	}
}

// outputName keeps the input's base name, switching the extension when
// formatting into another dialect.
func (b *Builder) outputName(path string) string {
	name := filepath.Base(path)
	if b.opts.Mode == config.ModeFormat && b.opts.Target != b.opts.Dialect {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + "." + strings.ToLower(b.opts.Target.Name)
	}
	return name
}

func (b *Builder) outputIsDir(inputs int) (bool, error) {
	out := b.opts.Output
	if out == "" {
		return false, nil
	}
	if strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(filepath.Separator)) {
		return true, nil
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return true, nil
	}
	if inputs > 1 {
		return false, fmt.Errorf("build: output %q must be a directory for %d inputs", out, inputs)
	}
	return false, nil
}

// fingerprint is the content hash used to detect unchanged inputs.
func fingerprint(data []byte) uint64 {
	h := xxhash.New()
	_, _ = h.Write(data)
	return h.Sum64()
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
