// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command shaderkit minifies, formats and inspects GLSL and WGSL shaders.
//
// Usage:
//
//	shaderkit [options] <input...>
//
// Examples:
//
//	shaderkit -mangle shader.frag                # Minify with renaming to stdout
//	shaderkit -mangle -map names.yaml -o dist/ *.glsl
//	shaderkit -mode format -highlight shader.frag
//	shaderkit -mode tokens shader.wgsl
//	shaderkit -watch -o dist/ shaders/*.frag     # Rebuild on change
//
// Settings are read from shaderkit.toml in the working directory (or the
// file named by -config); command-line flags override them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/gogpu/shaderkit/internal/build"
	"github.com/gogpu/shaderkit/internal/config"
	"github.com/gogpu/shaderkit/internal/render"
	"github.com/gogpu/shaderkit/mangler"
)

const shaderkitVersion = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// flags holds the command line. Only flags set explicitly override the
// configuration file.
type flags struct {
	set *flag.FlagSet

	mode, dialect, target string
	mangle, externals     bool
	properties            bool
	mapPath, reserved     string
	configPath, output    string
	color                 string
	watch, highlight      bool
	verbose, version      bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{set: flag.NewFlagSet("shaderkit", flag.ContinueOnError)}
	fs := f.set
	fs.SetOutput(stderr)
	fs.StringVar(&f.mode, "mode", config.ModeMinify, "minify, format, tokens or ast")
	fs.StringVar(&f.dialect, "dialect", "glsl", "source dialect: glsl or wgsl")
	fs.StringVar(&f.target, "target", "", "format output dialect (default: -dialect)")
	fs.BoolVar(&f.mangle, "mangle", false, "rename declarations to short names")
	fs.BoolVar(&f.externals, "mangle-externals", false, "also rename uniforms, inputs and outputs")
	fs.BoolVar(&f.properties, "mangle-properties", false, "also rename struct and block members")
	fs.StringVar(&f.mapPath, "map", "", "YAML mangle map loaded before and saved after the run")
	fs.StringVar(&f.reserved, "reserve", "", "comma-separated names never renamed (default: entry points)")
	fs.StringVar(&f.configPath, "config", "", "configuration file (default: "+config.DefaultFile+" if present)")
	fs.StringVar(&f.output, "o", "", "output file, or directory for several inputs (default: stdout)")
	fs.StringVar(&f.color, "color", config.ColorAuto, "auto, always or never")
	fs.BoolVar(&f.watch, "watch", false, "rebuild inputs when they change")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight source written to stdout")
	fs.BoolVar(&f.verbose, "v", false, "debug logging")
	fs.BoolVar(&f.version, "version", false, "print version")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply overrides cfg with the flags given on the command line.
func (f *flags) apply(cfg *config.Config) {
	f.set.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "mode":
			cfg.Mode = f.mode
		case "dialect":
			cfg.Dialect = f.dialect
		case "target":
			cfg.Target = f.target
		case "mangle":
			cfg.Mangle.Enabled = f.mangle
		case "mangle-externals":
			cfg.Mangle.Externals = f.externals
		case "mangle-properties":
			cfg.Mangle.Properties = f.properties
		case "map":
			cfg.Mangle.Map = f.mapPath
		case "reserve":
			cfg.Mangle.Reserved = splitList(f.reserved)
		case "o":
			cfg.Output.Path = f.output
		case "color":
			cfg.Output.Color = f.color
		case "highlight":
			cfg.Output.Highlight = f.highlight
		}
	})
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if f.version {
		fmt.Fprintf(stdout, "shaderkit version %s\n", shaderkitVersion)
		return 0
	}

	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	} else if f.watch {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	diag := render.NewPrinter(stderr, colorFor(f.color, stderr))

	inputs := f.set.Args()
	if len(inputs) == 0 {
		diag.Print("", "", errors.New("no input file specified"))
		usage(f.set)
		return 1
	}

	path, optional := f.configPath, false
	if path == "" {
		path, optional = config.DefaultFile, true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		diag.Print("", "", err)
		return 1
	}
	f.apply(&cfg)
	if err := cfg.ExpandPaths(); err != nil {
		diag.Print("", "", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		diag.Print("", "", err)
		return 1
	}
	logger.Debug("configuration", "file", path, "mode", cfg.Mode, "dialect", cfg.Dialect, "mangle", cfg.Mangle.Enabled)

	// Diagnostics follow the resolved color setting.
	diag = render.NewPrinter(stderr, colorFor(cfg.Output.Color, stderr))

	opts, err := builderOptions(cfg, stdout, logger)
	if err != nil {
		diag.Print("", "", err)
		return 1
	}
	b, err := build.New(opts)
	if err != nil {
		diag.Print("", "", err)
		return 1
	}

	if f.watch {
		if err := b.Watch(ctx, inputs, func(err error) { report(diag, err) }); err != nil {
			report(diag, err)
			return 1
		}
		return 0
	}

	if _, err := b.Build(ctx, inputs); err != nil {
		report(diag, err)
		return 1
	}
	return 0
}

func builderOptions(cfg config.Config, stdout io.Writer, logger *slog.Logger) (build.Options, error) {
	dialect, err := config.ParseDialect(cfg.Dialect)
	if err != nil {
		return build.Options{}, err
	}
	target := dialect
	if cfg.Target != "" {
		if target, err = config.ParseDialect(cfg.Target); err != nil {
			return build.Options{}, err
		}
	}

	mangle := mangler.DefaultOptions()
	mangle.Mangle = cfg.Mangle.Enabled
	mangle.MangleExternals = cfg.Mangle.Externals
	mangle.MangleProperties = cfg.Mangle.Properties
	mangle.Dialect = dialect
	mangle.Reserved = cfg.Mangle.Reserved
	if len(mangle.Reserved) == 0 {
		mangle.Reserved = nil
	}

	highlight := cfg.Output.Highlight && colorFor(cfg.Output.Color, stdout) &&
		(cfg.Mode == config.ModeMinify || cfg.Mode == config.ModeFormat)
	out := dialect
	if cfg.Mode == config.ModeFormat {
		out = target
	}

	return build.Options{
		Mode:    cfg.Mode,
		Dialect: dialect,
		Target:  target,
		Mangle:  mangle,
		MapPath: cfg.Mangle.Map,
		Output:  cfg.Output.Path,
		Logger:  logger,
		Emit: func(_, result string) error {
			if !strings.HasSuffix(result, "\n") {
				result += "\n"
			}
			if highlight {
				return render.Highlight(stdout, result, out, render.DefaultStyle)
			}
			_, err := io.WriteString(stdout, result)
			return err
		},
	}, nil
}

// report prints one diagnostic per failed input.
func report(diag *render.Printer, err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			report(diag, e)
		}
		return
	}
	var ferr *build.FileError
	if errors.As(err, &ferr) {
		diag.Print(ferr.Path, ferr.Source, ferr.Err)
		return
	}
	diag.Print("", "", err)
}

func colorFor(setting string, w io.Writer) bool {
	f, _ := w.(*os.File)
	return render.ColorEnabled(setting, f)
}

func splitList(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, "Usage: shaderkit [options] <input...>\n\n")
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  shaderkit -mangle shader.frag             Minify to stdout\n")
	fmt.Fprintf(w, "  shaderkit -mode format shader.frag        Reformat canonically\n")
	fmt.Fprintf(w, "  shaderkit -watch -o dist/ shaders/*.frag  Rebuild on change\n")
}
