// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package build

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch builds inputs, then rebuilds each one whenever it changes on disk,
// until ctx is cancelled. Build failures are passed to report and do not
// stop watching. Parent directories are watched rather than the files so
// that editors replacing a file on save are still seen.
func (b *Builder) Watch(ctx context.Context, inputs []string, report func(error)) error {
	if report == nil {
		report = func(err error) { b.log.Error("build failed", "err", err) }
	}

	toDir, err := b.outputIsDir(len(inputs))
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("build: watch: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]string, len(inputs))
	dirs := make(map[string]bool)
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("build: watch: %w", err)
		}
		watched[abs] = in
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("build: watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	if _, err := b.build(ctx, inputs, toDir); err != nil {
		report(err)
	}
	b.log.Info("watching", "files", len(inputs), "dirs", len(dirs))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			in, ok := watched[abs]
			if !ok {
				continue
			}
			b.log.Debug("changed", "path", in, "op", event.Op.String())
			if _, err := b.build(ctx, []string{in}, toDir); err != nil && ctx.Err() == nil {
				report(err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.log.Warn("watch error", "err", err)
		}
	}
}
