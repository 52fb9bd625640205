package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors path for changes and calls onChange with the newly loaded
// Config each time the file is saved. It runs until ctx is cancelled.
//
// The parent directory is watched rather than the file, so saves that write a
// temporary file and rename it over path keep being seen.
//
// If a reload fails (e.g., invalid YAML), the error is logged and the
// previous config remains active; Watch does not call onChange.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	slog.Info("config: watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSave(event, path) {
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				slog.Error("config: reload failed, keeping previous config",
					"path", path, "err", err)
				continue
			}

			slog.Info("config: reloaded", "path", path)
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}

// isSave reports whether event is a write to path, including an editor's
// rename of a temporary file over it.
func isSave(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Apply compares a reloaded config against the running one. Settings that can
// change live (log level) are applied through setLevel; everything else is
// logged as needing a restart. It returns the names of restart-only fields
// that changed.
func Apply(running, updated *Config, setLevel func(slog.Level)) []string {
	if running.Server.LogLevel != updated.Server.LogLevel {
		setLevel(updated.Server.Level())
		slog.Info("config: log level changed", "level", updated.Server.LogLevel)
	}

	var restart []string
	if running.Server.Addr() != updated.Server.Addr() {
		restart = append(restart, "server.listen")
	}
	if running.Server.Auth != updated.Server.Auth {
		restart = append(restart, "server.auth")
	}
	if running.Dataset != updated.Dataset {
		restart = append(restart, "dataset")
	}
	if running.UI != updated.UI {
		restart = append(restart, "ui")
	}
	if len(restart) > 0 {
		slog.Warn("config: changes take effect after restart", "fields", restart)
	}
	return restart
}
