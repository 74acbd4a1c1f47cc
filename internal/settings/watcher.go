package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/kazumasamatsumoto/algo/internal/logger"
	"gopkg.in/yaml.v3"
)

// fileLayout matches the settings section of the config file
type fileLayout struct {
	Settings Settings `yaml:"settings"`
}

// LoadFile overlays the settings section of a YAML file onto base.
// Keys missing from the file keep their value from base.
func LoadFile(path string, base Settings) (Settings, error) {
	// #nosec G304 - path is validated by NewWatcher or the config loader
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read settings file: %w", err)
	}

	layout := fileLayout{Settings: base}
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return base, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return Clamp(layout.Settings), nil
}

// Watcher reloads a settings file into a Store whenever it is written
type Watcher struct {
	path  string
	store *Store
	log   *logger.Logger
}

// NewWatcher validates path and prepares a watcher for it
func NewWatcher(path string, store *Store, log *logger.Logger) (*Watcher, error) {
	if err := validateWatchPath(path); err != nil {
		return nil, fmt.Errorf("invalid settings file: %w", err)
	}
	return &Watcher{path: filepath.Clean(path), store: store, log: log}, nil
}

// Reload reads the file once and publishes it into the store
func (w *Watcher) Reload() error {
	next, err := LoadFile(w.path, w.store.Current())
	if err != nil {
		return err
	}
	w.store.Replace(next)
	w.log.InfoWithFields("settings reloaded", []logger.Field{
		logger.F("size", next.ArraySize),
		logger.F("speed", next.Speed),
		logger.F("data", next.DataType),
		logger.F("graph", next.GraphType),
	})
	return nil
}

// Run watches until ctx is cancelled. The directory is watched rather than the
// file so editors that replace the file on save are still picked up.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := fsw.Close(); err != nil {
			w.log.Debug("failed to close watcher: %v", err)
		}
	}()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch file: %w", err)
	}
	w.log.Debug("watching %s", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.relevant(event) {
				continue
			}
			if err := w.Reload(); err != nil {
				w.log.Warn("ignoring settings change: %v", err)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}

func validateWatchPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("settings file must have .yaml or .yml extension")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}
	return nil
}
