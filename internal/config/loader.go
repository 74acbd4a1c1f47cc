package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kazumasamatsumoto/algo/internal/settings"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.algo.yaml",               // Project-specific config (highest priority)
	"~/.config/algo/config.yaml", // User config
	"/etc/algo/config.yaml",      // System config (lowest priority)
}

// EnvPrefix prefixes every environment override
const EnvPrefix = "ALGO_"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	getenv      func(string) string
	warn        func(format string, args ...interface{})
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		getenv:      os.Getenv,
		warn: func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
		},
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.algo.yaml
// 4. ~/.config/algo/config.yaml
// 5. /etc/algo/config.yaml
// 6. Built-in defaults
//
// A custom path replaces the search paths. Files are overlaid onto the
// result so far; keys a file leaves out keep their earlier value.
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		paths := slices.Clone(l.configPaths)
		slices.Reverse(paths)

		for _, path := range paths {
			expandedPath := expandPath(path)
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					l.warn("Failed to load config from %s: %v", expandedPath, err)
				}
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	config.Settings = settings.Clamp(config.Settings)
	return config, nil
}

// loadFromFile decodes a YAML or TOML file onto config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	// decode into a copy so a malformed file leaves config untouched
	next := *config
	if isTOML(path) {
		if _, err := toml.Decode(string(data), &next); err != nil {
			return fmt.Errorf("failed to parse TOML: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &next); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	*config = next

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Settings
		"SETTINGS_ARRAY_SIZE":      func(v string) error { return parseInt(v, &config.Settings.ArraySize) },
		"SETTINGS_SPEED":           func(v string) error { return parseInt(v, &config.Settings.Speed) },
		"SETTINGS_DATA_TYPE":       func(v string) error { config.Settings.DataType = settings.DataType(v); return nil },
		"SETTINGS_GRAPH_TYPE":      func(v string) error { config.Settings.GraphType = settings.GraphType(v); return nil },
		"SETTINGS_SHOW_STEP_COUNT": func(v string) error { return parseBool(v, &config.Settings.ShowStepCount) },

		// Output Config
		"OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"OUTPUT_EMOJI":          func(v string) error { return parseBool(v, &config.Output.Emoji) },
		"OUTPUT_SHOW_FRAMES":    func(v string) error { return parseBool(v, &config.Output.ShowFrames) },

		// UI Config
		"UI_THEME":      func(v string) error { config.UI.Theme = v; return nil },
		"UI_ALT_SCREEN": func(v string) error { return parseBool(v, &config.UI.AltScreen) },
		"UI_SHOW_HELP":  func(v string) error { return parseBool(v, &config.UI.ShowHelp) },

		// Compare Config
		"COMPARE_ROUNDS":      func(v string) error { return parseInt(v, &config.Compare.Rounds) },
		"COMPARE_CONCURRENCY": func(v string) error { return parseInt(v, &config.Compare.Concurrency) },
		"COMPARE_SEED":        func(v string) error { return parseUint64(v, &config.Compare.Seed) },
	}

	// fixed order so the first bad variable is reported deterministically
	keys := make([]string, 0, len(envMappings))
	for k := range envMappings {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		envVar := EnvPrefix + key
		if value := strings.TrimSpace(l.getenv(envVar)); value != "" {
			if err := envMappings[key](value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range GetConfigPaths() {
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" && ext != ".toml" {
		return fmt.Errorf("config file must have .yaml, .yml or .toml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseUint64(s string, dst *uint64) error {
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
