package config

import (
	"fmt"

	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// Config holds the complete application configuration
type Config struct {
	Version  string            `yaml:"version" json:"version" toml:"version"`
	Settings settings.Settings `yaml:"settings" json:"settings" toml:"settings"`
	Output   OutputConfig      `yaml:"output" json:"output" toml:"output"`
	UI       UIConfig          `yaml:"ui" json:"ui" toml:"ui"`
	Compare  CompareConfig     `yaml:"compare" json:"compare" toml:"compare"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format" toml:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode" toml:"color_mode"`             // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose" toml:"verbose"`                      // default verbosity
	Emoji         bool   `yaml:"emoji" json:"emoji" toml:"emoji"`                            // emoji or ASCII symbols
	ShowFrames    bool   `yaml:"show_frames" json:"show_frames" toml:"show_frames"`          // print every frame of `run`
}

// UIConfig configures the terminal UI
type UIConfig struct {
	Theme     string `yaml:"theme" json:"theme" toml:"theme"` // default|high-contrast|minimal
	AltScreen bool   `yaml:"alt_screen" json:"alt_screen" toml:"alt_screen"`
	ShowHelp  bool   `yaml:"show_help" json:"show_help" toml:"show_help"`
}

// CompareConfig configures `algo compare`
type CompareConfig struct {
	Rounds      int    `yaml:"rounds" json:"rounds" toml:"rounds"`                // inputs per algorithm
	Concurrency int    `yaml:"concurrency" json:"concurrency" toml:"concurrency"` // runners at once
	Seed        uint64 `yaml:"seed" json:"seed" toml:"seed"`                      // 0 picks a random seed
}

// Limits on compare rounds
const (
	MinRounds = 1
	MaxRounds = 100
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version:  "1.0",
		Settings: settings.Default(),
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			Emoji:         true,
			ShowFrames:    false,
		},
		UI: UIConfig{
			Theme:     "default",
			AltScreen: true,
			ShowHelp:  true,
		},
		Compare: CompareConfig{
			Rounds:      1,
			Concurrency: 4,
			Seed:        0,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateSettings(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateCompareConfig(); err != nil {
		return err
	}
	return nil
}

// validateSettings rejects unknown enum values. Numbers are clamped by the
// loader instead.
func (c *Config) validateSettings() error {
	if d := c.Settings.DataType; d != "" && !d.Valid() {
		return fmt.Errorf("invalid data type: %s (must be one of: random, sorted, reverse, nearly-sorted)", d)
	}
	if g := c.Settings.GraphType; g != "" && !g.Valid() {
		return fmt.Errorf("invalid graph type: %s (must be one of: complete, sparse, chain, tree)", g)
	}
	if c.Settings.ArraySize < 0 {
		return fmt.Errorf("array_size must be non-negative")
	}
	if c.Settings.Speed < 0 {
		return fmt.Errorf("speed must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// validateUIConfig validates the theme name
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default":       true,
			"high-contrast": true,
			"minimal":       true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, high-contrast, minimal)", c.UI.Theme)
		}
	}
	return nil
}

// validateCompareConfig validates comparison settings
func (c *Config) validateCompareConfig() error {
	if c.Compare.Rounds < MinRounds || c.Compare.Rounds > MaxRounds {
		return fmt.Errorf("compare rounds must be between %d and %d", MinRounds, MaxRounds)
	}
	if c.Compare.Concurrency < 1 {
		return fmt.Errorf("compare concurrency must be greater than 0")
	}
	return nil
}
