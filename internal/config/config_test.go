package config

import (
	"testing"

	"github.com/kazumasamatsumoto/algo/internal/settings"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", cfg.Version)
	}

	if cfg.Settings != settings.Default() {
		t.Errorf("Expected default settings, got %+v", cfg.Settings)
	}

	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected output format text, got %s", cfg.Output.DefaultFormat)
	}

	if cfg.UI.Theme != "default" {
		t.Errorf("Expected theme default, got %s", cfg.UI.Theme)
	}

	if cfg.Compare.Rounds != 1 || cfg.Compare.Concurrency != 4 {
		t.Errorf("Expected 1 round on 4 workers, got %d on %d", cfg.Compare.Rounds, cfg.Compare.Concurrency)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "out of range numbers are left to clamping",
			mutate:  func(c *Config) { c.Settings.ArraySize = 500; c.Settings.Speed = 1 },
			wantErr: false,
		},
		{
			name:    "empty enums fall back to defaults",
			mutate:  func(c *Config) { c.Settings.DataType = ""; c.Settings.GraphType = ""; c.UI.Theme = "" },
			wantErr: false,
		},
		{
			name:    "invalid data type",
			mutate:  func(c *Config) { c.Settings.DataType = "shuffled" },
			wantErr: true,
			errMsg:  "invalid data type: shuffled (must be one of: random, sorted, reverse, nearly-sorted)",
		},
		{
			name:    "invalid graph type",
			mutate:  func(c *Config) { c.Settings.GraphType = "grid" },
			wantErr: true,
			errMsg:  "invalid graph type: grid (must be one of: complete, sparse, chain, tree)",
		},
		{
			name:    "negative array size",
			mutate:  func(c *Config) { c.Settings.ArraySize = -1 },
			wantErr: true,
			errMsg:  "array_size must be non-negative",
		},
		{
			name:    "invalid output format",
			mutate:  func(c *Config) { c.Output.DefaultFormat = "invalid" },
			wantErr: true,
			errMsg:  "invalid output format: invalid (must be one of: json, text, markdown, csv)",
		},
		{
			name:    "invalid color mode",
			mutate:  func(c *Config) { c.Output.ColorMode = "invalid" },
			wantErr: true,
			errMsg:  "invalid color mode: invalid (must be one of: auto, always, never)",
		},
		{
			name:    "invalid theme",
			mutate:  func(c *Config) { c.UI.Theme = "solarized" },
			wantErr: true,
			errMsg:  "invalid theme: solarized (must be one of: default, high-contrast, minimal)",
		},
		{
			name:    "zero rounds",
			mutate:  func(c *Config) { c.Compare.Rounds = 0 },
			wantErr: true,
			errMsg:  "compare rounds must be between 1 and 100",
		},
		{
			name:    "too many rounds",
			mutate:  func(c *Config) { c.Compare.Rounds = 101 },
			wantErr: true,
			errMsg:  "compare rounds must be between 1 and 100",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Compare.Concurrency = 0 },
			wantErr: true,
			errMsg:  "compare concurrency must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errMsg != "" && err.Error() != tt.errMsg {
					t.Errorf("Expected error message '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
			}
		})
	}
}

func TestSampleConfigsParse(t *testing.T) {
	samples := map[string]string{
		"full":    SampleConfig(),
		"minimal": MinimalSampleConfig(),
	}

	for name, content := range samples {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
				t.Fatalf("Sample config does not parse: %v", err)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Sample config does not validate: %v", err)
			}
			if cfg.Settings != settings.Default() {
				t.Errorf("Expected sample settings to match defaults, got %+v", cfg.Settings)
			}
		})
	}
}
