package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/config"
	"github.com/kazumasamatsumoto/algo/internal/formatter"
	"github.com/kazumasamatsumoto/algo/internal/settings"
	"github.com/spf13/cobra"
)

// execute runs the root command against an isolated config file and returns
// everything written to stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "algo.yaml")
	if err := os.WriteFile(cfgPath, []byte(config.MinimalSampleConfig()), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	appConfig = nil
	t.Cleanup(func() { appConfig = nil })

	root := NewRootCommand("1.2.3", "abc123", "2024-01-01")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", cfgPath, "--no-color", "--no-emoji"}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
		wantErr bool
	}{
		{
			name: "every category",
			args: []string{"list"},
			want: []string{"SORTING", "NUMERICAL", "bubble-sort", "dijkstra", "0/1 knapsack"},
		},
		{
			name:    "one category",
			args:    []string{"list", "--category", "graph"},
			want:    []string{"GRAPH", "dijkstra", "floyd-warshall"},
			notWant: []string{"bubble-sort", "SORTING"},
		},
		{
			name:    "unknown category",
			args:    []string{"list", "--category", "quantum"},
			wantErr: true,
		},
		{
			name:    "unknown format",
			args:    []string{"list", "--format", "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("Expected output to contain %q, got:\n%s", want, out)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(out, notWant) {
					t.Errorf("Expected output not to contain %q", notWant)
				}
			}
		})
	}
}

func TestListCommandJSON(t *testing.T) {
	out, err := execute(t, "list", "--format", "json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var details []algorithm.Details
	if err := json.Unmarshal([]byte(out), &details); err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	if len(details) != len(algorithm.Kinds()) {
		t.Errorf("Expected %d algorithms, got %d", len(algorithm.Kinds()), len(details))
	}
}

func TestInfoCommand(t *testing.T) {
	out, err := execute(t, "info", "merge-sort")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"Merge sort", "merge-sort", "O(n log n)", "O(n)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	_, err = execute(t, "info", "bogo-sort")
	if !errors.Is(err, algorithm.ErrUnknownAlgorithm) {
		t.Errorf("Expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestRunCommandJSON(t *testing.T) {
	out, err := execute(t, "run", "bubble-sort", "--size", "8", "--seed", "7", "--output", "json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var doc formatter.JSONOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Expected JSON output: %v\n%s", err, out)
	}
	if doc.Run == nil {
		t.Fatal("Expected a run section")
	}
	if doc.Run.Algorithm != "bubble-sort" {
		t.Errorf("Expected bubble-sort, got %s", doc.Run.Algorithm)
	}
	if doc.Run.Status != "complete" {
		t.Errorf("Expected complete status, got %s", doc.Run.Status)
	}
	if doc.Run.Stats.Comparisons == 0 {
		t.Error("Expected comparisons to be counted")
	}
	if doc.Settings.ArraySize != 8 {
		t.Errorf("Expected array size 8, got %d", doc.Settings.ArraySize)
	}
	if len(doc.Run.Frame) == 0 {
		t.Error("Expected the final frame in the report")
	}
}

func TestRunCommandIsReproducibleWithSeed(t *testing.T) {
	run := func() *formatter.RunOutput {
		out, err := execute(t, "run", "quick-sort", "--seed", "11", "--output", "json")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		var doc formatter.JSONOutput
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("Expected JSON output: %v", err)
		}
		return doc.Run
	}

	first, second := run(), run()
	// elapsed time is the only counter allowed to differ
	first.Stats.TimeMs, second.Stats.TimeMs = 0, 0
	if first.Stats != second.Stats {
		t.Errorf("Expected identical stats for the same seed, got %+v and %+v", first.Stats, second.Stats)
	}
	if strings.Join(first.Frame, "\n") != strings.Join(second.Frame, "\n") {
		t.Error("Expected identical final frames for the same seed")
	}
}

func TestRunCommandFrames(t *testing.T) {
	out, err := execute(t, "run", "linear-search", "--size", "5", "--seed", "3", "--frames", "--instant")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "steps=") {
		t.Errorf("Expected at least one printed frame, got:\n%s", out)
	}
}

func TestRunCommandOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.md")
	out, err := execute(t, "run", "fibonacci", "--output", "markdown", "--output-file", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("Expected nothing on stdout, got %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected the report file: %v", err)
	}
	if !strings.HasPrefix(string(data), "#") {
		t.Errorf("Expected a markdown heading, got:\n%s", data)
	}
}

func TestRunCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown algorithm", []string{"run", "sleep-sort"}},
		{"bad data type", []string{"run", "bubble-sort", "--data", "zigzag"}},
		{"bad graph type", []string{"run", "bfs", "--graph", "ring"}},
		{"bad format", []string{"run", "bubble-sort", "--output", "xml"}},
		{"missing argument", []string{"run"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("Expected error but got none")
			}
		})
	}
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "bubble-sort", "insertion-sort", "merge-sort",
		"--seed", "5", "--rounds", "2", "--output", "json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var doc formatter.JSONOutput
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Expected JSON output: %v\n%s", err, out)
	}
	if len(doc.Comparison) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(doc.Comparison))
	}
	for i, res := range doc.Comparison {
		if res.Rank != i+1 {
			t.Errorf("Expected rank %d, got %d", i+1, res.Rank)
		}
		if i > 0 && res.Steps < doc.Comparison[i-1].Steps {
			t.Errorf("Expected results ordered by steps, got %+v", doc.Comparison)
		}
	}
}

func TestCompareKinds(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		all      bool
		category string
		wantLen  int
		wantErr  bool
	}{
		{name: "positional", args: []string{"bfs", "dfs"}, wantLen: 2},
		{name: "all", all: true, wantLen: len(algorithm.Kinds())},
		{name: "category", category: "search", wantLen: 2},
		{name: "category plus extra", args: []string{"bubble-sort"}, category: "search", wantLen: 3},
		{name: "single algorithm", args: []string{"bfs"}, wantErr: true},
		{name: "unknown algorithm", args: []string{"bfs", "teleport"}, wantErr: true},
		{name: "unknown category", category: "magic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kinds, err := compareKinds(tt.args, tt.all, tt.category)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(kinds) != tt.wantLen {
				t.Errorf("Expected %d kinds, got %d", tt.wantLen, len(kinds))
			}
		})
	}
}

func TestExplainCommand(t *testing.T) {
	out, err := execute(t, "explain", "binary-search", "--seed", "9", "--size", "10")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"Explain this run of binary-search", "Binary search", "Array size: 10"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}

func TestExplainCommandResponse(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.txt")
	content := `Here you go: {"summary": "Each pass bubbles the largest value up", "steps": [{"title": "First pass", "description": "Swap neighbours"}], "complexity": "O(n²)"}`
	if err := os.WriteFile(good, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("no idea"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "explain", "bubble-sort", "--response", good)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "1. First pass") || !strings.Contains(out, "Complexity: O(n²)") {
		t.Errorf("Unexpected rendering:\n%s", out)
	}

	if _, err := execute(t, "explain", "bubble-sort", "--response", bad); err == nil {
		t.Error("Expected error for a response without JSON")
	}
}

func TestSettingsFlagsApply(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    settings.Settings
		wantErr bool
	}{
		{
			name: "no flags keeps base",
			args: nil,
			want: settings.Default(),
		},
		{
			name: "overrides",
			args: []string{"--size", "12", "--speed", "100", "--data", "reverse", "--graph", "tree"},
			want: settings.Settings{ArraySize: 12, Speed: 100, DataType: settings.DataReverse, GraphType: settings.GraphTree, ShowStepCount: true},
		},
		{
			name: "clamped",
			args: []string{"--size", "500", "--speed", "1"},
			want: settings.Settings{ArraySize: settings.MaxArraySize, Speed: settings.MinSpeed, DataType: settings.DataRandom, GraphType: settings.GraphSparse, ShowStepCount: true},
		},
		{
			name:    "bad data type",
			args:    []string{"--data", "spiral"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flags settingsFlags
			cmd := &cobra.Command{Use: "test"}
			flags.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("Failed to parse flags: %v", err)
			}

			got, err := flags.apply(cmd, settings.Default())
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".algo.yaml")

	out, err := execute(t, "config", "init", "--minimal", "--output", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "Configuration file created") {
		t.Errorf("Unexpected output: %s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected config file: %v", err)
	}
	if string(data) != config.MinimalSampleConfig() {
		t.Error("Expected the minimal sample config")
	}

	if _, err := execute(t, "config", "init", "--output", path); err == nil {
		t.Error("Expected error when the file exists")
	}
	if _, err := execute(t, "config", "init", "--output", path, "--force"); err != nil {
		t.Errorf("Expected --force to overwrite: %v", err)
	}
}

func TestConfigShowAndValidate(t *testing.T) {
	out, err := execute(t, "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	var cfg config.Config
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("Expected JSON config: %v", err)
	}
	if cfg.Settings.ArraySize != settings.DefaultArraySize {
		t.Errorf("Expected array size %d, got %d", settings.DefaultArraySize, cfg.Settings.ArraySize)
	}

	out, err = execute(t, "config", "validate")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"Configuration is valid", "Array Size: 20", "Output Format: text"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestConfigPathCommand(t *testing.T) {
	out, err := execute(t, "config", "path")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{".algo.yaml", "Priority: Highest", config.EnvPrefix} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "algo 1.2.3 (abc123) built on 2024-01-01") {
		t.Errorf("Unexpected version output: %s", out)
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		configured string
		want       string
	}{
		{"flag wins", []string{"--output", "json"}, "markdown", "json"},
		{"configured default", nil, "markdown", "markdown"},
		{"flag default", nil, "", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output string
			cmd := &cobra.Command{Use: "test"}
			cmd.Flags().StringVarP(&output, "output", "o", "text", "")
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("Failed to parse flags: %v", err)
			}
			if got := resolveFormat(cmd, output, tt.configured); got != tt.want {
				t.Errorf("resolveFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}
