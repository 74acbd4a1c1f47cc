package explain

import (
	"strings"
	"testing"

	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/compare"
	"github.com/kazumasamatsumoto/algo/internal/formatter"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

func testReport() *formatter.Report {
	info, _ := algorithm.Info(algorithm.BinarySearch)
	return &formatter.Report{
		Algorithm: string(algorithm.BinarySearch),
		Info:      &info,
		Settings:  settings.Default(),
		Stats:     runner.Stats{Steps: 4, Comparisons: 7},
		Summary:   "found 42 at index 9",
		Frame:     "row-1\nrow-2\nrow-3\nrow-4\nrow-5\n",
	}
}

func TestBuildWithoutReport(t *testing.T) {
	prompt := Run().Build()
	if prompt == nil {
		t.Fatal("Expected non-nil prompt")
	}
	if !strings.Contains(prompt.String(), "step, comparison and swap counts") {
		t.Error("Expected the generic prompt")
	}
}

func TestBuildRunPrompt(t *testing.T) {
	report := testReport()
	prompt := Run().WithReport(report).Build()
	text := prompt.String()

	for _, want := range []string{
		"Explain this run of binary-search",
		"Steps: 4",
		"Comparisons: 7",
		"found 42 at index 9",
		report.Info.Name,
		report.Info.TimeComplexity,
		"row-5",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
	if prompt.JSONSchema == nil {
		t.Error("Expected a JSON response schema")
	}
}

func TestBuildRunPromptFrameOptions(t *testing.T) {
	text := Run().WithReport(testReport()).WithoutFrame().Build().String()
	if strings.Contains(text, "row-1") {
		t.Error("Expected no frame with WithoutFrame()")
	}

	text = Run().WithReport(testReport()).WithMaxFrameRows(2).Build().String()
	if !strings.Contains(text, "row-2") {
		t.Error("Expected the first rows of the frame")
	}
	if strings.Contains(text, "row-3") {
		t.Error("Expected rows past the limit to be dropped")
	}
}

func TestBuildComparisonPrompt(t *testing.T) {
	results := []compare.Result{
		{Algorithm: "bubble-sort", Name: "Bubble sort", Steps: 190},
		{Algorithm: "merge-sort", Name: "Merge sort", Steps: 88},
	}
	compare.Rank(results)
	report := formatter.NewComparisonReport(settings.Default(), results)

	text := Run().WithReport(report).Build().String()

	if !strings.Contains(text, "these 2 algorithms") {
		t.Error("Expected the comparison request")
	}
	if !strings.Contains(text, "1. Merge sort: 88 steps") {
		t.Error("Expected the ranking context")
	}
}

func TestParseExplanation(t *testing.T) {
	content := `{"summary": "Binary search halves the range each step", "steps": [{"title": "Probe the middle", "description": "Compare with index 9"}], "complexity": "O(log n)", "observations": ["4 steps for 20 elements"], "questions": ["What if the array is unsorted?"]}`

	e, ok := ParseExplanation(content)
	if !ok {
		t.Fatal("Expected the response to parse")
	}
	if e.Summary != "Binary search halves the range each step" || len(e.Steps) != 1 || e.Complexity != "O(log n)" {
		t.Errorf("Unexpected explanation %+v", e)
	}

	out := e.Render()
	for _, want := range []string{"1. Probe the middle", "Complexity: O(log n)", "• 4 steps", "? What if"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected rendered explanation to contain %q", want)
		}
	}

	if _, ok := ParseExplanation("I cannot help with that."); ok {
		t.Error("Expected plain text to be rejected")
	}
}
