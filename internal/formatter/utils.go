package formatter

import (
	"fmt"
	"strings"

	"github.com/kazumasamatsumoto/algo/internal/emoji"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/yildizm/go-termfmt"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// symbol prefers the go-termfmt emoji for key and falls back to ours
func symbol(key string, opts *termfmt.TerminalOptions) string {
	if s := termfmt.GetEmoji(key, opts); s != "" {
		return s
	}
	return emoji.GetEmoji(key)
}

// relativeBar draws value relative to top as a go-termfmt confidence bar
func relativeBar(value, top int, opts *termfmt.TerminalOptions) string {
	ratio := 0.0
	if top > 0 {
		ratio = float64(value) / float64(top)
	}
	return termfmt.CreateConfidenceBar(ratio, opts)
}

// maxSteps returns the largest step count of a comparison
func maxSteps(report *Report) int {
	m := 0
	for _, r := range report.Comparison {
		m = max(m, r.Steps)
	}
	return m
}

// statsRows lists the counters shown by the text and Markdown formatters
func statsRows(s runner.Stats) [][2]string {
	return [][2]string{
		{"Steps", formatNumber(s.Steps)},
		{"Comparisons", formatNumber(s.Comparisons)},
		{"Swaps", formatNumber(s.Swaps)},
		{"Time", fmt.Sprintf("%dms", s.TimeMs)},
	}
}

// generateObservations derives a few plain remarks from the report
func generateObservations(report *Report) []string {
	var notes []string

	if report.Stopped {
		notes = append(notes, "The run was stopped before completing; counters cover the work done so far")
	}

	if n := len(report.Comparison); n > 1 {
		best, worst := report.Comparison[0], report.Comparison[n-1]
		if best.Steps > 0 && worst.Steps > best.Steps {
			notes = append(notes, fmt.Sprintf("%s took %.1fx the steps of %s",
				worst.Name, float64(worst.Steps)/float64(best.Steps), best.Name))
		}
	}

	s := report.Stats
	if s.Steps > 0 && s.Swaps > 0 {
		notes = append(notes, fmt.Sprintf("%.2f swaps per step", float64(s.Swaps)/float64(s.Steps)))
	}
	if s.Steps > 0 && s.Comparisons > 0 {
		notes = append(notes, fmt.Sprintf("%.2f comparisons per step", float64(s.Comparisons)/float64(s.Steps)))
	}

	if report.Info != nil && report.Info.TimeComplexity != "" {
		notes = append(notes, fmt.Sprintf("Expected time complexity is %s for n = %d",
			report.Info.TimeComplexity, report.Settings.ArraySize))
	}
	return notes
}

// oneLine flattens s for single line outputs
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
