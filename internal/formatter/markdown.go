package formatter

import (
	"fmt"
	"strings"

	"github.com/kazumasamatsumoto/algo/internal/monitor"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", report.Title())
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))

	f.writeTableOfContents(&b, report)
	f.writeSettings(&b, report)

	if report.Algorithm != "" {
		f.writeRun(&b, report)
	}
	if report.IsComparison() {
		f.writeComparison(&b, report)
	}
	if len(report.History) > 0 {
		f.writeHistory(&b, report.History)
	}

	f.writeObservations(&b, report)

	return []byte(b.String()), nil
}

// writeTableOfContents lists the sections present in the report
func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, report *Report) {
	b.WriteString("## Table of Contents\n")
	b.WriteString("- [Settings](#settings)\n")

	if report.Algorithm != "" {
		b.WriteString("- [Run](#run)\n")
	}
	if report.IsComparison() {
		b.WriteString("- [Ranking](#ranking)\n")
	}
	if len(report.History) > 0 {
		b.WriteString("- [History](#history)\n")
	}

	b.WriteString("- [Observations](#observations)\n\n")
}

// writeSettings writes the settings table
func (f *markdownFormatter) writeSettings(b *strings.Builder, report *Report) {
	s := report.Settings
	b.WriteString("## Settings\n\n")
	b.WriteString("| Setting | Value |\n")
	b.WriteString("|---------|-------|\n")
	fmt.Fprintf(b, "| Array size | %d |\n", s.ArraySize)
	fmt.Fprintf(b, "| Speed | %dms |\n", s.Speed)
	fmt.Fprintf(b, "| Data type | %s |\n", s.DataType)
	fmt.Fprintf(b, "| Graph type | %s |\n\n", s.GraphType)
}

// writeRun writes the run section: description, counters and final frame
func (f *markdownFormatter) writeRun(b *strings.Builder, report *Report) {
	b.WriteString("## Run\n\n")

	if info := report.Info; info != nil {
		fmt.Fprintf(b, "**%s** (%s): %s\n\n", info.Name, info.Category, info.Description)
		fmt.Fprintf(b, "Time complexity %s, space complexity %s.\n\n", info.TimeComplexity, info.SpaceComplexity)
	}

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	for _, row := range statsRows(report.Stats) {
		fmt.Fprintf(b, "| %s | %s |\n", row[0], row[1])
	}
	fmt.Fprintf(b, "| Status | %s |\n\n", report.Status())

	if report.Summary != "" {
		fmt.Fprintf(b, "**Result**: %s\n\n", report.Summary)
	}

	if lines := frameLines(report.Frame); len(lines) > 0 {
		b.WriteString("```\n")
		for _, line := range lines {
			b.WriteString(line + "\n")
		}
		b.WriteString("```\n\n")
	}
}

// writeComparison writes the ranking table with an ASCII bar per row
func (f *markdownFormatter) writeComparison(b *strings.Builder, report *Report) {
	b.WriteString("## Ranking\n\n")
	b.WriteString("| # | Algorithm | Steps | Comparisons | Swaps | Time | |\n")
	b.WriteString("|---|-----------|-------|-------------|-------|------|---|\n")

	top := maxSteps(report)
	for _, res := range report.Comparison {
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s | %dms | `%s` |\n",
			res.Rank, res.Name, formatNumber(res.Steps), formatNumber(res.Comparisons),
			formatNumber(res.Swaps), res.TimeMs, asciiBar(res.Steps, top, 20))
	}
	b.WriteString("\n")
}

// writeHistory writes one row per recorded algorithm
func (f *markdownFormatter) writeHistory(b *strings.Builder, history []monitor.KindSummary) {
	b.WriteString("## History\n\n")
	b.WriteString("| Algorithm | Runs | Stopped | Avg steps | P95 steps | Avg time |\n")
	b.WriteString("|-----------|------|---------|-----------|-----------|----------|\n")
	for _, h := range history {
		fmt.Fprintf(b, "| %s | %d | %d | %.1f | %.1f | %.1fms |\n",
			h.Kind, h.Runs, h.Stopped, h.Steps.Avg, h.Steps.P95, h.TimeMs.Avg)
	}
	b.WriteString("\n")
}

// writeObservations writes numbered remarks and the footer
func (f *markdownFormatter) writeObservations(b *strings.Builder, report *Report) {
	b.WriteString("## Observations\n\n")

	notes := generateObservations(report)
	if len(notes) == 0 {
		b.WriteString("Nothing notable.\n")
	}
	for i, note := range notes {
		fmt.Fprintf(b, "%d. %s\n", i+1, note)
	}

	b.WriteString("\n---\n")
	b.WriteString("*Report generated by algo*\n")
}

// asciiBar draws value relative to top in width cells
func asciiBar(value, top, width int) string {
	filled := width
	if top > 0 {
		filled = value * width / top
	}
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// frameLines splits a rendered frame, dropping the trailing newline
func frameLines(frame string) []string {
	frame = strings.TrimRight(frame, "\n")
	if strings.TrimSpace(frame) == "" {
		return nil
	}
	return strings.Split(frame, "\n")
}
