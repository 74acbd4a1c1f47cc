package formatter

import (
	"fmt"
	"strings"

	"github.com/kazumasamatsumoto/algo/internal/emoji"
	"github.com/kazumasamatsumoto/algo/internal/monitor"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, report.Title())

	if report.IsComparison() {
		f.writeComparison(&b, report)
	} else if report.Algorithm != "" {
		f.writeAlgorithm(&b, report)
		f.writeStatistics(&b, report)
		f.writeFrame(&b, report.Frame)
	}

	if len(report.History) > 0 {
		f.writeHistory(&b, report.History)
	}

	f.writeObservations(&b, report)

	return []byte(b.String()), nil
}

// writeHeader writes a box drawn header
func (f *terminalFormatter) writeHeader(b *strings.Builder, header string) {
	width := len([]rune(header))

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

// writeAlgorithm writes the catalogue entry and the settings used
func (f *terminalFormatter) writeAlgorithm(b *strings.Builder, report *Report) {
	b.WriteString(emoji.GetEmoji("info") + " Algorithm\n")

	items := []termfmt.TreeItem{{Label: "Kind", Value: report.Algorithm}}
	if report.Info != nil {
		items = append(items,
			termfmt.TreeItem{Label: "Category", Value: string(report.Info.Category)},
			termfmt.TreeItem{Label: "Time", Value: report.Info.TimeComplexity},
			termfmt.TreeItem{Label: "Space", Value: report.Info.SpaceComplexity},
		)
	}
	s := report.Settings
	items = append(items, termfmt.TreeItem{
		Label: "Settings",
		Value: fmt.Sprintf("size %d, %dms/step", s.ArraySize, s.Speed),
		Children: []termfmt.TreeItem{
			{Label: "Data", Value: string(s.DataType)},
			{Label: "Graph", Value: string(s.GraphType), Last: true},
		},
		Last: true,
	})

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeStatistics writes the counters with tree-style formatting using go-termfmt
func (f *terminalFormatter) writeStatistics(b *strings.Builder, report *Report) {
	b.WriteString(symbol("statistics", f.opts) + " Statistics\n")

	rows := statsRows(report.Stats)
	items := make([]termfmt.TreeItem, 0, len(rows)+1)
	for _, row := range rows {
		items = append(items, termfmt.TreeItem{Label: row[0], Value: row[1]})
	}
	items = append(items, termfmt.TreeItem{
		Label: "Status",
		Value: emoji.Status(false, true) + " " + report.Status(),
		Last:  true,
	})
	if report.Summary != "" {
		items[len(items)-1].Last = false
		items = append(items, termfmt.TreeItem{Label: "Result", Value: report.Summary, Last: true})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeFrame writes the rendered working data indented under its heading
func (f *terminalFormatter) writeFrame(b *strings.Builder, frame string) {
	if strings.TrimSpace(frame) == "" {
		return
	}
	b.WriteString(emoji.GetEmoji("frame") + " Final State\n")
	for _, line := range strings.Split(strings.TrimRight(frame, "\n"), "\n") {
		b.WriteString("   " + line + "\n")
	}
	b.WriteString("\n")
}

// writeComparison writes one tree entry per ranked algorithm with a bar
// relative to the slowest
func (f *terminalFormatter) writeComparison(b *strings.Builder, report *Report) {
	b.WriteString(emoji.GetEmoji("trophy") + " Ranking\n")

	top := maxSteps(report)
	items := make([]termfmt.TreeItem, 0, len(report.Comparison))
	for i, res := range report.Comparison {
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%d. %s", res.Rank, res.Name),
			Value: fmt.Sprintf("%s steps", formatNumber(res.Steps)),
			Children: []termfmt.TreeItem{
				{Label: relativeBar(res.Steps, top, f.opts), Value: ""},
				{Label: "Comparisons", Value: formatNumber(res.Comparisons)},
				{Label: "Swaps", Value: formatNumber(res.Swaps)},
				{Label: "Time", Value: fmt.Sprintf("%dms", res.TimeMs), Last: true},
			},
			Last: i == len(report.Comparison)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeHistory writes the aggregated history of every recorded algorithm
func (f *terminalFormatter) writeHistory(b *strings.Builder, history []monitor.KindSummary) {
	b.WriteString(emoji.GetEmoji("history") + " History\n")

	items := make([]termfmt.TreeItem, 0, len(history))
	for i, h := range history {
		items = append(items, termfmt.TreeItem{
			Label: h.Kind,
			Value: fmt.Sprintf("%d runs, %d stopped", h.Runs, h.Stopped),
			Children: []termfmt.TreeItem{
				{Label: "Steps", Value: fmt.Sprintf("avg %.1f, p95 %.1f", h.Steps.Avg, h.Steps.P95)},
				{Label: "Time", Value: fmt.Sprintf("avg %.1fms, max %.0fms", h.TimeMs.Avg, h.TimeMs.Max), Last: true},
			},
			Last: i == len(history)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeObservations writes up to three remarks
func (f *terminalFormatter) writeObservations(b *strings.Builder, report *Report) {
	notes := generateObservations(report)
	if len(notes) == 0 {
		return
	}

	b.WriteString(symbol("summary", f.opts) + " Observations\n")
	for i, note := range notes {
		if i < 3 {
			b.WriteString("• " + note + "\n")
		}
	}
}
