package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kazumasamatsumoto/algo/internal/monitor"
)

// HistoryChart draws one bar per algorithm run this session, scaled to the
// largest average step count
type HistoryChart struct {
	Title     string
	Summaries []monitor.KindSummary
	Width     int
	Palette   Palette
}

// NewHistoryChart creates a new history chart
func NewHistoryChart(title string, summaries []monitor.KindSummary, width int, palette Palette) *HistoryChart {
	return &HistoryChart{
		Title:     title,
		Summaries: summaries,
		Width:     width,
		Palette:   palette,
	}
}

// Render renders the history chart
func (h *HistoryChart) Render() string {
	p := h.Palette
	headerStyle := lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(p.Muted)

	content := []string{headerStyle.Render(h.Title), ""}
	if len(h.Summaries) == 0 {
		content = append(content, mutedStyle.Render("No runs yet"))
	} else {
		content = append(content, h.renderBars()...)
		content = append(content, "", mutedStyle.Render(h.renderSummary()))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1).
		Width(h.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// renderBars renders one labelled bar per algorithm
func (h *HistoryChart) renderBars() []string {
	p := h.Palette
	labelWidth := 0
	top := 0.0
	for _, s := range h.Summaries {
		labelWidth = max(labelWidth, len(s.Kind))
		top = math.Max(top, s.Steps.Avg)
	}

	barWidth := max(h.Width-labelWidth-18, 5)
	completed := lipgloss.NewStyle().Foreground(p.Success)
	stopped := lipgloss.NewStyle().Foreground(p.Warning)
	empty := lipgloss.NewStyle().Foreground(p.Muted)

	lines := make([]string, 0, len(h.Summaries))
	for _, s := range h.Summaries {
		filled := 0
		if top > 0 {
			filled = int(math.Round(s.Steps.Avg / top * float64(barWidth)))
		}
		style := completed
		if s.Stopped == s.Runs {
			style = stopped
		}

		var line strings.Builder
		line.WriteString(fmt.Sprintf("%-*s │", labelWidth, s.Kind))
		line.WriteString(style.Render(strings.Repeat("█", filled)))
		line.WriteString(empty.Render(strings.Repeat("░", barWidth-filled)))
		line.WriteString(fmt.Sprintf(" %.0f (%dx)", s.Steps.Avg, s.Runs))
		lines = append(lines, line.String())
	}
	return lines
}

// renderSummary totals the runs across every algorithm
func (h *HistoryChart) renderSummary() string {
	runs, stopped := 0, 0
	for _, s := range h.Summaries {
		runs += s.Runs
		stopped += s.Stopped
	}
	return fmt.Sprintf("%d runs across %d algorithms, %d stopped", runs, len(h.Summaries), stopped)
}
