package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar shows where a value sits inside a range, used for the settings
// gauges
type ProgressBar struct {
	Width   int
	Current int
	Min     int
	Max     int
	Label   string
	Unit    string
	Palette Palette
}

// NewProgressBar creates a new progress bar
func NewProgressBar(width int, palette Palette) *ProgressBar {
	return &ProgressBar{
		Width:   width,
		Max:     1,
		Palette: palette,
	}
}

// SetRange sets the bounds the value is drawn against
func (p *ProgressBar) SetRange(lo, hi int) *ProgressBar {
	p.Min = lo
	p.Max = hi
	return p
}

// SetProgress updates the value
func (p *ProgressBar) SetProgress(current int) *ProgressBar {
	p.Current = current
	return p
}

// SetLabel sets the progress label
func (p *ProgressBar) SetLabel(label, unit string) *ProgressBar {
	p.Label = label
	p.Unit = unit
	return p
}

// Fraction returns how far Current is between Min and Max, within [0, 1]
func (p *ProgressBar) Fraction() float64 {
	if p.Max <= p.Min {
		return 1
	}
	f := float64(p.Current-p.Min) / float64(p.Max-p.Min)
	return min(max(f, 0), 1)
}

// Render renders the progress bar
func (p *ProgressBar) Render() string {
	progressStyle := lipgloss.NewStyle().Foreground(p.Palette.Progress).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(p.Palette.Muted)

	filledWidth := int(float64(p.Width) * p.Fraction())
	bar := progressStyle.Render(strings.Repeat("█", filledWidth)) +
		mutedStyle.Render(strings.Repeat("░", p.Width-filledWidth))

	result := fmt.Sprintf("[%s] %d%s", bar, p.Current, p.Unit)
	if p.Label != "" {
		result = fmt.Sprintf("%-7s %s", p.Label, result)
	}
	return result
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is the running indicator
type Spinner struct {
	Frame   int
	Label   string
	Palette Palette
}

// NewSpinner creates a new spinner
func NewSpinner(palette Palette) *Spinner {
	return &Spinner{Palette: palette}
}

// SetLabel sets the spinner label
func (s *Spinner) SetLabel(label string) {
	s.Label = label
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render() string {
	spinner := lipgloss.NewStyle().Foreground(s.Palette.Progress).Bold(true).Render(spinnerFrames[s.Frame])
	if s.Label != "" {
		return fmt.Sprintf("%s %s", spinner, s.Label)
	}
	return spinner
}
