package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kazumasamatsumoto/algo/internal/emoji"
	"github.com/kazumasamatsumoto/algo/internal/runner"
)

// StatsCard represents a statistics card component
type StatsCard struct {
	Title       string
	Value       string
	Description string
	Status      string // "success", "warning", "error", "info"
	Icon        string
	Width       int
	Height      int
	Palette     Palette
}

// NewStatsCard creates a new stats card
func NewStatsCard(title, value, description string) *StatsCard {
	return &StatsCard{
		Title:       title,
		Value:       value,
		Description: description,
		Status:      "info",
		Width:       18,
		Height:      3,
		Palette:     DefaultPalette(),
	}
}

// SetStatus sets the status color of the card
func (s *StatsCard) SetStatus(status string) *StatsCard {
	s.Status = status
	return s
}

// SetIcon sets the icon for the card
func (s *StatsCard) SetIcon(icon string) *StatsCard {
	s.Icon = icon
	return s
}

// SetSize sets the size of the card
func (s *StatsCard) SetSize(width, height int) *StatsCard {
	s.Width = width
	s.Height = height
	return s
}

// Render renders the stats card
func (s *StatsCard) Render() string {
	p := s.Palette
	valueStyle := lipgloss.NewStyle().Foreground(p.status(s.Status)).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(p.Muted)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1)

	title := titleStyle.Render(s.Title)
	if s.Icon != "" {
		title = s.Icon + " " + title
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		valueStyle.Render(s.Value),
		mutedStyle.Render(s.Description),
	)

	return boxStyle.
		Width(s.Width).
		Height(s.Height).
		Align(lipgloss.Center).
		Render(content)
}

// StatsDashboard lays cards out in rows
type StatsDashboard struct {
	cards      []*StatsCard
	columns    int
	cardWidth  int
	cardHeight int
	palette    Palette
}

// NewStatsDashboard creates a new stats dashboard
func NewStatsDashboard(columns int, palette Palette) *StatsDashboard {
	return &StatsDashboard{
		columns:    max(columns, 1),
		cardWidth:  18,
		cardHeight: 3,
		palette:    palette,
	}
}

// AddCard adds a stats card to the dashboard
func (d *StatsDashboard) AddCard(card *StatsCard) {
	card.SetSize(d.cardWidth, d.cardHeight)
	card.Palette = d.palette
	d.cards = append(d.cards, card)
}

// Cards returns the cards in insertion order
func (d *StatsDashboard) Cards() []*StatsCard {
	return d.cards
}

// SetCardSize sets the default size for all cards
func (d *StatsDashboard) SetCardSize(width, height int) {
	d.cardWidth = width
	d.cardHeight = height
	for _, card := range d.cards {
		card.SetSize(width, height)
	}
}

// Render renders the stats dashboard
func (d *StatsDashboard) Render() string {
	if len(d.cards) == 0 {
		return ""
	}

	var rows []string
	for i := 0; i < len(d.cards); i += d.columns {
		end := min(i+d.columns, len(d.cards))

		rowCards := make([]string, 0, end-i)
		for _, card := range d.cards[i:end] {
			rowCards = append(rowCards, card.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rowCards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RunCards builds the live counters of a runner. The step card is left out
// when showSteps is false.
func RunCards(stats runner.Stats, running, showSteps bool, palette Palette) *StatsDashboard {
	dashboard := NewStatsDashboard(4, palette)

	if showSteps {
		dashboard.AddCard(NewStatsCard(
			"Steps",
			formatNumber(stats.Steps),
			"Visible steps",
		).SetIcon(emoji.GetEmoji("frame")))
	}

	dashboard.AddCard(NewStatsCard(
		"Comparisons",
		formatNumber(stats.Comparisons),
		"Element compares",
	).SetIcon(emoji.GetEmoji("statistics")))

	swapStatus := "info"
	if stats.Swaps > 0 {
		swapStatus = "warning"
	}
	dashboard.AddCard(NewStatsCard(
		"Swaps",
		formatNumber(stats.Swaps),
		"Element moves",
	).SetIcon(emoji.GetEmoji("settings")).SetStatus(swapStatus))

	timeStatus := "success"
	description := "Wall time"
	if running {
		timeStatus = "warning"
		description = "Running..."
	}
	dashboard.AddCard(NewStatsCard(
		"Time",
		fmt.Sprintf("%dms", stats.TimeMs),
		description,
	).SetIcon(emoji.GetEmoji("timer")).SetStatus(timeStatus))

	return dashboard
}

// formatNumber formats large numbers with commas
func formatNumber(n int) string {
	str := strconv.Itoa(n)
	sign := ""
	if strings.HasPrefix(str, "-") {
		sign, str = "-", str[1:]
	}
	if len(str) <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// SummaryBox creates a summary information box
type SummaryBox struct {
	Title   string
	Content []string
	Width   int
	Palette Palette
}

// NewSummaryBox creates a new summary box
func NewSummaryBox(title string, width int, palette Palette) *SummaryBox {
	return &SummaryBox{
		Title:   title,
		Width:   width,
		Palette: palette,
	}
}

// AddLine adds a line to the summary
func (s *SummaryBox) AddLine(line string) {
	s.Content = append(s.Content, line)
}

// AddKeyValue adds a key-value pair to the summary
func (s *SummaryBox) AddKeyValue(key, value string) {
	s.Content = append(s.Content, fmt.Sprintf("%-12s %s", key+":", value))
}

// Render renders the summary box
func (s *SummaryBox) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(s.Palette.Primary).Bold(true)
	bodyStyle := lipgloss.NewStyle().Foreground(s.Palette.Secondary)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(s.Palette.Border).Padding(0, 1)

	content := make([]string, 0, len(s.Content)+2)
	content = append(content, headerStyle.Render(s.Title), "")
	for _, line := range s.Content {
		content = append(content, bodyStyle.Render(line))
	}

	return boxStyle.Width(s.Width).Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
