package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/emoji"
)

// ListItem represents an item in a list
type ListItem struct {
	ID          string
	Title       string
	Description string
	Group       string // items sharing a group are listed under one heading
	Status      string
	Icon        string
}

// List represents a navigable list component
type List struct {
	Title       string
	Items       []ListItem
	Selected    int
	Focused     bool
	Width       int
	Height      int
	ShowNumbers bool
	Palette     Palette
}

// NewList creates a new list component
func NewList(title string, width, height int, palette Palette) *List {
	return &List{
		Title:       title,
		Width:       width,
		Height:      height,
		ShowNumbers: true,
		Palette:     palette,
	}
}

// AddItem adds an item to the list
func (l *List) AddItem(item *ListItem) {
	l.Items = append(l.Items, *item)
}

// SetItems sets all items in the list
func (l *List) SetItems(items []ListItem) {
	l.Items = items
	l.Selected = 0
}

// SetFocused sets the focus state of the list
func (l *List) SetFocused(focused bool) {
	l.Focused = focused
}

// SetSize changes the space the list may take
func (l *List) SetSize(width, height int) {
	l.Width = width
	l.Height = height
}

// GetSelectedItem returns the currently selected item
func (l *List) GetSelectedItem() *ListItem {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return nil
	}
	return &l.Items[l.Selected]
}

// Select moves the selection to the item with id and reports whether it exists
func (l *List) Select(id string) bool {
	for i, item := range l.Items {
		if item.ID == id {
			l.Selected = i
			return true
		}
	}
	return false
}

// MoveUp moves selection up
func (l *List) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

// MoveDown moves selection down
func (l *List) MoveDown() {
	if l.Selected < len(l.Items)-1 {
		l.Selected++
	}
}

// NextGroup jumps to the first item of the following group
func (l *List) NextGroup() {
	current := l.GetSelectedItem()
	if current == nil {
		return
	}
	for i := l.Selected + 1; i < len(l.Items); i++ {
		if l.Items[i].Group != current.Group {
			l.Selected = i
			return
		}
	}
}

// Render renders the list
func (l *List) Render() string {
	p := l.Palette
	headerStyle := lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
	groupStyle := lipgloss.NewStyle().Foreground(p.Warning).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(p.Muted)

	lines := l.lines()

	// keep the selected row on screen
	maxVisible := max(l.Height-4, 1)
	selectedLine := 0
	for i, ln := range lines {
		if ln.item == l.Selected {
			selectedLine = i
			break
		}
	}
	start := 0
	if selectedLine >= maxVisible {
		start = selectedLine - maxVisible + 1
	}
	end := min(start+maxVisible, len(lines))

	content := []string{headerStyle.Render(l.Title), ""}
	for _, ln := range lines[start:end] {
		if ln.item < 0 {
			content = append(content, groupStyle.Render(ln.text))
			continue
		}
		item := l.Items[ln.item]
		content = append(content, l.renderItem(&item, ln.item+1, ln.item == l.Selected))
	}

	if len(lines) > maxVisible {
		content = append(content, "", mutedStyle.Render(fmt.Sprintf("(%d-%d of %d)", start+1, end, len(lines))))
	}

	border := p.Border
	if l.Focused {
		border = p.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(l.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

type listLine struct {
	text string
	item int // -1 for a group heading
}

// lines interleaves group headings with the items
func (l *List) lines() []listLine {
	out := make([]listLine, 0, len(l.Items)+8)
	group := ""
	for i, item := range l.Items {
		if item.Group != "" && item.Group != group {
			group = item.Group
			out = append(out, listLine{text: strings.ToUpper(group), item: -1})
		}
		out = append(out, listLine{item: i})
	}
	return out
}

// renderItem renders a single list item
func (l *List) renderItem(item *ListItem, number int, selected bool) string {
	p := l.Palette

	var parts []string
	if selected {
		parts = append(parts, "▶")
	} else {
		parts = append(parts, " ")
	}
	if l.ShowNumbers {
		parts = append(parts, fmt.Sprintf("%2d.", number))
	}
	if item.Icon != "" {
		parts = append(parts, item.Icon)
	}

	title := item.Title
	if item.Description != "" {
		title += " - " + item.Description
	}
	parts = append(parts, title)
	line := strings.Join(parts, " ")

	style := lipgloss.NewStyle().Foreground(p.status(item.Status))
	if selected {
		style = lipgloss.NewStyle().Background(p.Selected).Foreground(p.Primary).Bold(true)
	}

	return style.Width(max(l.Width-4, 1)).Render(line)
}

// NewAlgorithmList lists every registered algorithm grouped by category
func NewAlgorithmList(width, height int, palette Palette) *List {
	list := NewList("Algorithms", width, height, palette)

	byCategory := algorithm.ByCategory()
	for _, category := range algorithm.Categories {
		for _, kind := range byCategory[category] {
			info, _ := algorithm.Info(kind)
			list.AddItem(&ListItem{
				ID:          string(kind),
				Title:       info.Name,
				Description: info.TimeComplexity,
				Group:       string(category),
				Status:      "info",
				Icon:        emoji.GetEmoji(string(category)),
			})
		}
	}

	return list
}
