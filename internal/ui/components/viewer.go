package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FrameViewer shows the text a runner renders of its working data. Frames
// taller than the viewer scroll.
type FrameViewer struct {
	Title   string
	Lines   []string
	Offset  int
	Width   int
	Height  int
	Footer  string
	Palette Palette
}

// NewFrameViewer creates a new frame viewer
func NewFrameViewer(title string, width, height int, palette Palette) *FrameViewer {
	return &FrameViewer{
		Title:   title,
		Width:   width,
		Height:  height,
		Palette: palette,
	}
}

// SetFrame replaces the displayed frame, keeping the scroll position when it
// still fits
func (v *FrameViewer) SetFrame(frame string) {
	frame = strings.TrimRight(frame, "\n")
	if frame == "" {
		v.Lines = nil
	} else {
		v.Lines = strings.Split(frame, "\n")
	}
	v.Offset = min(v.Offset, v.maxOffset())
}

// SetSize changes the space the viewer may take
func (v *FrameViewer) SetSize(width, height int) {
	v.Width = width
	v.Height = height
	v.Offset = min(v.Offset, v.maxOffset())
}

// ScrollUp moves the window one line up
func (v *FrameViewer) ScrollUp() bool {
	if v.Offset > 0 {
		v.Offset--
		return true
	}
	return false
}

// ScrollDown moves the window one line down
func (v *FrameViewer) ScrollDown() bool {
	if v.Offset < v.maxOffset() {
		v.Offset++
		return true
	}
	return false
}

func (v *FrameViewer) visibleRows() int {
	return max(v.Height-4, 1)
}

func (v *FrameViewer) maxOffset() int {
	return max(len(v.Lines)-v.visibleRows(), 0)
}

// Render renders the frame viewer
func (v *FrameViewer) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(v.Palette.Primary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(v.Palette.Muted)
	bodyStyle := lipgloss.NewStyle().Foreground(v.Palette.Secondary)

	content := []string{headerStyle.Render(v.Title), ""}

	if len(v.Lines) == 0 {
		content = append(content, mutedStyle.Render("Nothing to show yet"))
	} else {
		end := min(v.Offset+v.visibleRows(), len(v.Lines))
		for _, line := range v.Lines[v.Offset:end] {
			content = append(content, bodyStyle.Render(line))
		}
		if len(v.Lines) > v.visibleRows() {
			content = append(content, mutedStyle.Render(fmt.Sprintf("(lines %d-%d of %d)", v.Offset+1, end, len(v.Lines))))
		}
	}

	if v.Footer != "" {
		content = append(content, "", lipgloss.NewStyle().Foreground(v.Palette.Success).Render(v.Footer))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(v.Palette.Border).
		Padding(0, 1).
		Width(v.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}
