package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/kazumasamatsumoto/algo/internal/ui/components"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	// UI colors
	Border   lipgloss.AdaptiveColor
	Muted    lipgloss.AdaptiveColor
	Selected lipgloss.AdaptiveColor
	Progress lipgloss.AdaptiveColor
}

// pair is a light and a dark variant of one colour
type pair [2]string

func (p pair) color() lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: p[0], Dark: p[1]}
}

// themeColors lists a theme's colours in field order
type themeColors struct {
	primary, secondary, accent pair
	success, warning, errorC   pair
	border, muted, selected    pair
	progress                   pair
}

func buildTheme(name string, c themeColors) Theme {
	return Theme{
		Name:      name,
		Primary:   c.primary.color(),
		Secondary: c.secondary.color(),
		Accent:    c.accent.color(),
		Success:   c.success.color(),
		Warning:   c.warning.color(),
		Error:     c.errorC.color(),
		Border:    c.border.color(),
		Muted:     c.muted.color(),
		Selected:  c.selected.color(),
		Progress:  c.progress.color(),
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default", themeColors{
		primary: pair{"#1E40AF", "#3B82F6"}, secondary: pair{"#6B7280", "#9CA3AF"}, accent: pair{"#7C3AED", "#A855F7"},
		success: pair{"#059669", "#10B981"}, warning: pair{"#D97706", "#F59E0B"}, errorC: pair{"#DC2626", "#EF4444"},
		border: pair{"#D1D5DB", "#374151"}, muted: pair{"#6B7280", "#9CA3AF"}, selected: pair{"#DBEAFE", "#1E3A8A"},
		progress: pair{"#059669", "#10B981"},
	})

	HighContrastTheme = buildTheme("high-contrast", themeColors{
		primary: pair{"#000000", "#FFFFFF"}, secondary: pair{"#666666", "#BBBBBB"}, accent: pair{"#000080", "#8080FF"},
		success: pair{"#006600", "#00FF00"}, warning: pair{"#CC6600", "#FFAA00"}, errorC: pair{"#CC0000", "#FF4444"},
		border: pair{"#000000", "#FFFFFF"}, muted: pair{"#666666", "#BBBBBB"}, selected: pair{"#CCCCCC", "#333333"},
		progress: pair{"#006600", "#00FF00"},
	})

	MinimalTheme = buildTheme("minimal", themeColors{
		primary: pair{"#2D3748", "#E2E8F0"}, secondary: pair{"#718096", "#A0AEC0"}, accent: pair{"#4A5568", "#CBD5E0"},
		success: pair{"#2F855A", "#68D391"}, warning: pair{"#C05621", "#F6AD55"}, errorC: pair{"#C53030", "#FC8181"},
		border: pair{"#E2E8F0", "#2D3748"}, muted: pair{"#A0AEC0", "#718096"}, selected: pair{"#EDF2F7", "#2D3748"},
		progress: pair{"#2F855A", "#68D391"},
	})
)

var (
	themeMu      sync.RWMutex
	currentTheme = DefaultTheme
)

// GetTheme returns the current active theme
func GetTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default", "":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// Palette hands the theme's colours to the widgets
func (t *Theme) Palette() components.Palette {
	return components.Palette{
		Primary:   t.Primary,
		Secondary: t.Secondary,
		Success:   t.Success,
		Warning:   t.Warning,
		Error:     t.Error,
		Muted:     t.Muted,
		Border:    t.Border,
		Selected:  t.Selected,
		Progress:  t.Progress,
	}
}

// Styles contains the styles the screens share
type Styles struct {
	Theme Theme

	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Accent  lipgloss.Style
	Box     lipgloss.Style
}

// GetStyles builds the styles of the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Accent: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),
	}
}
