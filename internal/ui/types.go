package ui

import "github.com/kazumasamatsumoto/algo/internal/logger"

// View represents different UI views
type View int

const (
	ViewMenu View = iota
	ViewVisualizer
	ViewHistory
	ViewHelp
)

// Options configures the TUI
type Options struct {
	Theme     string // default|high-contrast|minimal
	AltScreen bool
	ShowHelp  bool // key hints under every screen
	Logger    *logger.Logger
}

// Key step sizes
const (
	speedStep = 50 // milliseconds
	sizeStep  = 1
)
