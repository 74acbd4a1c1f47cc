// Package formatter renders run and comparison reports as text, JSON,
// Markdown or CSV.
package formatter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/compare"
	"github.com/kazumasamatsumoto/algo/internal/monitor"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// ErrUnsupportedFormat is returned by New for an unknown format name
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formats lists the accepted format names
var Formats = []string{"text", "json", "markdown", "csv"}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Report is everything known about one run, or one comparison. Sections that
// do not apply are left empty and skipped by every formatter.
type Report struct {
	GeneratedAt time.Time
	Algorithm   string
	Info        *algorithm.Details
	Settings    settings.Settings
	Stats       runner.Stats
	Stopped     bool
	Summary     string
	Frame       string
	Comparison  []compare.Result
	History     []monitor.KindSummary
}

// NewRunReport captures the current state of r
func NewRunReport(r runner.Runner, stopped bool) *Report {
	report := &Report{
		GeneratedAt: time.Now(),
		Algorithm:   r.Kind(),
		Settings:    r.Settings(),
		Stats:       r.Stats(),
		Stopped:     stopped,
		Summary:     r.Summary(),
		Frame:       r.Render(),
	}
	if d, ok := algorithm.Info(algorithm.Kind(r.Kind())); ok {
		report.Info = &d
	}
	return report
}

// NewComparisonReport wraps ranked comparison results
func NewComparisonReport(s settings.Settings, results []compare.Result) *Report {
	return &Report{
		GeneratedAt: time.Now(),
		Settings:    s,
		Comparison:  results,
	}
}

// IsComparison reports whether r holds comparison results rather than a run
func (r *Report) IsComparison() bool {
	return r.Algorithm == "" && len(r.Comparison) > 0
}

// Title is the heading every formatter uses
func (r *Report) Title() string {
	switch {
	case r.IsComparison():
		return "Algorithm Comparison"
	case r.Info != nil:
		return r.Info.Name + " Run"
	case r.Algorithm != "":
		return r.Algorithm + " Run"
	}
	return "Run History"
}

// Status describes how the run ended
func (r *Report) Status() string {
	if r.Stopped {
		return "stopped"
	}
	return "complete"
}

// New returns the formatter for format
func New(format string, color bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	}
	return nil, fmt.Errorf("%w: %s (use %s)", ErrUnsupportedFormat, format, strings.Join(Formats, ", "))
}
