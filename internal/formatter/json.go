package formatter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/compare"
	"github.com/kazumasamatsumoto/algo/internal/monitor"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	output := &JSONOutput{
		GeneratedAt: report.GeneratedAt,
		Settings:    report.Settings,
		Comparison:  report.Comparison,
		History:     report.History,
	}
	if report.Algorithm != "" {
		output.Run = createRunOutput(report)
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}

// JSONOutput is the JSON document of a report
type JSONOutput struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Settings    settings.Settings     `json:"settings"`
	Run         *RunOutput            `json:"run,omitempty"`
	Comparison  []compare.Result      `json:"comparison,omitempty"`
	History     []monitor.KindSummary `json:"history,omitempty"`
}

// RunOutput represents a single run
type RunOutput struct {
	Algorithm string             `json:"algorithm"`
	Info      *algorithm.Details `json:"info,omitempty"`
	Status    string             `json:"status"`
	Stats     runner.Stats       `json:"stats"`
	Summary   string             `json:"summary"`
	Frame     []string           `json:"frame,omitempty"`
}

// createRunOutput creates the run section, splitting the frame into lines
func createRunOutput(report *Report) *RunOutput {
	return &RunOutput{
		Algorithm: report.Algorithm,
		Info:      report.Info,
		Status:    report.Status(),
		Stats:     report.Stats,
		Summary:   report.Summary,
		Frame:     frameLines(report.Frame),
	}
}
