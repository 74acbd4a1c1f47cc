package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// csvFormatter writes one row per run or ranked algorithm
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

var csvHeaders = []string{
	"Rank",
	"Algorithm",
	"Name",
	"Steps",
	"Comparisons",
	"Swaps",
	"Time (ms)",
	"Array Size",
	"Data Type",
	"Graph Type",
	"Status",
	"Summary",
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.Write(csvHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	s := report.Settings
	base := func(rank int, kind, name string, steps, comparisons, swaps int, timeMs int64) []string {
		return []string{
			strconv.Itoa(rank),
			kind,
			name,
			strconv.Itoa(steps),
			strconv.Itoa(comparisons),
			strconv.Itoa(swaps),
			strconv.FormatInt(timeMs, 10),
			strconv.Itoa(s.ArraySize),
			string(s.DataType),
			string(s.GraphType),
		}
	}

	var records [][]string
	if report.Algorithm != "" {
		name := report.Algorithm
		if report.Info != nil {
			name = report.Info.Name
		}
		st := report.Stats
		records = append(records, append(base(1, report.Algorithm, name, st.Steps, st.Comparisons, st.Swaps, st.TimeMs),
			report.Status(), escapeCSVString(report.Summary)))
	}
	for _, res := range report.Comparison {
		records = append(records, append(base(res.Rank, res.Algorithm, res.Name, res.Steps, res.Comparisons, res.Swaps, res.TimeMs),
			"complete", ""))
	}

	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

// escapeCSVString flattens and truncates free text for a single cell
func escapeCSVString(s string) string {
	s = oneLine(s)

	if r := []rune(s); len(r) > 100 {
		s = string(r[:97]) + "..."
	}

	return s
}
