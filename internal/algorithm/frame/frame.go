// Package frame draws runner working data as plain text. The terminal UI
// colours the result; headless runs print it as is.
package frame

import (
	"fmt"
	"slices"
	"strings"
)

var levels = []rune(" ▁▂▃▄▅▆▇█")

// Bars renders values as a vertical bar chart height rows tall, one column per
// value followed by a space.
func Bars(values []int, height int) []string {
	if len(values) == 0 || height < 1 {
		return nil
	}
	top := slices.Max(values)
	if top <= 0 {
		top = 1
	}

	rows := make([]string, height)
	for r := 0; r < height; r++ {
		var b strings.Builder
		// eighths of a cell filled at this row, counted from the bottom
		floor := (height - 1 - r) * 8
		for _, v := range values {
			filled := max(v, 0) * height * 8 / top
			cell := min(max(filled-floor, 0), 8)
			b.WriteRune(levels[cell])
			b.WriteByte(' ')
		}
		rows[r] = strings.TrimRight(b.String(), " ")
	}
	return rows
}

// Markers renders a row under Bars with marks[i] placed under column i
func Markers(n int, marks map[int]rune) string {
	if len(marks) == 0 {
		return ""
	}
	cells := make([]rune, 0, n*2)
	for i := 0; i < n; i++ {
		r, ok := marks[i]
		if !ok {
			r = ' '
		}
		cells = append(cells, r, ' ')
	}
	return strings.TrimRight(string(cells), " ")
}

// Values renders numbers separated by spaces, bracketing the indices in hot
func Values(values []int, hot ...int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		if slices.Contains(hot, i) {
			parts[i] = fmt.Sprintf("[%d]", v)
		} else {
			parts[i] = fmt.Sprintf("%d", v)
		}
	}
	return strings.Join(parts, " ")
}

// Table renders a grid of integers with optional row and column headers.
// Cells equal to blank are drawn as "-".
func Table(rowHeads, colHeads []string, cells [][]int, blank int, hot func(r, c int) bool) []string {
	width := 3
	for _, row := range cells {
		for _, v := range row {
			width = max(width, len(fmt.Sprint(v))+2)
		}
	}
	for _, h := range colHeads {
		width = max(width, len(h)+1)
	}
	headWidth := 0
	for _, h := range rowHeads {
		headWidth = max(headWidth, len(h))
	}

	var lines []string
	if len(colHeads) > 0 {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", headWidth+1))
		for _, h := range colHeads {
			fmt.Fprintf(&b, "%*s", width, h)
		}
		lines = append(lines, b.String())
	}
	for r, row := range cells {
		var b strings.Builder
		head := ""
		if r < len(rowHeads) {
			head = rowHeads[r]
		}
		fmt.Fprintf(&b, "%-*s ", headWidth, head)
		for c, v := range row {
			text := fmt.Sprint(v)
			if v == blank {
				text = "-"
			}
			if hot != nil && hot(r, c) {
				text = "*" + text
			}
			fmt.Fprintf(&b, "%*s", width, text)
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

// Join stacks non-empty lines
func Join(lines ...string) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}
