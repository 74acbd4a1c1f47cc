package frame

import (
	"strings"
	"testing"
)

func TestBars(t *testing.T) {
	rows := Bars([]int{8, 4, 0}, 1)
	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0] != "█ ▄" {
		t.Errorf("Unexpected bars %q", rows[0])
	}

	tall := Bars([]int{2, 1}, 2)
	if tall[0] != "█" || tall[1] != "█ █" {
		t.Errorf("Unexpected bars %q", tall)
	}

	if Bars(nil, 4) != nil {
		t.Error("Expected nil for empty input")
	}
}

func TestMarkers(t *testing.T) {
	got := Markers(4, map[int]rune{1: '^', 3: 'p'})
	if got != "  ^   p" {
		t.Errorf("Unexpected markers %q", got)
	}
	if Markers(4, nil) != "" {
		t.Error("Expected empty markers")
	}
}

func TestValues(t *testing.T) {
	if got := Values([]int{3, 1, 2}, 1); got != "3 [1] 2" {
		t.Errorf("Unexpected values %q", got)
	}
}

func TestTable(t *testing.T) {
	lines := Table([]string{"a", "b"}, []string{"x", "y"}, [][]int{{1, -1}, {10, 2}}, -1, func(r, c int) bool {
		return r == 1 && c == 1
	})
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "-") {
		t.Errorf("Expected blank marker in %q", lines[1])
	}
	if !strings.Contains(lines[2], "*2") {
		t.Errorf("Expected hot cell in %q", lines[2])
	}
}

func TestJoinSkipsEmpty(t *testing.T) {
	if got := Join("a", "", "b"); got != "a\nb" {
		t.Errorf("Unexpected join %q", got)
	}
}
