package dynamic

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kazumasamatsumoto/algo/internal/algorithm/frame"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// Cell addresses one table entry
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SubsequenceFrame is the visible state of the LCS table. Row i covers the
// first i characters of A, column j the first j of B.
type SubsequenceFrame struct {
	A        string  `json:"a"`
	B        string  `json:"b"`
	Table    [][]int `json:"table"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	Path     []Cell  `json:"path,omitempty"`
	MatchA   []bool  `json:"match_a"`
	MatchB   []bool  `json:"match_b"`
	Length   int     `json:"length"`
	Result   string  `json:"result"`
	Complete bool    `json:"complete"`
}

func (f SubsequenceFrame) clone() SubsequenceFrame {
	f.Table = cloneTable(f.Table)
	f.Path = slices.Clone(f.Path)
	f.MatchA = slices.Clone(f.MatchA)
	f.MatchB = slices.Clone(f.MatchB)
	return f
}

// Subsequence finds the longest common subsequence of two words
type Subsequence struct {
	*runner.Lifecycle
	gen   *generator.Generator
	guard runner.Guard
	view  SubsequenceFrame
}

// NewLCS creates an LCS runner over a generated word pair
func NewLCS(s settings.Settings, gen *generator.Generator, opts ...runner.Option) *Subsequence {
	r := &Subsequence{
		Lifecycle: runner.NewLifecycle(LCS, s, opts...),
		gen:       gen,
	}
	r.Reset()
	return r
}

// Reset stops any run and draws a new word pair
func (r *Subsequence) Reset() {
	r.Stop()
	r.Load(r.gen.LCSPair(r.Settings().ArraySize))
}

// Load replaces the word pair
func (r *Subsequence) Load(a, b string) {
	r.Stop()
	r.guard.Write(func() {
		r.view = SubsequenceFrame{A: a, B: b}
		r.clearLocked()
	})
	r.ResetStats()
}

func (r *Subsequence) clearLocked() {
	r.view.Table = zeroTable(len(r.view.A)+1, len(r.view.B)+1)
	r.view.MatchA = make([]bool, len(r.view.A))
	r.view.MatchB = make([]bool, len(r.view.B))
	r.view.Path = nil
	r.view.Row, r.view.Col = -1, -1
	r.view.Length = 0
	r.view.Result = ""
	r.view.Complete = false
}

// SetSettings stores s and draws a new word pair
func (r *Subsequence) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *Subsequence) Frame() SubsequenceFrame {
	var f SubsequenceFrame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// Run fills the table, then backtracks from the last cell
func (r *Subsequence) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		if !r.guard.Commit(tok, r.clearLocked) {
			return
		}
		f := r.Frame()
		if !r.fill(tok, f.A, f.B, f.Table) {
			return
		}
		r.backtrack(tok, f.A, f.B, f.Table)
	})
}

func (r *Subsequence) fill(tok *runner.Token, a, b string, table [][]int) bool {
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if tok.Stopped() {
				return false
			}
			if !r.guard.Commit(tok, func() { r.view.Row, r.view.Col = i, j }) {
				return false
			}
			r.Step(tok)
			if !r.Pause(tok, 1) {
				return false
			}

			r.Compare(tok)
			old := table[i][j]
			if a[i-1] == b[j-1] {
				table[i][j] = table[i-1][j-1] + 1
			} else {
				table[i][j] = max(table[i-1][j], table[i][j-1])
			}
			v := table[i][j]
			if !r.guard.Commit(tok, func() { r.view.Table[i][j] = v }) {
				return false
			}
			if v != old {
				r.Swap(tok)
			}
			if !r.Pause(tok, 0.5) {
				return false
			}
		}
	}
	length := table[len(a)][len(b)]
	return r.guard.Commit(tok, func() {
		r.view.Length = length
		r.view.Row, r.view.Col = -1, -1
	})
}

func (r *Subsequence) backtrack(tok *runner.Token, a, b string, table [][]int) {
	i, j := len(a), len(b)
	var chars []byte
	for i > 0 && j > 0 {
		if tok.Stopped() {
			return
		}
		cell := Cell{Row: i, Col: j}
		if !r.guard.Commit(tok, func() {
			r.view.Row, r.view.Col = cell.Row, cell.Col
			r.view.Path = append(r.view.Path, cell)
		}) {
			return
		}
		if !r.Pause(tok, 1) {
			return
		}

		switch {
		case a[i-1] == b[j-1]:
			chars = append(chars, a[i-1])
			ia, ib := i-1, j-1
			if !r.guard.Commit(tok, func() {
				r.view.MatchA[ia] = true
				r.view.MatchB[ib] = true
			}) {
				return
			}
			i--
			j--
		case table[i-1][j] > table[i][j-1]:
			i--
		default:
			j--
		}
		r.Step(tok)
	}
	slices.Reverse(chars)
	result := string(chars)
	r.guard.Commit(tok, func() {
		r.view.Result = result
		r.view.Row, r.view.Col = -1, -1
		r.view.Complete = true
	})
}

// Render draws both words with matched characters bracketed, then the table
func (r *Subsequence) Render() string {
	f := r.Frame()
	word := func(s string, match []bool) string {
		var b strings.Builder
		for i := 0; i < len(s); i++ {
			if match[i] {
				fmt.Fprintf(&b, "[%c]", s[i])
			} else {
				fmt.Fprintf(&b, " %c ", s[i])
			}
		}
		return strings.TrimRight(b.String(), " ")
	}
	rowHeads := make([]string, len(f.A)+1)
	for i := 1; i <= len(f.A); i++ {
		rowHeads[i] = f.A[i-1 : i]
	}
	colHeads := make([]string, len(f.B)+1)
	for j := 1; j <= len(f.B); j++ {
		colHeads[j] = f.B[j-1 : j]
	}
	onPath := func(i, j int) bool {
		return (i == f.Row && j == f.Col) || slices.Contains(f.Path, Cell{Row: i, Col: j})
	}

	lines := []string{"A  " + word(f.A, f.MatchA), "B  " + word(f.B, f.MatchB)}
	lines = append(lines, frame.Table(rowHeads, colHeads, f.Table, unknown, onPath)...)
	if f.Complete {
		lines = append(lines, fmt.Sprintf("LCS %q (length %d)", f.Result, f.Length))
	}
	return frame.Join(lines...)
}

// Summary reports the subsequence
func (r *Subsequence) Summary() string {
	f := r.Frame()
	if !f.Complete {
		return fmt.Sprintf("LCS of %s and %s", f.A, f.B)
	}
	return fmt.Sprintf("LCS of %s and %s is %q (length %d)", f.A, f.B, f.Result, f.Length)
}
