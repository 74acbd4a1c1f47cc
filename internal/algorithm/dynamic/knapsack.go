package dynamic

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/kazumasamatsumoto/algo/internal/algorithm/frame"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// KnapsackFrame is the visible state of the 0/1 knapsack table. Row i covers
// the first i items, column w a capacity of w.
type KnapsackFrame struct {
	Items       []generator.Item `json:"items"`
	Capacity    int              `json:"capacity"`
	Table       [][]int          `json:"table"`
	Row         int              `json:"row"`
	Col         int              `json:"col"`
	Selected    []bool           `json:"selected"`
	TotalValue  int              `json:"total_value"`
	TotalWeight int              `json:"total_weight"`
	Complete    bool             `json:"complete"`
}

func (f KnapsackFrame) clone() KnapsackFrame {
	f.Items = slices.Clone(f.Items)
	f.Table = cloneTable(f.Table)
	f.Selected = slices.Clone(f.Selected)
	return f
}

func cloneTable(t [][]int) [][]int {
	out := make([][]int, len(t))
	for i, row := range t {
		out[i] = slices.Clone(row)
	}
	return out
}

func zeroTable(rows, cols int) [][]int {
	t := make([][]int, rows)
	for i := range t {
		t[i] = make([]int, cols)
	}
	return t
}

// Chosen returns the selected items
func (f KnapsackFrame) Chosen() []generator.Item {
	var out []generator.Item
	for i, sel := range f.Selected {
		if sel {
			out = append(out, f.Items[i])
		}
	}
	return out
}

// KnapsackSolver fills the knapsack table and backtracks to the chosen items
type KnapsackSolver struct {
	*runner.Lifecycle
	gen   *generator.Generator
	guard runner.Guard
	view  KnapsackFrame
}

// NewKnapsack creates a knapsack runner with generated items
func NewKnapsack(s settings.Settings, gen *generator.Generator, opts ...runner.Option) *KnapsackSolver {
	r := &KnapsackSolver{
		Lifecycle: runner.NewLifecycle(Knapsack, s, opts...),
		gen:       gen,
	}
	r.Reset()
	return r
}

// Reset stops any run and draws new items
func (r *KnapsackSolver) Reset() {
	r.Stop()
	size := r.Settings().ArraySize
	r.Load(r.gen.KnapsackItems(size), generator.KnapsackCapacity(size))
}

// Load replaces the items and capacity
func (r *KnapsackSolver) Load(items []generator.Item, capacity int) {
	r.Stop()
	r.guard.Write(func() {
		r.view = KnapsackFrame{Items: slices.Clone(items), Capacity: max(capacity, 0)}
		r.clearLocked()
	})
	r.ResetStats()
}

func (r *KnapsackSolver) clearLocked() {
	r.view.Table = zeroTable(len(r.view.Items)+1, r.view.Capacity+1)
	r.view.Selected = make([]bool, len(r.view.Items))
	r.view.Row, r.view.Col = -1, -1
	r.view.TotalValue, r.view.TotalWeight = 0, 0
	r.view.Complete = false
}

// SetSettings stores s and draws new items
func (r *KnapsackSolver) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *KnapsackSolver) Frame() KnapsackFrame {
	var f KnapsackFrame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// Run fills the table row by row, then walks back from the last cell
func (r *KnapsackSolver) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		if !r.guard.Commit(tok, r.clearLocked) {
			return
		}
		f := r.Frame()
		if !r.fill(tok, f.Items, f.Table) {
			return
		}
		r.backtrack(tok, f.Items, f.Table)
	})
}

func (r *KnapsackSolver) fill(tok *runner.Token, items []generator.Item, table [][]int) bool {
	capacity := len(table[0]) - 1
	for i := 1; i <= len(items); i++ {
		item := items[i-1]
		for w := 1; w <= capacity; w++ {
			if tok.Stopped() {
				return false
			}
			if !r.guard.Commit(tok, func() { r.view.Row, r.view.Col = i, w }) {
				return false
			}
			r.Step(tok)
			if !r.Pause(tok, 1) {
				return false
			}

			old := table[i][w]
			if item.Weight <= w {
				table[i][w] = max(table[i-1][w-item.Weight]+item.Value, table[i-1][w])
				r.Compare(tok)
			} else {
				table[i][w] = table[i-1][w]
			}
			v := table[i][w]
			if !r.guard.Commit(tok, func() { r.view.Table[i][w] = v }) {
				return false
			}
			if v != old {
				r.Swap(tok)
			}
			if !r.Pause(tok, 0.3) {
				return false
			}
		}
	}
	return r.guard.Commit(tok, func() { r.view.Row, r.view.Col = -1, -1 })
}

func (r *KnapsackSolver) backtrack(tok *runner.Token, items []generator.Item, table [][]int) {
	i, w := len(items), len(table[0])-1
	best := table[i][w]
	if !r.guard.Commit(tok, func() { r.view.TotalValue = best }) {
		return
	}
	weight := 0
	for i > 0 && w > 0 {
		if tok.Stopped() {
			return
		}
		row, col := i, w
		if !r.guard.Commit(tok, func() { r.view.Row, r.view.Col = row, col }) {
			return
		}
		if !r.Pause(tok, 1) {
			return
		}
		if table[i][w] != table[i-1][w] {
			item := items[i-1]
			weight += item.Weight
			w -= item.Weight
			idx, total := i-1, weight
			if !r.guard.Commit(tok, func() {
				r.view.Selected[idx] = true
				r.view.TotalWeight = total
			}) {
				return
			}
			r.Step(tok)
		}
		i--
	}
	r.guard.Commit(tok, func() {
		r.view.Row, r.view.Col = -1, -1
		r.view.Complete = true
	})
}

// Render draws the items and the table with the current cell starred
func (r *KnapsackSolver) Render() string {
	f := r.Frame()
	var lines []string
	for i, it := range f.Items {
		mark := " "
		if f.Selected[i] {
			mark = "+"
		}
		lines = append(lines, fmt.Sprintf("%s %-10s w=%d v=%d", mark, it.Name, it.Weight, it.Value))
	}
	rowHeads := make([]string, len(f.Table))
	for i := range rowHeads {
		rowHeads[i] = "#" + strconv.Itoa(i)
	}
	colHeads := make([]string, f.Capacity+1)
	for w := range colHeads {
		colHeads[w] = strconv.Itoa(w)
	}
	lines = append(lines, frame.Table(rowHeads, colHeads, f.Table, unknown, func(i, w int) bool {
		return i == f.Row && w == f.Col
	})...)
	if f.Complete {
		lines = append(lines, fmt.Sprintf("value %d, weight %d/%d", f.TotalValue, f.TotalWeight, f.Capacity))
	}
	return frame.Join(lines...)
}

// Summary reports the best value and the items that make it
func (r *KnapsackSolver) Summary() string {
	f := r.Frame()
	if !f.Complete {
		return fmt.Sprintf("%d items, capacity %d", len(f.Items), f.Capacity)
	}
	names := make([]string, 0, len(f.Items))
	for _, it := range f.Chosen() {
		names = append(names, it.Name)
	}
	return fmt.Sprintf("value %d with %s (weight %d/%d)", f.TotalValue, strings.Join(names, ", "), f.TotalWeight, f.Capacity)
}
