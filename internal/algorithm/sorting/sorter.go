// Package sorting animates the six comparison sorts. Every comparison and
// every swap is followed by a pause, and the published array is a
// permutation of the input at every point of a run.
package sorting

import (
	"context"
	"fmt"
	"slices"

	"github.com/kazumasamatsumoto/algo/internal/algorithm/frame"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// Method selects the sorting algorithm
type Method string

const (
	Bubble    Method = "bubble-sort"
	Selection Method = "selection-sort"
	Insertion Method = "insertion-sort"
	Merge     Method = "merge-sort"
	Quick     Method = "quick-sort"
	Heap      Method = "heap-sort"
)

// Methods lists every sort in menu order
var Methods = []Method{Bubble, Selection, Insertion, Merge, Quick, Heap}

// Frame is the visible state of a sort
type Frame struct {
	Data        []int `json:"data"`
	Comparing   []int `json:"comparing,omitempty"`
	Highlighted []int `json:"highlighted,omitempty"`
	Region      []int `json:"region,omitempty"`
	Pivot       int   `json:"pivot"`
	Done        bool  `json:"done"`
}

func (f Frame) clone() Frame {
	f.Data = slices.Clone(f.Data)
	f.Comparing = slices.Clone(f.Comparing)
	f.Highlighted = slices.Clone(f.Highlighted)
	f.Region = slices.Clone(f.Region)
	return f
}

// Sorter runs one sorting method over a generated array
type Sorter struct {
	*runner.Lifecycle
	method Method
	gen    *generator.Generator
	guard  runner.Guard
	view   Frame
}

// New creates a sorter and generates its first array
func New(method Method, s settings.Settings, gen *generator.Generator, opts ...runner.Option) *Sorter {
	r := &Sorter{
		Lifecycle: runner.NewLifecycle(string(method), s, opts...),
		method:    method,
		gen:       gen,
	}
	r.Reset()
	return r
}

// Reset stops any run and regenerates the array from the settings
func (r *Sorter) Reset() {
	r.Stop()
	s := r.Settings()
	r.Load(r.gen.Array(s.ArraySize, s.DataType))
}

// Load replaces the working array and zeroes the stats
func (r *Sorter) Load(data []int) {
	r.Stop()
	r.guard.Write(func() {
		r.view = Frame{Data: slices.Clone(data), Pivot: -1}
	})
	r.ResetStats()
}

// SetSettings stores s and regenerates the array
func (r *Sorter) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *Sorter) Frame() Frame {
	var f Frame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// Run sorts the array, returning early when stopped
func (r *Sorter) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		arr := r.Frame().Data
		switch r.method {
		case Bubble:
			r.bubble(tok, arr)
		case Selection:
			r.selection(tok, arr)
		case Insertion:
			r.insertion(tok, arr)
		case Merge:
			r.mergeSort(tok, arr, 0, len(arr)-1)
		case Quick:
			r.quickSort(tok, arr, 0, len(arr)-1)
		case Heap:
			r.heapSort(tok, arr)
		}
		r.commit(tok, arr, func(f *Frame) { f.Done = true })
	})
}

// commit publishes arr (when non-nil) and resets the markers before mark runs
func (r *Sorter) commit(tok *runner.Token, arr []int, mark func(f *Frame)) bool {
	return r.guard.Commit(tok, func() {
		if arr != nil {
			copy(r.view.Data, arr)
		}
		r.view.Comparing = nil
		r.view.Highlighted = nil
		r.view.Region = nil
		r.view.Pivot = -1
		if mark != nil {
			mark(&r.view)
		}
	})
}

// compare shows the pair, counts it and pauses
func (r *Sorter) compare(tok *runner.Token, i, j int, mark func(f *Frame)) bool {
	if !r.commit(tok, nil, func(f *Frame) {
		f.Comparing = []int{i, j}
		if mark != nil {
			mark(f)
		}
	}) {
		return false
	}
	r.Compare(tok)
	return r.Pause(tok, 1)
}

// exchanged publishes arr after a swap of i and j, counts it and pauses
func (r *Sorter) exchanged(tok *runner.Token, arr []int, i, j int) bool {
	if !r.commit(tok, arr, func(f *Frame) { f.Highlighted = []int{i, j} }) {
		return false
	}
	r.Swap(tok)
	r.Step(tok)
	return r.Pause(tok, 1)
}

// Sorted reports whether the last run completed
func (r *Sorter) Sorted() bool {
	return r.Frame().Done
}

// Render draws the array as bars with markers underneath
func (r *Sorter) Render() string {
	f := r.Frame()
	marks := make(map[int]rune)
	for _, i := range f.Region {
		marks[i] = '-'
	}
	for _, i := range f.Comparing {
		marks[i] = '^'
	}
	for _, i := range f.Highlighted {
		marks[i] = '*'
	}
	if f.Pivot >= 0 {
		marks[f.Pivot] = 'p'
	}

	lines := frame.Bars(f.Data, 8)
	lines = append(lines, frame.Markers(len(f.Data), marks), frame.Values(f.Data, f.Comparing...))
	return frame.Join(lines...)
}

// Summary describes the array state in one line
func (r *Sorter) Summary() string {
	f := r.Frame()
	switch {
	case r.Sorted():
		return fmt.Sprintf("sorted %d values", len(f.Data))
	case r.IsRunning():
		return fmt.Sprintf("sorting %d values", len(f.Data))
	default:
		return fmt.Sprintf("%d values ready", len(f.Data))
	}
}
