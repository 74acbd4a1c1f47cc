// Package search animates linear and binary search for a target drawn from
// the generated data.
package search

import (
	"context"
	"fmt"
	"slices"

	"github.com/kazumasamatsumoto/algo/internal/algorithm/frame"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// Method selects the search algorithm
type Method string

const (
	Linear Method = "linear-search"
	Binary Method = "binary-search"
)

// Frame is the visible state of a search. Low and High bound the live window
// of a binary search; Excluded marks indices ruled out so far.
type Frame struct {
	Data     []int  `json:"data"`
	Target   int    `json:"target"`
	Current  int    `json:"current"`
	Low      int    `json:"low"`
	High     int    `json:"high"`
	Excluded []bool `json:"excluded,omitempty"`
	Found    int    `json:"found"`
	Complete bool   `json:"complete"`
}

func (f Frame) clone() Frame {
	f.Data = slices.Clone(f.Data)
	f.Excluded = slices.Clone(f.Excluded)
	return f
}

// Searcher runs one search method
type Searcher struct {
	*runner.Lifecycle
	method Method
	gen    *generator.Generator
	guard  runner.Guard
	view   Frame
}

// New creates a searcher with generated data and target
func New(method Method, s settings.Settings, gen *generator.Generator, opts ...runner.Option) *Searcher {
	r := &Searcher{
		Lifecycle: runner.NewLifecycle(string(method), s, opts...),
		method:    method,
		gen:       gen,
	}
	r.Reset()
	return r
}

// Reset stops any run and draws new data and a new target from it
func (r *Searcher) Reset() {
	r.Stop()
	s := r.Settings()
	data := r.gen.Array(s.ArraySize, s.DataType)
	if r.method == Binary {
		slices.Sort(data)
	}
	r.Load(data, r.gen.Pick(data))
}

// Load sets the data and target explicitly. Binary search sorts the data.
func (r *Searcher) Load(data []int, target int) {
	r.Stop()
	data = slices.Clone(data)
	if r.method == Binary {
		slices.Sort(data)
	}
	r.guard.Write(func() {
		r.view = Frame{
			Data:     data,
			Target:   target,
			Current:  -1,
			Low:      0,
			High:     len(data) - 1,
			Excluded: make([]bool, len(data)),
			Found:    -1,
		}
	})
	r.ResetStats()
}

// SetSettings stores s and regenerates the data
func (r *Searcher) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *Searcher) Frame() Frame {
	var f Frame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// Run searches for the target
func (r *Searcher) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		f := r.Frame()
		// a fresh window for every run
		r.guard.Commit(tok, func() {
			r.view.Low, r.view.High = 0, len(f.Data)-1
			r.view.Excluded = make([]bool, len(f.Data))
			r.view.Found, r.view.Current, r.view.Complete = -1, -1, false
		})
		if r.method == Binary {
			r.binary(tok, f.Data, f.Target)
		} else {
			r.linear(tok, f.Data, f.Target)
		}
	})
}

func (r *Searcher) linear(tok *runner.Token, data []int, target int) {
	for i := range data {
		if tok.Stopped() {
			return
		}
		if !r.guard.Commit(tok, func() { r.view.Current = i }) {
			return
		}
		r.Compare(tok)
		r.Step(tok)
		if !r.Pause(tok, 1) {
			return
		}
		if data[i] == target {
			r.guard.Commit(tok, func() { r.view.Found = i; r.view.Complete = true })
			r.Pause(tok, 1)
			return
		}
	}
	r.guard.Commit(tok, func() { r.view.Current = -1; r.view.Complete = true })
}

func (r *Searcher) binary(tok *runner.Token, data []int, target int) {
	lo, hi := 0, len(data)-1
	for lo <= hi {
		if tok.Stopped() {
			return
		}
		mid := (lo + hi) / 2
		if !r.guard.Commit(tok, func() { r.view.Current = mid }) {
			return
		}
		r.Step(tok)
		if !r.Pause(tok, 1) {
			return
		}

		r.Compare(tok)
		if !r.Pause(tok, 1) {
			return
		}
		if data[mid] == target {
			r.guard.Commit(tok, func() { r.view.Found = mid; r.view.Complete = true })
			r.Pause(tok, 1)
			return
		}

		from, to := mid, hi
		if data[mid] < target {
			from, to = lo, mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
		newLo, newHi := lo, hi
		if !r.guard.Commit(tok, func() {
			for i := from; i <= to; i++ {
				r.view.Excluded[i] = true
			}
			r.view.Low, r.view.High = newLo, newHi
		}) {
			return
		}
		if !r.Pause(tok, 1) {
			return
		}
	}
	r.guard.Commit(tok, func() { r.view.Current = -1; r.view.Complete = true })
}

// Found returns the index where the target was found, or -1
func (r *Searcher) Found() int {
	return r.Frame().Found
}

// Render draws the data with the probe and excluded indices marked
func (r *Searcher) Render() string {
	f := r.Frame()
	marks := make(map[int]rune)
	for i, out := range f.Excluded {
		if out {
			marks[i] = 'x'
		}
	}
	if f.Current >= 0 {
		marks[f.Current] = '^'
	}
	if f.Found >= 0 {
		marks[f.Found] = '*'
	}

	lines := frame.Bars(f.Data, 6)
	lines = append(lines,
		frame.Markers(len(f.Data), marks),
		frame.Values(f.Data, f.Current),
		fmt.Sprintf("target %d", f.Target),
	)
	return frame.Join(lines...)
}

// Summary reports the outcome
func (r *Searcher) Summary() string {
	f := r.Frame()
	switch {
	case f.Found >= 0:
		return fmt.Sprintf("found %d at index %d", f.Target, f.Found)
	case f.Complete:
		return fmt.Sprintf("%d not found", f.Target)
	default:
		return fmt.Sprintf("searching for %d", f.Target)
	}
}
