// Package dynamic animates the dynamic programming algorithms: memoised
// Fibonacci, 0/1 knapsack and longest common subsequence. Tables keep their
// dimensions for the whole life of a run, stopped or not.
package dynamic

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/kazumasamatsumoto/algo/internal/algorithm/frame"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

const (
	Fib      = "fibonacci"
	Knapsack = "knapsack"
	LCS      = "lcs"
)

// unknown marks a value that has not been computed yet
const unknown = -1

// FibonacciFrame is the visible state of the memoised recursion
type FibonacciFrame struct {
	N           int    `json:"n"`
	Values      []int  `json:"values"`
	Current     int    `json:"current"`
	Calculating []int  `json:"calculating,omitempty"`
	Memoized    []bool `json:"memoized"`
	Complete    bool   `json:"complete"`
}

func (f FibonacciFrame) clone() FibonacciFrame {
	f.Values = slices.Clone(f.Values)
	f.Calculating = slices.Clone(f.Calculating)
	f.Memoized = slices.Clone(f.Memoized)
	return f
}

// Fibonacci computes F(n) top down with a memo table
type Fibonacci struct {
	*runner.Lifecycle
	guard runner.Guard
	view  FibonacciFrame
}

// NewFibonacci creates a Fibonacci runner with n derived from the settings
func NewFibonacci(s settings.Settings, opts ...runner.Option) *Fibonacci {
	r := &Fibonacci{Lifecycle: runner.NewLifecycle(Fib, s, opts...)}
	r.Reset()
	return r
}

// Reset stops any run and clears the table
func (r *Fibonacci) Reset() {
	r.Stop()
	r.Load(generator.FibonacciN(r.Settings().ArraySize))
}

// Load sets n and clears the table
func (r *Fibonacci) Load(n int) {
	r.Stop()
	n = max(n, 0)
	r.guard.Write(func() {
		r.view = FibonacciFrame{N: n}
		r.clearLocked()
	})
	r.ResetStats()
}

func (r *Fibonacci) clearLocked() {
	n := r.view.N
	r.view.Values = make([]int, n+1)
	for i := range r.view.Values {
		r.view.Values[i] = unknown
	}
	r.view.Memoized = make([]bool, n+1)
	r.view.Calculating = nil
	r.view.Current = -1
	r.view.Complete = false
}

// SetSettings stores s and clears the table
func (r *Fibonacci) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *Fibonacci) Frame() FibonacciFrame {
	var f FibonacciFrame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// Run evaluates F(n)
func (r *Fibonacci) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		if !r.guard.Commit(tok, r.clearLocked) {
			return
		}
		memo := make(map[int]int)
		if _, ok := r.fib(tok, r.Frame().N, memo); !ok {
			return
		}
		r.guard.Commit(tok, func() {
			r.view.Current = -1
			r.view.Complete = true
		})
	})
}

// fib returns F(n) and false when the run was stopped on the way
func (r *Fibonacci) fib(tok *runner.Token, n int, memo map[int]int) (int, bool) {
	if tok.Stopped() {
		return 0, false
	}
	if !r.guard.Commit(tok, func() {
		r.view.Current = n
		r.view.Calculating = append(r.view.Calculating, n)
	}) {
		return 0, false
	}
	r.Step(tok)
	if !r.Pause(tok, 1) {
		return 0, false
	}

	if v, ok := memo[n]; ok {
		if !r.guard.Commit(tok, func() {
			r.view.Memoized[n] = true
			r.view.Calculating = slices.DeleteFunc(r.view.Calculating, func(i int) bool { return i == n })
		}) {
			return 0, false
		}
		return v, r.Pause(tok, 1)
	}

	var result int
	if n <= 1 {
		result = n
		r.Compare(tok)
	} else {
		r.Compare(tok)
		if !r.Pause(tok, 1) {
			return 0, false
		}
		a, ok := r.fib(tok, n-1, memo)
		if !ok {
			return 0, false
		}
		b, ok := r.fib(tok, n-2, memo)
		if !ok {
			return 0, false
		}
		result = a + b
	}
	memo[n] = result
	if !r.guard.Commit(tok, func() {
		r.view.Values[n] = result
		r.view.Calculating = slices.DeleteFunc(r.view.Calculating, func(i int) bool { return i == n })
	}) {
		return 0, false
	}
	r.Swap(tok)
	if n > 1 {
		r.Step(tok)
	}
	return result, r.Pause(tok, 1)
}

// Value returns F(n) once computed
func (r *Fibonacci) Value() (int, bool) {
	f := r.Frame()
	v := f.Values[f.N]
	return v, v != unknown
}

// Render draws the table of known values, memo hits marked with "m"
func (r *Fibonacci) Render() string {
	f := r.Frame()
	heads := make([]string, len(f.Values))
	for i := range heads {
		heads[i] = strconv.Itoa(i)
		if f.Memoized[i] {
			heads[i] += "m"
		}
	}
	lines := frame.Table([]string{"F"}, heads, [][]int{f.Values}, unknown, func(_, c int) bool {
		return c == f.Current
	})
	if len(f.Calculating) > 0 {
		lines = append(lines, fmt.Sprintf("calls  %v", f.Calculating))
	}
	return frame.Join(lines...)
}

// Summary reports F(n)
func (r *Fibonacci) Summary() string {
	f := r.Frame()
	if !f.Complete {
		return fmt.Sprintf("F(%d)", f.N)
	}
	hits := 0
	for _, m := range f.Memoized {
		if m {
			hits++
		}
	}
	return fmt.Sprintf("F(%d) = %d (%d memo hits)", f.N, f.Values[f.N], hits)
}
