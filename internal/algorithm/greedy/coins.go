// Package greedy animates greedy coin change over a canonical coin system,
// where taking the largest coin first is optimal.
package greedy

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

const CoinChange = "coin-change"

// Denominations are tried largest first
var Denominations = []int{500, 100, 50, 10, 5, 1}

// Frame is the visible state of the change making
type Frame struct {
	Amount    int   `json:"amount"`
	Remaining int   `json:"remaining"`
	Used      []int `json:"used"`
	Current   int   `json:"current"`
	Coins     int   `json:"coins"`
	Complete  bool  `json:"complete"`
}

func (f Frame) clone() Frame {
	f.Used = slices.Clone(f.Used)
	return f
}

// Change makes change for a generated amount
type Change struct {
	*runner.Lifecycle
	gen   *generator.Generator
	guard runner.Guard
	view  Frame
}

// New creates a coin change runner
func New(s settings.Settings, gen *generator.Generator, opts ...runner.Option) *Change {
	r := &Change{
		Lifecycle: runner.NewLifecycle(CoinChange, s, opts...),
		gen:       gen,
	}
	r.Reset()
	return r
}

// Reset stops any run and draws a new amount
func (r *Change) Reset() {
	r.Stop()
	r.Load(r.gen.CoinAmount())
}

// Load sets the amount to change
func (r *Change) Load(amount int) {
	r.Stop()
	r.guard.Write(func() {
		r.view = Frame{Amount: max(amount, 0)}
		r.clearLocked()
	})
	r.ResetStats()
}

func (r *Change) clearLocked() {
	r.view.Remaining = r.view.Amount
	r.view.Used = make([]int, len(Denominations))
	r.view.Current = -1
	r.view.Coins = 0
	r.view.Complete = false
}

// SetSettings stores s and draws a new amount
func (r *Change) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *Change) Frame() Frame {
	var f Frame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// Run takes as many of each coin as fit, largest first
func (r *Change) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		if !r.guard.Commit(tok, r.clearLocked) {
			return
		}
		remaining := r.Frame().Amount
		total := 0

		for i, coin := range Denominations {
			if tok.Stopped() {
				return
			}
			if !r.guard.Commit(tok, func() { r.view.Current = i }) {
				return
			}
			r.Step(tok)
			if !r.Pause(tok, 1) {
				return
			}

			if n := remaining / coin; n > 0 {
				remaining -= n * coin
				total += n
				left, coins := remaining, total
				if !r.guard.Commit(tok, func() {
					r.view.Used[i] = n
					r.view.Remaining = left
					r.view.Coins = coins
				}) {
					return
				}
				r.Compare(tok)
				if !r.Pause(tok, 1) {
					return
				}
				// one beat per coin handed out
				for j := 0; j < n; j++ {
					if !r.Pause(tok, 0.3) {
						return
					}
				}
			}
			if remaining == 0 {
				break
			}
		}
		r.guard.Commit(tok, func() {
			r.view.Current = -1
			r.view.Complete = true
		})
	})
}

// Render lists every denomination with the count taken
func (r *Change) Render() string {
	f := r.Frame()
	lines := []string{fmt.Sprintf("amount %d, remaining %d", f.Amount, f.Remaining)}
	for i, coin := range Denominations {
		mark := " "
		if i == f.Current {
			mark = ">"
		}
		line := fmt.Sprintf("%s %3d x %d", mark, coin, f.Used[i])
		if f.Used[i] > 0 {
			line += "  " + strings.Repeat("o", min(f.Used[i], 20))
		}
		lines = append(lines, line)
	}
	return frame.Join(lines...)
}

// Summary reports the coins used
func (r *Change) Summary() string {
	f := r.Frame()
	if !f.Complete {
		return fmt.Sprintf("change for %d", f.Amount)
	}
	var parts []string
	for i, coin := range Denominations {
		if f.Used[i] > 0 {
			parts = append(parts, fmt.Sprintf("%dx%d", f.Used[i], coin))
		}
	}
	return fmt.Sprintf("%d coins for %d: %s", f.Coins, f.Amount, strings.Join(parts, " "))
}
