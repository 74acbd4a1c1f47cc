package numerical

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

// SieveFrame is the visible state of the sieve. Index i of Composite and
// MarkedBy is the number i; 0 and 1 are never prime.
type SieveFrame struct {
	Limit     int    `json:"limit"`
	Composite []bool `json:"composite"`
	MarkedBy  []int  `json:"marked_by"`
	Prime     int    `json:"prime"`
	Multiple  int    `json:"multiple"`
	Primes    []int  `json:"primes"`
	Complete  bool   `json:"complete"`
}

func (f SieveFrame) clone() SieveFrame {
	f.Composite = slices.Clone(f.Composite)
	f.MarkedBy = slices.Clone(f.MarkedBy)
	f.Primes = slices.Clone(f.Primes)
	return f
}

// Eratosthenes sieves the primes up to a limit derived from the array size
type Eratosthenes struct {
	*runner.Lifecycle
	guard runner.Guard
	view  SieveFrame
}

// NewSieve creates a sieve runner
func NewSieve(s settings.Settings, opts ...runner.Option) *Eratosthenes {
	r := &Eratosthenes{Lifecycle: runner.NewLifecycle(Sieve, s, opts...)}
	r.Reset()
	return r
}

// Reset stops any run and clears the marks
func (r *Eratosthenes) Reset() {
	r.Stop()
	r.Load(generator.SieveLimit(r.Settings().ArraySize))
}

// Load sets the upper bound and clears the marks
func (r *Eratosthenes) Load(limit int) {
	r.Stop()
	r.guard.Write(func() {
		r.view = SieveFrame{Limit: max(limit, 2)}
		r.clearLocked()
	})
	r.ResetStats()
}

func (r *Eratosthenes) clearLocked() {
	n := r.view.Limit + 1
	r.view.Composite = make([]bool, n)
	r.view.Composite[0], r.view.Composite[1] = true, true
	r.view.MarkedBy = make([]int, n)
	r.view.Prime, r.view.Multiple = 0, 0
	r.view.Primes = nil
	r.view.Complete = false
}

// SetSettings stores s and clears the marks
func (r *Eratosthenes) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *Eratosthenes) Frame() SieveFrame {
	var f SieveFrame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// Run crosses out multiples of every prime up to the square root of the limit
func (r *Eratosthenes) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		if !r.guard.Commit(tok, r.clearLocked) {
			return
		}
		limit := r.Frame().Limit
		composite := make([]bool, limit+1)
		var primes []int

		p := 2
		for ; p*p <= limit; p++ {
			if tok.Stopped() {
				return
			}
			if composite[p] {
				continue
			}
			primes = append(primes, p)
			prime, found := p, slices.Clone(primes)
			if !r.guard.Commit(tok, func() {
				r.view.Prime = prime
				r.view.Primes = found
			}) {
				return
			}
			r.Step(tok)
			if !r.Pause(tok, 1) {
				return
			}
			if !r.cross(tok, p, limit, composite) {
				return
			}
		}

		for ; p <= limit; p++ {
			if !composite[p] {
				primes = append(primes, p)
			}
		}
		r.guard.Commit(tok, func() {
			r.view.Primes = primes
			r.view.Prime, r.view.Multiple = 0, 0
			r.view.Complete = true
		})
	})
}

// cross marks the multiples of p from p*p, counting a comparison for each
// number that was not already marked
func (r *Eratosthenes) cross(tok *runner.Token, p, limit int, composite []bool) bool {
	for m := p * p; m <= limit; m += p {
		if tok.Stopped() {
			return false
		}
		fresh := !composite[m]
		composite[m] = true
		multiple := m
		if !r.guard.Commit(tok, func() {
			r.view.Multiple = multiple
			if fresh {
				r.view.Composite[multiple] = true
				r.view.MarkedBy[multiple] = p
			}
		}) {
			return false
		}
		if fresh {
			r.Compare(tok)
		}
		if !r.Pause(tok, 0.5) {
			return false
		}
	}
	return true
}

// Render draws the numbers ten per row, primes bracketed and composites dotted
func (r *Eratosthenes) Render() string {
	f := r.Frame()
	var lines []string
	var b strings.Builder
	for n := 1; n <= f.Limit; n++ {
		switch {
		case n == f.Multiple:
			fmt.Fprintf(&b, " *%3d", n)
		case n == f.Prime || slices.Contains(f.Primes, n):
			fmt.Fprintf(&b, " [%3d]", n)
		case f.Composite[n]:
			fmt.Fprintf(&b, "  %3s", ".")
		default:
			fmt.Fprintf(&b, "  %3d", n)
		}
		if n%10 == 0 || n == f.Limit {
			lines = append(lines, strings.TrimRight(b.String(), " "))
			b.Reset()
		}
	}
	return frame.Join(lines...)
}

// Summary reports how many primes were found
func (r *Eratosthenes) Summary() string {
	f := r.Frame()
	if !f.Complete {
		return fmt.Sprintf("primes up to %d", f.Limit)
	}
	return fmt.Sprintf("%d primes up to %d", len(f.Primes), f.Limit)
}
