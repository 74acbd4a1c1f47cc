// Package numerical animates Euclid's algorithm and the sieve of
// Eratosthenes.
package numerical

import (
	"context"
	"fmt"
	"slices"

	"github.com/kazumasamatsumoto/algo/internal/algorithm/frame"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

const (
	GCD   = "euclidean-gcd"
	Sieve = "sieve-of-eratosthenes"
)

// Division is one row of Euclid's algorithm: A = B*Quotient + Remainder.
// X and Y are the running Bezout coefficients in extended mode.
type Division struct {
	A         int `json:"a"`
	B         int `json:"b"`
	Quotient  int `json:"quotient"`
	Remainder int `json:"remainder"`
	X         int `json:"x,omitempty"`
	Y         int `json:"y,omitempty"`
}

// GCDFrame is the visible state of Euclid's algorithm
type GCDFrame struct {
	A        int        `json:"a"`
	B        int        `json:"b"`
	Extended bool       `json:"extended"`
	Rows     []Division `json:"rows"`
	Current  int        `json:"current"`
	Result   int        `json:"result"`
	X        int        `json:"x"`
	Y        int        `json:"y"`
	Complete bool       `json:"complete"`
}

func (f GCDFrame) clone() GCDFrame {
	f.Rows = slices.Clone(f.Rows)
	return f
}

// Euclid computes gcd(A, B), and in extended mode x, y with A*x + B*y = gcd
type Euclid struct {
	*runner.Lifecycle
	gen      *generator.Generator
	guard    runner.Guard
	view     GCDFrame
	extended bool
}

// NewGCD creates a GCD runner over a generated pair
func NewGCD(s settings.Settings, gen *generator.Generator, opts ...runner.Option) *Euclid {
	r := &Euclid{
		Lifecycle: runner.NewLifecycle(GCD, s, opts...),
		gen:       gen,
	}
	r.Reset()
	return r
}

// Reset stops any run and draws a new pair
func (r *Euclid) Reset() {
	r.Stop()
	r.Load(r.gen.GCDPair(r.Settings().ArraySize))
}

// Load sets the pair, larger first
func (r *Euclid) Load(a, b int) {
	r.Stop()
	if a < b {
		a, b = b, a
	}
	r.guard.Write(func() {
		r.view = GCDFrame{A: a, B: b, Extended: r.extended}
		r.clearLocked()
	})
	r.ResetStats()
}

func (r *Euclid) clearLocked() {
	r.view.Rows = nil
	r.view.Current = -1
	r.view.Result, r.view.X, r.view.Y = 0, 0, 0
	r.view.Complete = false
}

// SetExtended toggles Bezout coefficient tracking and draws a new pair.
// Ignored while running.
func (r *Euclid) SetExtended(on bool) {
	if r.IsRunning() {
		return
	}
	r.extended = on
	r.Reset()
}

// SetSettings stores s and draws a new pair
func (r *Euclid) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *Euclid) Frame() GCDFrame {
	var f GCDFrame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// Run divides until the remainder is zero
func (r *Euclid) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		if !r.guard.Commit(tok, r.clearLocked) {
			return
		}
		f := r.Frame()
		if f.Extended {
			r.extendedGCD(tok, f.A, f.B)
		} else {
			r.gcd(tok, f.A, f.B)
		}
	})
}

func (r *Euclid) gcd(tok *runner.Token, a, b int) {
	for i := 0; b != 0; i++ {
		if tok.Stopped() {
			return
		}
		row := Division{A: a, B: b, Quotient: a / b, Remainder: a % b}
		if !r.guard.Commit(tok, func() {
			r.view.Rows = append(r.view.Rows, row)
			r.view.Current = i
		}) {
			return
		}
		r.Step(tok)
		r.Compare(tok)
		if !r.Pause(tok, 1) {
			return
		}
		a, b = b, row.Remainder
		if !r.Pause(tok, 0.5) {
			return
		}
	}
	result := a
	r.guard.Commit(tok, func() {
		r.view.Result = result
		r.view.Current = -1
		r.view.Complete = true
	})
}

func (r *Euclid) extendedGCD(tok *runner.Token, a, b int) {
	oldR, rem := a, b
	oldS, s := 1, 0
	oldT, t := 0, 1
	for i := 0; rem != 0; i++ {
		if tok.Stopped() {
			return
		}
		q := oldR / rem
		row := Division{A: oldR, B: rem, Quotient: q, Remainder: oldR - q*rem}
		oldR, rem = rem, oldR-q*rem
		oldS, s = s, oldS-q*s
		oldT, t = t, oldT-q*t
		row.X, row.Y = oldS, oldT
		if !r.guard.Commit(tok, func() {
			r.view.Rows = append(r.view.Rows, row)
			r.view.Current = i
		}) {
			return
		}
		r.Step(tok)
		r.Compare(tok)
		if !r.Pause(tok, 1) {
			return
		}
	}
	result, x, y := oldR, oldS, oldT
	r.guard.Commit(tok, func() {
		r.view.Result, r.view.X, r.view.Y = result, x, y
		r.view.Current = -1
		r.view.Complete = true
	})
}

// LCM returns the least common multiple once the gcd is known
func (f GCDFrame) LCM() int {
	if f.Result == 0 {
		return 0
	}
	return f.A / f.Result * f.B
}

// Render lists the divisions performed so far
func (r *Euclid) Render() string {
	f := r.Frame()
	lines := []string{fmt.Sprintf("gcd(%d, %d)", f.A, f.B)}
	for i, d := range f.Rows {
		mark := " "
		if i == f.Current {
			mark = ">"
		}
		line := fmt.Sprintf("%s %d = %d x %d + %d", mark, d.A, d.B, d.Quotient, d.Remainder)
		if f.Extended {
			line += fmt.Sprintf("   x=%d y=%d", d.X, d.Y)
		}
		lines = append(lines, line)
	}
	if f.Complete {
		lines = append(lines, r.Summary())
	}
	return frame.Join(lines...)
}

// Summary reports the gcd, the coefficients in extended mode
func (r *Euclid) Summary() string {
	f := r.Frame()
	switch {
	case !f.Complete:
		return fmt.Sprintf("gcd(%d, %d)", f.A, f.B)
	case f.Extended:
		return fmt.Sprintf("gcd(%d, %d) = %d = %d*%d + %d*%d", f.A, f.B, f.Result, f.A, f.X, f.B, f.Y)
	default:
		return fmt.Sprintf("gcd(%d, %d) = %d, lcm %d", f.A, f.B, f.Result, f.LCM())
	}
}
