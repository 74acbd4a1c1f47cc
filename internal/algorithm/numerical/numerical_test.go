package numerical

import (
	"context"
	"testing"
	"time"

	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instant() runner.Option {
	return runner.WithPacer(runner.Instant())
}

func bruteGCD(a, b int) int {
	for d := min(a, b); d > 1; d-- {
		if a%d == 0 && b%d == 0 {
			return d
		}
	}
	return 1
}

func TestGCD(t *testing.T) {
	tests := []struct {
		a, b, want, divisions int
	}{
		{48, 18, 6, 3},
		{18, 48, 6, 3},
		{17, 5, 1, 3},
		{100, 25, 25, 1},
		{21, 21, 21, 1},
	}
	for _, tt := range tests {
		r := NewGCD(settings.Default(), generator.NewSeeded(1), instant())
		r.Load(tt.a, tt.b)

		r.Run(context.Background())

		f := r.Frame()
		require.True(t, f.Complete)
		assert.Equal(t, tt.want, f.Result, "gcd(%d, %d)", tt.a, tt.b)
		assert.Len(t, f.Rows, tt.divisions)
		assert.Equal(t, runner.Stats{Steps: tt.divisions, Comparisons: tt.divisions}, withoutTime(r.Stats()))
	}
}

func TestGeneratedPairsMatchBruteForce(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		s := settings.Default()
		s.ArraySize = 5 + int(seed)
		r := NewGCD(s, generator.NewSeeded(seed), instant())

		r.Run(context.Background())

		f := r.Frame()
		assert.GreaterOrEqual(t, f.A, f.B)
		assert.Equal(t, bruteGCD(f.A, f.B), f.Result)
		assert.Equal(t, 0, f.LCM()%f.A)
		assert.Equal(t, 0, f.LCM()%f.B)
	}
}

func TestExtendedGCDCoefficients(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		r := NewGCD(settings.Default(), generator.NewSeeded(seed), instant())
		r.SetExtended(true)

		r.Run(context.Background())

		f := r.Frame()
		require.True(t, f.Extended)
		require.True(t, f.Complete)
		assert.Equal(t, bruteGCD(f.A, f.B), f.Result)
		assert.Equal(t, f.Result, f.A*f.X+f.B*f.Y, "gcd(%d, %d)", f.A, f.B)
	}
}

func TestExtendedGCDSample(t *testing.T) {
	r := NewGCD(settings.Default(), generator.NewSeeded(1), instant())
	r.SetExtended(true)
	r.Load(240, 46)

	r.Run(context.Background())

	assert.Equal(t, "gcd(240, 46) = 2 = 240*-9 + 46*47", r.Summary())
}

func TestGCDPausePattern(t *testing.T) {
	var pauses []time.Duration
	s := settings.Default()
	s.Speed = 200
	r := NewGCD(s, generator.NewSeeded(1), runner.WithPacer(runner.PacerFunc(func(_ *runner.Token, d time.Duration) bool {
		pauses = append(pauses, d)
		return true
	})))
	r.Load(48, 18)

	r.Run(context.Background())

	want := []time.Duration{200, 100, 200, 100, 200, 100}
	for i := range want {
		want[i] *= time.Millisecond
	}
	assert.Equal(t, want, pauses)
}

// primesUpTo is trial division
func primesUpTo(n int) []int {
	var out []int
	for i := 2; i <= n; i++ {
		prime := true
		for d := 2; d*d <= i; d++ {
			if i%d == 0 {
				prime = false
				break
			}
		}
		if prime {
			out = append(out, i)
		}
	}
	return out
}

func TestSieveMatchesTrialDivision(t *testing.T) {
	for _, size := range []int{5, 10, 15, 20, 33, 50} {
		s := settings.Default()
		s.ArraySize = size
		r := NewSieve(s, instant())

		r.Run(context.Background())

		f := r.Frame()
		require.True(t, f.Complete)
		assert.Equal(t, generator.SieveLimit(size), f.Limit)
		assert.Equal(t, primesUpTo(f.Limit), f.Primes, "limit %d", f.Limit)
	}
}

func TestSieveInstrumentation(t *testing.T) {
	r := NewSieve(settings.Default(), instant())
	r.Load(30)

	r.Run(context.Background())

	f := r.Frame()
	// 2, 3 and 5 sieve; each composite up to 30 is marked once
	assert.Equal(t, 3, r.Stats().Steps)
	assert.Equal(t, 30-1-len(f.Primes), r.Stats().Comparisons)
	assert.Equal(t, 2, f.MarkedBy[12])
	assert.Equal(t, 3, f.MarkedBy[21])
	assert.Equal(t, 5, f.MarkedBy[25])
	assert.Equal(t, "10 primes up to 30", r.Summary())
}

func TestStopLeavesSieveConsistent(t *testing.T) {
	for _, k := range []int{1, 4, 9, 20} {
		pauses := 0
		var r *Eratosthenes
		r = NewSieve(settings.Default(), runner.WithPacer(runner.PacerFunc(func(tok *runner.Token, _ time.Duration) bool {
			pauses++
			if pauses == k {
				r.Stop()
			}
			return !tok.Stopped()
		})))
		r.Load(50)

		r.Run(context.Background())

		f := r.Frame()
		assert.False(t, f.Complete)
		assert.Len(t, f.Composite, 51)
		for n := 2; n <= 50; n++ {
			if f.Composite[n] {
				assert.NotZero(t, f.MarkedBy[n])
				assert.Zero(t, n%f.MarkedBy[n])
			}
		}
	}
}

func TestStopLeavesGCDRows(t *testing.T) {
	pauses := 0
	var r *Euclid
	r = NewGCD(settings.Default(), generator.NewSeeded(1), runner.WithPacer(runner.PacerFunc(func(tok *runner.Token, _ time.Duration) bool {
		pauses++
		if pauses == 2 {
			r.Stop()
		}
		return !tok.Stopped()
	})))
	r.Load(240, 46)

	r.Run(context.Background())

	f := r.Frame()
	assert.False(t, f.Complete)
	assert.Len(t, f.Rows, 1)
	assert.Equal(t, 1, r.Stats().Steps)
}

func withoutTime(s runner.Stats) runner.Stats {
	s.TimeMs = 0
	return s
}
