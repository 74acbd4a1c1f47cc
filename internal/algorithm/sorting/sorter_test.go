package sorting

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stopAfter stops the runner returned by get on the k-th pause
func stopAfter(k int, get func() runner.Runner) runner.Pacer {
	pauses := 0
	return runner.PacerFunc(func(tok *runner.Token, _ time.Duration) bool {
		pauses++
		if pauses == k {
			get().Stop()
		}
		return !tok.Stopped()
	})
}

func isPermutation(a, b []int) bool {
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}

func TestSortsProduceSortedPermutation(t *testing.T) {
	inputs := map[string][]int{
		"random":     generator.NewSeeded(1).Array(30, settings.DataRandom),
		"sorted":     generator.NewSeeded(1).Array(12, settings.DataSorted),
		"reverse":    generator.NewSeeded(1).Array(17, settings.DataReverse),
		"nearly":     generator.NewSeeded(2).Array(25, settings.DataNearlySorted),
		"duplicates": {5, 3, 5, 1, 3, 5, 1},
		"pair":       {2, 1},
	}

	for _, method := range Methods {
		for name, input := range inputs {
			t.Run(string(method)+"/"+name, func(t *testing.T) {
				s := New(method, settings.Default(), generator.NewSeeded(9), runner.WithPacer(runner.Instant()))
				s.Load(input)

				s.Run(context.Background())

				got := s.Frame()
				assert.True(t, got.Done)
				assert.True(t, s.Sorted())
				assert.True(t, slices.IsSorted(got.Data), "not sorted: %v", got.Data)
				assert.True(t, isPermutation(input, got.Data))
				assert.False(t, s.IsRunning())
				assert.Equal(t, fmt.Sprintf("sorted %d values", len(input)), s.Summary())
			})
		}
	}
}

func TestSortsEarlyStopLeavesPermutation(t *testing.T) {
	input := generator.NewSeeded(4).Array(20, settings.DataRandom)

	for _, method := range Methods {
		for _, k := range []int{1, 2, 7, 23, 60, 150} {
			var s *Sorter
			s = New(method, settings.Default(), generator.NewSeeded(9),
				runner.WithPacer(stopAfter(k, func() runner.Runner { return s })))
			s.Load(input)

			s.Run(context.Background())

			got := s.Frame()
			require.Len(t, got.Data, len(input), "%s k=%d", method, k)
			assert.True(t, isPermutation(input, got.Data), "%s k=%d lost elements: %v", method, k, got.Data)
			assert.False(t, s.IsRunning())
		}
	}
}

func TestStoppedSortPublishesNothingMore(t *testing.T) {
	var s *Sorter
	s = New(Bubble, settings.Default(), generator.NewSeeded(1),
		runner.WithPacer(stopAfter(5, func() runner.Runner { return s })))
	s.Load(generator.NewSeeded(3).Array(10, settings.DataReverse))

	s.Run(context.Background())
	stopped := s.Frame()
	stats := s.Stats()

	assert.False(t, stopped.Done)
	assert.False(t, s.Sorted())
	assert.Equal(t, "10 values ready", s.Summary())
	assert.Equal(t, stopped, s.Frame())
	assert.Equal(t, stats.Steps, s.Stats().Steps)
}

func TestBubbleCountsOnReversedInput(t *testing.T) {
	s := New(Bubble, settings.Default(), generator.NewSeeded(1), runner.WithPacer(runner.Instant()))
	s.Load([]int{5, 4, 3, 2, 1})

	s.Run(context.Background())

	stats := s.Stats()
	assert.Equal(t, 10, stats.Comparisons)
	assert.Equal(t, 10, stats.Swaps)
	assert.Equal(t, 10, stats.Steps)
}

func TestQuickSortPausesAfterEverySwap(t *testing.T) {
	var s *Sorter
	seen := map[int]bool{}
	pacer := runner.PacerFunc(func(tok *runner.Token, _ time.Duration) bool {
		seen[s.Stats().Swaps] = true
		return !tok.Stopped()
	})
	s = New(Quick, settings.Default(), generator.NewSeeded(1), runner.WithPacer(pacer))
	s.Load(generator.NewSeeded(6).Array(15, settings.DataRandom))

	s.Run(context.Background())

	swaps := s.Stats().Swaps
	require.Positive(t, swaps)
	for n := 1; n <= swaps; n++ {
		assert.True(t, seen[n], "no pause after swap %d", n)
	}
}

func TestSelectionSwapsOnlyWhenNeeded(t *testing.T) {
	s := New(Selection, settings.Default(), generator.NewSeeded(1), runner.WithPacer(runner.Instant()))
	s.Load([]int{1, 2, 3, 4})

	s.Run(context.Background())

	assert.Equal(t, 6, s.Stats().Comparisons)
	assert.Zero(t, s.Stats().Swaps)
}

func TestResetRegeneratesFromSettings(t *testing.T) {
	cfg := settings.Default()
	cfg.ArraySize = 7
	cfg.DataType = settings.DataSorted
	s := New(Quick, cfg, generator.NewSeeded(1), runner.WithPacer(runner.Instant()))

	assert.Equal(t, []int{14, 18, 22, 26, 30, 34, 38}, s.Frame().Data)

	s.Run(context.Background())
	require.False(t, s.Stats().IsZero())

	cfg.ArraySize = 5
	cfg.DataType = settings.DataReverse
	s.SetSettings(cfg)

	assert.Equal(t, []int{30, 26, 22, 18, 14}, s.Frame().Data)
	assert.True(t, s.Stats().IsZero())
	assert.False(t, s.Frame().Done)
	assert.Equal(t, cfg, s.Settings())
}

func TestRenderShowsMarkers(t *testing.T) {
	s := New(Bubble, settings.Default(), generator.NewSeeded(1))
	s.Load([]int{3, 1, 2})

	out := s.Render()
	assert.Contains(t, out, "3 1 2")
	assert.Equal(t, "3 values ready", s.Summary())
	assert.Equal(t, "bubble-sort", s.Kind())
}
