package compare

import (
	"context"
	"math"
	"testing"

	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sorts = []algorithm.Kind{
	algorithm.BubbleSort, algorithm.SelectionSort, algorithm.InsertionSort,
	algorithm.MergeSort, algorithm.QuickSort, algorithm.HeapSort,
}

func directSteps(t *testing.T, kind algorithm.Kind, s settings.Settings, seed uint64) int {
	t.Helper()
	r, err := algorithm.New(kind, s,
		algorithm.WithGenerator(generator.NewSeeded(seed)),
		algorithm.WithRunnerOptions(runner.WithPacer(runner.Instant())))
	require.NoError(t, err)
	r.Run(context.Background())
	return r.Stats().Steps
}

func TestRunMatchesIndividualRuns(t *testing.T) {
	s := settings.Default()
	results, err := New(s, WithSeed(11)).Run(context.Background(), sorts)
	require.NoError(t, err)
	require.Len(t, results, len(sorts))

	for i, res := range results {
		assert.Equal(t, i+1, res.Rank)
		assert.NotEmpty(t, res.Name)
		assert.Equal(t, directSteps(t, algorithm.Kind(res.Algorithm), s, 11), res.Steps, res.Algorithm)
		if i > 0 {
			assert.GreaterOrEqual(t, res.Steps, results[i-1].Steps)
		}
	}
}

func TestRunIsDeterministicForASeed(t *testing.T) {
	kinds := []algorithm.Kind{algorithm.Dijkstra, algorithm.Kruskal, algorithm.BFS}
	first, err := New(settings.Default(), WithSeed(4)).Run(context.Background(), kinds)
	require.NoError(t, err)
	second, err := New(settings.Default(), WithSeed(4), WithConcurrency(1)).Run(context.Background(), kinds)
	require.NoError(t, err)

	// wall time, and so the order of ties, may differ between runs
	for i := range first {
		first[i].TimeMs, second[i].TimeMs = 0, 0
		first[i].Rank, second[i].Rank = 0, 0
	}
	assert.ElementsMatch(t, first, second)
}

func TestRoundsAverageOverSeeds(t *testing.T) {
	s := settings.Default()
	s.ArraySize = 12
	session := New(s, WithSeed(100), WithRounds(3))

	results, err := session.Run(context.Background(), []algorithm.Kind{algorithm.BubbleSort})
	require.NoError(t, err)
	require.Len(t, results, 1)

	total := 0
	for seed := uint64(100); seed < 103; seed++ {
		total += directSteps(t, algorithm.BubbleSort, s, seed)
	}
	assert.Equal(t, int(math.Round(float64(total)/3)), results[0].Steps)

	sum, ok := session.History().Summary(string(algorithm.BubbleSort))
	require.True(t, ok)
	assert.Equal(t, 3, sum.Runs)
	assert.Zero(t, sum.Stopped)
}

func TestRoundSeedsUseTheFullSeedRange(t *testing.T) {
	s := settings.Default()
	s.ArraySize = 10
	results, err := New(s, WithSeed(math.MaxUint64), WithRounds(2)).Run(context.Background(),
		[]algorithm.Kind{algorithm.InsertionSort})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// the second round wraps around to seed 0
	total := directSteps(t, algorithm.InsertionSort, s, math.MaxUint64) +
		directSteps(t, algorithm.InsertionSort, s, 0)
	assert.Equal(t, int(math.Round(float64(total)/2)), results[0].Steps)
}

func TestDuplicatesAreComparedOnce(t *testing.T) {
	results, err := New(settings.Default(), WithSeed(1)).Run(context.Background(),
		[]algorithm.Kind{algorithm.Fibonacci, algorithm.Fibonacci, algorithm.EuclideanGCD})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRunErrors(t *testing.T) {
	session := New(settings.Default(), WithSeed(1))

	_, err := session.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoAlgorithms)

	_, err = session.Run(context.Background(), []algorithm.Kind{algorithm.HeapSort, "a-star"})
	assert.ErrorIs(t, err, algorithm.ErrUnknownAlgorithm)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = session.Run(ctx, sorts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRank(t *testing.T) {
	results := []Result{
		{Algorithm: "quick-sort", Steps: 40, TimeMs: 3},
		{Algorithm: "merge-sort", Steps: 40, TimeMs: 1},
		{Algorithm: "heap-sort", Steps: 40, TimeMs: 1},
		{Algorithm: "bubble-sort", Steps: 120, TimeMs: 1},
		{Algorithm: "insertion-sort", Steps: 10, TimeMs: 9},
	}

	Rank(results)

	var order []string
	for i, r := range results {
		assert.Equal(t, i+1, r.Rank)
		order = append(order, r.Algorithm)
	}
	assert.Equal(t, []string{"insertion-sort", "heap-sort", "merge-sort", "quick-sort", "bubble-sort"}, order)
}
