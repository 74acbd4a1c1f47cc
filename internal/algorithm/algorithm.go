// Package algorithm is the registry of every runner: the closed set of kinds,
// a factory per kind and the descriptive catalogue.
package algorithm

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kazumasamatsumoto/algo/internal/algorithm/dynamic"
	"github.com/kazumasamatsumoto/algo/internal/algorithm/graph"
	"github.com/kazumasamatsumoto/algo/internal/algorithm/greedy"
	"github.com/kazumasamatsumoto/algo/internal/algorithm/numerical"
	"github.com/kazumasamatsumoto/algo/internal/algorithm/search"
	"github.com/kazumasamatsumoto/algo/internal/algorithm/sorting"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// ErrUnknownAlgorithm is returned for a tag outside the registry
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Kind is an algorithm tag
type Kind string

const (
	BubbleSort          = Kind(sorting.Bubble)
	SelectionSort       = Kind(sorting.Selection)
	InsertionSort       = Kind(sorting.Insertion)
	MergeSort           = Kind(sorting.Merge)
	QuickSort           = Kind(sorting.Quick)
	HeapSort            = Kind(sorting.Heap)
	LinearSearch        = Kind(search.Linear)
	BinarySearch        = Kind(search.Binary)
	BFS                 = Kind(graph.BFS)
	DFS                 = Kind(graph.DFS)
	Dijkstra            = Kind(graph.Dijkstra)
	Kruskal             = Kind(graph.Kruskal)
	FloydWarshall       = Kind(graph.FloydWarshall)
	Fibonacci           = Kind(dynamic.Fib)
	Knapsack            = Kind(dynamic.Knapsack)
	LCS                 = Kind(dynamic.LCS)
	CoinChange          = Kind(greedy.CoinChange)
	EuclideanGCD        = Kind(numerical.GCD)
	SieveOfEratosthenes = Kind(numerical.Sieve)
)

// kinds is menu order
var kinds = []Kind{
	BubbleSort, SelectionSort, InsertionSort, MergeSort, QuickSort, HeapSort,
	LinearSearch, BinarySearch,
	BFS, DFS, Dijkstra, Kruskal, FloydWarshall,
	Fibonacci, Knapsack, LCS,
	CoinChange,
	EuclideanGCD, SieveOfEratosthenes,
}

// Kinds returns every registered kind in menu order
func Kinds() []Kind {
	return slices.Clone(kinds)
}

// Valid reports whether k is registered
func (k Kind) Valid() bool {
	_, ok := factories[k]
	return ok
}

// ParseKind validates a tag from user input
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
	return k, nil
}

type factory func(s settings.Settings, gen *generator.Generator, opts []runner.Option) runner.Runner

func sorter(m sorting.Method) factory {
	return func(s settings.Settings, gen *generator.Generator, opts []runner.Option) runner.Runner {
		return sorting.New(m, s, gen, opts...)
	}
}

func searcher(m search.Method) factory {
	return func(s settings.Settings, gen *generator.Generator, opts []runner.Option) runner.Runner {
		return search.New(m, s, gen, opts...)
	}
}

func traversal(kind string) factory {
	return func(s settings.Settings, gen *generator.Generator, opts []runner.Option) runner.Runner {
		return graph.NewTraversal(kind, s, gen, opts...)
	}
}

var factories = map[Kind]factory{
	BubbleSort:    sorter(sorting.Bubble),
	SelectionSort: sorter(sorting.Selection),
	InsertionSort: sorter(sorting.Insertion),
	MergeSort:     sorter(sorting.Merge),
	QuickSort:     sorter(sorting.Quick),
	HeapSort:      sorter(sorting.Heap),
	LinearSearch:  searcher(search.Linear),
	BinarySearch:  searcher(search.Binary),
	BFS:           traversal(graph.BFS),
	DFS:           traversal(graph.DFS),
	Dijkstra: func(s settings.Settings, gen *generator.Generator, opts []runner.Option) runner.Runner {
		return graph.NewShortestPath(s, gen, opts...)
	},
	Kruskal: func(s settings.Settings, gen *generator.Generator, opts []runner.Option) runner.Runner {
		return graph.NewSpanningTree(s, gen, opts...)
	},
	FloydWarshall: func(s settings.Settings, gen *generator.Generator, opts []runner.Option) runner.Runner {
		return graph.NewAllPairs(s, gen, opts...)
	},
	Fibonacci: func(s settings.Settings, _ *generator.Generator, opts []runner.Option) runner.Runner {
		return dynamic.NewFibonacci(s, opts...)
	},
	Knapsack: func(s settings.Settings, gen *generator.Generator, opts []runner.Option) runner.Runner {
		return dynamic.NewKnapsack(s, gen, opts...)
	},
	LCS: func(s settings.Settings, gen *generator.Generator, opts []runner.Option) runner.Runner {
		return dynamic.NewLCS(s, gen, opts...)
	},
	CoinChange: func(s settings.Settings, gen *generator.Generator, opts []runner.Option) runner.Runner {
		return greedy.New(s, gen, opts...)
	},
	EuclideanGCD: func(s settings.Settings, gen *generator.Generator, opts []runner.Option) runner.Runner {
		return numerical.NewGCD(s, gen, opts...)
	},
	SieveOfEratosthenes: func(s settings.Settings, _ *generator.Generator, opts []runner.Option) runner.Runner {
		return numerical.NewSieve(s, opts...)
	},
}

type config struct {
	gen  *generator.Generator
	opts []runner.Option
}

// Option configures New
type Option func(*config)

// WithGenerator supplies the random source, for reproducible data
func WithGenerator(gen *generator.Generator) Option {
	return func(c *config) { c.gen = gen }
}

// WithRunnerOptions passes lifecycle options (observer, pacer, clock) through
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(c *config) { c.opts = append(c.opts, opts...) }
}

// New creates a runner of kind, already reset from s
func New(kind Kind, s settings.Settings, opts ...Option) (runner.Runner, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(kind))
	}
	c := config{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.gen == nil {
		c.gen = generator.New()
	}
	return f(settings.Clamp(s), c.gen, c.opts), nil
}
