package generator

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

func TestArrayShapes(t *testing.T) {
	g := NewSeeded(1)

	tests := []struct {
		name string
		typ  settings.DataType
		want []int
	}{
		{"sorted", settings.DataSorted, []int{14, 18, 22, 26, 30}},
		{"reverse", settings.DataReverse, []int{30, 26, 22, 18, 14}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, g.Array(5, tt.typ)); diff != "" {
				t.Errorf("Array mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRandomArrayRange(t *testing.T) {
	g := NewSeeded(7)
	for _, v := range g.Array(50, settings.DataRandom) {
		if v < 10 || v > 89 {
			t.Fatalf("value %d out of range", v)
		}
	}

	nearly := g.Array(50, settings.DataNearlySorted)
	if len(nearly) != 50 {
		t.Fatalf("Expected 50 values, got %d", len(nearly))
	}
	for i, v := range nearly {
		base := (i+1)*4 + 10
		if v < base-10 || v > base+9 {
			t.Errorf("value %d at %d too far from %d", v, i, base)
		}
	}
}

func TestSeededGeneratorsAgree(t *testing.T) {
	a := NewSeeded(42).Array(20, settings.DataRandom)
	b := NewSeeded(42).Array(20, settings.DataRandom)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different arrays:\n%s", diff)
	}
}

func TestGraphTopologies(t *testing.T) {
	g := NewSeeded(3)

	tests := []struct {
		typ   settings.GraphType
		edges int
	}{
		{settings.GraphComplete, 15},
		{settings.GraphSparse, 7},
		{settings.GraphChain, 5},
		{settings.GraphTree, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			graph := g.Graph(tt.typ)
			if len(graph.Nodes) != 6 {
				t.Errorf("Expected 6 nodes, got %d", len(graph.Nodes))
			}
			if len(graph.Edges) != tt.edges {
				t.Errorf("Expected %d edges, got %d", tt.edges, len(graph.Edges))
			}
			for _, e := range graph.Edges {
				if e.Weight < 1 || e.Weight > 10 {
					t.Errorf("edge %v weight out of range", e)
				}
			}
		})
	}
}

func TestSparseNeighbors(t *testing.T) {
	graph := SparseGraph()

	want := map[int][]int{
		0: {1, 3},
		1: {0, 2, 4},
		4: {1, 3, 5},
		5: {2, 4},
	}
	for id, expected := range want {
		if diff := cmp.Diff(expected, graph.Neighbors(id)); diff != "" {
			t.Errorf("Neighbors(%d) mismatch (-want +got):\n%s", id, diff)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	graph := SparseGraph()
	clone := graph.Clone()
	clone.Edges[0].Weight = 99

	if graph.Edges[0].Weight == 99 {
		t.Error("Clone shares edge storage")
	}
}

func TestKnapsackItems(t *testing.T) {
	g := NewSeeded(11)

	for _, size := range []int{5, 12, 15, 50} {
		items := g.KnapsackItems(size)
		want := min(6, max(4, size/3))
		if len(items) != want {
			t.Errorf("size %d: Expected %d items, got %d", size, want, len(items))
		}
		densities := make([]float64, len(items))
		for i, it := range items {
			if it.Weight < 1 || it.Weight > 4 || it.Value < 2 || it.Value > 9 {
				t.Errorf("item %+v out of range", it)
			}
			densities[i] = -it.Density()
		}
		if !slices.IsSorted(densities) {
			t.Errorf("items not ordered by density: %+v", items)
		}
	}

	if got := KnapsackCapacity(3); got != 8 {
		t.Errorf("Expected capacity 8, got %d", got)
	}
	if got := KnapsackCapacity(40); got != 15 {
		t.Errorf("Expected capacity 15, got %d", got)
	}
}

func TestLCSPairTruncation(t *testing.T) {
	g := NewSeeded(5)
	for i := 0; i < 20; i++ {
		a, b := g.LCSPair(6)
		if len(a) > 4 || len(b) > 4 {
			t.Fatalf("Expected words of at most 4 letters, got %q %q", a, b)
		}
	}
}

func TestNumberRanges(t *testing.T) {
	g := NewSeeded(9)
	for i := 0; i < 100; i++ {
		if amt := g.CoinAmount(); amt < 15 || amt > 109 {
			t.Fatalf("coin amount %d out of range", amt)
		}
		a, b := g.GCDPair(20)
		if a < b || b < 25 || a >= 100 {
			t.Fatalf("gcd pair (%d, %d) out of range", a, b)
		}
	}

	if got := SieveLimit(5); got != 20 {
		t.Errorf("Expected sieve limit 20, got %d", got)
	}
	if got := SieveLimit(50); got != 100 {
		t.Errorf("Expected sieve limit 100, got %d", got)
	}
	if got := FibonacciN(50); got != 20 {
		t.Errorf("Expected n=20, got %d", got)
	}
}
