package graph

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/kazumasamatsumoto/algo/internal/algorithm/frame"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// EdgeState is the verdict on one candidate edge
type EdgeState int

const (
	EdgePending EdgeState = iota
	EdgeAccepted
	EdgeRejected
)

// SpanningTreeFrame is the visible state of Kruskal's algorithm. Edges are in
// the order they are considered.
type SpanningTreeFrame struct {
	Graph    generator.Graph  `json:"graph"`
	Edges    []generator.Edge `json:"edges"`
	States   []EdgeState      `json:"states"`
	Current  int              `json:"current"`
	Total    int              `json:"total"`
	Complete bool             `json:"complete"`
}

func (f SpanningTreeFrame) clone() SpanningTreeFrame {
	f.Graph = f.Graph.Clone()
	f.Edges = slices.Clone(f.Edges)
	f.States = slices.Clone(f.States)
	return f
}

// Tree returns the accepted edges
func (f SpanningTreeFrame) Tree() []generator.Edge {
	var out []generator.Edge
	for i, st := range f.States {
		if st == EdgeAccepted {
			out = append(out, f.Edges[i])
		}
	}
	return out
}

// SpanningTree runs Kruskal's algorithm with a union-find forest
type SpanningTree struct {
	base
	view SpanningTreeFrame
}

// NewSpanningTree creates a Kruskal runner
func NewSpanningTree(s settings.Settings, gen *generator.Generator, opts ...runner.Option) *SpanningTree {
	r := &SpanningTree{base: newBase(Kruskal, s, gen, opts)}
	r.Reset()
	return r
}

// Reset stops any run and draws a new graph
func (r *SpanningTree) Reset() {
	r.Stop()
	r.Load(r.generate())
}

// Load replaces the graph and sorts its edges by weight
func (r *SpanningTree) Load(g generator.Graph) {
	r.Stop()
	edges := slices.Clone(g.Edges)
	slices.SortStableFunc(edges, func(a, b generator.Edge) int {
		return cmp.Compare(a.Weight, b.Weight)
	})
	r.guard.Write(func() {
		r.view = SpanningTreeFrame{Graph: g.Clone(), Edges: edges}
		r.clearLocked()
	})
	r.ResetStats()
}

func (r *SpanningTree) clearLocked() {
	r.view.States = make([]EdgeState, len(r.view.Edges))
	r.view.Current = -1
	r.view.Total = 0
	r.view.Complete = false
}

// SetSettings stores s and draws a new graph
func (r *SpanningTree) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *SpanningTree) Frame() SpanningTreeFrame {
	var f SpanningTreeFrame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// forest is a union-find structure with path compression and union by rank
type forest struct {
	parent []int
	rank   []int
}

func newForest(n int) *forest {
	f := &forest{parent: make([]int, n), rank: make([]int, n)}
	for i := range f.parent {
		f.parent[i] = i
	}
	return f
}

func (f *forest) find(x int) int {
	if f.parent[x] != x {
		f.parent[x] = f.find(f.parent[x])
	}
	return f.parent[x]
}

func (f *forest) union(x, y int) {
	rx, ry := f.find(x), f.find(y)
	switch {
	case rx == ry:
	case f.rank[rx] < f.rank[ry]:
		f.parent[rx] = ry
	case f.rank[rx] > f.rank[ry]:
		f.parent[ry] = rx
	default:
		f.parent[ry] = rx
		f.rank[rx]++
	}
}

// Run considers edges lightest first until |V|-1 have been accepted
func (r *SpanningTree) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		if !r.guard.Commit(tok, r.clearLocked) {
			return
		}
		f := r.Frame()
		want := len(f.Graph.Nodes) - 1
		uf := newForest(len(f.Graph.Nodes))
		accepted, total := 0, 0

		for i, e := range f.Edges {
			if accepted >= want || tok.Stopped() {
				break
			}
			if !r.guard.Commit(tok, func() { r.view.Current = i }) {
				return
			}
			r.Step(tok)
			if !r.Pause(tok, 1) {
				return
			}

			joins := uf.find(e.From) != uf.find(e.To)
			r.Compare(tok)
			if !r.Pause(tok, 0.5) {
				return
			}

			if joins {
				uf.union(e.From, e.To)
				accepted++
				total += e.Weight
				sum := total
				if !r.guard.Commit(tok, func() {
					r.view.States[i] = EdgeAccepted
					r.view.Total = sum
				}) {
					return
				}
				if !r.Pause(tok, 1) {
					return
				}
			} else {
				if !r.guard.Commit(tok, func() { r.view.States[i] = EdgeRejected }) {
					return
				}
				if !r.Pause(tok, 0.3) {
					return
				}
			}
		}
		r.guard.Commit(tok, func() {
			r.view.Current = -1
			r.view.Complete = true
		})
	})
}

// Render lists the candidate edges with their verdicts
func (r *SpanningTree) Render() string {
	f := r.Frame()
	lines := []string{fmt.Sprintf("tree weight %d, %d/%d edges", f.Total, len(f.Tree()), len(f.Graph.Nodes)-1)}
	lines = append(lines, edgeLines(f.Edges, func(i int, _ generator.Edge) string {
		mark := ""
		switch f.States[i] {
		case EdgeAccepted:
			mark = "tree"
		case EdgeRejected:
			mark = "cycle"
		}
		if i == f.Current {
			mark = "<- " + mark
		}
		return mark
	})...)
	return frame.Join(lines...)
}

// Summary reports the tree weight
func (r *SpanningTree) Summary() string {
	f := r.Frame()
	if !f.Complete {
		return fmt.Sprintf("%d candidate edges", len(f.Edges))
	}
	return fmt.Sprintf("spanning tree of %d edges, weight %d", len(f.Tree()), f.Total)
}
