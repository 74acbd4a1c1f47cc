package graph

import (
	"context"
	"fmt"
	"slices"

	"github.com/kazumasamatsumoto/algo/internal/algorithm/frame"
	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// Target is the node whose shortest path Dijkstra reconstructs
const Target = 4

// ShortestPathFrame is the visible state of Dijkstra's algorithm
type ShortestPathFrame struct {
	Graph    generator.Graph `json:"graph"`
	Current  int             `json:"current"`
	Settled  []bool          `json:"settled"`
	Distance []int           `json:"distance"`
	Previous []int           `json:"previous"`
	Relaxing int             `json:"relaxing"`
	Path     []int           `json:"path,omitempty"`
	Complete bool            `json:"complete"`
}

func (f ShortestPathFrame) clone() ShortestPathFrame {
	f.Graph = f.Graph.Clone()
	f.Settled = slices.Clone(f.Settled)
	f.Distance = slices.Clone(f.Distance)
	f.Previous = slices.Clone(f.Previous)
	f.Path = slices.Clone(f.Path)
	return f
}

// ShortestPath runs Dijkstra from Start over every node, then traces the path
// to Target. Each improved distance counts as a swap.
type ShortestPath struct {
	base
	view ShortestPathFrame
}

// NewShortestPath creates a Dijkstra runner
func NewShortestPath(s settings.Settings, gen *generator.Generator, opts ...runner.Option) *ShortestPath {
	r := &ShortestPath{base: newBase(Dijkstra, s, gen, opts)}
	r.Reset()
	return r
}

// Reset stops any run and draws a new graph
func (r *ShortestPath) Reset() {
	r.Stop()
	r.Load(r.generate())
}

// Load replaces the graph and clears all distances
func (r *ShortestPath) Load(g generator.Graph) {
	r.Stop()
	r.guard.Write(func() {
		r.view = ShortestPathFrame{Graph: g.Clone()}
		r.clearLocked()
	})
	r.ResetStats()
}

func (r *ShortestPath) clearLocked() {
	n := len(r.view.Graph.Nodes)
	r.view.Current = -1
	r.view.Relaxing = -1
	r.view.Settled = make([]bool, n)
	r.view.Distance = filled(n, Unreachable)
	r.view.Previous = filled(n, -1)
	r.view.Path = nil
	r.view.Complete = false
}

// SetSettings stores s and draws a new graph
func (r *ShortestPath) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *ShortestPath) Frame() ShortestPathFrame {
	var f ShortestPathFrame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// Distances returns the distance from Start to every node
func (r *ShortestPath) Distances() []int {
	return r.Frame().Distance
}

// Run computes every distance from Start and traces the path to Target
func (r *ShortestPath) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		if !r.guard.Commit(tok, r.clearLocked) {
			return
		}
		g := r.Frame().Graph
		if !r.settle(tok, g) {
			return
		}
		r.trace(tok)
	})
}

func (r *ShortestPath) settle(tok *runner.Token, g generator.Graph) bool {
	n := len(g.Nodes)
	dist := filled(n, Unreachable)
	settled := make([]bool, n)
	dist[Start] = 0
	r.guard.Commit(tok, func() { r.view.Distance[Start] = 0 })

	for {
		if tok.Stopped() {
			return false
		}
		node := -1
		for id := 0; id < n; id++ {
			if settled[id] || dist[id] == Unreachable {
				continue
			}
			if node == -1 || dist[id] < dist[node] {
				node = id
			}
		}
		if node == -1 {
			break
		}
		settled[node] = true
		if !r.guard.Commit(tok, func() {
			r.view.Current = node
			r.view.Relaxing = -1
			r.view.Settled[node] = true
		}) {
			return false
		}
		r.Step(tok)
		if !r.Pause(tok, 1) {
			return false
		}

		for _, e := range g.Incident(node) {
			if tok.Stopped() {
				return false
			}
			next := e.Other(node)
			if settled[next] {
				continue
			}
			if !r.guard.Commit(tok, func() { r.view.Relaxing = next }) {
				return false
			}
			r.Compare(tok)
			if !r.Pause(tok, 1) {
				return false
			}
			candidate := dist[node] + e.Weight
			if dist[next] != Unreachable && candidate >= dist[next] {
				continue
			}
			dist[next] = candidate
			if !r.guard.Commit(tok, func() {
				r.view.Distance[next] = candidate
				r.view.Previous[next] = node
			}) {
				return false
			}
			r.Swap(tok)
			if !r.Pause(tok, 1) {
				return false
			}
		}
	}
	return r.guard.Commit(tok, func() {
		r.view.Current = -1
		r.view.Relaxing = -1
	})
}

// trace walks Previous back from Target, revealing one node per step
func (r *ShortestPath) trace(tok *runner.Token) {
	f := r.Frame()
	var path []int
	if f.Distance[Target] != Unreachable {
		for at := Target; at != -1; at = f.Previous[at] {
			path = append([]int{at}, path...)
		}
	}

	for i := len(path) - 1; i >= 0; i-- {
		if tok.Stopped() {
			return
		}
		shown := slices.Clone(path[i:])
		if !r.guard.Commit(tok, func() { r.view.Path = shown }) {
			return
		}
		r.Step(tok)
		if !r.Pause(tok, 0.5) {
			return
		}
	}
	r.guard.Commit(tok, func() { r.view.Complete = true })
}

// Render lists settled nodes, distances, the traced path and the edges
func (r *ShortestPath) Render() string {
	f := r.Frame()
	lines := []string{
		nodeLine(len(f.Graph.Nodes), func(id int) rune {
			switch {
			case id == f.Current:
				return '>'
			case id == f.Relaxing:
				return '?'
			case f.Settled[id]:
				return '*'
			default:
				return ' '
			}
		}),
		distanceLine("dist ", f.Distance),
	}
	if len(f.Path) > 0 {
		lines = append(lines, "path   "+pathString(f.Path))
	}
	onPath := func(e generator.Edge) bool {
		for i := 1; i < len(f.Path); i++ {
			a, b := f.Path[i-1], f.Path[i]
			if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
				return true
			}
		}
		return false
	}
	lines = append(lines, edgeLines(f.Graph.Edges, func(_ int, e generator.Edge) string {
		if onPath(e) {
			return "path"
		}
		return ""
	})...)
	return frame.Join(lines...)
}

// Summary reports the path to Target
func (r *ShortestPath) Summary() string {
	f := r.Frame()
	if !f.Complete {
		return fmt.Sprintf("shortest path %d -> %d", Start, Target)
	}
	if f.Distance[Target] == Unreachable {
		return fmt.Sprintf("%d is unreachable from %d", Target, Start)
	}
	return fmt.Sprintf("shortest path %s (distance %d)", pathString(f.Path), f.Distance[Target])
}
