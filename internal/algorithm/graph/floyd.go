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

// Route is one reconstructed all-pairs shortest path
type Route struct {
	From     int   `json:"from"`
	To       int   `json:"to"`
	Distance int   `json:"distance"`
	Nodes    []int `json:"nodes"`
}

// AllPairsFrame is the visible state of Floyd-Warshall. Distance holds
// Unreachable for unknown pairs; Next holds the first hop or -1.
type AllPairsFrame struct {
	Graph    generator.Graph `json:"graph"`
	Distance [][]int         `json:"distance"`
	Next     [][]int         `json:"next"`
	K        int             `json:"k"`
	I        int             `json:"i"`
	J        int             `json:"j"`
	Routes   []Route         `json:"routes,omitempty"`
	Complete bool            `json:"complete"`
}

func cloneMatrix(m [][]int) [][]int {
	out := make([][]int, len(m))
	for i, row := range m {
		out[i] = slices.Clone(row)
	}
	return out
}

func (f AllPairsFrame) clone() AllPairsFrame {
	f.Graph = f.Graph.Clone()
	f.Distance = cloneMatrix(f.Distance)
	f.Next = cloneMatrix(f.Next)
	routes := make([]Route, len(f.Routes))
	for i, rt := range f.Routes {
		rt.Nodes = slices.Clone(rt.Nodes)
		routes[i] = rt
	}
	if f.Routes == nil {
		routes = nil
	}
	f.Routes = routes
	return f
}

// AllPairs runs Floyd-Warshall. Each improved cell counts as a swap.
type AllPairs struct {
	base
	view AllPairsFrame
}

// NewAllPairs creates a Floyd-Warshall runner
func NewAllPairs(s settings.Settings, gen *generator.Generator, opts ...runner.Option) *AllPairs {
	r := &AllPairs{base: newBase(FloydWarshall, s, gen, opts)}
	r.Reset()
	return r
}

// Reset stops any run and draws a new graph
func (r *AllPairs) Reset() {
	r.Stop()
	r.Load(r.generate())
}

// Load replaces the graph and seeds the matrices from its edges
func (r *AllPairs) Load(g generator.Graph) {
	r.Stop()
	r.guard.Write(func() {
		r.view = AllPairsFrame{Graph: g.Clone()}
		r.clearLocked()
	})
	r.ResetStats()
}

func (r *AllPairs) clearLocked() {
	n := len(r.view.Graph.Nodes)
	dist := make([][]int, n)
	next := make([][]int, n)
	for i := range dist {
		dist[i] = filled(n, Unreachable)
		next[i] = filled(n, -1)
		dist[i][i] = 0
	}
	for _, e := range r.view.Graph.Edges {
		dist[e.From][e.To], dist[e.To][e.From] = e.Weight, e.Weight
		next[e.From][e.To], next[e.To][e.From] = e.To, e.From
	}
	r.view.Distance = dist
	r.view.Next = next
	r.view.K, r.view.I, r.view.J = -1, -1, -1
	r.view.Routes = nil
	r.view.Complete = false
}

// SetSettings stores s and draws a new graph
func (r *AllPairs) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *AllPairs) Frame() AllPairsFrame {
	var f AllPairsFrame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// Run relaxes every (i, j) through every intermediate k, then lists routes
func (r *AllPairs) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		if !r.guard.Commit(tok, r.clearLocked) {
			return
		}
		f := r.Frame()
		dist, next := f.Distance, f.Next
		n := len(dist)

		for k := 0; k < n; k++ {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					if tok.Stopped() {
						return
					}
					if !r.guard.Commit(tok, func() { r.view.K, r.view.I, r.view.J = k, i, j }) {
						return
					}
					r.Step(tok)
					if !r.Pause(tok, 1) {
						return
					}

					if dist[i][k] != Unreachable && dist[k][j] != Unreachable {
						r.Compare(tok)
						via := dist[i][k] + dist[k][j]
						if dist[i][j] == Unreachable || via < dist[i][j] {
							dist[i][j] = via
							next[i][j] = next[i][k]
							if !r.guard.Commit(tok, func() {
								r.view.Distance[i][j] = via
								r.view.Next[i][j] = next[i][k]
							}) {
								return
							}
							r.Swap(tok)
						}
					}
					if !r.Pause(tok, 0.2) {
						return
					}
				}
			}
		}

		routes := collectRoutes(dist, next)
		r.guard.Commit(tok, func() {
			r.view.K, r.view.I, r.view.J = -1, -1, -1
			r.view.Routes = routes
			r.view.Complete = true
		})
	})
}

// collectRoutes lists every reachable pair i < j, shortest first
func collectRoutes(dist, next [][]int) []Route {
	var routes []Route
	for i := range dist {
		for j := i + 1; j < len(dist); j++ {
			if dist[i][j] == Unreachable {
				continue
			}
			routes = append(routes, Route{From: i, To: j, Distance: dist[i][j], Nodes: walk(next, i, j)})
		}
	}
	slices.SortStableFunc(routes, func(a, b Route) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return routes
}

func walk(next [][]int, from, to int) []int {
	if next[from][to] == -1 {
		return nil
	}
	path := []int{from}
	for at := from; at != to; {
		at = next[at][to]
		path = append(path, at)
		if len(path) > len(next) {
			return nil
		}
	}
	return path
}

// Render draws the distance matrix with the cell under consideration starred
func (r *AllPairs) Render() string {
	f := r.Frame()
	heads := make([]string, len(f.Distance))
	for i := range heads {
		heads[i] = fmt.Sprint(i)
	}
	lines := []string{}
	if f.K >= 0 {
		lines = append(lines, fmt.Sprintf("via k=%d", f.K))
	}
	lines = append(lines, frame.Table(heads, heads, f.Distance, Unreachable, func(i, j int) bool {
		return i == f.I && j == f.J
	})...)
	for i, rt := range f.Routes {
		if i == 5 {
			lines = append(lines, fmt.Sprintf("  ... %d more", len(f.Routes)-i))
			break
		}
		lines = append(lines, fmt.Sprintf("  %d -> %d: %d via %s", rt.From, rt.To, rt.Distance, pathString(rt.Nodes)))
	}
	return frame.Join(lines...)
}

// Summary reports how many pairs are connected
func (r *AllPairs) Summary() string {
	f := r.Frame()
	if !f.Complete {
		return fmt.Sprintf("all pairs over %d nodes", len(f.Distance))
	}
	return fmt.Sprintf("%d shortest routes", len(f.Routes))
}
