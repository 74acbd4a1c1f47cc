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

// TraversalFrame is the visible state of BFS or DFS. Distance is only filled
// in by BFS (hop counts from Start).
type TraversalFrame struct {
	Graph    generator.Graph `json:"graph"`
	Current  int             `json:"current"`
	Visited  []bool          `json:"visited"`
	Frontier []int           `json:"frontier"`
	Order    []int           `json:"order"`
	Distance []int           `json:"distance,omitempty"`
	Complete bool            `json:"complete"`
}

func (f TraversalFrame) clone() TraversalFrame {
	f.Graph = f.Graph.Clone()
	f.Visited = slices.Clone(f.Visited)
	f.Frontier = slices.Clone(f.Frontier)
	f.Order = slices.Clone(f.Order)
	f.Distance = slices.Clone(f.Distance)
	return f
}

// Traversal runs breadth or depth first search from Start
type Traversal struct {
	base
	view TraversalFrame
}

// NewTraversal creates a BFS (kind == BFS) or DFS runner
func NewTraversal(kind string, s settings.Settings, gen *generator.Generator, opts ...runner.Option) *Traversal {
	r := &Traversal{base: newBase(kind, s, gen, opts)}
	r.Reset()
	return r
}

// Reset stops any run and draws a new graph
func (r *Traversal) Reset() {
	r.Stop()
	r.Load(r.generate())
}

// Load replaces the graph and clears the traversal state
func (r *Traversal) Load(g generator.Graph) {
	r.Stop()
	r.guard.Write(func() {
		r.view = TraversalFrame{Graph: g.Clone(), Current: -1}
		r.clearLocked()
	})
	r.ResetStats()
}

func (r *Traversal) clearLocked() {
	n := len(r.view.Graph.Nodes)
	r.view.Current = -1
	r.view.Visited = make([]bool, n)
	r.view.Frontier = nil
	r.view.Order = nil
	r.view.Distance = nil
	r.view.Complete = false
	if r.Kind() == BFS {
		r.view.Distance = filled(n, Unreachable)
	}
}

// SetSettings stores s and draws a new graph
func (r *Traversal) SetSettings(s settings.Settings) {
	r.StoreSettings(s)
	r.Reset()
}

// Frame returns a copy of the visible state
func (r *Traversal) Frame() TraversalFrame {
	var f TraversalFrame
	r.guard.Read(func() { f = r.view.clone() })
	return f
}

// Run traverses from Start
func (r *Traversal) Run(ctx context.Context) bool {
	return r.Execute(ctx, func(tok *runner.Token) {
		if !r.guard.Commit(tok, r.clearLocked) {
			return
		}
		g := r.Frame().Graph
		if r.Kind() == BFS {
			r.bfs(tok, g)
		} else {
			r.dfs(tok, g)
		}
	})
}

func (r *Traversal) bfs(tok *runner.Token, g generator.Graph) {
	n := len(g.Nodes)
	visited := make([]bool, n)
	dist := filled(n, Unreachable)
	queue := []int{Start}
	visited[Start] = true
	dist[Start] = 0

	for len(queue) > 0 {
		if tok.Stopped() {
			return
		}
		node := queue[0]
		queue = queue[1:]
		if !r.guard.Commit(tok, func() {
			r.view.Current = node
			r.view.Order = append(r.view.Order, node)
			r.view.Frontier = slices.Clone(queue)
			r.view.Visited[node] = true
			r.view.Distance[node] = dist[node]
		}) {
			return
		}
		r.Step(tok)
		if !r.Pause(tok, 1) {
			return
		}

		for _, next := range g.Neighbors(node) {
			if tok.Stopped() {
				return
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			dist[next] = dist[node] + 1
			queue = append(queue, next)
			if !r.guard.Commit(tok, func() {
				r.view.Frontier = slices.Clone(queue)
				r.view.Distance[next] = dist[next]
			}) {
				return
			}
			r.Compare(tok)
			if !r.Pause(tok, 0.5) {
				return
			}
		}
	}
	r.guard.Commit(tok, func() {
		r.view.Current = -1
		r.view.Complete = true
	})
}

func (r *Traversal) dfs(tok *runner.Token, g generator.Graph) {
	visited := make([]bool, len(g.Nodes))
	stack := []int{Start}

	for len(stack) > 0 {
		if tok.Stopped() {
			return
		}
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[node] {
			continue
		}
		visited[node] = true
		if !r.guard.Commit(tok, func() {
			r.view.Current = node
			r.view.Order = append(r.view.Order, node)
			r.view.Frontier = slices.Clone(stack)
			r.view.Visited[node] = true
		}) {
			return
		}
		r.Step(tok)
		if !r.Pause(tok, 1) {
			return
		}

		// pushed in reverse so the smallest neighbour is popped first
		neighbors := g.Neighbors(node)
		slices.Reverse(neighbors)
		for _, next := range neighbors {
			if tok.Stopped() {
				return
			}
			if visited[next] {
				continue
			}
			stack = append(stack, next)
			if !r.guard.Commit(tok, func() { r.view.Frontier = slices.Clone(stack) }) {
				return
			}
			r.Compare(tok)
			if !r.Pause(tok, 0.5) {
				return
			}
		}
	}
	r.guard.Commit(tok, func() {
		r.view.Current = -1
		r.view.Complete = true
	})
}

// Render lists node states, the frontier, the visit order and the edges
func (r *Traversal) Render() string {
	f := r.Frame()
	lines := []string{nodeLine(len(f.Graph.Nodes), func(id int) rune {
		switch {
		case id == f.Current:
			return '>'
		case f.Visited[id]:
			return '*'
		case slices.Contains(f.Frontier, id):
			return '+'
		default:
			return ' '
		}
	})}
	label := "stack"
	if r.Kind() == BFS {
		label = "queue"
	}
	lines = append(lines, fmt.Sprintf("%s  %v", label, f.Frontier))
	if len(f.Order) > 0 {
		lines = append(lines, "order  "+pathString(f.Order))
	}
	if f.Distance != nil {
		lines = append(lines, distanceLine("hops ", f.Distance))
	}
	lines = append(lines, edgeLines(f.Graph.Edges, func(int, generator.Edge) string { return "" })...)
	return frame.Join(lines...)
}

// Summary reports the visit order
func (r *Traversal) Summary() string {
	f := r.Frame()
	if len(f.Order) == 0 {
		return fmt.Sprintf("%d nodes, start at %d", len(f.Graph.Nodes), Start)
	}
	prefix := "visiting"
	if f.Complete {
		prefix = "visited"
	}
	return fmt.Sprintf("%s %s", prefix, pathString(f.Order))
}
