// Package graph animates traversals, shortest paths and spanning trees over
// the 6 node sample graphs.
package graph

import (
	"fmt"
	"strings"

	"github.com/kazumasamatsumoto/algo/internal/generator"
	"github.com/kazumasamatsumoto/algo/internal/runner"
	"github.com/kazumasamatsumoto/algo/internal/settings"
)

const (
	BFS           = "bfs"
	DFS           = "dfs"
	Dijkstra      = "dijkstra"
	Kruskal       = "kruskal"
	FloydWarshall = "floyd-warshall"
)

// Start is the node every traversal and shortest path search begins from
const Start = 0

// Unreachable marks a distance that is not known (or does not exist)
const Unreachable = -1

// base holds what every graph runner shares: the lifecycle, a generator
// and the guarded graph.
type base struct {
	*runner.Lifecycle
	gen   *generator.Generator
	guard runner.Guard
}

func newBase(kind string, s settings.Settings, gen *generator.Generator, opts []runner.Option) base {
	return base{
		Lifecycle: runner.NewLifecycle(kind, s, opts...),
		gen:       gen,
	}
}

// generate draws a graph of the configured topology
func (b *base) generate() generator.Graph {
	return b.gen.Graph(b.Settings().GraphType)
}

// nodeLine renders every node with a one character state prefix
func nodeLine(n int, state func(id int) rune) string {
	parts := make([]string, n)
	for id := 0; id < n; id++ {
		parts[id] = fmt.Sprintf("[%c%d]", state(id), id)
	}
	return "nodes  " + strings.Join(parts, " ")
}

// edgeLines renders each edge as "a-b (w)" followed by its mark
func edgeLines(edges []generator.Edge, mark func(i int, e generator.Edge) string) []string {
	lines := make([]string, 0, len(edges))
	for i, e := range edges {
		line := fmt.Sprintf("  %d-%d (%d)", e.From, e.To, e.Weight)
		if m := mark(i, e); m != "" {
			line += "  " + m
		}
		lines = append(lines, line)
	}
	return lines
}

func distanceLine(label string, dist []int) string {
	parts := make([]string, len(dist))
	for i, d := range dist {
		if d == Unreachable {
			parts[i] = fmt.Sprintf("%d:∞", i)
		} else {
			parts[i] = fmt.Sprintf("%d:%d", i, d)
		}
	}
	return label + "  " + strings.Join(parts, " ")
}

func pathString(nodes []int) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, " -> ")
}

func filled(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}
