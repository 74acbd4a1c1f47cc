package generator

import (
	"slices"

	"github.com/kazumasamatsumoto/algo/internal/settings"
)

// Node is a positioned vertex
type Node struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
}

// Edge is an undirected weighted connection
type Edge struct {
	From   int `json:"from"`
	To     int `json:"to"`
	Weight int `json:"weight"`
}

// Other returns the endpoint of e that is not id
func (e Edge) Other(id int) int {
	if e.From == id {
		return e.To
	}
	return e.From
}

// Graph is an undirected weighted graph over Nodes
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep copy
func (g Graph) Clone() Graph {
	return Graph{Nodes: slices.Clone(g.Nodes), Edges: slices.Clone(g.Edges)}
}

// Neighbors returns the nodes adjacent to id in ascending order
func (g Graph) Neighbors(id int) []int {
	var out []int
	for _, e := range g.Edges {
		if e.From == id {
			out = append(out, e.To)
		} else if e.To == id {
			out = append(out, e.From)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Incident returns the edges touching id, ordered by the other endpoint
func (g Graph) Incident(id int) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.From == id || e.To == id {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Edge) int {
		return a.Other(id) - b.Other(id)
	})
	return out
}

// TotalWeight sums the weights of edges
func TotalWeight(edges []Edge) int {
	total := 0
	for _, e := range edges {
		total += e.Weight
	}
	return total
}

var layout = []Node{
	{ID: 0, X: 100, Y: 100},
	{ID: 1, X: 200, Y: 50},
	{ID: 2, X: 300, Y: 100},
	{ID: 3, X: 150, Y: 200},
	{ID: 4, X: 250, Y: 200},
	{ID: 5, X: 350, Y: 150},
}

// SparseGraph is the fixed 6 node, 7 edge sample topology
func SparseGraph() Graph {
	return Graph{
		Nodes: slices.Clone(layout),
		Edges: []Edge{
			{From: 0, To: 1, Weight: 4},
			{From: 0, To: 3, Weight: 2},
			{From: 1, To: 2, Weight: 3},
			{From: 1, To: 4, Weight: 5},
			{From: 2, To: 5, Weight: 1},
			{From: 3, To: 4, Weight: 3},
			{From: 4, To: 5, Weight: 2},
		},
	}
}

// TreeGraph is the fixed spanning tree topology
func TreeGraph() Graph {
	return Graph{
		Nodes: slices.Clone(layout),
		Edges: []Edge{
			{From: 0, To: 1, Weight: 4},
			{From: 0, To: 3, Weight: 2},
			{From: 1, To: 2, Weight: 3},
			{From: 3, To: 4, Weight: 3},
			{From: 2, To: 5, Weight: 1},
		},
	}
}

// Graph builds a graph of the given topology. Complete and chain graphs get
// random weights in [1, 10].
func (g *Generator) Graph(topology settings.GraphType) Graph {
	switch topology {
	case settings.GraphComplete:
		out := Graph{Nodes: slices.Clone(layout)}
		for i := range layout {
			for j := i + 1; j < len(layout); j++ {
				out.Edges = append(out.Edges, Edge{From: i, To: j, Weight: g.intN(10) + 1})
			}
		}
		return out
	case settings.GraphChain:
		out := Graph{Nodes: slices.Clone(layout)}
		for i := 0; i < len(layout)-1; i++ {
			out.Edges = append(out.Edges, Edge{From: i, To: i + 1, Weight: g.intN(10) + 1})
		}
		return out
	case settings.GraphTree:
		return TreeGraph()
	default:
		return SparseGraph()
	}
}
