package pather

import (
	"fmt"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// tableGraph is a directed graph given as an adjacency table with a table of
// heuristic values towards a fixed goal. Missing heuristic entries are 0.
type tableGraph struct {
	adj   map[string][]StateCost[string]
	h     map[string]float64
	calls int
}

func (g *tableGraph) LeastCostEstimate(from, to string) float64 {
	if from == to {
		return 0
	}
	return g.h[from]
}

func (g *tableGraph) AdjacentCost(state string, adjacent []StateCost[string]) []StateCost[string] {
	g.calls++
	return append(adjacent, g.adj[state]...)
}

// cell is a grid coordinate used by gridGraph.
type cell struct{ x, y int }

// gridGraph is an 8-connected grid with blocked cells and per-cell entry
// weights. The heuristic is Chebyshev distance scaled by the cheapest step,
// which is consistent for these costs.
type gridGraph struct {
	w, h    int
	blocked map[cell]bool
	weight  map[cell]float64
	calls   int
}

var (
	dirX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	dirY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

func (g *gridGraph) in(c cell) bool { return c.x >= 0 && c.y >= 0 && c.x < g.w && c.y < g.h }

func (g *gridGraph) LeastCostEstimate(from, to cell) float64 {
	dx, dy := abs(from.x-to.x), abs(from.y-to.y)
	return float64(max(dx, dy))
}

func (g *gridGraph) AdjacentCost(state cell, adjacent []StateCost[cell]) []StateCost[cell] {
	g.calls++
	for i := 0; i < 8; i++ {
		c := cell{state.x + dirX[i], state.y + dirY[i]}
		if !g.in(c) || g.blocked[c] {
			continue
		}
		cost := g.stepWeight(c)
		if dirX[i] != 0 && dirY[i] != 0 {
			cost *= 1.5
		}
		adjacent = append(adjacent, StateCost[cell]{State: c, Cost: cost})
	}
	return adjacent
}

func (g *gridGraph) stepWeight(c cell) float64 {
	if w, ok := g.weight[c]; ok {
		return w
	}
	return 1
}

func (g *gridGraph) StateKey(c cell) uint64 { return uint64(c.y*g.w + c.x) }

func (g *gridGraph) id(c cell) int64 { return int64(c.y*g.w + c.x) }

func (g *gridGraph) cells() []cell {
	out := make([]cell, 0, g.w*g.h)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			if c := (cell{x, y}); !g.blocked[c] {
				out = append(out, c)
			}
		}
	}
	return out
}

// oracle computes single-source shortest costs with gonum's Dijkstra.
func (g *gridGraph) oracle(from cell) path.Shortest {
	wg := simple.NewWeightedDirectedGraph(0, Infinite)
	for _, c := range g.cells() {
		wg.AddNode(simple.Node(g.id(c)))
	}
	for _, c := range g.cells() {
		for _, sc := range g.AdjacentCost(c, nil) {
			wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(g.id(c)), simple.Node(g.id(sc.State)), sc.Cost))
		}
	}
	return path.DijkstraFrom(simple.Node(g.id(from)), wg)
}

func randomGrid(rng *rand.Rand, w, h int, wallDensity float64) *gridGraph {
	g := &gridGraph{w: w, h: h, blocked: map[cell]bool{}, weight: map[cell]float64{}}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cell{x, y}
			switch r := rng.Float64(); {
			case r < wallDensity:
				g.blocked[c] = true
			case r < wallDensity+0.2:
				g.weight[c] = 1 + float64(rng.Intn(4))
			}
		}
	}
	return g
}

func (g *gridGraph) randomOpenCell(rng *rand.Rand) cell {
	cells := g.cells()
	return cells[rng.Intn(len(cells))]
}

// pathCost sums edge costs along p as reported by the graph, failing the test
// if two consecutive states are not adjacent.
func pathCost[S comparable](t *testing.T, g Graph[S], p []S) float64 {
	t.Helper()
	total := 0.0
	for i := 1; i < len(p); i++ {
		found := false
		for _, sc := range g.AdjacentCost(p[i-1], nil) {
			if sc.State == p[i] {
				total += sc.Cost
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("path step %d: %v is not adjacent to %v", i, p[i], p[i-1])
		}
	}
	return total
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (c cell) String() string { return fmt.Sprintf("(%d,%d)", c.x, c.y) }

// Equal lets go-cmp compare cells without exporting their fields.
func (c cell) Equal(o cell) bool { return c == o }
