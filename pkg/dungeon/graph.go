package dungeon

import (
	"math"

	"github.com/sanonone/kektorpath/pkg/core/pather"
)

// Step costs. Diagonal moves are slightly cheaper than sqrt(2).
const (
	StraightCost = 1.0
	DiagonalCost = 1.41
)

// Neighbor order: E, SE, S, SW, W, NW, N, NE.
var (
	stepX    = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	stepY    = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	stepCost = [8]float64{
		StraightCost, DiagonalCost, StraightCost, DiagonalCost,
		StraightCost, DiagonalCost, StraightCost, DiagonalCost,
	}
)

var (
	_ pather.Graph[Cell]        = (*Map)(nil)
	_ pather.StateKeyer[Cell]   = (*Map)(nil)
	_ pather.StatePrinter[Cell] = (*Map)(nil)
)

// LeastCostEstimate is the straight-line distance between two cells. It is
// computed from integer deltas so that results do not depend on the
// platform's floating-point contraction.
func (m *Map) LeastCostEstimate(from, to Cell) float64 {
	dx := from.X - to.X
	dy := from.Y - to.Y
	return math.Sqrt(float64(dx*dx + dy*dy))
}

// AdjacentCost appends the floor and door cells around state. A closed door
// is still listed, at pather.Infinite, so the solver caches the same
// topology whatever the door state.
func (m *Map) AdjacentCost(state Cell, adjacent []pather.StateCost[Cell]) []pather.StateCost[Cell] {
	for i := range stepX {
		c := Cell{X: state.X + stepX[i], Y: state.Y + stepY[i]}
		switch m.TerrainAt(c) {
		case Floor:
			adjacent = append(adjacent, pather.StateCost[Cell]{State: c, Cost: stepCost[i]})
		case Door:
			cost := pather.Infinite
			if m.doorsOpen {
				cost = stepCost[i]
			}
			adjacent = append(adjacent, pather.StateCost[Cell]{State: c, Cost: cost})
		}
	}
	return adjacent
}

// StateKey numbers cells row-major.
func (m *Map) StateKey(c Cell) uint64 {
	return uint64(c.Y*m.width + c.X)
}

func (m *Map) PrintStateInfo(c Cell) string {
	return c.String()
}
