package engine

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/sanonone/kektorpath/pkg/core/pather"
	"github.com/sanonone/kektorpath/pkg/dungeon"
)

// PathResult is the outcome of FindPath.
type PathResult struct {
	Status   pather.Status
	Cost     float64
	Path     []dungeon.Cell // start to goal inclusive, nil unless solved
	Checksum uint64         // fold of Path, 0 unless solved
	Expanded int
	// StraightLine is the Euclidean distance between the endpoints, for
	// comparing against Cost.
	StraightLine float64
}

// NearCell is one entry of a Near result.
type NearCell struct {
	Cell dungeon.Cell
	Cost float64
}

// FindPath finds a minimum-cost walk between two passable cells.
func (e *Engine) FindPath(from, to dungeon.Cell) (PathResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkCell(from); err != nil {
		return PathResult{}, err
	}
	if err := e.checkCell(to); err != nil {
		return PathResult{}, err
	}

	res, err := e.solver.Solve(from, to)
	if err != nil {
		return PathResult{}, err
	}

	out := PathResult{
		Status:       res.Status,
		Cost:         res.Cost,
		Path:         res.Path,
		Expanded:     res.Expanded,
		StraightLine: r2.Norm(r2.Sub(cellVec(to), cellVec(from))),
	}
	if res.Status == pather.Solved {
		out.Checksum = e.solver.Checksum()
	}
	e.log.Debug().
		Stringer("from", from).
		Stringer("to", to).
		Stringer("status", res.Status).
		Float64("cost", res.Cost).
		Int("expanded", res.Expanded).
		Msg("path query")
	return out, nil
}

// Near lists every cell reachable from from within maxCost, cheapest first.
// Equal costs are ordered by row, then column.
func (e *Engine) Near(from dungeon.Cell, maxCost float64) ([]NearCell, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkCell(from); err != nil {
		return nil, err
	}
	near, err := e.solver.SolveNear(from, maxCost)
	if err != nil {
		return nil, err
	}

	out := make([]NearCell, len(near))
	for i, sc := range near {
		out[i] = NearCell{Cell: sc.State, Cost: sc.Cost}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Cost != b.Cost {
			return a.Cost < b.Cost
		}
		if a.Cell.Y != b.Cell.Y {
			return a.Cell.Y < b.Cell.Y
		}
		return a.Cell.X < b.Cell.X
	})
	return out, nil
}

func cellVec(c dungeon.Cell) r2.Vec {
	return r2.Vec{X: float64(c.X), Y: float64(c.Y)}
}
