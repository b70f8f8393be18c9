package pather

import "fmt"

// SolveNear returns every state whose shortest cost from start is at most
// maxCost, start included, each paired with that cost. The order of the
// result is unspecified. An unreachable neighborhood yields just the start;
// a negative budget yields nothing.
//
// As in Solve, a cheaper route found to an already expanded state updates its
// cost but does not expand it again.
func (s *Solver[S]) SolveNear(start S, maxCost float64) ([]StateCost[S], error) {
	began := s.beginQuery()
	expanded, err := s.solveNear(start, maxCost)
	s.endQuery("near", "solved", expanded, began, err)
	if err != nil {
		return nil, fmt.Errorf("solve near %s within %g: %w", s.describe(start), maxCost, err)
	}

	near := make([]StateCost[S], 0, len(s.order))
	for _, id := range s.order {
		n := s.store.node(id)
		if n.totalCost <= maxCost {
			near = append(near, StateCost[S]{State: n.state, Cost: n.totalCost})
		}
	}
	return near, nil
}

func (s *Solver[S]) solveNear(start S, maxCost float64) (int, error) {
	gen := s.generation
	s.order = s.order[:0]

	id, err := s.store.getOrCreate(gen, start, 0, 0, nilNode)
	if err != nil {
		return 0, err
	}
	s.open.push(id)

	expanded := 0
	for !s.open.empty() {
		id := s.open.pop()
		expanded++
		s.closed.add(id)
		s.order = append(s.order, id)

		n := s.store.node(id)
		if n.totalCost > maxCost {
			continue
		}

		neighbors, err := s.neighbors(id)
		if err != nil {
			return expanded, err
		}
		for _, e := range neighbors {
			if e.cost == Infinite {
				continue
			}
			child := s.store.node(e.node)
			newCost := n.costFromStart + e.cost

			wasOpen, wasClosed := child.inOpen(), child.inClosed()
			if (wasOpen || wasClosed) && child.costFromStart <= newCost {
				continue
			}
			child.parent = id
			child.costFromStart = newCost
			child.estToGoal = 0
			child.calcTotal()
			switch {
			case wasOpen:
				s.open.update(e.node)
			case !wasClosed:
				s.open.push(e.node)
			}
		}
	}
	return expanded, nil
}
