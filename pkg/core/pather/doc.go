// Package pather provides a reusable graph search core: an A* solver for
// minimum-cost paths between two states and a bounded uniform-cost search
// that returns every state reachable within a cost budget.
//
// The graph is supplied by the caller through the Graph interface. States are
// opaque comparable handles that the solver never interprets. Neighbor lists
// and costs are requested on demand and cached, so repeated queries over the
// same region of a graph do not call back into the client.
//
// The solver is built for a per-frame calling context. Search records live in
// fixed-size blocks that are recycled rather than freed, and a generation
// counter invalidates them lazily between queries, so steady-state queries do
// not allocate. A Solver is not safe for concurrent use; run one query at a
// time per instance.
//
// Basic usage:
//
//	solver := pather.New[Cell](world, pather.DefaultOptions())
//	res, err := solver.Solve(from, to)
//	if err != nil {
//	    return err
//	}
//	if res.Status == pather.Solved {
//	    follow(res.Path)
//	}
//
// When edge costs or topology change, call Reset before the next query:
// cached neighbor lists are otherwise reused as-is.
package pather
