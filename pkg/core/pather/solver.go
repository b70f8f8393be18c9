package pather

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
)

// StateCost pairs a state with a cost. Graphs use it to report neighbors and
// edge costs; SolveNear uses it to report reachable states and their
// shortest cost.
type StateCost[S comparable] struct {
	State S
	Cost  float64
}

// Graph is the client-supplied search space.
//
// LeastCostEstimate must never overestimate the true remaining cost, or paths
// may come back suboptimal. AdjacentCost appends the neighbors of state to
// adjacent and returns the extended slice; it must report the same neighbors
// and costs every time it is asked about a state until the solver is Reset.
// An edge may carry Infinite to mark it impassable without removing it. A
// state must not list itself.
type Graph[S comparable] interface {
	LeastCostEstimate(from, to S) float64
	AdjacentCost(state S, adjacent []StateCost[S]) []StateCost[S]
}

// Status is the outcome of a path query.
type Status int

const (
	// Solved means a path was found.
	Solved Status = iota
	// NoSolution means the goal is unreachable from the start.
	NoSolution
	// StartEndSame means start and goal are the same state. Nothing is
	// searched.
	StartEndSame
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "solved"
	case NoSolution:
		return "no_solution"
	case StartEndSame:
		return "start_end_same"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of Solve.
type Result[S comparable] struct {
	Status Status
	// Cost is the total path cost when Solved, 0 otherwise.
	Cost float64
	// Path runs from start to goal inclusive when Solved, nil otherwise.
	Path []S
	// Expanded counts the records taken off the frontier.
	Expanded int
}

// Solver runs A* and bounded uniform-cost queries over one Graph. It keeps
// its search records and adjacency cache between queries. It is not safe for
// concurrent use.
type Solver[S comparable] struct {
	graph  Graph[S]
	store  *nodeStore[S]
	open   frontier
	closed closedSet[S]

	generation uint32
	checksum   uint64
	key        func(S) uint64
	printer    StatePrinter[S]

	// Scratch buffers reused across queries.
	stateCost []StateCost[S]
	adj       []adjEntry
	order     []nodeID

	hitsAtBegin    int
	missesAtBegin  int
	overflowLogged bool
	log            zerolog.Logger
	observer       Observer
}

// New creates a solver over graph. Zero-valued sizing options fall back to
// DefaultOptions.
func New[S comparable](graph Graph[S], opts Options) *Solver[S] {
	opts = opts.withDefaults()
	store := newNodeStore[S](opts.ExpectedNodes, opts.BlockSize, opts.MaxNodes, opts.CacheCapacity)
	store.log = opts.Logger
	s := &Solver[S]{
		graph:    graph,
		store:    store,
		open:     newFrontier(opts.Frontier, store),
		closed:   closedSet[S]{store: store},
		key:      fallbackKey[S],
		log:      opts.Logger,
		observer: opts.Observer,
	}
	if k, ok := graph.(StateKeyer[S]); ok {
		s.key = k.StateKey
	}
	if p, ok := graph.(StatePrinter[S]); ok {
		s.printer = p
	}
	return s
}

// Solve finds a minimum-cost path from start to goal.
func (s *Solver[S]) Solve(start, goal S) (Result[S], error) {
	if start == goal {
		return Result[S]{Status: StartEndSame}, nil
	}

	began := s.beginQuery()
	res, err := s.solve(start, goal)
	s.endQuery("path", res.Status.String(), res.Expanded, began, err)
	if err != nil {
		return Result[S]{}, fmt.Errorf("solve %s -> %s: %w", s.describe(start), s.describe(goal), err)
	}
	return res, nil
}

func (s *Solver[S]) solve(start, goal S) (Result[S], error) {
	gen := s.generation
	id, err := s.store.getOrCreate(gen, start, 0, s.graph.LeastCostEstimate(start, goal), nilNode)
	if err != nil {
		return Result[S]{}, err
	}
	s.open.push(id)

	expanded := 0
	for !s.open.empty() {
		id := s.open.pop()
		expanded++
		n := s.store.node(id)

		if n.state == goal {
			path := s.reconstruct(id)
			s.checksum = pathChecksum(path, s.key)
			return Result[S]{Status: Solved, Cost: n.costFromStart, Path: path, Expanded: expanded}, nil
		}

		s.closed.add(id)
		neighbors, err := s.neighbors(id)
		if err != nil {
			return Result[S]{}, err
		}
		for _, e := range neighbors {
			if e.cost == Infinite {
				continue
			}
			child := s.store.node(e.node)
			newCost := n.costFromStart + e.cost

			if child.inOpen() || child.inClosed() {
				if newCost < child.costFromStart {
					child.parent = id
					child.costFromStart = newCost
					child.estToGoal = s.graph.LeastCostEstimate(child.state, goal)
					child.calcTotal()
					// Closed records keep the cheaper cost but are not
					// expanded again.
					if child.inOpen() {
						s.open.update(e.node)
					}
				}
				continue
			}
			child.parent = id
			child.costFromStart = newCost
			child.estToGoal = s.graph.LeastCostEstimate(child.state, goal)
			child.calcTotal()
			s.open.push(e.node)
		}
	}
	return Result[S]{Status: NoSolution, Expanded: expanded}, nil
}

// neighbors returns the adjacency of a record, from the cache when possible.
// Every returned target is current for this generation.
func (s *Solver[S]) neighbors(id nodeID) ([]adjEntry, error) {
	gen := s.generation
	n := s.store.node(id)

	if n.numAdjacent >= 0 && n.cacheRef != notCached {
		entries := s.store.readAdjacency(n.cacheRef, n.numAdjacent)
		for _, e := range entries {
			s.store.refresh(e.node, gen)
		}
		s.store.cacheHits++
		return entries, nil
	}

	s.stateCost = s.graph.AdjacentCost(n.state, s.stateCost[:0])
	s.adj = s.adj[:0]
	for _, sc := range s.stateCost {
		if debugChecks {
			assert(sc.State != n.state, "graph lists a state as its own neighbor")
			assert(sc.Cost >= 0, "graph reports a negative edge cost")
		}
		child, err := s.store.getOrCreate(gen, sc.State, Infinite, Infinite, nilNode)
		if err != nil {
			return nil, err
		}
		s.adj = append(s.adj, adjEntry{node: child, cost: sc.Cost})
	}
	s.store.cacheMisses++

	if n.numAdjacent >= 0 {
		// Known but uncached: the cache was full when the list was first
		// built.
		if debugChecks {
			assert(int(n.numAdjacent) == len(s.adj), "graph changed the neighbor count of a state")
		}
		return s.adj, nil
	}

	n.numAdjacent = int32(len(s.adj))
	if offset, ok := s.store.pushAdjacency(s.adj); ok {
		n.cacheRef = offset
	} else if !s.overflowLogged {
		s.overflowLogged = true
		s.log.Debug().
			Int("capacity", cap(s.store.cache)).
			Msg("adjacency cache full, falling back to graph queries")
	}
	return s.adj, nil
}

// reconstruct walks parent links from id back to the start and returns the
// path in start-to-goal order.
func (s *Solver[S]) reconstruct(id nodeID) []S {
	length := 0
	for at := id; at != nilNode; at = s.store.node(at).parent {
		length++
	}
	path := make([]S, length)
	for at, i := id, length-1; at != nilNode; at, i = s.store.node(at).parent, i-1 {
		path[i] = s.store.node(at).state
	}
	return path
}

// beginQuery opens a new generation and empties the frontier.
func (s *Solver[S]) beginQuery() time.Time {
	if s.generation == math.MaxUint32 {
		s.Reset()
	}
	s.generation++
	s.open.clear()
	s.hitsAtBegin = s.store.cacheHits
	s.missesAtBegin = s.store.cacheMisses

	var began time.Time
	if s.observer != nil {
		began = time.Now()
	}
	return began
}

func (s *Solver[S]) endQuery(kind, status string, expanded int, began time.Time, err error) {
	if err != nil {
		status = "error"
		s.log.Warn().Err(err).Str("kind", kind).Int("nodes", s.store.allocated).Msg("query aborted")
	}
	if s.observer == nil {
		return
	}
	s.observer.ObserveSolve(kind, status, expanded, time.Since(began))
	s.observer.ObserveCache(s.store.cacheHits-s.hitsAtBegin, s.store.cacheMisses-s.missesAtBegin)
	s.observer.ObservePool(s.store.allocated)
}

// Reset forgets every state, cost and cached neighbor list while keeping the
// allocated memory. Call it whenever edge costs or topology change.
func (s *Solver[S]) Reset() {
	s.store.reset()
	s.open.clear()
	s.generation = 0
	s.overflowLogged = false
	s.log.Debug().
		Int("blocks", len(s.store.blocks)).
		Int("nodes", s.store.allocated).
		Msg("solver reset")
}

// Checksum returns the fold of the last solved path. See pathChecksum for the
// definition. It is 0 until a query is solved.
func (s *Solver[S]) Checksum() uint64 {
	return s.checksum
}

// Stats reports pool and cache usage.
func (s *Solver[S]) Stats() Stats {
	return Stats{
		Generation:     s.generation,
		Blocks:         len(s.store.blocks),
		NodesAllocated: s.store.allocated,
		NodesIndexed:   len(s.store.index),
		CacheCapacity:  cap(s.store.cache),
		CacheUsed:      len(s.store.cache),
		CacheHits:      s.store.cacheHits,
		CacheMisses:    s.store.cacheMisses,
	}
}

func (s *Solver[S]) describe(state S) string {
	if s.printer != nil {
		return s.printer.PrintStateInfo(state)
	}
	return fmt.Sprint(state)
}
