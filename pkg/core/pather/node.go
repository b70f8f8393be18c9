// Package pather provides a reusable graph search core.
//
// This file defines the node record, the per-state bookkeeping unit of every
// search. Records are stored by value inside the node store's blocks and are
// referenced everywhere else by nodeID.
package pather

import "math"

// Infinite is the cost sentinel for "unknown" search costs and for edges that
// a Graph reports as currently impassable. It is positive infinity, so any sum
// that involves it saturates.
var Infinite = math.Inf(1)

// nodeID is an index into the node store's block arena.
type nodeID uint32

// nilNode marks a missing parent or list link. In the open list it also plays
// the role of the sentinel, whose total cost is Infinite.
const nilNode nodeID = math.MaxUint32

// notCached marks a record whose neighbor list is not held in the adjacency
// cache.
const notCached int32 = -1

type membership uint8

const (
	memberNone membership = iota
	memberOpen
	memberClosed
)

// node is the search record for one state.
type node[S comparable] struct {
	state S

	costFromStart float64
	estToGoal     float64
	totalCost     float64

	parent     nodeID
	generation uint32
	member     membership

	// numAdjacent is -1 until the neighbor list is known. Once set it stays
	// authoritative until the pool is reset.
	numAdjacent int32
	cacheRef    int32

	// prev and next thread the record through either the free list or the
	// open list, never both.
	prev nodeID
	next nodeID

	// Key under which the record is filed in a btree frontier.
	openTotal float64
	openSeq   int64
}

// init (re)initializes the search fields for a generation. Adjacency fields
// survive: the neighbor list of a state does not change between generations.
func (n *node[S]) init(gen uint32, state S, cost, est float64, parent nodeID) {
	n.state = state
	n.costFromStart = cost
	n.estToGoal = est
	n.calcTotal()
	n.parent = parent
	n.generation = gen
	n.member = memberNone
	n.prev = nilNode
	n.next = nilNode
}

func (n *node[S]) calcTotal() {
	n.totalCost = n.costFromStart + n.estToGoal
}

func (n *node[S]) inOpen() bool   { return n.member == memberOpen }
func (n *node[S]) inClosed() bool { return n.member == memberClosed }
