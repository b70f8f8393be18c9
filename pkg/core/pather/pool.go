// Package pather provides a reusable graph search core.
//
// This file implements the node store: a block allocator for search records,
// the index from state handle to record, and the adjacency cache. Blocks are
// never released or moved, so pointers into them stay valid for the life of
// the store and Reset is a relink rather than a reallocation.
package pather

import (
	"fmt"

	"github.com/rs/zerolog"
)

// adjEntry is one cached (neighbor, edge cost) pair.
type adjEntry struct {
	node nodeID
	cost float64
}

type nodeStore[S comparable] struct {
	blockSize int
	maxNodes  int

	blocks    [][]node[S]
	allocated int
	free      nodeID

	index map[S]nodeID

	cache       []adjEntry
	cacheHits   int
	cacheMisses int

	log zerolog.Logger
}

func newNodeStore[S comparable](expected, blockSize, maxNodes, cacheCapacity int) *nodeStore[S] {
	return &nodeStore[S]{
		blockSize: blockSize,
		maxNodes:  maxNodes,
		free:      nilNode,
		log:       zerolog.Nop(),
		index:     make(map[S]nodeID, nextPowerOfTwo(expected)),
		cache:     make([]adjEntry, 0, cacheCapacity),
	}
}

// node returns the record for id. The pointer is stable.
func (p *nodeStore[S]) node(id nodeID) *node[S] {
	return &p.blocks[int(id)/p.blockSize][int(id)%p.blockSize]
}

// getOrCreate returns the record for state. A record that is already current
// for gen is returned untouched; a stale one is re-initialized in place; a
// missing one is allocated.
func (p *nodeStore[S]) getOrCreate(gen uint32, state S, cost, est float64, parent nodeID) (nodeID, error) {
	if id, ok := p.index[state]; ok {
		n := p.node(id)
		if n.generation != gen {
			n.init(gen, state, cost, est, parent)
		}
		return id, nil
	}

	id, err := p.alloc()
	if err != nil {
		return nilNode, err
	}
	n := p.node(id)
	n.init(gen, state, cost, est, parent)
	n.numAdjacent = -1
	n.cacheRef = notCached
	p.index[state] = id
	return id, nil
}

// refresh brings a record reached through the adjacency cache up to gen.
func (p *nodeStore[S]) refresh(id nodeID, gen uint32) {
	n := p.node(id)
	if n.generation != gen {
		n.init(gen, n.state, Infinite, Infinite, nilNode)
	}
}

func (p *nodeStore[S]) alloc() (nodeID, error) {
	if p.free == nilNode {
		if err := p.grow(); err != nil {
			return nilNode, err
		}
	}
	id := p.free
	p.free = p.node(id).next
	return id, nil
}

// grow appends one block and links its records onto the free list.
func (p *nodeStore[S]) grow() error {
	size := p.blockSize
	if p.maxNodes > 0 {
		if room := p.maxNodes - p.allocated; room < size {
			size = room
		}
	}
	if size <= 0 || uint64(p.allocated+size) > uint64(nilNode) {
		return fmt.Errorf("grow beyond %d records: %w", p.allocated, ErrPoolExhausted)
	}

	block := make([]node[S], p.blockSize)
	first := p.allocated
	p.blocks = append(p.blocks, block)
	p.allocated += size

	// Link back to front so the free list hands out ascending IDs.
	for i := size - 1; i >= 0; i-- {
		block[i].next = p.free
		p.free = nodeID(first + i)
	}
	p.log.Debug().
		Int("blocks", len(p.blocks)).
		Int("nodes", p.allocated).
		Msg("node pool grew")
	return nil
}

// reset returns every record to the free list and forgets all states and
// cached adjacency. Block memory is kept.
func (p *nodeStore[S]) reset() {
	p.free = nilNode
	for id := p.allocated - 1; id >= 0; id-- {
		n := p.node(nodeID(id))
		var zero S
		n.state = zero
		n.generation = 0
		n.member = memberNone
		n.numAdjacent = -1
		n.cacheRef = notCached
		n.prev = nilNode
		n.next = p.free
		p.free = nodeID(id)
	}
	clear(p.index)
	p.cache = p.cache[:0]
	p.cacheHits = 0
	p.cacheMisses = 0
}

// pushAdjacency appends entries to the cache and returns their offset, or
// false when the cache has no room left for all of them.
func (p *nodeStore[S]) pushAdjacency(entries []adjEntry) (int32, bool) {
	if len(p.cache)+len(entries) > cap(p.cache) {
		return notCached, false
	}
	offset := int32(len(p.cache))
	p.cache = append(p.cache, entries...)
	return offset, true
}

// readAdjacency returns a read-only view of cached entries.
func (p *nodeStore[S]) readAdjacency(offset, count int32) []adjEntry {
	return p.cache[offset : offset+count]
}

func nextPowerOfTwo(n int) int {
	v := 1
	for v < n {
		v <<= 1
	}
	return v
}
