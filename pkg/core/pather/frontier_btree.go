package pather

import "github.com/tidwall/btree"

type frontierItem struct {
	total float64
	seq   int64
	id    nodeID
}

func frontierLess(a, b frontierItem) bool {
	if a.total != b.total {
		return a.total < b.total
	}
	return a.seq < b.seq
}

// btreeFrontier keeps open records in a B-tree keyed on (total cost, seq).
// Pushes draw increasing positive sequence numbers and updates draw
// decreasing negative ones, which matches the open list's tie order: a pushed
// record goes behind equal costs, an updated one in front of them.
type btreeFrontier[S comparable] struct {
	store   *nodeStore[S]
	tree    *btree.BTreeG[frontierItem]
	pushSeq int64
	moveSeq int64
}

func newBTreeFrontier[S comparable](store *nodeStore[S]) *btreeFrontier[S] {
	return &btreeFrontier[S]{
		store: store,
		tree:  btree.NewBTreeGOptions(frontierLess, btree.Options{NoLocks: true}),
	}
}

func (f *btreeFrontier[S]) empty() bool { return f.tree.Len() == 0 }

func (f *btreeFrontier[S]) clear() {
	f.tree.Clear()
	f.pushSeq = 0
	f.moveSeq = 0
}

func (f *btreeFrontier[S]) push(id nodeID) {
	n := f.store.node(id)
	if debugChecks {
		assert(!n.inOpen() && !n.inClosed(), "push of a record that is already open or closed")
	}
	f.pushSeq++
	f.file(n, id, f.pushSeq)
	n.member = memberOpen
}

func (f *btreeFrontier[S]) pop() nodeID {
	item, ok := f.tree.PopMin()
	if debugChecks {
		assert(ok, "pop from an empty frontier")
	}
	if !ok {
		return nilNode
	}
	f.store.node(item.id).member = memberNone
	return item.id
}

func (f *btreeFrontier[S]) update(id nodeID) {
	n := f.store.node(id)
	if debugChecks {
		assert(n.inOpen(), "update of a record that is not open")
	}
	if n.totalCost == n.openTotal {
		return
	}
	old := frontierItem{total: n.openTotal, seq: n.openSeq}

	// The open list only relinks a cheaper record when it undercuts its
	// predecessor; otherwise the record keeps its place behind any equal
	// costs.
	jumps := true
	if n.totalCost < old.total {
		jumps = false
		f.tree.Descend(old, func(item frontierItem) bool {
			if item.id == id {
				return true
			}
			jumps = n.totalCost < item.total
			return false
		})
	}
	f.tree.Delete(old)
	if jumps {
		f.moveSeq--
		f.file(n, id, f.moveSeq)
	} else {
		f.pushSeq++
		f.file(n, id, f.pushSeq)
	}
}

func (f *btreeFrontier[S]) file(n *node[S], id nodeID, seq int64) {
	n.openTotal = n.totalCost
	n.openSeq = seq
	f.tree.Set(frontierItem{total: n.totalCost, seq: seq, id: id})
}
