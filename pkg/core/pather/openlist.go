package pather

// frontier is the set of discovered but unexpanded records, ordered by
// ascending total cost.
type frontier interface {
	push(id nodeID)
	pop() nodeID
	update(id nodeID)
	empty() bool
	clear()
}

func newFrontier[S comparable](kind FrontierKind, store *nodeStore[S]) frontier {
	if kind == FrontierBTree {
		return newBTreeFrontier(store)
	}
	return newOpenList(store)
}

// openList is a sorted, intrusive, doubly linked list threaded through the
// records' prev/next fields. nilNode is the sentinel: head.prev and tail.next
// point at it and its total cost is Infinite.
type openList[S comparable] struct {
	store *nodeStore[S]
	head  nodeID
	tail  nodeID
}

func newOpenList[S comparable](store *nodeStore[S]) *openList[S] {
	return &openList[S]{store: store, head: nilNode, tail: nilNode}
}

func (l *openList[S]) empty() bool { return l.head == nilNode }

func (l *openList[S]) clear() {
	l.head = nilNode
	l.tail = nilNode
}

// push inserts before the first record with a strictly greater total cost,
// so equal costs keep insertion order.
func (l *openList[S]) push(id nodeID) {
	n := l.store.node(id)
	if debugChecks {
		assert(!n.inOpen() && !n.inClosed(), "push of a record that is already open or closed")
	}
	at := l.head
	for at != nilNode && l.store.node(at).totalCost <= n.totalCost {
		at = l.store.node(at).next
	}
	l.insertBefore(at, id)
	n.member = memberOpen
}

// pop removes and returns the cheapest record. The list must not be empty.
func (l *openList[S]) pop() nodeID {
	if debugChecks {
		assert(!l.empty(), "pop from an empty open list")
		l.checkSorted()
	}
	id := l.head
	l.unlink(id)
	l.store.node(id).member = memberNone
	return id
}

// update re-sorts a record whose total cost changed. A cheaper record jumps to
// the front and walks back past strictly cheaper ones; a dearer record walks
// back past strictly cheaper successors.
func (l *openList[S]) update(id nodeID) {
	n := l.store.node(id)
	if debugChecks {
		assert(n.inOpen(), "update of a record that is not open")
	}
	if n.prev != nilNode && n.totalCost < l.store.node(n.prev).totalCost {
		l.unlink(id)
		l.insertBefore(l.head, id)
	}
	if n.next != nilNode && n.totalCost > l.store.node(n.next).totalCost {
		at := n.next
		l.unlink(id)
		for at != nilNode && n.totalCost > l.store.node(at).totalCost {
			at = l.store.node(at).next
		}
		l.insertBefore(at, id)
	}
}

// insertBefore links id in front of at; at == nilNode appends.
func (l *openList[S]) insertBefore(at, id nodeID) {
	n := l.store.node(id)
	n.next = at
	if at == nilNode {
		n.prev = l.tail
		l.tail = id
	} else {
		a := l.store.node(at)
		n.prev = a.prev
		a.prev = id
	}
	if n.prev == nilNode {
		l.head = id
	} else {
		l.store.node(n.prev).next = id
	}
}

func (l *openList[S]) unlink(id nodeID) {
	n := l.store.node(id)
	if n.prev == nilNode {
		l.head = n.next
	} else {
		l.store.node(n.prev).next = n.next
	}
	if n.next == nilNode {
		l.tail = n.prev
	} else {
		l.store.node(n.next).prev = n.prev
	}
	n.prev = nilNode
	n.next = nilNode
}

func (l *openList[S]) checkSorted() {
	for at := l.head; at != nilNode; {
		n := l.store.node(at)
		if n.next != nilNode {
			assert(n.totalCost <= l.store.node(n.next).totalCost, "open list out of order")
		}
		at = n.next
	}
}
