package pather

// closedSet marks records whose expansion is final. Membership lives on the
// record itself; the set only enforces the open/closed exclusion.
type closedSet[S comparable] struct {
	store *nodeStore[S]
}

func (c closedSet[S]) add(id nodeID) {
	n := c.store.node(id)
	if debugChecks {
		assert(!n.inOpen(), "closing a record that is still open")
		assert(!n.inClosed(), "closing a record twice")
	}
	n.member = memberClosed
}

func (c closedSet[S]) remove(id nodeID) {
	n := c.store.node(id)
	if debugChecks {
		assert(n.inClosed(), "removing a record that is not closed")
	}
	n.member = memberNone
}

func (c closedSet[S]) has(id nodeID) bool {
	return c.store.node(id).inClosed()
}
