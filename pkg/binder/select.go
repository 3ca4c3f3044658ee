package binder

// scope is a query block that column references bind against.
type scope interface {
	innerColumns() (*ColumnsMap, error)
}

// projector is a statement whose output columns a subquery or CTE exposes.
type projector interface {
	node
	// filteredColumns returns the columns the statement projects.
	filteredColumns() (*ColumnsMap, error)
	// projections returns one node per output column expression.
	projections() []node
}

// selectNode is one SELECT block. While it is being built it is the
// enclosing scope of its columns, which bind against innerColumns.
type selectNode struct {
	baseNode
	filteredCache *ColumnsMap

	// inner folds the finished children in build order. A join under
	// construction is folded child by child through pendingAt.
	inner     *ColumnsMap
	at        foldCursor
	pending   node
	pendingAt foldCursor
}

// filteredColumns is the merge of the projections.
func (n *selectNode) filteredColumns() (*ColumnsMap, error) {
	if n.filteredCache != nil {
		return n.filteredCache, nil
	}
	out, err := mergeColumns(n.children("expressions"))
	if err != nil {
		return nil, err
	}
	if n.sealed {
		n.filteredCache = out
	}
	return out, nil
}

func (n *selectNode) projections() []node { return n.children("expressions") }

// innerColumns is the merge of every child built so far, projections and
// predicates included. Each child is folded in once.
func (n *selectNode) innerColumns() (*ColumnsMap, error) {
	if n.sealed {
		return n.baseNode.columns()
	}
	if n.inner == nil {
		n.inner = newColumnsMap()
	}
	pending, err := n.at.fold(&n.baseNode, n.inner)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return n.inner, nil
	}
	if pending != n.pending {
		n.pending, n.pendingAt = pending, foldCursor{}
	}
	// Everything under a join is finished before it is attached.
	if _, err := n.pendingAt.fold(pending.base(), n.inner); err != nil {
		return nil, err
	}
	return n.inner, nil
}

// foldCursor is a position in a node's children. Children are only ever
// appended to the last slot, so the position stays valid as a node grows.
type foldCursor struct {
	slot, node int
}

// fold merges the sealed children of b past the cursor into into and
// advances. It stops at the first unsealed child and returns it.
func (c *foldCursor) fold(b *baseNode, into *ColumnsMap) (node, error) {
	for c.slot < len(b.slots) {
		s := b.slots[c.slot]
		for ; c.node < len(s.nodes); c.node++ {
			child := s.nodes[c.node]
			if !child.base().sealed {
				return child, nil
			}
			cols, err := child.columns()
			if err != nil {
				return nil, err
			}
			into.update(cols)
		}
		if c.slot == len(b.slots)-1 {
			break
		}
		c.slot, c.node = c.slot+1, 0
	}
	return nil, nil
}

// unionNode is a set operation. Both branches bind and touch; its
// projection is the left branch's. Trailing ORDER BY, LIMIT and OFFSET
// bind against that projection.
type unionNode struct {
	baseNode
	outputCache *ColumnsMap
}

func (n *unionNode) left() (projector, error) {
	left := n.children("this")
	if len(left) == 0 {
		return nil, buildErrorf("set operation without a left branch")
	}
	p, ok := left[0].(projector)
	if !ok {
		return nil, buildErrorf("set operation branch is not a query")
	}
	return p, nil
}

func (n *unionNode) filteredColumns() (*ColumnsMap, error) {
	p, err := n.left()
	if err != nil {
		return nil, err
	}
	return p.filteredColumns()
}

func (n *unionNode) projections() []node {
	p, err := n.left()
	if err != nil {
		return nil
	}
	return p.projections()
}

// innerColumns exposes the output names, unqualified, to the modifiers.
func (n *unionNode) innerColumns() (*ColumnsMap, error) {
	if n.outputCache != nil {
		return n.outputCache, nil
	}
	filtered, err := n.filteredColumns()
	if err != nil {
		return nil, err
	}
	n.outputCache = requalify(filtered, "")
	return n.outputCache, nil
}
