package binder

// filterNode is `agg(...) FILTER (WHERE cond)`. The builder rejects it in
// dialects without FILTER before any child is built.
type filterNode struct {
	baseNode
}

// windowNode is `func(...) OVER (...)`. Partition and order columns are
// bound and touched, but the window only projects its function.
type windowNode struct {
	baseNode
}

func (n *windowNode) columns() (*ColumnsMap, error) {
	if n.columnsCache != nil {
		return n.columnsCache, nil
	}
	out, err := mergeColumns(n.children("this"))
	if err != nil {
		return nil, err
	}
	n.columnsCache = out
	return out, nil
}
