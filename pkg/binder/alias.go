package binder

import (
	"github.com/leapstack-labs/sqlbind/pkg/ast"
)

// aliasNode is `expr AS name` in a projection. Every column under expr is
// exposed under the alias, and is touched again on resolve.
type aliasNode struct {
	baseNode
	expr *ast.Alias
}

func (n *aliasNode) columns() (*ColumnsMap, error) {
	if n.columnsCache != nil {
		return n.columnsCache, nil
	}
	inner, err := mergeColumns(n.children("this"))
	if err != nil {
		return nil, err
	}
	refs := inner.allRefs()
	out := newColumnsMap()
	out.set(makeColumnKey(n.expr.Table.Text(), n.expr.Name.Name), refs)
	out.set(makeColumnKey("", n.expr.Name.Name), refs)
	n.columnsCache = out
	return out, nil
}

func (n *aliasNode) resolve() error {
	return markTouched(n)
}
