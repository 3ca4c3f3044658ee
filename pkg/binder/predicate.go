package binder

import (
	"github.com/leapstack-labs/sqlbind/pkg/touch"
)

// eqNode is `expr = 'value'` in either operand order. Its only child is
// the expression side; each physical column behind it is touched with value.
type eqNode struct {
	baseNode
	value string
}

func (n *eqNode) resolve() error {
	cols, err := n.columns()
	if err != nil {
		return err
	}
	recordValues(n.state, cols, []string{n.value})
	return nil
}

// inNode is `x [NOT] IN (...)`. String literals in the list are fanned out
// over every column behind x; other list items and a subquery are bound
// as children.
type inNode struct {
	baseNode
	values []string
}

func (n *inNode) resolve() error {
	cols, err := mergeColumns(n.children("this"))
	if err != nil {
		return err
	}
	recordValues(n.state, cols, n.values)
	return nil
}

func recordValues(st BindState, cols *ColumnsMap, values []string) {
	if len(values) == 0 {
		return
	}
	for _, ref := range cols.allRefs() {
		for _, v := range values {
			st.RecordTouch(touch.ValueKey(ref.Table.Name, ref.Name, v))
		}
	}
}
