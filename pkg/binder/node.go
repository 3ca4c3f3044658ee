package binder

import (
	"github.com/leapstack-labs/sqlbind/pkg/touch"
)

// node is one element of the bound tree.
//
// tables and columns report what the node exposes to its parent. Results
// may be shared between nodes and must not be modified by callers.
type node interface {
	tables() (*TablesMap, error)
	columns() (*ColumnsMap, error)
	// resolve runs once, after all children are built.
	resolve() error
	base() *baseNode
}

// slot is a named, ordered group of children.
type slot struct {
	key   string
	nodes []node
}

func (s *slot) add(n node) { s.nodes = append(s.nodes, n) }

// baseNode carries the children and caches shared by all nodes. Its
// tables and columns merge the children: tables concatenate per key,
// columns are last write wins.
type baseNode struct {
	state BindState
	slots []*slot

	// sealed is set after resolve; caches are filled only from then on
	// because a select or join still gains children while being built.
	sealed       bool
	tablesCache  *TablesMap
	columnsCache *ColumnsMap
}

func newBase(st BindState) baseNode {
	return baseNode{state: st}
}

func (b *baseNode) base() *baseNode { return b }

func (b *baseNode) resolve() error { return nil }

// slot returns the slot named key, creating it at the end if needed.
func (b *baseNode) slot(key string) *slot {
	for _, s := range b.slots {
		if s.key == key {
			return s
		}
	}
	s := &slot{key: key}
	b.slots = append(b.slots, s)
	return s
}

// children returns the nodes of the named slot, or nil.
func (b *baseNode) children(key string) []node {
	for _, s := range b.slots {
		if s.key == key {
			return s.nodes
		}
	}
	return nil
}

func (b *baseNode) allChildren() []node {
	var out []node
	for _, s := range b.slots {
		out = append(out, s.nodes...)
	}
	return out
}

func (b *baseNode) tables() (*TablesMap, error) {
	if b.tablesCache != nil {
		return b.tablesCache, nil
	}
	out, err := mergeTables(b.allChildren())
	if err != nil {
		return nil, err
	}
	if b.sealed {
		b.tablesCache = out
	}
	return out, nil
}

func (b *baseNode) columns() (*ColumnsMap, error) {
	if b.columnsCache != nil {
		return b.columnsCache, nil
	}
	out, err := mergeColumns(b.allChildren())
	if err != nil {
		return nil, err
	}
	if b.sealed {
		b.columnsCache = out
	}
	return out, nil
}

func mergeTables(nodes []node) (*TablesMap, error) {
	out := newTablesMap()
	for _, n := range nodes {
		t, err := n.tables()
		if err != nil {
			return nil, err
		}
		out.merge(t)
	}
	return out, nil
}

func mergeColumns(nodes []node) (*ColumnsMap, error) {
	out := newColumnsMap()
	for _, n := range nodes {
		c, err := n.columns()
		if err != nil {
			return nil, err
		}
		out.update(c)
	}
	return out, nil
}

// markTouched records a table touch for every table n exposes and a
// column touch for every column.
func markTouched(n node) error {
	st := n.base().state
	tables, err := n.tables()
	if err != nil {
		return err
	}
	for _, ref := range tables.allRefs() {
		st.RecordTouch(touch.TableKey(ref.Name))
	}
	cols, err := n.columns()
	if err != nil {
		return err
	}
	for _, ref := range cols.allRefs() {
		st.RecordTouch(touch.ColumnKey(ref.Table.Name, ref.Name))
	}
	return nil
}

// genericNode is any syntax node without binding rules of its own. It
// exposes the merge of its children.
type genericNode struct {
	baseNode
}
