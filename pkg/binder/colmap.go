package binder

import "github.com/leapstack-labs/sqlbind/pkg/schema"

// TableRef is the physical table a column belongs to. Name is the
// canonical schema spelling.
type TableRef struct {
	Name string
}

// ColumnRef is a physical column. Refs are values and are copied freely
// into ancestor maps.
type ColumnRef struct {
	Name  string
	Table TableRef
}

// ColumnKey is a visible column binding. Both parts are case-folded;
// Qualifier is empty for an unqualified binding.
type ColumnKey struct {
	Qualifier string
	Name      string
}

func makeColumnKey(qualifier, name string) ColumnKey {
	if qualifier != "" {
		qualifier = schema.Fold(qualifier)
	}
	return ColumnKey{Qualifier: qualifier, Name: schema.Fold(name)}
}

func (k ColumnKey) String() string {
	if k.Qualifier == "" {
		return k.Name
	}
	return k.Qualifier + "." + k.Name
}

// ColumnsMap maps visible bindings to the physical columns behind them.
// Insertion order is kept so iteration is deterministic. Overwriting a key
// keeps its original position.
type ColumnsMap struct {
	keys []ColumnKey
	refs map[ColumnKey][]ColumnRef
}

func newColumnsMap() *ColumnsMap {
	return &ColumnsMap{refs: make(map[ColumnKey][]ColumnRef)}
}

// Len returns the number of keys.
func (m *ColumnsMap) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *ColumnsMap) Keys() []ColumnKey { return m.keys }

// Get returns the refs bound to k.
func (m *ColumnsMap) Get(k ColumnKey) ([]ColumnRef, bool) {
	refs, ok := m.refs[k]
	return refs, ok
}

// set binds k to refs, replacing any previous binding.
func (m *ColumnsMap) set(k ColumnKey, refs []ColumnRef) {
	if _, ok := m.refs[k]; !ok {
		m.keys = append(m.keys, k)
	}
	m.refs[k] = refs
}

// update copies every binding of other into m, last write wins.
func (m *ColumnsMap) update(other *ColumnsMap) {
	for _, k := range other.keys {
		m.set(k, other.refs[k])
	}
}

// each calls fn for every binding in order.
func (m *ColumnsMap) each(fn func(ColumnKey, []ColumnRef)) {
	for _, k := range m.keys {
		fn(k, m.refs[k])
	}
}

// allRefs concatenates the refs of every binding in order.
func (m *ColumnsMap) allRefs() []ColumnRef {
	var out []ColumnRef
	for _, k := range m.keys {
		out = append(out, m.refs[k]...)
	}
	return out
}

func (m *ColumnsMap) keyStrings() []string {
	out := make([]string, len(m.keys))
	for i, k := range m.keys {
		out[i] = k.String()
	}
	return out
}

// TablesMap maps an exposed table name (alias or name, folded) to the
// physical tables behind it. Merging concatenates per key.
type TablesMap struct {
	keys []string
	refs map[string][]TableRef
}

func newTablesMap() *TablesMap {
	return &TablesMap{refs: make(map[string][]TableRef)}
}

// Len returns the number of keys.
func (m *TablesMap) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order.
func (m *TablesMap) Keys() []string { return m.keys }

// Get returns the refs exposed under name.
func (m *TablesMap) Get(name string) ([]TableRef, bool) {
	refs, ok := m.refs[schema.Fold(name)]
	return refs, ok
}

// add appends refs under key. The stored slice is always owned by m.
func (m *TablesMap) add(key string, refs ...TableRef) {
	key = schema.Fold(key)
	existing, ok := m.refs[key]
	if !ok {
		m.keys = append(m.keys, key)
		m.refs[key] = append([]TableRef(nil), refs...)
		return
	}
	m.refs[key] = append(existing, refs...)
}

// merge concatenates every entry of other into m.
func (m *TablesMap) merge(other *TablesMap) {
	for _, k := range other.keys {
		m.add(k, other.refs[k]...)
	}
}

// allRefs concatenates the refs of every key in order.
func (m *TablesMap) allRefs() []TableRef {
	var out []TableRef
	for _, k := range m.keys {
		out = append(out, m.refs[k]...)
	}
	return out
}
