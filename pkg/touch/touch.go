// Package touch records which schema elements a query references.
//
// A touch is a (table, column, value) triple. A table touch has no column;
// a column touch has no value; a value touch records a string literal a
// column was compared against. Counts are occurrence counts, not sets: the
// same column referenced through an alias is counted again.
package touch

import (
	"fmt"
	"sort"
	"strings"
)

// Key identifies a touched element. Column and Value are null unless the
// matching Has flag is set, which keeps null distinct from the empty string.
type Key struct {
	Table     string
	Column    string
	Value     string
	HasColumn bool
	HasValue  bool
}

// TableKey returns the key for a table-only touch.
func TableKey(table string) Key {
	return Key{Table: table}
}

// ColumnKey returns the key for a column touch.
func ColumnKey(table, column string) Key {
	return Key{Table: table, Column: column, HasColumn: true}
}

// ValueKey returns the key for a column compared against a string value.
func ValueKey(table, column, value string) Key {
	return Key{Table: table, Column: column, Value: value, HasColumn: true, HasValue: true}
}

// IsTable reports whether k is a table-only touch.
func (k Key) IsTable() bool { return !k.HasColumn }

// IsColumn reports whether k is a column touch without a value.
func (k Key) IsColumn() bool { return k.HasColumn && !k.HasValue }

// IsValue reports whether k carries a value.
func (k Key) IsValue() bool { return k.HasValue }

// String renders the key as (table, column, value) with - for null parts.
func (k Key) String() string {
	col, val := "-", "-"
	if k.HasColumn {
		col = k.Column
	}
	if k.HasValue {
		val = fmt.Sprintf("%q", k.Value)
	}
	return fmt.Sprintf("(%s, %s, %s)", k.Table, col, val)
}

// less orders keys by table, then column, then value, with null first.
func (k Key) less(o Key) bool {
	if k.Table != o.Table {
		return k.Table < o.Table
	}
	if k.HasColumn != o.HasColumn {
		return !k.HasColumn
	}
	if k.Column != o.Column {
		return k.Column < o.Column
	}
	if k.HasValue != o.HasValue {
		return !k.HasValue
	}
	return k.Value < o.Value
}

// Counts maps touched elements to their occurrence counts.
type Counts map[Key]int

// Keys returns the touched keys, sorted.
func (c Counts) Keys() []Key {
	keys := make([]Key, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}

// Tables returns the distinct touched table names, sorted.
func (c Counts) Tables() []string {
	seen := make(map[string]struct{})
	for k := range c {
		seen[k.Table] = struct{}{}
	}
	tables := make([]string, 0, len(seen))
	for t := range seen {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}

// Columns returns the distinct touched columns as column keys, sorted.
// Value touches contribute their column.
func (c Counts) Columns() []Key {
	seen := make(map[Key]struct{})
	for k := range c {
		if k.HasColumn {
			seen[ColumnKey(k.Table, k.Column)] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Values returns the value touches, sorted.
func (c Counts) Values() []Key {
	seen := make(map[Key]struct{})
	for k := range c {
		if k.HasValue {
			seen[k] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// Merge adds the counts of other into c.
func (c Counts) Merge(other Counts) {
	for k, n := range other {
		c[k] += n
	}
}

// Clone returns a copy of c.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for k, n := range c {
		out[k] = n
	}
	return out
}

// String renders the counts one key per line, sorted.
func (c Counts) String() string {
	var sb strings.Builder
	for i, k := range c.Keys() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s: %d", k, c[k])
	}
	return sb.String()
}

func sortedKeys(set map[Key]struct{}) []Key {
	keys := make([]Key, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}

// Tracker accumulates touches during a single bind. It is not safe for
// concurrent use.
type Tracker struct {
	counts Counts
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{counts: make(Counts)}
}

// Record increments the count for k.
func (t *Tracker) Record(k Key) {
	t.counts[k]++
}

// Len returns the number of distinct keys recorded.
func (t *Tracker) Len() int {
	return len(t.counts)
}

// Counts returns a snapshot of the recorded counts.
func (t *Tracker) Counts() Counts {
	return t.counts.Clone()
}
