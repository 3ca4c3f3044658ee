// Package schema holds the immutable table/column catalog a query is bound
// against.
//
// Lookups are case-insensitive: names are compared by their Unicode case
// fold, and descriptors keep the canonical spelling from the source.
package schema

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded key for a table or column name.
func Fold(name string) string {
	// A Caser carries state; make one per call so Fold is safe for
	// concurrent use.
	return cases.Fold().String(name)
}

// TableSpec describes one table when building a Snapshot.
type TableSpec struct {
	Name    string   `yaml:"name"`
	Columns []string `yaml:"columns"`
}

// ColumnDescriptor is a column of a TableDescriptor.
type ColumnDescriptor struct {
	Name string // canonical spelling
}

// TableDescriptor is one table of a Snapshot.
type TableDescriptor struct {
	Name    string // canonical spelling
	columns map[string]ColumnDescriptor
	order   []string // folded keys in declaration order
}

// Columns returns the table's columns in declaration order.
func (t *TableDescriptor) Columns() []ColumnDescriptor {
	cols := make([]ColumnDescriptor, len(t.order))
	for i, key := range t.order {
		cols[i] = t.columns[key]
	}
	return cols
}

// LookupColumn finds a column by case-insensitive name.
func (t *TableDescriptor) LookupColumn(name string) (ColumnDescriptor, bool) {
	c, ok := t.columns[Fold(name)]
	return c, ok
}

// Snapshot is an immutable catalog of tables. It is safe for concurrent use.
type Snapshot struct {
	tables map[string]*TableDescriptor
	order  []string
}

// BuildError reports two names that collide case-insensitively but differ
// in their canonical spelling.
type BuildError struct {
	Table    string // table the collision is in; empty for table collisions
	Name     string
	Existing string
}

func (e *BuildError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("schema: table %q collides with %q", e.Name, e.Existing)
	}
	return fmt.Sprintf("schema: column %q collides with %q in table %q", e.Name, e.Existing, e.Table)
}

// Build creates a Snapshot. Specs with the exact same table name are merged;
// names equal only up to case are rejected with *BuildError.
func Build(specs []TableSpec) (*Snapshot, error) {
	s := &Snapshot{tables: make(map[string]*TableDescriptor, len(specs))}

	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("schema: table with empty name")
		}
		key := Fold(spec.Name)
		tbl, ok := s.tables[key]
		switch {
		case !ok:
			tbl = &TableDescriptor{Name: spec.Name, columns: make(map[string]ColumnDescriptor, len(spec.Columns))}
			s.tables[key] = tbl
			s.order = append(s.order, key)
		case tbl.Name != spec.Name:
			return nil, &BuildError{Name: spec.Name, Existing: tbl.Name}
		}

		for _, col := range spec.Columns {
			if col == "" {
				return nil, fmt.Errorf("schema: column with empty name in table %q", spec.Name)
			}
			ckey := Fold(col)
			existing, ok := tbl.columns[ckey]
			if !ok {
				tbl.columns[ckey] = ColumnDescriptor{Name: col}
				tbl.order = append(tbl.order, ckey)
				continue
			}
			if existing.Name != col {
				return nil, &BuildError{Table: tbl.Name, Name: col, Existing: existing.Name}
			}
		}
	}
	return s, nil
}

// MustBuild is like Build but panics on error. Intended for tests and
// package-level fixtures.
func MustBuild(specs []TableSpec) *Snapshot {
	s, err := Build(specs)
	if err != nil {
		panic(err)
	}
	return s
}

// LookupTable finds a table by case-insensitive name.
func (s *Snapshot) LookupTable(name string) (*TableDescriptor, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.tables[Fold(name)]
	return t, ok
}

// LookupColumn finds a column of a table by case-insensitive names.
func (s *Snapshot) LookupColumn(table, column string) (ColumnDescriptor, bool) {
	t, ok := s.LookupTable(table)
	if !ok {
		return ColumnDescriptor{}, false
	}
	return t.LookupColumn(column)
}

// Tables returns all tables in declaration order.
func (s *Snapshot) Tables() []*TableDescriptor {
	tables := make([]*TableDescriptor, len(s.order))
	for i, key := range s.order {
		tables[i] = s.tables[key]
	}
	return tables
}

// TableNames returns the canonical table names, sorted.
func (s *Snapshot) TableNames() []string {
	names := make([]string, 0, len(s.tables))
	for _, t := range s.tables {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
