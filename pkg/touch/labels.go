package touch

import (
	"sort"

	"github.com/leapstack-labs/sqlbind/pkg/schema"
)

// Labels splits a schema into the elements a query touched (positives) and
// the ones it did not (negatives), the training labels for a ranker.
type Labels struct {
	PositiveTables  []string
	NegativeTables  []string
	PositiveColumns []Key
	NegativeColumns []Key
}

// Labels derives ranker labels for c against the snapshot. Touches are
// matched case-insensitively; touches naming elements that are not in the
// snapshot are ignored.
func (c Counts) Labels(s *schema.Snapshot) Labels {
	touchedTables := make(map[string]struct{})
	touchedColumns := make(map[[2]string]struct{})
	for k := range c {
		touchedTables[schema.Fold(k.Table)] = struct{}{}
		if k.HasColumn {
			touchedColumns[[2]string{schema.Fold(k.Table), schema.Fold(k.Column)}] = struct{}{}
		}
	}

	var l Labels
	for _, tbl := range s.Tables() {
		tkey := schema.Fold(tbl.Name)
		if _, ok := touchedTables[tkey]; ok {
			l.PositiveTables = append(l.PositiveTables, tbl.Name)
		} else {
			l.NegativeTables = append(l.NegativeTables, tbl.Name)
		}

		for _, col := range tbl.Columns() {
			key := ColumnKey(tbl.Name, col.Name)
			if _, ok := touchedColumns[[2]string{tkey, schema.Fold(col.Name)}]; ok {
				l.PositiveColumns = append(l.PositiveColumns, key)
			} else {
				l.NegativeColumns = append(l.NegativeColumns, key)
			}
		}
	}

	sort.Strings(l.PositiveTables)
	sort.Strings(l.NegativeTables)
	sort.Slice(l.PositiveColumns, func(i, j int) bool { return l.PositiveColumns[i].less(l.PositiveColumns[j]) })
	sort.Slice(l.NegativeColumns, func(i, j int) bool { return l.NegativeColumns[i].less(l.NegativeColumns[j]) })
	return l
}
