package touch_test

import (
	"testing"

	"github.com/leapstack-labs/sqlbind/pkg/schema"
	"github.com/leapstack-labs/sqlbind/pkg/touch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_NullIsDistinctFromEmpty(t *testing.T) {
	assert.NotEqual(t, touch.TableKey("t"), touch.ColumnKey("t", ""))
	assert.NotEqual(t, touch.ColumnKey("t", "c"), touch.ValueKey("t", "c", ""))

	assert.True(t, touch.TableKey("t").IsTable())
	assert.True(t, touch.ColumnKey("t", "c").IsColumn())
	assert.True(t, touch.ValueKey("t", "c", "v").IsValue())
	assert.False(t, touch.ValueKey("t", "c", "v").IsColumn())
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "(t, -, -)", touch.TableKey("t").String())
	assert.Equal(t, "(t, c, -)", touch.ColumnKey("t", "c").String())
	assert.Equal(t, `(t, c, "v")`, touch.ValueKey("t", "c", "v").String())
}

func TestTracker(t *testing.T) {
	tr := touch.NewTracker()
	tr.Record(touch.TableKey("t"))
	tr.Record(touch.ColumnKey("t", "c"))
	tr.Record(touch.ColumnKey("t", "c"))

	counts := tr.Counts()
	assert.Equal(t, touch.Counts{
		touch.TableKey("t"):       1,
		touch.ColumnKey("t", "c"): 2,
	}, counts)
	assert.Equal(t, 2, tr.Len())

	// The snapshot is detached from the tracker.
	counts[touch.TableKey("t")] = 10
	assert.Equal(t, 1, tr.Counts()[touch.TableKey("t")])
}

func TestCounts_Views(t *testing.T) {
	c := touch.Counts{
		touch.TableKey("b"):              1,
		touch.TableKey("a"):              1,
		touch.ColumnKey("b", "y"):        2,
		touch.ValueKey("a", "x", "v2"):   1,
		touch.ValueKey("a", "x", "v1"):   1,
		touch.ColumnKey("a", "x"):        1,
		touch.ValueKey("a", "z", "only"): 1,
	}

	assert.Equal(t, []touch.Key{
		touch.TableKey("a"),
		touch.ColumnKey("a", "x"),
		touch.ValueKey("a", "x", "v1"),
		touch.ValueKey("a", "x", "v2"),
		touch.ValueKey("a", "z", "only"),
		touch.TableKey("b"),
		touch.ColumnKey("b", "y"),
	}, c.Keys())

	assert.Equal(t, []string{"a", "b"}, c.Tables())
	assert.Equal(t, []touch.Key{
		touch.ColumnKey("a", "x"),
		touch.ColumnKey("a", "z"),
		touch.ColumnKey("b", "y"),
	}, c.Columns())
	assert.Equal(t, []touch.Key{
		touch.ValueKey("a", "x", "v1"),
		touch.ValueKey("a", "x", "v2"),
		touch.ValueKey("a", "z", "only"),
	}, c.Values())
}

func TestCounts_Merge(t *testing.T) {
	c := touch.Counts{touch.TableKey("a"): 1}
	c.Merge(touch.Counts{touch.TableKey("a"): 2, touch.TableKey("b"): 1})

	assert.Equal(t, touch.Counts{touch.TableKey("a"): 3, touch.TableKey("b"): 1}, c)
}

func TestCounts_String(t *testing.T) {
	c := touch.Counts{touch.ColumnKey("a", "x"): 2, touch.TableKey("a"): 1}
	assert.Equal(t, "(a, -, -): 1\n(a, x, -): 2", c.String())
}

func TestCounts_Labels(t *testing.T) {
	snap := schema.MustBuild([]schema.TableSpec{
		{Name: "orders", Columns: []string{"id", "total"}},
		{Name: "customers", Columns: []string{"id", "name"}},
		{Name: "products", Columns: []string{"sku"}},
	})
	c := touch.Counts{
		touch.TableKey("orders"):                   1,
		touch.ColumnKey("orders", "TOTAL"):         1,
		touch.ValueKey("customers", "name", "bob"): 1,
		touch.TableKey("ghost"):                    1,
	}

	l := c.Labels(snap)
	require.NotNil(t, l.PositiveTables)
	assert.Equal(t, []string{"customers", "orders"}, l.PositiveTables)
	assert.Equal(t, []string{"products"}, l.NegativeTables)
	assert.Equal(t, []touch.Key{
		touch.ColumnKey("customers", "name"),
		touch.ColumnKey("orders", "total"),
	}, l.PositiveColumns)
	assert.Equal(t, []touch.Key{
		touch.ColumnKey("customers", "id"),
		touch.ColumnKey("orders", "id"),
		touch.ColumnKey("products", "sku"),
	}, l.NegativeColumns)
}
