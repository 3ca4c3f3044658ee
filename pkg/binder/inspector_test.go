package binder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbind/internal/testutil"
	"github.com/leapstack-labs/sqlbind/pkg/binder"
	"github.com/leapstack-labs/sqlbind/pkg/parser"
	"github.com/leapstack-labs/sqlbind/pkg/schema"
	"github.com/leapstack-labs/sqlbind/pkg/touch"
)

func shopSnapshot(t *testing.T) *schema.Snapshot {
	t.Helper()
	snap, err := schema.LoadFile("../schema/testdata/shop.yaml")
	require.NoError(t, err)
	return snap
}

func TestResolveAndFix(t *testing.T) {
	snap := testutil.Snapshot(t, map[string][]string{
		"ORDER":    {"id", "status"},
		"customer": {"id", "name"},
	})

	tests := []struct {
		name     string
		sql      string
		expected string
	}{
		{
			name:     "reserved table and qualifier",
			sql:      "SELECT order.id FROM order",
			expected: `SELECT "ORDER".id FROM "ORDER"`,
		},
		{
			name:     "aliased reserved table",
			sql:      "SELECT o.status FROM order o WHERE o.status = 'open'",
			expected: `SELECT o.status FROM "ORDER" AS o WHERE o.status = 'open'`,
		},
		{
			name:     "ordinary names are untouched",
			sql:      "SELECT name FROM customer",
			expected: "SELECT name FROM customer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixed, err := binder.ResolveAndFix(tt.sql, snap, "snowflake", binder.WithLogger(testutil.NewTestLogger(t)))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, fixed)

			// The fixed query binds to the same touches.
			before, err := inspect(t, snap, "snowflake", tt.sql)
			require.NoError(t, err)
			after, err := inspect(t, snap, "snowflake", fixed)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestResolveAndFix_Error(t *testing.T) {
	snap := testutil.Snapshot(t, map[string][]string{"ORDER": {"id"}})
	_, err := binder.ResolveAndFix("SELECT missing FROM order", snap, "snowflake")
	assert.ErrorIs(t, err, binder.ErrColumnNotFound)
}

func TestInspector_RewritesSyntaxTree(t *testing.T) {
	snap := testutil.Snapshot(t, map[string][]string{"ORDER": {"id"}})
	i, err := binder.New(snap, "snowflake")
	require.NoError(t, err)

	stmt, err := parser.Parse("SELECT id FROM order", i.Dialect())
	require.NoError(t, err)
	_, err = i.Inspect(stmt)
	require.NoError(t, err)

	// A second bind over the rewritten tree gives the same result.
	counts, err := i.Inspect(stmt)
	require.NoError(t, err)
	assert.Equal(t, touch.Counts{
		tbl("ORDER"):       1,
		col("ORDER", "id"): 1,
	}, counts)
}

func TestInspectAll(t *testing.T) {
	snap := shopSnapshot(t)
	i, err := binder.New(snap, "postgres",
		binder.WithLogger(testutil.NewTestLogger(t)),
		binder.WithConcurrency(2),
	)
	require.NoError(t, err)

	sqls := []string{
		"SELECT id FROM orders WHERE customer_id = 'c1'",
		"SELECT nope FROM orders",
		"SELECT o.id, SUM(li.quantity) FROM orders o JOIN line_items li ON o.id = li.order_id GROUP BY o.id",
		"SELECT FROM",
	}
	results, err := i.InspectAll(context.Background(), sqls)
	require.NoError(t, err)
	require.Len(t, results, len(sqls))

	for idx, r := range results {
		assert.Equal(t, sqls[idx], r.SQL)
	}

	assert.True(t, results[0].OK())
	assert.Equal(t, 1, results[0].Counts[val("orders", "customer_id", "c1")])

	assert.False(t, results[1].OK())
	assert.ErrorIs(t, results[1].Err, binder.ErrColumnNotFound)

	require.True(t, results[2].OK())
	assert.Equal(t, []string{"line_items", "orders"}, results[2].Counts.Tables())
	assert.Equal(t, 3, results[2].Counts[col("orders", "id")])

	assert.ErrorIs(t, results[3].Err, binder.ErrSQLParse)
}

func TestInspectAll_MatchesSequential(t *testing.T) {
	snap := shopSnapshot(t)
	i, err := binder.New(snap, "snowflake", binder.WithConcurrency(4))
	require.NoError(t, err)

	sqls := make([]string, 0, 32)
	for range 8 {
		sqls = append(sqls,
			"SELECT id, total_dollars FROM orders WHERE customer_id IN ('c1', 'c2')",
			"SELECT order.id FROM order",
			"SELECT * FROM line_items",
			"SELECT c.name FROM Customers c",
		)
	}

	results, err := i.InspectAll(context.Background(), sqls)
	require.NoError(t, err)
	for idx, r := range results {
		require.NoError(t, r.Err, sqls[idx])
		want, err := i.InspectSQL(sqls[idx])
		require.NoError(t, err)
		assert.Equal(t, want, r.Counts, sqls[idx])
	}
}

func TestInspectAll_Cancelled(t *testing.T) {
	i, err := binder.New(shopSnapshot(t), "ansi")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = i.InspectAll(ctx, []string{"SELECT id FROM orders"})
	assert.ErrorIs(t, err, context.Canceled)
}
