package parser_test

import (
	"testing"

	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/dialect"
	_ "github.com/leapstack-labs/sqlbind/pkg/dialects/all"
	"github.com/leapstack-labs/sqlbind/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlbind/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlbind/pkg/dialects/snowflake"
	"github.com/leapstack-labs/sqlbind/pkg/dialects/tsql"
	"github.com/leapstack-labs/sqlbind/pkg/parser"
	"github.com/leapstack-labs/sqlbind/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSelect(t *testing.T, sql string, d *dialect.Dialect) *ast.Select {
	t.Helper()
	stmt, err := parser.Parse(sql, d)
	require.NoError(t, err)
	sel, ok := stmt.(*ast.Select)
	require.True(t, ok, "expected *ast.Select, got %T", stmt)
	return sel
}

func TestParse_SimpleSelect(t *testing.T) {
	sel := parseSelect(t, "SELECT col1, col2 AS c FROM table1, table2", ansi.ANSI)

	require.Len(t, sel.Expressions, 2)
	col, ok := sel.Expressions[0].(*ast.Column)
	require.True(t, ok)
	assert.Equal(t, "col1", col.Name.Name)
	assert.Nil(t, col.Table)

	alias, ok := sel.Expressions[1].(*ast.Alias)
	require.True(t, ok)
	assert.Equal(t, "c", alias.Name.Name)

	require.NotNil(t, sel.From)
	require.Len(t, sel.From.Sources, 2)
	assert.Equal(t, "table2", sel.From.Sources[1].(*ast.Table).Name.Name)
}

func TestParse_BareAlias(t *testing.T) {
	sel := parseSelect(t, "SELECT t1.col1 c1 FROM table1 t1", ansi.ANSI)

	alias := sel.Expressions[0].(*ast.Alias)
	assert.Equal(t, "c1", alias.Name.Name)
	col := alias.Expr.(*ast.Column)
	assert.Equal(t, "t1", col.Table.Name)

	tbl := sel.From.Sources[0].(*ast.Table)
	assert.Equal(t, "table1", tbl.Name.Name)
	assert.Equal(t, "t1", tbl.Alias.Name)
}

func TestParse_QualifiedTable(t *testing.T) {
	sel := parseSelect(t, "SELECT a FROM db.public.orders AS o", ansi.ANSI)

	tbl := sel.From.Sources[0].(*ast.Table)
	assert.Equal(t, "db", tbl.Catalog.Name)
	assert.Equal(t, "public", tbl.Schema.Name)
	assert.Equal(t, "orders", tbl.Name.Name)
	assert.Equal(t, "o", tbl.Alias.Name)
}

func TestParse_Stars(t *testing.T) {
	sel := parseSelect(t, "SELECT *, t.* FROM t", ansi.ANSI)
	require.Len(t, sel.Expressions, 2)

	star := sel.Expressions[0].(*ast.Star)
	assert.Nil(t, star.Table)
	star = sel.Expressions[1].(*ast.Star)
	assert.Equal(t, "t", star.Table.Name)
}

func TestParse_CountStar(t *testing.T) {
	sel := parseSelect(t, "SELECT COUNT(*), count(DISTINCT a) FROM t", ansi.ANSI)

	fn := sel.Expressions[0].(*ast.Func)
	assert.Equal(t, "COUNT", fn.Name)
	assert.True(t, fn.Star)
	assert.Empty(t, fn.Arguments)

	fn = sel.Expressions[1].(*ast.Func)
	assert.True(t, fn.Distinct)
	require.Len(t, fn.Arguments, 1)
}

func TestParse_Where(t *testing.T) {
	sel := parseSelect(t, "SELECT a FROM t WHERE b = 'x' AND c > 1 OR NOT d", ansi.ANSI)

	or, ok := sel.Where.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.OR, or.Op)

	and := or.Left.(*ast.Binary)
	assert.Equal(t, token.AND, and.Op)

	eq := and.Left.(*ast.Binary)
	assert.Equal(t, token.EQ, eq.Op)
	assert.Equal(t, "b", eq.Left.(*ast.Column).Name.Name)
	lit := eq.Right.(*ast.Literal)
	assert.True(t, lit.IsString())
	assert.Equal(t, "x", lit.Value)

	not := or.Right.(*ast.Unary)
	assert.Equal(t, token.NOT, not.Op)
}

func TestParse_Precedence(t *testing.T) {
	sel := parseSelect(t, "SELECT a + b * c FROM t", ansi.ANSI)

	add := sel.Expressions[0].(*ast.Binary)
	assert.Equal(t, token.PLUS, add.Op)
	mul := add.Right.(*ast.Binary)
	assert.Equal(t, token.STAR, mul.Op)
}

func TestParse_Predicates(t *testing.T) {
	sel := parseSelect(t, `SELECT a FROM t
		WHERE a IN ('x', 'y')
		  AND b NOT IN (SELECT b FROM u)
		  AND c BETWEEN 1 AND 10
		  AND d IS NOT NULL
		  AND e NOT LIKE 'p%'
		  AND EXISTS (SELECT 1 FROM u)`, ansi.ANSI)

	var preds []ast.Expr
	var walk func(e ast.Expr)
	walk = func(e ast.Expr) {
		if b, ok := e.(*ast.Binary); ok && b.Op == token.AND {
			walk(b.Left)
			walk(b.Right)
			return
		}
		preds = append(preds, e)
	}
	walk(sel.Where)
	require.Len(t, preds, 6)

	in := preds[0].(*ast.In)
	assert.False(t, in.Not)
	assert.Len(t, in.Values, 2)

	notIn := preds[1].(*ast.In)
	assert.True(t, notIn.Not)
	require.NotNil(t, notIn.Query)

	between := preds[2].(*ast.Between)
	assert.Equal(t, "1", between.Low.(*ast.Literal).Value)
	assert.Equal(t, "10", between.High.(*ast.Literal).Value)

	is := preds[3].(*ast.Is)
	assert.True(t, is.Not)
	assert.Equal(t, ast.LiteralNull, is.Value.Kind)

	like := preds[4].(*ast.Like)
	assert.True(t, like.Not)
	assert.Equal(t, token.LIKE, like.Op)

	_, ok := preds[5].(*ast.Exists)
	assert.True(t, ok)
}

func TestParse_Joins(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		kind    string
		natural bool
		hasOn   bool
		using   int
	}{
		{"plain join", "SELECT 1 FROM a JOIN b ON a.x = b.x", "", false, true, 0},
		{"inner join", "SELECT 1 FROM a INNER JOIN b ON a.x = b.x", "INNER", false, true, 0},
		{"left outer join", "SELECT 1 FROM a LEFT OUTER JOIN b ON a.x = b.x", "LEFT", false, true, 0},
		{"right join", "SELECT 1 FROM a RIGHT JOIN b ON a.x = b.x", "RIGHT", false, true, 0},
		{"full join", "SELECT 1 FROM a FULL JOIN b ON a.x = b.x", "FULL", false, true, 0},
		{"cross join", "SELECT 1 FROM a CROSS JOIN b", "CROSS", false, false, 0},
		{"natural join", "SELECT 1 FROM a NATURAL JOIN b", "", true, false, 0},
		{"using", "SELECT 1 FROM a JOIN b USING (x, y)", "", false, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := parseSelect(t, tt.sql, ansi.ANSI)
			require.Len(t, sel.Joins, 1)

			j := sel.Joins[0]
			assert.Equal(t, tt.kind, j.Kind)
			assert.Equal(t, tt.natural, j.Natural)
			assert.Equal(t, tt.hasOn, j.On != nil)
			assert.Len(t, j.Using, tt.using)
			assert.Equal(t, "b", j.Target.(*ast.Table).Name.Name)
		})
	}
}

func TestParse_Subqueries(t *testing.T) {
	sel := parseSelect(t, "SELECT col1 FROM (SELECT col1 FROM table2) AS t1", ansi.ANSI)

	sq := sel.From.Sources[0].(*ast.Subquery)
	assert.Equal(t, "t1", sq.Alias.Name)
	inner := sq.Query.(*ast.Select)
	assert.Equal(t, "table2", inner.From.Sources[0].(*ast.Table).Name.Name)

	sel = parseSelect(t, "SELECT (SELECT max(x) FROM u) AS m FROM t", ansi.ANSI)
	alias := sel.Expressions[0].(*ast.Alias)
	_, ok := alias.Expr.(*ast.Subquery)
	assert.True(t, ok)
}

func TestParse_CTE(t *testing.T) {
	sel := parseSelect(t, "WITH a AS (SELECT 1 AS x), b (y) AS (SELECT x FROM a) SELECT y FROM b", ansi.ANSI)

	require.NotNil(t, sel.With)
	require.Len(t, sel.With.CTEs, 2)
	assert.Equal(t, "a", sel.With.CTEs[0].Name.Name)
	assert.Equal(t, "b", sel.With.CTEs[1].Name.Name)
	assert.Empty(t, sel.With.CTEs[0].Columns)
	require.Len(t, sel.With.CTEs[1].Columns, 1)
	assert.Equal(t, "y", sel.With.CTEs[1].Columns[0].Name)
}

func TestParse_SetOperations(t *testing.T) {
	stmt, err := parser.Parse("SELECT a FROM t UNION ALL SELECT b FROM u EXCEPT SELECT c FROM v", ansi.ANSI)
	require.NoError(t, err)

	outer, ok := stmt.(*ast.Union)
	require.True(t, ok)
	assert.Equal(t, ast.SetOpExcept, outer.Op)

	inner := outer.Left.(*ast.Union)
	assert.Equal(t, ast.SetOpUnion, inner.Op)
	assert.True(t, inner.All)
}

func TestParse_SetOperationModifiers(t *testing.T) {
	stmt, err := parser.Parse("SELECT a FROM t UNION SELECT b FROM u ORDER BY a DESC LIMIT 10 OFFSET 2", ansi.ANSI)
	require.NoError(t, err)

	u, ok := stmt.(*ast.Union)
	require.True(t, ok)
	require.Len(t, u.OrderBy, 1)
	assert.True(t, u.OrderBy[0].Desc)
	assert.Equal(t, "10", u.Limit.(*ast.Literal).Value)
	assert.Equal(t, "2", u.Offset.(*ast.Literal).Value)

	right := u.Right.(*ast.Select)
	assert.Empty(t, right.OrderBy)
	assert.Nil(t, right.Limit)
	assert.Nil(t, right.Offset)
}

func TestParse_ParenthesisedBranchKeepsModifiers(t *testing.T) {
	stmt, err := parser.Parse("(SELECT a FROM t ORDER BY a LIMIT 1) UNION ALL SELECT a FROM u", ansi.ANSI)
	require.NoError(t, err)

	u := stmt.(*ast.Union)
	assert.Empty(t, u.OrderBy)
	assert.Nil(t, u.Limit)

	left := u.Left.(*ast.Select)
	require.Len(t, left.OrderBy, 1)
	assert.Equal(t, "1", left.Limit.(*ast.Literal).Value)
}

func TestParse_SnowflakeMinus(t *testing.T) {
	stmt, err := parser.Parse("SELECT a FROM t MINUS SELECT a FROM u", snowflake.Snowflake)
	require.NoError(t, err)
	u := stmt.(*ast.Union)
	assert.Equal(t, ast.SetOpExcept, u.Op)
}

func TestParse_ClausesInOrder(t *testing.T) {
	sel := parseSelect(t, `SELECT a, SUM(b) FROM t WHERE c = 1 GROUP BY a HAVING SUM(b) > 2
		ORDER BY a DESC NULLS LAST LIMIT 10 OFFSET 5`, ansi.ANSI)

	assert.NotNil(t, sel.Where)
	assert.Len(t, sel.GroupBy, 1)
	assert.NotNil(t, sel.Having)
	require.Len(t, sel.OrderBy, 1)
	assert.True(t, sel.OrderBy[0].Desc)
	require.NotNil(t, sel.OrderBy[0].NullsFirst)
	assert.False(t, *sel.OrderBy[0].NullsFirst)
	assert.Equal(t, "10", sel.Limit.(*ast.Literal).Value)
	assert.Equal(t, "5", sel.Offset.(*ast.Literal).Value)
}

func TestParse_Qualify(t *testing.T) {
	sel := parseSelect(t, "SELECT a FROM t QUALIFY ROW_NUMBER() OVER (PARTITION BY a ORDER BY b) = 1", snowflake.Snowflake)
	require.NotNil(t, sel.Qualify)

	// Without QUALIFY support the word is an alias for t.
	sel = parseSelect(t, "SELECT a FROM t qualify", postgres.Postgres)
	assert.Nil(t, sel.Qualify)
	assert.Equal(t, "qualify", sel.From.Sources[0].(*ast.Table).Alias.Name)
}

func TestParse_Top(t *testing.T) {
	sel := parseSelect(t, "SELECT TOP 5 a FROM t", tsql.TSQL)
	assert.Equal(t, "5", sel.Limit.(*ast.Literal).Value)
	require.Len(t, sel.Expressions, 1)
}

func TestParse_WindowAndFilter(t *testing.T) {
	sel := parseSelect(t, `SELECT
		SUM(a) FILTER (WHERE b > 0) AS s,
		ROW_NUMBER() OVER (PARTITION BY c ORDER BY d ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) AS rn
		FROM t`, postgres.Postgres)

	filter := sel.Expressions[0].(*ast.Alias).Expr.(*ast.Filter)
	assert.Equal(t, "SUM", filter.Func.(*ast.Func).Name)
	assert.NotNil(t, filter.Where)

	w := sel.Expressions[1].(*ast.Alias).Expr.(*ast.Window)
	assert.Equal(t, "ROW_NUMBER", w.Func.(*ast.Func).Name)
	assert.Len(t, w.PartitionBy, 1)
	assert.Len(t, w.OrderBy, 1)
	assert.Equal(t, "ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW", w.Frame)
}

func TestParse_CaseCastExtract(t *testing.T) {
	sel := parseSelect(t, `SELECT
		CASE WHEN a = 1 THEN 'one' ELSE 'other' END,
		CAST(b AS VARCHAR(10)),
		c::int,
		EXTRACT(year FROM d),
		CURRENT_DATE
		FROM t`, postgres.Postgres)
	require.Len(t, sel.Expressions, 5)

	c := sel.Expressions[0].(*ast.Case)
	assert.Len(t, c.Whens, 1)
	assert.NotNil(t, c.Else)

	cast := sel.Expressions[1].(*ast.Cast)
	assert.Equal(t, "VARCHAR(10)", cast.Type)

	cast = sel.Expressions[2].(*ast.Cast)
	assert.Equal(t, "INT", cast.Type)

	extract := sel.Expressions[3].(*ast.Func)
	assert.Equal(t, "EXTRACT", extract.Name)
	require.Len(t, extract.Arguments, 2)
	assert.Equal(t, ast.LiteralKeyword, extract.Arguments[0].(*ast.Literal).Kind)
	assert.Equal(t, "d", extract.Arguments[1].(*ast.Column).Name.Name)

	fn := sel.Expressions[4].(*ast.Func)
	assert.Equal(t, "CURRENT_DATE", fn.Name)
	assert.True(t, fn.Niladic)
}

func TestParse_ReservedWordTableName(t *testing.T) {
	sel := parseSelect(t, "SELECT order.id FROM order", snowflake.Snowflake)

	col := sel.Expressions[0].(*ast.Column)
	assert.Equal(t, "order", col.Table.Name)
	assert.Equal(t, "order", sel.From.Sources[0].(*ast.Table).Name.Name)
}

func TestParse_QuotedNames(t *testing.T) {
	sel := parseSelect(t, `SELECT "Col" FROM "My Table"`, ansi.ANSI)

	col := sel.Expressions[0].(*ast.Column)
	assert.True(t, col.Name.Quoted)
	assert.Equal(t, "Col", col.Name.Name)
	assert.Equal(t, "My Table", sel.From.Sources[0].(*ast.Table).Name.Name)
}

func TestParseDialect(t *testing.T) {
	_, err := parser.ParseDialect("SELECT 1", "snowflake")
	require.NoError(t, err)

	_, err = parser.ParseDialect("SELECT 1", "oracle")
	var unknown *parser.UnknownDialectError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "oracle", unknown.Name)
}

func TestParse_NilDialect(t *testing.T) {
	_, err := parser.Parse("SELECT 1", nil)
	require.ErrorIs(t, err, dialect.ErrDialectRequired)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"empty", ""},
		{"not a query", "DELETE FROM t"},
		{"missing select list", "SELECT FROM t"},
		{"unclosed paren", "SELECT (a FROM t"},
		{"trailing input", "SELECT a FROM t t2 t3"},
		{"join without JOIN", "SELECT a FROM t LEFT b"},
		{"case without when", "SELECT CASE END FROM t"},
		{"nulls without side", "SELECT a FROM t ORDER BY a NULLS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.sql, ansi.ANSI)
			require.Error(t, err)
			var parseErr *parser.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}
