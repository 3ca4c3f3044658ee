package parser_test

import (
	"testing"

	"github.com/leapstack-labs/sqlbind/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlbind/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlbind/pkg/dialects/snowflake"
	"github.com/leapstack-labs/sqlbind/pkg/dialects/tsql"
	"github.com/leapstack-labs/sqlbind/pkg/parser"
	"github.com/leapstack-labs/sqlbind/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(toks []token.Token) []token.TokenType {
	types := make([]token.TokenType, len(toks))
	for i, t := range toks {
		types[i] = t.Type
	}
	return types
}

func TestTokenize_Basic(t *testing.T) {
	toks, err := parser.Tokenize("SELECT a, b2 FROM t WHERE x >= 1.5 AND y <> 'z'", ansi.ANSI)
	require.NoError(t, err)

	assert.Equal(t, []token.TokenType{
		token.SELECT, token.IDENT, token.COMMA, token.IDENT, token.FROM, token.IDENT,
		token.WHERE, token.IDENT, token.GE, token.NUMBER, token.AND, token.IDENT,
		token.NE, token.STRING, token.EOF,
	}, tokenTypes(toks))
	assert.Equal(t, "1.5", toks[9].Literal)
	assert.Equal(t, "z", toks[13].Literal)
}

func TestTokenize_QuotedIdentifiers(t *testing.T) {
	toks, err := parser.Tokenize(`"Order"."a""b"`, ansi.ANSI)
	require.NoError(t, err)
	require.Len(t, toks, 4)

	assert.Equal(t, token.IDENT, toks[0].Type)
	assert.Equal(t, "Order", toks[0].Literal)
	assert.True(t, toks[0].Quoted)
	assert.Equal(t, `a"b`, toks[2].Literal)
	assert.True(t, toks[2].Quoted)
}

func TestTokenize_BracketIdentifiers(t *testing.T) {
	toks, err := parser.Tokenize("[order].[a]]b]", tsql.TSQL)
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, "order", toks[0].Literal)
	assert.True(t, toks[0].Quoted)
	assert.Equal(t, "a]b", toks[2].Literal)
}

func TestTokenize_StringEscape(t *testing.T) {
	toks, err := parser.Tokenize("'it''s'", ansi.ANSI)
	require.NoError(t, err)
	assert.Equal(t, "it's", toks[0].Literal)
}

func TestTokenize_Comments(t *testing.T) {
	toks, err := parser.Tokenize("SELECT -- trailing\n a /* block\ncomment */ FROM t", ansi.ANSI)
	require.NoError(t, err)
	assert.Equal(t, []token.TokenType{token.SELECT, token.IDENT, token.FROM, token.IDENT, token.EOF}, tokenTypes(toks))
	assert.Equal(t, 2, toks[1].Pos.Line)
}

func TestTokenize_DialectKeywords(t *testing.T) {
	sql := "qualify ilike top"

	toks, err := parser.Tokenize(sql, snowflake.Snowflake)
	require.NoError(t, err)
	assert.Equal(t, []token.TokenType{token.QUALIFY, token.ILIKE, token.IDENT, token.EOF}, tokenTypes(toks))

	toks, err = parser.Tokenize(sql, postgres.Postgres)
	require.NoError(t, err)
	assert.Equal(t, []token.TokenType{token.IDENT, token.ILIKE, token.IDENT, token.EOF}, tokenTypes(toks))

	toks, err = parser.Tokenize(sql, tsql.TSQL)
	require.NoError(t, err)
	assert.Equal(t, []token.TokenType{token.IDENT, token.IDENT, token.TOP, token.EOF}, tokenTypes(toks))
}

func TestTokenize_CastOperator(t *testing.T) {
	toks, err := parser.Tokenize("x::int", postgres.Postgres)
	require.NoError(t, err)
	assert.Equal(t, []token.TokenType{token.IDENT, token.DCOLON, token.IDENT, token.EOF}, tokenTypes(toks))

	_, err = parser.Tokenize("x::int", tsql.TSQL)
	var lexErr *parser.LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"unterminated string", "SELECT 'abc"},
		{"unterminated identifier", `SELECT "abc`},
		{"unterminated comment", "SELECT /* abc"},
		{"illegal character", "SELECT a ? b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Tokenize(tt.sql, ansi.ANSI)
			var lexErr *parser.LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, 1, lexErr.Pos.Line)
		})
	}
}
