package all_test

import (
	"testing"

	"github.com/leapstack-labs/sqlbind/pkg/dialect"
	_ "github.com/leapstack-labs/sqlbind/pkg/dialects/all"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinDialects(t *testing.T) {
	for _, name := range []string{"ansi", "postgres", "snowflake", "tsql"} {
		t.Run(name, func(t *testing.T) {
			d, ok := dialect.Get(name)
			require.True(t, ok, "%s should be registered", name)
			assert.Equal(t, name, d.Name)
		})
	}
}

func TestFeatureMatrix(t *testing.T) {
	tests := []struct {
		name    string
		filter  bool
		qualify bool
		top     bool
	}{
		{"ansi", true, false, false},
		{"postgres", true, false, false},
		{"snowflake", false, true, false},
		{"tsql", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := dialect.Get(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.filter, d.SupportsFilter)
			assert.Equal(t, tt.qualify, d.SupportsQualify)
			assert.Equal(t, tt.top, d.SupportsTop)
		})
	}
}

func TestSnowflakeReservedWords(t *testing.T) {
	d, ok := dialect.Get("snowflake")
	require.True(t, ok)

	assert.True(t, d.IsReservedWord("order"))
	assert.True(t, d.IsReservedWord("Group"))
	assert.False(t, d.IsReservedWord("orders"))
	assert.True(t, d.IsDatePartFunction("dateadd"))
}

func TestTSQLQuoting(t *testing.T) {
	d, ok := dialect.Get("tsql")
	require.True(t, ok)
	assert.Equal(t, "[order]", d.QuoteIdentifier("order"))
	assert.Equal(t, "[a]]b]", d.QuoteIdentifier("a]b"))
}
