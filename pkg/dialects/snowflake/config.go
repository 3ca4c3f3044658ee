package snowflake

import "github.com/leapstack-labs/sqlbind/pkg/dialect"

// Config is the Snowflake SQL dialect configuration.
// The Builder reads feature flags and wires the matching keywords.
var Config = &dialect.Config{
	Name: "snowflake",
	Identifiers: dialect.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: dialect.NormUppercase, // Snowflake normalizes to uppercase
	},

	SupportsQualify:      true,
	SupportsIlike:        true,
	SupportsRlike:        true,
	SupportsCastOperator: true,

	// Snowflake does NOT support these:
	// - FILTER (WHERE ...) on aggregates
	// - SELECT TOP n

	ReservedWords: snowflakeReservedWords,
	DatePartFunctions: []string{
		"DATEADD", "DATEDIFF", "DATE_PART", "DATE_TRUNC", "TIMEADD",
		"TIMEDIFF", "TIMESTAMPADD", "TIMESTAMPDIFF", "TIME_SLICE", "LAST_DAY",
	},
}

// snowflakeReservedWords cannot be used as unquoted identifiers.
var snowflakeReservedWords = []string{
	"ACCOUNT", "ALL", "ALTER", "AND", "ANY", "AS", "BETWEEN", "BY", "CASE",
	"CAST", "CHECK", "COLUMN", "CONNECT", "CONNECTION", "CONSTRAINT", "CREATE",
	"CROSS", "CURRENT", "CURRENT_DATE", "CURRENT_TIME", "CURRENT_TIMESTAMP",
	"CURRENT_USER", "DATABASE", "DELETE", "DISTINCT", "DROP", "ELSE", "EXISTS",
	"FALSE", "FOLLOWING", "FOR", "FROM", "FULL", "GRANT", "GROUP", "GSCLUSTER",
	"HAVING", "ILIKE", "IN", "INCREMENT", "INNER", "INSERT", "INTERSECT",
	"INTO", "IS", "ISSUE", "JOIN", "LATERAL", "LEFT", "LIKE", "LOCALTIME",
	"LOCALTIMESTAMP", "MINUS", "NATURAL", "NOT", "NULL", "OF", "ON", "OR",
	"ORDER", "ORGANIZATION", "QUALIFY", "REGEXP", "REVOKE", "RIGHT", "RLIKE",
	"ROW", "ROWS", "SAMPLE", "SCHEMA", "SELECT", "SET", "SOME", "START",
	"TABLE", "TABLESAMPLE", "THEN", "TO", "TRIGGER", "TRUE", "TRY_CAST",
	"UNION", "UNIQUE", "UPDATE", "USING", "VALUES", "VIEW", "WHEN", "WHENEVER",
	"WHERE", "WITH",
}
