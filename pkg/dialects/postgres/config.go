package postgres

import "github.com/leapstack-labs/sqlbind/pkg/dialect"

// Config is the PostgreSQL dialect configuration.
var Config = &dialect.Config{
	Name: "postgres",
	Identifiers: dialect.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: dialect.NormLowercase,
	},
	SupportsFilter:       true,
	SupportsIlike:        true,
	SupportsCastOperator: true,

	ReservedWords:     postgresReservedWords,
	DatePartFunctions: []string{"DATE_PART", "DATE_TRUNC"},
}

// postgresReservedWords lists words reserved in PostgreSQL (not merely
// non-reserved keywords).
var postgresReservedWords = []string{
	"ALL", "ANALYSE", "ANALYZE", "AND", "ANY", "ARRAY", "AS", "ASC",
	"ASYMMETRIC", "BOTH", "CASE", "CAST", "CHECK", "COLLATE", "COLUMN",
	"CONSTRAINT", "CREATE", "CURRENT_CATALOG", "CURRENT_DATE", "CURRENT_ROLE",
	"CURRENT_TIME", "CURRENT_TIMESTAMP", "CURRENT_USER", "DEFAULT",
	"DEFERRABLE", "DESC", "DISTINCT", "DO", "ELSE", "END", "EXCEPT", "FALSE",
	"FETCH", "FOR", "FOREIGN", "FROM", "GRANT", "GROUP", "HAVING", "IN",
	"INITIALLY", "INTERSECT", "INTO", "LATERAL", "LEADING", "LIMIT",
	"LOCALTIME", "LOCALTIMESTAMP", "NOT", "NULL", "OFFSET", "ON", "ONLY", "OR",
	"ORDER", "PLACING", "PRIMARY", "REFERENCES", "RETURNING", "SELECT",
	"SESSION_USER", "SOME", "SYMMETRIC", "TABLE", "THEN", "TO", "TRAILING",
	"TRUE", "UNION", "UNIQUE", "USER", "USING", "VARIADIC", "WHEN", "WHERE",
	"WINDOW", "WITH",
}
