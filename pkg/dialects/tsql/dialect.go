// Package tsql provides the Microsoft T-SQL dialect definition.
package tsql

import "github.com/leapstack-labs/sqlbind/pkg/dialect"

func init() {
	dialect.Register(TSQL)
}

// Config is the T-SQL dialect configuration.
var Config = &dialect.Config{
	Name: "tsql",
	Identifiers: dialect.IdentifierConfig{
		Quote:         "[",
		QuoteEnd:      "]",
		Escape:        "]]",
		Normalization: dialect.NormCaseInsensitive,
	},
	SupportsTop: true,

	ReservedWords: []string{
		"ADD", "ALL", "ALTER", "AND", "ANY", "AS", "ASC", "BACKUP", "BEGIN",
		"BETWEEN", "BREAK", "BROWSE", "BULK", "BY", "CASCADE", "CASE", "CHECK",
		"CLUSTERED", "COLUMN", "COMMIT", "CONSTRAINT", "CREATE", "CROSS",
		"CURRENT", "CURSOR", "DATABASE", "DEFAULT", "DELETE", "DESC", "DISTINCT",
		"DROP", "ELSE", "END", "EXCEPT", "EXEC", "EXISTS", "FILE", "FOR",
		"FOREIGN", "FROM", "FULL", "FUNCTION", "GRANT", "GROUP", "HAVING",
		"IDENTITY", "IN", "INDEX", "INNER", "INSERT", "INTERSECT", "INTO", "IS",
		"JOIN", "KEY", "LEFT", "LIKE", "NOT", "NULL", "OF", "ON", "OPEN", "OR",
		"ORDER", "OUTER", "OVER", "PERCENT", "PIVOT", "PLAN", "PRIMARY", "PRINT",
		"PROC", "PUBLIC", "RIGHT", "ROWCOUNT", "RULE", "SCHEMA", "SELECT", "SET",
		"TABLE", "THEN", "TO", "TOP", "TRAN", "TRIGGER", "UNION", "UNIQUE",
		"UPDATE", "USE", "USER", "VALUES", "VIEW", "WHEN", "WHERE", "WITH",
	},
	DatePartFunctions: []string{"DATEADD", "DATEDIFF", "DATENAME", "DATEPART", "DATETRUNC"},
}

// TSQL is the T-SQL dialect. TOP is wired from Config.
var TSQL = dialect.New(Config).Build()
