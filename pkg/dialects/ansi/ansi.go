// Package ansi provides the permissive ANSI SQL dialect.
// It is the fallback when no dialect-specific behaviour is wanted.
package ansi

import "github.com/leapstack-labs/sqlbind/pkg/dialect"

func init() {
	dialect.Register(ANSI)
}

// Config is the ANSI SQL dialect configuration.
var Config = &dialect.Config{
	Name: "ansi",
	Identifiers: dialect.IdentifierConfig{
		Quote:         `"`,
		QuoteEnd:      `"`,
		Escape:        `""`,
		Normalization: dialect.NormLowercase,
	},
	SupportsFilter:       true,
	SupportsCastOperator: true,
}

// ANSI is the ANSI SQL dialect.
var ANSI = dialect.New(Config).Build()
