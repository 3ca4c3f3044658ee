package dialect

// Config holds the static configuration for a SQL dialect.
// This is pure data; Builder turns it into a *Dialect with lookup tables.
type Config struct {
	// Name is the dialect identifier (e.g., "snowflake", "postgres").
	Name string

	// Identifiers defines quoting and normalization rules.
	Identifiers IdentifierConfig

	// Feature flags. The binder rejects constructs a dialect disables
	// (FILTER), the lexer only produces keyword tokens for enabled features
	// (QUALIFY, ILIKE, RLIKE, TOP).
	SupportsFilter       bool // agg(...) FILTER (WHERE ...)
	SupportsQualify      bool // QUALIFY clause
	SupportsIlike        bool // ILIKE operator
	SupportsRlike        bool // RLIKE / REGEXP operators
	SupportsCastOperator bool // x::type
	SupportsTop          bool // SELECT TOP n

	// ReservedWords need quoting when used as identifiers. Identifiers that
	// collide with them are case-corrected by the binder.
	ReservedWords []string

	// DatePartFunctions take a bare date-part keyword as their first
	// argument, e.g. DATEADD(month, 1, created_at).
	DatePartFunctions []string
}

// NormalizationStrategy defines how unquoted identifiers are normalized.
type NormalizationStrategy int

const (
	// NormLowercase normalizes unquoted identifiers to lowercase (Postgres).
	NormLowercase NormalizationStrategy = iota
	// NormUppercase normalizes unquoted identifiers to uppercase (Snowflake).
	NormUppercase
	// NormCaseInsensitive compares case-insensitively, preserving case (T-SQL).
	NormCaseInsensitive
)

// IdentifierConfig defines how identifiers are quoted and normalized.
type IdentifierConfig struct {
	Quote         string // Quote character: " or [
	QuoteEnd      string // End quote character (] for [)
	Escape        string // Escape sequence for QuoteEnd inside a quoted name
	Normalization NormalizationStrategy
}
