// Package dialect provides SQL dialect configuration shared by the parser,
// the printer and the binder.
//
// Concrete dialects are registered from pkg/dialects/*/ packages in their
// init functions; import them for side effects, or use pkg/dialects/all.
package dialect

import (
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/token"
)

// Dialect is a built, immutable dialect definition.
type Dialect struct {
	Config

	reservedWords     map[string]struct{}
	datePartFunctions map[string]struct{}
	keywords          map[string]token.TokenType
}

// Builder assembles a Dialect from a Config.
type Builder struct {
	cfg      Config
	keywords map[string]token.TokenType
}

// New starts a Builder from the given configuration.
func New(cfg *Config) *Builder {
	b := &Builder{keywords: make(map[string]token.TokenType)}
	if cfg != nil {
		b.cfg = *cfg
	}
	return b
}

// AddKeyword makes the lexer produce t for the (case-insensitive) word.
func (b *Builder) AddKeyword(word string, t token.TokenType) *Builder {
	b.keywords[strings.ToLower(word)] = t
	return b
}

// WithReservedWords appends reserved words.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	b.cfg.ReservedWords = append(b.cfg.ReservedWords, words...)
	return b
}

// Build finalizes the dialect. Feature flags wire their keywords.
func (b *Builder) Build() *Dialect {
	d := &Dialect{
		Config:            b.cfg,
		reservedWords:     make(map[string]struct{}, len(b.cfg.ReservedWords)),
		datePartFunctions: make(map[string]struct{}, len(b.cfg.DatePartFunctions)),
		keywords:          make(map[string]token.TokenType, len(b.keywords)+4),
	}
	for _, w := range b.cfg.ReservedWords {
		d.reservedWords[strings.ToUpper(w)] = struct{}{}
	}
	for _, f := range b.cfg.DatePartFunctions {
		d.datePartFunctions[strings.ToUpper(f)] = struct{}{}
	}
	if b.cfg.SupportsQualify {
		d.keywords["qualify"] = token.QUALIFY
	}
	if b.cfg.SupportsIlike {
		d.keywords["ilike"] = token.ILIKE
	}
	if b.cfg.SupportsRlike {
		d.keywords["rlike"] = token.RLIKE
		d.keywords["regexp"] = token.RLIKE
	}
	if b.cfg.SupportsTop {
		d.keywords["top"] = token.TOP
	}
	for k, v := range b.keywords {
		d.keywords[k] = v
	}
	if d.Identifiers.Quote == "" {
		d.Identifiers.Quote = `"`
		d.Identifiers.QuoteEnd = `"`
		d.Identifiers.Escape = `""`
	}
	return d
}

// LookupKeyword returns the dialect keyword token for a lowercase word.
func (d *Dialect) LookupKeyword(word string) (token.TokenType, bool) {
	t, ok := d.keywords[word]
	return t, ok
}

// NormalizeName normalizes an unquoted identifier for comparison.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case NormUppercase:
		return strings.ToUpper(name)
	default:
		return strings.ToLower(name)
	}
}

// IsReservedWord reports whether word (any case) is reserved in this dialect.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToUpper(word)]
	return ok
}

// IsDatePartFunction reports whether the named function takes a leading
// date-part keyword argument.
func (d *Dialect) IsDatePartFunction(name string) bool {
	_, ok := d.datePartFunctions[strings.ToUpper(name)]
	return ok
}

// QuoteIdentifier quotes name, escaping embedded end-quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only if it's a reserved word.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.IsReservedWord(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}
