package format

import (
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/ast"
	"github.com/leapstack-labs/sqlbind/pkg/dialect"
	"github.com/leapstack-labs/sqlbind/pkg/token"
)

// Printer accumulates SQL text.
type Printer struct {
	dialect *dialect.Dialect
	output  strings.Builder
}

func newPrinter(d *dialect.Dialect) *Printer {
	if d == nil {
		d = dialect.New(nil).Build()
	}
	return &Printer{dialect: d}
}

// String returns the formatted output.
func (p *Printer) String() string {
	return p.output.String()
}

func (p *Printer) write(s string) {
	p.output.WriteString(s)
}

func (p *Printer) space() {
	p.output.WriteByte(' ')
}

// kw prints keywords separated by spaces.
func (p *Printer) kw(tokens ...token.TokenType) {
	for i, t := range tokens {
		if i > 0 {
			p.space()
		}
		p.write(t.String())
	}
}

// ident prints an identifier, quoting it when it was quoted in the source.
func (p *Printer) ident(id *ast.Identifier) {
	if id == nil {
		return
	}
	if id.Quoted {
		p.write(p.dialect.QuoteIdentifier(id.Name))
		return
	}
	p.write(id.Name)
}

// alias prints " AS name" when name is set.
func (p *Printer) alias(id *ast.Identifier) {
	if id == nil {
		return
	}
	p.space()
	p.kw(token.AS)
	p.space()
	p.ident(id)
}

// list prints items separated by ", ".
func list[T any](p *Printer, items []T, print func(T)) {
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}
		print(item)
	}
}
