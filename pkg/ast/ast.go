package ast

import "github.com/leapstack-labs/sqlbind/pkg/token"

// Node is the base interface for all syntax tree nodes.
type Node interface {
	// Args returns the structural children of the node as ordered named
	// slots. Identifiers are not reported; they are leaves of their owner.
	Args() []Arg
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Statement is a query that produces rows: a SELECT or a set operation.
type Statement interface {
	Expr
	stmtNode()
}

// Arg is one named slot of child nodes.
type Arg struct {
	Key   string
	Nodes []Node
}

func exprArg(key string, e Expr) []Arg {
	if e == nil {
		return nil
	}
	return []Arg{{Key: key, Nodes: []Node{e}}}
}

func exprsArg(key string, es []Expr) []Arg {
	if len(es) == 0 {
		return nil
	}
	nodes := make([]Node, len(es))
	for i, e := range es {
		nodes[i] = e
	}
	return []Arg{{Key: key, Nodes: nodes}}
}

func orderedArg(key string, items []*Ordered) []Arg {
	if len(items) == 0 {
		return nil
	}
	nodes := make([]Node, len(items))
	for i, o := range items {
		nodes[i] = o
	}
	return []Arg{{Key: key, Nodes: nodes}}
}

// Identifier is a (possibly quoted) name.
type Identifier struct {
	Name   string
	Quoted bool
}

// Args implements Node.
func (*Identifier) Args() []Arg { return nil }

// Ident builds an unquoted identifier, or nil for an empty name.
func Ident(name string) *Identifier {
	if name == "" {
		return nil
	}
	return &Identifier{Name: name}
}

// Text returns the identifier name, or "" for a nil identifier.
func (i *Identifier) Text() string {
	if i == nil {
		return ""
	}
	return i.Name
}

// ---------- Statements ----------

// Select is a single SELECT query block.
type Select struct {
	With        *With
	Distinct    bool
	Expressions []Expr
	From        *From
	Joins       []*Join
	Where       Expr
	GroupBy     []Expr
	Having      Expr
	Qualify     Expr
	OrderBy     []*Ordered
	Limit       Expr // also carries T-SQL TOP n
	Offset      Expr
}

func (*Select) exprNode() {}
func (*Select) stmtNode() {}

// Args implements Node. Slots are reported in source clause order.
func (s *Select) Args() []Arg {
	var args []Arg
	if s.With != nil {
		args = append(args, Arg{Key: "with", Nodes: []Node{s.With}})
	}
	args = append(args, exprsArg("expressions", s.Expressions)...)
	if s.From != nil {
		args = append(args, Arg{Key: "from", Nodes: []Node{s.From}})
	}
	if len(s.Joins) > 0 {
		nodes := make([]Node, len(s.Joins))
		for i, j := range s.Joins {
			nodes[i] = j
		}
		args = append(args, Arg{Key: "joins", Nodes: nodes})
	}
	args = append(args, exprArg("where", s.Where)...)
	args = append(args, exprsArg("group", s.GroupBy)...)
	args = append(args, exprArg("having", s.Having)...)
	args = append(args, exprArg("qualify", s.Qualify)...)
	args = append(args, orderedArg("order", s.OrderBy)...)
	args = append(args, exprArg("limit", s.Limit)...)
	args = append(args, exprArg("offset", s.Offset)...)
	return args
}

// SetOp is a set operation keyword.
type SetOp string

// SetOp values.
const (
	SetOpUnion     SetOp = "UNION"
	SetOpIntersect SetOp = "INTERSECT"
	SetOpExcept    SetOp = "EXCEPT"
)

// Union is a set operation between two statements. OrderBy, Limit and
// Offset apply to the combined result.
type Union struct {
	With    *With
	Op      SetOp
	All     bool
	Left    Statement
	Right   Statement
	OrderBy []*Ordered
	Limit   Expr
	Offset  Expr
}

func (*Union) exprNode() {}
func (*Union) stmtNode() {}

// Args implements Node.
func (u *Union) Args() []Arg {
	var args []Arg
	if u.With != nil {
		args = append(args, Arg{Key: "with", Nodes: []Node{u.With}})
	}
	args = append(args, exprArg("this", u.Left)...)
	args = append(args, exprArg("expression", u.Right)...)
	args = append(args, orderedArg("order", u.OrderBy)...)
	args = append(args, exprArg("limit", u.Limit)...)
	args = append(args, exprArg("offset", u.Offset)...)
	return args
}

// With is a WITH clause.
type With struct {
	Recursive bool
	CTEs      []*CTE
}

// Args implements Node.
func (w *With) Args() []Arg {
	if len(w.CTEs) == 0 {
		return nil
	}
	nodes := make([]Node, len(w.CTEs))
	for i, c := range w.CTEs {
		nodes[i] = c
	}
	return []Arg{{Key: "expressions", Nodes: nodes}}
}

// CTE is one named common table expression. Columns, when present,
// rename the body's output columns by position.
type CTE struct {
	Name    *Identifier
	Columns []*Identifier
	Query   Statement
}

// Args implements Node.
func (c *CTE) Args() []Arg { return exprArg("this", c.Query) }

// From is a FROM clause. Comma-separated sources are kept in order.
type From struct {
	Sources []Expr
}

// Args implements Node.
func (f *From) Args() []Arg { return exprsArg("expressions", f.Sources) }

// Join is one JOIN clause.
type Join struct {
	Kind    string // INNER, LEFT, RIGHT, FULL, CROSS or ""
	Natural bool
	Target  Expr
	On      Expr
	Using   []*Identifier
}

// Args implements Node.
func (j *Join) Args() []Arg {
	args := exprArg("this", j.Target)
	return append(args, exprArg("on", j.On)...)
}

// ---------- Table references ----------

// Table is a physical table reference.
type Table struct {
	Catalog *Identifier
	Schema  *Identifier
	Name    *Identifier
	Alias   *Identifier
}

func (*Table) exprNode() {}

// Args implements Node.
func (*Table) Args() []Arg { return nil }

// Subquery is a parenthesised statement, in FROM or in an expression.
type Subquery struct {
	Query Statement
	Alias *Identifier
}

func (*Subquery) exprNode() {}

// Args implements Node.
func (s *Subquery) Args() []Arg { return exprArg("this", s.Query) }

// ---------- Expressions ----------

// Column is a possibly qualified column reference.
type Column struct {
	Table *Identifier
	Name  *Identifier
}

func (*Column) exprNode() {}

// Args implements Node.
func (*Column) Args() []Arg { return nil }

// Star is * or t.*.
type Star struct {
	Table *Identifier
}

func (*Star) exprNode() {}

// Args implements Node.
func (*Star) Args() []Arg { return nil }

// Alias is `expr AS name`.
type Alias struct {
	Expr  Expr
	Name  *Identifier
	Table *Identifier // optional qualifier for the alias
}

func (*Alias) exprNode() {}

// Args implements Node.
func (a *Alias) Args() []Arg { return exprArg("this", a.Expr) }

// LiteralKind classifies a literal.
type LiteralKind int

// LiteralKind values.
const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBool
	LiteralNull
	LiteralInterval // INTERVAL '1 day'; Value holds the quoted text and unit
	LiteralKeyword  // bare keyword argument such as the date part in EXTRACT
)

// Literal is a constant.
type Literal struct {
	Kind  LiteralKind
	Value string
}

func (*Literal) exprNode() {}

// Args implements Node.
func (*Literal) Args() []Arg { return nil }

// IsString reports whether the literal is a string constant.
func (l *Literal) IsString() bool { return l != nil && l.Kind == LiteralString }

// Binary is a binary operator expression (comparison, arithmetic, AND/OR, ||).
type Binary struct {
	Op    token.TokenType
	Left  Expr
	Right Expr
}

func (*Binary) exprNode() {}

// Args implements Node.
func (b *Binary) Args() []Arg {
	args := exprArg("this", b.Left)
	return append(args, exprArg("expression", b.Right)...)
}

// Unary is NOT x, -x or +x.
type Unary struct {
	Op   token.TokenType
	Expr Expr
}

func (*Unary) exprNode() {}

// Args implements Node.
func (u *Unary) Args() []Arg { return exprArg("this", u.Expr) }

// Paren is a parenthesised expression.
type Paren struct {
	Expr Expr
}

func (*Paren) exprNode() {}

// Args implements Node.
func (p *Paren) Args() []Arg { return exprArg("this", p.Expr) }

// Func is a function call. Name is upper-cased by the parser.
type Func struct {
	Name      string
	Distinct  bool
	Star      bool // COUNT(*)
	Niladic   bool // CURRENT_DATE and friends, printed without parentheses
	Arguments []Expr
}

func (*Func) exprNode() {}

// Args implements Node.
func (f *Func) Args() []Arg { return exprsArg("expressions", f.Arguments) }

// Filter is `agg(...) FILTER (WHERE cond)`.
type Filter struct {
	Func  Expr
	Where Expr
}

func (*Filter) exprNode() {}

// Args implements Node.
func (f *Filter) Args() []Arg {
	args := exprArg("this", f.Func)
	return append(args, exprArg("expression", f.Where)...)
}

// Window is `func(...) OVER (PARTITION BY ... ORDER BY ... frame)`.
type Window struct {
	Func        Expr
	Name        *Identifier // OVER w
	PartitionBy []Expr
	OrderBy     []*Ordered
	Frame       string // raw frame text, e.g. "ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW"
}

func (*Window) exprNode() {}

// Args implements Node.
func (w *Window) Args() []Arg {
	args := exprArg("this", w.Func)
	args = append(args, exprsArg("partition_by", w.PartitionBy)...)
	return append(args, orderedArg("order", w.OrderBy)...)
}

// Ordered is an ORDER BY item.
type Ordered struct {
	Expr       Expr
	Desc       bool
	NullsFirst *bool
}

// Args implements Node.
func (o *Ordered) Args() []Arg { return exprArg("this", o.Expr) }

// In is `x [NOT] IN (values)` or `x [NOT] IN (subquery)`.
type In struct {
	Expr   Expr
	Not    bool
	Values []Expr
	Query  *Subquery
}

func (*In) exprNode() {}

// Args implements Node.
func (i *In) Args() []Arg {
	args := exprArg("this", i.Expr)
	args = append(args, exprsArg("expressions", i.Values)...)
	if i.Query != nil {
		args = append(args, Arg{Key: "query", Nodes: []Node{i.Query}})
	}
	return args
}

// Between is `x [NOT] BETWEEN low AND high`.
type Between struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
}

func (*Between) exprNode() {}

// Args implements Node.
func (b *Between) Args() []Arg {
	args := exprArg("this", b.Expr)
	args = append(args, exprArg("low", b.Low)...)
	return append(args, exprArg("high", b.High)...)
}

// Is is `x IS [NOT] NULL|TRUE|FALSE`.
type Is struct {
	Expr  Expr
	Not   bool
	Value *Literal
}

func (*Is) exprNode() {}

// Args implements Node.
func (i *Is) Args() []Arg { return exprArg("this", i.Expr) }

// Like is `x [NOT] LIKE|ILIKE|RLIKE pattern`.
type Like struct {
	Op      token.TokenType
	Expr    Expr
	Not     bool
	Pattern Expr
}

func (*Like) exprNode() {}

// Args implements Node.
func (l *Like) Args() []Arg {
	args := exprArg("this", l.Expr)
	return append(args, exprArg("expression", l.Pattern)...)
}

// Case is a CASE expression.
type Case struct {
	Operand Expr
	Whens   []*When
	Else    Expr
}

func (*Case) exprNode() {}

// Args implements Node.
func (c *Case) Args() []Arg {
	args := exprArg("this", c.Operand)
	if len(c.Whens) > 0 {
		nodes := make([]Node, len(c.Whens))
		for i, w := range c.Whens {
			nodes[i] = w
		}
		args = append(args, Arg{Key: "ifs", Nodes: nodes})
	}
	return append(args, exprArg("default", c.Else)...)
}

// When is one WHEN ... THEN ... arm.
type When struct {
	Cond   Expr
	Result Expr
}

// Args implements Node.
func (w *When) Args() []Arg {
	args := exprArg("this", w.Cond)
	return append(args, exprArg("true", w.Result)...)
}

// Cast is CAST(x AS type) or x::type.
type Cast struct {
	Expr Expr
	Type string
}

func (*Cast) exprNode() {}

// Args implements Node.
func (c *Cast) Args() []Arg { return exprArg("this", c.Expr) }

// Exists is [NOT] EXISTS (subquery).
type Exists struct {
	Not   bool
	Query *Subquery
}

func (*Exists) exprNode() {}

// Args implements Node.
func (e *Exists) Args() []Arg {
	if e.Query == nil {
		return nil
	}
	return []Arg{{Key: "this", Nodes: []Node{e.Query}}}
}
