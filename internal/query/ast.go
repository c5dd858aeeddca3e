// Package query parses PQL statements into an AST and defines the
// locatable error envelope used across compilation and execution.
package query

import "fmt"

// LocInfo is a half-open byte span into the query source.
type LocInfo struct {
	Start int
	End   int
}

// SelectorKind is the aggregate applied to a selector expression.
type SelectorKind uint8

const (
	Avg SelectorKind = iota
	Count
	Max
	Min
)

// String returns the lowercase keyword of the selector.
func (k SelectorKind) String() string {
	switch k {
	case Avg:
		return "avg"
	case Count:
		return "count"
	case Max:
		return "max"
	default:
		return "min"
	}
}

// Statement is one `select ... from ...` statement.
type Statement struct {
	Selectors []Selector
	From      []FromItem
	FromLoc   LocInfo
}

// Selector is one aggregate clause, e.g. `avg(equity(hero, river)) as eq`.
type Selector struct {
	Kind  SelectorKind
	Expr  Expr
	Alias string
	Loc   LocInfo
}

// Name returns the output name of the selector: its alias when present,
// otherwise kindN for the 1-based position n.
func (s Selector) Name(n int) string {
	if s.Alias != "" {
		return s.Alias
	}
	return fmt.Sprintf("%s%d", s.Kind, n)
}

// FromItem is one `key='value'` entry of the from clause.
type FromItem struct {
	Key      string
	KeyLoc   LocInfo
	Value    string
	ValueLoc LocInfo
}

// Expr is a node of a selector expression.
type Expr interface {
	Loc() LocInfo
}

// Ident is a bare identifier: a player, street, hand type or category.
type Ident struct {
	Name string
	Span LocInfo
}

// Num is an integer or floating point literal.
type Num struct {
	Text    string
	IsFloat bool
	Span    LocInfo
}

// Str is a single-quoted string literal.
type Str struct {
	Value string
	Span  LocInfo
}

// FnCall is a function invocation.
type FnCall struct {
	Name    string
	NameLoc LocInfo
	Args    []Expr
	Span    LocInfo
}

// BinOpKind enumerates the binary operators.
type BinOpKind uint8

const (
	OpAdd BinOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpLt
	OpGt
	OpLe
	OpGe
)

// String returns the operator symbol.
func (op BinOpKind) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	default:
		return ">="
	}
}

// BinOp applies a binary operator to two subexpressions.
type BinOp struct {
	Op       BinOpKind
	LHS, RHS Expr
	Span     LocInfo
}

func (e *Ident) Loc() LocInfo  { return e.Span }
func (e *Num) Loc() LocInfo    { return e.Span }
func (e *Str) Loc() LocInfo    { return e.Span }
func (e *FnCall) Loc() LocInfo { return e.Span }
func (e *BinOp) Loc() LocInfo  { return e.Span }
