package hir

import (
	"lumen/internal/ast"
	"lumen/internal/pool"
	"lumen/internal/source"
)

// ExprKind enumerates the lowered expression shapes this module's
// field-access emitter and constant evaluator operate over.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	// ExprLocal names a resolved local variable.
	ExprLocal
	// ExprItem names a resolved, canonical item (post path-conversion).
	ExprItem
	// ExprFieldAccess is `expr.field`.
	ExprFieldAccess
	// ExprLiteral is a literal constant.
	ExprLiteral
	// ExprTuple is a tuple constructor.
	ExprTuple
)

// Expr is a lowered, arena-resident expression node. As with ast.Expr,
// only the fields relevant to Kind are meaningful.
type Expr struct {
	ID   ExprID
	Kind ExprKind
	Span source.Span

	// ExprLocal
	Local LocalID

	// ExprItem
	Item pool.ItemID

	// ExprFieldAccess
	Object ExprID
	Field  ast.FieldKey

	// ExprLiteral
	Literal ast.LiteralID

	// ExprTuple
	Elements []ExprID
}
