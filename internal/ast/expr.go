package ast

import "lumen/internal/source"

// LiteralID identifies a literal payload registered with internal/literal.
type LiteralID uint32

// NoLiteralID marks the absence of a literal reference.
const NoLiteralID LiteralID = 0

// ExprKind enumerates the expression shapes the resolver and field-access
// emitter need to see. The full expression grammar lives with the
// (out-of-scope) parser; this is the fixed slice this module consumes.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	// ExprIdent names a local variable or, failing that, a path.
	ExprIdent
	// ExprPath is a multi-segment path expression (`a::b::C`).
	ExprPath
	// ExprFieldAccess is `expr.field`.
	ExprFieldAccess
	// ExprLiteral is a literal constant (int, string, char, bool).
	ExprLiteral
	// ExprTuple is a tuple constructor `(a, b, c)`.
	ExprTuple
)

// Expr is one parser-produced expression node. Only the fields relevant
// to Kind are meaningful; this mirrors the teacher's tagged-union-via-
// struct convention rather than an interface hierarchy, since the HIR
// lowering and field-access emitter both need cheap, allocation-free
// access to whichever payload is live.
type Expr struct {
	ID   ExprID
	Kind ExprKind
	Span source.Span

	// ExprIdent
	Ident source.StringID
	Local LocalID // set once name resolution binds Ident to a local; zero otherwise

	// ExprPath
	Path PathID

	// ExprFieldAccess
	Object ExprID
	Field  FieldKey

	// ExprLiteral
	Literal LiteralID

	// ExprTuple
	Elements []ExprID
}

// Local is a single declared local binding (function parameter or `let`).
type Local struct {
	ID   LocalID
	Name source.StringID
	Span source.Span
}
