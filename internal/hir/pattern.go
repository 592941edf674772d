package hir

import "lumen/internal/source"

// PatternKind enumerates the lowered pattern shapes a `let` binding or
// function parameter can take.
type PatternKind uint8

const (
	PatInvalid PatternKind = iota
	// PatWildcard is `_`, binding nothing.
	PatWildcard
	// PatBinding introduces a single local.
	PatBinding
	// PatTuple destructures a tuple positionally.
	PatTuple
)

// Pattern is a lowered, arena-resident pattern node.
type Pattern struct {
	ID       PatternID
	Kind     PatternKind
	Local    LocalID
	Elements []PatternID
	Span     source.Span
}

// Local is a lowered local binding: a stable slot a function body's
// locals are addressed by (the "local_offset" spec.md §4.7 emits
// TupleIndexGet against).
type Local struct {
	ID     LocalID
	Name   source.StringID
	Offset uint32
	Span   source.Span
}
