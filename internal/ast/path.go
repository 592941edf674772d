package ast

import "lumen/internal/source"

// PathSegmentKind enumerates the lexical forms a path segment can take.
// The path converter (internal/pathconvert) interprets these per §4.4.
type PathSegmentKind uint8

const (
	SegInvalid PathSegmentKind = iota
	// SegIdent is a plain identifier component.
	SegIdent
	// SegGlobal is a leading `::` marking an absolute, crate-rooted path.
	SegGlobal
	// SegSuper is `super`, one step toward the parent module.
	SegSuper
	// SegSelfValue is `self`, the current module.
	SegSelfValue
	// SegSelfType is `Self`, the enclosing impl's item.
	SegSelfType
	// SegCrate is `crate`, the crate root.
	SegCrate
	// SegGenerics is a bare generic argument list attached to a segment.
	SegGenerics
)

func (k PathSegmentKind) String() string {
	switch k {
	case SegIdent:
		return "ident"
	case SegGlobal:
		return "global"
	case SegSuper:
		return "super"
	case SegSelfValue:
		return "self"
	case SegSelfType:
		return "Self"
	case SegCrate:
		return "crate"
	case SegGenerics:
		return "generics"
	default:
		return "invalid"
	}
}

// PathSegment is one lexical component of a parsed path.
type PathSegment struct {
	Kind  PathSegmentKind
	Ident source.StringID
	Span  source.Span
}

// Path is the parser's unresolved representation of a lexical path
// expression, e.g. `crate::a::b::C` or `Self::method`.
type Path struct {
	ID       PathID
	Segments []PathSegment
	Span     source.Span
}

// FieldKeyKind distinguishes the two shapes a field-access key can take.
type FieldKeyKind uint8

const (
	FieldKeyIdent FieldKeyKind = iota
	FieldKeyIndex
)

// FieldKey is the `.field` suffix of a field-access expression. Index
// literals that don't fit a machine-sized unsigned index set Overflowed.
type FieldKey struct {
	Kind       FieldKeyKind
	Ident      source.StringID
	Index      uint64
	Overflowed bool
	Span       source.Span
}
