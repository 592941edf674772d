package literal

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"lumen/internal/ast"
	"lumen/internal/source"
)

// Kind enumerates the literal payload shapes the storage layer resolves.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindChar
	KindInt
	KindBool
)

// Value is a resolved literal payload: the raw source text converted into
// its interned/typed form. Overflowed marks an integer literal too large
// for uint64, which the field-access emitter turns into BadFieldAccess
// when used as a field key (spec.md §4.7, scenario S8).
type Value struct {
	Kind       Kind
	StringID   source.StringID
	Int        uint64
	Overflowed bool
	Bool       bool
	Span       source.Span
}

// Storage resolves literal spans against the source store exactly once,
// caching the result by ast.LiteralID. Grounded on the teacher's
// source.Interner for string dedup, and source.FileSet.Text for slicing
// raw literal text out of the original bytes.
type Storage struct {
	files *source.FileSet
	strs  *source.Interner
	byID  []Value
}

// NewStorage creates an empty literal storage bound to files and strs.
func NewStorage(files *source.FileSet, strs *source.Interner) *Storage {
	return &Storage{files: files, strs: strs, byID: make([]Value, 1, 64)}
}

// ResolveString interns the text covered by span (already unescaped by
// the external parser) as a string literal, and returns its id.
func (s *Storage) ResolveString(span source.Span) ast.LiteralID {
	text := s.files.Text(span)
	id := s.strs.Intern(text)
	return s.push(Value{Kind: KindString, StringID: id, Span: span})
}

// ResolveChar interns a single-character literal the same way as a string.
func (s *Storage) ResolveChar(span source.Span) ast.LiteralID {
	text := s.files.Text(span)
	id := s.strs.Intern(text)
	return s.push(Value{Kind: KindChar, StringID: id, Span: span})
}

// ResolveBool registers a boolean literal.
func (s *Storage) ResolveBool(span source.Span, value bool) ast.LiteralID {
	return s.push(Value{Kind: KindBool, Bool: value, Span: span})
}

// ResolveInt parses the decimal digits covered by span. A value that
// overflows uint64 is still recorded, with Overflowed set, rather than
// erroring here: whether that's fatal depends on where the literal is
// used (spec.md scenario S8 only fails it when used as a field key).
func (s *Storage) ResolveInt(span source.Span) ast.LiteralID {
	text := s.files.Text(span)
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return s.push(Value{Kind: KindInt, Overflowed: true, Span: span})
	}
	return s.push(Value{Kind: KindInt, Int: n, Span: span})
}

func (s *Storage) push(v Value) ast.LiteralID {
	n, err := safecast.Conv[uint32](len(s.byID))
	if err != nil {
		panic(fmt.Errorf("literal: storage overflow: %w", err))
	}
	id := ast.LiteralID(n)
	s.byID = append(s.byID, v)
	return id
}

// Get returns the resolved value for id. Panics on an id beyond those
// issued; NoLiteralID reads back the reserved zero Value.
func (s *Storage) Get(id ast.LiteralID) *Value {
	return &s.byID[id]
}

// AsTupleIndex reports whether v is usable as a tuple field index: an
// unsigned integer literal that fits a machine-sized index (spec.md
// §4.7: "field is a non-negative integer literal that fits in a
// machine-sized unsigned index").
func (v *Value) AsTupleIndex() (uint64, bool) {
	if v.Kind != KindInt || v.Overflowed {
		return 0, false
	}
	return v.Int, true
}
