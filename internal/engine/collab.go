package engine

import (
	"fmt"

	"lumen/internal/diag"
	"lumen/internal/fieldemit"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
)

// Visitor is the compile-visitor collaborator spec.md §6 names: a sink
// for finished metadata and doc comments. RegisterMeta is called for
// each dispatched build-queue entry whose meta query succeeds; an item
// built only re-entrantly (from inside another build) is not passed to
// it, and an item dispatched again after it was cached is passed again.
// Calls happen in build-queue dispatch order, which is deterministic but
// not sorted.
type Visitor interface {
	RegisterMeta(meta *query.PrivMeta)
	VisitDocComment(loc source.Span, item pool.ItemID, text string)
}

// NoopVisitor drops every call. It's the default when New is not given
// one explicitly.
type NoopVisitor struct{}

func (NoopVisitor) RegisterMeta(*query.PrivMeta)                     {}
func (NoopVisitor) VisitDocComment(source.Span, pool.ItemID, string) {}

// DocComment is one recorded VisitDocComment call.
type DocComment struct {
	Location source.Span
	Item     pool.ItemID
	Text     string
}

// CollectingVisitor accumulates every call it receives, for tests and
// golden-output comparisons.
type CollectingVisitor struct {
	Metas       []*query.PrivMeta
	DocComments []DocComment
}

func (v *CollectingVisitor) RegisterMeta(m *query.PrivMeta) {
	v.Metas = append(v.Metas, m)
}

func (v *CollectingVisitor) VisitDocComment(loc source.Span, item pool.ItemID, text string) {
	v.DocComments = append(v.DocComments, DocComment{Location: loc, Item: item, Text: text})
}

// UnitBuilder is the unit-builder collaborator spec.md §6 names: it
// receives finished metadata and emitted bytecode instructions. Per
// §6, "must accept idempotent meta installation" — installing the same
// item's meta twice with identical content is not an error.
type UnitBuilder interface {
	InsertMeta(span source.Span, meta *query.PrivMeta) error
	EmitInstructions(item pool.ItemID, instrs []fieldemit.Instr)
}

// BasicUnitBuilder is a minimal in-memory UnitBuilder. It carries no real
// bytecode serialization format; the virtual machine that would consume
// its instructions is an external collaborator outside this module's
// scope (spec.md §1).
type BasicUnitBuilder struct {
	metas map[pool.ItemID]*query.PrivMeta
	code  map[pool.ItemID][]fieldemit.Instr
}

// NewBasicUnitBuilder creates an empty BasicUnitBuilder.
func NewBasicUnitBuilder() *BasicUnitBuilder {
	return &BasicUnitBuilder{
		metas: make(map[pool.ItemID]*query.PrivMeta),
		code:  make(map[pool.ItemID][]fieldemit.Instr),
	}
}

func (b *BasicUnitBuilder) InsertMeta(span source.Span, meta *query.PrivMeta) error {
	if existing, ok := b.metas[meta.Meta.Item]; ok {
		if existing.Payload.Kind != meta.Payload.Kind {
			return &Error{
				Code: diag.StructuralMetaConflict,
				Span: span,
				Msg:  fmt.Sprintf("conflicting unit meta for item %d", meta.Meta.Item),
			}
		}
		return nil
	}
	b.metas[meta.Meta.Item] = meta
	return nil
}

func (b *BasicUnitBuilder) EmitInstructions(item pool.ItemID, instrs []fieldemit.Instr) {
	b.code[item] = append(b.code[item], instrs...)
}

// Meta returns the installed meta for item, if any.
func (b *BasicUnitBuilder) Meta(item pool.ItemID) (*query.PrivMeta, bool) {
	m, ok := b.metas[item]
	return m, ok
}

// Instructions returns every instruction emitted for item, in emission order.
func (b *BasicUnitBuilder) Instructions(item pool.ItemID) []fieldemit.Instr {
	return b.code[item]
}

// Len reports how many items have installed meta.
func (b *BasicUnitBuilder) Len() int { return len(b.metas) }
