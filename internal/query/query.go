package query

import (
	"fmt"

	"lumen/internal/diag"
	"lumen/internal/hir"
	"lumen/internal/pool"
	"lumen/internal/source"
)

// Builder builds an already-removed IndexedEntry into its canonical
// PrivMeta payload. Implemented by internal/engine, which owns the
// constant evaluator and field-access emitter a build may need to
// invoke (and which may itself re-enter QueryMeta — see Engine's doc
// comment on re-entrancy).
type Builder interface {
	Build(entry *IndexedEntry) (PrivMetaPayload, hir.ExprID, error)
}

// Engine ties the indexer and meta cache together behind the single
// entry point spec.md §4.1 calls query_meta: return cached meta if
// present, else remove the indexed entry and build it.
//
// Re-entry is expected: a Builder's Build call may itself call QueryMeta
// again (constant evaluation resolving another constant it depends on,
// per spec.md §4.6). Nothing here holds a lock across Build, so nested
// calls are safe as long as Builder does not try to remove the same item
// twice concurrently — which cannot happen in this single-threaded
// model (spec.md §5).
type Engine struct {
	Indexer *Indexer
	Cache   *MetaCache
	Builder Builder
}

// NewEngine creates a query engine bound to ix, cache and builder.
func NewEngine(ix *Indexer, cache *MetaCache, builder Builder) *Engine {
	return &Engine{Indexer: ix, Cache: cache, Builder: builder}
}

// QueryMeta implements spec.md §4.1's query_meta. On success, it
// guarantees the indexer invariant "no corresponding entry remains in
// the indexer for any item in the meta cache" (invariant 1), since the
// entry was already removed by RemoveIndexed before the cache insert.
func (e *Engine) QueryMeta(span source.Span, item pool.ItemID, used Used) (*PrivMeta, error) {
	if meta, ok := e.Cache.Get(item); ok {
		if used == UsedUsed {
			e.Cache.MarkUsed(item)
		}
		return meta, nil
	}

	entry, err := e.Indexer.RemoveIndexed(span, item)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, &Error{
			Code: diag.StructuralMissingID,
			Span: span,
			Msg:  fmt.Sprintf("no indexed entry or cached meta for item %d", item),
		}
	}

	payload, src, err := e.Builder.Build(entry)
	if err != nil {
		return nil, err
	}

	meta := PrivMeta{Meta: entry.Meta, Payload: payload, Source: src}
	if err := e.Cache.Insert(item, meta); err != nil {
		return nil, err
	}
	if used == UsedUsed {
		e.Cache.MarkUsed(item)
	} else {
		e.Cache.MarkUnusedIfAbsent(item)
	}

	got, _ := e.Cache.Get(item)
	return got, nil
}
