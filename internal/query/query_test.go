package query

import (
	"testing"

	"lumen/internal/hir"
	"lumen/internal/pool"
	"lumen/internal/source"
)

type stubBuilder struct {
	calls int
}

func (b *stubBuilder) Build(entry *IndexedEntry) (PrivMetaPayload, hir.ExprID, error) {
	b.calls++
	return PrivMetaPayload{Kind: PrivStruct}, hir.NoExprID, nil
}

func TestQueryMetaBuildsOnce(t *testing.T) {
	strs := source.NewInterner()
	items := pool.NewItems(strs)
	mods := pool.NewModules(items.Root())
	ix := NewIndexer(items, mods, strs)
	cache := NewMetaCache()
	builder := &stubBuilder{}
	engine := NewEngine(ix, cache, builder)

	x := strs.Intern("x")
	item := items.Intern(pool.Item{Components: []pool.Component{{Kind: pool.CompIdent, Ident: x}}})
	ix.Index(IndexedEntry{Meta: ItemMeta{Item: item, Module: mods.Root()}, Indexed: Indexed{Kind: IndexedStruct}})

	meta1, err := engine.QueryMeta(source.Span{}, item, UsedUsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta2, err := engine.QueryMeta(source.Span{}, item, UsedUsed)
	if err != nil {
		t.Fatalf("unexpected error on cached lookup: %v", err)
	}
	if meta1.Meta.Item != meta2.Meta.Item {
		t.Fatalf("expected identical meta on repeated query")
	}
	if builder.calls != 1 {
		t.Fatalf("expected builder to run exactly once, ran %d times", builder.calls)
	}
	if ix.Pending(item) {
		t.Fatalf("expected no indexed entry left once meta is cached (invariant 1)")
	}
}

func TestQueryMetaMissingEntryIsMissingID(t *testing.T) {
	strs := source.NewInterner()
	items := pool.NewItems(strs)
	mods := pool.NewModules(items.Root())
	ix := NewIndexer(items, mods, strs)
	cache := NewMetaCache()
	engine := NewEngine(ix, cache, &stubBuilder{})

	x := strs.Intern("missing")
	item := items.Intern(pool.Item{Components: []pool.Component{{Kind: pool.CompIdent, Ident: x}}})

	_, err := engine.QueryMeta(source.Span{}, item, UsedUsed)
	if err == nil {
		t.Fatalf("expected an error for a never-indexed item")
	}
}
