package importresolve

import (
	"testing"

	"lumen/internal/diag"
	"lumen/internal/hir"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
)

type noopBuilder struct{}

func (noopBuilder) Build(entry *query.IndexedEntry) (query.PrivMetaPayload, hir.ExprID, error) {
	return query.PrivMetaPayload{Kind: query.PrivStruct}, hir.NoExprID, nil
}

func setup() (*source.Interner, *pool.Items, *pool.Modules, *query.Indexer, *query.MetaCache) {
	strs := source.NewInterner()
	items := pool.NewItems(strs)
	mods := pool.NewModules(items.Root())
	ix := query.NewIndexer(items, mods, strs)
	cache := query.NewMetaCache()
	return strs, items, mods, ix, cache
}

func itemOf(strs *source.Interner, items *pool.Items, names ...string) pool.ItemID {
	comps := make([]pool.Component, len(names))
	for i, n := range names {
		comps[i] = pool.Component{Kind: pool.CompIdent, Ident: strs.Intern(n)}
	}
	return items.Intern(pool.Item{Components: comps})
}

func TestImportRedirectsTail(t *testing.T) {
	strs, items, mods, ix, cache := setup()
	itemA := itemOf(strs, items, "a")
	itemB := itemOf(strs, items, "b")
	itemBX := itemOf(strs, items, "b", "x")
	itemAX := itemOf(strs, items, "a", "x")

	ix.Index(query.IndexedEntry{
		Meta:    query.ItemMeta{Item: itemA, Module: mods.Root()},
		Indexed: query.Indexed{Kind: query.IndexedImport, Import: query.ImportEntry{Target: itemB, Module: mods.Root()}},
	})

	r := New(items, strs, ix, cache, noopBuilder{})
	got, rewrote, err := r.Import(source.Span{}, mods.Root(), itemAX, query.UsedUsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rewrote {
		t.Fatalf("expected a rewrite")
	}
	if got != itemBX {
		t.Fatalf("expected rewritten item to be b::x, got %d want %d", got, itemBX)
	}
}

func TestImportCycleDetected(t *testing.T) {
	strs, items, mods, ix, cache := setup()
	itemA := itemOf(strs, items, "a")
	itemB := itemOf(strs, items, "b")

	ix.Index(query.IndexedEntry{
		Meta:    query.ItemMeta{Item: itemA, Module: mods.Root(), Location: source.Span{Start: 1}},
		Indexed: query.Indexed{Kind: query.IndexedImport, Import: query.ImportEntry{Target: itemB, Module: mods.Root(), Location: source.Span{Start: 1}}},
	})
	ix.Index(query.IndexedEntry{
		Meta:    query.ItemMeta{Item: itemB, Module: mods.Root(), Location: source.Span{Start: 2}},
		Indexed: query.Indexed{Kind: query.IndexedImport, Import: query.ImportEntry{Target: itemA, Module: mods.Root(), Location: source.Span{Start: 2}}},
	})

	r := New(items, strs, ix, cache, noopBuilder{})
	_, _, err := r.Import(source.Span{}, mods.Root(), itemA, query.UsedUsed)
	ierr, ok := err.(*Error)
	if !ok || ierr.Code != diag.ImportCycle {
		t.Fatalf("expected ImportCycle, got %v", err)
	}
}

func TestImportNoRedirectReturnsFalse(t *testing.T) {
	strs, items, mods, ix, cache := setup()
	itemA := itemOf(strs, items, "a")

	r := New(items, strs, ix, cache, noopBuilder{})
	got, rewrote, err := r.Import(source.Span{}, mods.Root(), itemA, query.UsedUsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rewrote {
		t.Fatalf("did not expect a rewrite, got %d", got)
	}
}
