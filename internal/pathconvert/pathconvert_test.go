package pathconvert

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/hir"
	"lumen/internal/importresolve"
	"lumen/internal/nametable"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
)

type noopBuilder struct{}

func (noopBuilder) Build(entry *query.IndexedEntry) (query.PrivMetaPayload, hir.ExprID, error) {
	return query.PrivMetaPayload{Kind: query.PrivStruct}, hir.NoExprID, nil
}

type fixture struct {
	strs  *source.Interner
	items *pool.Items
	mods  *pool.Modules
	names *nametable.Table
	ix    *query.Indexer
	conv  *Converter
}

func newFixture() *fixture {
	strs := source.NewInterner()
	items := pool.NewItems(strs)
	mods := pool.NewModules(items.Root())
	names := nametable.New(strs)
	ix := query.NewIndexer(items, mods, strs)
	cache := query.NewMetaCache()
	resolver := importresolve.New(items, strs, ix, cache, noopBuilder{})
	conv := New(items, mods, strs, names, ix, resolver, Context{})
	return &fixture{strs: strs, items: items, mods: mods, names: names, ix: ix, conv: conv}
}

func (f *fixture) item(names ...string) pool.ItemID {
	comps := make([]pool.Component, len(names))
	for i, n := range names {
		comps[i] = pool.Component{Kind: pool.CompIdent, Ident: f.strs.Intern(n)}
	}
	return f.items.Intern(pool.Item{Components: comps})
}

func TestConvertClimbsModuleAncestry(t *testing.T) {
	f := newFixture()
	m1 := f.item("m1")
	m1mod := f.mods.New(source.Span{}, m1, pool.Visibility{Kind: pool.VisPublic}, f.mods.Root())
	target := f.item("m1", "target")
	f.names.Insert(f.items, target)

	f.ix.InsertPath(1, query.QueryPath{Module: m1mod})
	path := &ast.Path{ID: 1, Segments: []ast.PathSegment{{Kind: ast.SegIdent, Ident: f.strs.Intern("target")}}}

	got, err := f.conv.Convert(source.Span{}, path, query.UsedUsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != target {
		t.Fatalf("expected %d, got %d", target, got)
	}
}

func TestConvertFallsBackToSubmodule(t *testing.T) {
	f := newFixture()
	m1 := f.item("m1")
	m1mod := f.mods.New(source.Span{}, m1, pool.Visibility{Kind: pool.VisPublic}, f.mods.Root())

	f.ix.InsertPath(2, query.QueryPath{Module: m1mod})
	path := &ast.Path{ID: 2, Segments: []ast.PathSegment{{Kind: ast.SegIdent, Ident: f.strs.Intern("unknown")}}}

	got, err := f.conv.Convert(source.Span{}, path, query.UsedUsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := f.item("m1", "unknown")
	if got != want {
		t.Fatalf("expected submodule item %d, got %d", want, got)
	}
}

func TestConvertGlobalPrefix(t *testing.T) {
	f := newFixture()
	f.ix.InsertPath(3, query.QueryPath{Module: f.mods.Root()})
	path := &ast.Path{ID: 3, Segments: []ast.PathSegment{
		{Kind: ast.SegGlobal},
		{Kind: ast.SegIdent, Ident: f.strs.Intern("top")},
	}}

	got, err := f.conv.Convert(source.Span{}, path, query.UsedUsed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := f.item("top")
	if got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestConvertSelfTypeOutsideImplFails(t *testing.T) {
	f := newFixture()
	f.ix.InsertPath(4, query.QueryPath{Module: f.mods.Root(), ImplItem: pool.NoItemID})
	path := &ast.Path{ID: 4, Segments: []ast.PathSegment{{Kind: ast.SegSelfType}}}

	_, err := f.conv.Convert(source.Span{}, path, query.UsedUsed)
	perr, ok := err.(*Error)
	if !ok || perr.Code != diag.PathUnsupportedSelfType {
		t.Fatalf("expected PathUnsupportedSelfType, got %v", err)
	}
}

func TestConvertSuperAtRootFails(t *testing.T) {
	f := newFixture()
	f.ix.InsertPath(5, query.QueryPath{Module: f.mods.Root()})
	path := &ast.Path{ID: 5, Segments: []ast.PathSegment{{Kind: ast.SegSuper}}}

	_, err := f.conv.Convert(source.Span{}, path, query.UsedUsed)
	perr, ok := err.(*Error)
	if !ok || perr.Code != diag.PathUnsupportedSuper {
		t.Fatalf("expected PathUnsupportedSuper, got %v", err)
	}
}

func TestConvertGenericsThenSegmentFails(t *testing.T) {
	f := newFixture()
	f.ix.InsertPath(6, query.QueryPath{Module: f.mods.Root()})
	path := &ast.Path{ID: 6, Segments: []ast.PathSegment{
		{Kind: ast.SegIdent, Ident: f.strs.Intern("top")},
		{Kind: ast.SegGenerics},
		{Kind: ast.SegIdent, Ident: f.strs.Intern("after")},
	}}

	_, err := f.conv.Convert(source.Span{}, path, query.UsedUsed)
	perr, ok := err.(*Error)
	if !ok || perr.Code != diag.PathUnsupportedAfterGeneric {
		t.Fatalf("expected PathUnsupportedAfterGeneric, got %v", err)
	}
}
