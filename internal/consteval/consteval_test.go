package consteval

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/hir"
	"lumen/internal/literal"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
)

func newFixture() (*hir.Arena[hir.Expr], *literal.Storage, *source.FileSet, *source.Interner) {
	exprs := hir.NewArena[hir.Expr](16)
	strs := source.NewInterner()
	files := source.NewFileSet()
	lits := literal.NewStorage(files, strs)
	return exprs, lits, files, strs
}

func TestEvalLiteralInt(t *testing.T) {
	exprs, lits, files, strs := newFixture()
	fileID := files.AddVirtual("const.lm", []byte("42"))
	span := source.Span{File: fileID, Start: 0, End: 2}

	litID := lits.ResolveInt(span)
	id := hir.ExprID(exprs.Alloc(hir.Expr{Kind: hir.ExprLiteral, Literal: litID}))

	items := pool.NewItems(strs)
	mods := pool.NewModules(items.Root())
	ix := query.NewIndexer(items, mods, strs)
	cache := query.NewMetaCache()
	eng := query.NewEngine(ix, cache, nil)

	ev := New(exprs, lits, eng, 10)
	got, err := ev.Eval(span, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != query.ConstInt || got.Int != 42 {
		t.Fatalf("expected ConstInt 42, got %+v", got)
	}
}

func TestEvalTupleAndFieldAccess(t *testing.T) {
	exprs, lits, _, strs := newFixture()
	span := source.Span{}

	a := lits.ResolveBool(span, true)
	b := lits.ResolveBool(span, false)
	aID := hir.ExprID(exprs.Alloc(hir.Expr{Kind: hir.ExprLiteral, Literal: a}))
	bID := hir.ExprID(exprs.Alloc(hir.Expr{Kind: hir.ExprLiteral, Literal: b}))
	tupleID := hir.ExprID(exprs.Alloc(hir.Expr{Kind: hir.ExprTuple, Elements: []hir.ExprID{aID, bID}}))
	accessID := hir.ExprID(exprs.Alloc(hir.Expr{
		Kind:   hir.ExprFieldAccess,
		Object: tupleID,
		Field:  ast.FieldKey{Kind: ast.FieldKeyIndex, Index: 1},
	}))

	items := pool.NewItems(strs)
	mods := pool.NewModules(items.Root())
	ix := query.NewIndexer(items, mods, strs)
	cache := query.NewMetaCache()
	eng := query.NewEngine(ix, cache, nil)

	ev := New(exprs, lits, eng, 10)
	got, err := ev.Eval(span, accessID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != query.ConstBool || got.Bool {
		t.Fatalf("expected ConstBool false (tuple.1), got %+v", got)
	}
}

func TestEvalBudgetExceeded(t *testing.T) {
	exprs, lits, _, strs := newFixture()
	span := source.Span{}

	// Build a chain of 5 nested one-element tuples, each reduction
	// consuming one unit of budget; a budget of 3 cannot finish it.
	cur := hir.ExprID(exprs.Alloc(hir.Expr{Kind: hir.ExprLiteral, Literal: lits.ResolveBool(span, true)}))
	for i := 0; i < 5; i++ {
		cur = hir.ExprID(exprs.Alloc(hir.Expr{Kind: hir.ExprTuple, Elements: []hir.ExprID{cur}}))
	}

	items := pool.NewItems(strs)
	mods := pool.NewModules(items.Root())
	ix := query.NewIndexer(items, mods, strs)
	cache := query.NewMetaCache()
	eng := query.NewEngine(ix, cache, nil)

	ev := New(exprs, lits, eng, 3)
	_, err := ev.Eval(span, cur)
	cerr, ok := err.(*Error)
	if !ok || cerr.Code != diag.ConstBudgetExceeded {
		t.Fatalf("expected ConstBudgetExceeded, got %v", err)
	}
}

type constBuilder struct {
	value query.ConstValue
}

func (b *constBuilder) Build(entry *query.IndexedEntry) (query.PrivMetaPayload, hir.ExprID, error) {
	return query.PrivMetaPayload{Kind: query.PrivConst, Value: b.value}, hir.NoExprID, nil
}

func TestEvalItemReentersEngine(t *testing.T) {
	exprs, lits, _, strs := newFixture()
	span := source.Span{}

	items := pool.NewItems(strs)
	mods := pool.NewModules(items.Root())
	ix := query.NewIndexer(items, mods, strs)
	cache := query.NewMetaCache()

	name := strs.Intern("MAX")
	item := items.Intern(pool.Item{Components: []pool.Component{{Kind: pool.CompIdent, Ident: name}}})
	ix.Index(query.IndexedEntry{
		Meta:    query.ItemMeta{Item: item, Module: mods.Root()},
		Indexed: query.Indexed{Kind: query.IndexedConst},
	})

	builder := &constBuilder{value: query.ConstValue{Kind: query.ConstInt, Int: 42}}
	eng := query.NewEngine(ix, cache, builder)

	itemExprID := hir.ExprID(exprs.Alloc(hir.Expr{Kind: hir.ExprItem, Item: item}))

	ev := New(exprs, lits, eng, 10)
	got, err := ev.Eval(span, itemExprID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Kind != query.ConstInt || got.Int != 42 {
		t.Fatalf("expected ConstInt 42, got %+v", got)
	}
}
