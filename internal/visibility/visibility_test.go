package visibility

import (
	"testing"

	"lumen/internal/diag"
	"lumen/internal/pool"
	"lumen/internal/source"
)

type fixture struct {
	strs  *source.Interner
	items *pool.Items
	mods  *pool.Modules
	check *Checker
}

func newFixture() *fixture {
	strs := source.NewInterner()
	items := pool.NewItems(strs)
	mods := pool.NewModules(items.Root())
	return &fixture{strs: strs, items: items, mods: mods, check: New(mods, items, strs)}
}

func (f *fixture) item(names ...string) pool.ItemID {
	comps := make([]pool.Component, len(names))
	for i, n := range names {
		comps[i] = pool.Component{Kind: pool.CompIdent, Ident: f.strs.Intern(n)}
	}
	return f.items.Intern(pool.Item{Components: comps})
}

// TestVisibilityChain reproduces spec's worked example: root::m1::m2::C
// where m2 is pub(super). Access from root::m1 succeeds; access from
// root::other fails with NotVisibleMod, and the failing chain names m2.
func TestVisibilityChain(t *testing.T) {
	f := newFixture()

	m1Item := f.item("m1")
	m1Mod := f.mods.New(source.Span{}, m1Item, pool.Visibility{Kind: pool.VisPublic}, f.mods.Root())

	m2Item := f.item("m1", "m2")
	m2Loc := source.Span{Start: 42}
	m2Mod := f.mods.New(m2Loc, m2Item, pool.Visibility{Kind: pool.VisSuper}, m1Mod)

	otherItem := f.item("other")
	otherMod := f.mods.New(source.Span{}, otherItem, pool.Visibility{Kind: pool.VisPublic}, f.mods.Root())

	targetVis := pool.Visibility{Kind: pool.VisPublic}

	if err := f.check.Check(m1Mod, m2Mod, targetVis, source.Span{}); err != nil {
		t.Fatalf("expected access from root::m1 to succeed, got %v", err)
	}

	err := f.check.Check(otherMod, m2Mod, targetVis, source.Span{})
	verr, ok := err.(*Error)
	if !ok || verr.Code != diag.VisibilityNotVisibleMod {
		t.Fatalf("expected NotVisibleMod, got %v", err)
	}
	if verr.Span != m2Loc {
		t.Fatalf("expected the failing span to be m2's declaration site, got %v", verr.Span)
	}
}

func TestVisibilitySelfValueOnlyOwnModule(t *testing.T) {
	f := newFixture()

	m1Item := f.item("m1")
	m1Mod := f.mods.New(source.Span{}, m1Item, pool.Visibility{Kind: pool.VisPublic}, f.mods.Root())

	otherItem := f.item("other")
	otherMod := f.mods.New(source.Span{}, otherItem, pool.Visibility{Kind: pool.VisPublic}, f.mods.Root())

	targetVis := pool.Visibility{Kind: pool.VisSelfValue}

	if err := f.check.Check(m1Mod, m1Mod, targetVis, source.Span{}); err != nil {
		t.Fatalf("expected a module to see its own private item, got %v", err)
	}
	if err := f.check.Check(otherMod, m1Mod, targetVis, source.Span{}); err == nil {
		t.Fatalf("expected another module to be denied a pub(self) item")
	}
}

func TestVisibilityInPathAdmitsDescendants(t *testing.T) {
	f := newFixture()

	libItem := f.item("lib")
	libMod := f.mods.New(source.Span{}, libItem, pool.Visibility{Kind: pool.VisPublic}, f.mods.Root())

	subItem := f.item("lib", "sub")
	subMod := f.mods.New(source.Span{}, subItem, pool.Visibility{Kind: pool.VisPublic}, libMod)

	otherItem := f.item("other")
	otherMod := f.mods.New(source.Span{}, otherItem, pool.Visibility{Kind: pool.VisPublic}, f.mods.Root())

	targetVis := pool.Visibility{Kind: pool.VisIn, In: libItem}

	if err := f.check.Check(subMod, subMod, targetVis, source.Span{}); err != nil {
		t.Fatalf("expected a descendant of the 'in' path to see it, got %v", err)
	}
	if err := f.check.Check(otherMod, subMod, targetVis, source.Span{}); err == nil {
		t.Fatalf("expected a module outside the 'in' path to be denied")
	}
}
