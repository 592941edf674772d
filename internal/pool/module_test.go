package pool

import (
	"testing"

	"lumen/internal/source"
)

func TestModulesRootHasNoParent(t *testing.T) {
	strs := source.NewInterner()
	items := NewItems(strs)
	mods := NewModules(items.Root())

	root := mods.Get(mods.Root())
	if !root.IsRoot() {
		t.Fatalf("expected root module to report IsRoot")
	}
	if root.Item != items.Root() {
		t.Fatalf("expected root module's item to be the interned root item")
	}
}

func TestModulesAncestors(t *testing.T) {
	strs := source.NewInterner()
	a := strs.Intern("a")
	b := strs.Intern("b")
	items := NewItems(strs)
	mods := NewModules(items.Root())

	itemA := items.Intern(Item{Components: []Component{{Kind: CompIdent, Ident: a}}})
	modA := mods.New(source.Span{}, itemA, Visibility{Kind: VisPublic}, mods.Root())

	itemAB := items.Intern(Item{Components: []Component{{Kind: CompIdent, Ident: a}, {Kind: CompIdent, Ident: b}}})
	modAB := mods.New(source.Span{}, itemAB, Visibility{Kind: VisPublic}, modA)

	chain := mods.Ancestors(modAB)
	if len(chain) != 3 {
		t.Fatalf("expected chain of length 3, got %d", len(chain))
	}
	if chain[0] != modAB || chain[1] != modA || chain[2] != mods.Root() {
		t.Fatalf("unexpected ancestor chain: %v", chain)
	}
}
