package pool

import (
	"testing"

	"lumen/internal/source"
)

func TestItemsInternDedup(t *testing.T) {
	strs := source.NewInterner()
	a := strs.Intern("a")
	b := strs.Intern("b")

	items := NewItems(strs)
	id1 := items.Intern(Item{Components: []Component{{Kind: CompIdent, Ident: a}, {Kind: CompIdent, Ident: b}}})
	id2 := items.Intern(Item{Components: []Component{{Kind: CompIdent, Ident: a}, {Kind: CompIdent, Ident: b}}})
	if id1 != id2 {
		t.Fatalf("expected dedup, got %d and %d", id1, id2)
	}
}

func TestItemsRootIsEmpty(t *testing.T) {
	strs := source.NewInterner()
	items := NewItems(strs)
	root := items.Get(items.Root())
	if !root.Empty() {
		t.Fatalf("expected root item to be empty")
	}
}

func TestItemJoinAndParent(t *testing.T) {
	strs := source.NewInterner()
	a := strs.Intern("a")
	items := NewItems(strs)
	root := items.Get(items.Root())

	joined := root.Join(Component{Kind: CompIdent, Ident: a})
	if len(joined.Components) != 1 {
		t.Fatalf("expected one component after join")
	}

	parent, ok := joined.Parent()
	if !ok {
		t.Fatalf("expected parent to exist")
	}
	if !parent.Empty() {
		t.Fatalf("expected parent to be the empty root item")
	}
}

func TestItemsDistinctSequencesGetDistinctIDs(t *testing.T) {
	strs := source.NewInterner()
	a := strs.Intern("a")
	b := strs.Intern("b")
	items := NewItems(strs)

	idA := items.Intern(Item{Components: []Component{{Kind: CompIdent, Ident: a}}})
	idB := items.Intern(Item{Components: []Component{{Kind: CompIdent, Ident: b}}})
	if idA == idB {
		t.Fatalf("expected distinct ids for distinct components")
	}
}
