package nametable

import (
	"testing"

	"lumen/internal/pool"
	"lumen/internal/source"
)

func TestTableInsertAndContains(t *testing.T) {
	strs := source.NewInterner()
	a := strs.Intern("a")
	b := strs.Intern("b")
	items := pool.NewItems(strs)
	id := items.Intern(pool.Item{Components: []pool.Component{
		{Kind: pool.CompIdent, Ident: a},
		{Kind: pool.CompIdent, Ident: b},
	}})

	table := New(strs)
	table.Insert(items, id)

	if !table.Contains(items, id) {
		t.Fatalf("expected table to contain inserted item")
	}
}

func TestTableLookupPrefixMiss(t *testing.T) {
	strs := source.NewInterner()
	a := strs.Intern("a")
	c := strs.Intern("c")
	items := pool.NewItems(strs)
	id := items.Intern(pool.Item{Components: []pool.Component{{Kind: pool.CompIdent, Ident: a}}})

	table := New(strs)
	table.Insert(items, id)

	if _, ok := table.Lookup(strs, []pool.Component{{Kind: pool.CompIdent, Ident: c}}); ok {
		t.Fatalf("did not expect a match for an unrelated prefix")
	}
}

func TestTableChildrenSorted(t *testing.T) {
	strs := source.NewInterner()
	items := pool.NewItems(strs)
	table := New(strs)

	for _, name := range []string{"zebra", "alpha", "mango"} {
		id := strs.Intern(name)
		item := items.Intern(pool.Item{Components: []pool.Component{{Kind: pool.CompIdent, Ident: id}}})
		table.Insert(items, item)
	}

	children := table.Children(strs, nil)
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	for i := 1; i < len(children); i++ {
		if children[i-1] > children[i] {
			t.Fatalf("expected sorted children, got %v", children)
		}
	}
}
