package query

import (
	"testing"

	"lumen/internal/pool"
	"lumen/internal/source"
)

func TestBuildQueueFIFO(t *testing.T) {
	q := NewBuildQueue()
	q.Push(BuildEntry{Meta: ItemMeta{Item: 1}, Build: BuildFunction})
	q.Push(BuildEntry{Meta: ItemMeta{Item: 2}, Build: BuildImport})

	first, ok := q.Pop()
	if !ok || first.Meta.Item != 1 {
		t.Fatalf("expected item 1 first, got %v ok=%v", first, ok)
	}
	second, ok := q.Pop()
	if !ok || second.Meta.Item != 2 {
		t.Fatalf("expected item 2 second, got %v ok=%v", second, ok)
	}
	if _, ok := q.Pop(); ok {
		t.Fatalf("expected queue to be empty")
	}
}

func TestQueueUnusedEntriesDrainsIndexer(t *testing.T) {
	strs := source.NewInterner()
	items := pool.NewItems(strs)
	mods := pool.NewModules(items.Root())
	ix := NewIndexer(items, mods, strs)

	x := strs.Intern("x")
	item := items.Intern(pool.Item{Components: []pool.Component{{Kind: pool.CompIdent, Ident: x}}})
	ix.Index(IndexedEntry{Meta: ItemMeta{Item: item, Module: mods.Root()}, Indexed: Indexed{Kind: IndexedStruct}})

	q := NewBuildQueue()
	if !q.QueueUnusedEntries(ix) {
		t.Fatalf("expected entries to be queued")
	}
	if q.Len() != 1 {
		t.Fatalf("expected one queued entry, got %d", q.Len())
	}
	if q.QueueUnusedEntries(ix) {
		t.Fatalf("expected false once the indexer is drained")
	}
}
