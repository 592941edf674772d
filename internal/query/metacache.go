package query

import (
	"fmt"
	"reflect"

	"lumen/internal/diag"
	"lumen/internal/pool"
	"lumen/internal/source"
)

// MetaCache is the write-once, conflict-detecting store of canonical
// PrivMeta records (spec.md §3, §9: "write-once maps with entry API").
// Grounded on the teacher's symbols.resolver.Declare, which already
// implements "insert if absent, else report a conflict" for symbol
// names; here the same primitive is keyed by ItemID instead.
type MetaCache struct {
	byItem map[pool.ItemID]*PrivMeta
	used   map[pool.ItemID]Used
}

// NewMetaCache creates an empty meta cache.
func NewMetaCache() *MetaCache {
	return &MetaCache{
		byItem: make(map[pool.ItemID]*PrivMeta),
		used:   make(map[pool.ItemID]Used),
	}
}

// Get returns the cached meta for item, if any.
func (c *MetaCache) Get(item pool.ItemID) (*PrivMeta, bool) {
	m, ok := c.byItem[item]
	return m, ok
}

// Insert installs meta for item exactly once. A second, differing
// insertion for the same item returns MetaConflict (spec.md invariant 2,
// §8 law 1); re-inserting byte-identical metadata is tolerated as
// idempotent, matching §6's "unit builder... must accept idempotent meta
// installation".
func (c *MetaCache) Insert(item pool.ItemID, meta PrivMeta) error {
	existing, ok := c.byItem[item]
	if !ok {
		stored := meta
		c.byItem[item] = &stored
		return nil
	}
	if metaEqual(existing, &meta) {
		return nil
	}
	return &Error{
		Code: diag.StructuralMetaConflict,
		Span: meta.Meta.Location,
		Msg:  fmt.Sprintf("conflicting meta for item %d", item),
	}
}

func metaEqual(a, b *PrivMeta) bool {
	return reflect.DeepEqual(*a, *b)
}

// MarkUsed upgrades item's usage state to Used without rebuilding it.
// This is SUPPLEMENTED FEATURE 1 in SPEC_FULL.md: a re-query of an
// already-built item must be able to flip Unused → Used in place.
func (c *MetaCache) MarkUsed(item pool.ItemID) {
	c.used[item] = UsedUsed
}

// IsUsed reports item's recorded usage state. Items never explicitly
// marked default to UsedUnused so an un-set item does not look used.
func (c *MetaCache) IsUsed(item pool.ItemID) Used {
	if u, ok := c.used[item]; ok {
		return u
	}
	return UsedUnused
}

// MarkUnusedIfAbsent records item as unused only if no usage state was
// recorded yet, so a prior MarkUsed is never downgraded.
func (c *MetaCache) MarkUnusedIfAbsent(item pool.ItemID) {
	if _, ok := c.used[item]; !ok {
		c.used[item] = UsedUnused
	}
}

// Len reports the number of cached items.
func (c *MetaCache) Len() int {
	return len(c.byItem)
}

// All returns a snapshot of every cached meta record, in no particular
// order. internal/engine's snapshot writer sorts the result itself before
// encoding, so callers needing determinism must not rely on this order.
func (c *MetaCache) All() []PrivMeta {
	out := make([]PrivMeta, 0, len(c.byItem))
	for _, m := range c.byItem {
		out = append(out, *m)
	}
	return out
}

// location reports the source.Span carried by item's cached meta, or the
// zero Span when item has none.
func (c *MetaCache) location(item pool.ItemID) source.Span {
	if m, ok := c.byItem[item]; ok {
		return m.Meta.Location
	}
	return source.Span{}
}
