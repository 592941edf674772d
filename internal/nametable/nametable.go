package nametable

import (
	"sort"

	"lumen/internal/pool"
	"lumen/internal/source"
)

// node is one level of the trie, keyed by a single path component. The
// teacher's symbols.Scope.NameIndex is a flat map[StringID][]SymbolID
// within one scope; here the keying has to span arbitrarily many nested
// module levels, so each level gets its own node with its own children
// map instead of a single flat index.
type node struct {
	children map[string]*node
	item     pool.ItemID // zero (NoItemID) unless an item terminates exactly here
	present  bool
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// Table is a trie over every indexed item's canonical path, supporting
// prefix queries and sorted-child iteration (spec.md §5: "the name table
// iterates children in sorted order").
type Table struct {
	strs *source.Interner
	root *node
}

// New creates an empty name table.
func New(strs *source.Interner) *Table {
	return &Table{strs: strs, root: newNode()}
}

func componentKey(strs *source.Interner, c pool.Component) string {
	switch c.Kind {
	case pool.CompCrate:
		return "crate"
	case pool.CompSuper:
		return "super"
	case pool.CompIndex:
		return "#" + itoa(c.Index)
	default:
		s, _ := strs.Lookup(c.Ident)
		return "i:" + s
	}
}

func itoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// insertAt walks comps into the trie and marks id as the terminal item,
// regardless of whether comps equals id's own canonical path.
func (t *Table) insertAt(comps []pool.Component, id pool.ItemID) {
	cur := t.root
	for _, c := range comps {
		key := componentKey(t.strs, c)
		child, ok := cur.children[key]
		if !ok {
			child = newNode()
			cur.children[key] = child
		}
		cur = child
	}
	cur.item = id
	cur.present = true
}

// Insert records item's full path (spec.md invariant 6: "the name table
// contains every indexed item's canonical path").
func (t *Table) Insert(items *pool.Items, id pool.ItemID) {
	it := items.Get(id)
	t.insertAt(it.Components, id)
}

// InsertAlias binds id under comps even though comps need not equal id's
// own canonical path. Used for prelude entries (spec.md §4.4's "consult
// the prelude" fallback), which bind a short implicitly-imported name to
// a fully-qualified item elsewhere in the crate.
func (t *Table) InsertAlias(comps []pool.Component, id pool.ItemID) {
	t.insertAt(comps, id)
}

// Contains reports whether item's exact path was inserted.
func (t *Table) Contains(items *pool.Items, id pool.ItemID) bool {
	it := items.Get(id)
	cur := t.root
	for _, c := range it.Components {
		key := componentKey(t.strs, c)
		child, ok := cur.children[key]
		if !ok {
			return false
		}
		cur = child
	}
	return cur.present
}

// Lookup walks prefix component by component and returns the item bound at
// the node reached,
// or false if any component is missing. Used by the path converter's
// convert_initial_path loop (§4.4) to test successively shorter prefixes.
func (t *Table) Lookup(strs *source.Interner, prefix []pool.Component) (pool.ItemID, bool) {
	cur := t.root
	for _, c := range prefix {
		key := componentKey(strs, c)
		child, ok := cur.children[key]
		if !ok {
			return pool.NoItemID, false
		}
		cur = child
	}
	if !cur.present {
		return pool.NoItemID, false
	}
	return cur.item, true
}

// HasPrefix reports whether any inserted item starts with prefix, even if
// prefix itself was never inserted as a complete item.
func (t *Table) HasPrefix(strs *source.Interner, prefix []pool.Component) bool {
	cur := t.root
	for _, c := range prefix {
		key := componentKey(strs, c)
		child, ok := cur.children[key]
		if !ok {
			return false
		}
		cur = child
	}
	return true
}

// Children returns the sorted component keys of prefix's immediate
// children. Sorting makes iteration deterministic across runs, per §5.
func (t *Table) Children(strs *source.Interner, prefix []pool.Component) []string {
	cur := t.root
	for _, c := range prefix {
		key := componentKey(strs, c)
		child, ok := cur.children[key]
		if !ok {
			return nil
		}
		cur = child
	}
	keys := make([]string, 0, len(cur.children))
	for k := range cur.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
