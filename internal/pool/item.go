package pool

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"lumen/internal/source"
)

// ComponentKind distinguishes the four shapes a path component can take.
type ComponentKind uint8

const (
	CompIdent ComponentKind = iota
	// CompCrate is the literal `crate` component, only ever first.
	CompCrate
	// CompSuper is the literal `super` component.
	CompSuper
	// CompIndex is an integer component used for anonymous nesting, e.g.
	// the synthetic item of a closure's Nth capture block.
	CompIndex
)

// Component is one segment of an interned Item.
type Component struct {
	Kind  ComponentKind
	Ident source.StringID
	Index uint32
}

func (c Component) key(strs *source.Interner) string {
	switch c.Kind {
	case CompCrate:
		return "crate"
	case CompSuper:
		return "super"
	case CompIndex:
		return "#" + strconv.FormatUint(uint64(c.Index), 10)
	default:
		if strs == nil {
			return fmt.Sprintf("ident:%d", c.Ident)
		}
		s, _ := strs.Lookup(c.Ident)
		return "ident:" + s
	}
}

// Item is the canonical, ordered component sequence backing an ItemID.
type Item struct {
	ID         ItemID
	Components []Component
}

// Empty reports whether the item is the crate root (zero components).
func (it *Item) Empty() bool { return len(it.Components) == 0 }

// Join returns a new, un-interned Item with extra appended after it.
func (it *Item) Join(extra ...Component) Item {
	out := make([]Component, 0, len(it.Components)+len(extra))
	out = append(out, it.Components...)
	out = append(out, extra...)
	return Item{Components: out}
}

// Parent returns the item with its last component removed, and whether
// one existed to remove.
func (it *Item) Parent() (Item, bool) {
	if len(it.Components) == 0 {
		return Item{}, false
	}
	return Item{Components: append([]Component(nil), it.Components[:len(it.Components)-1]...)}, true
}

// Items interns Item values into dense ItemIDs, deduplicating by
// component sequence the way source.Interner deduplicates strings.
type Items struct {
	strs  *source.Interner
	byID  []Item
	index map[string]ItemID
}

// NewItems creates a pool with the crate root pre-interned as ItemID 1
// (NoItemID stays reserved at 0 for "absent", distinct from the root).
func NewItems(strs *source.Interner) *Items {
	p := &Items{
		strs:  strs,
		byID:  make([]Item, 1, 64),
		index: make(map[string]ItemID, 64),
	}
	root := p.Intern(Item{})
	_ = root
	return p
}

func componentsKey(strs *source.Interner, comps []Component) string {
	var b strings.Builder
	for i, c := range comps {
		if i > 0 {
			b.WriteByte('\x00')
		}
		b.WriteString(c.key(strs))
	}
	return b.String()
}

// Intern inserts item if absent and returns its (possibly pre-existing) ID.
func (p *Items) Intern(item Item) ItemID {
	key := componentsKey(p.strs, item.Components)
	if id, ok := p.index[key]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(p.byID))
	if err != nil {
		panic(fmt.Errorf("pool: item overflow: %w", err))
	}
	id := ItemID(n)
	item.ID = id
	p.byID = append(p.byID, item)
	p.index[key] = id
	return id
}

// Get returns the item for id. Panics on an id beyond those issued,
// matching this module's other dense arenas; NoItemID reads back the
// reserved zero Item.
func (p *Items) Get(id ItemID) *Item {
	return &p.byID[id]
}

// Root returns the pre-interned crate root ItemID.
func (p *Items) Root() ItemID {
	return 1
}

// Len returns the number of distinct interned items.
func (p *Items) Len() int {
	return len(p.byID) - 1
}

// PathString renders id as a `::`-joined path, used for diagnostic
// messages (AmbiguousItem, ImportCycle) and as the basis for this
// module's item hashing.
func (p *Items) PathString(strs *source.Interner, id ItemID) string {
	it := p.Get(id)
	if it.Empty() {
		return "crate"
	}
	var b strings.Builder
	for i, c := range it.Components {
		if i > 0 {
			b.WriteString("::")
		}
		switch c.Kind {
		case CompCrate:
			b.WriteString("crate")
		case CompSuper:
			b.WriteString("super")
		case CompIndex:
			b.WriteString("#")
			b.WriteString(strconv.FormatUint(uint64(c.Index), 10))
		default:
			s, _ := strs.Lookup(c.Ident)
			b.WriteString(s)
		}
	}
	return b.String()
}
