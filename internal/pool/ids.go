package pool

// ItemID identifies an interned Item (an ordered sequence of path
// components). Zero is reserved to mean "no item"; the crate root (the
// empty item) is interned as ItemID 1 by NewItems.
type ItemID uint32

// NoItemID marks the absence of an interned item. Note this is distinct
// from the empty/root item, which is a normal, validly interned ItemID
// with zero components.
const NoItemID ItemID = 0

// IsValid reports whether id refers to an allocated item.
func (id ItemID) IsValid() bool { return id != NoItemID }

// ModID identifies an interned Module record.
type ModID uint32

// NoModID marks the absence of a module reference.
const NoModID ModID = 0

// IsValid reports whether id refers to an allocated module.
func (id ModID) IsValid() bool { return id != NoModID }
