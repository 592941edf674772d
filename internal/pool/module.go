package pool

import (
	"fmt"

	"fortio.org/safecast"

	"lumen/internal/source"
)

// Module records one module's identity: its canonical item, its
// declared visibility, and a link to its parent. The root module has
// NoModID as its parent and ItemID pointing at the empty item.
type Module struct {
	ID         ModID
	Location   source.Span
	Item       ItemID
	Visibility Visibility
	Parent     ModID
}

// IsRoot reports whether m is the crate root module.
func (m *Module) IsRoot() bool { return !m.Parent.IsValid() }

// Modules is the dense-ID arena backing interned Module records, mirroring
// the teacher's slice-based Scopes/Symbols arenas with a reserved zero
// index for NoModID.
type Modules struct {
	data []Module
}

// NewModules creates an empty module arena with the crate root pre-allocated
// as ModID 1.
func NewModules(root ItemID) *Modules {
	m := &Modules{data: make([]Module, 1, 16)}
	m.New(source.Span{}, root, Visibility{Kind: VisPublic}, NoModID)
	return m
}

// New allocates a module and returns its ID.
func (m *Modules) New(loc source.Span, item ItemID, vis Visibility, parent ModID) ModID {
	n, err := safecast.Conv[uint32](len(m.data))
	if err != nil {
		panic(fmt.Errorf("pool: module overflow: %w", err))
	}
	id := ModID(n)
	m.data = append(m.data, Module{ID: id, Location: loc, Item: item, Visibility: vis, Parent: parent})
	return id
}

// Get returns the module for id. Panics on an id beyond those issued;
// NoModID reads back the reserved zero Module.
func (m *Modules) Get(id ModID) *Module {
	return &m.data[id]
}

// Root returns the pre-allocated crate root ModID.
func (m *Modules) Root() ModID {
	return 1
}

// Len returns the number of allocated modules.
func (m *Modules) Len() int {
	return len(m.data) - 1
}

// Ancestors returns the chain of modules from id up to (and including)
// the crate root, closest first. Used by the visibility checker (§4.5) to
// find the longest common prefix between two modules.
func (m *Modules) Ancestors(id ModID) []ModID {
	var out []ModID
	for id.IsValid() {
		out = append(out, id)
		id = m.Get(id).Parent
	}
	return out
}
