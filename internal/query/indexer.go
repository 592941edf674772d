package query

import (
	"fmt"
	"strings"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/pool"
	"lumen/internal/source"
)

// Error wraps one of the diag.Code kinds in §7 with enough context to
// both report a diagnostic and bubble up as a Go error, matching this
// module's "errors both bubble up AND get reported" propagation policy.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Indexer stores indexed entries awaiting build, keyed by ItemID. It is
// an ordered multimap: insertion order within one item's entry list is
// preserved, which is what makes AmbiguousItem diagnostics list
// conflicting sources deterministically (spec.md §5, §9).
//
// Grounded on the teacher's symbols.resolver.Declare write-once pattern
// (internal/symbols/resolve.go), generalized from "declare a name once"
// to "queue an entry, possibly more than one, for later resolution".
type Indexer struct {
	byItem map[pool.ItemID][]IndexedEntry
	decls  map[ast.DeclID]pool.ItemID
	paths  map[ast.PathID]QueryPath
	items  *pool.Items
	mods   *pool.Modules
	strs   *source.Interner
}

// QueryPath is the indexing-time context recorded for every lexical path
// the path converter will later canonicalize (spec.md §4.4 step 1):
// which module the path occurs in, which impl's item `Self` resolves to
// (NoItemID outside an impl), and the enclosing item, kept for
// diagnostics.
type QueryPath struct {
	Module   pool.ModID
	ImplItem pool.ItemID
	Item     pool.ItemID
}

// NewIndexer creates an empty indexer bound to the shared item/module pools.
func NewIndexer(items *pool.Items, mods *pool.Modules, strs *source.Interner) *Indexer {
	return &Indexer{
		byItem: make(map[pool.ItemID][]IndexedEntry),
		decls:  make(map[ast.DeclID]pool.ItemID),
		paths:  make(map[ast.PathID]QueryPath),
		items:  items,
		mods:   mods,
		strs:   strs,
	}
}

// InsertPath records the QueryPath context for a path id at indexing time.
func (ix *Indexer) InsertPath(id ast.PathID, qp QueryPath) {
	ix.paths[id] = qp
}

// QueryPathFor returns the QueryPath previously recorded for id. A missing
// id is a fatal internal error per spec.md §4.4 step 1: the path converter
// panics rather than inventing a context, since it signals the indexing
// pass never visited a path the converter is now being asked to resolve.
func (ix *Indexer) QueryPathFor(id ast.PathID) QueryPath {
	qp, ok := ix.paths[id]
	if !ok {
		panic(fmt.Sprintf("query: no QueryPath recorded for path %d", id))
	}
	return qp
}

// Index appends entry to its item's list. Index may insert multiple
// entries for the same ItemID; ambiguity is resolved lazily by
// RemoveIndexed (spec.md §4.1).
func (ix *Indexer) Index(entry IndexedEntry) {
	item := entry.Meta.Item
	ix.byItem[item] = append(ix.byItem[item], entry)
}

// InsertNewItem interns a freshly declared item's path, recording which
// ast.DeclID it came from. Calling it twice for the same decl is a
// precondition violation (spec.md invariant 3) and panics, mirroring how
// this module's arenas panic on misuse rather than silently tolerating it.
func (ix *Indexer) InsertNewItem(decl ast.DeclID, item pool.Item) pool.ItemID {
	if decl.IsValid() {
		if _, ok := ix.decls[decl]; ok {
			panic(fmt.Sprintf("query: decl %d already has an interned item", decl))
		}
	}
	id := ix.items.Intern(item)
	if decl.IsValid() {
		ix.decls[decl] = id
	}
	return id
}

// InsertMod interns a new module and returns its ModID, delegating
// storage to the shared pool.Modules arena.
func (ix *Indexer) InsertMod(loc source.Span, item pool.ItemID, vis pool.Visibility, parent pool.ModID) pool.ModID {
	return ix.mods.New(loc, item, vis, parent)
}

// Pending reports whether item has at least one unbuilt indexed entry.
func (ix *Indexer) Pending(item pool.ItemID) bool {
	return len(ix.byItem[item]) > 0
}

// AllPending returns a snapshot of every item with at least one
// remaining indexed entry, in no particular order — callers needing
// determinism (queue_unused_entries) must sort by whatever key they care
// about themselves.
func (ix *Indexer) AllPending() []pool.ItemID {
	out := make([]pool.ItemID, 0, len(ix.byItem))
	for item, entries := range ix.byItem {
		if len(entries) > 0 {
			out = append(out, item)
		}
	}
	return out
}

// RemoveIndexed returns at most one entry for item, applying the
// wildcard tie-break: a single non-wildcard entry wins over any number
// of wildcard imports. More than one non-wildcard entry, or more than
// one wildcard entry with no winning non-wildcard one, is an
// AmbiguousItem error carrying every conflicting location (spec.md
// §4.1, §8 law 5, Open Question 2 resolved in DESIGN.md).
func (ix *Indexer) RemoveIndexed(span source.Span, item pool.ItemID) (*IndexedEntry, error) {
	entries := ix.byItem[item]
	if len(entries) == 0 {
		return nil, nil
	}

	var nonWildcard []int
	var wildcard []int
	for i, e := range entries {
		if e.Indexed.Kind == IndexedImport && e.Indexed.Wildcard {
			wildcard = append(wildcard, i)
		} else {
			nonWildcard = append(nonWildcard, i)
		}
	}

	switch {
	case len(nonWildcard) == 1:
		// The shadowed wildcard entries go with the winner, so nothing is
		// left indexed for item once it is built.
		winner := entries[nonWildcard[0]]
		delete(ix.byItem, item)
		return &winner, nil
	case len(nonWildcard) == 0 && len(wildcard) == 1:
		winner := entries[wildcard[0]]
		ix.byItem[item] = removeEntries(entries, wildcard[0])
		return &winner, nil
	case len(nonWildcard) == 0 && len(wildcard) == 0:
		return nil, nil
	default:
		locs := make([]string, 0, len(entries))
		for _, e := range entries {
			locs = append(locs, e.Meta.Location.String())
		}
		delete(ix.byItem, item)
		return nil, &Error{
			Code: diag.ImportAmbiguousItem,
			Span: span,
			Msg:  fmt.Sprintf("%q is ambiguous across %d candidates (%s)", ix.items.PathString(ix.strs, item), len(locs), strings.Join(locs, ", ")),
		}
	}
}

func removeEntries(entries []IndexedEntry, drop int) []IndexedEntry {
	out := make([]IndexedEntry, 0, len(entries)-1)
	for i, e := range entries {
		if i != drop {
			out = append(out, e)
		}
	}
	return out
}
