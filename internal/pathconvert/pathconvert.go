// Package pathconvert implements the Path Converter component of spec.md
// §4.4: turning a lexical, unresolved ast.Path into a canonical
// pool.ItemID. Grounded on the segment-by-segment climb in the teacher's
// internal/symbols/resolve_imports.go and internal/symbols/resolve.go
// (Lookup walking the scope chain one level at a time, retrying shorter
// prefixes on miss), generalized from a lexical scope chain to a
// module-path one, since this spec has no lexical scoping at all (every
// name is a module-path item).
package pathconvert

import (
	"fmt"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/importresolve"
	"lumen/internal/nametable"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
)

// Error wraps a path-shape failure with the diag.Code it maps to.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Msg) }

// Context is the host-provided fallback surface spec.md §6 calls "external
// host-provided items, including a crate set, used for fallback lookups":
// a prelude of implicitly-imported names, and a crate set reached when
// neither the module climb nor the prelude finds a match.
type Context struct {
	Prelude  *nametable.Table
	CrateSet map[source.StringID]pool.ItemID
}

// Converter canonicalizes lexical paths, consulting the name table for
// convert_initial_path's climb-and-retry loop and finally delegating to
// importresolve.Resolver for the closing import rewrite (§4.4 step 4).
type Converter struct {
	Items    *pool.Items
	Mods     *pool.Modules
	Strs     *source.Interner
	Names    *nametable.Table
	Indexer  *query.Indexer
	Resolver *importresolve.Resolver
	Context  Context
}

// New creates a Converter bound to the shared pools, name table, indexer,
// and import resolver, plus a host-supplied fallback Context.
func New(items *pool.Items, mods *pool.Modules, strs *source.Interner, names *nametable.Table, ix *query.Indexer, resolver *importresolve.Resolver, ctx Context) *Converter {
	return &Converter{Items: items, Mods: mods, Strs: strs, Names: names, Indexer: ix, Resolver: resolver, Context: ctx}
}

// Convert implements spec.md §4.4's convert_path: canonicalize path's
// lexical segments into an ItemID, relative to the module/impl context
// recorded for it at indexing time, then apply any import rewrite.
func (c *Converter) Convert(span source.Span, path *ast.Path, used query.Used) (pool.ItemID, error) {
	qp := c.Indexer.QueryPathFor(path.ID)

	if len(path.Segments) == 0 {
		return pool.NoItemID, &Error{Code: diag.PathExpectedLeadingSegment, Span: path.Span, Msg: "path has no leading segment"}
	}

	first := path.Segments[0]
	rest := path.Segments[1:]
	insideSelfType := false

	var cur pool.Item
	switch first.Kind {
	case ast.SegGlobal:
		if len(rest) == 0 || rest[0].Kind != ast.SegIdent {
			return pool.NoItemID, &Error{Code: diag.PathUnsupportedGlobal, Span: first.Span, Msg: "`::` must be followed by an identifier"}
		}
		cur = pool.Item{Components: []pool.Component{{Kind: pool.CompIdent, Ident: rest[0].Ident}}}
		rest = rest[1:]
	case ast.SegIdent:
		id, err := c.convertInitialIdent(qp.Module, first)
		if err != nil {
			return pool.NoItemID, err
		}
		cur = *c.Items.Get(id)
	case ast.SegSuper:
		mod := c.Mods.Get(qp.Module)
		if !mod.Parent.IsValid() {
			return pool.NoItemID, &Error{Code: diag.PathUnsupportedSuper, Span: first.Span, Msg: "module has no parent"}
		}
		cur = *c.Items.Get(c.Mods.Get(mod.Parent).Item)
	case ast.SegSelfValue:
		cur = *c.Items.Get(c.Mods.Get(qp.Module).Item)
	case ast.SegSelfType:
		if !qp.ImplItem.IsValid() {
			return pool.NoItemID, &Error{Code: diag.PathUnsupportedSelfType, Span: first.Span, Msg: "`Self` outside an impl"}
		}
		cur = *c.Items.Get(qp.ImplItem)
		insideSelfType = true
	case ast.SegCrate:
		cur = pool.Item{}
	case ast.SegGenerics:
		return pool.NoItemID, &Error{Code: diag.PathUnsupportedGenerics, Span: first.Span, Msg: "path cannot begin with a generic argument list"}
	default:
		return pool.NoItemID, &Error{Code: diag.PathExpectedLeadingSegment, Span: first.Span, Msg: "expected a leading path segment"}
	}

	sawGenerics := false
	for _, seg := range rest {
		if sawGenerics {
			return pool.NoItemID, &Error{Code: diag.PathUnsupportedAfterGeneric, Span: seg.Span, Msg: "no segment may follow a generic argument list"}
		}
		switch seg.Kind {
		case ast.SegIdent:
			cur = cur.Join(pool.Component{Kind: pool.CompIdent, Ident: seg.Ident})
		case ast.SegSuper:
			if insideSelfType {
				return pool.NoItemID, &Error{Code: diag.PathUnsupportedSuperInSelfType, Span: seg.Span, Msg: "`super` cannot be used inside `Self`"}
			}
			parent, ok := cur.Parent()
			if !ok {
				return pool.NoItemID, &Error{Code: diag.PathUnsupportedSuper, Span: seg.Span, Msg: "path has no parent to pop"}
			}
			cur = parent
		case ast.SegGenerics:
			sawGenerics = true
		default:
			return pool.NoItemID, &Error{Code: diag.PathExpectedLeadingSegment, Span: seg.Span, Msg: fmt.Sprintf("unexpected %s segment mid-path", seg.Kind)}
		}
	}

	item := c.Items.Intern(cur)
	rewritten, did, err := c.Resolver.Import(span, qp.Module, item, used)
	if err != nil {
		return pool.NoItemID, err
	}
	if did {
		return rewritten, nil
	}
	return item, nil
}

// convertInitialIdent implements convert_initial_path (§4.4 step 2, ident
// case): climb from the current module's item, testing successively
// shorter prefixes of it joined with seg until one names an entry in the
// name table; falling back to the prelude, then the host's crate set,
// then finally treating seg as a new submodule of the current module.
func (c *Converter) convertInitialIdent(module pool.ModID, seg ast.PathSegment) (pool.ItemID, error) {
	base := c.Items.Get(c.Mods.Get(module).Item).Components

	for n := len(base); n >= 0; n-- {
		candidate := make([]pool.Component, 0, n+1)
		candidate = append(candidate, base[:n]...)
		candidate = append(candidate, pool.Component{Kind: pool.CompIdent, Ident: seg.Ident})
		if id, ok := c.Names.Lookup(c.Strs, candidate); ok {
			return id, nil
		}
	}

	if c.Context.Prelude != nil {
		if id, ok := c.Context.Prelude.Lookup(c.Strs, []pool.Component{{Kind: pool.CompIdent, Ident: seg.Ident}}); ok {
			return id, nil
		}
	}

	if c.Context.CrateSet != nil {
		if id, ok := c.Context.CrateSet[seg.Ident]; ok {
			return id, nil
		}
	}

	submodule := make([]pool.Component, 0, len(base)+1)
	submodule = append(submodule, base...)
	submodule = append(submodule, pool.Component{Kind: pool.CompIdent, Ident: seg.Ident})
	return c.Items.Intern(pool.Item{Components: submodule}), nil
}
