package engine

import (
	"lumen/internal/ast"
	"lumen/internal/hir"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
)

// RegisterModule declares a new submodule of parent, returning its ModID.
// Modules are indexed like any other item (so `use a::inner;` can name
// the module itself, per SPEC_FULL.md's module-alias import feature) but
// never pushed onto the build queue: a module has nothing to build, only
// a structural identity.
func (e *Engine) RegisterModule(loc source.Span, parent pool.ModID, name string, vis pool.Visibility) pool.ModID {
	item := e.Items.Intern(e.childItem(parent, name))
	modID := e.Indexer.InsertMod(loc, item, vis, parent)
	e.Names.Insert(e.Items, item)
	e.Indexer.Index(query.IndexedEntry{
		Meta:    query.ItemMeta{Location: loc, Item: item, Module: modID, Visibility: vis},
		Indexed: query.Indexed{Kind: query.IndexedModule},
	})
	return modID
}

// RegisterStruct declares a struct item. Like RegisterEnum/RegisterConst
// below, it is indexed but not eagerly queued: an unreferenced private
// struct is exactly the case spec.md §4.2's Unused sweep exists to catch
// (SPEC_FULL.md's used/unused tracking feature), so eagerly building it
// here would short-circuit that diagnostic path entirely.
func (e *Engine) RegisterStruct(loc source.Span, module pool.ModID, decl ast.DeclID, name string, vis pool.Visibility) pool.ItemID {
	item := e.Indexer.InsertNewItem(decl, e.childItem(module, name))
	e.Names.Insert(e.Items, item)
	e.Indexer.Index(query.IndexedEntry{
		Meta:    query.ItemMeta{ID: decl, Location: loc, Item: item, Module: module, Visibility: vis},
		Indexed: query.Indexed{Kind: query.IndexedStruct, AST: decl},
	})
	return item
}

// RegisterEnum declares an enum item, the parent an enum's variants are
// registered under via RegisterVariant.
func (e *Engine) RegisterEnum(loc source.Span, module pool.ModID, decl ast.DeclID, name string, vis pool.Visibility) pool.ItemID {
	item := e.Indexer.InsertNewItem(decl, e.childItem(module, name))
	e.Names.Insert(e.Items, item)
	e.Indexer.Index(query.IndexedEntry{
		Meta:    query.ItemMeta{ID: decl, Location: loc, Item: item, Module: module, Visibility: vis},
		Indexed: query.Indexed{Kind: query.IndexedEnum, AST: decl},
	})
	return item
}

// RegisterVariant declares a variant of enumItem at the given zero-based
// index.
func (e *Engine) RegisterVariant(loc source.Span, module pool.ModID, decl ast.DeclID, enumItem pool.ItemID, index uint32, name string, vis pool.Visibility) pool.ItemID {
	item := e.Indexer.InsertNewItem(decl, *e.Items.Get(e.childItemOf(enumItem, name)))
	e.Names.Insert(e.Items, item)
	e.Indexer.Index(query.IndexedEntry{
		Meta: query.ItemMeta{ID: decl, Location: loc, Item: item, Module: module, Visibility: vis},
		Indexed: query.Indexed{
			Kind:         query.IndexedVariant,
			AST:          decl,
			Enum:         enumItem,
			VariantIndex: index,
		},
	})
	return item
}

// RegisterFunction declares a plain (non-method) function and queues it
// for eager build: top-level functions are the reason a unit is compiled
// at all, so unlike structs/enums/consts they don't wait for a reference
// or the Unused sweep to be processed.
func (e *Engine) RegisterFunction(loc source.Span, module pool.ModID, decl ast.DeclID, name string, vis pool.Visibility, conv query.CallConv, isTest, isBench bool) pool.ItemID {
	return e.registerCallable(loc, module, decl, name, vis, query.IndexedFunction, query.BuildFunction, conv, isTest, isBench)
}

// RegisterInstanceFunction declares a method. It maps to the same
// PrivFunction PrivKind as a plain function (query.PrivKind has no
// separate instance-function variant) but keeps IndexedInstanceFunction
// as its own IndexedKind/BuildKind, matching spec.md §3's Indexed tagged
// union.
func (e *Engine) RegisterInstanceFunction(loc source.Span, module pool.ModID, decl ast.DeclID, name string, vis pool.Visibility, conv query.CallConv, isTest, isBench bool) pool.ItemID {
	return e.registerCallable(loc, module, decl, name, vis, query.IndexedInstanceFunction, query.BuildInstanceFunction, conv, isTest, isBench)
}

func (e *Engine) registerCallable(loc source.Span, module pool.ModID, decl ast.DeclID, name string, vis pool.Visibility, kind query.IndexedKind, build query.BuildKind, conv query.CallConv, isTest, isBench bool) pool.ItemID {
	item := e.Indexer.InsertNewItem(decl, e.childItem(module, name))
	e.Names.Insert(e.Items, item)
	meta := query.ItemMeta{ID: decl, Location: loc, Item: item, Module: module, Visibility: vis}
	e.Indexer.Index(query.IndexedEntry{
		Meta:    meta,
		Indexed: query.Indexed{Kind: kind, AST: decl, CallConv: conv, IsTest: isTest, IsBench: isBench},
	})
	e.Queue.Push(query.BuildEntry{Meta: meta, Used: query.UsedUnused, Build: build})
	return item
}

// RegisterClosure declares an anonymous closure item, keyed under a
// synthesized numeric component of its enclosing item (pool.CompIndex),
// since a closure has no source-level name of its own.
func (e *Engine) RegisterClosure(loc source.Span, module pool.ModID, decl ast.DeclID, enclosing pool.ItemID, index uint32, captures []ast.LocalID, move bool) pool.ItemID {
	return e.registerAnonymous(loc, module, decl, enclosing, index, captures, move, query.IndexedClosure, query.BuildClosure)
}

// RegisterAsyncBlock declares an anonymous `async { .. }` block item, the
// same shape as a closure (spec.md §3: both carry hash/captures/move).
func (e *Engine) RegisterAsyncBlock(loc source.Span, module pool.ModID, decl ast.DeclID, enclosing pool.ItemID, index uint32, captures []ast.LocalID, move bool) pool.ItemID {
	return e.registerAnonymous(loc, module, decl, enclosing, index, captures, move, query.IndexedAsyncBlock, query.BuildAsyncBlock)
}

func (e *Engine) registerAnonymous(loc source.Span, module pool.ModID, decl ast.DeclID, enclosing pool.ItemID, index uint32, captures []ast.LocalID, move bool, kind query.IndexedKind, build query.BuildKind) pool.ItemID {
	comp := pool.Component{Kind: pool.CompIndex, Index: index}
	item := e.Indexer.InsertNewItem(decl, e.Items.Get(enclosing).Join(comp))
	meta := query.ItemMeta{ID: decl, Location: loc, Item: item, Module: module}
	e.Indexer.Index(query.IndexedEntry{
		Meta:    meta,
		Indexed: query.Indexed{Kind: kind, AST: decl, Captures: captures, Move: move},
	})
	e.Queue.Push(query.BuildEntry{Meta: meta, Used: query.UsedUnused, Build: build})
	return item
}

// RegisterConst declares a constant whose body is constExpr, an ast-level
// expression id the builder lowers to HIR and hands to consteval on
// first build (see builder.go's lowerExpr). Like structs/enums, a const
// is indexed but not eagerly queued.
func (e *Engine) RegisterConst(loc source.Span, module pool.ModID, decl ast.DeclID, name string, vis pool.Visibility, constExpr ast.ExprID) pool.ItemID {
	item := e.Indexer.InsertNewItem(decl, e.childItem(module, name))
	e.Names.Insert(e.Items, item)
	e.Indexer.Index(query.IndexedEntry{
		Meta: query.ItemMeta{ID: decl, Location: loc, Item: item, Module: module, Visibility: vis},
		Indexed: query.Indexed{
			Kind:        query.IndexedConst,
			ConstModule: module,
			ConstExpr:   constExpr,
		},
	})
	return item
}

// RegisterConstFn declares a `const fn`, whose meta is just the pointer
// back to its declaration node (spec.md §3: ConstFn(id)); the function
// itself is only actually evaluated by consteval where it's called from
// a constant expression, which this module's fixed expression shape
// doesn't model as a call form (see DESIGN.md's Non-goals note).
func (e *Engine) RegisterConstFn(loc source.Span, module pool.ModID, decl ast.DeclID, name string, vis pool.Visibility) pool.ItemID {
	item := e.Indexer.InsertNewItem(decl, e.childItem(module, name))
	e.Names.Insert(e.Items, item)
	e.Indexer.Index(query.IndexedEntry{
		Meta:    query.ItemMeta{ID: decl, Location: loc, Item: item, Module: module, Visibility: vis},
		Indexed: query.Indexed{Kind: query.IndexedConstFn, AST: decl, ConstFnLocation: loc},
	})
	return item
}

// RegisterImport indexes a single explicit `use a::b::x;` under its
// local name. Imports are queued eagerly (unlike structs/consts/enums)
// because a cycle or ambiguity in the import graph must be caught even
// if nothing ever references the imported name (spec.md scenarios S3,
// S4 exercise exactly this).
func (e *Engine) RegisterImport(loc source.Span, module pool.ModID, localName string, target pool.ItemID, targetModule pool.ModID, vis pool.Visibility, aliasesModule bool) pool.ItemID {
	return e.registerImport(loc, module, localName, target, targetModule, vis, false, aliasesModule, query.BuildImport)
}

// RegisterReExport indexes a `pub use a::b::x;`, republishing the target
// under this item's own (typically more permissive) visibility. It is
// otherwise identical to RegisterImport, differing only in BuildKind so
// the driver's dispatch can distinguish the two for diagnostics.
func (e *Engine) RegisterReExport(loc source.Span, module pool.ModID, localName string, target pool.ItemID, targetModule pool.ModID, vis pool.Visibility) pool.ItemID {
	return e.registerImport(loc, module, localName, target, targetModule, vis, false, false, query.BuildReExport)
}

func (e *Engine) registerImport(loc source.Span, module pool.ModID, localName string, target pool.ItemID, targetModule pool.ModID, vis pool.Visibility, wildcard, aliasesModule bool, build query.BuildKind) pool.ItemID {
	item := e.Indexer.InsertNewItem(ast.NoDeclID, e.childItem(module, localName))
	meta := query.ItemMeta{Location: loc, Item: item, Module: module, Visibility: vis}
	e.Indexer.Index(query.IndexedEntry{
		Meta: meta,
		Indexed: query.Indexed{
			Kind:     query.IndexedImport,
			Wildcard: wildcard,
			Import: query.ImportEntry{
				Location:      loc,
				Target:        target,
				Module:        targetModule,
				AliasesModule: aliasesModule,
			},
		},
	})
	e.Queue.Push(query.BuildEntry{Meta: meta, Used: query.UsedUnused, Build: build})
	return item
}

// RegisterImportWildcard indexes a `use a::*;` once per name in members,
// each as a wildcard candidate at the corresponding local item, so
// RemoveIndexed's tie-break (spec.md §4.1: "a single non-wildcard entry
// wins over any number of wildcards") applies exactly as it would for an
// explicit import of the same name.
//
// This is SPEC_FULL.md supplemented feature 2's one acknowledged gap
// from true laziness: expansion happens at registration time against the
// members the caller already knows about, rather than being deferred
// until RemoveIndexed actually looks the name up. True laziness would
// need RemoveIndexed to take a module parameter and consult an
// open-ended per-module wildcard-source list instead of per-item
// entries, a change to query.Indexer's public signature big enough to
// ripple through importresolve and pathconvert's tests; see DESIGN.md.
func (e *Engine) RegisterImportWildcard(loc source.Span, module pool.ModID, target pool.ItemID, members []string) {
	for _, name := range members {
		targetItem := e.childItemOf(target, name)
		item := e.Indexer.InsertNewItem(ast.NoDeclID, e.childItem(module, name))
		e.Indexer.Index(query.IndexedEntry{
			Meta: query.ItemMeta{Location: loc, Item: item, Module: module},
			Indexed: query.Indexed{
				Kind:     query.IndexedImport,
				Wildcard: true,
				Import:   query.ImportEntry{Location: loc, Target: targetItem, Module: module},
			},
		})
		// Wildcard candidates are never individually queued: they only
		// matter if something references the brought-in name, at which
		// point RemoveIndexed's wildcard tie-break picks one up.
	}
}

// DeclareLocal registers a function parameter or `let` binding under its
// ast.LocalID, allocating the matching hir.Local at the given stable
// stack offset, so later field-access expressions referencing this local
// (ast.ExprIdent with Local set, or an hir.Expr built directly against
// this local) lower and address consistently.
func (e *Engine) DeclareLocal(id ast.LocalID, name source.StringID, offset uint32, span source.Span) hir.LocalID {
	hirID := hir.LocalID(e.HIRLocals.Alloc(hir.Local{Name: name, Offset: offset, Span: span}))
	if id.IsValid() {
		e.locals[id] = hirID
	}
	local := e.HIRLocals.Get(uint32(hirID))
	local.ID = hirID
	return hirID
}
