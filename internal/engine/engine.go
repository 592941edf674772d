package engine

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/fieldemit"
	"lumen/internal/hir"
	"lumen/internal/importresolve"
	"lumen/internal/literal"
	"lumen/internal/nametable"
	"lumen/internal/pathconvert"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
	"lumen/internal/visibility"
)

// Engine owns every collaborator spec.md §6 lists and is the single
// re-entrant entry point a caller (cmd/lumen, or a test) drives to
// register declarations, run the build queue to completion, and read
// back diagnostics.
//
// Re-entrancy: Engine itself implements query.Builder (see builder.go),
// so Build may call back into e.QEngine.QueryMeta while already inside a
// QueryMeta call (constant evaluation resolving another constant, an
// import redirect discovering a constant it must build to validate a
// re-export). Nothing here holds a lock across a Build call; safety
// relies entirely on the single-threaded model spec.md §5 requires.
type Engine struct {
	Config Config

	Files    *source.FileSet
	Strs     *source.Interner
	Items    *pool.Items
	Mods     *pool.Modules
	Names    *nametable.Table
	Literals *literal.Storage

	// AstExprs and AstPaths hold the fixed external-parser-output shape
	// spec.md §6 describes. This module doesn't parse source text itself;
	// these arenas are what a caller (or a test) populates directly,
	// standing in for a real parser's output.
	AstExprs *ast.Arena[ast.Expr]
	AstPaths *ast.Arena[ast.Path]

	HIRExprs  *hir.Arena[hir.Expr]
	HIRLocals *hir.Arena[hir.Local]

	Indexer *query.Indexer
	Cache   *query.MetaCache
	Queue   *query.BuildQueue
	QEngine *query.Engine

	ImportResolver *importresolve.Resolver
	PathConverter  *pathconvert.Converter
	Visibility     *visibility.Checker

	Slots     *fieldemit.Slots
	FieldEmit *fieldemit.Emitter

	Diags    *diag.Bag
	Reporter diag.Reporter

	Visitor     Visitor
	UnitBuilder UnitBuilder

	// locals maps a registered ast.LocalID to its lowered hir.Local, so
	// field-access expressions referencing function parameters lower
	// consistently across the AST and HIR arenas.
	locals map[ast.LocalID]hir.LocalID
}

// New wires every collaborator together following cfg's budgets and
// host fallback surface (prelude, crate set).
func New(cfg Config) *Engine {
	if cfg.ConstBudget <= 0 {
		cfg.ConstBudget = DefaultConfig().ConstBudget
	}
	if cfg.ImportRecursionLimit <= 0 {
		cfg.ImportRecursionLimit = DefaultConfig().ImportRecursionLimit
	}

	strs := source.NewInterner()
	files := source.NewFileSet()
	items := pool.NewItems(strs)
	mods := pool.NewModules(items.Root())
	names := nametable.New(strs)
	lits := literal.NewStorage(files, strs)

	ix := query.NewIndexer(items, mods, strs)
	cache := query.NewMetaCache()
	queue := query.NewBuildQueue()

	bag := diag.NewBag(10000)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	e := &Engine{
		Config:      cfg,
		Files:       files,
		Strs:        strs,
		Items:       items,
		Mods:        mods,
		Names:       names,
		Literals:    lits,
		AstExprs:    ast.NewArena[ast.Expr](64),
		AstPaths:    ast.NewArena[ast.Path](64),
		HIRExprs:    hir.NewArena[hir.Expr](64),
		HIRLocals:   hir.NewArena[hir.Local](64),
		Indexer:     ix,
		Cache:       cache,
		Queue:       queue,
		Diags:       bag,
		Reporter:    reporter,
		Slots:       fieldemit.NewSlots(),
		Visitor:     NoopVisitor{},
		UnitBuilder: NewBasicUnitBuilder(),
		locals:      make(map[ast.LocalID]hir.LocalID),
	}

	e.QEngine = query.NewEngine(ix, cache, e)

	checker := visibility.New(mods, items, strs)
	e.Visibility = checker

	e.ImportResolver = importresolve.New(items, strs, ix, cache, e)
	e.ImportResolver.Limit = cfg.ImportRecursionLimit
	e.ImportResolver.Visibility = checker.CheckImport

	e.FieldEmit = fieldemit.New(e.HIRExprs, e.HIRLocals, e.Slots, e.Reporter)

	ctx := pathconvert.Context{
		Prelude:  nametable.New(strs),
		CrateSet: make(map[source.StringID]pool.ItemID, len(cfg.CrateSet)),
	}
	for name, path := range cfg.CrateSet {
		ctx.CrateSet[strs.Intern(name)] = e.resolveDottedItem(path)
	}
	for aliasName, path := range cfg.Prelude {
		target := e.resolveDottedItem(path)
		alias := []pool.Component{{Kind: pool.CompIdent, Ident: strs.Intern(aliasName)}}
		ctx.Prelude.InsertAlias(alias, target)
	}
	e.PathConverter = pathconvert.New(items, mods, strs, names, ix, e.ImportResolver, ctx)

	return e
}

// ResolveItem interns a "a::b::c"-shaped dotted path straight into an
// ItemID, bypassing name resolution. Exported for callers (cmd/lumen's
// manifest loader, tests) that already know an import or re-export's
// fully-qualified target and don't need convertInitialIdent's climb-and-
// retry search.
func (e *Engine) ResolveItem(path string) pool.ItemID {
	return e.resolveDottedItem(path)
}

// resolveDottedItem interns a "a::b::c"-shaped dotted path straight into
// an ItemID, without going through the path converter (used for
// Config's prelude/crate_set entries and by ResolveItem, whose callers
// name fully-qualified items they already know to be canonical).
func (e *Engine) resolveDottedItem(path string) pool.ItemID {
	if path == "" {
		return e.Items.Root()
	}
	var comps []pool.Component
	start := 0
	for i := 0; i+1 < len(path); i++ {
		if path[i] == ':' && path[i+1] == ':' {
			comps = append(comps, pool.Component{Kind: pool.CompIdent, Ident: e.Strs.Intern(path[start:i])})
			start = i + 2
			i++
		}
	}
	comps = append(comps, pool.Component{Kind: pool.CompIdent, Ident: e.Strs.Intern(path[start:])})
	return e.Items.Intern(pool.Item{Components: comps})
}

// childItem returns the un-interned item for name as a direct child of
// module's own item.
func (e *Engine) childItem(module pool.ModID, name string) pool.Item {
	parent := *e.Items.Get(e.Mods.Get(module).Item)
	return parent.Join(pool.Component{Kind: pool.CompIdent, Ident: e.Strs.Intern(name)})
}

// childItemOf interns the item for name as a direct child of base.
func (e *Engine) childItemOf(base pool.ItemID, name string) pool.ItemID {
	parent := *e.Items.Get(base)
	return e.Items.Intern(parent.Join(pool.Component{Kind: pool.CompIdent, Ident: e.Strs.Intern(name)}))
}

// Diagnostics returns every diagnostic recorded so far, sorted for
// stable reporting (spec.md §7's bag is unordered until Sort is called).
func (e *Engine) Diagnostics() []*diag.Diagnostic {
	e.Diags.Sort()
	return e.Diags.Items()
}

// HasErrors reports whether any recorded diagnostic is an error.
func (e *Engine) HasErrors() bool { return e.Diags.HasErrors() }

// NewPath allocates an ast.Path in AstExprs' sibling arena and records
// its QueryPath context, so it's immediately convertible via
// e.PathConverter.Convert or usable as an ast.Expr's Path field. This is
// what a real parser would have done during indexing; callers building
// fixtures by hand (tests, cmd/lumen's manifest loader) use this instead
// of touching Indexer.InsertPath directly.
func (e *Engine) NewPath(module pool.ModID, implItem pool.ItemID, span source.Span, segs ...ast.PathSegment) ast.PathID {
	id := ast.PathID(e.AstPaths.Allocate(ast.Path{Segments: segs, Span: span}))
	path := e.AstPaths.Get(uint32(id))
	path.ID = id
	e.Indexer.InsertPath(id, query.QueryPath{Module: module, ImplItem: implItem})
	return id
}
