package importresolve

import (
	"fmt"
	"strings"

	"lumen/internal/diag"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
)

// RecursionLimit bounds how many redirect hops a single Import call may
// follow before it is considered a runaway chain (spec.md §3 invariant
// 4, §5 "hard ceiling").
const RecursionLimit = 128

// Step is one redirection along the chain a call to Import follows,
// kept for diagnostics (SPEC_FULL.md supplemented feature 3: the full
// per-component visited set, not just per-item, so ImportCycle can name
// every hop).
type Step struct {
	Location source.Span
	Item     pool.ItemID
}

// Error wraps an import-resolution failure with the diag.Code it maps to.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Msg) }

// VisibilityCheckFunc checks whether fromModule may see the target of a
// redirect entry found mid-chain. Left nil, no visibility check runs —
// internal/engine always wires a real check.
type VisibilityCheckFunc func(fromModule pool.ModID, entry *query.IndexedEntry) error

// Resolver implements the Import Resolver component of spec.md §4.3.
// Grounded directly on the teacher's internal/symbols/resolve_imports.go
// per-segment declaration walk (declareImport/trackModuleImport),
// generalized from "declare an import once" to "follow a possibly
// transitive chain of redirects", which the teacher's imports never need
// because they don't redirect through other imports.
type Resolver struct {
	Items      *pool.Items
	Strs       *source.Interner
	Indexer    *query.Indexer
	Cache      *query.MetaCache
	Builder    query.Builder
	Visibility VisibilityCheckFunc

	// Limit overrides RecursionLimit when positive, so internal/engine.Config's
	// import_recursion_limit actually reaches the hop ceiling a caller observes.
	// Zero keeps the package default.
	Limit int
}

func (r *Resolver) limit() int {
	if r.Limit > 0 {
		return r.Limit
	}
	return RecursionLimit
}

// New creates a Resolver bound to the shared string/item pools, indexer,
// meta cache, and entry builder.
func New(items *pool.Items, strs *source.Interner, ix *query.Indexer, cache *query.MetaCache, builder query.Builder) *Resolver {
	return &Resolver{Items: items, Strs: strs, Indexer: ix, Cache: cache, Builder: builder}
}

// Import implements spec.md §4.3's algorithm. It returns the rewritten
// item and true if any redirect fired during the call; otherwise it
// returns false and the caller keeps the original item.
func (r *Resolver) Import(span source.Span, fromModule pool.ModID, item pool.ItemID, used query.Used) (pool.ItemID, bool, error) {
	visited := make(map[pool.ItemID]bool)
	var chain []Step
	hops := 0
	rewrote := false

	curItem := item
	curModule := fromModule

	for {
		matched := false
		comps := r.Items.Get(curItem).Components

		for i := 1; i <= len(comps); i++ {
			prefix := r.Items.Intern(pool.Item{Components: append([]pool.Component(nil), comps[:i]...)})

			redirect, found, err := r.importStep(span, curModule, prefix)
			if err != nil {
				return pool.NoItemID, false, err
			}
			if !found {
				continue
			}

			if visited[prefix] {
				return pool.NoItemID, false, r.cycleError(chain, prefix)
			}
			visited[prefix] = true
			chain = append(chain, Step{Location: redirect.Location, Item: prefix})
			hops++
			if hops > r.limit() {
				return pool.NoItemID, false, r.recursionLimitError(chain, span)
			}

			tail := comps[i:]
			targetComps := r.Items.Get(redirect.Target).Components
			newComps := make([]pool.Component, 0, len(targetComps)+len(tail))
			newComps = append(newComps, targetComps...)
			newComps = append(newComps, tail...)
			curItem = r.Items.Intern(pool.Item{Components: newComps})
			curModule = redirect.Module

			matched = true
			rewrote = true
			break // only the first matching prefix redirects per outer iteration (§4.3 tie-break)
		}

		if !matched {
			break
		}
	}

	if !rewrote {
		return pool.NoItemID, false, nil
	}
	return curItem, true, nil
}

// importStep implements spec.md §4.3 step (b).
func (r *Resolver) importStep(span source.Span, module pool.ModID, prefix pool.ItemID) (query.ImportEntry, bool, error) {
	if meta, ok := r.Cache.Get(prefix); ok {
		if meta.Payload.Kind == query.PrivImport {
			return meta.Payload.Import, true, nil
		}
		return query.ImportEntry{}, false, nil
	}

	entry, err := r.Indexer.RemoveIndexed(span, prefix)
	if err != nil {
		return query.ImportEntry{}, false, err
	}
	if entry == nil {
		return query.ImportEntry{}, false, nil
	}

	if entry.Indexed.Kind == query.IndexedImport {
		if r.Visibility != nil {
			if err := r.Visibility(module, entry); err != nil {
				return query.ImportEntry{}, false, err
			}
		}
		// Cache the resolved redirect so a later revisit of this same
		// prefix (the tell-tale sign of an import cycle) finds it again
		// through the meta-cache branch above, instead of finding nothing
		// because the indexed entry was already consumed once.
		meta := query.PrivMeta{
			Meta:    entry.Meta,
			Payload: query.PrivMetaPayload{Kind: query.PrivImport, Import: entry.Indexed.Import},
		}
		if err := r.Cache.Insert(prefix, meta); err != nil {
			return query.ImportEntry{}, false, err
		}
		return entry.Indexed.Import, true, nil
	}

	payload, src, err := r.Builder.Build(entry)
	if err != nil {
		return query.ImportEntry{}, false, err
	}
	meta := query.PrivMeta{Meta: entry.Meta, Payload: payload, Source: src}
	if err := r.Cache.Insert(prefix, meta); err != nil {
		return query.ImportEntry{}, false, err
	}
	return query.ImportEntry{}, false, nil
}

func (r *Resolver) cycleError(chain []Step, closingItem pool.ItemID) error {
	names := make([]string, 0, len(chain)+1)
	for _, s := range chain {
		names = append(names, r.Items.PathString(r.Strs, s.Item))
	}
	names = append(names, r.Items.PathString(r.Strs, closingItem))
	return &Error{
		Code: diag.ImportCycle,
		Span: chain[0].Location,
		Msg:  fmt.Sprintf("import cycle: %s", strings.Join(names, " -> ")),
	}
}

func (r *Resolver) recursionLimitError(chain []Step, span source.Span) error {
	return &Error{
		Code: diag.ImportRecursionLimit,
		Span: span,
		Msg:  fmt.Sprintf("import chain exceeded %d hops", r.limit()),
	}
}
