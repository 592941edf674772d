// Package visibility implements the Visibility Checker component of
// spec.md §4.5: deciding whether a use site in one module can see a
// declaration in another, given the declaration's (and its owning
// modules') visibility. Grounded on the teacher's
// internal/symbols/visibility_flags.go bitflag check
// (SymbolFlagPublic/SymbolFlagFilePrivate), generalized from a two-state
// public/file-private flag to the six-way module-ancestry relation this
// spec's language exposes (pub, pub(crate), pub(super), pub(self),
// inherited, pub(in path)), which the teacher's flat bitflags cannot
// express.
package visibility

import (
	"fmt"
	"strings"

	"lumen/internal/diag"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
)

// Error wraps a visibility failure with the diag.Code it maps to.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Msg) }

// Checker decides module-to-module and module-to-item visibility,
// implementing spec.md §4.5's relation: Public admits all; Crate admits
// any descendant of the root; Super admits the declaring module's parent
// and its descendants; SelfValue and Inherited admit only the declaring
// module itself; In(path) admits descendants of that path's module.
type Checker struct {
	Mods  *pool.Modules
	Items *pool.Items
	Strs  *source.Interner
}

// New creates a Checker bound to the shared module/item pools.
func New(mods *pool.Modules, items *pool.Items, strs *source.Interner) *Checker {
	return &Checker{Mods: mods, Items: items, Strs: strs}
}

// Check implements spec.md §4.5: given the module a use site occurs in,
// the module and visibility of the item being accessed, and the
// declaration's own source location (for diagnostics), decide whether the
// access is allowed.
func (c *Checker) Check(fromModule, targetModule pool.ModID, targetVisibility pool.Visibility, loc source.Span) error {
	common, descent := c.commonAncestor(fromModule, targetModule)

	var chain []pool.ModID
	for _, cur := range descent {
		mod := c.Mods.Get(cur)
		chain = append(chain, cur)
		if !c.canSee(mod.Visibility, cur, common) {
			return &Error{
				Code: diag.VisibilityNotVisibleMod,
				Span: mod.Location,
				Msg:  fmt.Sprintf("module %q is not visible here (chain: %s)", c.Items.PathString(c.Strs, mod.Item), c.chainString(chain)),
			}
		}
	}

	if !c.canSee(targetVisibility, targetModule, common) {
		return &Error{
			Code: diag.VisibilityNotVisible,
			Span: loc,
			Msg:  fmt.Sprintf("item is not visible here (chain: %s)", c.chainString(chain)),
		}
	}
	return nil
}

// CheckImport adapts Check to importresolve.VisibilityCheckFunc's shape,
// reading the target module/visibility/location straight off the
// indexed entry's meta.
func (c *Checker) CheckImport(fromModule pool.ModID, entry *query.IndexedEntry) error {
	return c.Check(fromModule, entry.Meta.Module, entry.Meta.Visibility, entry.Meta.Location)
}

func (c *Checker) chainString(chain []pool.ModID) string {
	names := make([]string, 0, len(chain))
	for _, m := range chain {
		names = append(names, c.Items.PathString(c.Strs, c.Mods.Get(m).Item))
	}
	return strings.Join(names, " -> ")
}

// canSee decides whether fromModule may see something declared in
// declModule under vis, per spec.md §4.5's visibility relation.
func (c *Checker) canSee(vis pool.Visibility, declModule, fromModule pool.ModID) bool {
	switch vis.Kind {
	case pool.VisPublic:
		return true
	case pool.VisCrate:
		// Every module in this compilation unit descends from the crate
		// root, so pub(crate) admits any module reachable here.
		return true
	case pool.VisSuper:
		parent := c.Mods.Get(declModule).Parent
		if !parent.IsValid() {
			return fromModule == declModule
		}
		if fromModule == parent {
			return true
		}
		for _, anc := range c.Mods.Ancestors(fromModule) {
			if anc == parent {
				return true
			}
		}
		return false
	case pool.VisSelfValue, pool.VisInherited:
		return fromModule == declModule
	case pool.VisIn:
		for _, anc := range c.Mods.Ancestors(fromModule) {
			if c.Mods.Get(anc).Item == vis.In {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// commonAncestor returns the longest common module prefix of a and b,
// plus the residual descent chain from that common module down into b,
// top-down, excluding the common module and including b itself (spec.md
// §4.5 step 1).
func (c *Checker) commonAncestor(a, b pool.ModID) (pool.ModID, []pool.ModID) {
	aAncestors := c.Mods.Ancestors(a)
	aSet := make(map[pool.ModID]bool, len(aAncestors))
	for _, m := range aAncestors {
		aSet[m] = true
	}

	bAncestors := c.Mods.Ancestors(b)
	var descentBottomUp []pool.ModID
	for _, m := range bAncestors {
		if aSet[m] {
			descent := make([]pool.ModID, len(descentBottomUp))
			for i, d := range descentBottomUp {
				descent[len(descentBottomUp)-1-i] = d
			}
			return m, descent
		}
		descentBottomUp = append(descentBottomUp, m)
	}
	// The crate root is an ancestor of every module, so this is
	// unreachable in practice; fall back to it defensively.
	root := c.Mods.Root()
	descent := make([]pool.ModID, len(descentBottomUp))
	for i, d := range descentBottomUp {
		descent[len(descentBottomUp)-1-i] = d
	}
	return root, descent
}
