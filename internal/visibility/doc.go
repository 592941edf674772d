// Package visibility decides whether a use site can see a declaration
// across module boundaries (spec.md §4.5). It is consulted both by
// internal/importresolve (as an importresolve.VisibilityCheckFunc) and
// internal/engine, whenever an item's own pool.Visibility must be
// checked against the module that is trying to reach it.
package visibility
