// Package importresolve implements the Import Resolver component of
// spec.md §4.3: walking an item's path segments through import
// redirects, detecting cycles and enforcing the recursion limit, and
// deferring visibility checks to whoever wires VisibilityCheckFunc.
// Grounded on the teacher's internal/symbols/resolve_imports.go
// per-segment declaration walk, generalized to a redirect chain with no
// teacher analogue (the teacher's imports are declared once and never
// redirect transitively through other imports).
package importresolve
