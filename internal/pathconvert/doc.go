// Package pathconvert turns unresolved lexical paths (crate/super/self/
// Self/ident chains, see internal/ast) into canonical pool.ItemID values,
// implementing spec.md §4.4. It is the last stage before a resolved item
// id reaches the query engine: everything upstream works in terms of
// lexical syntax, everything downstream works in terms of items.
package pathconvert
