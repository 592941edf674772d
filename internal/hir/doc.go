// Package hir implements the bump-allocated, borrow-stable high-level
// intermediate representation spec.md §3 describes: lowered expressions,
// patterns, and paths produced once name resolution has assigned each a
// stable identity. Grounded in spirit (not bytes) on the teacher's
// ast.Arena[T] (internal/ast/arena.go); node shapes are new, designed
// directly off spec.md §3/§4.7 since the teacher's own HIR carries a
// full static type system this module does not have.
package hir
