// Package ast defines the fixed parser-output surface this module's
// resolver, constant evaluator, and field-access emitter consume.
// Lexing and parsing into a concrete syntax tree is out of this module's
// scope; this package only carries the shape of that output forward:
// paths, import items, expressions, and the locals a function body
// declares. Node storage follows the teacher's generic Arena[T]
// convention (arena.go), indexed by newtype IDs with a reserved zero
// value meaning "absent".
package ast
