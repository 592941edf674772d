// Package fieldemit implements the Field-Access Emitter of spec.md §4.7:
// it lowers a single HIR field-access node (expr.field) to the trimmed
// instruction set spec.md §6 names for this fragment — TupleIndexGet,
// ObjectIndexGet, Pop — choosing between the immediate local-tuple-index
// fast path and the general object/tuple path. Grounded on the teacher's
// internal/mir/lower_expr_access.go (lowerFieldAccessExpr/lowerIndexExpr)
// and internal/mir/instr.go's Instr/Operand/Place tagged-struct shapes,
// trimmed down to exactly what this illustrative fragment needs.
package fieldemit
