// Package consteval implements spec.md §4.6: a step-budgeted interpreter
// that reduces a HIR constant expression to a query.ConstValue, used by
// whatever internal/engine.Builder implementation builds IndexedConst
// entries. It is re-entrant: resolving an ExprItem reference invokes
// query.Engine.QueryMeta, which may in turn build another constant by
// running its own Evaluator.
package consteval
