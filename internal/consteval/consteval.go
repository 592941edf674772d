// Package consteval implements the Constant Evaluator component of
// spec.md §4.6: a budgeted, recursive interpreter over HIR constant
// expressions. Grounded on the teacher's internal/sema/const_eval.go
// (ensureConstEvaluated / constUintValue), generalized from that
// teacher's type-checked constant-folding walk — which only ever
// produces a uint64 for array-length contexts — to a general-purpose
// ConstValue (int/bool/string/tuple/unit), since this spec's language is
// dynamically typed and has no separate constant-folding pass from
// ordinary evaluation.
package consteval

import (
	"fmt"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/hir"
	"lumen/internal/literal"
	"lumen/internal/query"
	"lumen/internal/source"
)

// DefaultBudget is the step ceiling spec.md §4.6 and §5 name: "a budget
// (default 1,000,000 steps)". Exhaustion is a hard error; no partial
// value is ever produced (spec.md §8 scenario S7).
const DefaultBudget = 1_000_000

// Error wraps a constant-evaluation failure with the diag.Code it maps to.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Msg) }

// Evaluator reduces a HIR constant expression to a query.ConstValue,
// re-entering Engine.QueryMeta for every referenced const (spec.md §4.6:
// "It reenters the query engine to resolve referenced constants, which
// may trigger further builds"). Each call to Eval gets a fresh budget;
// a chain of const-to-const references is bounded because building the
// referenced const runs its own Evaluator with its own fresh budget, not
// because this one threads its remaining steps across the re-entry — a
// design choice recorded in DESIGN.md since spec.md doesn't say whether
// the ceiling is per top-level const or global across re-entries.
type Evaluator struct {
	Exprs    *hir.Arena[hir.Expr]
	Literals *literal.Storage
	Engine   *query.Engine
	Budget   int
}

// New creates an Evaluator. A budget of 0 or less falls back to
// DefaultBudget.
func New(exprs *hir.Arena[hir.Expr], literals *literal.Storage, engine *query.Engine, budget int) *Evaluator {
	if budget <= 0 {
		budget = DefaultBudget
	}
	return &Evaluator{Exprs: exprs, Literals: literals, Engine: engine, Budget: budget}
}

// Eval reduces id to a ConstValue, decrementing the budget on every
// reduction (spec.md §4.6). span anchors a budget-exceeded diagnostic.
func (e *Evaluator) Eval(span source.Span, id hir.ExprID) (query.ConstValue, error) {
	steps := e.Budget
	return e.eval(span, id, &steps)
}

func (e *Evaluator) eval(span source.Span, id hir.ExprID, steps *int) (query.ConstValue, error) {
	if *steps <= 0 {
		return query.ConstValue{}, &Error{
			Code: diag.ConstBudgetExceeded,
			Span: span,
			Msg:  fmt.Sprintf("constant evaluation exceeded %d steps", e.Budget),
		}
	}
	*steps--

	if !id.IsValid() {
		return query.ConstValue{Kind: query.ConstUnit}, nil
	}

	node := e.Exprs.Get(uint32(id))
	switch node.Kind {
	case hir.ExprLiteral:
		return e.evalLiteral(node.Span, node.Literal)

	case hir.ExprTuple:
		elems := make([]query.ConstValue, 0, len(node.Elements))
		for _, elID := range node.Elements {
			v, err := e.eval(span, elID, steps)
			if err != nil {
				return query.ConstValue{}, err
			}
			elems = append(elems, v)
		}
		return query.ConstValue{Kind: query.ConstTuple, Tuple: elems}, nil

	case hir.ExprItem:
		meta, err := e.Engine.QueryMeta(node.Span, node.Item, query.UsedUsed)
		if err != nil {
			return query.ConstValue{}, err
		}
		if meta.Payload.Kind != query.PrivConst {
			return query.ConstValue{}, &Error{
				Code: diag.ResolveBadObjectKey,
				Span: node.Span,
				Msg:  "referenced item is not a constant",
			}
		}
		return meta.Payload.Value, nil

	case hir.ExprFieldAccess:
		obj, err := e.eval(span, node.Object, steps)
		if err != nil {
			return query.ConstValue{}, err
		}
		if node.Field.Kind != ast.FieldKeyIndex || node.Field.Overflowed {
			return query.ConstValue{}, &Error{
				Code: diag.AssemblyBadFieldAccess,
				Span: node.Span,
				Msg:  "constant field access requires an in-range tuple index",
			}
		}
		if obj.Kind != query.ConstTuple || node.Field.Index >= uint64(len(obj.Tuple)) {
			return query.ConstValue{}, &Error{
				Code: diag.AssemblyBadFieldAccess,
				Span: node.Span,
				Msg:  "tuple index out of range in constant expression",
			}
		}
		return obj.Tuple[node.Field.Index], nil

	default:
		panic(fmt.Sprintf("consteval: non-constant expression kind %d reached the evaluator", node.Kind))
	}
}

func (e *Evaluator) evalLiteral(span source.Span, id ast.LiteralID) (query.ConstValue, error) {
	val := e.Literals.Get(id)
	switch val.Kind {
	case literal.KindInt:
		if val.Overflowed {
			return query.ConstValue{}, &Error{Code: diag.ResolveBadLiteral, Span: span, Msg: "integer literal does not fit"}
		}
		return query.ConstValue{Kind: query.ConstInt, Int: int64(val.Int)}, nil
	case literal.KindBool:
		return query.ConstValue{Kind: query.ConstBool, Bool: val.Bool}, nil
	case literal.KindString:
		return query.ConstValue{Kind: query.ConstString, Str: val.StringID}, nil
	case literal.KindChar:
		return query.ConstValue{Kind: query.ConstInt, Int: int64(val.Int)}, nil
	default:
		return query.ConstValue{}, &Error{Code: diag.ResolveBadLiteral, Span: span, Msg: "unrecognized literal kind"}
	}
}
