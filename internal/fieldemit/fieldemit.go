// Package fieldemit's core logic: see doc.go for the package overview.
package fieldemit

import (
	"fmt"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/hir"
	"lumen/internal/query"
	"lumen/internal/source"
)

// Error wraps a field-access emission failure with the diag.Code it maps to.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Msg) }

// Emitter lowers HIR field-access nodes to Instr sequences, per
// spec.md §4.7. Grounded on the teacher's funcLowerer, trimmed to the
// one expression shape this fragment covers.
type Emitter struct {
	Exprs  *hir.Arena[hir.Expr]
	Locals *hir.Arena[hir.Local]
	Slots  *Slots
	Diags  diag.Reporter
}

// New creates an Emitter. Diags may be nil, in which case the not-used
// warning is silently dropped (useful for tests that only care about
// the emitted instructions).
func New(exprs *hir.Arena[hir.Expr], locals *hir.Arena[hir.Local], slots *Slots, diags diag.Reporter) *Emitter {
	return &Emitter{Exprs: exprs, Locals: locals, Slots: slots, Diags: diags}
}

// Emit lowers the field-access expression id. used tells the emitter
// whether the surrounding context consumes the resulting value or
// discards it (spec.md §4.7 step 3: "when the result is unused, append
// Pop").
func (e *Emitter) Emit(id hir.ExprID, used query.Used) ([]Instr, error) {
	node := e.Exprs.Get(uint32(id))
	if node == nil || node.Kind != hir.ExprFieldAccess {
		panic("fieldemit: Emit requires an ExprFieldAccess node")
	}
	return e.emitFieldAccess(node, used)
}

func (e *Emitter) emitFieldAccess(node *hir.Expr, used query.Used) ([]Instr, error) {
	obj := e.Exprs.Get(uint32(node.Object))
	if obj == nil {
		panic("fieldemit: field-access object expression missing")
	}

	// Fast path (spec.md §4.7 step 1): a bare local and an in-range
	// integer index collapse straight to one instruction, skipping the
	// general object-address computation entirely.
	if obj.Kind == hir.ExprLocal && node.Field.Kind == ast.FieldKeyIndex && !node.Field.Overflowed {
		local := e.localOf(obj)
		instr := Instr{
			Kind: InstrTupleIndexGet,
			TupleIndexGet: TupleIndexGetInstr{
				Target: Address{Kind: AddrOffset, Offset: local.Offset},
				Index:  node.Field.Index,
			},
		}
		return e.finish([]Instr{instr}, node.Span, used)
	}

	// General path (spec.md §4.7 step 2): compile the object to an
	// address, then dispatch on the field key shape.
	addr, instrs, err := e.compileAddress(obj)
	if err != nil {
		return nil, err
	}

	switch node.Field.Kind {
	case ast.FieldKeyIndex:
		if node.Field.Overflowed {
			return nil, &Error{
				Code: diag.AssemblyBadFieldAccess,
				Span: node.Span,
				Msg:  "field index literal does not fit a tuple index",
			}
		}
		instrs = append(instrs, Instr{
			Kind:          InstrTupleIndexGet,
			TupleIndexGet: TupleIndexGetInstr{Target: addr, Index: node.Field.Index},
		})
	case ast.FieldKeyIdent:
		slot := e.Slots.Intern(node.Field.Ident)
		instrs = append(instrs, Instr{
			Kind:           InstrObjectIndexGet,
			ObjectIndexGet: ObjectIndexGetInstr{Target: addr, Slot: slot},
		})
	default:
		panic("fieldemit: invalid field key kind")
	}

	return e.finish(instrs, node.Span, used)
}

// compileAddress computes the address of a field-access object. This
// illustrative fragment supports exactly the two object shapes a
// field-access chain can be built from: a local, directly addressed by
// its stable offset, and a nested field access, whose own emission
// leaves its result on top of the stack.
func (e *Emitter) compileAddress(obj *hir.Expr) (Address, []Instr, error) {
	switch obj.Kind {
	case hir.ExprLocal:
		local := e.localOf(obj)
		return Address{Kind: AddrOffset, Offset: local.Offset}, nil, nil
	case hir.ExprFieldAccess:
		instrs, err := e.emitFieldAccess(obj, query.UsedUsed)
		if err != nil {
			return Address{}, nil, err
		}
		return Address{Kind: AddrStack}, instrs, nil
	default:
		panic(fmt.Sprintf("fieldemit: unsupported field-access object kind %d", obj.Kind))
	}
}

func (e *Emitter) localOf(obj *hir.Expr) *hir.Local {
	local := e.Locals.Get(uint32(obj.Local))
	if local == nil {
		panic("fieldemit: local id has no recorded offset")
	}
	return local
}

// finish applies spec.md §4.7 step 3 uniformly across both paths: an
// unused result gets an extra Pop and a not_used warning anchored at
// span; a used result is left on the stack as-is.
func (e *Emitter) finish(instrs []Instr, span source.Span, used query.Used) ([]Instr, error) {
	if used == query.UsedUnused {
		instrs = append(instrs, Instr{Kind: InstrPop})
		if e.Diags != nil {
			diag.ReportWarning(e.Diags, diag.WarnNotUsed, span, "field access result is not used").Emit()
		}
	}
	return instrs, nil
}
