package engine

import (
	"lumen/internal/diag"
	"lumen/internal/hir"
	"lumen/internal/pool"
	"lumen/internal/query"
	"lumen/internal/source"
)

// Run drains the build queue to completion (spec.md §4.2): pop and
// dispatch every pending entry, then sweep whatever the indexer still
// holds into Unused build entries and repeat until a sweep finds
// nothing left. A failed entry is reported and does not stop the loop;
// the remainder of the queue still drains so a single bad declaration
// doesn't hide every other diagnostic.
func (e *Engine) Run() {
	for {
		for {
			entry, ok := e.Queue.Pop()
			if !ok {
				break
			}
			e.dispatch(entry)
		}
		if !e.Queue.QueueUnusedEntries(e.Indexer) {
			break
		}
	}
}

// dispatch processes one popped BuildEntry according to its kind.
func (e *Engine) dispatch(entry query.BuildEntry) {
	switch entry.Build {
	case query.BuildFunction, query.BuildInstanceFunction, query.BuildClosure,
		query.BuildAsyncBlock, query.BuildImport, query.BuildReExport, query.BuildQuery:
		e.queryAndPublish(entry.Meta.Location, entry.Meta.Item, entry.Used)

	case query.BuildUnused:
		diag.ReportWarning(e.Reporter, diag.WarnUnusedEntry, entry.Meta.Location,
			"declaration is never referenced").Emit()

	default:
		e.reportError(&Error{
			Code: diag.StructuralMissingID,
			Span: entry.Meta.Location,
			Msg:  "unrecognized build entry kind",
		})
	}
}

// queryAndPublish resolves item's metadata and, on success, hands it to
// both the visitor and the unit builder (spec.md §6's two build-queue
// consumers). A resolution failure is reported and otherwise dropped:
// its indexed entry was already removed and no meta was cached, so a
// later reference to the same item fails with StructuralMissingID
// instead of re-running the build.
func (e *Engine) queryAndPublish(span source.Span, item pool.ItemID, used query.Used) {
	meta, err := e.QEngine.QueryMeta(span, item, used)
	if err != nil {
		e.reportError(err)
		return
	}
	e.Visitor.RegisterMeta(meta)
	if err := e.UnitBuilder.InsertMeta(span, meta); err != nil {
		e.reportError(err)
	}
}

// reportError surfaces err through e.Reporter, extracting its
// (code, span, message) from whichever collaborator package produced it.
func (e *Engine) reportError(err error) {
	code, span, msg := errorDetails(err)
	diag.ReportError(e.Reporter, code, span, msg).Emit()
}

// EmitFieldAccess runs the field-access bytecode emitter (spec.md §4.7)
// against id and forwards the resulting instructions to the unit
// builder under item. A real caller would be the statement-lowering
// pass that sits outside this module's scope; here it's invoked once
// per field-access expression after its object and enclosing item's own
// metadata are already resolved.
func (e *Engine) EmitFieldAccess(item pool.ItemID, id hir.ExprID, used query.Used) error {
	instrs, err := e.FieldEmit.Emit(id, used)
	if err != nil {
		return err
	}
	e.UnitBuilder.EmitInstructions(item, instrs)
	return nil
}
