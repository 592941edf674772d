// Package diag defines the core diagnostic model shared by every phase of
// the compilation pipeline: the query engine, import resolver, visibility
// checker, constant evaluator, and field-access emitter.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced
//     by indexing, import resolution, visibility checks, constant
//     evaluation, and bytecode emission.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to a concrete storage or rendering layer.
//   - Model fix suggestions as structured edits a caller can apply.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// Notes should be used sparingly: each note must add new context (e.g. "item
// imported here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. Callers
// construct a ReportBuilder via NewReportBuilder (or the helper functions
// ReportError/ReportWarning/ReportInfo) and chain WithNote/WithFix before
// calling Emit.
//
// When no additional metadata is needed, phases may call Reporter.Report(...)
// directly. diag.BagReporter aggregates diagnostics into a Bag, which
// supports sorting, deduplication, and filtering. diag.DedupReporter wraps
// another Reporter and suppresses exact duplicates before they ever reach
// the bag, which matters for the query engine since the same item can be
// re-indexed from more than one import path.
package diag
