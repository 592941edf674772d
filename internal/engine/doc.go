// Package engine is the compilation driver that owns every collaborator
// spec.md §6 lists and wires them into the single re-entrant query
// engine spec.md §4 describes: it indexes declarations, drives the build
// queue to completion, lowers constant bodies from ast to hir, and
// publishes finished metadata to an external Visitor and UnitBuilder.
//
// Grounded on the teacher's overall driver shape, which holds every
// subsystem by pointer on one struct and re-borrows it recursively
// rather than passing state through return values. Its original home was
// internal/driver, whose incremental build-cache and parallel-file
// orchestration don't apply here (see DESIGN.md); the "one struct owns
// everything" wiring pattern is what carries over.
package engine
