package hir

import (
	"lumen/internal/ast"
	"lumen/internal/source"
)

// Path is the HIR-resident form of a parsed path expression: the same
// segment sequence ast.Path carries, copied once into the HIR arena so it
// survives independently of whatever transient storage the external
// parser used. The path converter (internal/pathconvert) does not consume
// this; its Convert takes *ast.Path.
type Path struct {
	ID       PathID
	Segments []ast.PathSegment
	Span     source.Span
}
