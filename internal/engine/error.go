package engine

import (
	"fmt"

	"lumen/internal/consteval"
	"lumen/internal/diag"
	"lumen/internal/fieldemit"
	"lumen/internal/importresolve"
	"lumen/internal/pathconvert"
	"lumen/internal/query"
	"lumen/internal/source"
	"lumen/internal/visibility"
)

// Error wraps an engine-level failure (a synthesized path/decl that
// couldn't be built, an unit-builder meta conflict) with the diag.Code
// it maps to, matching every collaborator package's own Error shape.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Msg) }

// errorDetails extracts (code, span, message) from any error a
// collaborator package can return, so the driver loop can report it
// through diag.Reporter without each package needing a shared interface.
func errorDetails(err error) (diag.Code, source.Span, string) {
	switch e := err.(type) {
	case *query.Error:
		return e.Code, e.Span, e.Msg
	case *importresolve.Error:
		return e.Code, e.Span, e.Msg
	case *pathconvert.Error:
		return e.Code, e.Span, e.Msg
	case *visibility.Error:
		return e.Code, e.Span, e.Msg
	case *consteval.Error:
		return e.Code, e.Span, e.Msg
	case *fieldemit.Error:
		return e.Code, e.Span, e.Msg
	case *Error:
		return e.Code, e.Span, e.Msg
	default:
		return diag.UnknownCode, source.Span{}, err.Error()
	}
}
