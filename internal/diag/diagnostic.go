package diag

import "lumen/internal/source"

// Note provides auxiliary context for a diagnostic message, e.g. pointing
// at a previous declaration or the other end of an import cycle.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit describes a textual change that can be applied to a source file.
//   - Insertion: Span.Start == Span.End, NewText != ""
//   - Deletion:  Span.Start < Span.End, NewText == ""
//   - Replace:   Span.Start < Span.End, NewText != ""
type TextEdit struct {
	Span    source.Span
	NewText string
}

// Fix describes an actionable change that can repair a diagnostic.
type Fix struct {
	Title string
	Edits []TextEdit
}

// Diagnostic captures a single issue along with optional notes and fixes.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
