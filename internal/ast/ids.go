package ast

// DeclID identifies a parser-level node that introduces a name: a
// function, struct, enum, variant, const, closure, import, or module
// declaration. It is the fixed "id" every ItemMeta is keyed on.
type DeclID uint32

// NoDeclID marks the absence of a declaration node.
const NoDeclID DeclID = 0

// IsValid reports whether id refers to an allocated declaration.
func (id DeclID) IsValid() bool { return id != NoDeclID }

// ExprID identifies a parser-level expression node.
type ExprID uint32

// NoExprID marks the absence of an expression reference.
const NoExprID ExprID = 0

// IsValid reports whether id refers to an allocated expression.
func (id ExprID) IsValid() bool { return id != NoExprID }

// PathID identifies a parser-level path expression (the unresolved,
// lexical form the path converter consumes).
type PathID uint32

// NoPathID marks the absence of a path reference.
const NoPathID PathID = 0

// IsValid reports whether id refers to an allocated path.
func (id PathID) IsValid() bool { return id != NoPathID }

// LocalID identifies a local binding visible within a function body, in
// the order parameters and `let` bindings were declared.
type LocalID uint32

// NoLocalID marks the absence of a local.
const NoLocalID LocalID = 0

// IsValid reports whether id refers to a declared local.
func (id LocalID) IsValid() bool { return id != NoLocalID }

// FileID identifies one parsed source unit, separate from source.FileID
// since a single source file may in principle be split into more than one
// parse unit by the external parser.
type FileID uint32
