package ast

import "lumen/internal/source"

// ImportPair names one imported symbol and its optional local alias,
// e.g. the `x as y` in `use a::{x as y};`.
type ImportPair struct {
	Name  source.StringID
	Alias source.StringID
	Span  source.Span
}

// ImportItem is the parser's representation of a `use` declaration. It
// may import a single name, a group of names, every public name via a
// wildcard, or just bind the module itself under an alias.
type ImportItem struct {
	Module      []source.StringID
	ModuleAlias source.StringID

	HasOne bool
	One    ImportPair

	Group []ImportPair

	ImportAll bool

	Span source.Span
}

// AliasesModule reports whether this import binds the module itself
// (`use a::b as c;` with no member list) rather than one of its members.
func (it *ImportItem) AliasesModule() bool {
	return it.ModuleAlias != source.NoStringID && !it.HasOne && len(it.Group) == 0 && !it.ImportAll
}
