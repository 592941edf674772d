// Package nametable implements the name table: a trie over every
// indexed item's canonical path, supporting prefix queries with
// deterministic, sorted child iteration. Grounded on the shape of the
// teacher's internal/symbols.Scope.NameIndex (a per-scope name → symbol
// index), generalized here to a multi-level structure since this
// module's paths nest through module boundaries the teacher's flat
// per-scope index doesn't need to represent.
package nametable
