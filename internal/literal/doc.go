// Package literal implements the Storage/Resolver component of spec.md
// §2: resolving string, char, and number literals against the original
// source text. Grounded on the teacher's source.Interner for string
// dedup and source.FileSet for span-to-text slicing (internal/source).
package literal
