package source

// FileID uniquely identifies a source file within a FileSet.
type FileID uint32

// FileFlags records metadata about how a source file's bytes were adjusted
// on load.
type FileFlags uint8

const (
	// FileVirtual marks a file added from memory (tests, REPL input) rather
	// than loaded from disk.
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks a file whose UTF-8 byte-order mark was stripped.
	FileHadBOM
	// FileNormalizedCRLF marks a file whose line endings were normalized.
	FileNormalizedCRLF
)

// File holds the content and derived indices for one source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a human-readable 1-based source position.
type LineCol struct {
	Line uint32
	Col  uint32
}
