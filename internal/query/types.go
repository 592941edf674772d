package query

import (
	"lumen/internal/ast"
	"lumen/internal/hir"
	"lumen/internal/pool"
	"lumen/internal/source"
)

// ItemMeta is associated with every AST node that introduces a name
// (spec.md §3).
type ItemMeta struct {
	ID         ast.DeclID
	Location   source.Span
	Item       pool.ItemID
	Module     pool.ModID
	Visibility pool.Visibility
}

// IndexedKind enumerates the tagged variants an IndexedEntry can hold.
type IndexedKind uint8

const (
	IndexedInvalid IndexedKind = iota
	IndexedEnum
	IndexedStruct
	IndexedVariant
	IndexedFunction
	IndexedInstanceFunction
	IndexedClosure
	IndexedAsyncBlock
	IndexedConst
	IndexedConstFn
	IndexedImport
	IndexedModule
)

// CallConv enumerates how a function or closure is invoked. Only the
// shapes the resolver needs to distinguish are modeled; backend-specific
// calling convention detail is out of this module's scope.
type CallConv uint8

const (
	CallConvPlain CallConv = iota
	CallConvAsync
	CallConvGenerator
)

// ImportEntry is the target of a `use` declaration (spec.md §3).
type ImportEntry struct {
	Location source.Span
	Target   pool.ItemID
	Module   pool.ModID

	// AliasesModule marks a `use a::b as c;` that binds the module itself
	// (rune's Indexed::Module; see SPEC_FULL.md supplemented feature 4),
	// rather than one of its members.
	AliasesModule bool
}

// Indexed is the tagged payload of one IndexedEntry, modeled as a single
// struct with a Kind discriminant (matching this codebase's ExprKind/Expr
// convention) rather than an interface hierarchy, since the build queue
// dispatches on Kind with a plain switch.
type Indexed struct {
	Kind IndexedKind

	// IndexedStruct, IndexedFunction, IndexedConstFn, IndexedClosure,
	// IndexedAsyncBlock: the parser node whose body still needs lowering.
	AST ast.DeclID

	// IndexedVariant
	Enum         pool.ItemID
	VariantIndex uint32

	// IndexedFunction
	CallConv CallConv
	IsTest   bool
	IsBench  bool

	// IndexedClosure, IndexedAsyncBlock
	Captures []ast.LocalID
	Move     bool

	// IndexedConst
	ConstModule pool.ModID
	ConstExpr   ast.ExprID

	// IndexedConstFn
	ConstFnLocation source.Span

	// IndexedImport
	Import   ImportEntry
	Wildcard bool
}

// IndexedEntry pairs an item's metadata with its tagged, unbuilt payload.
type IndexedEntry struct {
	Meta    ItemMeta
	Indexed Indexed
}

// StructVariantKind discriminates how a struct or enum variant's fields
// are shaped.
type StructVariantKind uint8

const (
	VariantUnit StructVariantKind = iota
	VariantTuple
	VariantStruct
)

// StructVariant is the `variant` field PrivMeta's Struct/Variant kinds
// carry (spec.md §3).
type StructVariant struct {
	Kind   StructVariantKind
	Args   uint32 // VariantTuple
	Hash   uint64 // VariantTuple
	Fields []source.StringID // VariantStruct
}

// PrivKind enumerates PrivMeta's tagged kind (spec.md §3).
type PrivKind uint8

const (
	PrivUnknown PrivKind = iota
	PrivStruct
	PrivVariant
	PrivEnum
	PrivFunction
	PrivClosure
	PrivAsyncBlock
	PrivConst
	PrivConstFn
	PrivImport
	PrivModule
)

// PrivMetaPayload is PrivMeta's tagged kind-specific data.
type PrivMetaPayload struct {
	Kind PrivKind

	// PrivStruct
	Hash    uint64
	Variant StructVariant

	// PrivVariant
	EnumItem pool.ItemID
	EnumHash uint64
	Index    uint32

	// PrivFunction
	IsTest  bool
	IsBench bool

	// PrivClosure, PrivAsyncBlock
	Captures []ast.LocalID
	Move     bool

	// PrivConst
	Value ConstValue

	// PrivConstFn
	ConstFnID ast.DeclID

	// PrivImport
	Import ImportEntry
}

// ConstValue is the result of constant evaluation (internal/consteval),
// stored once per const item in the meta cache.
type ConstValue struct {
	Kind  ConstValueKind
	Int   int64
	Bool  bool
	Str   source.StringID
	Tuple []ConstValue
}

// ConstValueKind enumerates the shapes a compile-time constant can take.
type ConstValueKind uint8

const (
	ConstInvalid ConstValueKind = iota
	ConstInt
	ConstBool
	ConstString
	ConstTuple
	ConstUnit
)

// PrivMeta is the canonical metadata produced after building an entry
// (spec.md §3).
type PrivMeta struct {
	Meta    ItemMeta
	Payload PrivMetaPayload
	Source  hir.ExprID
}

// Used marks whether a build entry's output is consumed (spec.md §4.2).
type Used uint8

const (
	UsedUsed Used = iota
	UsedUnused
)

// BuildKind enumerates the units of pending compilation work the build
// queue dispatches on (spec.md §3 BuildEntry.build).
type BuildKind uint8

const (
	BuildInvalid BuildKind = iota
	BuildFunction
	BuildInstanceFunction
	BuildClosure
	BuildAsyncBlock
	BuildImport
	BuildReExport
	BuildUnused
	BuildQuery
)

// BuildEntry is one unit of pending compilation work (spec.md §3).
type BuildEntry struct {
	Meta  ItemMeta
	Used  Used
	Build BuildKind
}
