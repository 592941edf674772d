package diag

import "fmt"

// Code identifies the kind of a diagnostic. The taxonomy is closed: every
// code a phase in this module can emit is listed here, grouped by the
// stage that detects it.
type Code uint16

const (
	UnknownCode Code = 0

	// Resolve errors surface while turning parser output into literal
	// values and constant-evaluated expressions.
	ResolveBadLiteral   Code = 1001
	ResolveBadObjectKey Code = 1002

	// Structural errors come from the query engine's bookkeeping: an id
	// the build queue expected doesn't exist, a meta slot was written
	// twice, or a module's source file is missing.
	StructuralMissingID    Code = 1101
	StructuralMetaConflict Code = 1102
	StructuralLastUse      Code = 1103
	StructuralMissingMod   Code = 1104

	// Import errors come from the import resolver's redirect-chain walk.
	ImportRecursionLimit Code = 1201
	ImportCycle          Code = 1202
	ImportAmbiguousItem  Code = 1203

	// Visibility errors come from checking an item's visibility against
	// the module ancestry chain of the use site.
	VisibilityNotVisible    Code = 1301
	VisibilityNotVisibleMod Code = 1302

	// Path-shape errors come from the path converter: a path segment
	// doesn't fit what a path in this position is allowed to be.
	PathUnsupportedGlobal          Code = 1401
	PathUnsupportedSuper           Code = 1402
	PathUnsupportedSelfType        Code = 1403
	PathUnsupportedSuperInSelfType Code = 1404
	PathUnsupportedGenerics        Code = 1405
	PathUnsupportedAfterGeneric    Code = 1406
	PathExpectedLeadingSegment     Code = 1407

	// Assembly errors come from bytecode emission.
	AssemblyBadFieldAccess Code = 1501

	// Constant evaluation errors.
	ConstBudgetExceeded Code = 1601

	// Warnings emitted on otherwise successful builds.
	WarnUnusedEntry Code = 1701
	WarnNotUsed     Code = 1702
)

func (c Code) String() string {
	switch c {
	case UnknownCode:
		return "UNKNOWN"
	case ResolveBadLiteral:
		return "E1001_BAD_LITERAL"
	case ResolveBadObjectKey:
		return "E1002_BAD_OBJECT_KEY"
	case StructuralMissingID:
		return "E1101_MISSING_ID"
	case StructuralMetaConflict:
		return "E1102_META_CONFLICT"
	case StructuralLastUse:
		return "E1103_LAST_USE_COMPONENT"
	case StructuralMissingMod:
		return "E1104_MISSING_MOD"
	case ImportRecursionLimit:
		return "E1201_IMPORT_RECURSION_LIMIT"
	case ImportCycle:
		return "E1202_IMPORT_CYCLE"
	case ImportAmbiguousItem:
		return "E1203_AMBIGUOUS_ITEM"
	case VisibilityNotVisible:
		return "E1301_NOT_VISIBLE"
	case VisibilityNotVisibleMod:
		return "E1302_NOT_VISIBLE_MOD"
	case PathUnsupportedGlobal:
		return "E1401_UNSUPPORTED_GLOBAL"
	case PathUnsupportedSuper:
		return "E1402_UNSUPPORTED_SUPER"
	case PathUnsupportedSelfType:
		return "E1403_UNSUPPORTED_SELF_TYPE"
	case PathUnsupportedSuperInSelfType:
		return "E1404_UNSUPPORTED_SUPER_IN_SELF_TYPE"
	case PathUnsupportedGenerics:
		return "E1405_UNSUPPORTED_GENERICS"
	case PathUnsupportedAfterGeneric:
		return "E1406_UNSUPPORTED_AFTER_GENERIC"
	case PathExpectedLeadingSegment:
		return "E1407_EXPECTED_LEADING_SEGMENT"
	case AssemblyBadFieldAccess:
		return "E1501_BAD_FIELD_ACCESS"
	case ConstBudgetExceeded:
		return "E1601_CONST_BUDGET_EXCEEDED"
	case WarnUnusedEntry:
		return "W1701_UNUSED_ENTRY"
	case WarnNotUsed:
		return "W1702_NOT_USED"
	default:
		return fmt.Sprintf("CODE_%d", uint16(c))
	}
}
