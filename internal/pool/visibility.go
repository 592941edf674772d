package pool

// VisibilityKind enumerates the access-control relations spec.md §4.5
// defines between a using module and a declaring module.
type VisibilityKind uint8

const (
	// VisPublic admits all modules.
	VisPublic VisibilityKind = iota
	// VisCrate admits any descendant of the crate root.
	VisCrate
	// VisSuper admits the declaring module's parent and every descendant
	// of that parent.
	VisSuper
	// VisSelfValue admits only the declaring module itself.
	VisSelfValue
	// VisInherited is private visibility: equivalent to VisSelfValue.
	VisInherited
	// VisIn admits descendants of an explicit ancestor path (`pub(in a::b)`).
	VisIn
)

// Visibility is the tagged visibility value attached to a Module or an
// ItemMeta. In carries the ancestor item for VisIn; it is NoItemID for
// every other kind.
type Visibility struct {
	Kind VisibilityKind
	In   ItemID
}

func (k VisibilityKind) String() string {
	switch k {
	case VisPublic:
		return "pub"
	case VisCrate:
		return "pub(crate)"
	case VisSuper:
		return "pub(super)"
	case VisSelfValue:
		return "pub(self)"
	case VisInherited:
		return "inherited"
	case VisIn:
		return "pub(in ...)"
	default:
		return "invalid"
	}
}
