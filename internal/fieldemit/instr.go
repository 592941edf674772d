package fieldemit

// AddressKind distinguishes the shapes a bytecode address can take.
// spec.md §6 describes Address as "a variant over {Offset(uint), …}";
// AddrStack is this package's second variant, standing for "the value
// the previous instruction just pushed", the shape the general path
// needs when the field-access object is itself a nested field access
// rather than a local.
type AddressKind uint8

const (
	// AddrOffset addresses a local by its stable slot offset.
	AddrOffset AddressKind = iota
	// AddrStack addresses the value left on top of the stack by the
	// instructions emitted immediately before it.
	AddrStack
)

// Address is the target operand TupleIndexGet and ObjectIndexGet read
// their object from.
type Address struct {
	Kind   AddressKind
	Offset uint32
}

// StringSlot identifies an interned field name in this unit's static
// string slot table (see Slots). Assigned densely in first-use order.
type StringSlot uint32

// InstrKind enumerates the three instructions this fragment emits.
type InstrKind uint8

const (
	InstrInvalid InstrKind = iota
	// InstrTupleIndexGet reads a tuple element by positional index.
	InstrTupleIndexGet
	// InstrObjectIndexGet reads an object field by interned name.
	InstrObjectIndexGet
	// InstrPop discards the top-of-stack value.
	InstrPop
)

// TupleIndexGetInstr is TupleIndexGet { target, index }.
type TupleIndexGetInstr struct {
	Target Address
	Index  uint64
}

// ObjectIndexGetInstr is ObjectIndexGet { target, slot }.
type ObjectIndexGetInstr struct {
	Target Address
	Slot   StringSlot
}

// Instr is one emitted instruction. Only the field matching Kind is
// meaningful, mirroring the teacher's mir.Instr tagged-struct
// convention (one field block per Kind) also used by ast.Expr,
// hir.Expr, and query.Indexed throughout this module.
type Instr struct {
	Kind           InstrKind
	TupleIndexGet  TupleIndexGetInstr
	ObjectIndexGet ObjectIndexGetInstr
}
