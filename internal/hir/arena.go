package hir

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a generic bump allocator: once a value is appended it is
// never moved or freed, so a returned index and the pointer Get hands
// back for it stay valid for the arena's entire lifetime (spec.md
// invariant 5: "the HIR arena outlives all borrows into it; HIR nodes
// are immutable after construction"). Elements are boxed individually
// (one allocation per node, like the teacher's ast.Arena[T]) precisely so
// that growing the backing slice never relocates an already-handed-out
// pointer. Index 0 is reserved so the zero value of each *ID newtype
// reads as "absent".
type Arena[T any] struct {
	data []*T
}

// NewArena creates an Arena[T] with a capacity hint.
func NewArena[T any](capHint uint) *Arena[T] {
	a := &Arena[T]{data: make([]*T, 1, capHint+1)}
	return a
}

// Alloc appends value and returns its 1-based index.
func (a *Arena[T]) Alloc(value T) uint32 {
	elem := new(T)
	*elem = value
	a.data = append(a.data, elem)
	return a.Len()
}

// Get returns a pointer to the element at index, or nil if index is 0 or
// out of range.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) >= len(a.data) {
		return nil
	}
	return a.data[index]
}

// Len returns the number of elements in the arena, excluding the sentinel.
func (a *Arena[T]) Len() uint32 {
	result, err := safecast.Conv[uint32](len(a.data) - 1)
	if err != nil {
		panic(fmt.Errorf("hir: arena len overflow: %w", err))
	}
	return result
}
