package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a generic typed arena for allocating parser-produced nodes.
// Index 0 is reserved so a zero-valued ID newtype reads as "absent".
type Arena[T any] struct {
	data []*T
}

// NewArena creates an Arena[T] whose backing slice is allocated with a
// capacity hint of capHint; zero is allowed.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]*T, 1, capHint+1),
	}
}

// Allocate appends a value to the arena and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	elem := new(T)
	*elem = value
	a.data = append(a.data, elem)
	return a.Len()
}

// Get returns a pointer to the element at the given 1-based index, or nil
// if index is 0 or out of range.
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
		panic(fmt.Errorf("ast: arena len overflow: %w", err))
	}
	return result
}
