package fieldemit

import "lumen/internal/source"

// Slots is the static string slot table spec.md §4.7 step 2 names:
// "intern it as a static string slot". It is a dense dedup table over
// source.StringID, assigning each distinct field name a small, stable
// StringSlot the first time it is seen, loosely grounded on
// source.Interner's own string-to-id dedup rather than any one teacher
// file (the teacher has no separate bytecode string-slot table; its MIR
// addresses fields by name directly).
type Slots struct {
	ids   map[source.StringID]StringSlot
	names []source.StringID
}

// NewSlots creates an empty slot table.
func NewSlots() *Slots {
	return &Slots{ids: make(map[source.StringID]StringSlot)}
}

// Intern returns the slot for name, assigning a fresh one on first use.
func (s *Slots) Intern(name source.StringID) StringSlot {
	if slot, ok := s.ids[name]; ok {
		return slot
	}
	slot := StringSlot(len(s.names))
	s.ids[name] = slot
	s.names = append(s.names, name)
	return slot
}

// Name returns the field name interned at slot.
func (s *Slots) Name(slot StringSlot) source.StringID {
	return s.names[slot]
}

// Len reports how many distinct field names have been interned.
func (s *Slots) Len() int { return len(s.names) }
