package engine

import (
	"crypto/sha256"
	"encoding/binary"

	"lumen/internal/pool"
	"lumen/internal/source"
)

// hashItem derives a stable identity hash for an item from its canonical
// path string. Grounded on the teacher's internal/driver/hashcalc.go
// combineDigest, which folds a unit's content and its dependencies'
// hashes through sha256; this module has no unit content to hash (no
// function bodies survive into ast/hir, see DESIGN.md), so the canonical
// path stands in as the only stable identity a Struct/Enum/Function/
// Closure meta record has to carry.
func hashItem(items *pool.Items, strs *source.Interner, item pool.ItemID) uint64 {
	sum := sha256.Sum256([]byte(items.PathString(strs, item)))
	return binary.BigEndian.Uint64(sum[:8])
}
