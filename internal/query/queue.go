package query

import "sort"

// BuildQueue is a strict FIFO of pending compilation work (spec.md §4.2,
// §5 "the build queue is strictly FIFO"). It has no teacher analogue —
// the teacher resolves everything in one recursive walk rather than
// through an explicit work queue — so this is new, modeled directly off
// spec.md's description.
type BuildQueue struct {
	entries []BuildEntry
	head    int
}

// NewBuildQueue creates an empty queue.
func NewBuildQueue() *BuildQueue {
	return &BuildQueue{}
}

// Push appends entry to the back of the queue.
func (q *BuildQueue) Push(entry BuildEntry) {
	q.entries = append(q.entries, entry)
}

// Pop removes and returns the entry at the front of the queue, in
// insertion order (spec.md §8 law 6: "entries are popped in insertion
// order").
func (q *BuildQueue) Pop() (BuildEntry, bool) {
	if q.head >= len(q.entries) {
		return BuildEntry{}, false
	}
	e := q.entries[q.head]
	q.entries[q.head] = BuildEntry{}
	q.head++
	if q.head == len(q.entries) {
		q.entries = q.entries[:0]
		q.head = 0
	}
	return e, true
}

// Len reports the number of entries still queued.
func (q *BuildQueue) Len() int {
	return len(q.entries) - q.head
}

// QueueUnusedEntries collects every item still sitting in the indexer and
// pushes an Unused build entry for each, reporting whether any were
// found. The driver loop in internal/engine calls this repeatedly until
// it returns false, which is how every indexed entry is guaranteed to be
// eventually processed or explicitly dropped (spec.md §4.2).
//
// This re-enqueues without deduplication on purpose: spec.md's Open
// Question on this point is resolved literally in DESIGN.md — the same
// unused item can be queued again on a later call if it somehow
// reappears in the indexer, matching the documented source behavior
// rather than adding dedup machinery the spec doesn't describe.
func (q *BuildQueue) QueueUnusedEntries(ix *Indexer) bool {
	items := ix.AllPending()
	if len(items) == 0 {
		return false
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })
	for _, item := range items {
		entries := ix.byItem[item]
		for _, e := range entries {
			q.Push(BuildEntry{Meta: e.Meta, Used: UsedUnused, Build: BuildUnused})
		}
		delete(ix.byItem, item)
	}
	return true
}
