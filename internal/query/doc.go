// Package query implements the Indexer (Query DB), Build Queue, and
// Meta Cache components of spec.md §2: the ordered multimap of entries
// awaiting compilation, the strict FIFO that drives the build loop, and
// the write-once cache of canonical item metadata.
//
// Grounded on the teacher's internal/symbols.resolver.Declare
// (write-once, conflict-detecting declaration) and internal/symbols
// .table.go's arena aggregation, generalized from "declare a name" to
// "index an entry awaiting build". The FIFO build queue and
// QueueUnusedEntries loop have no teacher analogue; they are modeled
// directly off spec.md §4.2.
package query
