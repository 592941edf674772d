package engine

import (
	"fmt"
	"io"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"lumen/internal/query"
)

// snapshotSchema is bumped whenever SnapshotPayload's shape changes, so a
// stale snapshot from an older build is rejected instead of silently
// misdecoded. Grounded on the teacher's internal/driver/dcache.go
// diskCacheSchemaVersion convention.
const snapshotSchema uint16 = 1

// SnapshotPayload is the serialized form of a completed Engine run: every
// PrivMeta the meta cache accumulated, in a stable order so two runs over
// identical input produce byte-identical output.
type SnapshotPayload struct {
	Schema uint16
	Metas  []query.PrivMeta
}

// WriteSnapshot serializes every cached meta record to w. Spans reference
// e.Files' indices, so a snapshot is only meaningful when read back
// against the same FileSet that produced it (same process, or a caller
// that reconstructs an identical FileSet first) — this is a warm-cache
// artifact, not a portable export format.
func (e *Engine) WriteSnapshot(w io.Writer) error {
	metas := e.Cache.All()
	sort.Slice(metas, func(i, j int) bool { return metas[i].Meta.Item < metas[j].Meta.Item })

	payload := SnapshotPayload{Schema: snapshotSchema, Metas: metas}
	return msgpack.NewEncoder(w).Encode(&payload)
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot and installs
// every record into e.Cache via Insert, so a later QueryMeta on any of
// those items returns instantly instead of re-running Build. A schema
// mismatch is reported rather than silently ignored, since decoding an
// old shape into the current one can succeed with garbage field values.
func (e *Engine) ReadSnapshot(r io.Reader) error {
	var payload SnapshotPayload
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return err
	}
	if payload.Schema != snapshotSchema {
		return fmt.Errorf("engine: snapshot schema %d does not match current schema %d", payload.Schema, snapshotSchema)
	}
	for _, meta := range payload.Metas {
		if err := e.Cache.Insert(meta.Meta.Item, meta); err != nil {
			return err
		}
	}
	return nil
}
