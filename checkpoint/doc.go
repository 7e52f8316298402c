// Package checkpoint provides named, immutable snapshots of subject
// state.
//
// A Snapshot is an opaque state blob tagged with a monotonically
// increasing sequence number; the package never inspects blob
// contents. The Store maps unique names to snapshots, independent of
// any undo/redo chain: saving under an existing name overwrites the
// prior snapshot, and restoring is a wholesale state replacement
// decided by the caller.
//
// Blobs can optionally be held zstd-compressed at rest, which matters
// for long sessions that checkpoint large subjects frequently.
package checkpoint
