package checkpoint

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is a named, immutable capture of subject state.
// The state blob itself is opaque and unreachable from outside the
// package; callers see only the identifying metadata.
type Snapshot struct {
	// ID uniquely identifies this snapshot.
	ID string

	// Name is the human-readable name the snapshot was saved under.
	Name string

	// Seq is the store's logical clock value at capture time.
	// Later captures always carry larger values.
	Seq uint64

	// Taken is when the snapshot was captured.
	Taken time.Time

	// state holds the (possibly compressed) blob.
	state []byte

	// compressed marks state as zstd-compressed at rest.
	compressed bool
}

func newSnapshot(name string, seq uint64, state []byte, compressed bool) *Snapshot {
	return &Snapshot{
		ID:         uuid.NewString(),
		Name:       name,
		Seq:        seq,
		Taken:      time.Now(),
		state:      state,
		compressed: compressed,
	}
}

// Info is the value-typed view of a snapshot handed to callers.
type Info struct {
	ID    string
	Name  string
	Seq   uint64
	Taken time.Time
	Size  int // blob size at rest, in bytes
}

// Info returns the snapshot's metadata.
func (s *Snapshot) Info() Info {
	return Info{
		ID:    s.ID,
		Name:  s.Name,
		Seq:   s.Seq,
		Taken: s.Taken,
		Size:  len(s.state),
	}
}

// Size returns the blob size at rest, in bytes.
func (s *Snapshot) Size() int {
	return len(s.state)
}

// Age returns how long ago this snapshot was captured.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.Taken)
}
