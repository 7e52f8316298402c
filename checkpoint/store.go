package checkpoint

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

// ErrNotFound is returned when no snapshot exists under a name.
var ErrNotFound = errors.New("checkpoint not found")

// Option configures a Store during creation.
type Option func(*Store)

// WithCompression stores blobs zstd-compressed at rest.
func WithCompression() Option {
	return func(s *Store) {
		s.compress = true
	}
}

// Store manages named snapshots.
// All operations are thread-safe.
type Store struct {
	mu       sync.RWMutex
	byName   map[string]*Snapshot
	seq      uint64
	compress bool
}

// NewStore creates an empty snapshot store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		byName: make(map[string]*Snapshot),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save captures state under name, overwriting any prior snapshot with
// that name. The blob is copied; the caller keeps ownership of state.
func (s *Store) Save(name string, state []byte) (Info, error) {
	blob := make([]byte, len(state))
	copy(blob, state)

	compressed := false
	if s.compress {
		var err error
		blob, err = compressZstd(blob)
		if err != nil {
			return Info{}, fmt.Errorf("compress checkpoint %q: %w", name, err)
		}
		compressed = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	snap := newSnapshot(name, s.seq, blob, compressed)
	s.byName[name] = snap
	return snap.Info(), nil
}

// State returns a self-contained copy of the blob saved under name.
func (s *Store) State(name string) ([]byte, error) {
	s.mu.RLock()
	snap, ok := s.byName[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("checkpoint %q: %w", name, ErrNotFound)
	}

	if snap.compressed {
		state, err := decompressZstd(snap.state)
		if err != nil {
			return nil, fmt.Errorf("decompress checkpoint %q: %w", name, err)
		}
		return state, nil
	}

	state := make([]byte, len(snap.state))
	copy(state, snap.state)
	return state, nil
}

// Get retrieves snapshot metadata by name.
func (s *Store) Get(name string) (Info, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.byName[name]
	if !ok {
		return Info{}, false
	}
	return snap.Info(), true
}

// Delete removes the snapshot saved under name.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[name]; !ok {
		return fmt.Errorf("checkpoint %q: %w", name, ErrNotFound)
	}
	delete(s.byName, name)
	return nil
}

// Names returns an iterator over checkpoint names in arbitrary order.
// The sequence is restartable; each range re-reads the store.
func (s *Store) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		s.mu.RLock()
		names := make([]string, 0, len(s.byName))
		for name := range s.byName {
			names = append(names, name)
		}
		s.mu.RUnlock()

		for _, name := range names {
			if !yield(name) {
				return
			}
		}
	}
}

// List returns metadata for all snapshots, oldest first.
func (s *Store) List() []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]Info, 0, len(s.byName))
	for _, snap := range s.byName {
		infos = append(infos, snap.Info())
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Seq < infos[j].Seq
	})
	return infos
}

// Count returns the number of snapshots.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byName)
}

// Clear removes all snapshots.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byName = make(map[string]*Snapshot)
}

// Prune removes snapshots older than the given duration.
// Returns the number of snapshots removed.
func (s *Store) Prune(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	var removed int

	for name, snap := range s.byName {
		if snap.Taken.Before(cutoff) {
			delete(s.byName, name)
			removed++
		}
	}
	return removed
}

// PruneKeepN removes oldest snapshots, keeping only the N most recent
// by sequence number. Returns the number of snapshots removed.
func (s *Store) PruneKeepN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if len(s.byName) <= n {
		return 0
	}

	snaps := make([]*Snapshot, 0, len(s.byName))
	for _, snap := range s.byName {
		snaps = append(snaps, snap)
	}

	// Newest first by logical clock.
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Seq > snaps[j].Seq
	})

	removed := 0
	for i := n; i < len(snaps); i++ {
		delete(s.byName, snaps[i].Name)
		removed++
	}
	return removed
}

// compressZstd compresses data using zstd.
func compressZstd(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer encoder.Close()

	return encoder.EncodeAll(data, nil), nil
}

// decompressZstd decompresses zstd data.
func decompressZstd(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	return decoder.DecodeAll(data, nil)
}
