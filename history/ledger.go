package history

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Common errors for ledger operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the applied stack when no explicit limit is
// configured.
const DefaultMaxEntries = 1000

// entry wraps a recorded operation with metadata.
type entry[S any] struct {
	op        Operation[S]
	timestamp time.Time
}

func (e *entry[S]) info() OperationInfo {
	return OperationInfo{
		Label:     e.op.Label(),
		Timestamp: e.timestamp,
	}
}

// Ledger manages the applied and undone operation stacks for one
// subject. An operation instance belongs to at most one of the two
// stacks at a time, and undo/redo move entries strictly LIFO.
type Ledger[S any] struct {
	mu sync.Mutex

	applied []*entry[S]
	undone  []*entry[S]

	// Grouping state
	grouping   bool
	groupLabel string
	groupOps   []Operation[S]

	// Configuration
	maxEntries int
}

// NewLedger creates a ledger capping the applied stack at maxEntries.
// Non-positive values fall back to DefaultMaxEntries.
func NewLedger[S any](maxEntries int) *Ledger[S] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Ledger[S]{
		maxEntries: maxEntries,
	}
}

// Execute applies op to the subject and records it.
//
// On Applied the operation is pushed onto the applied stack and the
// undone stack is discarded: redo history does not survive a forked
// timeline. On NoEffect, or when Apply fails, history is untouched.
func (l *Ledger[S]) Execute(op Operation[S], subject S) (Outcome, error) {
	out, err := op.Apply(subject)
	if err != nil {
		return NoEffect, err
	}
	if out != Applied {
		return NoEffect, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// The subject changed, so any undone branch is stale even while a
	// group is open.
	l.undone = nil

	if l.grouping {
		l.groupOps = append(l.groupOps, op)
		return Applied, nil
	}

	l.pushLocked(op)
	return Applied, nil
}

// pushLocked records an operation without acquiring the lock.
func (l *Ledger[S]) pushLocked(op Operation[S]) {
	l.applied = append(l.applied, &entry[S]{
		op:        op,
		timestamp: time.Now(),
	})

	l.undone = nil

	// Evict oldest entries beyond the cap. Eviction never touches the
	// undone stack.
	if len(l.applied) > l.maxEntries {
		excess := len(l.applied) - l.maxEntries
		l.applied = l.applied[excess:]
	}
}

// Undo reverses the most recently applied operation not yet undone.
//
// Returns ErrNothingToUndo on an empty applied stack. If the subject
// fails during Invert, both stacks are left unchanged so the caller
// can retry or abandon without corrupting history bookkeeping.
func (l *Ledger[S]) Undo(subject S) (OperationInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.applied) == 0 {
		return OperationInfo{}, ErrNothingToUndo
	}

	e := l.applied[len(l.applied)-1]
	if err := e.op.Invert(subject); err != nil {
		return OperationInfo{}, fmt.Errorf("undo %s: %w", e.op.Label(), err)
	}

	l.applied = l.applied[:len(l.applied)-1]
	l.undone = append(l.undone, e)
	return e.info(), nil
}

// Redo re-applies the most recently undone operation.
//
// Returns ErrNothingToRedo on an empty undone stack. If the subject
// fails during Apply, both stacks are left unchanged.
func (l *Ledger[S]) Redo(subject S) (OperationInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.undone) == 0 {
		return OperationInfo{}, ErrNothingToRedo
	}

	e := l.undone[len(l.undone)-1]
	if _, err := e.op.Apply(subject); err != nil {
		return OperationInfo{}, fmt.Errorf("redo %s: %w", e.op.Label(), err)
	}

	l.undone = l.undone[:len(l.undone)-1]
	l.applied = append(l.applied, e)
	return e.info(), nil
}

// CanUndo returns true if undo is available.
func (l *Ledger[S]) CanUndo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.applied) > 0
}

// CanRedo returns true if redo is available.
func (l *Ledger[S]) CanRedo() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undone) > 0
}

// UndoCount returns the number of undo steps available.
func (l *Ledger[S]) UndoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.applied)
}

// RedoCount returns the number of redo steps available.
func (l *Ledger[S]) RedoCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.undone)
}

// PeekUndo returns info about the next undo candidate without
// mutating history.
func (l *Ledger[S]) PeekUndo() (OperationInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.applied) == 0 {
		return OperationInfo{}, false
	}
	return l.applied[len(l.applied)-1].info(), true
}

// PeekRedo returns info about the next redo candidate without
// mutating history.
func (l *Ledger[S]) PeekRedo() (OperationInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.undone) == 0 {
		return OperationInfo{}, false
	}
	return l.undone[len(l.undone)-1].info(), true
}

// UndoInfo returns info about all applied operations, oldest first.
func (l *Ledger[S]) UndoInfo() []OperationInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]OperationInfo, len(l.applied))
	for i, e := range l.applied {
		result[i] = e.info()
	}
	return result
}

// RedoInfo returns info about all undone operations, oldest first.
func (l *Ledger[S]) RedoInfo() []OperationInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]OperationInfo, len(l.undone))
	for i, e := range l.undone {
		result[i] = e.info()
	}
	return result
}

// Clear removes all undo/redo history.
func (l *Ledger[S]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.applied = nil
	l.undone = nil
	l.grouping = false
	l.groupOps = nil
}

// SetMaxEntries changes the applied stack cap.
// If the stack is already larger, oldest entries are evicted.
func (l *Ledger[S]) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.maxEntries = max

	if len(l.applied) > max {
		excess := len(l.applied) - max
		l.applied = l.applied[excess:]
	}
}

// MaxEntries returns the applied stack cap.
func (l *Ledger[S]) MaxEntries() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxEntries
}
