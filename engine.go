package reverso

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/dshills/reverso/checkpoint"
	"github.com/dshills/reverso/history"
)

// Re-export commonly used types for convenience.
type (
	// Outcome reports whether an executed operation changed the subject.
	Outcome = history.Outcome

	// OperationInfo is read-only info about a recorded operation.
	OperationInfo = history.OperationInfo

	// CheckpointInfo is read-only info about a saved checkpoint.
	CheckpointInfo = checkpoint.Info
)

// Re-export constants.
const (
	NoEffect = history.NoEffect
	Applied  = history.Applied
)

// Subject is the external collaborator the engine operates on.
// CaptureState must return a deep, self-contained blob; the engine
// never inspects its contents. RestoreState replaces the subject's
// entire observable state with the blob's.
type Subject interface {
	CaptureState() ([]byte, error)
	RestoreState(state []byte) error
}

// Engine is the facade over one subject, one history ledger, and one
// checkpoint store. It is the only component hosts address; callers
// receive value-typed info records and names, never internal operation
// or snapshot references.
type Engine[S Subject] struct {
	subject     S
	ledger      *history.Ledger[S]
	checkpoints *checkpoint.Store
	logger      *slog.Logger

	checkpointKeep int
}

// New creates an engine around the given subject.
func New[S Subject](subject S, opts ...Option) *Engine[S] {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var storeOpts []checkpoint.Option
	if cfg.compressCheckpoints {
		storeOpts = append(storeOpts, checkpoint.WithCompression())
	}

	return &Engine[S]{
		subject:        subject,
		ledger:         history.NewLedger[S](cfg.maxUndoEntries),
		checkpoints:    checkpoint.NewStore(storeOpts...),
		logger:         logger,
		checkpointKeep: cfg.checkpointKeep,
	}
}

// Subject returns the subject this engine drives.
func (e *Engine[S]) Subject() S {
	return e.subject
}

// ============================================================================
// Execute / Undo / Redo
// ============================================================================

// Execute applies op to the subject and records it for undo.
// A NoEffect outcome leaves history untouched; the redo branch is
// discarded only when the subject actually changed.
func (e *Engine[S]) Execute(op history.Operation[S]) (Outcome, error) {
	out, err := e.ledger.Execute(op, e.subject)
	if err != nil {
		return out, err
	}
	e.logger.Debug("execute", "op", op.Label(), "outcome", out.String())
	return out, nil
}

// ExecuteComposite applies a builder-populated composite as one atomic
// undo unit. An empty composite reports NoEffect.
func (e *Engine[S]) ExecuteComposite(c *history.Composite[S]) (Outcome, error) {
	if c.IsEmpty() {
		return NoEffect, nil
	}
	return e.Execute(c)
}

// Undo reverses the most recently applied operation.
// Returns ErrNothingToUndo when history is empty. A subject failure
// leaves history unchanged so the call can be retried.
func (e *Engine[S]) Undo() (OperationInfo, error) {
	info, err := e.ledger.Undo(e.subject)
	if err != nil {
		return info, err
	}
	e.logger.Debug("undo", "op", info.Label)
	return info, nil
}

// Redo re-applies the most recently undone operation.
// Returns ErrNothingToRedo when no undone operation is available.
func (e *Engine[S]) Redo() (OperationInfo, error) {
	info, err := e.ledger.Redo(e.subject)
	if err != nil {
		return info, err
	}
	e.logger.Debug("redo", "op", info.Label)
	return info, nil
}

// CanUndo returns true if undo is available.
func (e *Engine[S]) CanUndo() bool { return e.ledger.CanUndo() }

// CanRedo returns true if redo is available.
func (e *Engine[S]) CanRedo() bool { return e.ledger.CanRedo() }

// UndoCount returns the number of undo steps available.
func (e *Engine[S]) UndoCount() int { return e.ledger.UndoCount() }

// RedoCount returns the number of redo steps available.
func (e *Engine[S]) RedoCount() int { return e.ledger.RedoCount() }

// PeekUndo returns info about the next undo candidate without
// mutating history.
func (e *Engine[S]) PeekUndo() (OperationInfo, bool) { return e.ledger.PeekUndo() }

// PeekRedo returns info about the next redo candidate without
// mutating history.
func (e *Engine[S]) PeekRedo() (OperationInfo, bool) { return e.ledger.PeekRedo() }

// UndoHistory returns info about all applied operations, oldest first.
func (e *Engine[S]) UndoHistory() []OperationInfo { return e.ledger.UndoInfo() }

// RedoHistory returns info about all undone operations, oldest first.
func (e *Engine[S]) RedoHistory() []OperationInfo { return e.ledger.RedoInfo() }

// ClearHistory removes all undo/redo history.
// Checkpoints are unaffected.
func (e *Engine[S]) ClearHistory() { e.ledger.Clear() }

// ============================================================================
// Grouping
// ============================================================================

// BeginGroup starts an operation group; see Ledger.BeginGroup.
func (e *Engine[S]) BeginGroup(label string) { e.ledger.BeginGroup(label) }

// EndGroup closes the current group into one composite undo unit.
func (e *Engine[S]) EndGroup() { e.ledger.EndGroup() }

// CancelGroup abandons the current group without recording it.
func (e *Engine[S]) CancelGroup() { e.ledger.CancelGroup() }

// Transaction executes fn within a grouped undo context.
// The group is cancelled if fn returns an error.
func (e *Engine[S]) Transaction(label string, fn func() error) error {
	return e.ledger.Transaction(label, fn)
}

// ============================================================================
// Checkpoints
// ============================================================================

// Checkpoint captures the subject's state under name, overwriting any
// prior checkpoint with that name.
func (e *Engine[S]) Checkpoint(name string) (CheckpointInfo, error) {
	state, err := e.subject.CaptureState()
	if err != nil {
		return CheckpointInfo{}, fmt.Errorf("checkpoint %q: %w", name, err)
	}

	info, err := e.checkpoints.Save(name, state)
	if err != nil {
		return CheckpointInfo{}, err
	}

	if e.checkpointKeep > 0 {
		e.checkpoints.PruneKeepN(e.checkpointKeep)
	}

	e.logger.Debug("checkpoint", "name", name, "seq", info.Seq, "size", info.Size)
	return info, nil
}

// RestoreCheckpoint replaces the subject's state wholesale with the
// named checkpoint and clears all undo/redo history. The restored
// state did not arise from any tracked operation, so undoing back into
// pre-restore history is not supported.
func (e *Engine[S]) RestoreCheckpoint(name string) error {
	state, err := e.checkpoints.State(name)
	if err != nil {
		return err
	}

	if err := e.subject.RestoreState(state); err != nil {
		return fmt.Errorf("restore checkpoint %q: %w", name, err)
	}

	e.ledger.Clear()
	e.logger.Debug("restore", "name", name)
	return nil
}

// DeleteCheckpoint removes the named checkpoint.
func (e *Engine[S]) DeleteCheckpoint(name string) error {
	return e.checkpoints.Delete(name)
}

// GetCheckpoint retrieves checkpoint metadata by name.
func (e *Engine[S]) GetCheckpoint(name string) (CheckpointInfo, bool) {
	return e.checkpoints.Get(name)
}

// CheckpointNames returns a restartable iterator over checkpoint names
// in arbitrary order.
func (e *Engine[S]) CheckpointNames() iter.Seq[string] {
	return e.checkpoints.Names()
}

// Checkpoints returns metadata for all checkpoints, oldest first.
func (e *Engine[S]) Checkpoints() []CheckpointInfo {
	return e.checkpoints.List()
}

// CheckpointCount returns the number of saved checkpoints.
func (e *Engine[S]) CheckpointCount() int {
	return e.checkpoints.Count()
}

// PruneCheckpoints removes checkpoints older than maxAge.
// Returns the number removed.
func (e *Engine[S]) PruneCheckpoints(maxAge time.Duration) int {
	return e.checkpoints.Prune(maxAge)
}
