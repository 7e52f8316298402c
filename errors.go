package reverso

import (
	"github.com/dshills/reverso/checkpoint"
	"github.com/dshills/reverso/history"
)

// Errors returned by engine operations.
var (
	// ErrNothingToUndo indicates the applied stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the undone stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrSealed indicates an attempt to extend an already-applied
	// composite.
	ErrSealed = history.ErrSealed

	// ErrCheckpointNotFound indicates no checkpoint exists under the
	// given name.
	ErrCheckpointNotFound = checkpoint.ErrNotFound
)
