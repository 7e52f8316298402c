// Package reverso is a reversible-operation history engine: it
// executes mutating operations against a subject, tracks them for
// undo/redo, groups them into atomic composites, and checkpoints
// subject state under names for later restoration.
//
// The engine is generic over its subject. Any type that can capture
// and restore its own state as an opaque blob can be driven:
//
//	doc := document.New()
//	eng := reverso.New(doc, reverso.WithMaxUndoEntries(500))
//
//	eng.Execute(&document.Insert{At: 0, Text: "Hello"})
//	eng.Undo()
//	eng.Redo()
//
//	eng.Checkpoint("before-risky-edit")
//	// ... edits ...
//	eng.RestoreCheckpoint("before-risky-edit")
//
// Undo and redo are strictly LIFO over a linear history; executing a
// new operation discards the redo branch. Restoring a checkpoint is a
// hard timeline reset: the restored state did not arise from any
// tracked operation, so both history stacks are cleared.
//
// Domain operation types live with their subject; see the document
// package for a complete example pair.
package reverso
