// Package history provides execute/undo/redo tracking for reversible
// operations against an arbitrary subject type.
//
// The package uses the Command pattern to encapsulate mutations so they
// can be executed, undone, and redone. Key concepts:
//
// # Operations
//
// An Operation mutates a subject forward with Apply and reverses that
// mutation with Invert. Apply reports whether it actually changed the
// subject; legitimate no-ops (Outcome NoEffect) are never recorded.
//
// # Composites
//
// A Composite groups operations into one atomic undo unit. Children
// apply in order and invert in reverse order. A composite that fails
// partway rolls back the children that already applied.
//
// # The Ledger
//
// The Ledger owns the applied and undone stacks:
//
//	ledger := history.NewLedger[*Doc](1000) // Max 1000 undo entries
//
//	// Execute operations
//	ledger.Execute(op, doc)
//
//	// Undo/redo
//	ledger.Undo(doc)
//	ledger.Redo(doc)
//
// Executing a new operation discards the undone stack: redo history
// does not survive a forked timeline.
//
// # Grouping
//
// Multiple operations can be grouped as a single undo unit:
//
//	ledger.BeginGroup("Find and Replace")
//	// ... multiple edits ...
//	ledger.EndGroup()
//
// Now all edits undo together in one step.
package history
