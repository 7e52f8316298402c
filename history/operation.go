package history

import "time"

// Outcome reports whether an Apply call changed the subject.
type Outcome int

const (
	// NoEffect means the operation was a legitimate no-op and must not
	// be recorded in history.
	NoEffect Outcome = iota
	// Applied means the operation mutated the subject and has a
	// meaningful inverse.
	Applied
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case NoEffect:
		return "no effect"
	case Applied:
		return "applied"
	default:
		return "unknown"
	}
}

// Operation represents a single reversible mutation of a subject of
// type S.
//
// Apply mutates the subject forward, capturing internally whatever
// pre-state it needs to invert itself. When the requested mutation is
// conditionally invalid (for example a delete past the end of a
// document), Apply must leave the subject untouched and return
// NoEffect rather than partially mutating or failing.
//
// Invert mutates the subject back to its state before the matching
// Apply. It is only ever called with the operation at the top of the
// applied stack, so captured pre-state is always valid when it runs.
type Operation[S any] interface {
	// Apply performs the operation against the subject.
	Apply(subject S) (Outcome, error)

	// Invert reverses a prior Apply on the same subject.
	Invert(subject S) error

	// Label returns a human-readable description of the operation.
	Label() string
}

// OperationInfo provides read-only info about a recorded operation.
// Used for displaying undo/redo history to users.
type OperationInfo struct {
	Label     string    // Human-readable description
	Timestamp time.Time // When the operation was recorded
}
