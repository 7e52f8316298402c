package history

// BeginGroup starts an operation group.
// Operations executed while grouping are combined into a single
// composite undo unit when the group ends. Nested calls are ignored.
func (l *Ledger[S]) BeginGroup(label string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.grouping {
		return
	}

	l.grouping = true
	l.groupLabel = label
	l.groupOps = nil
}

// EndGroup closes the current group.
// All operations executed since BeginGroup are pushed as one sealed
// composite; an empty group leaves history untouched.
func (l *Ledger[S]) EndGroup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.grouping {
		return
	}

	l.grouping = false

	if len(l.groupOps) == 0 {
		l.groupOps = nil
		return
	}

	l.pushLocked(sealedComposite(l.groupLabel, l.groupOps))
	l.groupOps = nil
}

// CancelGroup abandons the current group without recording it.
// Note: operations already executed still affected the subject.
func (l *Ledger[S]) CancelGroup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.grouping = false
	l.groupOps = nil
}

// IsGrouping returns true if a group is currently open.
func (l *Ledger[S]) IsGrouping() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.grouping
}

// GroupScope provides a convenient way to group operations using defer.
// Usage:
//
//	func complexEdit(l *history.Ledger[*Doc], doc *Doc) {
//	    defer l.GroupScope("Complex Edit").End()
//	    // ... multiple edits ...
//	}
type GroupScope[S any] struct {
	ledger *Ledger[S]
	active bool
}

// GroupScope starts a new group scope.
// Call End() or use with defer to properly close the group.
func (l *Ledger[S]) GroupScope(label string) *GroupScope[S] {
	l.BeginGroup(label)
	return &GroupScope[S]{
		ledger: l,
		active: true,
	}
}

// End ends the group scope.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope[S]) End() {
	if g.active {
		g.ledger.EndGroup()
		g.active = false
	}
}

// Cancel cancels the group scope without recording a composite.
func (g *GroupScope[S]) Cancel() {
	if g.active {
		g.ledger.CancelGroup()
		g.active = false
	}
}

// Transaction executes fn within a grouped undo context.
// If fn returns an error the group is cancelled, otherwise it is
// closed normally.
func (l *Ledger[S]) Transaction(label string, fn func() error) error {
	l.BeginGroup(label)

	if err := fn(); err != nil {
		l.CancelGroup()
		return err
	}

	l.EndGroup()
	return nil
}
