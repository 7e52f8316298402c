package history

import (
	"errors"
	"fmt"
)

// ErrSealed is returned when adding to a composite after its first
// Apply. A sealed composite may only be replayed, never extended.
var ErrSealed = errors.New("composite is sealed")

// Composite groups operations as one atomic undo unit.
// Children apply in forward index order and invert in reverse order,
// since later children may depend on earlier children's side effects.
type Composite[S any] struct {
	label    string
	children []Operation[S]
	applied  []bool // per-child: did Apply report Applied last run
	sealed   bool
}

// NewComposite creates an empty composite with the given label.
func NewComposite[S any](label string) *Composite[S] {
	return &Composite[S]{label: label}
}

// Add appends an operation to the composite.
// Returns ErrSealed once the composite has been applied.
func (c *Composite[S]) Add(op Operation[S]) error {
	if c.sealed {
		return ErrSealed
	}
	c.children = append(c.children, op)
	return nil
}

// Len returns the number of child operations.
func (c *Composite[S]) Len() int {
	return len(c.children)
}

// IsEmpty returns true if the composite has no children.
func (c *Composite[S]) IsEmpty() bool {
	return len(c.children) == 0
}

// Apply runs all children in order and seals the composite.
//
// A child reporting NoEffect is recorded as skipped so Invert will not
// touch it. If a child fails, children that already applied are
// inverted in reverse order, restoring the subject to its
// pre-composite state, and the child's error is returned.
func (c *Composite[S]) Apply(subject S) (Outcome, error) {
	c.sealed = true
	c.applied = make([]bool, len(c.children))

	any := false
	for i, op := range c.children {
		out, err := op.Apply(subject)
		if err != nil {
			// Best-effort rollback of the children that succeeded.
			for j := i - 1; j >= 0; j-- {
				if c.applied[j] {
					_ = c.children[j].Invert(subject)
				}
			}
			c.applied = nil
			return NoEffect, fmt.Errorf("composite %q step %d: %w", c.Label(), i, err)
		}
		if out == Applied {
			c.applied[i] = true
			any = true
		}
	}

	if !any {
		return NoEffect, nil
	}
	return Applied, nil
}

// Invert reverses all children that applied, in reverse order.
func (c *Composite[S]) Invert(subject S) error {
	for i := len(c.children) - 1; i >= 0; i-- {
		if i >= len(c.applied) || !c.applied[i] {
			continue
		}
		if err := c.children[i].Invert(subject); err != nil {
			return fmt.Errorf("invert composite %q step %d: %w", c.Label(), i, err)
		}
	}
	return nil
}

// Label returns the composite's label.
func (c *Composite[S]) Label() string {
	if c.label != "" {
		return c.label
	}
	if len(c.children) == 1 {
		return c.children[0].Label()
	}
	return fmt.Sprintf("%d operations", len(c.children))
}

// sealedComposite builds a composite from operations that were already
// applied individually. Used when a group closes: each buffered
// operation holds its own captured pre-state, so the composite starts
// sealed with every child marked applied.
func sealedComposite[S any](label string, ops []Operation[S]) *Composite[S] {
	applied := make([]bool, len(ops))
	for i := range applied {
		applied[i] = true
	}
	return &Composite[S]{
		label:    label,
		children: ops,
		applied:  applied,
		sealed:   true,
	}
}
