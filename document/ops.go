package document

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/reverso/history"
)

// Insert inserts text at a rune offset.
type Insert struct {
	At   int
	Text string
}

// Apply inserts the text. Empty text or an offset outside the
// document is a no-op.
func (op *Insert) Apply(d *Document) (history.Outcome, error) {
	if len(op.Text) == 0 {
		return history.NoEffect, nil
	}
	if op.At < 0 || op.At > d.Len() {
		return history.NoEffect, nil
	}

	d.insert(op.At, op.Text)
	return history.Applied, nil
}

// Invert removes the inserted text.
func (op *Insert) Invert(d *Document) error {
	d.remove(op.At, utf8.RuneCountInString(op.Text))
	return nil
}

// Label returns a human-readable description.
func (op *Insert) Label() string {
	n := utf8.RuneCountInString(op.Text)
	if n == 1 {
		if op.Text == "\n" {
			return "Insert newline"
		}
		if op.Text == "\t" {
			return "Insert tab"
		}
		return fmt.Sprintf("Type '%s'", op.Text)
	}
	if n <= 20 {
		return fmt.Sprintf("Insert %q", op.Text)
	}
	return fmt.Sprintf("Insert %d characters", n)
}

// Delete removes Count runes starting at a rune offset.
type Delete struct {
	At    int
	Count int

	// cut is the removed text, captured by Apply for Invert.
	cut string
}

// Apply removes the range. A range that does not fit inside the
// document is a no-op rather than a partial deletion.
func (op *Delete) Apply(d *Document) (history.Outcome, error) {
	if op.Count <= 0 {
		return history.NoEffect, nil
	}
	if op.At < 0 || op.At+op.Count > d.Len() {
		return history.NoEffect, nil
	}

	op.cut = d.Slice(op.At, op.At+op.Count)
	d.remove(op.At, op.Count)
	return history.Applied, nil
}

// Invert restores the removed text.
func (op *Delete) Invert(d *Document) error {
	d.insert(op.At, op.cut)
	return nil
}

// Label returns a human-readable description.
func (op *Delete) Label() string {
	if op.Count == 1 {
		return "Delete"
	}
	return fmt.Sprintf("Delete %d characters", op.Count)
}

// Replace swaps Count runes at a rune offset for new text.
type Replace struct {
	At    int
	Count int
	Text  string

	// prev is the replaced text, captured by Apply for Invert.
	prev string
}

// Apply performs the replacement. An ill-fitting range, or a
// replacement that would not change the text, is a no-op.
func (op *Replace) Apply(d *Document) (history.Outcome, error) {
	if op.At < 0 || op.Count < 0 || op.At+op.Count > d.Len() {
		return history.NoEffect, nil
	}

	prev := d.Slice(op.At, op.At+op.Count)
	if prev == op.Text {
		return history.NoEffect, nil
	}

	op.prev = prev
	if op.Count > 0 {
		d.remove(op.At, op.Count)
	}
	if len(op.Text) > 0 {
		d.insert(op.At, op.Text)
	}
	return history.Applied, nil
}

// Invert restores the original text.
func (op *Replace) Invert(d *Document) error {
	if n := utf8.RuneCountInString(op.Text); n > 0 {
		d.remove(op.At, n)
	}
	if len(op.prev) > 0 {
		d.insert(op.At, op.prev)
	}
	return nil
}

// Label returns a human-readable description.
func (op *Replace) Label() string {
	newLen := utf8.RuneCountInString(op.Text)
	if op.Count == 0 {
		return fmt.Sprintf("Insert %d characters", newLen)
	}
	if newLen == 0 {
		return fmt.Sprintf("Delete %d characters", op.Count)
	}
	return fmt.Sprintf("Replace %d with %d characters", op.Count, newLen)
}
