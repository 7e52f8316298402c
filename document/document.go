package document

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Document is a mutable plain-text document addressed by rune offset.
// It is not internally synchronized; drive it through one engine at a
// time.
type Document struct {
	content  []rune
	revision uint64
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// NewFromString creates a document with initial content.
func NewFromString(s string) *Document {
	return &Document{content: []rune(s)}
}

// Text returns the full document content.
func (d *Document) Text() string {
	return string(d.content)
}

// Len returns the document length in runes.
func (d *Document) Len() int {
	return len(d.content)
}

// IsEmpty returns true if the document has no content.
func (d *Document) IsEmpty() bool {
	return len(d.content) == 0
}

// Revision returns a counter that increases with every mutation,
// including state restores.
func (d *Document) Revision() uint64 {
	return d.revision
}

// Slice returns the text in the rune range [start, end).
// Out-of-range requests return the empty string.
func (d *Document) Slice(start, end int) string {
	if start < 0 || end > len(d.content) || start > end {
		return ""
	}
	return string(d.content[start:end])
}

// insert places text at rune offset at. Offsets are assumed valid;
// operations validate before calling.
func (d *Document) insert(at int, text string) {
	runes := []rune(text)
	d.content = append(d.content[:at], append(runes, d.content[at:]...)...)
	d.revision++
}

// remove deletes the rune range [at, at+count).
func (d *Document) remove(at, count int) {
	d.content = append(d.content[:at], d.content[at+count:]...)
	d.revision++
}

// docState is the wire form of a document state blob.
type docState struct {
	Content  string `msgpack:"content"`
	Revision uint64 `msgpack:"revision"`
}

// CaptureState returns a deep, self-contained copy of the document's
// observable state.
func (d *Document) CaptureState() ([]byte, error) {
	state, err := msgpack.Marshal(docState{
		Content:  string(d.content),
		Revision: d.revision,
	})
	if err != nil {
		return nil, fmt.Errorf("capture document state: %w", err)
	}
	return state, nil
}

// RestoreState replaces the document's entire content with the given
// blob's. The revision still advances past its current value so stale
// revision observations never repeat.
func (d *Document) RestoreState(state []byte) error {
	var st docState
	if err := msgpack.Unmarshal(state, &st); err != nil {
		return fmt.Errorf("restore document state: %w", err)
	}

	d.content = []rune(st.Content)
	if st.Revision > d.revision {
		d.revision = st.Revision
	}
	d.revision++
	return nil
}
