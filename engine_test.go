package reverso

import (
	"errors"
	"testing"

	"github.com/dshills/reverso/document"
	"github.com/dshills/reverso/history"
)

func newDocEngine(t *testing.T, content string, opts ...Option) (*Engine[*document.Document], *document.Document) {
	t.Helper()
	doc := document.NewFromString(content)
	return New(doc, opts...), doc
}

func mustExecute(t *testing.T, eng *Engine[*document.Document], op history.Operation[*document.Document]) {
	t.Helper()
	out, err := eng.Execute(op)
	if err != nil {
		t.Fatalf("execute %s: %v", op.Label(), err)
	}
	if out != Applied {
		t.Fatalf("execute %s: outcome = %v, want Applied", op.Label(), out)
	}
}

func TestFullUndoRestoresInitialState(t *testing.T) {
	eng, doc := newDocEngine(t, "base")

	ops := []history.Operation[*document.Document]{
		&document.Insert{At: 4, Text: "line"},
		&document.Delete{At: 0, Count: 2},
		&document.Replace{At: 0, Count: 2, Text: "Home"},
		&document.Insert{At: 0, Text: ">> "},
	}
	for _, op := range ops {
		mustExecute(t, eng, op)
	}

	for range ops {
		if _, err := eng.Undo(); err != nil {
			t.Fatalf("undo: %v", err)
		}
	}

	if doc.Text() != "base" {
		t.Errorf("text = %q, want base", doc.Text())
	}
	if eng.CanUndo() {
		t.Error("undo still available after full rewind")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	eng, doc := newDocEngine(t, "")

	mustExecute(t, eng, &document.Insert{At: 0, Text: "alpha"})
	mustExecute(t, eng, &document.Insert{At: 5, Text: " beta"})
	before := doc.Text()

	if _, err := eng.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if _, err := eng.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if doc.Text() != before {
		t.Errorf("text = %q, want %q", doc.Text(), before)
	}
}

func TestExecuteDiscardsRedoBranch(t *testing.T) {
	eng, _ := newDocEngine(t, "")

	mustExecute(t, eng, &document.Insert{At: 0, Text: "a"})
	mustExecute(t, eng, &document.Insert{At: 1, Text: "b"})
	if _, err := eng.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}

	mustExecute(t, eng, &document.Insert{At: 1, Text: "c"})

	if eng.CanRedo() {
		t.Error("redo branch survived a new execute")
	}
	if _, err := eng.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("redo err = %v, want ErrNothingToRedo", err)
	}
}

func TestCompositeUndoesAtomically(t *testing.T) {
	eng, doc := newDocEngine(t, "one two three")

	comp := history.NewComposite[*document.Document]("uppercase words")
	for _, op := range []history.Operation[*document.Document]{
		&document.Replace{At: 0, Count: 3, Text: "ONE"},
		&document.Replace{At: 4, Count: 3, Text: "TWO"},
		&document.Replace{At: 8, Count: 5, Text: "THREE"},
	} {
		if err := comp.Add(op); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	out, err := eng.ExecuteComposite(comp)
	if err != nil {
		t.Fatalf("execute composite: %v", err)
	}
	if out != Applied {
		t.Fatalf("outcome = %v, want Applied", out)
	}
	if doc.Text() != "ONE TWO THREE" {
		t.Fatalf("text = %q", doc.Text())
	}

	if _, err := eng.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if doc.Text() != "one two three" {
		t.Errorf("text = %q, want pre-composite state exactly", doc.Text())
	}
}

func TestExecuteEmptyComposite(t *testing.T) {
	eng, _ := newDocEngine(t, "")

	out, err := eng.ExecuteComposite(history.NewComposite[*document.Document]("empty"))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != NoEffect {
		t.Errorf("outcome = %v, want NoEffect", out)
	}
	if eng.UndoCount() != 0 {
		t.Errorf("undo count = %d, want 0", eng.UndoCount())
	}
}

func TestCheckpointSaveRestore(t *testing.T) {
	eng, doc := newDocEngine(t, "checkpointed")

	if _, err := eng.Checkpoint("A"); err != nil {
		t.Fatalf("checkpoint: %v", err)
	}

	mustExecute(t, eng, &document.Insert{At: 0, Text: "junk "})
	mustExecute(t, eng, &document.Delete{At: 5, Count: 5})

	if err := eng.RestoreCheckpoint("A"); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if doc.Text() != "checkpointed" {
		t.Errorf("text = %q, want checkpointed", doc.Text())
	}

	// Restore is a hard timeline reset.
	if _, err := eng.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("undo err = %v, want ErrNothingToUndo", err)
	}
	if eng.CanRedo() {
		t.Error("redo available after restore")
	}
}

func TestRestoreUnknownCheckpoint(t *testing.T) {
	eng, _ := newDocEngine(t, "")

	if err := eng.RestoreCheckpoint("missing"); !errors.Is(err, ErrCheckpointNotFound) {
		t.Errorf("err = %v, want ErrCheckpointNotFound", err)
	}
}

func TestEditorScenario(t *testing.T) {
	eng, doc := newDocEngine(t, "")

	check := func(want string) {
		t.Helper()
		if doc.Text() != want {
			t.Fatalf("content = %q, want %q", doc.Text(), want)
		}
	}

	mustExecute(t, eng, &document.Insert{At: 0, Text: "Hello"})
	check("Hello")

	mustExecute(t, eng, &document.Insert{At: 5, Text: ", world"})
	check("Hello, world")

	if _, err := eng.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	check("Hello")

	if _, err := eng.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	check("")

	if _, err := eng.Redo(); err != nil {
		t.Fatalf("redo: %v", err)
	}
	check("Hello")

	mustExecute(t, eng, &document.Insert{At: 5, Text: "!"})
	check("Hello!")

	// The ", world" branch was discarded by the new execute.
	if _, err := eng.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("redo err = %v, want ErrNothingToRedo", err)
	}
}

func TestNoEffectOperationNotRecorded(t *testing.T) {
	eng, _ := newDocEngine(t, "abc")

	out, err := eng.Execute(&document.Delete{At: 1, Count: 99})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != NoEffect {
		t.Errorf("outcome = %v, want NoEffect", out)
	}
	if eng.UndoCount() != 0 {
		t.Errorf("undo count = %d, want 0", eng.UndoCount())
	}
}

func TestEngineGrouping(t *testing.T) {
	eng, doc := newDocEngine(t, "")

	err := eng.Transaction("greet", func() error {
		mustExecute(t, eng, &document.Insert{At: 0, Text: "Hello"})
		mustExecute(t, eng, &document.Insert{At: 5, Text: ", world"})
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}

	if eng.UndoCount() != 1 {
		t.Fatalf("undo count = %d, want 1", eng.UndoCount())
	}
	if _, err := eng.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if doc.Text() != "" {
		t.Errorf("text = %q, want empty", doc.Text())
	}
}

func TestPeeksAndHistoryListings(t *testing.T) {
	eng, _ := newDocEngine(t, "")

	mustExecute(t, eng, &document.Insert{At: 0, Text: "hello"})

	info, ok := eng.PeekUndo()
	if !ok || info.Label != `Insert "hello"` {
		t.Errorf("peek undo = %q, %v", info.Label, ok)
	}

	if _, err := eng.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	info, ok = eng.PeekRedo()
	if !ok || info.Label != `Insert "hello"` {
		t.Errorf("peek redo = %q, %v", info.Label, ok)
	}

	if n := len(eng.RedoHistory()); n != 1 {
		t.Errorf("redo history = %d entries, want 1", n)
	}
	if n := len(eng.UndoHistory()); n != 0 {
		t.Errorf("undo history = %d entries, want 0", n)
	}
}

func TestCheckpointListingAndDelete(t *testing.T) {
	eng, _ := newDocEngine(t, "content")

	for _, name := range []string{"one", "two", "three"} {
		if _, err := eng.Checkpoint(name); err != nil {
			t.Fatalf("checkpoint %s: %v", name, err)
		}
	}

	if eng.CheckpointCount() != 3 {
		t.Errorf("count = %d, want 3", eng.CheckpointCount())
	}

	seen := make(map[string]bool)
	for name := range eng.CheckpointNames() {
		seen[name] = true
	}
	if len(seen) != 3 || !seen["one"] || !seen["two"] || !seen["three"] {
		t.Errorf("names = %v", seen)
	}

	infos := eng.Checkpoints()
	if len(infos) != 3 || infos[0].Name != "one" {
		t.Errorf("list = %+v, want oldest first", infos)
	}

	if err := eng.DeleteCheckpoint("two"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := eng.DeleteCheckpoint("two"); !errors.Is(err, ErrCheckpointNotFound) {
		t.Errorf("second delete err = %v, want ErrCheckpointNotFound", err)
	}
}

func TestCheckpointKeepOption(t *testing.T) {
	eng, _ := newDocEngine(t, "content", WithCheckpointKeep(2))

	for _, name := range []string{"a", "b", "c", "d"} {
		if _, err := eng.Checkpoint(name); err != nil {
			t.Fatalf("checkpoint %s: %v", name, err)
		}
	}

	if eng.CheckpointCount() != 2 {
		t.Errorf("count = %d, want 2", eng.CheckpointCount())
	}
	if _, ok := eng.GetCheckpoint("d"); !ok {
		t.Error("most recent checkpoint pruned")
	}
	if _, ok := eng.GetCheckpoint("a"); ok {
		t.Error("oldest checkpoint retained past the cap")
	}
}

func TestCheckpointCompressionOption(t *testing.T) {
	eng, doc := newDocEngine(t, "", WithCheckpointCompression())

	mustExecute(t, eng, &document.Insert{At: 0, Text: "compressible compressible compressible"})
	if _, err := eng.Checkpoint("A"); err != nil {
		t.Fatalf("checkpoint: %v", err)
	}

	mustExecute(t, eng, &document.Delete{At: 0, Count: doc.Len()})
	if err := eng.RestoreCheckpoint("A"); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if doc.Text() != "compressible compressible compressible" {
		t.Errorf("text = %q", doc.Text())
	}
}

func TestMaxUndoEntriesOption(t *testing.T) {
	eng, _ := newDocEngine(t, "", WithMaxUndoEntries(2))

	for i := 0; i < 5; i++ {
		mustExecute(t, eng, &document.Insert{At: 0, Text: "x"})
	}

	if eng.UndoCount() != 2 {
		t.Errorf("undo count = %d, want 2", eng.UndoCount())
	}
}

func TestSubjectAccessor(t *testing.T) {
	eng, doc := newDocEngine(t, "who")
	if eng.Subject() != doc {
		t.Error("subject accessor returned a different document")
	}
}
