package reverso

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFromReader(t *testing.T) {
	input := `
max_undo_entries = 250
compress_checkpoints = true
checkpoint_keep = 10
`
	cfg, err := LoadConfigFrom(strings.NewReader(input))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.MaxUndoEntries != 250 {
		t.Errorf("max_undo_entries = %d, want 250", cfg.MaxUndoEntries)
	}
	if !cfg.CompressCheckpoints {
		t.Error("compress_checkpoints not set")
	}
	if cfg.CheckpointKeep != 10 {
		t.Errorf("checkpoint_keep = %d, want 10", cfg.CheckpointKeep)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	cfg, err := LoadConfigFrom(strings.NewReader(`checkpoint_keep = 3`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxUndoEntries != DefaultMaxUndoEntries {
		t.Errorf("max_undo_entries = %d, want default", cfg.MaxUndoEntries)
	}
	if cfg.CheckpointKeep != 3 {
		t.Errorf("checkpoint_keep = %d, want 3", cfg.CheckpointKeep)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad toml", `max_undo_entries = [`},
		{"negative undo entries", `max_undo_entries = -1`},
		{"negative keep", `checkpoint_keep = -5`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfigFrom(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWithConfigOption(t *testing.T) {
	s := defaultSettings()
	WithConfig(Config{
		MaxUndoEntries:      42,
		CompressCheckpoints: true,
		CheckpointKeep:      7,
	})(&s)

	if s.maxUndoEntries != 42 {
		t.Errorf("maxUndoEntries = %d, want 42", s.maxUndoEntries)
	}
	if !s.compressCheckpoints {
		t.Error("compressCheckpoints not set")
	}
	if s.checkpointKeep != 7 {
		t.Errorf("checkpointKeep = %d, want 7", s.checkpointKeep)
	}
}
