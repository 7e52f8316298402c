package reverso

import "log/slog"

// Default configuration values.
const (
	DefaultMaxUndoEntries = 1000
)

// settings holds engine configuration gathered from options before the
// generic engine is constructed.
type settings struct {
	maxUndoEntries      int
	compressCheckpoints bool
	checkpointKeep      int
	logger              *slog.Logger
}

func defaultSettings() settings {
	return settings{
		maxUndoEntries: DefaultMaxUndoEntries,
	}
}

// Option configures an Engine during creation.
type Option func(*settings)

// WithMaxUndoEntries sets the maximum number of undo history entries.
// When exceeded, the oldest entries are evicted.
func WithMaxUndoEntries(max int) Option {
	return func(s *settings) {
		if max > 0 {
			s.maxUndoEntries = max
		}
	}
}

// WithCheckpointCompression stores checkpoint blobs zstd-compressed.
func WithCheckpointCompression() Option {
	return func(s *settings) {
		s.compressCheckpoints = true
	}
}

// WithCheckpointKeep caps the number of retained checkpoints.
// After each save, only the keep most recent checkpoints survive.
// Zero means unlimited.
func WithCheckpointKeep(keep int) Option {
	return func(s *settings) {
		if keep > 0 {
			s.checkpointKeep = keep
		}
	}
}

// WithLogger sets the logger used for engine diagnostics.
// The engine logs at debug level only.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConfig applies a loaded Config as a batch of options.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		if cfg.MaxUndoEntries > 0 {
			s.maxUndoEntries = cfg.MaxUndoEntries
		}
		if cfg.CompressCheckpoints {
			s.compressCheckpoints = true
		}
		if cfg.CheckpointKeep > 0 {
			s.checkpointKeep = cfg.CheckpointKeep
		}
	}
}
