package reverso

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the TOML-loadable engine configuration.
// Hosts typically load it once at startup and pass it via WithConfig.
type Config struct {
	// MaxUndoEntries caps the undo stack. Zero keeps the default.
	MaxUndoEntries int `toml:"max_undo_entries"`

	// CompressCheckpoints stores checkpoint blobs zstd-compressed.
	CompressCheckpoints bool `toml:"compress_checkpoints"`

	// CheckpointKeep caps retained checkpoints. Zero means unlimited.
	CheckpointKeep int `toml:"checkpoint_keep"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		MaxUndoEntries: DefaultMaxUndoEntries,
	}
}

// LoadConfig reads configuration from a TOML file.
// A missing file is not an error; defaults are returned.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	return parseConfig(path, data)
}

// LoadConfigFrom reads configuration from an io.Reader.
func LoadConfigFrom(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	return parseConfig("<reader>", data)
}

func parseConfig(source string, data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", source, err)
	}

	if cfg.MaxUndoEntries < 0 {
		return Config{}, fmt.Errorf("config %s: max_undo_entries must not be negative", source)
	}
	if cfg.CheckpointKeep < 0 {
		return Config{}, fmt.Errorf("config %s: checkpoint_keep must not be negative", source)
	}
	return cfg, nil
}
