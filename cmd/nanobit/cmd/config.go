package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/nanobit/format"
)

// Config holds CLI defaults. Command-line flags override every field.
//
// Example file:
//
//	compression:
//	  format: zstd
//	  level: best
//	output_dir: ./out
//	jobs: 8
type Config struct {
	Compression CompressionConfig `yaml:"compression"`
	OutputDir   string            `yaml:"output_dir"`
	Jobs        int               `yaml:"jobs"`
}

// CompressionConfig selects the default compression settings.
type CompressionConfig struct {
	Format format.CompressionFormat `yaml:"format"`
	Level  format.CompressionLevel  `yaml:"level"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	return Config{
		Compression: CompressionConfig{
			Format: format.DefaultCompression,
			Level:  format.LevelDefault,
		},
		Jobs: 4,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that the config selects a usable backend.
func (c Config) Validate() error {
	if !c.Compression.Format.Valid() || c.Compression.Format == format.CompressionCustom {
		return fmt.Errorf("unsupported compression format %s", c.Compression.Format)
	}
	if !c.Compression.Level.Valid() {
		return fmt.Errorf("unsupported compression level %s", c.Compression.Level)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}

	return nil
}
