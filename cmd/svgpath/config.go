package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"honnef.co/go/svgpath"
)

// Config holds the settings that can be kept in a YAML file instead of being
// passed as flags every time. Flags given on the command line take precedence.
type Config struct {
	// Format is the output format, "text" or "yaml".
	Format string `yaml:"format"`
	// Samples is the number of points printed by the sample command.
	Samples int                `yaml:"samples"`
	SVG     svgpath.SVGOptions `yaml:"svg"`
}

func defaultConfig() Config {
	return Config{
		Format:  "text",
		Samples: 10,
	}
}

// Prevent DoS from excessively large config files
const maxConfigSize = 1024 * 1024

// loadConfig reads the config file at path on top of the defaults. An empty
// path returns the defaults.
func loadConfig(path string, logger *slog.Logger) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config %s: file too large (%d bytes)", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	logger.Debug("loaded config", "path", path, "size", info.Size())
	return cfg, nil
}

func (cfg Config) validate() error {
	switch cfg.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}
	if cfg.Samples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", cfg.Samples)
	}
	if cfg.SVG.MaxPrecision < 0 {
		return fmt.Errorf("negative precision %d", cfg.SVG.MaxPrecision)
	}
	return nil
}
