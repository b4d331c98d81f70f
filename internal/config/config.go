// Package config handles generation profiles for fuzzpayload.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/acolita/fuzzpayload/internal/adapters/realfs"
	"github.com/acolita/fuzzpayload/internal/payload"
	"github.com/acolita/fuzzpayload/internal/ports"
)

// Output formats understood by structgen.
const (
	FormatHex    = "hex"
	FormatRaw    = "raw"
	FormatGroups = "groups"
)

// Config represents a generation profile.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Logging   LoggingConfig   `yaml:"logging"`
	Output    OutputConfig    `yaml:"output"`
}

// GeneratorConfig defines the payload generator settings.
type GeneratorConfig struct {
	Count     int    `yaml:"count"`
	MinLength int    `yaml:"min_length"`
	MaxLength int    `yaml:"max_length"`
	Step      int    `yaml:"step"`
	Seed      uint64 `yaml:"seed"` // 0 means unseeded
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`   // "debug", "info", "warn", "error"
	Preview int    `yaml:"preview"` // bytes of a payload shown in log output
}

// OutputConfig defines how payloads are written.
type OutputConfig struct {
	Format string `yaml:"format"` // "hex", "raw" or "groups"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	def := payload.DefaultConfig()
	return &Config{
		Generator: GeneratorConfig{
			Count:     def.Count,
			MinLength: def.MinLength,
			MaxLength: def.MaxLength,
			Step:      def.Step,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Preview: 16,
		},
		Output: OutputConfig{
			Format: FormatHex,
		},
	}
}

// Payload converts the generator section into payload settings.
func (g GeneratorConfig) Payload() payload.Config {
	return payload.Config{
		Count:     g.Count,
		MinLength: g.MinLength,
		MaxLength: g.MaxLength,
		Step:      g.Step,
	}
}

// Load loads configuration from a YAML file on top of the defaults.
// An optional FileSystem can be passed for testing; if omitted, the real OS is used.
func Load(path string, fsys ...ports.FileSystem) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	var files ports.FileSystem = realfs.New()
	if len(fsys) > 0 && fsys[0] != nil {
		files = fsys[0]
	}

	info, err := files.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}

	data, err := files.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Editors and os.WriteFile truncate first; a watcher can observe that.
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("config file %s is empty", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration and fills in soft defaults.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Generator.Payload().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("generator: %w", err))
	}

	c.Output.Format = strings.ToLower(c.Output.Format)
	switch c.Output.Format {
	case "":
		c.Output.Format = FormatHex
	case FormatHex, FormatRaw, FormatGroups:
	default:
		errs = append(errs, fmt.Errorf("output: unknown format %q", c.Output.Format))
	}

	if c.Logging.Preview < 0 {
		c.Logging.Preview = 0
	}

	return errors.Join(errs...)
}

// Save writes the configuration to a YAML file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
