package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no configuration path is given. It may be absent.
const DefaultFile = "target-expander.yaml"

const (
	defaultMaxExpansion  = 1 << 20
	defaultFormat        = "plain"
	defaultSegmentLength = 255
)

// Config holds the application configuration loaded from a YAML file.
type Config struct {
	// MaxExpansion caps the number of addresses a single CIDR may expand to.
	// Zero selects the default, a negative value disables the cap.
	MaxExpansion int `yaml:"maxExpansion"`
	// Format is the output mode: plain, segments or ptr.
	Format string `yaml:"format"`
	// SegmentLength is the longest comma joined line written in segments mode.
	SegmentLength int `yaml:"segmentLength"`
	// Unique drops repeated targets.
	Unique bool `yaml:"unique"`
	// Sort orders targets numerically (implies Unique).
	Sort bool `yaml:"sort"`
	// Expressions are expanded before the ones given on the command line.
	Expressions []string `yaml:"expressions"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig reads and unmarshals the configuration from the specified YAML file path.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w", filePath, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOptional behaves like LoadConfig but returns the defaults when the file
// does not exist.
func LoadOptional(filePath string) (*Config, bool, error) {
	cfg, err := LoadConfig(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// Limit converts MaxExpansion into the parser's convention, where zero means
// unlimited.
func (c *Config) Limit() int {
	if c.MaxExpansion < 0 {
		return 0
	}
	return c.MaxExpansion
}

func (c *Config) applyDefaults() {
	if c.MaxExpansion == 0 {
		c.MaxExpansion = defaultMaxExpansion
	}
	if c.Format == "" {
		c.Format = defaultFormat
	}
	if c.SegmentLength <= 0 {
		c.SegmentLength = defaultSegmentLength
	}
	if c.Sort {
		c.Unique = true
	}
}
