package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Error policies for per-record failures.
const (
	OnErrorFail = "fail" // abort the run on the first bad record
	OnErrorSkip = "skip" // log the bad record and continue
)

// Config represents a conversion run's configuration.
type Config struct {
	BlockSize  int    `yaml:"block_size"`  // records batched per container block
	OnError    string `yaml:"on_error"`    // "fail" or "skip"
	BufferSize int    `yaml:"buffer_size"` // output write buffer in bytes
	Fsync      bool   `yaml:"fsync"`       // fsync the container before close
}

// DefaultConfig returns a default configuration: one record per block,
// fail-fast on the first bad record.
func DefaultConfig() *Config {
	return &Config{
		BlockSize:  1,
		OnError:    OnErrorFail,
		BufferSize: 64 * 1024,
		Fsync:      false,
	}
}

// LoadConfig loads configuration from the specified path.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.BlockSize < 1 {
		return fmt.Errorf("block_size must be at least 1, got %d", c.BlockSize)
	}
	if c.OnError != OnErrorFail && c.OnError != OnErrorSkip {
		return fmt.Errorf("on_error must be %q or %q, got %q", OnErrorFail, OnErrorSkip, c.OnError)
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("buffer_size must not be negative, got %d", c.BufferSize)
	}
	return nil
}

// SaveConfig saves the configuration to the specified path.
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
