package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"gubed/internal/scan"
)

// FileName is the name of the project and global config files.
const FileName = ".gubed.yml"

// PatternConfig is a user defined breakpoint rule.
type PatternConfig struct {
	Kind  string `yaml:"kind"`
	Regex string `yaml:"regex"`
}

// Config represents the user's configuration
type Config struct {
	SkipDirs      []string        `yaml:"skip_dirs"`
	Extensions    []string        `yaml:"extensions"`
	ShebangMarker string          `yaml:"shebang_marker"`
	Patterns      []PatternConfig `yaml:"patterns"`     // Appended after the built-in rules
	ConfirmQuit   bool            `yaml:"confirm_quit"` // Require q twice to exit
	Watch         bool            `yaml:"watch"`        // Rescan when files change
	Debounce      time.Duration   `yaml:"debounce"`     // Quiet period before a watch rescan
	Addr          string          `yaml:"addr"`         // Listen address for web mode
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	sc := scan.DefaultConfig()
	return &Config{
		SkipDirs:      sc.SkipDirs,
		Extensions:    sc.Extensions,
		ShebangMarker: sc.ShebangMarker,
		ConfirmQuit:   true,
		Debounce:      300 * time.Millisecond,
		Addr:          "localhost:8080",
	}
}

// globalConfigPath returns the global config file path (~/.gubed.yml)
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, FileName), nil
}

// Load reads the config for root, checking the project config first, then
// the global one. Missing files yield the defaults.
func Load(root string) (*Config, error) {
	if info, err := os.Stat(root); err == nil && info.IsDir() {
		cfg, err := loadFile(filepath.Join(root, FileName))
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	globalPath, err := globalConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	cfg, err := loadFile(globalPath)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// loadFile decodes path over the defaults so omitted keys keep their values.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Extensions) == 0 && c.ShebangMarker == "" {
		return fmt.Errorf("extensions and shebang_marker must not both be empty")
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative, got %s", c.Debounce)
	}
	if _, err := c.patterns(); err != nil {
		return err
	}
	return nil
}

func (c *Config) patterns() (scan.PatternSet, error) {
	patterns := scan.DefaultPatterns()
	for _, p := range c.Patterns {
		rule, err := scan.NewRule(p.Kind, p.Regex)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, rule)
	}
	return patterns, nil
}

// Scan converts the configuration into scanner settings.
func (c *Config) Scan() (scan.Config, error) {
	patterns, err := c.patterns()
	if err != nil {
		return scan.Config{}, err
	}
	return scan.Config{
		SkipDirs:      c.SkipDirs,
		Extensions:    c.Extensions,
		ShebangMarker: c.ShebangMarker,
		Patterns:      patterns,
	}, nil
}
