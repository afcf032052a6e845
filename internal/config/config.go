// Package config provides configuration loading and management for airis.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration.
type Config struct {
	LearningDB string      `json:"learning_db,omitempty" mapstructure:"learning_db"`
	Mindbase   bool        `json:"mindbase,omitempty"    mapstructure:"mindbase"`
	Suite      SuiteConfig `json:"suite,omitempty"       mapstructure:"suite"`
}

// SuiteConfig controls where and how the Airis Suite repositories are
// installed.
type SuiteConfig struct {
	BaseDir  string `json:"base_dir,omitempty" mapstructure:"base_dir"`
	Protocol string `json:"protocol,omitempty" mapstructure:"protocol"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		LearningDB: filepath.Join(".airis", "learning.db"),
		Mindbase:   false,
		Suite: SuiteConfig{
			BaseDir:  filepath.Join("~", "github"),
			Protocol: "ssh",
		},
	}
}

// Normalize fills in defaults for unset fields and rejects invalid values.
func (c *Config) Normalize() error {
	def := Default()
	if c.LearningDB == "" {
		c.LearningDB = def.LearningDB
	}
	if c.Suite.BaseDir == "" {
		c.Suite.BaseDir = def.Suite.BaseDir
	}
	if c.Suite.Protocol == "" {
		c.Suite.Protocol = def.Suite.Protocol
	}
	if c.Suite.Protocol != "ssh" && c.Suite.Protocol != "https" {
		return fmt.Errorf("suite.protocol must be 'ssh' or 'https', got %q", c.Suite.Protocol)
	}
	return nil
}

// ExpandHome resolves a leading ~ in path against the current user's home
// directory. Paths without a ~ prefix are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !hasHomePrefix(path) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

func hasHomePrefix(path string) bool {
	return len(path) >= 2 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator)
}
