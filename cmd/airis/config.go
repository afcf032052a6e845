package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agiletec/airis/internal/config"
	"github.com/spf13/viper"
)

// loadConfig reads the config file if it exists and falls back to defaults
// when it does not. An existing file is validated against the schema before
// being decoded.
func loadConfig() (config.Config, error) {
	path := viper.GetString("config")
	if path == "" {
		path = filepath.Join(".airis", "config.json")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config.Default(), nil
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return config.Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := config.ValidateSettings(raw); err != nil {
		return config.Config{}, err
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("json")
	if err := viper.ReadInConfig(); err != nil {
		return config.Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
