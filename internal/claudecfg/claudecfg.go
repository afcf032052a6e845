// Package claudecfg patches Claude Code settings so the airis plugin is
// installed and enabled automatically.
package claudecfg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
)

// Defaults for the agiletec marketplace entry.
const (
	DefaultMarketplaceName = "agiletec"
	DefaultRepo            = "agiletec-inc/airis-agent"
	DefaultPluginName      = "airis-agent"
)

// DefaultSettingsPath returns ~/.claude/settings.json.
func DefaultSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// Options selects the settings file and plugin identity to ensure.
// Zero-value fields fall back to the agiletec defaults; SettingsPath is
// required.
type Options struct {
	SettingsPath    string
	MarketplaceName string
	Repo            string
	PluginName      string
}

func (o *Options) fillDefaults() {
	if o.MarketplaceName == "" {
		o.MarketplaceName = DefaultMarketplaceName
	}
	if o.Repo == "" {
		o.Repo = DefaultRepo
	}
	if o.PluginName == "" {
		o.PluginName = DefaultPluginName
	}
}

// EnsurePlugin rewrites the settings file so that the marketplace is known
// and the plugin is in the enabled list. It reports whether anything
// changed; the file is written either way so a missing file is always
// created.
func EnsurePlugin(opts Options) (bool, string, error) {
	opts.fillDefaults()
	if opts.SettingsPath == "" {
		return false, "", fmt.Errorf("settings path is required")
	}

	settings, err := loadSettings(opts.SettingsPath)
	if err != nil {
		return false, "", err
	}
	changed := false

	marketplaces, ok := settings["extraKnownMarketplaces"].(map[string]any)
	if !ok {
		marketplaces = map[string]any{}
		settings["extraKnownMarketplaces"] = marketplaces
	}
	expected := map[string]any{
		"source": map[string]any{"source": "github", "repo": opts.Repo},
	}
	if !reflect.DeepEqual(marketplaces[opts.MarketplaceName], expected) {
		marketplaces[opts.MarketplaceName] = expected
		changed = true
	}

	rawEnabled, present := settings["enabledPlugins"]
	if !present {
		rawEnabled = []any{}
	}
	enabled, ok := rawEnabled.([]any)
	if !ok {
		return false, "", fmt.Errorf("enabledPlugins must be a list in %s", opts.SettingsPath)
	}
	pluginID := fmt.Sprintf("%s@%s", opts.PluginName, opts.MarketplaceName)
	if !containsString(enabled, pluginID) {
		enabled = append(enabled, pluginID)
		changed = true
	}
	settings["enabledPlugins"] = enabled

	if err := writeSettings(opts.SettingsPath, settings); err != nil {
		return false, "", err
	}

	if changed {
		msg := fmt.Sprintf("Updated %s with marketplace '%s' and plugin '%s'.",
			opts.SettingsPath, opts.MarketplaceName, pluginID)
		return true, msg, nil
	}
	msg := fmt.Sprintf("No changes needed; '%s' already configured in %s.",
		pluginID, opts.SettingsPath)
	return false, msg, nil
}

// PluginConfigured reports whether the plugin is already enabled in the
// settings file without modifying it. A missing file reads as not
// configured.
func PluginConfigured(opts Options) (bool, error) {
	opts.fillDefaults()
	if opts.SettingsPath == "" {
		return false, fmt.Errorf("settings path is required")
	}
	settings, err := loadSettings(opts.SettingsPath)
	if err != nil {
		return false, err
	}
	enabled, _ := settings["enabledPlugins"].([]any)
	pluginID := fmt.Sprintf("%s@%s", opts.PluginName, opts.MarketplaceName)
	return containsString(enabled, pluginID), nil
}

func loadSettings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}
	var settings map[string]any
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if settings == nil {
		settings = map[string]any{}
	}
	return settings, nil
}

func writeSettings(path string, settings map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func containsString(items []any, want string) bool {
	for _, item := range items {
		if s, ok := item.(string); ok && s == want {
			return true
		}
	}
	return false
}
