// Package config handles loading and saving lintview configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/lintview/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// UIConfig holds view preference settings.
type UIConfig struct {
	// ExpandDepth is how many tree levels the default expansion policy
	// reveals after each rebuild. Minimum 2 so file and problem levels
	// show.
	ExpandDepth int `yaml:"expand_depth,omitempty"`
	// ScrollToSource enables double-click navigation to the source
	// location. Selection-driven navigation is always on.
	ScrollToSource bool `yaml:"scroll_to_source,omitempty"`
}

// EditorConfig selects the external editor used for jump-to-source.
type EditorConfig struct {
	// Command is the editor invocation ("nvim", "code --wait"). Empty
	// falls back to $VISUAL / $EDITOR.
	Command string `yaml:"command,omitempty"`
}

// WatchConfig controls live report reloading.
type WatchConfig struct {
	Enabled bool `yaml:"enabled,omitempty"`
}

// Config is the top-level configuration for lintview.
type Config struct {
	UI     UIConfig     `yaml:"ui,omitempty"`
	Editor EditorConfig `yaml:"editor,omitempty"`
	Watch  WatchConfig  `yaml:"watch,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			ExpandDepth:    4,
			ScrollToSource: true,
		},
		Watch: WatchConfig{Enabled: true},
	}
}

// ConfigDir returns the XDG config directory for lintview.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lintview")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "lintview")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path. A missing file yields the
// defaults; invalid YAML is an error.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config to the XDG config path, creating directories as
// needed.
func (c Config) Save() error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific path.
func (c Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// normalize clamps settings to usable values.
func (c *Config) normalize() {
	if c.UI.ExpandDepth < 2 {
		c.UI.ExpandDepth = 2
	}
}
