// Package config loads quill's configuration from a TOML file with
// environment variable overrides. Precedence, lowest to highest:
// built-in defaults, the config file, QUILL_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the resolved editor configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Log     LogConfig     `toml:"log"`
	Scripts ScriptsConfig `toml:"scripts"`
	Watch   WatchConfig   `toml:"watch"`
}

// EditorConfig holds buffer and editing settings.
type EditorConfig struct {
	// TabWidth is the display width of a tab character.
	TabWidth int `toml:"tab_width"`
	// DefaultDirection is the fallback layout direction for lines the
	// classifier reports as auto: "ltr" or "rtl".
	DefaultDirection string `toml:"default_direction"`
	// MaxFileSizeMB refuses to open files larger than this.
	MaxFileSizeMB int `toml:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	// File receives log output; empty logs to stderr.
	File string `toml:"file"`
}

// ScriptsConfig holds Lua macro settings.
type ScriptsConfig struct {
	// Dir is scanned for *.lua macro files.
	Dir string `toml:"dir"`
}

// WatchConfig holds file watcher settings.
type WatchConfig struct {
	Enabled    bool `toml:"enabled"`
	DebounceMS int  `toml:"debounce_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth:         4,
			DefaultDirection: "ltr",
			MaxFileSizeMB:    50,
		},
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMS: 100,
		},
	}
}

// DefaultPath returns the conventional config file location,
// $XDG_CONFIG_HOME/quill/config.toml or its home-directory fallback.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "quill", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill", "config.toml")
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width %d out of range [1,16]", c.Editor.TabWidth)
	}
	switch c.Editor.DefaultDirection {
	case "ltr", "rtl":
	default:
		return fmt.Errorf("editor.default_direction %q must be ltr or rtl", c.Editor.DefaultDirection)
	}
	if c.Editor.MaxFileSizeMB < 1 {
		return fmt.Errorf("editor.max_file_size_mb %d must be positive", c.Editor.MaxFileSizeMB)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be debug, info, warn, or error", c.Log.Level)
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms %d must not be negative", c.Watch.DebounceMS)
	}
	return nil
}
