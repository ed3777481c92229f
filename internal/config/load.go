package config

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileSystem abstracts file access so loading is testable with an
// in-memory implementation.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem against the real file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) { return os.Open(name) }

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// ParseError describes a malformed config file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load resolves the configuration: defaults, then the TOML file at
// path (a missing file is not an error), then QUILL_* environment
// variables. The result is validated before being returned.
func Load(path string) (Config, error) {
	return LoadFS(OSFS{}, path)
}

// LoadFS is Load with an explicit file system, for tests.
func LoadFS(fsys FileSystem, path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := fsys.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file; defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, &ParseError{Path: path, Message: err.Error(), Err: err}
			}
		}
	}

	applyEnv(&cfg, os.Getenv)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays QUILL_* environment variables onto the config.
// Unset and empty variables leave the config untouched; malformed
// numeric values are ignored rather than fatal.
func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv("QUILL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := getenv("QUILL_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := getenv("QUILL_TAB_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Editor.TabWidth = n
		}
	}
	if v := getenv("QUILL_DIRECTION"); v != "" {
		cfg.Editor.DefaultDirection = strings.ToLower(v)
	}
	if v := getenv("QUILL_SCRIPTS_DIR"); v != "" {
		cfg.Scripts.Dir = v
	}
	if v := getenv("QUILL_WATCH"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Watch.Enabled = b
		}
	}
}
