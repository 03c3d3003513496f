package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultConfigFileName is the standard configuration file name.
	DefaultConfigFileName = "patties.toml"

	// XDGConfigSubdir is the subdirectory under XDG_CONFIG_HOME for the planner.
	XDGConfigSubdir = "pattyplanner"
)

// ErrNoConfig is returned by Load when no file exists and no default may be created.
var ErrNoConfig = errors.New("no configuration file found")

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load finds and reads the configuration. Sources in order of precedence:
// 1. Explicit path (if provided)
// 2. XDG config path (~/.config/pattyplanner/patties.toml)
// 3. Current working directory (./patties.toml)
// 4. Default configuration, written to the first writable location (if createDefault is true)
//
// Returns the loaded configuration and the path it was loaded from. The path
// is empty when the default could not be written.
func Load(explicitPath string, createDefault bool) (*Config, string, error) {
	if explicitPath != "" {
		cfg, err := loadFromFile(explicitPath)
		if err != nil {
			return nil, "", &LoadError{Path: explicitPath, Err: err}
		}
		return cfg, explicitPath, nil
	}

	candidates := searchPaths()
	for _, path := range candidates {
		if !fileExists(path) {
			continue
		}
		cfg, err := loadFromFile(path)
		if err != nil {
			return nil, "", &LoadError{Path: path, Err: err}
		}
		return cfg, path, nil
	}

	if !createDefault {
		return nil, "", fmt.Errorf("%w; searched: %v", ErrNoConfig, candidates)
	}

	cfg := Default()
	for _, path := range candidates {
		if err := Save(cfg, path); err != nil {
			slog.Debug("could not write default config", "path", path, "error", err)
			continue
		}
		return cfg, path, nil
	}

	return cfg, "", nil
}

// searchPaths lists the implicit config locations, most preferred first.
func searchPaths() []string {
	var paths []string
	if xdg := xdgConfigPath(); xdg != "" {
		paths = append(paths, xdg)
	}
	return append(paths, filepath.Join(".", DefaultConfigFileName))
}

// loadFromFile reads, parses and validates a TOML configuration file.
// Keys missing from the file keep their default values.
func loadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}

	for _, key := range md.Undecoded() {
		slog.Warn("ignoring unknown config key", "path", path, "key", key.String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

const fileHeader = `# Patty Planner configuration
#
# [branch] holds pack pricing, patty weights and trim waste for this branch.
# [form] holds the values the sales form starts with.
# Branch settings edited in the settings panel are written back here.

`

// Save validates cfg and writes it to path. The file is replaced atomically
// so a failed write never leaves a truncated config behind.
func Save(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing config: %w", err)
	}
	if err := tmp.Chmod(0640); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}

	return nil
}

// xdgConfigPath returns the XDG-compliant config file path.
// Returns empty string if XDG_CONFIG_HOME is not set and HOME is not available.
func xdgConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, XDGConfigSubdir, DefaultConfigFileName)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", XDGConfigSubdir, DefaultConfigFileName)
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ConfigPath returns the configuration file path that would be used.
// Useful for displaying to users.
func ConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	candidates := searchPaths()
	for _, path := range candidates {
		if fileExists(path) {
			return path
		}
	}

	return candidates[0]
}

// EnsureLogDir creates the log directory if needed and returns the log file
// path. An empty path disables file logging.
func EnsureLogDir(cfg *Config) (string, error) {
	logPath := cfg.Logging.File
	if logPath == "" {
		return "", nil
	}

	dir := filepath.Dir(logPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("creating log directory: %w", err)
		}
	}

	return logPath, nil
}
