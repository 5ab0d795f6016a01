package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultRootRef is the branch the ".." parent walk stops at.
const DefaultRootRef = "master"

// DefaultMaxHistory is the number of jump history entries kept on disk.
const DefaultMaxHistory = 20

// maxHistoryLimit bounds max_history so history indexes stay typeable.
const maxHistoryLimit = 100

// LookupConfig holds settings for the lookup tool
type LookupConfig struct {
	Ignore     []string `toml:"ignore"`      // doublestar patterns pruned during the walk
	MaxResults int      `toml:"max_results"` // 0 = unlimited
}

// PortConfig holds settings for git-port
type PortConfig struct {
	RecordOrigin bool `toml:"record_origin"` // pass -x to cherry-pick
}

// Config holds the gitnav configuration
type Config struct {
	RootRef    string       `toml:"root_ref"`
	MaxHistory int          `toml:"max_history"`
	Theme      string       `toml:"theme"` // "default" or "none"
	Lookup     LookupConfig `toml:"lookup"`
	Port       PortConfig   `toml:"port"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		RootRef:    DefaultRootRef,
		MaxHistory: DefaultMaxHistory,
		Theme:      "default",
		Lookup: LookupConfig{
			Ignore:     []string{".git", "node_modules", "vendor"},
			MaxResults: 50,
		},
		Port: PortConfig{
			RecordOrigin: true,
		},
	}
}

// Path returns the path to the config file.
// GITNAV_CONFIG overrides the default ~/.config/gitnav/config.toml.
func Path() (string, error) {
	if p := os.Getenv("GITNAV_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gitnav", "config.toml"), nil
}

// Load reads the config file at Path().
// Returns Default() if the file doesn't exist (no error).
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return applyEnv(Default()), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path, filling unset fields with defaults.
// Returns an error only if the file exists but is invalid.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return applyEnv(Default()), fmt.Errorf("read config %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return applyEnv(Default()), fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg = applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return applyEnv(Default()), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg Config) Config {
	if ref := strings.TrimSpace(os.Getenv("GITNAV_ROOT_REF")); ref != "" {
		cfg.RootRef = ref
	}
	return cfg
}

// Validate checks field ranges and enums.
func (c Config) Validate() error {
	if strings.TrimSpace(c.RootRef) == "" {
		return fmt.Errorf("root_ref must not be empty")
	}
	if c.MaxHistory < 1 || c.MaxHistory > maxHistoryLimit {
		return fmt.Errorf("max_history must be between 1 and %d, got %d", maxHistoryLimit, c.MaxHistory)
	}
	switch c.Theme {
	case "default", "none":
	default:
		return fmt.Errorf("theme must be \"default\" or \"none\", got %q", c.Theme)
	}
	if c.Lookup.MaxResults < 0 {
		return fmt.Errorf("lookup.max_results must not be negative")
	}
	return nil
}
