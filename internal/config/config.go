// Package config resolves packlist settings from defaults, an optional TOML
// file and PACKLIST_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/idilsaglam/packlist/internal/packing"
	"github.com/idilsaglam/packlist/internal/store"
)

const (
	appName        = "packlist"
	configFileName = "config.toml"
)

var (
	ErrUnknownBackend = errors.New("unknown backend")
	ErrUnknownTheme   = errors.New("unknown theme")
	ErrUnknownIDs     = errors.New("unknown id strategy")
)

var (
	backends = []string{store.BackendFile, store.BackendSQLite, store.BackendMemory}
	themes   = []string{"classic", "neon", "mono"}
	idKinds  = []string{"xid", "sequential"}
)

// Config is the resolved runtime configuration.
type Config struct {
	Backend string `koanf:"backend" env:"PACKLIST_BACKEND"`
	DataDir string `koanf:"data_dir" env:"PACKLIST_DATA_DIR"`
	Key     string `koanf:"key" env:"PACKLIST_KEY"`
	Theme   string `koanf:"theme" env:"PACKLIST_THEME"`
	IDs     string `koanf:"ids" env:"PACKLIST_IDS"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend: store.BackendFile,
		DataDir: filepath.Join(xdg.DataHome, appName),
		Key:     packing.DefaultKey,
		Theme:   "classic",
		IDs:     "xid",
	}
}

// DefaultPath is the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

// Load resolves the configuration. An explicit path must exist; the default
// path is read only when present.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
		if err := k.Unmarshal("", &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("config file: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if !slices.Contains(backends, c.Backend) {
		return fmt.Errorf("%w %q", ErrUnknownBackend, c.Backend)
	}
	if !slices.Contains(themes, c.Theme) {
		return fmt.Errorf("%w %q", ErrUnknownTheme, c.Theme)
	}
	if !slices.Contains(idKinds, c.IDs) {
		return fmt.Errorf("%w %q", ErrUnknownIDs, c.IDs)
	}
	if c.Backend != store.BackendMemory && c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	return nil
}
