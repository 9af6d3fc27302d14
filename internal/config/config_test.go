package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG dirs at a temp dir and clears PACKLIST_* vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"PACKLIST_BACKEND", "PACKLIST_DATA_DIR", "PACKLIST_KEY", "PACKLIST_THEME", "PACKLIST_IDS"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	xdg.Reload()
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{
		Backend: "file",
		DataDir: filepath.Join(dir, "data", "packlist"),
		Key:     "my-travel-list",
		Theme:   "classic",
		IDs:     "xid",
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaultFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", "packlist", "config.toml"), `
backend = "sqlite"
theme = "neon"
`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "my-travel-list", cfg.Key, "keys absent from the file keep defaults")
}

func TestLoadExplicitFileAndEnvOverride(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `
backend = "memory"
key = "summer-trip"
ids = "sequential"
`)
	t.Setenv("PACKLIST_KEY", "winter-trip")
	t.Setenv("PACKLIST_DATA_DIR", "/tmp/elsewhere")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "winter-trip", cfg.Key)
	assert.Equal(t, "/tmp/elsewhere", cfg.DataDir)
	assert.Equal(t, "sequential", cfg.IDs)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.toml"))
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	writeFile(t, path, "backend = [unterminated")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"bad backend", func(c *Config) { c.Backend = "redis" }, ErrUnknownBackend},
		{"bad theme", func(c *Config) { c.Theme = "pastel" }, ErrUnknownTheme},
		{"bad ids", func(c *Config) { c.IDs = "uuid" }, ErrUnknownIDs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Backend: "file", DataDir: "/x", Key: "k", Theme: "classic", IDs: "xid"}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateDataDir(t *testing.T) {
	cfg := Config{Backend: "file", Theme: "classic", IDs: "xid"}
	assert.Error(t, cfg.Validate())

	cfg.Backend = "memory"
	assert.NoError(t, cfg.Validate())
}
