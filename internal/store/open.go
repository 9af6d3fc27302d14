package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

const sqliteFileName = "packlist.db"

// Open returns the KV for a backend name rooted at dataDir.
func Open(backend, dataDir string) (KV, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(nil), nil
	case BackendFile, "":
		return NewFile(dataDir)
	case BackendSQLite:
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
		return OpenSQLite(filepath.Join(dataDir, sqliteFileName))
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}
