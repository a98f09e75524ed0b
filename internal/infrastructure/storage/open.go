package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"svw.info/birthdayos/internal/config"
	"svw.info/birthdayos/internal/ports"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the backend selected by cfg and wraps it in the configured
// namespace. The returned closer releases backend resources.
func Open(cfg config.StorageConfig) (ports.KV, io.Closer, error) {
	var (
		kv     ports.KV
		closer io.Closer = nopCloser{}
	)
	switch cfg.Driver {
	case "memory":
		kv = NewMemory()
	case "file":
		kv = NewFS(cfg.Path)
	case "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
				return nil, nil, fmt.Errorf("storage: mkdir %s: %w", cfg.Path, err)
			}
			dsn = filepath.Join(cfg.Path, "birthdayos.db")
		}
		s, err := OpenSQL("sqlite", dsn)
		if err != nil {
			return nil, nil, err
		}
		kv, closer = s, s
	case "mysql":
		s, err := OpenSQL("mysql", cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		kv, closer = s, s
	default:
		return nil, nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
	return WithNamespace(cfg.Namespace, kv), closer, nil
}
