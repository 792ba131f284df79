package storage

import (
	"fmt"
	"log/slog"
)

// BackendType selects the persistence implementation.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) String() string { return string(bt) }

func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// NewStore builds the configured backend. dbPath is only consulted for
// the sqlite backend.
func NewStore(logger *slog.Logger, backend BackendType, dbPath string) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch backend {
	case MemoryBackend:
		logger.Info("initialized memory store")
		return NewMemoryStore(), nil
	case SQLiteBackend:
		store, err := NewSQLiteStore(dbPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("initialized sqlite store", "db_path", dbPath)
		return store, nil
	default:
		return nil, fmt.Errorf("invalid backend type: %s", backend)
	}
}
