package cloud

import (
	"fmt"
	"log/slog"
	"time"

	"farmbook/internal/cloud/memory"
	"farmbook/internal/cloud/sqlite"
)

// BackendType selects a snapshot store implementation.
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds what the factory needs to build a store.
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Memory specific
	SimulatedLatency time.Duration
}

// Open builds the configured snapshot store and a cleanup function. The
// returned store normalizes identities, so backends always see canonical
// keys.
func Open(cfg Config, logger *slog.Logger) (Store, CleanupFunc, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Type {
	case SQLiteBackend:
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite snapshot store: %w", err)
		}
		logger.Info("Initialized sqlite snapshot store", "db_path", cfg.SQLiteDBPath)
		return Normalized(store), store.Close, nil
	case MemoryBackend:
		store := memory.New(cfg.SimulatedLatency)
		logger.Info("Initialized memory snapshot store", "simulated_latency", cfg.SimulatedLatency)
		return Normalized(store), nil, nil
	default:
		return nil, nil, fmt.Errorf("invalid snapshot backend type: %s", cfg.Type)
	}
}
