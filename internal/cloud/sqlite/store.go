// Package sqlite persists farm snapshots in a local SQLite database, one
// JSON document per identity.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"farmbook/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Push upserts the identity's snapshot. The previous document is replaced
// whole; there is no merge.
func (s *Store) Push(ctx context.Context, identity string, data *core.FarmData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (identity, payload, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET
			payload = excluded.payload,
			saved_at = excluded.saved_at`,
		identity, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot saved",
		"identity", identity,
		"payload_bytes", len(payload),
		"transactions", len(data.Transactions))
	return nil
}

// Pull returns the identity's snapshot, or nil when none was ever pushed.
func (s *Store) Pull(ctx context.Context, identity string) (*core.FarmData, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE identity = ?`, identity).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}

	var data core.FarmData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &data, nil
}
