// Package worker mirrors saved farm snapshots to the external ledger
// copy. It reacts to snapshot-saved messages and periodically re-mirrors
// known identities as a backup for lost messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"farmbook/internal/amqp"
	"farmbook/internal/cloud"
	"farmbook/internal/sheets"
)

type SyncWorker struct {
	store  cloud.Store
	mirror sheets.LedgerMirror

	mu         sync.Mutex
	identities map[string]struct{}
}

func NewSyncWorker(store cloud.Store, mirror sheets.LedgerMirror) *SyncWorker {
	return &SyncWorker{
		store:      store,
		mirror:     mirror,
		identities: make(map[string]struct{}),
	}
}

// HandleSnapshotSaved processes a single snapshot-saved message: it pulls
// the identity's current snapshot and mirrors it. The message itself
// carries no data, so a redelivered or stale message is harmless.
func (w *SyncWorker) HandleSnapshotSaved(ctx context.Context, msg *amqp.SnapshotSavedMessage) error {
	slog.InfoContext(ctx, "Processing snapshot saved message",
		"identity", msg.Identity,
		"tx_count", msg.TxCount)

	if err := w.mirrorIdentity(ctx, msg.Identity); err != nil {
		return err
	}

	w.mu.Lock()
	w.identities[cloud.NormalizeIdentity(msg.Identity)] = struct{}{}
	w.mu.Unlock()
	return nil
}

// RunPeriodicMirror re-mirrors every identity seen so far on each tick,
// recovering from messages lost while the broker or worker was down.
func (w *SyncWorker) RunPeriodicMirror(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping periodic mirror", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			w.mirrorAll(ctx)
		}
	}
}

func (w *SyncWorker) mirrorAll(ctx context.Context) {
	w.mu.Lock()
	identities := make([]string, 0, len(w.identities))
	for id := range w.identities {
		identities = append(identities, id)
	}
	w.mu.Unlock()

	if len(identities) == 0 {
		return
	}

	slog.InfoContext(ctx, "Periodic mirror pass", "identities", len(identities))

	successCount := 0
	errorCount := 0
	for _, identity := range identities {
		if err := w.mirrorIdentity(ctx, identity); err != nil {
			slog.ErrorContext(ctx, "Periodic mirror failed",
				"identity", identity, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Periodic mirror completed",
		"total", len(identities),
		"mirrored", successCount,
		"errors", errorCount)
}

func (w *SyncWorker) mirrorIdentity(ctx context.Context, identity string) error {
	data, err := w.store.Pull(ctx, identity)
	if err != nil {
		return fmt.Errorf("pull snapshot: %w", err)
	}
	if data == nil {
		slog.WarnContext(ctx, "No snapshot for identity, skipping mirror",
			"identity", identity)
		return nil
	}

	if err := w.mirror.Mirror(ctx, identity, data); err != nil {
		return fmt.Errorf("mirror ledger: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored snapshot",
		"identity", identity,
		"transactions", len(data.Transactions))
	return nil
}
