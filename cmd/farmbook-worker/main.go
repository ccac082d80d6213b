package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"farmbook/internal/amqp"
	"farmbook/internal/cloud"
	"farmbook/internal/config"
	gsheet "farmbook/internal/sheets/google"
	"farmbook/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting farmbook-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	snapshots, cleanup, err := cloud.Open(cloud.Config{
		Type:             cloud.BackendType(cfg.SnapshotBackend),
		SQLiteDBPath:     cfg.SQLiteDBPath,
		SimulatedLatency: cfg.SimulatedLatency,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize snapshot store", "error", err, "backend", cfg.SnapshotBackend)
		os.Exit(1)
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				logger.Error("Snapshot store cleanup error", "error", err)
			}
		}()
	}

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided, nothing to mirror")
		os.Exit(1)
	}
	sheetsClient, err := gsheet.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(snapshots, sheetsClient)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeSnapshotSaved(ctx, func(msg *amqp.SnapshotSavedMessage) error {
			return syncWorker.HandleSnapshotSaved(ctx, msg)
		})
	})
	g.Go(func() error {
		return syncWorker.RunPeriodicMirror(ctx, cfg.MirrorInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
