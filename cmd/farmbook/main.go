package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"farmbook/internal/amqp"
	"farmbook/internal/cloud"
	"farmbook/internal/config"
	apphttp "farmbook/internal/http"
	"farmbook/internal/ledger"
	"farmbook/internal/suggest"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

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

	store := ledger.New(ledger.Seed(cfg.FarmName))

	// The broker is optional: without it saves still work, only the sync
	// pipeline goes quiet.
	var publisher apphttp.SnapshotPublisher
	if amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue); err != nil {
		logger.Warn("AMQP unavailable, snapshot messages disabled", "error", err)
	} else {
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	var suggester apphttp.CategorySuggester
	if cfg.GeminiAPIKey != "" {
		suggester = suggest.NewClient(cfg.GeminiAPIKey, "", cfg.GeminiModel, cfg.GeminiTimeout)
		logger.Info("Category suggestions enabled", "model", cfg.GeminiModel)
	} else {
		logger.Info("Category suggestions disabled - no GEMINI_API_KEY provided")
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, snapshots, publisher, suggester, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting farmbook server", "port", cfg.Port, "backend", cfg.SnapshotBackend, "farm", cfg.FarmName)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
