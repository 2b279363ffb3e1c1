package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/edu-delahoz/finanzas/internal/amqp"
	"github.com/edu-delahoz/finanzas/internal/config"
	"github.com/edu-delahoz/finanzas/internal/log"
	"github.com/edu-delahoz/finanzas/internal/sheets"
	gsheet "github.com/edu-delahoz/finanzas/internal/sheets/google"
	mem "github.com/edu-delahoz/finanzas/internal/sheets/memory"
	"github.com/edu-delahoz/finanzas/internal/storage"
	"github.com/edu-delahoz/finanzas/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: "finanzas-worker"})
	log.SetDefault(logger)

	logger.Info("Starting finanzas-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mirror sheets.MovementAppender
	switch cfg.MirrorBackend {
	case "sheets":
		client, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsFile: cfg.GoogleCredentialsFile,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		mirror = client
		logger.Info("Initialized Google Sheets mirror", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)
	default:
		mirror = mem.New()
		logger.Info("Initialized in-memory mirror", "backend", cfg.MirrorBackend)
	}

	mirrorWorker := worker.NewMirrorWorker(repo, mirror)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	dial := func() (*amqp.Client, error) {
		return amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	}

	// Each message gets its own deadline so a stuck Sheets call cannot
	// wedge the consumer.
	handle := func(ctx context.Context, msg *amqp.MovementCreatedMessage) error {
		ctx, cancel := context.WithTimeout(ctx, cfg.ConsumeTimeout)
		defer cancel()
		return mirrorWorker.HandleMovementCreated(ctx, msg)
	}

	logger.Info("Consuming movement events", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	if err := amqp.ConsumeWithReconnect(ctx, dial, handle); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
