package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"tally/internal/amqp"
	"tally/internal/config"
	applog "tally/internal/log"
	"tally/internal/store/sqlite"
	"tally/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	applog.Setup()
	slog.Info("Starting tally-worker")

	cfg := config.Load(os.Getenv)
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		slog.Error("AMQP_URL is required for the backup worker")
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer db.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		slog.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	backupWorker := worker.NewBackupWorker(db, cfg.BackupDir, cfg.BackupKeep)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeBackups(ctx, func(msg *amqp.BackupMessage) error {
			return backupWorker.HandleBackupMessage(ctx, msg)
		})
	})

	// Periodic retention pass catches keys whose backup events were lost.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.PruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := backupWorker.PruneAll(ctx); err != nil {
					slog.Error("Backup pruning failed", "error", err)
				}
			}
		}
	})

	slog.Info("Worker running",
		"queue", cfg.AMQPQueue,
		"backup_dir", cfg.BackupDir,
		"keep", cfg.BackupKeep)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Worker shutdown complete")
}
