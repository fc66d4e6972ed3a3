package main

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finstmt/analyzer/internal/analysis"
	"github.com/finstmt/analyzer/internal/api"
	"github.com/finstmt/analyzer/internal/config"
	"github.com/finstmt/analyzer/internal/database"
	"github.com/finstmt/analyzer/internal/export"
	"github.com/finstmt/analyzer/internal/fetcher"
	"github.com/finstmt/analyzer/internal/snapshot"
	"github.com/finstmt/analyzer/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		log.Fatalf("Failed to create migrations sub-fs: %v", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Fundamentals API client
	client := fetcher.NewClient(cfg.FundamentalsURL, cfg.FundamentalsRetryMax, cfg.FundamentalsRetryDelay)

	// Analysis pipeline
	analyzer := analysis.NewService(client, nil)

	// Snapshot service
	snapshotRepo := snapshot.NewPgRepository(pool)
	snapshotSvc := snapshot.NewService(client, snapshotRepo, cfg.StatementFrequency)

	// Optional Google Sheets export after each refresh
	var hook worker.AfterRefreshHook
	if cfg.SheetsSpreadsheetID != "" && cfg.SheetsCredentialsJSON != "" {
		writer, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsJSON)
		if err != nil {
			log.Fatalf("Failed to create sheets writer: %v", err)
		}
		hook = export.NewService(analyzer, writer)
	}

	// Periodic refresh worker
	refreshWorker := worker.NewRefreshWorker(snapshotSvc, cfg.RefreshTickers, cfg.RefreshInterval, hook)
	go refreshWorker.Run(ctx)

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, refresh endpoint is unprotected")
	}

	// Start HTTP server
	srv := api.NewServer(cfg.HTTPPort, snapshotSvc, analyzer, cfg.AdminAPIKey)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
