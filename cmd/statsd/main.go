package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/ren887400-crypto/manhwa/internal/core/config"
	"github.com/ren887400-crypto/manhwa/internal/core/storage/postgres"
	"github.com/ren887400-crypto/manhwa/internal/ingestion"
	"github.com/ren887400-crypto/manhwa/internal/migrations"
	"github.com/ren887400-crypto/manhwa/internal/reporting"
	"github.com/ren887400-crypto/manhwa/internal/server"
)

func main() {
	configPath := flag.String("config", "statsd.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	if err := dbAdapter.ValidateSchema(); err != nil {
		slog.Error("Schema validation failed", "error", err)
		os.Exit(1)
	}

	// 3. Initialize Ingestion (track endpoint)
	ingestionSvc := ingestion.NewService(dbAdapter)

	// 4. Initialize Reporting (stats query API)
	statsReader := postgres.NewStatsAdapter(dbAdapter.DB())
	reportingSvc := reporting.NewService(statsReader)

	// 5. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	reportingSvc.RegisterRoutes(srv.Engine)

	// 6. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
