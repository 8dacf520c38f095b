package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/imaginasean/weather-modeling/internal/api"
	"github.com/imaginasean/weather-modeling/internal/config"
	"github.com/imaginasean/weather-modeling/internal/derived"
	"github.com/imaginasean/weather-modeling/internal/nws"
	"github.com/imaginasean/weather-modeling/internal/observability"
	"github.com/imaginasean/weather-modeling/internal/sounding"
	"github.com/imaginasean/weather-modeling/internal/storage/sqlite"
	"github.com/imaginasean/weather-modeling/internal/websocket"
	"github.com/imaginasean/weather-modeling/pkg/logger"
)

var (
	// Version is injected at build time
	Version = "dev"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file (optional - will search in configs/ and root directory)")
	flag.Parse()

	// Load configuration with fallback logic
	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting weather modeling server",
		logger.String("version", Version),
		logger.String("config_path", *configPath),
	)

	// Create metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	// Create SQLite archive with a daily database file
	today := time.Now().Format("2006-01-02")
	dbFilename := fmt.Sprintf("wxlab-%s.db", today)
	dbPath := filepath.Join(cfg.Storage.SQLiteBasePath, dbFilename)

	if err := os.MkdirAll(cfg.Storage.SQLiteBasePath, 0755); err != nil {
		log.Error("Failed to create database directory", logger.Error(err), logger.String("path", cfg.Storage.SQLiteBasePath))
		os.Exit(1)
	}

	log.Info("Using daily database", logger.String("path", dbPath))

	archive, err := sqlite.NewArchive(dbPath, log)
	if err != nil {
		log.Error("Failed to create SQLite archive", logger.Error(err))
		os.Exit(1)
	}
	defer archive.Close()

	// Create upstream clients and services
	nwsClient := nws.NewClient(cfg.NWS, metrics, log)
	soundingService := sounding.NewService(cfg.Sounding, archive, log)

	// Create WebSocket server for simulation and forecast streaming
	wsServer := websocket.NewServer(log)
	go wsServer.Run()

	// Create derived forecast service
	derivedService := derived.NewService(derived.Config{
		TauHours:               cfg.Derive.TauHours,
		HorizonSteps:           cfg.Derive.HorizonSteps,
		Bands:                  cfg.Derive.Bands,
		RefreshIntervalMinutes: cfg.Derive.RefreshIntervalMinutes,
		HomeLatitude:           cfg.Station.Latitude,
		HomeLongitude:          cfg.Station.Longitude,
	}, nwsClient, archive, wsServer, metrics, log)
	if err := derivedService.Start(); err != nil {
		log.Error("Failed to start derived forecast service", logger.Error(err))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(nwsClient, derivedService, soundingService, metrics, registry, cfg, log, wsServer)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSecs) * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error on startup", logger.String("addr", server.Addr), logger.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down server...")

	log.Info("Stopping derived forecast service...")
	derivedService.Stop()
	log.Info("Derived forecast service stopped.")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", logger.Error(err))
	} else {
		log.Info("HTTP server shutdown complete")
	}

	log.Info("Server fully stopped")
}
