package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Karthik3116/IOMP/internal/api"
	"github.com/Karthik3116/IOMP/internal/api/ws"
	"github.com/Karthik3116/IOMP/internal/config"
	"github.com/Karthik3116/IOMP/internal/detector"
	"github.com/Karthik3116/IOMP/internal/discovery"
	"github.com/Karthik3116/IOMP/internal/observability"
	"github.com/Karthik3116/IOMP/internal/queue"
	"github.com/Karthik3116/IOMP/internal/storage"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("starting fleet control plane", "port", cfg.Server.Port)

	// Connect to Postgres. The durable store is not optional: failing to
	// reach it at startup terminates the process.
	db, err := storage.NewPostgresStore(cfg.Database)
	if err != nil {
		slog.Error("connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to MinIO (evidence captures)
	minioStore, err := storage.NewMinIOStore(cfg.MinIO)
	if err != nil {
		slog.Error("connect to minio", "error", err)
		os.Exit(1)
	}
	if err := minioStore.EnsureBucket(context.Background()); err != nil {
		slog.Warn("ensure minio bucket", "error", err)
	}

	// Optional broker mirror for alert events
	var producer *queue.Producer
	if cfg.NATS.URL != "" {
		producer, err = queue.NewProducer(cfg.NATS.URL)
		if err != nil {
			slog.Warn("connect to nats, alert mirror disabled", "error", err)
			producer = nil
		} else {
			defer producer.Close()
		}
	}

	// Observer hub
	hub := ws.NewHub()
	go hub.Run()

	scanner := discovery.NewScanner(cfg.Discovery)
	detectorClient := detector.New(cfg.Detector.Endpoint, cfg.Detector.Timeout)

	router := api.NewRouter(api.RouterConfig{
		DB:       db,
		MinIO:    minioStore,
		Producer: producer,
		Hub:      hub,
		Scanner:  scanner,
		Detector: detectorClient,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("API server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down API server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("API server stopped")
}
