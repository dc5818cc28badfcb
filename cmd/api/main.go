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

	"github.com/your-org/weavescope/internal/api"
	"github.com/your-org/weavescope/internal/api/ws"
	"github.com/your-org/weavescope/internal/config"
	"github.com/your-org/weavescope/internal/observability"
	"github.com/your-org/weavescope/internal/scan"
	"github.com/your-org/weavescope/internal/state"
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

	slog.Info("starting WeaveScope API service",
		"port", cfg.Server.Port,
		"brand", cfg.Branding.Name,
		"theme", cfg.Branding.Theme,
	)

	// Session store: everything lives here and dies with the process.
	store := state.NewStore()

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run()

	pipeline := scan.NewPipeline(store, hub, cfg.Scan)

	// Setup router
	router := api.NewRouter(api.RouterConfig{
		Config:   cfg,
		Store:    store,
		Pipeline: pipeline,
		Hub:      hub,
	})

	// Start HTTP server
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
