package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01001010100011/scolamia.it/app/api"
	"github.com/01001010100011/scolamia.it/app/cfg"
	"github.com/01001010100011/scolamia.it/app/content"
	"github.com/01001010100011/scolamia.it/app/dataservice"
	"github.com/01001010100011/scolamia.it/app/tasks"
)

func main() {
	// Load configuration from environment variables and command-line flags
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Scolamia server", "version", appCfg.Version)

	site, err := content.LoadSite()
	if err != nil {
		log.Fatalf("Failed to load site configuration: %v", err)
	}

	// Initialize core components
	client := dataservice.NewClient(appCfg.DataServiceURL, appCfg.DataServiceKey)
	store := content.NewStore()
	loader := content.NewLoader(client)
	board := content.NewBoard(time.Duration(appCfg.BoardTickInterval)*time.Second, appCfg.PinnedSlug)
	defer board.Stop()

	// Initial load before the server starts accepting requests; each section
	// settles independently and the countdown chain always produces data.
	slog.Info("Loading initial content", "data_service", appCfg.DataServiceURL)
	initialCtx, cancelInitial := context.WithTimeout(context.Background(), time.Minute)
	loader.RefreshAll(initialCtx, store, board)
	cancelInitial()
	slog.Info("Initial content loaded", "countdown_source", store.Countdowns().Source)

	// Initialize and start the refresh scheduler
	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", appCfg.RefreshInterval)
	scheduler := tasks.NewScheduler(loader, store, board)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize HTTP server
	handler := api.NewHandler(store, board, loader, site, appCfg.PinnedSlug, client, scheduler)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler and board are stopped via defer
	slog.Info("Shutdown complete")
}
