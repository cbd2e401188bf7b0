package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scriptmentor/scriptparse/internal/api"
	"github.com/scriptmentor/scriptparse/internal/config"
	"github.com/scriptmentor/scriptparse/internal/feedback"
	"github.com/scriptmentor/scriptparse/internal/pipeline"
	"github.com/scriptmentor/scriptparse/internal/scriptstore"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	store := scriptstore.NewClient(cfg.ScriptstoreURL, cfg.ScriptstoreAPIKey)
	var mentor *feedback.Client
	if cfg.FeedbackEnabled {
		mentor = feedback.NewClient(cfg.MentorURL, cfg.MentorAPIKey)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, store, mentor, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, mentor, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if mentor != nil {
			mentor.Close()
		}
		store.Close()
	}()

	log.Info("starting scriptparse", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
