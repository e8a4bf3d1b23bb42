package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/pagewise/internal/api"
	"github.com/dgallion1/pagewise/internal/config"
	"github.com/dgallion1/pagewise/internal/pipeline"
	"github.com/dgallion1/pagewise/internal/reader"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP reader host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := reader.NewStore(reader.Options{
		Budget:         cfg.PageBudget,
		ScreenWidth:    cfg.ScreenWidth,
		SettleDebounce: cfg.SettleDebounce,
		SuppressWindow: cfg.SuppressWindow,
		OutboxLimit:    cfg.OutboxLimit,
	}, cfg.SessionTTL, log)
	go sessions.Run(ctx, time.Minute)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, sessions, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, sessions, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		// Stop taking uploads before the job queue closes.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		cancel()
		sessions.CloseAll()
	}()

	log.Info("starting pagewise", "port", cfg.Port, "page_budget", cfg.PageBudget)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		return err
	}
	<-stopped
	return nil
}
