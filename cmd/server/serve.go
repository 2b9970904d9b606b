package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/actuallystonmai/film-recommender/internal/engine"
	"github.com/actuallystonmai/film-recommender/internal/handler"
	"github.com/actuallystonmai/film-recommender/internal/logging"
	"github.com/actuallystonmai/film-recommender/internal/router"
	"github.com/actuallystonmai/film-recommender/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ------------ Catalog source ---------------
	source, closeSource, err := catalogSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	// ------------ Cache ---------------
	store, err := openCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("failed to close cache")
		}
	}()

	// ------------ Engine & service ---------------
	eng, err := engine.New(cfg.Engine, logging.Logger())
	if err != nil {
		return err
	}
	svc := service.NewService(source, eng, store, logging.Logger())

	if _, err := svc.Reload(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	go svc.RunSweeper(ctx, cfg.Cache.SweepInterval)

	// ---------------- Server --------------------
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.Setup(handler.NewHandler(svc)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
