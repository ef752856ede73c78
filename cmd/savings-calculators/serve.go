package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/history"
	"github.com/suhas-sunder/allsavingscalc-sub000/internal/server"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"go.uber.org/zap"
)

var (
	serverConfigLocation string
	serveAddress         string
	serveMaxBodySize     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators as a JSON API",
	Long: `Start an HTTP server exposing the calculators.

Endpoints:
  POST /api/compound, /api/savings, /api/balance
  POST /api/goal, /api/scenarios
  GET|DELETE /api/history, /api/history/{id}
  GET /api/version, /metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serverConfigLocation, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address override")
	serveCmd.Flags().StringVar(&serveMaxBodySize, "max-body-size", "", "request body limit override (e.g. 256K, 1M)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		return fmt.Errorf("failed to load server configuration at %s: %w", serverConfigLocation, err)
	}
	if serveAddress != "" {
		cfg.Address = serveAddress
	}
	if serveMaxBodySize != "" {
		size, err := server.ParseSize(serveMaxBodySize)
		if err != nil {
			return err
		}
		cfg.SetBodySizeBytes(size)
	}

	logger, err := initializeLogger(cfg.Logging, logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	var store server.HistoryStore
	if cfg.History.Enabled {
		s, err := history.Open(cfg.History.Path, cfg.History.MaxEntries, logger)
		if err != nil {
			return err
		}
		defer func() {
			_ = s.Close()
		}()
		store = s
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, cfg.BodySizeBytes(), version, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main.runServe"),
			zap.String("address", cfg.Address),
			zap.Bool("history", cfg.History.Enabled),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.String("op", "main.runServe"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
