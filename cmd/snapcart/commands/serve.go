package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/marshallshelly/snapcart/cmd/snapcart/output"
	"github.com/marshallshelly/snapcart/internal/config"
	"github.com/marshallshelly/snapcart/internal/database"
	handler "github.com/marshallshelly/snapcart/internal/handler/http"
	"github.com/marshallshelly/snapcart/internal/store"
)

var (
	// Serve flags
	addr        string
	skipMigrate bool
)

// serveCmd runs the HTTP API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the snapcart HTTP API server.

Pending migrations are applied at startup unless --skip-migrate is set.

Examples:
  snapcart serve                       # Listen on SNAPCART_ADDR (default :8080)
  snapcart serve --addr :9000          # Listen on a custom address
  snapcart serve --skip-migrate        # Assume the schema is current`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides SNAPCART_ADDR)")
	serveCmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not apply pending migrations at startup")
}

func runServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil && !verbose {
		logrus.SetLevel(level)
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Runtime().Close()

	if !skipMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}

	h := handler.NewHandler(store.New(db))
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		output.Info("listening on %s", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		output.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	output.Success("server stopped")
	return nil
}
