package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pracor/pracor/internal/linking"
	"github.com/pracor/pracor/internal/notify"
	"github.com/pracor/pracor/internal/rest"
	"github.com/pracor/pracor/internal/session"
	"github.com/pracor/pracor/internal/setup"
	"github.com/pracor/pracor/internal/setup/telemetry"
	"github.com/pracor/pracor/internal/submission"
	"go.uber.org/zap"
)

// RESTLogDir specifies where REST server log files are stored.
const RESTLogDir = "logs/rest_logs"

// Server timeouts.
const (
	ReadTimeout     = 5 * time.Second
	ShutdownTimeout = 30 * time.Second
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("REST server failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	app, err := setup.InitializeApp(ctx, telemetry.ServiceAPI, RESTLogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup(ctx)

	cfg := &app.Config.API

	guard, err := session.NewDuplicateGuard(app.RedisManager, cfg.Submission.DuplicateWindow(), app.Logger)
	if err != nil {
		return err
	}

	store, err := session.NewWorkflowStore(app.RedisManager, cfg.Workflow.LinkWindow(), app.Logger)
	if err != nil {
		return err
	}

	publisher, err := notify.NewPublisher(app.RedisManager, app.Logger)
	if err != nil {
		return err
	}

	handler := rest.NewServer(
		app.DB,
		submission.New(app.DB, guard, publisher, app.Logger),
		linking.New(app.DB, store, app.Logger),
		app.Logger,
		cfg,
	)
	defer handler.Close()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: telemetry.ServiceAPI.GetRequestTimeout(),
	}

	serveErr := make(chan error, 1)
	go func() {
		app.Logger.Info("REST server started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	}

	app.Logger.Info("Shutting down REST server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	app.Logger.Info("Server gracefully stopped")

	return nil
}
