package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tokenized/pkg/logger"
	"github.com/tokenized/voting/cmd/votingd/bootstrap"
	"github.com/tokenized/voting/internal/api"
)

var (
	buildVersion = "unknown"
	buildDate    = "unknown"
	buildUser    = "unknown"
)

// Voting Daemon
//
func main() {
	// -------------------------------------------------------------------------
	// Logging

	ctx := bootstrap.NewContextWithDevelopmentLogger()

	// -------------------------------------------------------------------------
	// Config

	cfg := bootstrap.NewConfigFromEnv(ctx)
	ctx = bootstrap.NewContextWithConfigLogger(cfg)

	// -------------------------------------------------------------------------
	// App Starting

	logger.Info(ctx, "Started : Application Initializing")
	defer logger.Info(ctx, "Completed")

	logger.Info(ctx, "Build %v (%v on %v)", buildVersion, buildUser, buildDate)

	// -------------------------------------------------------------------------
	// Start Database / Storage

	logger.Info(ctx, "Started : Initialize Database")

	masterDB := bootstrap.NewMasterDB(ctx, cfg)
	defer masterDB.Close()

	if err := masterDB.StatusCheck(ctx); err != nil {
		logger.Fatal(ctx, "Storage status check : %s", err)
	}

	// -------------------------------------------------------------------------
	// Ledger

	rt := bootstrap.NewRuntime(ctx, cfg, masterDB)
	app := api.NewApp(bootstrap.NewClient(ctx, cfg, rt), masterDB)

	// -------------------------------------------------------------------------
	// Start API Service

	server := &http.Server{
		Addr:         cfg.API.Host,
		Handler:      app.Router(),
		ReadTimeout:  bootstrap.Timeout(cfg.API.ReadTimeout),
		WriteTimeout: bootstrap.Timeout(cfg.API.WriteTimeout),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info(ctx, "API Listening %s", cfg.API.Host)
		serverErrors <- server.ListenAndServe()
	}()

	// -------------------------------------------------------------------------
	// Shutdown

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, os.Interrupt, syscall.SIGTERM)

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			logger.Error(ctx, "Error starting server: %s", err)
		}

	case <-osSignals:
		logger.Info(ctx, "Start shutdown...")

		shutdownCtx, cancel := context.WithTimeout(ctx,
			bootstrap.Timeout(cfg.API.ShutdownTimeout))
		defer cancel()

		// Asking listener to shutdown and load shed.
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Could not stop server gracefully : %s", err)
			server.Close()
		}
	}
}
