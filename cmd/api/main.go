package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tysanh1/asset-verse-ledger/internal/adapter"
	"github.com/tysanh1/asset-verse-ledger/internal/api/middleware"
	"github.com/tysanh1/asset-verse-ledger/internal/api/server"
	"github.com/tysanh1/asset-verse-ledger/internal/config"
	"github.com/tysanh1/asset-verse-ledger/internal/draft"
	"github.com/tysanh1/asset-verse-ledger/internal/ledger"
	"github.com/tysanh1/asset-verse-ledger/internal/logger"
	"github.com/tysanh1/asset-verse-ledger/internal/store"
	"github.com/tysanh1/asset-verse-ledger/internal/txlog"
	"github.com/tysanh1/asset-verse-ledger/internal/walletlink"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create shutdown context with timeout
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Asset Verse Ledger API")

	// Open the ledger store
	dataStore, err := store.NewLevelDBStore(cfg.Store.Path)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open ledger store", zap.Error(err), zap.String("path", cfg.Store.Path))
	}
	defer func() {
		if err := dataStore.Close(); err != nil {
			logger.Error(err, zap.String("component", "store"))
		}
	}()
	logger.InfoCtx(ctx, "Opened ledger store", zap.String("path", cfg.Store.Path))

	// Assemble ledger components
	clock := adapter.NewClock()
	txLog := txlog.New(dataStore)
	assetLedger := ledger.New(dataStore, txLog, clock)
	walletLinks := walletlink.New(dataStore, clock)
	draftStore := draft.New(dataStore, clock)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, assetLedger, txLog, walletLinks, draftStore)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
