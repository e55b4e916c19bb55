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

	"go.uber.org/zap"

	"github.com/lehmann314159/dreamcars/internal/catalog"
	"github.com/lehmann314159/dreamcars/internal/config"
	"github.com/lehmann314159/dreamcars/internal/database"
	"github.com/lehmann314159/dreamcars/internal/handlers"
	"github.com/lehmann314159/dreamcars/internal/metrics"
	"github.com/lehmann314159/dreamcars/internal/repository"
	"github.com/lehmann314159/dreamcars/internal/view"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var logger *zap.Logger
	if cfg.LogLevel == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	kv, err := database.Open(ctx, database.Options{
		Driver:      database.Driver(cfg.StorageDriver),
		DataDir:     cfg.DataDir,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer kv.Close()

	m := metrics.New()
	repo := repository.New(kv, logger, m)

	v, err := view.New(logger)
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	cat := catalog.New(repo, v,
		catalog.WithLogger(logger),
		catalog.WithMetrics(m),
		catalog.WithDeleteDelay(cfg.DeleteDelay),
	)
	cat.Init(ctx)
	defer cat.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           handlers.NewRouter(cat, v, m, logger, cfg.StaticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Starting server",
		zap.Int("port", cfg.ServerPort),
		zap.String("storage", cfg.StorageDriver),
		zap.String("log_level", cfg.LogLevel),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
