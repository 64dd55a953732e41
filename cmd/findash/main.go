package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"findash/internal/advice"
	"findash/internal/config"
	"findash/internal/dataset"
	"findash/internal/events"
	"findash/internal/httpapi"
	applog "findash/internal/log"
	"findash/internal/store"
)

func main() {
	// Load .env for local development; absent in production is fine.
	_ = godotenv.Load()

	logger := applog.Setup()
	logger = applog.ForComponent(logger, applog.ComponentApp)
	logger.Info("Starting findash")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := dataset.New(ctx, cfg, applog.ForComponent(logger, applog.ComponentDataset))
	if err != nil {
		logger.Error("Failed to initialize dataset source", "error", err, "backend", cfg.DatasetBackend)
		os.Exit(1)
	}

	// The dataset is read exactly once; everything after this line lives
	// in memory only.
	data, err := src.Load(ctx)
	if err != nil {
		logger.Error("Failed to load dataset", "error", err, "backend", cfg.DatasetBackend)
		os.Exit(1)
	}
	st := store.New(data)
	logger.Info("Dataset loaded",
		"backend", cfg.DatasetBackend,
		"transactions", len(data.Transactions),
		"pots", len(data.SavingsPots),
		"budgets", len(data.Budgets),
		"bills", len(data.RecurringBills))

	adviceClient := advice.NewClient(cfg, applog.ForComponent(logger, applog.ComponentAdvice))

	var publisher httpapi.EventPublisher
	if cfg.AMQPURL != "" {
		eventsClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer eventsClient.Close()
		publisher = eventsClient
		logger.Info("Mutation events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("Mutation events disabled - no AMQP_URL provided")
	}

	srv := httpapi.NewServer(cfg, st, adviceClient, publisher, applog.ForComponent(logger, applog.ComponentHTTP))
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 90 * time.Second // advice calls can be slow
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	go func() {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
