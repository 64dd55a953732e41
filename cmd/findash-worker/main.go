package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	gsheet "google.golang.org/api/sheets/v4"

	"findash/internal/config"
	"findash/internal/dataset"
	"findash/internal/events"
	applog "findash/internal/log"
	"findash/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := applog.Setup()
	logger = applog.ForComponent(logger, applog.ComponentWorker)
	logger.Info("Starting findash-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the journal worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the journal worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, err := dataset.NewSheetsService(ctx, gsheet.SpreadsheetsScope)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets service", "error", err)
		os.Exit(1)
	}
	appender := worker.NewSheetAppender(svc, cfg.GoogleSpreadsheetID, cfg.GoogleJournalSheet)
	journal := worker.NewJournalWorker(appender, logger)

	eventsClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer eventsClient.Close()

	logger.Info("Consuming mutation events",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue,
		"journal_sheet", cfg.GoogleJournalSheet)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return eventsClient.ConsumeMutations(ctx, func(msg *events.Mutation) error {
			return journal.HandleMutation(ctx, msg)
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}
