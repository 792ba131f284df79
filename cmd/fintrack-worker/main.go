package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cli"
	"fintrack/internal/export"
	exportgoogle "fintrack/internal/export/google"
	exportmem "fintrack/internal/export/memory"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("starting fintrack-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	store := cli.InitStore(logger, cfg)
	amqpClient := cli.InitAMQP(logger, cfg)
	if amqpClient == nil {
		logger.Error("failed to connect to AMQP broker")
		os.Exit(1)
	}

	var writer export.LedgerWriter
	if cfg.SheetsConfigured() {
		client, err := exportgoogle.New(context.Background(), exportgoogle.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
			CredentialsFile: cfg.GoogleCredentialsFile,
		})
		if err != nil {
			logger.Error("failed to initialize sheets client", log.FieldError, err)
			os.Exit(1)
		}
		writer = client
		logger.Info("sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		writer = exportmem.New()
		logger.Info("sheets not configured, exporting to memory")
	}

	finance := services.NewFinanceService(store, nil, logger)
	exportWorker := worker.NewExportWorker(amqpClient, finance, writer, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := amqpClient.Close(); err != nil {
			logger.Error("amqp close error", log.FieldError, err)
		}
		if err := store.Close(); err != nil {
			logger.Error("store close error", log.FieldError, err)
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := exportWorker.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Error("worker failed", log.FieldError, err)
		os.Exit(1)
	}
	cli.WaitForShutdown(ctx, done)
}
