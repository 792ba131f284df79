package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cli"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("starting recurring-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	store := cli.InitStore(logger, cfg)
	amqpClient := cli.InitAMQP(logger, cfg)

	finance := services.NewFinanceService(store, amqpClient, logger)
	processor := services.NewRecurringProcessor(store, finance, logger)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := finance.Close(); err != nil {
			logger.Error("cleanup error", log.FieldError, err)
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Process immediately on startup, then on the configured interval.
		runOnce(gctx, processor, logger)

		ticker := time.NewTicker(cfg.RecurringInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				runOnce(gctx, processor, logger)
			}
		}
	})

	if err := g.Wait(); err != nil {
		logger.Error("worker failed", log.FieldError, err)
		os.Exit(1)
	}
	cli.WaitForShutdown(ctx, done)
}

func runOnce(ctx context.Context, processor *services.RecurringProcessor, logger *log.Logger) {
	created, err := processor.ProcessDue(ctx, time.Now())
	if err != nil {
		logger.Error("recurrence processing failed", log.FieldError, err)
		return
	}
	if created > 0 {
		logger.Info("recurrences processed", "created", created)
	}
}
