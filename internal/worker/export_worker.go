// Package worker contains the background consumers: the export worker
// mirrors ledger entries to the spreadsheet as events arrive.
package worker

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/export"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// ExportWorker consumes ledger events and mirrors the referenced
// transactions through a LedgerWriter. Events carry only ids; the worker
// reads the authoritative record from storage.
type ExportWorker struct {
	client  *amqp.Client
	finance *services.FinanceService
	writer  export.LedgerWriter
	logger  *log.Logger
}

func NewExportWorker(client *amqp.Client, finance *services.FinanceService, writer export.LedgerWriter, logger *log.Logger) *ExportWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ExportWorker{
		client:  client,
		finance: finance,
		writer:  writer,
		logger:  logger.WithComponent(log.ComponentWorker),
	}
}

// Run consumes events until ctx is cancelled.
func (w *ExportWorker) Run(ctx context.Context) error {
	w.logger.InfoContext(ctx, "export worker starting")
	return w.client.ConsumeLedgerEvents(ctx, func(event *amqp.LedgerEvent) error {
		return w.HandleEvent(ctx, event)
	})
}

// HandleEvent mirrors the transaction referenced by one event. Deposit
// events only mark goal progress and carry nothing to export.
func (w *ExportWorker) HandleEvent(ctx context.Context, event *amqp.LedgerEvent) error {
	switch event.Kind {
	case amqp.KindTransactionCreated:
		return w.exportTransaction(ctx, event.ID)
	case amqp.KindGoalDeposit:
		w.logger.InfoContext(ctx, "goal deposit observed", log.FieldGoalID, event.ID)
		return nil
	default:
		// Unknown kinds are dropped, not requeued.
		w.logger.Warn("ignoring unknown event kind", log.FieldEventKind, event.Kind)
		return nil
	}
}

func (w *ExportWorker) exportTransaction(ctx context.Context, id string) error {
	tx, err := w.finance.GetTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("load transaction %s: %w", id, err)
	}

	ref, err := w.writer.Append(ctx, tx)
	if err != nil {
		return fmt.Errorf("mirror transaction %s: %w", id, err)
	}

	w.logger.InfoContext(ctx, "transaction mirrored",
		log.FieldTxID, id, log.FieldSheetsRef, ref)
	return nil
}

// ExportAll mirrors the whole ledger in one pass, rate limited between
// rows. Used to seed a fresh spreadsheet before live consumption starts.
func (w *ExportWorker) ExportAll(ctx context.Context, pause time.Duration) (int, error) {
	txs := w.finance.ListTransactions(ctx)
	exported := 0
	for _, tx := range txs {
		if err := ctx.Err(); err != nil {
			return exported, err
		}
		if _, err := w.writer.Append(ctx, tx); err != nil {
			return exported, fmt.Errorf("mirror transaction %s: %w", tx.ID, err)
		}
		exported++
		if pause > 0 {
			time.Sleep(pause)
		}
	}
	w.logger.InfoContext(ctx, "backlog export complete", "exported", exported)
	return exported, nil
}
