package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// RecurringProcessor materializes due recurrences into ledger entries.
type RecurringProcessor struct {
	store   storage.Store
	finance *FinanceService
	logger  *log.Logger
}

func NewRecurringProcessor(store storage.Store, finance *FinanceService, logger *log.Logger) *RecurringProcessor {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &RecurringProcessor{
		store:   store,
		finance: finance,
		logger:  logger.WithComponent(log.ComponentWorker),
	}
}

// ProcessDue creates one transaction per elapsed period for every active
// recurrence whose next date has passed, then advances the schedule. A
// recurrence whose end date has passed is deactivated. Returns the number
// of transactions created.
func (p *RecurringProcessor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if p.store == nil || p.finance == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	recurrences := storage.Load(ctx, p.store, p.logger.Logger, storage.BucketRecurrences, []core.Recurrence{})

	p.logger.InfoContext(ctx, "processing recurrences",
		"total", len(recurrences),
		"processing_date", now.Format("2006-01-02"))

	created := 0
	changed := false
	for i := range recurrences {
		wasActive := recurrences[i].Active
		n, err := p.processOne(ctx, &recurrences[i], now)
		if err != nil {
			p.logger.ErrorContext(ctx, "failed to process recurrence",
				log.FieldRecurrence, recurrences[i].ID, log.FieldError, err)
			continue
		}
		if n > 0 || wasActive != recurrences[i].Active {
			changed = true
			created += n
		}
	}

	if changed {
		if err := storage.Save(ctx, p.store, p.logger.Logger, storage.BucketRecurrences, recurrences); err != nil {
			return created, fmt.Errorf("save recurrences: %w", err)
		}
	}

	p.logger.InfoContext(ctx, "recurrence processing complete",
		"created", created, "total_checked", len(recurrences))
	return created, nil
}

func (p *RecurringProcessor) processOne(ctx context.Context, r *core.Recurrence, now time.Time) (int, error) {
	if !r.Active {
		return 0, nil
	}
	if r.EndDate != nil && now.After(*r.EndDate) {
		r.Active = false
		p.logger.InfoContext(ctx, "recurrence expired", log.FieldRecurrence, r.ID)
		return 0, nil
	}
	if r.NextDate.After(now) {
		return 0, nil
	}

	scheduler, err := GetScheduler(r.Frequency)
	if err != nil {
		return 0, err
	}

	created := 0
	for !r.NextDate.After(now) {
		if r.EndDate != nil && r.NextDate.After(*r.EndDate) {
			r.Active = false
			break
		}

		tx := core.Transaction{
			Type:        r.Template.Type,
			Amount:      r.Template.Amount,
			Description: r.Template.Description,
			Category:    r.Template.Category,
			Date:        r.NextDate,
		}
		if _, err := p.finance.AddTransaction(ctx, tx); err != nil {
			return created, fmt.Errorf("create transaction from template: %w", err)
		}

		r.LastRun = now
		r.NextDate = scheduler.Next(r.NextDate)
		created++

		p.logger.InfoContext(ctx, "created transaction from recurrence",
			log.FieldRecurrence, r.ID,
			log.FieldCategory, tx.Category,
			log.FieldAmountCents, tx.Amount.Cents,
			"frequency", r.Frequency)
	}
	return created, nil
}
