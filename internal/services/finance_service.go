// Package services orchestrates the domain operations over storage and
// the event bus.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// FinanceService owns the transaction ledger. Writes go to storage first;
// event publishing is best effort and never fails the request.
type FinanceService struct {
	store      storage.Store
	amqpClient *amqp.Client
	logger     *log.Logger
}

func NewFinanceService(store storage.Store, amqpClient *amqp.Client, logger *log.Logger) *FinanceService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &FinanceService{
		store:      store,
		amqpClient: amqpClient,
		logger:     logger.WithComponent(log.ComponentFinance),
	}
}

// AddTransaction validates, persists and announces a new ledger entry.
// The id and creation time are assigned here.
func (s *FinanceService) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	tx.ID = uuid.NewString()
	tx.CreatedAt = time.Now()
	if tx.Date.IsZero() {
		tx.Date = tx.CreatedAt
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	txs := storage.Load(ctx, s.store, s.logger.Logger, storage.BucketTransactions, []core.Transaction{})
	txs = append(txs, tx)
	if err := storage.Save(ctx, s.store, s.logger.Logger, storage.BucketTransactions, txs); err != nil {
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}

	if err := s.amqpClient.PublishLedgerEvent(ctx, amqp.KindTransactionCreated, tx.ID); err != nil {
		// Entry is already persisted; the mirror catches up on its own.
		s.logger.ErrorContext(ctx, "failed to publish transaction event",
			log.FieldTxID, tx.ID, log.FieldError, err)
	}

	s.logger.InfoContext(ctx, "transaction added",
		log.FieldTxID, tx.ID,
		log.FieldCategory, tx.Category,
		log.FieldAmountCents, tx.Amount.Cents)
	return tx, nil
}

// ListTransactions returns every ledger entry. A missing or unreadable
// bucket yields an empty ledger.
func (s *FinanceService) ListTransactions(ctx context.Context) []core.Transaction {
	return storage.Load(ctx, s.store, s.logger.Logger, storage.BucketTransactions, []core.Transaction{})
}

// GetTransaction looks one entry up by id.
func (s *FinanceService) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	for _, tx := range s.ListTransactions(ctx) {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, ErrTransactionNotFound
}

// ClearTransactions wipes the ledger. Entries are otherwise immutable.
func (s *FinanceService) ClearTransactions(ctx context.Context) error {
	if err := storage.Save(ctx, s.store, s.logger.Logger, storage.BucketTransactions, []core.Transaction{}); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	s.logger.InfoContext(ctx, "transactions cleared")
	return nil
}

// Close releases storage and broker connections.
func (s *FinanceService) Close() error {
	var errs []error
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}
	return errors.Join(errs...)
}
