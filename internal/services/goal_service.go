package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// GoalService persists savings goals and announces deposits. The goal
// arithmetic itself lives in the ledger package.
type GoalService struct {
	store      storage.Store
	amqpClient *amqp.Client
	logger     *log.Logger
}

func NewGoalService(store storage.Store, amqpClient *amqp.Client, logger *log.Logger) *GoalService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &GoalService{
		store:      store,
		amqpClient: amqpClient,
		logger:     logger.WithComponent(log.ComponentGoals),
	}
}

func (s *GoalService) ListGoals(ctx context.Context) []core.Goal {
	return storage.Load(ctx, s.store, s.logger.Logger, storage.BucketGoals, []core.Goal{})
}

func (s *GoalService) GetGoal(ctx context.Context, id string) (core.Goal, error) {
	for _, g := range s.ListGoals(ctx) {
		if g.ID == id {
			return g, nil
		}
	}
	return core.Goal{}, ledger.ErrGoalNotFound
}

// CreateGoal validates and persists a new goal.
func (s *GoalService) CreateGoal(ctx context.Context, params ledger.NewGoalParams) (core.Goal, error) {
	g, err := ledger.NewGoal(params, time.Now())
	if err != nil {
		return core.Goal{}, err
	}

	goals := append(s.ListGoals(ctx), g)
	if err := storage.Save(ctx, s.store, s.logger.Logger, storage.BucketGoals, goals); err != nil {
		return core.Goal{}, fmt.Errorf("save goals: %w", err)
	}

	s.logger.InfoContext(ctx, "goal created", log.FieldGoalID, g.ID)
	return g, nil
}

// Deposit records a contribution and publishes a goal_deposit event.
func (s *GoalService) Deposit(ctx context.Context, goalID string, amount core.Money, description string) (core.Goal, error) {
	goals, err := ledger.Deposit(s.ListGoals(ctx), goalID, amount, description, time.Now())
	if err != nil {
		return core.Goal{}, err
	}
	if err := storage.Save(ctx, s.store, s.logger.Logger, storage.BucketGoals, goals); err != nil {
		return core.Goal{}, fmt.Errorf("save goals: %w", err)
	}

	if err := s.amqpClient.PublishLedgerEvent(ctx, amqp.KindGoalDeposit, goalID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish deposit event",
			log.FieldGoalID, goalID, log.FieldError, err)
	}

	var updated core.Goal
	for _, g := range goals {
		if g.ID == goalID {
			updated = g
			break
		}
	}
	s.logger.InfoContext(ctx, "goal deposit recorded",
		log.FieldGoalID, goalID, log.FieldAmountCents, amount.Cents)
	return updated, nil
}

// DeleteGoal removes a goal and its history.
func (s *GoalService) DeleteGoal(ctx context.Context, goalID string) error {
	goals, err := ledger.Delete(s.ListGoals(ctx), goalID)
	if err != nil {
		return err
	}
	if err := storage.Save(ctx, s.store, s.logger.Logger, storage.BucketGoals, goals); err != nil {
		return fmt.Errorf("save goals: %w", err)
	}
	s.logger.InfoContext(ctx, "goal deleted", log.FieldGoalID, goalID)
	return nil
}
