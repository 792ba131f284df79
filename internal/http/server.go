// Package http exposes the JSON API: dashboard aggregates, the
// transaction ledger, savings goals and the raw settings buckets.
package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/stats"
	"fintrack/internal/storage"
)

type Server struct {
	http.Server

	finance *services.FinanceService
	goals   *services.GoalService
	store   storage.Store
	logger  *log.Logger

	rateLimiter *rateLimiter

	// Dashboard aggregates are cheap but recomputed on every poll from
	// the UI, so they get a short-TTL cache purged on every write.
	statsCache      *cache.LRU[stats.DashboardStats]
	historyCache    *cache.LRU[[]stats.BalancePoint]
	categoriesCache *cache.LRU[[]stats.CategoryExpense]

	shutdownOnce sync.Once
}

// Options carries the server dependencies.
type Options struct {
	Addr     string
	Finance  *services.FinanceService
	Goals    *services.GoalService
	Store    storage.Store
	Logger   *log.Logger
	CacheTTL time.Duration
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		finance:         opts.Finance,
		goals:           opts.Goals,
		store:           opts.Store,
		logger:          opts.Logger.WithComponent(log.ComponentHTTP),
		rateLimiter:     newRateLimiter(),
		statsCache:      cache.NewLRU[stats.DashboardStats](8, opts.CacheTTL),
		historyCache:    cache.NewLRU[[]stats.BalancePoint](8, opts.CacheTTL),
		categoriesCache: cache.NewLRU[[]stats.CategoryExpense](8, opts.CacheTTL),
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/dashboard/stats", s.withMiddleware(s.handleDashboardStats))
	mux.HandleFunc("GET /api/dashboard/balance-history", s.withMiddleware(s.handleBalanceHistory))
	mux.HandleFunc("GET /api/dashboard/categories", s.withMiddleware(s.handleCategoryExpenses))

	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("DELETE /api/transactions", s.withMiddleware(s.handleClearTransactions))

	mux.HandleFunc("GET /api/goals", s.withMiddleware(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.withMiddleware(s.handleCreateGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.withMiddleware(s.handleDeleteGoal))
	mux.HandleFunc("POST /api/goals/{id}/deposit", s.withMiddleware(s.handleGoalDeposit))

	mux.HandleFunc("GET /api/budgets", s.withMiddleware(s.handleGetBudgets))
	mux.HandleFunc("PUT /api/budgets", s.withMiddleware(s.handlePutBudgets))
	mux.HandleFunc("GET /api/budgets/status", s.withMiddleware(s.handleBudgetStatus))
	mux.HandleFunc("GET /api/credit-cards", s.withMiddleware(s.handleGetCreditCards))
	mux.HandleFunc("PUT /api/credit-cards", s.withMiddleware(s.handlePutCreditCards))
	mux.HandleFunc("GET /api/recurrences", s.withMiddleware(s.handleGetRecurrences))
	mux.HandleFunc("PUT /api/recurrences", s.withMiddleware(s.handlePutRecurrences))
	mux.HandleFunc("GET /api/settings", s.withMiddleware(s.handleGetSettings))
	mux.HandleFunc("PUT /api/settings", s.withMiddleware(s.handlePutSettings))

	return s
}

// invalidateAggregates drops the cached dashboard figures after a write.
func (s *Server) invalidateAggregates() {
	s.statsCache.Purge()
	s.historyCache.Purge()
	s.categoriesCache.Purge()
}

// Shutdown stops the server and the rate limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReady verifies storage is reachable before reporting ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.Get(r.Context(), storage.BucketSettings); err != nil && !errors.Is(err, storage.ErrBucketNotFound) {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
