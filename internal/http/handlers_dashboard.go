package http

import (
	"net/http"
	"time"

	"fintrack/internal/stats"
)

// Cache keys carry the calendar day so a key from yesterday can never
// serve today's window.
func dayCacheKey() string {
	return time.Now().Format("2006-01-02")
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	key := dayCacheKey()
	if cached, ok := s.statsCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	txs := s.finance.ListTransactions(r.Context())
	result := stats.Dashboard(txs, time.Now())
	s.statsCache.Set(key, result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleBalanceHistory(w http.ResponseWriter, r *http.Request) {
	key := dayCacheKey()
	if cached, ok := s.historyCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	txs := s.finance.ListTransactions(r.Context())
	result := stats.BalanceHistory(txs, time.Now())
	s.historyCache.Set(key, result)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCategoryExpenses(w http.ResponseWriter, r *http.Request) {
	key := dayCacheKey()
	if cached, ok := s.categoriesCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	txs := s.finance.ListTransactions(r.Context())
	result := stats.CategoryExpenses(txs, time.Now())
	if result == nil {
		// No expenses this month renders as an empty list, not null.
		result = []stats.CategoryExpense{}
	}
	s.categoriesCache.Set(key, result)
	writeJSON(w, http.StatusOK, result)
}
