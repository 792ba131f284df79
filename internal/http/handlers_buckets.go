package http

import (
	"encoding/json"
	"net/http"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/stats"
	"fintrack/internal/storage"
)

// The remaining buckets are stored and served whole. Reads default on
// absence; writes replace the bucket after a shape check.

func (s *Server) handleGetBudgets(w http.ResponseWriter, r *http.Request) {
	budgets := storage.Load(r.Context(), s.store, s.logger.Logger, storage.BucketBudgets, []core.Budget{})
	writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) handlePutBudgets(w http.ResponseWriter, r *http.Request) {
	var budgets []core.Budget
	if err := json.NewDecoder(r.Body).Decode(&budgets); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := storage.Save(r.Context(), s.store, s.logger.Logger, storage.BucketBudgets, budgets); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, budgets)
}

// handleBudgetStatus joins the stored budgets with actual spending.
func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	budgets := storage.Load(r.Context(), s.store, s.logger.Logger, storage.BucketBudgets, []core.Budget{})
	txs := s.finance.ListTransactions(r.Context())
	writeJSON(w, http.StatusOK, stats.Budgets(budgets, txs, time.Now()))
}

func (s *Server) handleGetCreditCards(w http.ResponseWriter, r *http.Request) {
	cards := storage.Load(r.Context(), s.store, s.logger.Logger, storage.BucketCreditCards, []core.CreditCard{})
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handlePutCreditCards(w http.ResponseWriter, r *http.Request) {
	var cards []core.CreditCard
	if err := json.NewDecoder(r.Body).Decode(&cards); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := storage.Save(r.Context(), s.store, s.logger.Logger, storage.BucketCreditCards, cards); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleGetRecurrences(w http.ResponseWriter, r *http.Request) {
	recs := storage.Load(r.Context(), s.store, s.logger.Logger, storage.BucketRecurrences, []core.Recurrence{})
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handlePutRecurrences(w http.ResponseWriter, r *http.Request) {
	var recs []core.Recurrence
	if err := json.NewDecoder(r.Body).Decode(&recs); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	for i := range recs {
		if err := recs[i].Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if err := storage.Save(r.Context(), s.store, s.logger.Logger, storage.BucketRecurrences, recs); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings := storage.Load(r.Context(), s.store, s.logger.Logger, storage.BucketSettings, defaultSettings())
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings core.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := storage.Save(r.Context(), s.store, s.logger.Logger, storage.BucketSettings, settings); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func defaultSettings() core.Settings {
	return core.Settings{
		Currency:        "EUR",
		FirstDayOfMonth: 1,
		Notifications:   true,
		Theme:           "system",
	}
}
