package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/view"
)

// createTransactionRequest is the write payload. Amount is a decimal
// string so clients never send floats for money.
type createTransactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

// handleListTransactions returns the ledger shaped for display. Query
// parameters: sort, search, type, category, and balance=true to annotate
// each row with its running balance.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	all := s.finance.ListTransactions(r.Context())
	txs := view.Filter{
		Search:   q.Get("search"),
		Type:     q.Get("type"),
		Category: q.Get("category"),
	}.Apply(all)
	txs = view.Sort(txs, view.SortKey(q.Get("sort")))

	if q.Get("balance") == "true" {
		// Balances are always relative to the full ledger, even when the
		// view is filtered.
		writeJSON(w, http.StatusOK, view.WithRunningBalance(all, txs))
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	tx := core.Transaction{
		Type:        core.TransactionType(strings.TrimSpace(req.Type)),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
	}

	if cents, err := core.ParseDecimalToCents(req.Amount); err == nil {
		tx.Amount = core.Money{Cents: cents}
	}
	if req.Date != "" {
		if d, err := parseDate(req.Date); err == nil {
			tx.Date = d
		}
	}
	// Zero-valued fields fall through to Validate, which reports every
	// problem in one response.

	created, err := s.finance.AddTransaction(r.Context(), tx)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.invalidateAggregates()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleClearTransactions(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.ClearTransactions(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.invalidateAggregates()
	w.WriteHeader(http.StatusNoContent)
}
