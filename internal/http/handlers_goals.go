package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

type createGoalRequest struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Target   string `json:"targetAmount"`
	Deadline string `json:"deadline"`
	Color    string `json:"color"`
}

type depositRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// goalView decorates a goal with its derived planning figures.
type goalView struct {
	core.Goal
	Progress              float64    `json:"progress"`
	Remaining             core.Money `json:"remaining"`
	SuggestedContribution core.Money `json:"suggestedContribution"`
}

func toGoalView(g core.Goal, now time.Time) goalView {
	return goalView{
		Goal:                  g,
		Progress:              ledger.Progress(g),
		Remaining:             ledger.Remaining(g),
		SuggestedContribution: ledger.SuggestedContribution(g, now),
	}
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	goals := s.goals.ListGoals(r.Context())
	out := make([]goalView, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalView(g, now))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	params := ledger.NewGoalParams{
		Name:  strings.TrimSpace(req.Name),
		Icon:  req.Icon,
		Color: req.Color,
	}
	if cents, err := core.ParseDecimalToCents(req.Target); err == nil {
		params.Target = core.Money{Cents: cents}
	}
	if req.Deadline != "" {
		if d, err := parseDate(req.Deadline); err == nil {
			params.Deadline = &d
		}
	}

	g, err := s.goals.CreateGoal(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalView(g, time.Now()))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	err := s.goals.DeleteGoal(r.Context(), r.PathValue("id"))
	if errors.Is(err, ledger.ErrGoalNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGoalDeposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	g, err := s.goals.Deposit(r.Context(), r.PathValue("id"), core.Money{Cents: cents}, req.Description)
	if errors.Is(err, ledger.ErrGoalNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalView(g, time.Now()))
}
