package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/stats"
	"fintrack/internal/storage"
	"fintrack/internal/view"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	store := storage.NewMemoryStore()
	srv := NewServer(Options{
		Addr:     ":0",
		Finance:  services.NewFinanceService(store, nil, logger),
		Goals:    services.NewGoalService(store, nil, logger),
		Store:    store,
		Logger:   logger,
		CacheTTL: time.Minute,
	})
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return v
}

func addTransaction(t *testing.T, base, kind, amount, description, category string) core.Transaction {
	t.Helper()
	resp := postJSON(t, base+"/api/transactions", map[string]string{
		"type":        kind,
		"amount":      amount,
		"description": description,
		"category":    category,
		"date":        time.Now().Format("2006-01-02"),
	})
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("create transaction: status %d, body %s", resp.StatusCode, raw)
	}
	return decode[core.Transaction](t, resp)
}

func TestHealthEndpoints(t *testing.T) {
	_, ts := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d", path, resp.StatusCode)
		}
	}
}

func TestCreateAndListTransactions(t *testing.T) {
	_, ts := newTestServer(t)

	created := addTransaction(t, ts.URL, "expense", "12.34", "groceries", "Food")
	if created.ID == "" || created.Amount.Cents != 1234 {
		t.Fatalf("created = %+v", created)
	}

	resp, err := http.Get(ts.URL + "/api/transactions")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	list := decode[[]core.Transaction](t, resp)
	if len(list) != 1 || list[0].Description != "groceries" {
		t.Fatalf("list = %+v", list)
	}
}

func TestCreateTransactionReportsAllProblems(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/transactions", map[string]string{
		"type":   "transfer",
		"amount": "oops",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decode[map[string][]string](t, resp)
	if len(body["errors"]) < 3 {
		t.Fatalf("expected the full problem list, got %v", body["errors"])
	}
}

func TestListTransactionsSortFilterBalance(t *testing.T) {
	_, ts := newTestServer(t)
	addTransaction(t, ts.URL, "income", "100.00", "salary", "Work")
	addTransaction(t, ts.URL, "expense", "40.00", "dinner", "Food")
	addTransaction(t, ts.URL, "expense", "2.50", "coffee", "Food")

	resp, err := http.Get(ts.URL + "/api/transactions?sort=value-desc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	sorted := decode[[]core.Transaction](t, resp)
	if sorted[0].Description != "salary" || sorted[2].Description != "coffee" {
		t.Fatalf("sorted = %+v", sorted)
	}

	resp, err = http.Get(ts.URL + "/api/transactions?type=expense&search=coff")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	filtered := decode[[]core.Transaction](t, resp)
	if len(filtered) != 1 || filtered[0].Description != "coffee" {
		t.Fatalf("filtered = %+v", filtered)
	}

	resp, err = http.Get(ts.URL + "/api/transactions?sort=date-asc&balance=true")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	entries := decode[[]view.Entry](t, resp)
	if len(entries) != 3 {
		t.Fatalf("entries = %+v", entries)
	}
	last := entries[len(entries)-1]
	if last.Balance.Cents != 5750 {
		t.Fatalf("final running balance = %d, want 5750", last.Balance.Cents)
	}
}

func TestClearTransactions(t *testing.T) {
	_, ts := newTestServer(t)
	addTransaction(t, ts.URL, "income", "10.00", "x", "Misc")

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/transactions", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	resp, _ = http.Get(ts.URL + "/api/transactions")
	if list := decode[[]core.Transaction](t, resp); len(list) != 0 {
		t.Fatalf("expected empty ledger, got %+v", list)
	}
}

func TestDashboardStatsReflectWrites(t *testing.T) {
	_, ts := newTestServer(t)

	resp, _ := http.Get(ts.URL + "/api/dashboard/stats")
	empty := decode[stats.DashboardStats](t, resp)
	if empty.CurrentBalance.Cents != 0 {
		t.Fatalf("empty balance = %d", empty.CurrentBalance.Cents)
	}

	addTransaction(t, ts.URL, "income", "1000.00", "salary", "Work")
	addTransaction(t, ts.URL, "expense", "300.00", "rent", "Housing")
	addTransaction(t, ts.URL, "expense", "200.00", "food", "Food")

	// The write must have purged the cached zero stats.
	resp, _ = http.Get(ts.URL + "/api/dashboard/stats")
	got := decode[stats.DashboardStats](t, resp)
	if got.CurrentBalance.Cents != 50000 {
		t.Fatalf("balance = %d, want 50000", got.CurrentBalance.Cents)
	}
	if got.MonthlySavings.Cents != got.MonthlyIncome.Cents-got.MonthlyExpenses.Cents {
		t.Fatalf("savings identity broken: %+v", got)
	}
}

func TestBalanceHistoryEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	addTransaction(t, ts.URL, "income", "5.00", "x", "Misc")

	resp, _ := http.Get(ts.URL + "/api/dashboard/balance-history")
	points := decode[[]stats.BalancePoint](t, resp)
	if len(points) != stats.BalanceHistoryDays {
		t.Fatalf("points = %d, want %d", len(points), stats.BalanceHistoryDays)
	}
	if points[len(points)-1].Balance.Cents != 500 {
		t.Fatalf("last point = %d, want 500", points[len(points)-1].Balance.Cents)
	}
}

func TestCategoryEndpointEmptyIsList(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/dashboard/categories")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if string(bytes.TrimSpace(raw)) != "[]" {
		t.Fatalf("expected [] for no expenses, got %s", raw)
	}
}

func TestGoalLifecycle(t *testing.T) {
	_, ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/goals", map[string]string{
		"name":         "Vacation",
		"targetAmount": "1000.00",
		"icon":         "plane",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create goal: status %d", resp.StatusCode)
	}
	goal := decode[goalView](t, resp)
	if goal.SuggestedContribution.Cents != 10000 {
		t.Fatalf("suggested = %d, want 10000 (ten percent)", goal.SuggestedContribution.Cents)
	}

	resp = postJSON(t, fmt.Sprintf("%s/api/goals/%s/deposit", ts.URL, goal.ID), map[string]string{
		"amount": "1200.00",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deposit: status %d", resp.StatusCode)
	}
	after := decode[goalView](t, resp)
	if after.CurrentAmount.Cents != 100000 {
		t.Fatalf("current = %d, want clamp at 100000", after.CurrentAmount.Cents)
	}
	if len(after.History) != 1 || after.History[0].Amount.Cents != 120000 {
		t.Fatalf("history = %+v", after.History)
	}
	if after.Progress != 100 || after.SuggestedContribution.Cents != 0 {
		t.Fatalf("met goal: progress %v, suggested %d", after.Progress, after.SuggestedContribution.Cents)
	}

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/goals/%s", ts.URL, goal.ID), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/goals/%s", ts.URL, goal.ID), nil)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}

func TestDepositUnknownGoalReturns404(t *testing.T) {
	_, ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/goals/missing/deposit", map[string]string{"amount": "5.00"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	_, ts := newTestServer(t)

	resp, _ := http.Get(ts.URL + "/api/settings")
	settings := decode[core.Settings](t, resp)
	if settings.Currency != "EUR" || settings.FirstDayOfMonth != 1 {
		t.Fatalf("defaults = %+v", settings)
	}

	settings.Theme = "dark"
	raw, _ := json.Marshal(settings)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/settings", bytes.NewReader(raw))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	resp.Body.Close()

	resp, _ = http.Get(ts.URL + "/api/settings")
	updated := decode[core.Settings](t, resp)
	if updated.Theme != "dark" {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestBudgetStatusEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	addTransaction(t, ts.URL, "expense", "150.00", "groceries", "Food")

	month := time.Now().Format("2006-01")
	budgets := []core.Budget{{ID: "b1", Category: "Food", Limit: core.Money{Cents: 30000}, Month: month}}
	raw, _ := json.Marshal(budgets)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/budgets", bytes.NewReader(raw))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put budgets: %v", err)
	}
	resp.Body.Close()

	resp, _ = http.Get(ts.URL + "/api/budgets/status")
	status := decode[[]stats.BudgetStatus](t, resp)
	if len(status) != 1 || status[0].Spent.Cents != 15000 {
		t.Fatalf("status = %+v", status)
	}
	if status[0].Percentage != 50 {
		t.Fatalf("percentage = %v, want 50", status[0].Percentage)
	}
}
