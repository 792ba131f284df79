// Package stats is the aggregation engine: pure functions that derive
// dashboard figures from the transaction ledger. Every function takes the
// reference instant explicitly so results are deterministic and testable.
package stats

import (
	"time"

	"fintrack/internal/core"
)

// BalanceHistoryDays is the fixed length of the balance time series.
const BalanceHistoryDays = 30

// categoryPalette is assigned positionally by first-seen category order,
// cycling when there are more categories than colors. Colors are therefore
// not stable for a category across recomputations.
var categoryPalette = []string{
	"#ef4444", "#f59e0b", "#84cc16", "#06b6d4",
	"#6366f1", "#8b5cf6", "#ec4899", "#f97316",
}

type (
	DashboardStats struct {
		CurrentBalance  core.Money `json:"currentBalance"`
		MonthlyIncome   core.Money `json:"monthlyIncome"`
		MonthlyExpenses core.Money `json:"monthlyExpenses"`
		MonthlySavings  core.Money `json:"monthlySavings"`
	}

	// BalancePoint is one day of the running-balance series. Date is a
	// short dd/MM label; Balance is the exact end-of-day running balance.
	BalancePoint struct {
		Date    string     `json:"date"`
		Balance core.Money `json:"balance"`
	}

	CategoryExpense struct {
		Category   string     `json:"category"`
		Amount     core.Money `json:"amount"`
		Percentage float64    `json:"percentage"`
		Color      string     `json:"color"`
	}

	// BudgetStatus is a budget with its spending for the budget's month
	// filled in from the ledger.
	BudgetStatus struct {
		core.Budget
		Spent      core.Money `json:"spent"`
		Percentage float64    `json:"percentage"`
	}
)

// monthWindow returns the calendar-month boundaries around now:
// inclusive start, exclusive end.
func monthWindow(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// dayKey collapses an instant to its calendar day in the reference zone.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// Dashboard computes the summary statistics for the calendar month of now.
// The current balance is the signed cumulative sum over the whole ledger,
// not just the current month. An empty ledger yields all zeros.
func Dashboard(txs []core.Transaction, now time.Time) DashboardStats {
	start, end := monthWindow(now)

	var s DashboardStats
	for _, tx := range txs {
		s.CurrentBalance.Cents += tx.Signed()
		if !inWindow(tx.Date, start, end) {
			continue
		}
		switch tx.Type {
		case core.Income:
			s.MonthlyIncome.Cents += tx.Amount.Cents
		case core.Expense:
			s.MonthlyExpenses.Cents += tx.Amount.Cents
		}
	}
	s.MonthlySavings.Cents = s.MonthlyIncome.Cents - s.MonthlyExpenses.Cents
	return s
}

// BalanceHistory returns exactly BalanceHistoryDays points, one per
// calendar day, ending on the day of now. The opening balance comes from
// every transaction dated before the window; days without transactions
// carry the previous balance forward. An empty ledger yields a flat line
// at zero.
func BalanceHistory(txs []core.Transaction, now time.Time) []BalancePoint {
	loc := now.Location()
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, -(BalanceHistoryDays - 1))
	startKey := dayKey(windowStart, loc)

	running := int64(0)
	perDay := make(map[string]int64)
	for _, tx := range txs {
		key := dayKey(tx.Date, loc)
		if key < startKey {
			running += tx.Signed()
			continue
		}
		perDay[key] += tx.Signed()
	}

	points := make([]BalancePoint, 0, BalanceHistoryDays)
	for i := 0; i < BalanceHistoryDays; i++ {
		day := windowStart.AddDate(0, 0, i)
		running += perDay[dayKey(day, loc)]
		points = append(points, BalancePoint{
			Date:    day.Format("02/01"),
			Balance: core.Money{Cents: running},
		})
	}
	return points
}

// CategoryExpenses breaks the current month's expenses down by category.
// Percentages are computed against a single total; the result is empty
// when the month has no expenses, which is policy rather than an error.
// Ordering is descending by amount with first-seen order breaking ties.
func CategoryExpenses(txs []core.Transaction, now time.Time) []CategoryExpense {
	start, end := monthWindow(now)

	sums := make(map[string]int64)
	var order []string
	var total int64
	for _, tx := range txs {
		if tx.Type != core.Expense || !inWindow(tx.Date, start, end) {
			continue
		}
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		sums[tx.Category] += tx.Amount.Cents
		total += tx.Amount.Cents
	}
	if total == 0 {
		return nil
	}

	out := make([]CategoryExpense, 0, len(order))
	for i, cat := range order {
		amount := sums[cat]
		out = append(out, CategoryExpense{
			Category:   cat,
			Amount:     core.Money{Cents: amount},
			Percentage: float64(amount) / float64(total) * 100,
			Color:      categoryPalette[i%len(categoryPalette)],
		})
	}
	// Insertion order is already in place, so a stable sort preserves
	// first-seen order among equal amounts.
	sortStableByAmountDesc(out)
	return out
}

func sortStableByAmountDesc(s []CategoryExpense) {
	// Insertion sort keeps this dependency-free and stable; category
	// counts are tiny.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].Amount.Cents > s[j-1].Amount.Cents; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// Budgets fills each budget's spending from expenses whose calendar month
// (YYYY-MM) matches the budget's month. Unknown months simply report zero.
func Budgets(budgets []core.Budget, txs []core.Transaction, now time.Time) []BudgetStatus {
	spentByMonthCat := make(map[string]int64)
	for _, tx := range txs {
		if tx.Type != core.Expense {
			continue
		}
		spentByMonthCat[tx.Date.In(now.Location()).Format("2006-01")+"|"+tx.Category] += tx.Amount.Cents
	}

	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByMonthCat[b.Month+"|"+b.Category]
		st := BudgetStatus{Budget: b, Spent: core.Money{Cents: spent}}
		if b.Limit.Cents > 0 {
			st.Percentage = float64(spent) / float64(b.Limit.Cents) * 100
		}
		out = append(out, st)
	}
	return out
}
