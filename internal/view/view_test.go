package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
)

func day(d int) time.Time {
	return time.Date(2025, 3, d, 12, 0, 0, 0, time.UTC)
}

func sample() []core.Transaction {
	return []core.Transaction{
		{ID: "a", Type: core.Income, Amount: core.Money{Cents: 5000}, Description: "Salary", Category: "Work", Date: day(1), CreatedAt: day(1)},
		{ID: "b", Type: core.Expense, Amount: core.Money{Cents: 20000}, Description: "Rent March", Category: "Housing", Date: day(2), CreatedAt: day(2)},
		{ID: "c", Type: core.Expense, Amount: core.Money{Cents: 5000}, Description: "Groceries", Category: "Food", Date: day(3), CreatedAt: day(3)},
	}
}

func ids(txs []core.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}

func TestSort(t *testing.T) {
	cases := []struct {
		key  SortKey
		want []string
	}{
		{SortDateDesc, []string{"c", "b", "a"}},
		{SortDateAsc, []string{"a", "b", "c"}},
		{SortValueDesc, []string{"b", "a", "c"}}, // magnitude only, sign ignored
		{SortValueAsc, []string{"a", "c", "b"}},
		{SortCategory, []string{"c", "b", "a"}},
		{SortType, []string{"a", "b", "c"}}, // income sorts before expense
		{SortKey("bogus"), []string{"c", "b", "a"}}, // falls back to date-desc
	}
	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Sort(sample(), tc.key)))
		})
	}
}

func TestSortIsStableAndPure(t *testing.T) {
	in := sample()
	out := Sort(in, SortValueAsc)
	assert.Equal(t, []string{"a", "b", "c"}, ids(in), "input order preserved")
	// a (5000 income) and c (5000 expense) tie on magnitude; input order wins.
	assert.Equal(t, []string{"a", "c", "b"}, ids(out))
}

func TestFilter(t *testing.T) {
	cases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"off", Filter{}, []string{"a", "b", "c"}},
		{"all is off", Filter{Type: "all", Category: "all"}, []string{"a", "b", "c"}},
		{"search description", Filter{Search: "rent"}, []string{"b"}},
		{"search category", Filter{Search: "foo"}, []string{"c"}},
		{"by type", Filter{Type: "expense"}, []string{"b", "c"}},
		{"by category", Filter{Category: "Work"}, []string{"a"}},
		{"conjunctive", Filter{Search: "g", Type: "expense"}, []string{"b", "c"}},
		{"no match", Filter{Search: "zzz"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(tc.filter.Apply(sample())))
		})
	}
}

func TestWithRunningBalance(t *testing.T) {
	// Display order is newest first; balances must still follow chronology.
	all := sample()
	in := Sort(all, SortDateDesc)
	out := WithRunningBalance(all, in)
	require.Len(t, out, 3)

	byID := make(map[string]int64)
	for _, e := range out {
		byID[e.ID] = e.Balance.Cents
	}
	assert.Equal(t, int64(5000), byID["a"])
	assert.Equal(t, int64(-15000), byID["b"])
	assert.Equal(t, int64(-20000), byID["c"])

	// Annotation keeps the display order.
	assert.Equal(t, "c", out[0].ID)
}

func TestWithRunningBalanceUsesFullLedger(t *testing.T) {
	// Filtering must not change the balances shown: they come from the
	// whole ledger, not the visible subset.
	all := sample()
	viewed := Filter{Category: "Food"}.Apply(all)
	out := WithRunningBalance(all, viewed)
	require.Len(t, out, 1)
	assert.Equal(t, "c", out[0].ID)
	assert.Equal(t, int64(-20000), out[0].Balance.Cents)
}

func TestWithRunningBalanceSameDayTieBreak(t *testing.T) {
	txs := []core.Transaction{
		{ID: "x", Type: core.Income, Amount: core.Money{Cents: 100}, Date: day(1), CreatedAt: day(1).Add(time.Minute)},
		{ID: "y", Type: core.Income, Amount: core.Money{Cents: 100}, Date: day(1), CreatedAt: day(1)},
	}
	out := WithRunningBalance(txs, txs)
	byID := make(map[string]int64)
	for _, e := range out {
		byID[e.ID] = e.Balance.Cents
	}
	assert.Equal(t, int64(100), byID["y"], "earlier creation comes first")
	assert.Equal(t, int64(200), byID["x"])
}
