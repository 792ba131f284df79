// Package view prepares transaction lists for presentation: ordering,
// conjunctive filtering and running-balance annotation. Everything here is
// pure; inputs are never mutated.
package view

import (
	"slices"
	"strings"

	"fintrack/internal/core"
)

// SortKey selects one of the fixed orderings.
type SortKey string

const (
	SortDateDesc  SortKey = "date-desc"
	SortDateAsc   SortKey = "date-asc"
	SortValueDesc SortKey = "value-desc"
	SortValueAsc  SortKey = "value-asc"
	SortCategory  SortKey = "category"
	SortType      SortKey = "type"
)

// IsValid reports whether the key names a known ordering.
func (k SortKey) IsValid() bool {
	switch k {
	case SortDateDesc, SortDateAsc, SortValueDesc, SortValueAsc, SortCategory, SortType:
		return true
	default:
		return false
	}
}

// Sort returns a new slice ordered by the given key. Value orderings
// compare amount magnitudes and ignore sign, so a 200 expense outranks a
// 50 income under value-desc. Unknown keys fall back to date-desc. The
// sort is stable, so equal elements keep their input order.
func Sort(txs []core.Transaction, key SortKey) []core.Transaction {
	out := make([]core.Transaction, len(txs))
	copy(out, txs)

	var cmp func(a, b core.Transaction) int
	switch key {
	case SortDateAsc:
		cmp = func(a, b core.Transaction) int { return a.Date.Compare(b.Date) }
	case SortValueDesc:
		cmp = func(a, b core.Transaction) int { return compareInt64(b.Amount.Cents, a.Amount.Cents) }
	case SortValueAsc:
		cmp = func(a, b core.Transaction) int { return compareInt64(a.Amount.Cents, b.Amount.Cents) }
	case SortCategory:
		cmp = func(a, b core.Transaction) int { return strings.Compare(a.Category, b.Category) }
	case SortType:
		cmp = func(a, b core.Transaction) int { return typeRank(a.Type) - typeRank(b.Type) }
	default:
		cmp = func(a, b core.Transaction) int { return b.Date.Compare(a.Date) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// typeRank puts income before expense under the type ordering.
func typeRank(t core.TransactionType) int {
	if t == core.Income {
		return 0
	}
	return 1
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Filter is a conjunctive predicate over transactions. Zero-valued fields
// match everything; Type and Category also accept "all" as the off state.
type Filter struct {
	Search   string
	Type     string
	Category string
}

func disabled(v string) bool {
	return v == "" || v == "all"
}

// Matches reports whether the transaction passes every active criterion.
// Search is case-insensitive over description and category.
func (f Filter) Matches(tx core.Transaction) bool {
	if s := strings.TrimSpace(f.Search); s != "" {
		needle := strings.ToLower(s)
		if !strings.Contains(strings.ToLower(tx.Description), needle) &&
			!strings.Contains(strings.ToLower(tx.Category), needle) {
			return false
		}
	}
	if !disabled(f.Type) && string(tx.Type) != f.Type {
		return false
	}
	if !disabled(f.Category) && tx.Category != f.Category {
		return false
	}
	return true
}

// Apply returns the transactions that pass the filter, in input order.
func (f Filter) Apply(txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Entry is a transaction annotated with the running balance after it.
type Entry struct {
	core.Transaction
	Balance core.Money `json:"balance"`
}

// WithRunningBalance annotates each viewed transaction with the
// chronological cumulative balance up to and including it, computed over
// the FULL ledger so a filtered view still shows true balances. One pass
// builds an id-to-balance lookup; the view is then mapped through it.
// Ties on date break by creation time, then id, so the annotation is
// deterministic.
func WithRunningBalance(all, viewed []core.Transaction) []Entry {
	chrono := make([]core.Transaction, len(all))
	copy(chrono, all)
	slices.SortStableFunc(chrono, func(a, b core.Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	balances := make(map[string]int64, len(chrono))
	var running int64
	for _, tx := range chrono {
		running += tx.Signed()
		balances[tx.ID] = running
	}

	out := make([]Entry, len(viewed))
	for i, tx := range viewed {
		out[i] = Entry{Transaction: tx, Balance: core.Money{Cents: balances[tx.ID]}}
	}
	return out
}
