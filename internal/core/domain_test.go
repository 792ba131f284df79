package core

import (
	"errors"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		ID:          "t1",
		Type:        Expense,
		Amount:      Money{Cents: 1250},
		Description: "groceries",
		Category:    "Food",
		Date:        time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		CreatedAt:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestTransactionValidate(t *testing.T) {
	if err := validTransaction().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -5} }, ErrInvalidAmount},
		{"blank description", func(tx *Transaction) { tx.Description = "  " }, ErrEmptyDescription},
		{"blank category", func(tx *Transaction) { tx.Category = "" }, ErrEmptyCategory},
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, ErrZeroDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTransaction()
			tc.mutate(&tx)
			err := tx.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v in %v", tc.want, err)
			}
		})
	}
}

func TestTransactionValidateCollectsAllErrors(t *testing.T) {
	tx := Transaction{Type: "nope"}
	err := tx.Validate()
	for _, want := range []error{ErrInvalidType, ErrInvalidAmount, ErrEmptyDescription, ErrEmptyCategory, ErrZeroDate} {
		if !errors.Is(err, want) {
			t.Fatalf("expected %v in %v", want, err)
		}
	}
}

func TestTransactionSigned(t *testing.T) {
	tx := validTransaction()
	if got := tx.Signed(); got != -1250 {
		t.Fatalf("expense signed = %d, want -1250", got)
	}
	tx.Type = Income
	if got := tx.Signed(); got != 1250 {
		t.Fatalf("income signed = %d, want 1250", got)
	}
}

func TestRecurrenceValidate(t *testing.T) {
	next := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := next.AddDate(0, -1, 0)
	good := Recurrence{
		Template: TransactionTemplate{
			Type:        Expense,
			Amount:      Money{Cents: 3290},
			Description: "streaming",
			Category:    "Leisure",
		},
		Frequency: Monthly,
		NextDate:  next,
		Active:    true,
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := good
	bad.Frequency = "fortnightly"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}

	bad = good
	bad.EndDate = &end
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for end date before next date")
	}
}
