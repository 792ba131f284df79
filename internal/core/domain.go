package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

type (
	TransactionType string

	Frequency string

	// Transaction is a single ledger entry. Entries are immutable once
	// created; the only destructive operation is a bulk clear.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Date        time.Time       `json:"date"`
		CreatedAt   time.Time       `json:"createdAt"`
	}

	// Goal is a savings goal with an append-only deposit history.
	// CurrentAmount is maintained as min(sum(History), TargetAmount);
	// History records the amounts actually given, unclamped.
	Goal struct {
		ID            string        `json:"id"`
		Name          string        `json:"name"`
		Icon          string        `json:"icon"`
		TargetAmount  Money         `json:"targetAmount"`
		CurrentAmount Money         `json:"currentAmount"`
		Deadline      *time.Time    `json:"deadline,omitempty"`
		Color         string        `json:"color"`
		CreatedAt     time.Time     `json:"createdAt"`
		History       []GoalDeposit `json:"history"`
	}

	GoalDeposit struct {
		ID          string    `json:"id"`
		Amount      Money     `json:"amount"`
		Date        time.Time `json:"date"`
		Type        string    `json:"type"` // only "deposit" is produced today
		Description string    `json:"description,omitempty"`
	}

	CreditCard struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Limit       Money  `json:"limit"`
		ClosingDay  int    `json:"closingDay"`
		DueDay      int    `json:"dueDay"`
		Color       string `json:"color"`
		CurrentBill Money  `json:"currentBill"`
	}

	Budget struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Limit    Money  `json:"limit"`
		Month    string `json:"month"` // YYYY-MM
	}

	// Recurrence is a template that the recurring worker materializes
	// into transactions on its schedule.
	Recurrence struct {
		ID        string              `json:"id"`
		Template  TransactionTemplate `json:"transaction"`
		Frequency Frequency           `json:"frequency"`
		NextDate  time.Time           `json:"nextDate"`
		EndDate   *time.Time          `json:"endDate,omitempty"`
		Active    bool                `json:"active"`
		LastRun   time.Time           `json:"lastRun"`
		CreatedAt time.Time           `json:"createdAt"`
	}

	// TransactionTemplate is a Transaction without identity or dates.
	TransactionTemplate struct {
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
	}

	Settings struct {
		Currency        string `json:"currency"`
		FirstDayOfMonth int    `json:"firstDayOfMonth"`
		Notifications   bool   `json:"notifications"`
		Theme           string `json:"theme"`
	}
)

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrEmptyDescription = errors.New("description is required")
	ErrEmptyCategory    = errors.New("category is required")
	ErrEmptyName        = errors.New("name is required")
	ErrZeroDate         = errors.New("date is required")
	ErrInvalidType      = errors.New("type must be income or expense")
	ErrInvalidFrequency = errors.New("frequency must be daily, weekly, monthly or yearly")
	ErrInvalidTarget    = errors.New("target amount must be greater than zero")
)

// IsValid reports whether the transaction type is one of the two known kinds.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

func (f Frequency) IsValid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	default:
		return false
	}
}

// Signed returns the amount with the sign implied by the type: income
// adds to a balance, expense subtracts.
func (t Transaction) Signed() int64 {
	if t.Type == Expense {
		return -t.Amount.Cents
	}
	return t.Amount.Cents
}

// Validate checks every field and reports all problems at once, so a
// caller can surface the complete list instead of fixing one at a time.
func (t Transaction) Validate() error {
	var errs []error
	if !t.Type.IsValid() {
		errs = append(errs, ErrInvalidType)
	}
	if t.Amount.Cents <= 0 {
		errs = append(errs, ErrInvalidAmount)
	}
	if strings.TrimSpace(t.Description) == "" {
		errs = append(errs, ErrEmptyDescription)
	}
	if strings.TrimSpace(t.Category) == "" {
		errs = append(errs, ErrEmptyCategory)
	}
	if t.Date.IsZero() {
		errs = append(errs, ErrZeroDate)
	}
	return errors.Join(errs...)
}

func (tpl TransactionTemplate) Validate() error {
	var errs []error
	if !tpl.Type.IsValid() {
		errs = append(errs, ErrInvalidType)
	}
	if tpl.Amount.Cents <= 0 {
		errs = append(errs, ErrInvalidAmount)
	}
	if strings.TrimSpace(tpl.Description) == "" {
		errs = append(errs, ErrEmptyDescription)
	}
	if strings.TrimSpace(tpl.Category) == "" {
		errs = append(errs, ErrEmptyCategory)
	}
	return errors.Join(errs...)
}

func (r Recurrence) Validate() error {
	var errs []error
	if err := r.Template.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !r.Frequency.IsValid() {
		errs = append(errs, ErrInvalidFrequency)
	}
	if r.NextDate.IsZero() {
		errs = append(errs, ErrZeroDate)
	}
	if r.EndDate != nil && r.EndDate.Before(r.NextDate) {
		errs = append(errs, errors.New("end date must not be before next date"))
	}
	return errors.Join(errs...)
}
