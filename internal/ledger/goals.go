// Package ledger implements savings goals: creation, deposits with an
// append-only history, and contribution planning. Functions are pure over
// goal slices; persistence and events live in the service layer.
package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

var ErrGoalNotFound = errors.New("goal not found")

// NewGoalParams carries the user-supplied fields of a goal.
type NewGoalParams struct {
	Name     string
	Icon     string
	Target   core.Money
	Deadline *time.Time
	Color    string
}

func (p NewGoalParams) validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, core.ErrEmptyName)
	}
	if p.Target.Cents <= 0 {
		errs = append(errs, core.ErrInvalidTarget)
	}
	return errors.Join(errs...)
}

// NewGoal builds a goal with a fresh id, zero progress and empty history.
func NewGoal(p NewGoalParams, now time.Time) (core.Goal, error) {
	if err := p.validate(); err != nil {
		return core.Goal{}, err
	}
	return core.Goal{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(p.Name),
		Icon:         p.Icon,
		TargetAmount: p.Target,
		Deadline:     p.Deadline,
		Color:        p.Color,
		CreatedAt:    now,
		History:      []core.GoalDeposit{},
	}, nil
}

// Deposit records a contribution against the goal with the given id and
// returns the updated slice. The history keeps the full amount even when
// it overshoots the target; only CurrentAmount is clamped, as
// min(sum(History), TargetAmount). The input slice is not modified.
func Deposit(goals []core.Goal, goalID string, amount core.Money, description string, now time.Time) ([]core.Goal, error) {
	if amount.Cents <= 0 {
		return nil, core.ErrInvalidAmount
	}

	idx := -1
	for i := range goals {
		if goals[i].ID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrGoalNotFound
	}

	out := make([]core.Goal, len(goals))
	copy(out, goals)

	g := out[idx]
	history := make([]core.GoalDeposit, len(g.History), len(g.History)+1)
	copy(history, g.History)
	g.History = append(history, core.GoalDeposit{
		ID:          uuid.NewString(),
		Amount:      amount,
		Date:        now,
		Type:        "deposit",
		Description: description,
	})

	var sum int64
	for _, d := range g.History {
		sum += d.Amount.Cents
	}
	if sum > g.TargetAmount.Cents {
		sum = g.TargetAmount.Cents
	}
	g.CurrentAmount = core.Money{Cents: sum}

	out[idx] = g
	return out, nil
}

// Delete removes the goal with the given id. Deleting an unknown id is
// reported so callers can distinguish it from a successful removal.
func Delete(goals []core.Goal, goalID string) ([]core.Goal, error) {
	out := make([]core.Goal, 0, len(goals))
	found := false
	for _, g := range goals {
		if g.ID == goalID {
			found = true
			continue
		}
		out = append(out, g)
	}
	if !found {
		return nil, ErrGoalNotFound
	}
	return out, nil
}

// Progress returns completion as a percentage in [0, 100]. A zero
// target reads as 0% rather than dividing by zero.
func Progress(g core.Goal) float64 {
	if g.TargetAmount.Cents <= 0 {
		return 0
	}
	p := float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents) * 100
	if p > 100 {
		return 100
	}
	return p
}

// Remaining is the amount still needed to reach the target, never negative.
func Remaining(g core.Goal) core.Money {
	r := g.TargetAmount.Cents - g.CurrentAmount.Cents
	if r < 0 {
		r = 0
	}
	return core.Money{Cents: r}
}

// SuggestedContribution proposes a monthly amount. With a deadline it
// spreads the remainder over the months left, treating past or immediate
// deadlines as one month. Without a deadline it suggests 10% of the
// remainder. Both divisions round half up; a met goal suggests zero.
func SuggestedContribution(g core.Goal, now time.Time) core.Money {
	remaining := Remaining(g).Cents
	if remaining == 0 {
		return core.Money{}
	}
	if g.Deadline == nil {
		return core.Money{Cents: (remaining + 5) / 10}
	}
	months := int64(monthsBetween(now, *g.Deadline))
	if months < 1 {
		months = 1
	}
	return core.Money{Cents: (remaining + months/2) / months}
}

// monthsBetween counts whole calendar-month steps from one instant to
// another, negative when to precedes from.
func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
