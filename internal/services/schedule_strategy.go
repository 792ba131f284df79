// This file implements the strategy registry for recurrence scheduling.
// Each frequency has its own scheduler that knows how to advance the
// next-run date.
package services

import (
	"fmt"
	"time"

	"fintrack/internal/core"
)

// Scheduler advances a recurrence's next-run date by one period.
type Scheduler interface {
	Next(current time.Time) time.Time
}

type DailyScheduler struct{}

func (DailyScheduler) Next(current time.Time) time.Time { return current.AddDate(0, 0, 1) }

type WeeklyScheduler struct{}

func (WeeklyScheduler) Next(current time.Time) time.Time { return current.AddDate(0, 0, 7) }

// MonthlyScheduler advances by one calendar month. Go normalizes
// overflowing days, so Jan 31 + 1 month lands on Mar 2/3; recurrences
// meant for month ends should use day 28 or earlier.
type MonthlyScheduler struct{}

func (MonthlyScheduler) Next(current time.Time) time.Time { return current.AddDate(0, 1, 0) }

type YearlyScheduler struct{}

func (YearlyScheduler) Next(current time.Time) time.Time { return current.AddDate(1, 0, 0) }

var schedulers = map[core.Frequency]Scheduler{
	core.Daily:   DailyScheduler{},
	core.Weekly:  WeeklyScheduler{},
	core.Monthly: MonthlyScheduler{},
	core.Yearly:  YearlyScheduler{},
}

// GetScheduler returns the scheduler for a frequency.
func GetScheduler(frequency core.Frequency) (Scheduler, error) {
	s, ok := schedulers[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", frequency)
	}
	return s, nil
}

// RegisterScheduler installs a scheduler for a new frequency type.
func RegisterScheduler(frequency core.Frequency, s Scheduler) {
	schedulers[frequency] = s
}
