// Package reminder decides which service reminders are due and whether their owners should be told now.
//
// Everything here is pure: callers supply the current odometer, the clock and the thresholds, so the
// scheduled dispatcher and the interactive observer share one evaluation.
package reminder

import (
	"time"

	"fuelwatch/internal/domain/entity"
)

// UnknownOdometer marks a vehicle without fuel records. Distance cannot be evaluated against it.
const UnknownOdometer int64 = 0

const day = 24 * time.Hour

// Thresholds bound the window in which a reminder counts as urgent
type Thresholds struct {
	Distance int64 // distance units before the due odometer
	Days     int   // whole days before the due date
}

// EvaluatedReminder is a reminder together with its computed status. It is never stored.
type EvaluatedReminder struct {
	Reminder          *entity.ServiceReminder
	DistanceRemaining *int64
	TimeRemaining     *int
	IsOverdue         bool
	IsUrgent          bool
}

// Alerting reports whether the reminder is overdue or urgent
func (e EvaluatedReminder) Alerting() bool {
	return e.IsOverdue || e.IsUrgent
}

// Evaluate computes the status of a single pending reminder
func Evaluate(r *entity.ServiceReminder, currentOdometer int64, now time.Time, th Thresholds) EvaluatedReminder {
	e := EvaluatedReminder{Reminder: r}

	if r.DueOdometer != nil && currentOdometer != UnknownOdometer {
		dist := *r.DueOdometer - currentOdometer
		e.DistanceRemaining = &dist
	}

	if r.DueDate != nil {
		days := DaysBetween(*r.DueDate, now)
		e.TimeRemaining = &days
	}

	e.IsOverdue = (e.DistanceRemaining != nil && *e.DistanceRemaining < 0) ||
		(e.TimeRemaining != nil && *e.TimeRemaining < 0)

	e.IsUrgent = !e.IsOverdue &&
		((e.DistanceRemaining != nil && *e.DistanceRemaining <= th.Distance) ||
			(e.TimeRemaining != nil && *e.TimeRemaining <= th.Days))

	return e
}

// EvaluateAll evaluates every reminder against the same odometer and clock
func EvaluateAll(reminders []*entity.ServiceReminder, currentOdometer int64, now time.Time, th Thresholds) []EvaluatedReminder {
	out := make([]EvaluatedReminder, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, Evaluate(r, currentOdometer, now, th))
	}

	return out
}

// DaysBetween returns the number of whole days from now until due, truncated toward zero.
// The result is negative when due lies in the past.
func DaysBetween(due, now time.Time) int {
	return int(due.Sub(now) / day)
}

// Pending drops completed reminders and nil entries
func Pending(reminders []*entity.ServiceReminder) []*entity.ServiceReminder {
	out := make([]*entity.ServiceReminder, 0, len(reminders))
	for _, r := range reminders {
		if r == nil || r.IsCompleted {
			continue
		}
		out = append(out, r)
	}

	return out
}

// Alerting keeps the overdue or urgent reminders
func Alerting(evaluated []EvaluatedReminder) []EvaluatedReminder {
	out := make([]EvaluatedReminder, 0, len(evaluated))
	for _, e := range evaluated {
		if e.Alerting() {
			out = append(out, e)
		}
	}

	return out
}
