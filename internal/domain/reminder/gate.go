package reminder

import "time"

// DefaultCooldown is the interval between two alerts for the same reminder when none is configured
const DefaultCooldown = 48 * time.Hour

// ShouldNotify reports whether an alert for the evaluated reminder may be sent now.
// Recording the new timestamp is up to the caller.
func ShouldNotify(e EvaluatedReminder, now time.Time, cooldown time.Duration) bool {
	if !e.Alerting() {
		return false
	}

	last := e.Reminder.LastNotificationSent
	if last == nil {
		return true
	}

	return now.Sub(*last) >= cooldown
}

// Gated keeps the reminders that pass ShouldNotify
func Gated(evaluated []EvaluatedReminder, now time.Time, cooldown time.Duration) []EvaluatedReminder {
	out := make([]EvaluatedReminder, 0, len(evaluated))
	for _, e := range evaluated {
		if ShouldNotify(e, now, cooldown) {
			out = append(out, e)
		}
	}

	return out
}
