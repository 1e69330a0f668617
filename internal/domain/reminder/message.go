package reminder

import (
	"fmt"
	"strings"

	"fuelwatch/internal/domain/entity"
)

// AlertPayload builds the push payload announcing an evaluated reminder.
// The vehicle picture is used as icon, falling back to defaultIcon.
func AlertPayload(v *entity.Vehicle, e EvaluatedReminder, defaultIcon string) *entity.PushPayload {
	title := "Service due soon: "
	if e.IsOverdue {
		title = "Service overdue: "
	}

	icon := v.ImageURL
	if icon == "" {
		icon = defaultIcon
	}

	return &entity.PushPayload{
		Title: title + v.DisplayName(),
		Body:  Describe(e),
		Icon:  icon,
	}
}

// Describe renders the remaining distance and time of a reminder in one line
func Describe(e EvaluatedReminder) string {
	parts := make([]string, 0, 2)

	if e.DistanceRemaining != nil {
		if d := *e.DistanceRemaining; d < 0 {
			parts = append(parts, fmt.Sprintf("overdue by %d km", -d))
		} else {
			parts = append(parts, fmt.Sprintf("due in %d km", d))
		}
	}

	if e.TimeRemaining != nil {
		switch d := *e.TimeRemaining; {
		case d < 0:
			parts = append(parts, "overdue by "+plural(-d, "day"))
		case d == 0:
			parts = append(parts, "due today")
		default:
			parts = append(parts, "due in "+plural(d, "day"))
		}
	}

	if len(parts) == 0 {
		return e.Reminder.ServiceType
	}

	return e.Reminder.ServiceType + ": " + strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}

	return fmt.Sprintf("%d %ss", n, unit)
}
