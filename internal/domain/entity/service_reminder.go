// Package entity contains the core business objects of the project.
package entity

import "time"

// ServiceReminder is a maintenance task that becomes due at an odometer reading, a date, or both.
type ServiceReminder struct {
	ID                   string     `json:"id"`
	VehicleID            string     `json:"vehicle_id"`
	ServiceType          string     `json:"service_type"`
	DueOdometer          *int64     `json:"due_odometer,omitempty"`
	DueDate              *time.Time `json:"due_date,omitempty"`
	IsCompleted          bool       `json:"is_completed"`
	LastNotificationSent *time.Time `json:"last_notification_sent,omitempty"`
}

// HasDueCondition reports whether the reminder can ever become due.
func (r *ServiceReminder) HasDueCondition() bool {
	return r.DueOdometer != nil || r.DueDate != nil
}
