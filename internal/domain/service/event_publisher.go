package service

import (
	"context"
	"time"
)

// ReminderAlertEvent is published after a service reminder alert was broadcast
type ReminderAlertEvent struct {
	EventID     string    `json:"event_id"`
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	VehicleID   string    `json:"vehicle_id"`
	OwnerID     string    `json:"owner_id"`
	ReminderID  string    `json:"reminder_id"`
	ServiceType string    `json:"service_type"`
	IsOverdue   bool      `json:"is_overdue"`
	Sent        int       `json:"sent"`
	Failed      int       `json:"failed"`
	AlertedAt   time.Time `json:"alerted_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishReminderAlert publishes a reminder alert event for downstream consumers
	PublishReminderAlert(ctx context.Context, event *ReminderAlertEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
