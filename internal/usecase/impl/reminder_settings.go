package impl

import (
	"time"

	"fuelwatch/config"
	"fuelwatch/internal/domain/reminder"
)

// Alert audiences
const (
	// AudienceFleet sends every alert to every registered subscription
	AudienceFleet = "fleet"
	// AudienceOwner sends an alert only to the subscriptions of the vehicle owner
	AudienceOwner = "owner"
)

// ReminderSettings are the tunables shared by the dispatcher and the observer
type ReminderSettings struct {
	Thresholds           reminder.Thresholds
	Cooldown             time.Duration
	SubscriptionCacheTTL time.Duration
	SendTimeout          time.Duration
	StoreTimeout         time.Duration
	VehicleConcurrency   int
	SendConcurrency      int
	DefaultIcon          string
	Audience             string
}

// NewReminderSettings reads the reminder and push sections of the configuration
func NewReminderSettings(cfg *config.Config) ReminderSettings {
	r := cfg.Reminder

	return ReminderSettings{
		Thresholds: reminder.Thresholds{
			Distance: r.ThresholdDistance,
			Days:     r.ThresholdDays,
		},
		Cooldown:             r.Cooldown(),
		SubscriptionCacheTTL: r.SubscriptionCacheTTL,
		SendTimeout:          r.SendTimeout,
		StoreTimeout:         r.StoreTimeout,
		VehicleConcurrency:   r.VehicleConcurrency,
		SendConcurrency:      r.SendConcurrency,
		DefaultIcon:          cfg.Push.DefaultIcon,
		Audience:             r.Audience,
	}
}
