package usecase

import (
	"context"
	"time"
)

// RunSummary aggregates the outcome of one dispatch run
type RunSummary struct {
	RunID                  string        `json:"run_id"`
	AlertedReminders       int           `json:"alerted_reminders"`        // reminders whose alert was broadcast
	EvaluatedReminders     int           `json:"evaluated_reminders"`      // pending reminders evaluated
	VehiclesProcessed      int           `json:"vehicles_processed"`       // vehicles that went through the pipeline
	VehiclesSkipped        int           `json:"vehicles_skipped"`         // vehicles without pending reminders
	FailedVehicles         int           `json:"failed_vehicles"`          // vehicles skipped because of a data error
	Sent                   int           `json:"sent"`                     // pushes accepted by the push service
	Transient              int           `json:"transient"`                // pushes that failed softly
	Gone                   int           `json:"gone"`                     // pushes rejected as gone
	Pruned                 int           `json:"pruned"`                   // subscriptions removed
	TimestampWriteFailures int           `json:"timestamp_write_failures"` // reminders whose bookkeeping failed
	Aborted                bool          `json:"aborted"`                  // the run stopped early between vehicles
	Duration               time.Duration `json:"duration"`
}

// DispatchUsecase defines the fleet-wide reminder check
type DispatchUsecase interface {
	// Run evaluates every vehicle, sends due alerts and prunes gone subscriptions.
	// Only configuration errors and a failure to enumerate vehicles fail the run.
	Run(ctx context.Context) (*RunSummary, error)
}
