package constants

// Push outcome labels, used in logs and metrics.
const (
	PushOutcomeDelivered = "delivered"
	PushOutcomeGone      = "gone"
	PushOutcomeTransient = "transient"
)

// Dispatch run results, used in logs and metrics.
const (
	RunResultCompleted = "completed"
	RunResultAborted   = "aborted"
	RunResultFailed    = "failed"
)

const (
	// HeaderCronSecret carries the shared secret of the scheduled trigger.
	HeaderCronSecret = "X-Cron-Secret"

	// HeaderUserID identifies the caller when ID token verification is disabled.
	HeaderUserID = "X-User-Id"
)

// LockCheckReminders names the lock held for the duration of a dispatch run.
const LockCheckReminders = "check-reminders"
