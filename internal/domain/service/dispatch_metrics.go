package service

import "time"

// DispatchMetrics records dispatch activity for monitoring
type DispatchMetrics interface {
	ObserveRun(result string, duration time.Duration)
	AddAlerted(n int)
	IncSend(outcome SendOutcome)
	AddPruned(n int)
}
