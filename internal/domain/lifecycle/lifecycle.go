// Package lifecycle holds process-wide lifecycle settings.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers, schedulers and clients.
const DefaultTimeout = 15 * time.Second
