package service

import (
	"context"

	"fuelwatch/internal/domain/entity"
)

// SendOutcome classifies the result of a single push delivery attempt
type SendOutcome int

const (
	// SendDelivered means the push service accepted the message
	SendDelivered SendOutcome = iota
	// SendGone means the endpoint is permanently invalid and must be removed
	SendGone
	// SendTransient means the attempt failed but the endpoint may work later
	SendTransient
)

// String returns the outcome label used in logs and metrics
func (o SendOutcome) String() string {
	switch o {
	case SendDelivered:
		return "delivered"
	case SendGone:
		return "gone"
	default:
		return "transient"
	}
}

// PushSender defines the interface for the push transport
type PushSender interface {
	// Ready returns an error when the transport lacks credentials and cannot send at all
	Ready() error

	// Send delivers one payload to one subscription.
	// The error is informational; callers act on the outcome.
	Send(ctx context.Context, sub *entity.PushSubscription, payload *entity.PushPayload) (SendOutcome, error)
}
