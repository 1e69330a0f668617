package usecase

import (
	"context"

	"fuelwatch/internal/domain/entity"
)

// PushResult counts the outcome of a fan-out to a user's subscriptions
type PushResult struct {
	Sent    int `json:"sent"`
	Expired int `json:"expired"`
	Failed  int `json:"failed"`
}

// Add accumulates another result
func (r *PushResult) Add(other PushResult) {
	r.Sent += other.Sent
	r.Expired += other.Expired
	r.Failed += other.Failed
}

// PushUsecase defines direct push delivery to a user
type PushUsecase interface {
	// SendToUser delivers the payload to every subscription of the user and removes gone ones
	SendToUser(ctx context.Context, userID string, payload *entity.PushPayload) (*PushResult, error)
}
