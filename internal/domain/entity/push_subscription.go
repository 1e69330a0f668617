// Package entity contains the core business objects of the project.
package entity

import (
	"net/url"
	"strings"
	"time"
)

// PushSubscriptionKeys is the opaque key material a browser hands out for payload encryption.
type PushSubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// PushSubscription represents a browser endpoint registered to receive web pushes for a user.
type PushSubscription struct {
	ID        string               `json:"id"`         // Derived from the endpoint, see SubscriptionIDFromEndpoint.
	UserID    string               `json:"user_id"`    // The ID of the user who registered this endpoint.
	Endpoint  string               `json:"endpoint"`   // Push service URL.
	Keys      PushSubscriptionKeys `json:"keys"`       // Encryption keys.
	CreatedAt time.Time            `json:"created_at"` // Timestamp of the registration.
}

// SubscriptionIDFromEndpoint derives the stable document ID of a subscription from its endpoint.
// Registering the same endpoint twice therefore overwrites instead of duplicating.
func SubscriptionIDFromEndpoint(endpoint string) string {
	return url.QueryEscape(strings.TrimSpace(endpoint))
}

// IsComplete reports whether the subscription carries everything needed to deliver a push.
func (s *PushSubscription) IsComplete() bool {
	return s.Endpoint != "" && s.Keys.P256dh != "" && s.Keys.Auth != ""
}
