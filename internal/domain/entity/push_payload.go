// Package entity contains the core business objects of the project.
package entity

// PushPayload is the JSON document delivered to the service worker.
type PushPayload struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
	Icon  string `json:"icon,omitempty"`
}
