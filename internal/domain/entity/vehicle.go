// Package entity contains the core business objects of the project.
package entity

// Vehicle represents a tracked vehicle owned by a single user.
type Vehicle struct {
	ID                 string  `json:"id"`                  // Document ID of the vehicle.
	OwnerID            string  `json:"user_id"`             // The ID of the user who owns this vehicle.
	Make               string  `json:"make"`                // Manufacturer, e.g. "Toyota".
	Model              string  `json:"model"`               // Model name, e.g. "Corolla".
	Year               int     `json:"year"`                // Model year.
	FuelCapacityLiters float64 `json:"fuel_capacity"`       // Tank capacity in liters.
	AverageConsumption float64 `json:"average_consumption"` // Distance per liter, maintained by the client.
	ImageURL           string  `json:"image_url,omitempty"` // Optional picture, also used as the push icon.
}

// DisplayName returns "Make Model" for notification texts.
func (v *Vehicle) DisplayName() string {
	switch {
	case v.Make == "":
		return v.Model
	case v.Model == "":
		return v.Make
	default:
		return v.Make + " " + v.Model
	}
}
