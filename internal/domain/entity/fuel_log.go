// Package entity contains the core business objects of the project.
package entity

import "time"

// FuelLogEntry represents a single refuelling record of a vehicle.
type FuelLogEntry struct {
	ID                   string    `json:"id"`                      // Document ID of the entry.
	VehicleID            string    `json:"vehicle_id"`              // The vehicle this entry belongs to.
	Date                 time.Time `json:"date"`                    // When the refuelling happened.
	Odometer             int64     `json:"odometer"`                // Odometer reading at refuelling time.
	Liters               float64   `json:"liters"`                  // Volume of fuel added.
	TotalCost            float64   `json:"total_cost"`              // Amount paid.
	IsFillUp             bool      `json:"is_fill_up"`              // The tank was filled completely.
	MissedPreviousFillUp bool      `json:"missed_previous_fill_up"` // A refuelling before this one was not logged.
}
