// Package consumption derives fuel economy figures from a vehicle's fuel log.
package consumption

import (
	"math"
	"sort"

	"fuelwatch/internal/domain/entity"
)

// ProcessedEntry is a fuel log entry annotated with derived figures
type ProcessedEntry struct {
	entity.FuelLogEntry

	// DistanceTraveled since the previous entry by odometer, or over the whole fill-up segment
	DistanceTraveled *int64 `json:"distance_traveled,omitempty"`

	// Consumption in distance per liter, only set on the closing entry of a valid fill-up segment
	Consumption *float64 `json:"consumption,omitempty"`

	// OdometerRegression flags an entry dated after a record with a higher odometer
	OdometerRegression bool `json:"odometer_regression,omitempty"`
}

// Process computes consumption between consecutive full fill-ups.
//
// Liters are summed over every entry after the opening fill-up up to and including the closing one.
// A segment is skipped when the entry following the opening fill-up, or the closing fill-up itself,
// reports a missed fill-up. Entries outside a computed segment get the plain distance since the
// previous entry. The result is sorted by date, newest first.
func Process(logs []*entity.FuelLogEntry) []ProcessedEntry {
	entries := make([]ProcessedEntry, 0, len(logs))
	for _, l := range logs {
		if l == nil {
			continue
		}
		entries = append(entries, ProcessedEntry{FuelLogEntry: *l})
	}

	if len(entries) < 2 {
		sortByDateDesc(entries)

		return entries
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Odometer == entries[j].Odometer {
			return entries[i].Date.Before(entries[j].Date)
		}

		return entries[i].Odometer < entries[j].Odometer
	})

	for i := 1; i < len(entries); i++ {
		if entries[i].Date.Before(entries[i-1].Date) {
			entries[i].OdometerRegression = true
		}
	}

	fillUps := make([]int, 0, len(entries))
	for i := range entries {
		if entries[i].IsFillUp {
			fillUps = append(fillUps, i)
		}
	}

	for k := 0; k+1 < len(fillUps); k++ {
		start, end := fillUps[k], fillUps[k+1]

		if entries[start+1].MissedPreviousFillUp || entries[end].MissedPreviousFillUp {
			continue
		}

		distance := entries[end].Odometer - entries[start].Odometer

		var liters float64
		for j := start + 1; j <= end; j++ {
			liters += entries[j].Liters
		}

		if distance <= 0 || liters <= 0 {
			continue
		}

		c := math.Round(float64(distance)/liters*100) / 100
		entries[end].Consumption = &c
		entries[end].DistanceTraveled = &distance
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].DistanceTraveled != nil {
			continue
		}
		if d := entries[i].Odometer - entries[i-1].Odometer; d > 0 {
			entries[i].DistanceTraveled = &d
		}
	}

	sortByDateDesc(entries)

	return entries
}

// Average returns the mean of all computed consumption values.
// The second result is false when no segment could be computed.
func Average(entries []ProcessedEntry) (float64, bool) {
	var (
		sum float64
		n   int
	)
	for _, e := range entries {
		if e.Consumption == nil {
			continue
		}
		sum += *e.Consumption
		n++
	}

	if n == 0 {
		return 0, false
	}

	return math.Round(sum/float64(n)*100) / 100, true
}

func sortByDateDesc(entries []ProcessedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}
