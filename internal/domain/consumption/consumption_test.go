package consumption

import (
	"testing"
	"time"

	"fuelwatch/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func entry(id string, dayOffset int, odometer int64, liters float64, fillUp bool) *entity.FuelLogEntry {
	return &entity.FuelLogEntry{
		ID:        id,
		VehicleID: "v1",
		Date:      base.AddDate(0, 0, dayOffset),
		Odometer:  odometer,
		Liters:    liters,
		IsFillUp:  fillUp,
	}
}

func byID(entries []ProcessedEntry) map[string]ProcessedEntry {
	out := make(map[string]ProcessedEntry, len(entries))
	for _, e := range entries {
		out[e.ID] = e
	}

	return out
}

func TestProcess_ConsecutiveFillUps(t *testing.T) {
	logs := []*entity.FuelLogEntry{
		entry("c", 20, 10800, 30, true),
		entry("a", 0, 10000, 40, true),
		entry("b", 10, 10400, 10, false),
	}

	got := Process(logs)
	require.Len(t, got, 3)

	// newest first
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "a", got[2].ID)

	m := byID(got)
	require.NotNil(t, m["c"].Consumption)
	assert.InDelta(t, 20.0, *m["c"].Consumption, 0.001)
	assert.Equal(t, int64(800), *m["c"].DistanceTraveled)

	assert.Nil(t, m["b"].Consumption)
	require.NotNil(t, m["b"].DistanceTraveled)
	assert.Equal(t, int64(400), *m["b"].DistanceTraveled)

	assert.Nil(t, m["a"].DistanceTraveled)

	avg, ok := Average(got)
	assert.True(t, ok)
	assert.InDelta(t, 20.0, avg, 0.001)
}

func TestProcess_MissedFillUpSkipsSegment(t *testing.T) {
	missed := entry("b", 10, 10400, 10, false)
	missed.MissedPreviousFillUp = true

	got := Process([]*entity.FuelLogEntry{
		entry("a", 0, 10000, 40, true),
		missed,
		entry("c", 20, 10800, 30, true),
		entry("d", 30, 11400, 40, true),
	})

	m := byID(got)
	assert.Nil(t, m["c"].Consumption)
	require.NotNil(t, m["c"].DistanceTraveled)
	assert.Equal(t, int64(400), *m["c"].DistanceTraveled)

	require.NotNil(t, m["d"].Consumption)
	assert.InDelta(t, 15.0, *m["d"].Consumption, 0.001)
}

func TestProcess_ClosingEntryMissedFillUp(t *testing.T) {
	closing := entry("b", 10, 10500, 30, true)
	closing.MissedPreviousFillUp = true

	got := Process([]*entity.FuelLogEntry{entry("a", 0, 10000, 40, true), closing})

	m := byID(got)
	assert.Nil(t, m["b"].Consumption)
	assert.Equal(t, int64(500), *m["b"].DistanceTraveled)

	_, ok := Average(got)
	assert.False(t, ok)
}

func TestProcess_RoundsToTwoDecimals(t *testing.T) {
	got := Process([]*entity.FuelLogEntry{
		entry("a", 0, 10000, 40, true),
		entry("b", 7, 10333, 30, true),
	})

	m := byID(got)
	require.NotNil(t, m["b"].Consumption)
	assert.InDelta(t, 11.1, *m["b"].Consumption, 0.0001)
}

func TestProcess_FlagsOdometerRegression(t *testing.T) {
	got := Process([]*entity.FuelLogEntry{
		entry("a", 0, 10000, 40, true),
		entry("b", 20, 10200, 20, false),
		entry("c", 10, 10500, 20, true),
	})

	m := byID(got)
	assert.False(t, m["a"].OdometerRegression)
	assert.False(t, m["b"].OdometerRegression)
	assert.True(t, m["c"].OdometerRegression)
}

func TestProcess_FewerThanTwoEntries(t *testing.T) {
	assert.Empty(t, Process(nil))

	got := Process([]*entity.FuelLogEntry{entry("a", 0, 10000, 40, true)})
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Consumption)
	assert.Nil(t, got[0].DistanceTraveled)
}
