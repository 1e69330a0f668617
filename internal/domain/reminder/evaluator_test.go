package reminder

import (
	"testing"
	"time"

	"fuelwatch/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow        = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	testThresholds = Thresholds{Distance: 1000, Days: 15}
)

func odometerReminder(due int64) *entity.ServiceReminder {
	return &entity.ServiceReminder{ID: "r1", VehicleID: "v1", ServiceType: "Oil change", DueOdometer: &due}
}

func dateReminder(due time.Time) *entity.ServiceReminder {
	return &entity.ServiceReminder{ID: "r2", VehicleID: "v1", ServiceType: "Inspection", DueDate: &due}
}

func TestEvaluate_NoDueCondition(t *testing.T) {
	r := &entity.ServiceReminder{ID: "r0", ServiceType: "Wash"}

	for _, odometer := range []int64{0, 1, 50000, 1 << 40} {
		e := Evaluate(r, odometer, testNow, testThresholds)
		assert.False(t, e.IsOverdue)
		assert.False(t, e.IsUrgent)
		assert.Nil(t, e.DistanceRemaining)
		assert.Nil(t, e.TimeRemaining)
	}
}

func TestEvaluate_UnknownOdometerSkipsDistance(t *testing.T) {
	e := Evaluate(odometerReminder(500), UnknownOdometer, testNow, testThresholds)

	assert.Nil(t, e.DistanceRemaining)
	assert.False(t, e.IsOverdue)
	assert.False(t, e.IsUrgent)
}

func TestEvaluate_UnknownOdometerStillEvaluatesDate(t *testing.T) {
	due := int64(500)
	past := testNow.Add(-3 * day)
	r := &entity.ServiceReminder{ID: "r3", DueOdometer: &due, DueDate: &past}

	e := Evaluate(r, UnknownOdometer, testNow, testThresholds)

	assert.Nil(t, e.DistanceRemaining)
	require.NotNil(t, e.TimeRemaining)
	assert.Equal(t, -3, *e.TimeRemaining)
	assert.True(t, e.IsOverdue)
}

func TestEvaluate_UrgentByDistance(t *testing.T) {
	e := Evaluate(odometerReminder(20000), 19200, testNow, testThresholds)

	require.NotNil(t, e.DistanceRemaining)
	assert.Equal(t, int64(800), *e.DistanceRemaining)
	assert.True(t, e.IsUrgent)
	assert.False(t, e.IsOverdue)
}

func TestEvaluate_OverdueByDate(t *testing.T) {
	e := Evaluate(dateReminder(testNow.Add(-5*day)), 10000, testNow, testThresholds)

	require.NotNil(t, e.TimeRemaining)
	assert.Equal(t, -5, *e.TimeRemaining)
	assert.True(t, e.IsOverdue)
	assert.False(t, e.IsUrgent)
}

func TestEvaluate_NegativeDistanceIsOverdue(t *testing.T) {
	for _, current := range []int64{20001, 20500, 99999} {
		e := Evaluate(odometerReminder(20000), current, testNow, testThresholds)
		assert.True(t, e.IsOverdue, "odometer %d", current)
		assert.False(t, e.IsUrgent, "odometer %d", current)
	}
}

func TestEvaluate_Thresholds(t *testing.T) {
	tests := []struct {
		name       string
		reminder   *entity.ServiceReminder
		odometer   int64
		wantUrgent bool
	}{
		{name: "distance at threshold", reminder: odometerReminder(11000), odometer: 10000, wantUrgent: true},
		{name: "distance beyond threshold", reminder: odometerReminder(11001), odometer: 10000, wantUrgent: false},
		{name: "distance exactly due", reminder: odometerReminder(10000), odometer: 10000, wantUrgent: true},
		{name: "days at threshold", reminder: dateReminder(testNow.Add(15 * day)), odometer: 10000, wantUrgent: true},
		{name: "days beyond threshold", reminder: dateReminder(testNow.Add(16 * day)), odometer: 10000, wantUrgent: false},
		{name: "partial day truncates", reminder: dateReminder(testNow.Add(15*day + 23*time.Hour)), odometer: 10000, wantUrgent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Evaluate(tt.reminder, tt.odometer, testNow, testThresholds)
			assert.Equal(t, tt.wantUrgent, e.IsUrgent)
			assert.False(t, e.IsOverdue)
		})
	}
}

func TestEvaluate_NeverBothOverdueAndUrgent(t *testing.T) {
	offsets := []time.Duration{-40 * day, -1 * day, -time.Hour, 0, time.Hour, 10 * day, 40 * day}
	dues := []int64{0, 500, 10000, 10999, 11000, 30000}

	for _, off := range offsets {
		for _, due := range dues {
			date := testNow.Add(off)
			d := due
			r := &entity.ServiceReminder{ID: "r", DueOdometer: &d, DueDate: &date}

			for _, odometer := range []int64{0, 9000, 10000, 12000} {
				e := Evaluate(r, odometer, testNow, testThresholds)
				assert.False(t, e.IsOverdue && e.IsUrgent, "due=%d offset=%s odometer=%d", due, off, odometer)
			}
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	due := int64(20000)
	date := testNow.Add(7 * day)
	r := &entity.ServiceReminder{ID: "r", DueOdometer: &due, DueDate: &date}

	first := Evaluate(r, 19500, testNow, testThresholds)
	second := Evaluate(r, 19500, testNow, testThresholds)

	assert.Equal(t, first, second)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(testNow.Add(23*time.Hour), testNow))
	assert.Equal(t, 0, DaysBetween(testNow.Add(-23*time.Hour), testNow))
	assert.Equal(t, 1, DaysBetween(testNow.Add(24*time.Hour), testNow))
	assert.Equal(t, -5, DaysBetween(testNow.Add(-5*day), testNow))
}

func TestPendingAndAlerting(t *testing.T) {
	done := odometerReminder(100)
	done.IsCompleted = true
	urgent := odometerReminder(10500)
	calm := odometerReminder(50000)

	pending := Pending([]*entity.ServiceReminder{done, nil, urgent, calm})
	require.Len(t, pending, 2)

	alerting := Alerting(EvaluateAll(pending, 10000, testNow, testThresholds))
	require.Len(t, alerting, 1)
	assert.Same(t, urgent, alerting[0].Reminder)
}
