package reminder

import (
	"testing"
	"time"

	"fuelwatch/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestAlertPayload(t *testing.T) {
	vehicle := &entity.Vehicle{ID: "v1", Make: "Toyota", Model: "Corolla"}

	overdue := Evaluate(dateReminder(testNow.Add(-5*day)), 10000, testNow, testThresholds)
	payload := AlertPayload(vehicle, overdue, "/icon-192x192.png")

	assert.Equal(t, "Service overdue: Toyota Corolla", payload.Title)
	assert.Equal(t, "Inspection: overdue by 5 days", payload.Body)
	assert.Equal(t, "/icon-192x192.png", payload.Icon)

	vehicle.ImageURL = "https://img.example.com/corolla.png"
	urgent := Evaluate(odometerReminder(20000), 19200, testNow, testThresholds)
	payload = AlertPayload(vehicle, urgent, "/icon-192x192.png")

	assert.Equal(t, "Service due soon: Toyota Corolla", payload.Title)
	assert.Equal(t, "Oil change: due in 800 km", payload.Body)
	assert.Equal(t, vehicle.ImageURL, payload.Icon)
}

func TestDescribe_BothConditions(t *testing.T) {
	due := int64(10300)
	date := testNow.Add(day)
	r := &entity.ServiceReminder{ServiceType: "Tires", DueOdometer: &due, DueDate: &date}

	assert.Equal(t, "Tires: overdue by 200 km, due in 1 day", Describe(Evaluate(r, 10500, testNow, testThresholds)))

	today := testNow.Add(time.Hour)
	r.DueDate = &today
	assert.Equal(t, "Tires: due today", Describe(Evaluate(r, UnknownOdometer, testNow, testThresholds)))
}
