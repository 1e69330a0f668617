// Package document decodes loosely typed store documents into entities.
//
// Documents are written by several clients over time, so the same field can arrive as an ISO string
// or a native timestamp, or as an integer or a float. Both store adapters decode through Fields.
package document

import (
	"strconv"
	"strings"
	"time"

	"fuelwatch/internal/domain/constants"
	"fuelwatch/internal/domain/entity"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ISOTimeLayout matches JavaScript's Date.prototype.toISOString
const ISOTimeLayout = "2006-01-02T15:04:05.000Z"

// dateOnlyLayout is what date pickers store
const dateOnlyLayout = "2006-01-02"

// Fields is a decoded document
type Fields map[string]any

// FormatTime renders t the way the web client stores timestamps
func FormatTime(t time.Time) string {
	return t.UTC().Format(ISOTimeLayout)
}

// String returns the field as a string, or "" when missing or not a string
func (f Fields) String(key string) string {
	s, _ := f[key].(string)

	return strings.TrimSpace(s)
}

// Int64 returns an integral field, accepting any numeric representation
func (f Fields) Int64(key string) (int64, bool) {
	switch v := f[key].(type) {
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)

		return n, err == nil
	default:
		return 0, false
	}
}

// Float returns a numeric field as float64
func (f Fields) Float(key string) (float64, bool) {
	switch v := f[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)

		return n, err == nil
	default:
		return 0, false
	}
}

// Bool returns a boolean field, false when missing
func (f Fields) Bool(key string) bool {
	b, _ := f[key].(bool)

	return b
}

// Time returns a timestamp field stored as a native timestamp or an ISO string
func (f Fields) Time(key string) (time.Time, bool) {
	switch v := f[key].(type) {
	case time.Time:
		return v.UTC(), true
	case primitive.DateTime:
		return v.Time().UTC(), true
	case string:
		return parseTime(v)
	default:
		return time.Time{}, false
	}
}

// Map returns a nested document
func (f Fields) Map(key string) Fields {
	switch v := f[key].(type) {
	case map[string]any:
		return v
	case Fields:
		return v
	case primitive.M:
		return Fields(v)
	case primitive.D:
		m := make(Fields, len(v))
		for _, e := range v {
			m[e.Key] = e.Value
		}

		return m
	default:
		return Fields{}
	}
}

func parseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{time.RFC3339Nano, dateOnlyLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

// Vehicle decodes a vehicle document
func Vehicle(id string, f Fields) (*entity.Vehicle, error) {
	owner := f.String(constants.FieldUserID)
	if owner == "" {
		return nil, errors.Errorf("vehicle %s has no %s", id, constants.FieldUserID)
	}

	year, _ := f.Int64("year")
	capacity, _ := f.Float("fuelCapacityLiters")
	consumption, _ := f.Float("averageConsumption")

	return &entity.Vehicle{
		ID:                 id,
		OwnerID:            owner,
		Make:               f.String("make"),
		Model:              f.String("model"),
		Year:               int(year),
		FuelCapacityLiters: capacity,
		AverageConsumption: consumption,
		ImageURL:           f.String("imageUrl"),
	}, nil
}

// FuelLogEntry decodes a fuel record document
func FuelLogEntry(id, vehicleID string, f Fields) (*entity.FuelLogEntry, error) {
	odometer, ok := f.Int64(constants.FieldOdometer)
	if !ok {
		return nil, errors.Errorf("fuel record %s has no %s", id, constants.FieldOdometer)
	}

	date, _ := f.Time("date")
	liters, _ := f.Float("liters")
	cost, _ := f.Float("totalCost")

	return &entity.FuelLogEntry{
		ID:                   id,
		VehicleID:            vehicleID,
		Date:                 date,
		Odometer:             odometer,
		Liters:               liters,
		TotalCost:            cost,
		IsFillUp:             f.Bool("isFillUp"),
		MissedPreviousFillUp: f.Bool("missedPreviousFillUp"),
	}, nil
}

// ServiceReminder decodes a service reminder document. Unparseable due fields count as absent.
func ServiceReminder(id, vehicleID string, f Fields) *entity.ServiceReminder {
	r := &entity.ServiceReminder{
		ID:          id,
		VehicleID:   vehicleID,
		ServiceType: f.String("serviceType"),
		IsCompleted: f.Bool(constants.FieldIsCompleted),
	}

	if v, ok := f.Int64("dueOdometer"); ok && v > 0 {
		r.DueOdometer = &v
	}
	if t, ok := f.Time("dueDate"); ok {
		r.DueDate = &t
	}
	if t, ok := f.Time(constants.FieldLastNotificationSent); ok {
		r.LastNotificationSent = &t
	}

	return r
}

// PushSubscription decodes a subscription document {userId, subscription: {endpoint, keys}, createdAt}
func PushSubscription(id string, f Fields) (*entity.PushSubscription, error) {
	inner := f.Map(constants.FieldSubscription)
	keys := inner.Map("keys")

	sub := &entity.PushSubscription{
		ID:       id,
		UserID:   f.String(constants.FieldUserID),
		Endpoint: inner.String("endpoint"),
		Keys: entity.PushSubscriptionKeys{
			P256dh: keys.String("p256dh"),
			Auth:   keys.String("auth"),
		},
	}
	if t, ok := f.Time(constants.FieldCreatedAt); ok {
		sub.CreatedAt = t
	}

	if sub.Endpoint == "" {
		return nil, errors.Errorf("subscription %s has no endpoint", id)
	}

	return sub, nil
}

// SubscriptionFields encodes a subscription in the shape PushSubscription reads
func SubscriptionFields(sub *entity.PushSubscription) Fields {
	return Fields{
		constants.FieldUserID: sub.UserID,
		constants.FieldSubscription: map[string]any{
			"endpoint": sub.Endpoint,
			"keys": map[string]any{
				"p256dh": sub.Keys.P256dh,
				"auth":   sub.Keys.Auth,
			},
		},
		constants.FieldCreatedAt: sub.CreatedAt,
	}
}
