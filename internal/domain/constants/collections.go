// Package constants holds names shared between the persistence adapters and the delivery layer.
package constants

// Document store collection names. Fuel records and reminders live under their vehicle.
const (
	CollectionVehicles         = "vehicles"
	CollectionFuelRecords      = "fuel_records"
	CollectionServiceReminders = "service_reminders"
	CollectionSubscriptions    = "subscriptions"
)

// Document field names, shared by the Firestore and MongoDB adapters.
const (
	FieldUserID               = "userId"
	FieldOdometer             = "odometer"
	FieldIsCompleted          = "isCompleted"
	FieldLastNotificationSent = "lastNotificationSent"
	FieldSubscription         = "subscription"
	FieldCreatedAt            = "createdAt"
	FieldVehicleID            = "vehicleId"
)
