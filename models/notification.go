package models

import "time"

// Notification types and sources.
const (
	NotificationEmail  = "EMAIL"
	NotificationPush   = "PUSH"
	NotificationSocket = "SOCKET"

	NotificationSourceSystem  = "SYSTEM"
	NotificationSourceAdmin   = "ADMIN"
	NotificationSourceCarrier = "CARRIER"
)

// Notification is an in-app record for a user. Delivery over email/push is
// handled by an external service; this model only tracks the record.
type Notification struct {
	ID        string     `bson:"id" json:"id"`
	UserID    string     `bson:"userId" json:"-"`
	Type      string     `bson:"type" json:"type"`
	Source    string     `bson:"source" json:"source"`
	Message   string     `bson:"message" json:"message"`
	ReadAt    *time.Time `bson:"readAt,omitempty" json:"readAt,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is the asynq task payload for booking arrival reminders.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	UserID    string `json:"userId"`
	Message   string `json:"message"`
}
