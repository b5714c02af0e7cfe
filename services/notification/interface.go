package notification

import (
	"context"
	"time"

	fleetRepo "portflow/database/repository/fleet"
	notifRepo "portflow/database/repository/notification"

	"portflow/models"

	"github.com/hibiken/asynq"
)

// NotificationService manages in-app notification records and arrival
// reminders. It also receives booking lifecycle events.
type NotificationService interface {
	ListNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID string, ids []string) error
	MarkAllRead(ctx context.Context, userID string) error
	// Notify writes an in-app notification for one user.
	Notify(ctx context.Context, userID, source, message string) error
	// BookingStatusChanged implements the booking event hook: it notifies
	// the owning carrier and schedules an arrival reminder on confirmation.
	BookingStatusChanged(ctx context.Context, booking *models.Booking, action string)
}

// DefaultNotificationService implements NotificationService.
type DefaultNotificationService struct {
	Repo  notifRepo.NotificationRepository
	Fleet fleetRepo.FleetRepository
	// AsynqClient schedules delayed reminder tasks. Nil disables reminders.
	AsynqClient *asynq.Client
	// ReminderLead is how long before the slot start a reminder fires.
	ReminderLead time.Duration
}
