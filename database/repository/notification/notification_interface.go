package notifRepo

import (
	"context"

	"portflow/models"
)

// NotificationRepository defines data access for in-app notifications.
type NotificationRepository interface {
	// Insert writes a new notification record.
	Insert(ctx context.Context, notification *models.Notification) error
	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	// CountUnread counts the user's unread notifications.
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkRead marks the given notifications of the user as read.
	MarkRead(ctx context.Context, userID string, ids []string) error
	// MarkAllRead marks every unread notification of the user as read.
	MarkAllRead(ctx context.Context, userID string) error
}
