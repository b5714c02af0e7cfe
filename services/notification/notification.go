package notification

import (
	"context"
	"fmt"
	"time"

	"portflow/models"
	"portflow/services/tasks"
	"portflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultNotificationService) ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	notifications, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.Repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.Repo.MarkRead(ctx, userID, ids); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.Repo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// Notify writes an in-app notification record for one user.
func (s *DefaultNotificationService) Notify(ctx context.Context, userID, source, message string) error {
	if userID == "" {
		return nil
	}
	n := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      models.NotificationSocket,
		Source:    source,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Insert(ctx, n); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

// BookingStatusChanged notifies the owning carrier about a lifecycle
// transition. Invoked after the write commits; failures are logged only.
func (s *DefaultNotificationService) BookingStatusChanged(ctx context.Context, booking *models.Booking, action string) {
	userID := s.carrierUser(ctx, booking.CarrierID)
	message := statusMessage(booking, action)

	if err := s.Notify(ctx, userID, models.NotificationSourceSystem, message); err != nil {
		utils.GetLogger().Warn("Failed to record booking notification",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}

	if action == models.ActionConfirmed || action == models.ActionOverridden {
		s.scheduleReminder(booking, userID)
	}
}

// scheduleReminder enqueues an arrival reminder firing ReminderLead before
// the slot start. Slots already inside the lead window get no reminder.
func (s *DefaultNotificationService) scheduleReminder(booking *models.Booking, userID string) {
	if s.AsynqClient == nil || userID == "" {
		return
	}
	fireAt := booking.SlotStart.Add(-s.ReminderLead)
	if !fireAt.After(time.Now()) {
		return
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		UserID:    userID,
		Message: fmt.Sprintf("Reminder: booking %s arrives at %s",
			booking.BookingReference, booking.SlotStart.Format(time.RFC3339)),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		utils.GetLogger().Error("Failed to build reminder task",
			zap.String("bookingID", booking.ID), zap.Error(err))
		return
	}
	if _, err := s.AsynqClient.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("Failed to enqueue reminder task",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
}

// carrierUser resolves the account behind a carrier. Empty when unknown.
func (s *DefaultNotificationService) carrierUser(ctx context.Context, carrierID string) string {
	if carrierID == "" {
		return ""
	}
	carrier, err := s.Fleet.GetCarrier(ctx, carrierID)
	if err != nil {
		utils.GetLogger().Warn("Failed to resolve carrier for notification",
			zap.String("carrierID", carrierID), zap.Error(err))
		return ""
	}
	return carrier.UserID
}

func statusMessage(booking *models.Booking, action string) string {
	ref := booking.BookingReference
	switch action {
	case models.ActionCreated:
		return fmt.Sprintf("Booking %s submitted and awaiting approval", ref)
	case models.ActionConfirmed:
		return fmt.Sprintf("Booking %s confirmed for %s", ref, booking.SlotStart.Format(time.RFC3339))
	case models.ActionRejected:
		return fmt.Sprintf("Booking %s was rejected", ref)
	case models.ActionCancelled:
		return fmt.Sprintf("Booking %s was cancelled", ref)
	case models.ActionReassigned:
		return fmt.Sprintf("Booking %s moved to %s", ref, booking.SlotStart.Format(time.RFC3339))
	case models.ActionOverridden:
		return fmt.Sprintf("Booking %s confirmed by manual override", ref)
	case models.ActionCheckedIn:
		return fmt.Sprintf("Booking %s checked in at the gate", ref)
	default:
		return fmt.Sprintf("Booking %s updated (%s)", ref, action)
	}
}
