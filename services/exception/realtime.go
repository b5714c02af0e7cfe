package exception

import (
	"context"
	"fmt"
	"time"

	"portflow/models"
	"portflow/services/booking"
)

// RealTimeStatus computes the live view of one terminal: the slot in
// progress, upcoming confirmed arrivals, today's status counts and the
// utilization rate (confirmed-or-consumed over total, 0-100).
func (s *DefaultDetectorService) RealTimeStatus(ctx context.Context, terminalID string) (*models.RealTimeStatus, error) {
	_, port, err := s.resolveTerminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	dayStart, err := booking.DayBounds(port, "")
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	bookings, err := s.Repo.List(ctx, models.BookingListFilter{
		TerminalID: terminalID,
		From:       dayStart,
		To:         dayEnd,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	now := time.Now()
	duration := booking.SlotDurationOf(port)
	slotIndex := now.Sub(dayStart) / duration
	currentStart := dayStart.Add(slotIndex * duration)
	currentEnd := currentStart.Add(duration)
	if currentEnd.After(dayEnd) {
		currentEnd = dayEnd
	}

	status := &models.RealTimeStatus{
		TerminalID: terminalID,
		Timestamp:  now.UTC(),
		CurrentSlot: models.CurrentSlotInfo{
			Start:    currentStart,
			End:      currentEnd,
			Bookings: []models.Booking{},
		},
	}

	for _, b := range bookings {
		status.TodaySummary.Total++
		switch b.Status {
		case models.BookingPending:
			status.TodaySummary.Pending++
		case models.BookingConfirmed:
			status.TodaySummary.Confirmed++
		case models.BookingConsumed:
			status.TodaySummary.Consumed++
		case models.BookingCancelled:
			status.TodaySummary.Cancelled++
		}

		inCurrentSlot := !b.SlotStart.Before(currentStart) && b.SlotStart.Before(currentEnd)
		if inCurrentSlot && (b.Status == models.BookingConfirmed || b.Status == models.BookingConsumed || b.Status == models.BookingPending) {
			status.CurrentSlot.TrucksInSlot += b.SlotsCount
			status.CurrentSlot.Bookings = append(status.CurrentSlot.Bookings, b)
		}
		if b.Status == models.BookingConfirmed && b.SlotStart.After(now) {
			status.UpcomingArrivals++
		}
	}

	if status.TodaySummary.Total > 0 {
		done := status.TodaySummary.Confirmed + status.TodaySummary.Consumed
		status.UtilizationRate = float64(done) / float64(status.TodaySummary.Total) * 100
	}
	return status, nil
}
