package booking

import (
	"context"
	"fmt"
	"time"

	"portflow/models"
	"portflow/utils"
)

// BuildDayGrid slices one local day into slotDuration buckets and joins the
// occupancy counts. The final slot is truncated to the day boundary when the
// duration does not evenly divide 24h. Intervals are half-open.
func BuildDayGrid(dayStart time.Time, slotDuration time.Duration, maxCapacity int, occupancy map[time.Time]int) []models.SlotAvailability {
	dayEnd := dayStart.AddDate(0, 0, 1)

	var slots []models.SlotAvailability
	for start := dayStart; start.Before(dayEnd); start = start.Add(slotDuration) {
		end := start.Add(slotDuration)
		if end.After(dayEnd) {
			end = dayEnd
		}
		booked := occupancy[start.UTC()]
		available := maxCapacity - booked
		if available < 0 {
			available = 0
		}
		slots = append(slots, models.SlotAvailability{
			SlotStart:      start,
			SlotEnd:        end,
			BookedCount:    booked,
			AvailableCount: available,
		})
	}
	return slots
}

// DayBounds resolves a "YYYY-MM-DD" date to its local midnight in the port's
// timezone. An empty date means today.
func DayBounds(port *models.Port, date string) (time.Time, error) {
	loc, err := time.LoadLocation(port.Timezone)
	if err != nil {
		return time.Time{}, utils.ValidationError("unknown port timezone %q", port.Timezone)
	}
	if date == "" {
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
	}
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, utils.ValidationError("invalid date %q, want YYYY-MM-DD", date)
	}
	return day, nil
}

// SlotDurationOf returns the port's slot duration, defaulting to 60 minutes.
func SlotDurationOf(port *models.Port) time.Duration {
	minutes := port.SlotDuration
	if minutes <= 0 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// alignSlotStart validates that t falls on a slot boundary of its local day
// and returns the half-open slot window. The last slot of a day may be
// shorter than the configured duration.
func alignSlotStart(port *models.Port, t time.Time) (start, end time.Time, err error) {
	loc, locErr := time.LoadLocation(port.Timezone)
	if locErr != nil {
		return time.Time{}, time.Time{}, utils.ValidationError("unknown port timezone %q", port.Timezone)
	}
	local := t.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	duration := SlotDurationOf(port)

	offset := local.Sub(dayStart)
	if offset%duration != 0 {
		return time.Time{}, time.Time{}, utils.ValidationError(
			"slot start %s does not align to a %s slot boundary",
			local.Format(time.RFC3339), duration)
	}
	end = local.Add(duration)
	if end.After(dayEnd) {
		end = dayEnd
	}
	return local, end, nil
}

// Availability derives the slot grid for one terminal and date. Pure read:
// occupancy is recomputed from the current booking set on every call.
func (s *DefaultBookingService) Availability(ctx context.Context, terminalID, date string) (*models.AvailabilityResponse, error) {
	terminal, port, err := s.resolveTerminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	dayStart, err := DayBounds(port, date)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	occupancy, err := s.Repo.OccupancyBySlot(ctx, terminalID, dayStart, dayEnd, models.ActiveBookingStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to compute occupancy: %w", err)
	}

	return &models.AvailabilityResponse{
		Slots:       BuildDayGrid(dayStart, SlotDurationOf(port), terminal.MaxCapacity, occupancy),
		MaxCapacity: terminal.MaxCapacity,
	}, nil
}
