package exception

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	registryRepo "portflow/database/repository/registry"
	"portflow/models"
	"portflow/services/booking"
	"portflow/utils"
)

// DefaultStaleWindow flags PENDING bookings this close to their slot.
const DefaultStaleWindow = 2 * time.Hour

func (s *DefaultDetectorService) staleWindow() time.Duration {
	if s.StaleWindow > 0 {
		return s.StaleWindow
	}
	return DefaultStaleWindow
}

func (s *DefaultDetectorService) resolveTerminal(ctx context.Context, terminalID string) (*models.Terminal, *models.Port, error) {
	terminal, err := s.Registry.GetTerminal(ctx, terminalID)
	if err != nil {
		if errors.Is(err, registryRepo.ErrNotFound) {
			return nil, nil, utils.NotFoundError("terminal %s not found", terminalID)
		}
		return nil, nil, fmt.Errorf("failed to resolve terminal: %w", err)
	}
	port, err := s.Registry.GetPort(ctx, terminal.PortID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve port: %w", err)
	}
	return terminal, port, nil
}

// ListExceptions scans the terminal's bookings for the day and reports, in
// order: overbooked slots (HIGH), stale pending bookings (MEDIUM) and
// orphaned confirmed bookings (WARNING).
func (s *DefaultDetectorService) ListExceptions(ctx context.Context, terminalID, date string) ([]models.Exception, error) {
	terminal, port, err := s.resolveTerminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	dayStart, err := booking.DayBounds(port, date)
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
	exceptions := s.overbookedSlots(terminal, bookings)
	exceptions = append(exceptions, s.stalePending(bookings, now)...)
	exceptions = append(exceptions, s.orphanedConfirmed(bookings, now)...)
	return exceptions, nil
}

// overbookedSlots reports one HIGH exception per slot whose active occupancy
// exceeds the terminal's max capacity, e.g. after a manual override.
func (s *DefaultDetectorService) overbookedSlots(terminal *models.Terminal, bookings []models.Booking) []models.Exception {
	type slotGroup struct {
		booked   int
		bookings []models.Booking
	}
	groups := make(map[time.Time]*slotGroup)
	for _, b := range bookings {
		if b.Status != models.BookingPending && b.Status != models.BookingConfirmed && b.Status != models.BookingConsumed {
			continue
		}
		key := b.SlotStart.UTC()
		group, ok := groups[key]
		if !ok {
			group = &slotGroup{}
			groups[key] = group
		}
		group.booked += b.SlotsCount
		group.bookings = append(group.bookings, b)
	}

	starts := make([]time.Time, 0, len(groups))
	for start := range groups {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	var exceptions []models.Exception
	for _, start := range starts {
		group := groups[start]
		if group.booked <= terminal.MaxCapacity {
			continue
		}
		excess := group.booked - terminal.MaxCapacity
		exceptions = append(exceptions, models.Exception{
			Type:        models.ExceptionOverbookedSlot,
			Severity:    models.SeverityHigh,
			Message:     fmt.Sprintf("slot %s is overbooked by %d unit(s)", start.Format(time.RFC3339), excess),
			SlotStart:   start,
			ExcessCount: excess,
			Bookings:    group.bookings,
		})
	}
	return exceptions
}

// stalePending reports PENDING bookings whose slot starts within the stale
// window and are still unconfirmed.
func (s *DefaultDetectorService) stalePending(bookings []models.Booking, now time.Time) []models.Exception {
	var exceptions []models.Exception
	for _, b := range bookings {
		if b.Status != models.BookingPending {
			continue
		}
		if b.SlotStart.Sub(now) >= s.staleWindow() {
			continue
		}
		exceptions = append(exceptions, models.Exception{
			Type:             models.ExceptionStalePending,
			Severity:         models.SeverityMedium,
			Message:          fmt.Sprintf("booking %s is still pending %.0f minutes before its slot", b.BookingReference, b.SlotStart.Sub(now).Minutes()),
			BookingID:        b.ID,
			BookingReference: b.BookingReference,
			SlotStart:        b.SlotStart,
		})
	}
	return exceptions
}

// orphanedConfirmed reports CONFIRMED bookings whose slot has started without
// the truck checking in or the booking being cancelled.
func (s *DefaultDetectorService) orphanedConfirmed(bookings []models.Booking, now time.Time) []models.Exception {
	var exceptions []models.Exception
	for _, b := range bookings {
		if b.Status != models.BookingConfirmed || !b.SlotStart.Before(now) {
			continue
		}
		exceptions = append(exceptions, models.Exception{
			Type:             models.ExceptionOrphanedConfirmed,
			Severity:         models.SeverityWarning,
			Message:          fmt.Sprintf("booking %s was confirmed but never arrived", b.BookingReference),
			BookingID:        b.ID,
			BookingReference: b.BookingReference,
			SlotStart:        b.SlotStart,
		})
	}
	return exceptions
}

// ExceptionSummary aggregates today's exceptions for the terminal.
func (s *DefaultDetectorService) ExceptionSummary(ctx context.Context, terminalID string) (*models.ExceptionSummary, error) {
	exceptions, err := s.ListExceptions(ctx, terminalID, "")
	if err != nil {
		return nil, err
	}
	summary := &models.ExceptionSummary{
		Total:      len(exceptions),
		ByType:     make(map[string]int),
		BySeverity: make(map[string]int),
	}
	for _, e := range exceptions {
		summary.ByType[e.Type]++
		summary.BySeverity[e.Severity]++
	}
	return summary, nil
}
