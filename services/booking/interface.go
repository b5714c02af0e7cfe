package booking

import (
	"context"
	"time"

	auditSvc "portflow/services/audit"

	bookingRepo "portflow/database/repository/booking"
	fleetRepo "portflow/database/repository/fleet"
	registryRepo "portflow/database/repository/registry"
	"portflow/models"
)

// BookingService manages the booking lifecycle and the derived slot grid.
type BookingService interface {
	CreateBooking(ctx context.Context, actor models.Actor, input models.CreateBookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, filter models.BookingListFilter) ([]models.Booking, error)
	ConfirmBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	RejectBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	// CancelBooking cancels on behalf of the owning carrier. An empty
	// carrierID skips the ownership check (admin path).
	CancelBooking(ctx context.Context, actor models.Actor, id, carrierID string) (*models.Booking, error)
	// ConsumeBooking transitions CONFIRMED to CONSUMED. Called from the gate
	// scan path only.
	ConsumeBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error)
	BulkConfirm(ctx context.Context, actor models.Actor, ids []string) models.BulkResult
	BulkReject(ctx context.Context, actor models.Actor, ids []string) models.BulkResult
	ReassignSlot(ctx context.Context, actor models.Actor, id string, newSlotStart time.Time) (*models.Booking, error)
	ModifyBooking(ctx context.Context, actor models.Actor, id string, input models.ModifyBookingInput) (*models.Booking, error)
	// ManualOverride forces CONFIRMED regardless of capacity. The resulting
	// overallocation stays visible to the exception detector until resolved.
	ManualOverride(ctx context.Context, actor models.Actor, id, reason string) (*models.Booking, error)
	// Availability derives the slot grid for one terminal and date.
	Availability(ctx context.Context, terminalID, date string) (*models.AvailabilityResponse, error)
}

// Events receives booking state-change notifications. Implementations must
// not fail the transition; they are invoked after the write commits.
type Events interface {
	BookingStatusChanged(ctx context.Context, booking *models.Booking, action string)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	Registry registryRepo.RegistryRepository
	Fleet    fleetRepo.FleetRepository
	Audit    auditSvc.Recorder
	Events   Events
}

func (s *DefaultBookingService) notify(ctx context.Context, booking *models.Booking, action string) {
	if s.Events != nil {
		s.Events.BookingStatusChanged(ctx, booking, action)
	}
}
