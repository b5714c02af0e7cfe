package bookingRepo

import (
	"context"
	"errors"
	"time"

	"portflow/models"
)

// Sentinel outcomes of guarded booking writes. Services translate these
// into their own error taxonomy.
var (
	// ErrNotFound is returned when no booking matches the query.
	ErrNotFound = errors.New("booking not found")
	// ErrNoCapacity is returned when a capacity-guarded write would exceed
	// the terminal's max capacity for the slot.
	ErrNoCapacity = errors.New("insufficient slot capacity")
	// ErrStaleStatus is returned when a compare-and-set transition finds the
	// booking no longer in any of the expected statuses.
	ErrStaleStatus = errors.New("booking status changed concurrently")
	// ErrDuplicateReference is returned when a generated booking reference
	// collides with an existing one.
	ErrDuplicateReference = errors.New("duplicate booking reference")
)

// BookingRepository defines data access for bookings, including the
// capacity-guarded writes that serialize slot accounting.
type BookingRepository interface {
	// CreateWithCapacity inserts the booking only if the occupancy of its
	// slot, counting PENDING/CONFIRMED/CONSUMED bookings, stays within
	// maxCapacity after adding booking.SlotsCount. Returns ErrNoCapacity
	// otherwise.
	CreateWithCapacity(ctx context.Context, booking *models.Booking, maxCapacity int) error
	// Insert writes the booking unconditionally.
	Insert(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// List retrieves bookings matching the filter, newest first.
	List(ctx context.Context, filter models.BookingListFilter) ([]models.Booking, error)
	// UpdateStatus transitions the booking from one of the expected statuses
	// to the target status. Returns ErrStaleStatus when the booking is no
	// longer in an expected status.
	UpdateStatus(ctx context.Context, id string, from []string, to string) error
	// ConfirmWithCapacity transitions a PENDING booking to CONFIRMED only if
	// the confirmed occupancy (CONFIRMED/CONSUMED) of its slot stays within
	// maxCapacity after adding the booking's SlotsCount.
	ConfirmWithCapacity(ctx context.Context, id string, maxCapacity int) error
	// ReassignWithCapacity moves a non-terminal booking to a new slot only
	// if the destination slot has capacity for it.
	ReassignWithCapacity(ctx context.Context, id string, newStart, newEnd time.Time, maxCapacity int) error
	// ForceStatus sets the status unconditionally, bypassing capacity.
	ForceStatus(ctx context.Context, id, to, overrideReason string) error
	// Modify mutates assignment fields of a booking.
	Modify(ctx context.Context, id string, input models.ModifyBookingInput) error
	// OccupancyBySlot sums SlotsCount per slot start over the given statuses
	// for bookings of the terminal within [from, to).
	OccupancyBySlot(ctx context.Context, terminalID string, from, to time.Time, statuses []string) (map[time.Time]int, error)
	// SlotOccupancy sums SlotsCount for bookings of the terminal in
	// [slotStart, slotEnd) with one of the given statuses.
	SlotOccupancy(ctx context.Context, terminalID string, slotStart, slotEnd time.Time, statuses []string) (int, error)
	// CountByStatus groups bookings of the window by status.
	CountByStatus(ctx context.Context, terminalID string, from, to time.Time) ([]models.StatusCount, error)
}
