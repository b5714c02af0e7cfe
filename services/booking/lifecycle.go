package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "portflow/database/repository/booking"
	"portflow/models"
	"portflow/utils"
)

// ConfirmBooking transitions PENDING to CONFIRMED, re-validating the
// confirmed occupancy of the slot inside the repository transaction. When
// two pending bookings race for the last confirmed unit, exactly one wins.
func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("booking %s not found", id)
		}
		return nil, err
	}
	if booking.Status != models.BookingPending {
		return nil, utils.InvalidStateError("booking %s is %s, only PENDING bookings can be confirmed", id, booking.Status)
	}

	terminal, _, err := s.resolveTerminal(ctx, booking.TerminalID)
	if err != nil {
		return nil, err
	}

	switch err := s.Repo.ConfirmWithCapacity(ctx, id, terminal.MaxCapacity); {
	case errors.Is(err, bookingRepo.ErrNoCapacity):
		return nil, utils.CapacityExceededError("slot %s at terminal %s is at confirmed capacity",
			booking.SlotStart.Format(time.RFC3339), terminal.Name)
	case errors.Is(err, bookingRepo.ErrStaleStatus):
		return nil, utils.InvalidStateError("booking %s is no longer PENDING", id)
	case errors.Is(err, bookingRepo.ErrNotFound):
		return nil, utils.NotFoundError("booking %s not found", id)
	case err != nil:
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	booking.Status = models.BookingConfirmed
	s.Audit.Record(ctx, actor, "BOOKING", id, models.ActionConfirmed,
		fmt.Sprintf("booking %s confirmed", booking.BookingReference))
	s.notify(ctx, booking, models.ActionConfirmed)
	return booking, nil
}

// RejectBooking transitions PENDING to REJECTED.
func (s *DefaultBookingService) RejectBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("booking %s not found", id)
		}
		return nil, err
	}
	if booking.Status != models.BookingPending {
		return nil, utils.InvalidStateError("booking %s is %s, only PENDING bookings can be rejected", id, booking.Status)
	}

	switch err := s.Repo.UpdateStatus(ctx, id, []string{models.BookingPending}, models.BookingRejected); {
	case errors.Is(err, bookingRepo.ErrStaleStatus):
		return nil, utils.InvalidStateError("booking %s is no longer PENDING", id)
	case errors.Is(err, bookingRepo.ErrNotFound):
		return nil, utils.NotFoundError("booking %s not found", id)
	case err != nil:
		return nil, fmt.Errorf("failed to reject booking: %w", err)
	}

	booking.Status = models.BookingRejected
	s.Audit.Record(ctx, actor, "BOOKING", id, models.ActionRejected,
		fmt.Sprintf("booking %s rejected", booking.BookingReference))
	s.notify(ctx, booking, models.ActionRejected)
	return booking, nil
}

// CancelBooking cancels a PENDING or CONFIRMED booking before its slot
// starts. Only the owning carrier may cancel; an empty carrierID skips the
// ownership check.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, actor models.Actor, id, carrierID string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("booking %s not found", id)
		}
		return nil, err
	}
	if carrierID != "" && booking.CarrierID != carrierID {
		return nil, utils.ForbiddenError("booking %s belongs to another carrier", id)
	}
	if models.IsTerminalStatus(booking.Status) {
		return nil, utils.InvalidStateError("booking %s is already %s", id, booking.Status)
	}
	if !time.Now().Before(booking.SlotStart) {
		return nil, utils.ForbiddenError("booking %s can no longer be cancelled: slot already started", id)
	}

	switch err := s.Repo.UpdateStatus(ctx, id,
		[]string{models.BookingPending, models.BookingConfirmed}, models.BookingCancelled); {
	case errors.Is(err, bookingRepo.ErrStaleStatus):
		return nil, utils.InvalidStateError("booking %s changed state concurrently", id)
	case errors.Is(err, bookingRepo.ErrNotFound):
		return nil, utils.NotFoundError("booking %s not found", id)
	case err != nil:
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = models.BookingCancelled
	s.Audit.Record(ctx, actor, "BOOKING", id, models.ActionCancelled,
		fmt.Sprintf("booking %s cancelled", booking.BookingReference))
	s.notify(ctx, booking, models.ActionCancelled)
	return booking, nil
}

// ConsumeBooking transitions CONFIRMED to CONSUMED. Invoked by the gate scan
// path after the token has been consumed; the CAS on status keeps a racing
// double-scan from checking the same booking in twice.
func (s *DefaultBookingService) ConsumeBooking(ctx context.Context, actor models.Actor, id string) (*models.Booking, error) {
	switch err := s.Repo.UpdateStatus(ctx, id, []string{models.BookingConfirmed}, models.BookingConsumed); {
	case errors.Is(err, bookingRepo.ErrStaleStatus):
		return nil, utils.InvalidStateError("booking %s is not CONFIRMED", id)
	case errors.Is(err, bookingRepo.ErrNotFound):
		return nil, utils.NotFoundError("booking %s not found", id)
	case err != nil:
		return nil, fmt.Errorf("failed to consume booking: %w", err)
	}

	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, actor, "BOOKING", id, models.ActionCheckedIn,
		fmt.Sprintf("booking %s checked in at gate", booking.BookingReference))
	return booking, nil
}

// ReassignSlot moves a non-terminal booking to a new slot, subject to a
// capacity check on the destination.
func (s *DefaultBookingService) ReassignSlot(ctx context.Context, actor models.Actor, id string, newSlotStart time.Time) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("booking %s not found", id)
		}
		return nil, err
	}
	if models.IsTerminalStatus(booking.Status) {
		return nil, utils.InvalidStateError("booking %s is %s and cannot be reassigned", id, booking.Status)
	}

	terminal, port, err := s.resolveTerminal(ctx, booking.TerminalID)
	if err != nil {
		return nil, err
	}
	newStart, newEnd, err := alignSlotStart(port, newSlotStart)
	if err != nil {
		return nil, err
	}

	switch err := s.Repo.ReassignWithCapacity(ctx, id, newStart, newEnd, terminal.MaxCapacity); {
	case errors.Is(err, bookingRepo.ErrNoCapacity):
		return nil, utils.CapacityExceededError("slot %s at terminal %s is full",
			newStart.Format(time.RFC3339), terminal.Name)
	case errors.Is(err, bookingRepo.ErrStaleStatus):
		return nil, utils.InvalidStateError("booking %s changed state concurrently", id)
	case errors.Is(err, bookingRepo.ErrNotFound):
		return nil, utils.NotFoundError("booking %s not found", id)
	case err != nil:
		return nil, fmt.Errorf("failed to reassign booking: %w", err)
	}

	booking.SlotStart = newStart
	booking.SlotEnd = newEnd
	s.Audit.Record(ctx, actor, "BOOKING", id, models.ActionReassigned,
		fmt.Sprintf("booking %s reassigned to slot %s", booking.BookingReference, newStart.Format(time.RFC3339)))
	s.notify(ctx, booking, models.ActionReassigned)
	return booking, nil
}

// ModifyBooking mutates truck/driver/terminal assignment of a non-terminal
// booking. The new assignment must satisfy the same ownership and status
// rules as creation.
func (s *DefaultBookingService) ModifyBooking(ctx context.Context, actor models.Actor, id string, input models.ModifyBookingInput) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("booking %s not found", id)
		}
		return nil, err
	}
	if models.IsTerminalStatus(booking.Status) {
		return nil, utils.InvalidStateError("booking %s is %s and cannot be modified", id, booking.Status)
	}

	truckID := booking.TruckID
	if input.TruckID != "" {
		truckID = input.TruckID
	}
	driverID := booking.DriverID
	if input.DriverID != "" {
		driverID = input.DriverID
	}
	if err := s.validateAssignment(ctx, booking.CarrierID, truckID, driverID); err != nil {
		return nil, err
	}
	if input.TerminalID != "" {
		if _, _, err := s.resolveTerminal(ctx, input.TerminalID); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.Modify(ctx, id, input); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("booking %s not found", id)
		}
		return nil, fmt.Errorf("failed to modify booking: %w", err)
	}

	updated, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Audit.Record(ctx, actor, "BOOKING", id, models.ActionModified,
		fmt.Sprintf("booking %s assignment modified", booking.BookingReference))
	return updated, nil
}

// ManualOverride forces a booking to CONFIRMED regardless of capacity and
// current state, except consumed bookings. The overallocation it may create
// is surfaced by the exception detector until resolved; that visibility is
// the contract of the escape hatch.
func (s *DefaultBookingService) ManualOverride(ctx context.Context, actor models.Actor, id, reason string) (*models.Booking, error) {
	if reason == "" {
		return nil, utils.ValidationError("override reason is required")
	}
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("booking %s not found", id)
		}
		return nil, err
	}
	if booking.Status == models.BookingConsumed {
		return nil, utils.InvalidStateError("booking %s is already consumed", id)
	}

	if err := s.Repo.ForceStatus(ctx, id, models.BookingConfirmed, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("booking %s not found", id)
		}
		return nil, fmt.Errorf("failed to override booking: %w", err)
	}

	booking.Status = models.BookingConfirmed
	booking.OverrideReason = reason
	s.Audit.Record(ctx, actor, "BOOKING", id, models.ActionOverridden,
		fmt.Sprintf("booking %s force-confirmed: %s", booking.BookingReference, reason))
	s.notify(ctx, booking, models.ActionOverridden)
	return booking, nil
}
