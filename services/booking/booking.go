package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "portflow/database/repository/booking"
	fleetRepo "portflow/database/repository/fleet"
	registryRepo "portflow/database/repository/registry"
	"portflow/models"
	"portflow/utils"

	"github.com/google/uuid"
)

const createReferenceRetries = 3

// resolveTerminal loads a terminal and its owning port.
func (s *DefaultBookingService) resolveTerminal(ctx context.Context, terminalID string) (*models.Terminal, *models.Port, error) {
	terminal, err := s.Registry.GetTerminal(ctx, terminalID)
	if err != nil {
		if errors.Is(err, registryRepo.ErrNotFound) {
			return nil, nil, utils.NotFoundError("terminal %s not found", terminalID)
		}
		return nil, nil, fmt.Errorf("failed to resolve terminal: %w", err)
	}
	port, err := s.Registry.GetPort(ctx, terminal.PortID)
	if err != nil {
		if errors.Is(err, registryRepo.ErrNotFound) {
			return nil, nil, utils.NotFoundError("port %s not found", terminal.PortID)
		}
		return nil, nil, fmt.Errorf("failed to resolve port: %w", err)
	}
	return terminal, port, nil
}

// validateAssignment checks that the truck and driver belong to the carrier
// and are ACTIVE.
func (s *DefaultBookingService) validateAssignment(ctx context.Context, carrierID, truckID, driverID string) error {
	truck, err := s.Fleet.GetTruck(ctx, truckID)
	if err != nil {
		if errors.Is(err, fleetRepo.ErrNotFound) {
			return utils.NotFoundError("truck %s not found", truckID)
		}
		return fmt.Errorf("failed to resolve truck: %w", err)
	}
	if truck.CarrierID != carrierID {
		return utils.ForbiddenError("truck %s does not belong to carrier %s", truckID, carrierID)
	}
	if truck.Status != models.StatusActive {
		return utils.ValidationError("truck %s is suspended", truckID)
	}

	driver, err := s.Fleet.GetDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, fleetRepo.ErrNotFound) {
			return utils.NotFoundError("driver %s not found", driverID)
		}
		return fmt.Errorf("failed to resolve driver: %w", err)
	}
	if driver.CarrierID != carrierID {
		return utils.ForbiddenError("driver %s does not belong to carrier %s", driverID, carrierID)
	}
	if driver.Status != models.StatusActive {
		return utils.ValidationError("driver %s is suspended", driverID)
	}
	return nil
}

// CreateBooking validates the request and inserts a PENDING booking under a
// capacity guard. A capacity failure persists the booking as REJECTED so an
// operator can still force it in through ManualOverride, and surfaces
// CapacityExceeded to the caller.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, actor models.Actor, input models.CreateBookingInput) (*models.Booking, error) {
	if input.CarrierID == "" {
		return nil, utils.ValidationError("carrierId is required")
	}
	if input.SlotsCount == 0 {
		input.SlotsCount = 1
	}
	if input.SlotsCount < 1 {
		return nil, utils.ValidationError("slotsCount must be at least 1")
	}

	terminal, port, err := s.resolveTerminal(ctx, input.TerminalID)
	if err != nil {
		return nil, err
	}
	if err := s.validateAssignment(ctx, input.CarrierID, input.TruckID, input.DriverID); err != nil {
		return nil, err
	}
	slotStart, slotEnd, err := alignSlotStart(port, input.SlotStart)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:                 uuid.New().String(),
		TerminalID:         input.TerminalID,
		TruckID:            input.TruckID,
		CarrierID:          input.CarrierID,
		DriverID:           input.DriverID,
		SlotStart:          slotStart,
		SlotEnd:            slotEnd,
		SlotsCount:         input.SlotsCount,
		Status:             models.BookingPending,
		ContainerMatricule: input.ContainerMatricule,
		CreatedAt:          now,
	}

	for attempt := 0; attempt < createReferenceRetries; attempt++ {
		booking.BookingReference = newBookingReference(now)
		err = s.Repo.CreateWithCapacity(ctx, booking, terminal.MaxCapacity)
		if !errors.Is(err, bookingRepo.ErrDuplicateReference) {
			break
		}
	}
	if errors.Is(err, bookingRepo.ErrNoCapacity) {
		// Keep a REJECTED record so the request stays overridable and
		// traceable, then fail the create.
		booking.Status = models.BookingRejected
		if insertErr := s.Repo.Insert(ctx, booking); insertErr != nil {
			return nil, fmt.Errorf("failed to record rejected booking: %w", insertErr)
		}
		s.Audit.Record(ctx, actor, "BOOKING", booking.ID, models.ActionCreated,
			fmt.Sprintf("booking %s rejected at create: slot %s at terminal %s is full",
				booking.BookingReference, slotStart.Format(time.RFC3339), terminal.Name))
		return nil, utils.CapacityExceededError(
			"slot %s at terminal %s is at capacity (booking %s recorded as rejected)",
			slotStart.Format(time.RFC3339), terminal.Name, booking.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.Audit.Record(ctx, actor, "BOOKING", booking.ID, models.ActionCreated,
		fmt.Sprintf("booking %s created for slot %s at terminal %s",
			booking.BookingReference, slotStart.Format(time.RFC3339), terminal.Name))
	return booking, nil
}

// GetBooking retrieves one booking with display references populated.
func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundError("booking %s not found", id)
		}
		return nil, err
	}
	s.denormalize(ctx, booking)
	return booking, nil
}

// ListBookings retrieves bookings matching the filter with display
// references populated.
func (s *DefaultBookingService) ListBookings(ctx context.Context, filter models.BookingListFilter) ([]models.Booking, error) {
	bookings, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range bookings {
		s.denormalize(ctx, &bookings[i])
	}
	return bookings, nil
}

// denormalize attaches the minimal terminal/truck/driver views used by list
// and detail responses. Lookup failures leave the reference empty rather
// than failing the read.
func (s *DefaultBookingService) denormalize(ctx context.Context, booking *models.Booking) {
	if terminal, err := s.Registry.GetTerminal(ctx, booking.TerminalID); err == nil {
		booking.Terminal = &models.TerminalRef{ID: terminal.ID, Name: terminal.Name}
	}
	if truck, err := s.Fleet.GetTruck(ctx, booking.TruckID); err == nil {
		booking.Truck = &models.TruckRef{ID: truck.ID, PlateNumber: truck.PlateNumber}
	}
	if driver, err := s.Fleet.GetDriver(ctx, booking.DriverID); err == nil {
		ref := &models.DriverRef{ID: driver.ID}
		if driver.User != nil {
			ref.FullName = driver.User.FullName
		}
		booking.Driver = ref
	}
}
