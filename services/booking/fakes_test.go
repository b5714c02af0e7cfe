package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "portflow/database/repository/booking"
	fleetRepo "portflow/database/repository/fleet"
	registryRepo "portflow/database/repository/registry"
	"portflow/models"
)

// memBookingRepo mirrors the capacity semantics of the mongo repository with
// a mutex standing in for the session transaction.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memBookingRepo) occupancy(terminalID string, slotStart, slotEnd time.Time, statuses []string) int {
	want := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}
	total := 0
	for _, b := range r.bookings {
		if b.TerminalID != terminalID || !want[b.Status] {
			continue
		}
		if b.SlotStart.Before(slotEnd) && !b.SlotStart.Before(slotStart) {
			total += b.SlotsCount
		}
	}
	return total
}

func (r *memBookingRepo) CreateWithCapacity(ctx context.Context, booking *models.Booking, maxCapacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BookingReference == booking.BookingReference {
			return bookingRepo.ErrDuplicateReference
		}
	}
	used := r.occupancy(booking.TerminalID, booking.SlotStart, booking.SlotEnd, models.ActiveBookingStatuses)
	if used+booking.SlotsCount > maxCapacity {
		return bookingRepo.ErrNoCapacity
	}
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *memBookingRepo) Insert(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *booking
	r.bookings[booking.ID] = &clone
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memBookingRepo) List(ctx context.Context, filter models.BookingListFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.CarrierID != "" && b.CarrierID != filter.CarrierID {
			continue
		}
		if filter.TerminalID != "" && b.TerminalID != filter.TerminalID {
			continue
		}
		if !filter.From.IsZero() && b.SlotStart.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !b.SlotStart.Before(filter.To) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *memBookingRepo) UpdateStatus(ctx context.Context, id string, from []string, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	for _, status := range from {
		if b.Status == status {
			b.Status = to
			return nil
		}
	}
	return bookingRepo.ErrStaleStatus
}

func (r *memBookingRepo) ConfirmWithCapacity(ctx context.Context, id string, maxCapacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != models.BookingPending {
		return bookingRepo.ErrStaleStatus
	}
	confirmed := r.occupancy(b.TerminalID, b.SlotStart, b.SlotEnd,
		[]string{models.BookingConfirmed, models.BookingConsumed})
	if confirmed+b.SlotsCount > maxCapacity {
		return bookingRepo.ErrNoCapacity
	}
	b.Status = models.BookingConfirmed
	return nil
}

func (r *memBookingRepo) ReassignWithCapacity(ctx context.Context, id string, newStart, newEnd time.Time, maxCapacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if models.IsTerminalStatus(b.Status) {
		return bookingRepo.ErrStaleStatus
	}
	used := r.occupancy(b.TerminalID, newStart, newEnd, models.ActiveBookingStatuses)
	if used+b.SlotsCount > maxCapacity {
		return bookingRepo.ErrNoCapacity
	}
	b.SlotStart = newStart
	b.SlotEnd = newEnd
	return nil
}

func (r *memBookingRepo) ForceStatus(ctx context.Context, id, to, overrideReason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Status = to
	b.OverrideReason = overrideReason
	return nil
}

func (r *memBookingRepo) Modify(ctx context.Context, id string, input models.ModifyBookingInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if input.TruckID != "" {
		b.TruckID = input.TruckID
	}
	if input.DriverID != "" {
		b.DriverID = input.DriverID
	}
	if input.TerminalID != "" {
		b.TerminalID = input.TerminalID
	}
	return nil
}

func (r *memBookingRepo) OccupancyBySlot(ctx context.Context, terminalID string, from, to time.Time, statuses []string) (map[time.Time]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}
	out := make(map[time.Time]int)
	for _, b := range r.bookings {
		if b.TerminalID != terminalID || !want[b.Status] {
			continue
		}
		if b.SlotStart.Before(from) || !b.SlotStart.Before(to) {
			continue
		}
		out[b.SlotStart.UTC()] += b.SlotsCount
	}
	return out, nil
}

func (r *memBookingRepo) SlotOccupancy(ctx context.Context, terminalID string, slotStart, slotEnd time.Time, statuses []string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.occupancy(terminalID, slotStart, slotEnd, statuses), nil
}

func (r *memBookingRepo) CountByStatus(ctx context.Context, terminalID string, from, to time.Time) ([]models.StatusCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for _, b := range r.bookings {
		if terminalID != "" && b.TerminalID != terminalID {
			continue
		}
		if b.SlotStart.Before(from) || !b.SlotStart.Before(to) {
			continue
		}
		counts[b.Status]++
	}
	var out []models.StatusCount
	for status, count := range counts {
		out = append(out, models.StatusCount{Status: status, Count: count})
	}
	return out, nil
}

// memRegistry serves the terminal/port lookups; everything else panics via
// the embedded nil interface.
type memRegistry struct {
	registryRepo.RegistryRepository
	ports     map[string]*models.Port
	terminals map[string]*models.Terminal
}

func (r *memRegistry) GetPort(ctx context.Context, id string) (*models.Port, error) {
	p, ok := r.ports[id]
	if !ok {
		return nil, registryRepo.ErrNotFound
	}
	return p, nil
}

func (r *memRegistry) GetTerminal(ctx context.Context, id string) (*models.Terminal, error) {
	t, ok := r.terminals[id]
	if !ok {
		return nil, registryRepo.ErrNotFound
	}
	return t, nil
}

// memFleet serves the truck/driver lookups used by assignment validation.
type memFleet struct {
	fleetRepo.FleetRepository
	trucks  map[string]*models.Truck
	drivers map[string]*models.Driver
}

func (r *memFleet) GetTruck(ctx context.Context, id string) (*models.Truck, error) {
	t, ok := r.trucks[id]
	if !ok {
		return nil, fleetRepo.ErrNotFound
	}
	return t, nil
}

func (r *memFleet) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	d, ok := r.drivers[id]
	if !ok {
		return nil, fleetRepo.ErrNotFound
	}
	return d, nil
}

// memRecorder captures audit appends for assertions.
type memRecorder struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (r *memRecorder) Record(ctx context.Context, actor models.Actor, entityType, entityID, action, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, models.AuditLog{
		ActorType:   actor.Type,
		ActorID:     actor.ID,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		CreatedAt:   time.Now(),
	})
}

func (r *memRecorder) Query(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditLog, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *memRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

// memEvents captures lifecycle notifications.
type memEvents struct {
	mu      sync.Mutex
	actions []string
}

func (e *memEvents) BookingStatusChanged(ctx context.Context, booking *models.Booking, action string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.actions = append(e.actions, action)
}
