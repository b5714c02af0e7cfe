package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portflow/models"
	"portflow/utils"
)

var testActor = models.Actor{Type: models.ActorUser, ID: "user-1"}

type bookingFixture struct {
	svc      *DefaultBookingService
	repo     *memBookingRepo
	registry *memRegistry
	audit    *memRecorder
	events   *memEvents
	slot     time.Time
}

// newBookingFixture wires a service against in-memory stores: one UTC port
// with hour slots, one terminal with the given capacity, one carrier with an
// active truck and driver.
func newBookingFixture(t *testing.T, maxCapacity int) *bookingFixture {
	t.Helper()
	repo := newMemBookingRepo()
	registry := &memRegistry{
		ports: map[string]*models.Port{
			"port-1": {ID: "port-1", Name: "Casablanca", SlotDuration: 60, Timezone: "UTC"},
		},
		terminals: map[string]*models.Terminal{
			"term-1": {ID: "term-1", PortID: "port-1", Name: "North Gate", MaxCapacity: maxCapacity},
		},
	}
	fleet := &memFleet{
		trucks: map[string]*models.Truck{
			"truck-1": {ID: "truck-1", CarrierID: "carrier-1", PlateNumber: "A-1001", Status: models.StatusActive},
			"truck-2": {ID: "truck-2", CarrierID: "carrier-1", PlateNumber: "A-1002", Status: models.StatusActive},
			"truck-suspended": {ID: "truck-suspended", CarrierID: "carrier-1", Status: models.StatusSuspended},
			"truck-foreign":   {ID: "truck-foreign", CarrierID: "carrier-2", Status: models.StatusActive},
		},
		drivers: map[string]*models.Driver{
			"driver-1": {ID: "driver-1", CarrierID: "carrier-1", Status: models.StatusActive},
		},
	}
	recorder := &memRecorder{}
	events := &memEvents{}
	svc := &DefaultBookingService{
		Repo:     repo,
		Registry: registry,
		Fleet:    fleet,
		Audit:    recorder,
		Events:   events,
	}
	return &bookingFixture{
		svc:      svc,
		repo:     repo,
		registry: registry,
		audit:    recorder,
		events:   events,
		slot:     time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour),
	}
}

func (f *bookingFixture) createInput() models.CreateBookingInput {
	return models.CreateBookingInput{
		TerminalID: "term-1",
		TruckID:    "truck-1",
		DriverID:   "driver-1",
		CarrierID:  "carrier-1",
		SlotStart:  f.slot,
	}
}

func (f *bookingFixture) mustCreate(t *testing.T) *models.Booking {
	t.Helper()
	booking, err := f.svc.CreateBooking(context.Background(), testActor, f.createInput())
	require.NoError(t, err)
	return booking
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture(t, 2)

	booking := f.mustCreate(t)

	assert.Equal(t, models.BookingPending, booking.Status)
	assert.Equal(t, 1, booking.SlotsCount)
	assert.True(t, strings.HasPrefix(booking.BookingReference, "PF-"))
	assert.Equal(t, f.slot, booking.SlotStart)
	assert.Equal(t, f.slot.Add(time.Hour), booking.SlotEnd)
	assert.Equal(t, []string{models.ActionCreated}, f.audit.actions())
}

func TestCreateBooking_MisalignedSlot(t *testing.T) {
	f := newBookingFixture(t, 2)
	input := f.createInput()
	input.SlotStart = f.slot.Add(10 * time.Minute)

	_, err := f.svc.CreateBooking(context.Background(), testActor, input)

	assert.Equal(t, utils.CodeValidation, utils.CodeOf(err))
}

func TestCreateBooking_SuspendedTruck(t *testing.T) {
	f := newBookingFixture(t, 2)
	input := f.createInput()
	input.TruckID = "truck-suspended"

	_, err := f.svc.CreateBooking(context.Background(), testActor, input)

	assert.Equal(t, utils.CodeValidation, utils.CodeOf(err))
}

func TestCreateBooking_ForeignTruck(t *testing.T) {
	f := newBookingFixture(t, 2)
	input := f.createInput()
	input.TruckID = "truck-foreign"

	_, err := f.svc.CreateBooking(context.Background(), testActor, input)

	assert.Equal(t, utils.CodeForbidden, utils.CodeOf(err))
}

func TestCreateBooking_UnknownTerminal(t *testing.T) {
	f := newBookingFixture(t, 2)
	input := f.createInput()
	input.TerminalID = "term-missing"

	_, err := f.svc.CreateBooking(context.Background(), testActor, input)

	assert.Equal(t, utils.CodeNotFound, utils.CodeOf(err))
}

func TestCreateBooking_CapacityExceededRecordsRejected(t *testing.T) {
	f := newBookingFixture(t, 2)
	ctx := context.Background()
	f.mustCreate(t)
	f.mustCreate(t)

	_, err := f.svc.CreateBooking(ctx, testActor, f.createInput())
	assert.Equal(t, utils.CodeCapacityExceeded, utils.CodeOf(err))

	rejected, listErr := f.repo.List(ctx, models.BookingListFilter{Status: models.BookingRejected})
	require.NoError(t, listErr)
	require.Len(t, rejected, 1)
	assert.Contains(t, err.Error(), rejected[0].ID)
}

func TestManualOverride_ForcesRejectedCreate(t *testing.T) {
	f := newBookingFixture(t, 1)
	ctx := context.Background()
	f.mustCreate(t)

	_, err := f.svc.CreateBooking(ctx, testActor, f.createInput())
	require.Equal(t, utils.CodeCapacityExceeded, utils.CodeOf(err))
	rejected, _ := f.repo.List(ctx, models.BookingListFilter{Status: models.BookingRejected})
	require.Len(t, rejected, 1)

	booking, err := f.svc.ManualOverride(ctx, testActor, rejected[0].ID, "vessel delayed, gate window extended")
	require.NoError(t, err)

	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, "vessel delayed, gate window extended", booking.OverrideReason)
	assert.Contains(t, f.events.actions, models.ActionOverridden)
}

func TestManualOverride_RequiresReason(t *testing.T) {
	f := newBookingFixture(t, 2)
	booking := f.mustCreate(t)

	_, err := f.svc.ManualOverride(context.Background(), testActor, booking.ID, "")

	assert.Equal(t, utils.CodeValidation, utils.CodeOf(err))
}

func TestManualOverride_RefusesConsumed(t *testing.T) {
	f := newBookingFixture(t, 2)
	ctx := context.Background()
	booking := f.mustCreate(t)
	_, err := f.svc.ConfirmBooking(ctx, testActor, booking.ID)
	require.NoError(t, err)
	_, err = f.svc.ConsumeBooking(ctx, testActor, booking.ID)
	require.NoError(t, err)

	_, err = f.svc.ManualOverride(ctx, testActor, booking.ID, "late arrival")

	assert.Equal(t, utils.CodeInvalidState, utils.CodeOf(err))
}

func TestConfirmBooking(t *testing.T) {
	f := newBookingFixture(t, 2)
	booking := f.mustCreate(t)

	confirmed, err := f.svc.ConfirmBooking(context.Background(), testActor, booking.ID)
	require.NoError(t, err)

	assert.Equal(t, models.BookingConfirmed, confirmed.Status)
	assert.Equal(t, []string{models.ActionConfirmed}, f.events.actions)

	stored, err := f.repo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
}

func TestConfirmBooking_OnlyPending(t *testing.T) {
	f := newBookingFixture(t, 2)
	ctx := context.Background()
	booking := f.mustCreate(t)
	_, err := f.svc.ConfirmBooking(ctx, testActor, booking.ID)
	require.NoError(t, err)

	_, err = f.svc.ConfirmBooking(ctx, testActor, booking.ID)

	assert.Equal(t, utils.CodeInvalidState, utils.CodeOf(err))
}

func TestConfirmBooking_CapacityRecheck(t *testing.T) {
	// Two PENDING bookings fit within create capacity 2, but a confirmed
	// capacity of 1 admits only one of them.
	f := newBookingFixture(t, 2)
	ctx := context.Background()
	first := f.mustCreate(t)
	second := f.mustCreate(t)
	f.registry.terminals["term-1"].MaxCapacity = 1

	_, err := f.svc.ConfirmBooking(ctx, testActor, first.ID)
	require.NoError(t, err)

	_, err = f.svc.ConfirmBooking(ctx, testActor, second.ID)
	assert.Equal(t, utils.CodeCapacityExceeded, utils.CodeOf(err))
}

func TestConfirmBooking_ConcurrentLastUnit(t *testing.T) {
	f := newBookingFixture(t, 2)
	ctx := context.Background()
	first := f.mustCreate(t)
	second := f.mustCreate(t)
	f.registry.terminals["term-1"].MaxCapacity = 1

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = f.svc.ConfirmBooking(ctx, testActor, id)
		}(i, id)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, utils.CodeCapacityExceeded, utils.CodeOf(err))
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestRejectBooking(t *testing.T) {
	f := newBookingFixture(t, 2)
	booking := f.mustCreate(t)

	rejected, err := f.svc.RejectBooking(context.Background(), testActor, booking.ID)
	require.NoError(t, err)

	assert.Equal(t, models.BookingRejected, rejected.Status)
	assert.Equal(t, []string{models.ActionRejected}, f.events.actions)
}

func TestRejectBooking_OnlyPending(t *testing.T) {
	f := newBookingFixture(t, 2)
	ctx := context.Background()
	booking := f.mustCreate(t)
	_, err := f.svc.ConfirmBooking(ctx, testActor, booking.ID)
	require.NoError(t, err)

	_, err = f.svc.RejectBooking(ctx, testActor, booking.ID)

	assert.Equal(t, utils.CodeInvalidState, utils.CodeOf(err))
}

func TestCancelBooking(t *testing.T) {
	f := newBookingFixture(t, 2)
	booking := f.mustCreate(t)

	cancelled, err := f.svc.CancelBooking(context.Background(), testActor, booking.ID, "carrier-1")
	require.NoError(t, err)

	assert.Equal(t, models.BookingCancelled, cancelled.Status)
}

func TestCancelBooking_OtherCarrier(t *testing.T) {
	f := newBookingFixture(t, 2)
	booking := f.mustCreate(t)

	_, err := f.svc.CancelBooking(context.Background(), testActor, booking.ID, "carrier-2")

	assert.Equal(t, utils.CodeForbidden, utils.CodeOf(err))
}

func TestCancelBooking_SlotAlreadyStarted(t *testing.T) {
	f := newBookingFixture(t, 2)
	f.slot = time.Now().UTC().Add(-2 * time.Hour).Truncate(time.Hour)
	booking := f.mustCreate(t)

	_, err := f.svc.CancelBooking(context.Background(), testActor, booking.ID, "carrier-1")

	assert.Equal(t, utils.CodeForbidden, utils.CodeOf(err))
}

func TestCancelBooking_TerminalStatus(t *testing.T) {
	f := newBookingFixture(t, 2)
	ctx := context.Background()
	booking := f.mustCreate(t)
	_, err := f.svc.RejectBooking(ctx, testActor, booking.ID)
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(ctx, testActor, booking.ID, "carrier-1")

	assert.Equal(t, utils.CodeInvalidState, utils.CodeOf(err))
}

func TestConsumeBooking(t *testing.T) {
	f := newBookingFixture(t, 2)
	ctx := context.Background()
	booking := f.mustCreate(t)
	_, err := f.svc.ConfirmBooking(ctx, testActor, booking.ID)
	require.NoError(t, err)

	consumed, err := f.svc.ConsumeBooking(ctx, testActor, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConsumed, consumed.Status)

	_, err = f.svc.ConsumeBooking(ctx, testActor, booking.ID)
	assert.Equal(t, utils.CodeInvalidState, utils.CodeOf(err))
}

func TestConsumeBooking_RequiresConfirmed(t *testing.T) {
	f := newBookingFixture(t, 2)
	booking := f.mustCreate(t)

	_, err := f.svc.ConsumeBooking(context.Background(), testActor, booking.ID)

	assert.Equal(t, utils.CodeInvalidState, utils.CodeOf(err))
}

func TestBulkConfirm_PartialFailure(t *testing.T) {
	f := newBookingFixture(t, 3)
	ctx := context.Background()
	pending := f.mustCreate(t)
	confirmed := f.mustCreate(t)
	_, err := f.svc.ConfirmBooking(ctx, testActor, confirmed.ID)
	require.NoError(t, err)

	result := f.svc.BulkConfirm(ctx, testActor, []string{pending.ID, confirmed.ID, "missing"})

	assert.Equal(t, 1, result.Succeeded)
	assert.ElementsMatch(t, []string{confirmed.ID, "missing"}, result.Failed)
}

func TestBulkReject(t *testing.T) {
	f := newBookingFixture(t, 3)
	first := f.mustCreate(t)
	second := f.mustCreate(t)

	result := f.svc.BulkReject(context.Background(), testActor, []string{first.ID, second.ID})

	assert.Equal(t, 2, result.Succeeded)
	assert.Empty(t, result.Failed)
}

func TestReassignSlot(t *testing.T) {
	f := newBookingFixture(t, 2)
	booking := f.mustCreate(t)
	newStart := f.slot.Add(2 * time.Hour)

	moved, err := f.svc.ReassignSlot(context.Background(), testActor, booking.ID, newStart)
	require.NoError(t, err)

	assert.Equal(t, newStart, moved.SlotStart)
	assert.Equal(t, newStart.Add(time.Hour), moved.SlotEnd)
	assert.Contains(t, f.events.actions, models.ActionReassigned)
}

func TestReassignSlot_DestinationFull(t *testing.T) {
	f := newBookingFixture(t, 1)
	ctx := context.Background()
	booking := f.mustCreate(t)

	// Fill the destination slot.
	other := f.createInput()
	other.SlotStart = f.slot.Add(2 * time.Hour)
	_, err := f.svc.CreateBooking(ctx, testActor, other)
	require.NoError(t, err)

	_, err = f.svc.ReassignSlot(ctx, testActor, booking.ID, f.slot.Add(2*time.Hour))

	assert.Equal(t, utils.CodeCapacityExceeded, utils.CodeOf(err))
}

func TestReassignSlot_TerminalStatus(t *testing.T) {
	f := newBookingFixture(t, 2)
	ctx := context.Background()
	booking := f.mustCreate(t)
	_, err := f.svc.RejectBooking(ctx, testActor, booking.ID)
	require.NoError(t, err)

	_, err = f.svc.ReassignSlot(ctx, testActor, booking.ID, f.slot.Add(2*time.Hour))

	assert.Equal(t, utils.CodeInvalidState, utils.CodeOf(err))
}

func TestModifyBooking(t *testing.T) {
	f := newBookingFixture(t, 2)
	booking := f.mustCreate(t)

	updated, err := f.svc.ModifyBooking(context.Background(), testActor, booking.ID,
		models.ModifyBookingInput{TruckID: "truck-2"})
	require.NoError(t, err)

	assert.Equal(t, "truck-2", updated.TruckID)
	assert.Equal(t, "driver-1", updated.DriverID)
}

func TestModifyBooking_SuspendedTruck(t *testing.T) {
	f := newBookingFixture(t, 2)
	booking := f.mustCreate(t)

	_, err := f.svc.ModifyBooking(context.Background(), testActor, booking.ID,
		models.ModifyBookingInput{TruckID: "truck-suspended"})

	assert.Equal(t, utils.CodeValidation, utils.CodeOf(err))
}

func TestModifyBooking_TerminalStatus(t *testing.T) {
	f := newBookingFixture(t, 2)
	ctx := context.Background()
	booking := f.mustCreate(t)
	_, err := f.svc.CancelBooking(ctx, testActor, booking.ID, "")
	require.NoError(t, err)

	_, err = f.svc.ModifyBooking(ctx, testActor, booking.ID,
		models.ModifyBookingInput{TruckID: "truck-2"})

	assert.Equal(t, utils.CodeInvalidState, utils.CodeOf(err))
}
