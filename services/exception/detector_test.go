package exception

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingRepo "portflow/database/repository/booking"
	registryRepo "portflow/database/repository/registry"
	"portflow/models"
	"portflow/utils"
)

// listBookingRepo serves List over a fixed slice; other methods panic via
// the embedded nil interface. Time bounds are ignored so tests built around
// time.Now stay stable across the midnight boundary.
type listBookingRepo struct {
	bookingRepo.BookingRepository
	mu       sync.Mutex
	bookings []models.Booking
}

func (r *listBookingRepo) List(ctx context.Context, filter models.BookingListFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if filter.TerminalID != "" && b.TerminalID != filter.TerminalID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type staticRegistry struct {
	registryRepo.RegistryRepository
	port     *models.Port
	terminal *models.Terminal
}

func (r *staticRegistry) GetPort(ctx context.Context, id string) (*models.Port, error) {
	if r.port == nil || r.port.ID != id {
		return nil, registryRepo.ErrNotFound
	}
	return r.port, nil
}

func (r *staticRegistry) GetTerminal(ctx context.Context, id string) (*models.Terminal, error) {
	if r.terminal == nil || r.terminal.ID != id {
		return nil, registryRepo.ErrNotFound
	}
	return r.terminal, nil
}

func newDetector(maxCapacity int, bookings []models.Booking) (*DefaultDetectorService, *listBookingRepo) {
	repo := &listBookingRepo{bookings: bookings}
	svc := &DefaultDetectorService{
		Repo: repo,
		Registry: &staticRegistry{
			port:     &models.Port{ID: "port-1", SlotDuration: 60, Timezone: "UTC"},
			terminal: &models.Terminal{ID: "term-1", PortID: "port-1", Name: "North Gate", MaxCapacity: maxCapacity},
		},
	}
	return svc, repo
}

func todaySlot(hoursFromNow int) time.Time {
	return time.Now().UTC().Truncate(time.Hour).Add(time.Duration(hoursFromNow) * time.Hour)
}

func testBooking(id, status string, slotStart time.Time) models.Booking {
	return models.Booking{
		ID:               id,
		BookingReference: "PF-20260830-" + id,
		TerminalID:       "term-1",
		CarrierID:        "carrier-1",
		SlotStart:        slotStart,
		SlotEnd:          slotStart.Add(time.Hour),
		SlotsCount:       1,
		Status:           status,
	}
}

func TestListExceptions_OverbookedSlot(t *testing.T) {
	slot := todaySlot(5)
	svc, _ := newDetector(2, []models.Booking{
		testBooking("b1", models.BookingConfirmed, slot),
		testBooking("b2", models.BookingConfirmed, slot),
		testBooking("b3", models.BookingConsumed, slot),
		testBooking("b4", models.BookingCancelled, slot),
	})

	exceptions, err := svc.ListExceptions(context.Background(), "term-1", "")
	require.NoError(t, err)

	require.Len(t, exceptions, 1)
	assert.Equal(t, models.ExceptionOverbookedSlot, exceptions[0].Type)
	assert.Equal(t, models.SeverityHigh, exceptions[0].Severity)
	assert.Equal(t, 1, exceptions[0].ExcessCount)
	assert.Len(t, exceptions[0].Bookings, 3)
}

func TestListExceptions_AtCapacityIsNotOverbooked(t *testing.T) {
	slot := todaySlot(5)
	svc, _ := newDetector(2, []models.Booking{
		testBooking("b1", models.BookingConfirmed, slot),
		testBooking("b2", models.BookingConfirmed, slot),
	})

	exceptions, err := svc.ListExceptions(context.Background(), "term-1", "")
	require.NoError(t, err)

	assert.Empty(t, exceptions)
}

func TestListExceptions_StalePending(t *testing.T) {
	svc, _ := newDetector(10, []models.Booking{
		testBooking("near", models.BookingPending, todaySlot(1)),
		testBooking("far", models.BookingPending, todaySlot(6)),
	})
	svc.StaleWindow = 2 * time.Hour

	exceptions, err := svc.ListExceptions(context.Background(), "term-1", "")
	require.NoError(t, err)

	require.Len(t, exceptions, 1)
	assert.Equal(t, models.ExceptionStalePending, exceptions[0].Type)
	assert.Equal(t, models.SeverityMedium, exceptions[0].Severity)
	assert.Equal(t, "near", exceptions[0].BookingID)
}

func TestListExceptions_OrphanedConfirmed(t *testing.T) {
	svc, _ := newDetector(10, []models.Booking{
		testBooking("gone", models.BookingConfirmed, todaySlot(-3)),
		testBooking("arrived", models.BookingConsumed, todaySlot(-3)),
		testBooking("later", models.BookingConfirmed, todaySlot(4)),
	})

	exceptions, err := svc.ListExceptions(context.Background(), "term-1", "")
	require.NoError(t, err)

	require.Len(t, exceptions, 1)
	assert.Equal(t, models.ExceptionOrphanedConfirmed, exceptions[0].Type)
	assert.Equal(t, models.SeverityWarning, exceptions[0].Severity)
	assert.Equal(t, "gone", exceptions[0].BookingID)
}

func TestListExceptions_SeverityOrdering(t *testing.T) {
	overbooked := todaySlot(6)
	svc, _ := newDetector(1, []models.Booking{
		testBooking("o1", models.BookingConfirmed, overbooked),
		testBooking("o2", models.BookingConfirmed, overbooked),
		testBooking("stale", models.BookingPending, todaySlot(1)),
		testBooking("orphan", models.BookingConfirmed, todaySlot(-2)),
	})
	svc.StaleWindow = 2 * time.Hour

	exceptions, err := svc.ListExceptions(context.Background(), "term-1", "")
	require.NoError(t, err)

	var types []string
	for _, e := range exceptions {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{
		models.ExceptionOverbookedSlot,
		models.ExceptionStalePending,
		models.ExceptionOrphanedConfirmed,
	}, types)
}

func TestListExceptions_UnknownTerminal(t *testing.T) {
	svc, _ := newDetector(2, nil)

	_, err := svc.ListExceptions(context.Background(), "term-missing", "")

	assert.Equal(t, utils.CodeNotFound, utils.CodeOf(err))
}

func TestListExceptions_Recomputes(t *testing.T) {
	slot := todaySlot(5)
	svc, repo := newDetector(1, []models.Booking{
		testBooking("b1", models.BookingConfirmed, slot),
		testBooking("b2", models.BookingConfirmed, slot),
	})
	ctx := context.Background()

	exceptions, err := svc.ListExceptions(ctx, "term-1", "")
	require.NoError(t, err)
	require.Len(t, exceptions, 1)

	// Resolving the overallocation clears the exception on the next poll.
	repo.mu.Lock()
	repo.bookings[1].Status = models.BookingCancelled
	repo.mu.Unlock()

	exceptions, err = svc.ListExceptions(ctx, "term-1", "")
	require.NoError(t, err)
	assert.Empty(t, exceptions)
}

func TestExceptionSummary(t *testing.T) {
	overbooked := todaySlot(6)
	svc, _ := newDetector(1, []models.Booking{
		testBooking("o1", models.BookingConfirmed, overbooked),
		testBooking("o2", models.BookingConfirmed, overbooked),
		testBooking("stale", models.BookingPending, todaySlot(1)),
	})
	svc.StaleWindow = 2 * time.Hour

	summary, err := svc.ExceptionSummary(context.Background(), "term-1")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.ByType[models.ExceptionOverbookedSlot])
	assert.Equal(t, 1, summary.ByType[models.ExceptionStalePending])
	assert.Equal(t, 1, summary.BySeverity[models.SeverityHigh])
	assert.Equal(t, 1, summary.BySeverity[models.SeverityMedium])
}

func TestRealTimeStatus(t *testing.T) {
	current := time.Now().UTC().Truncate(time.Hour)
	svc, _ := newDetector(5, []models.Booking{
		testBooking("in-slot", models.BookingConfirmed, current),
		testBooking("upcoming", models.BookingConfirmed, todaySlot(3)),
		testBooking("done", models.BookingConsumed, todaySlot(-2)),
		testBooking("waiting", models.BookingPending, todaySlot(4)),
	})

	status, err := svc.RealTimeStatus(context.Background(), "term-1")
	require.NoError(t, err)

	assert.Equal(t, "term-1", status.TerminalID)
	assert.Equal(t, 4, status.TodaySummary.Total)
	assert.Equal(t, 2, status.TodaySummary.Confirmed)
	assert.Equal(t, 1, status.TodaySummary.Consumed)
	assert.Equal(t, 1, status.TodaySummary.Pending)
	assert.Equal(t, 1, status.CurrentSlot.TrucksInSlot)
	assert.Equal(t, 1, status.UpcomingArrivals)
	assert.InDelta(t, 75.0, status.UtilizationRate, 0.01)
}
