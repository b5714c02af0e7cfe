package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fleetRepo "portflow/database/repository/fleet"
	"portflow/models"
)

type countingFleet struct {
	fleetRepo.FleetRepository
	trucks  map[string]int
	drivers map[string]int
}

func (r countingFleet) CountTrucks(ctx context.Context, carrierID, status string) (int, error) {
	return r.trucks[status], nil
}

func (r countingFleet) CountDrivers(ctx context.Context, carrierID, status string) (int, error) {
	return r.drivers[status], nil
}

func TestSummarize(t *testing.T) {
	summary := summarize([]models.StatusCount{
		{Status: models.BookingPending, Count: 3},
		{Status: models.BookingConfirmed, Count: 5},
		{Status: models.BookingConsumed, Count: 2},
		{Status: models.BookingCancelled, Count: 1},
		{Status: models.BookingRejected, Count: 4},
	})

	assert.Equal(t, 15, summary.Total)
	assert.Equal(t, 3, summary.Pending)
	assert.Equal(t, 5, summary.Confirmed)
	assert.Equal(t, 2, summary.Consumed)
	assert.Equal(t, 1, summary.Cancelled)
}

func TestFleetStatus(t *testing.T) {
	svc := &DefaultDashboardService{Fleet: countingFleet{
		trucks:  map[string]int{models.StatusActive: 7, models.StatusSuspended: 2},
		drivers: map[string]int{models.StatusActive: 5, models.StatusSuspended: 1},
	}}

	status, err := svc.FleetStatus(context.Background(), "carrier-1")
	require.NoError(t, err)

	assert.Equal(t, 9, status.TotalTrucks)
	assert.Equal(t, 7, status.ActiveTrucks)
	assert.Equal(t, 2, status.SuspendedTrucks)
	assert.Equal(t, 6, status.TotalDrivers)
	assert.Equal(t, 5, status.ActiveDrivers)
	assert.Equal(t, 1, status.SuspendedDrivers)
}
