package booking

import (
	"testing"
	"time"

	"portflow/models"
	"portflow/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utcPort(slotMinutes int) *models.Port {
	return &models.Port{
		ID:           "port-1",
		Name:         "Test Port",
		Timezone:     "UTC",
		SlotDuration: slotMinutes,
	}
}

func TestBuildDayGrid_HourSlots(t *testing.T) {
	dayStart := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	slots := BuildDayGrid(dayStart, time.Hour, 5, nil)

	require.Len(t, slots, 24)
	assert.Equal(t, dayStart, slots[0].SlotStart)
	assert.Equal(t, dayStart.Add(time.Hour), slots[0].SlotEnd)
	assert.Equal(t, dayStart.Add(23*time.Hour), slots[23].SlotStart)
	assert.Equal(t, dayStart.AddDate(0, 0, 1), slots[23].SlotEnd)
	for _, s := range slots {
		assert.Equal(t, 0, s.BookedCount)
		assert.Equal(t, 5, s.AvailableCount)
	}
}

func TestBuildDayGrid_TruncatesFinalSlot(t *testing.T) {
	// 90 minutes does not divide 24h: the last slot is clipped to midnight.
	dayStart := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	slots := BuildDayGrid(dayStart, 90*time.Minute, 3, nil)

	require.Len(t, slots, 16)
	last := slots[15]
	assert.Equal(t, dayStart.Add(22*time.Hour+30*time.Minute), last.SlotStart)
	assert.Equal(t, dayStart.AddDate(0, 0, 1), last.SlotEnd)
	assert.Equal(t, 30*time.Minute, last.SlotEnd.Sub(last.SlotStart))
}

func TestBuildDayGrid_JoinsOccupancy(t *testing.T) {
	dayStart := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	occupancy := map[time.Time]int{
		dayStart.Add(8 * time.Hour): 2,
		dayStart.Add(9 * time.Hour): 7, // overbooked past capacity
	}
	slots := BuildDayGrid(dayStart, time.Hour, 5, occupancy)

	assert.Equal(t, 2, slots[8].BookedCount)
	assert.Equal(t, 3, slots[8].AvailableCount)
	assert.Equal(t, 7, slots[9].BookedCount)
	assert.Equal(t, 0, slots[9].AvailableCount, "availability never goes negative")
	assert.Equal(t, 0, slots[10].BookedCount)
}

func TestDayBounds(t *testing.T) {
	port := utcPort(60)

	day, err := DayBounds(port, "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), day)

	_, err = DayBounds(port, "30/08/2026")
	require.Error(t, err)
	assert.Equal(t, utils.CodeValidation, utils.CodeOf(err))

	port.Timezone = "Mars/Olympus"
	_, err = DayBounds(port, "2026-08-30")
	require.Error(t, err)
	assert.Equal(t, utils.CodeValidation, utils.CodeOf(err))
}

func TestSlotDurationOf_DefaultsToHour(t *testing.T) {
	assert.Equal(t, time.Hour, SlotDurationOf(utcPort(0)))
	assert.Equal(t, 45*time.Minute, SlotDurationOf(utcPort(45)))
}

func TestAlignSlotStart(t *testing.T) {
	port := utcPort(60)

	start, end, err := alignSlotStart(port, time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC), end)

	_, _, err = alignSlotStart(port, time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, utils.CodeValidation, utils.CodeOf(err))
}

func TestAlignSlotStart_TruncatedLastSlot(t *testing.T) {
	port := utcPort(90)

	start, end, err := alignSlotStart(port, time.Date(2026, 8, 30, 22, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 8, 30, 22, 30, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), end)
}
