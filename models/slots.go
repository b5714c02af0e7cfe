package models

import "time"

// SlotAvailability is one derived slot of a terminal's day grid.
// Intervals are half-open: [SlotStart, SlotEnd).
type SlotAvailability struct {
	SlotStart      time.Time `json:"slotStart"`
	SlotEnd        time.Time `json:"slotEnd"`
	BookedCount    int       `json:"bookedCount"`
	AvailableCount int       `json:"availableCount"`
}

// AvailabilityResponse is the grid for one terminal/date.
type AvailabilityResponse struct {
	Slots       []SlotAvailability `json:"slots"`
	MaxCapacity int                `json:"maxCapacity"`
}

// SlotOccupancy is an aggregation row: booked units per slot start.
type SlotOccupancy struct {
	SlotStart time.Time `bson:"_id"`
	Booked    int       `bson:"booked"`
}
