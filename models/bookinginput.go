package models

import "time"

// CreateBookingInput is the payload for creating a booking.
// CarrierID is resolved from the caller when omitted.
type CreateBookingInput struct {
	TerminalID         string    `json:"terminalId" binding:"required"`
	TruckID            string    `json:"truckId" binding:"required"`
	DriverID           string    `json:"driverId" binding:"required"`
	SlotStart          time.Time `json:"slotStart" binding:"required"`
	SlotsCount         int       `json:"slotsCount"`
	CarrierID          string    `json:"carrierId"`
	ContainerMatricule string    `json:"containerMatricule"`
}

// ModifyBookingInput mutates assignment fields of a non-terminal booking.
// Nil/empty fields are left unchanged.
type ModifyBookingInput struct {
	TruckID    string `json:"truckId"`
	DriverID   string `json:"driverId"`
	TerminalID string `json:"terminalId"`
}

// BookingListFilter narrows booking queries.
type BookingListFilter struct {
	Status     string
	CarrierID  string
	TerminalID string
	From       time.Time
	To         time.Time
}

// BulkResult reports per-item outcomes of a bulk transition. Handlers map
// it onto the wire shape, naming the count after the operation applied.
type BulkResult struct {
	Succeeded int
	Failed    []string
}
