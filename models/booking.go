package models

import "time"

// Booking lifecycle statuses. REJECTED, CANCELLED and CONSUMED are terminal.
const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingRejected  = "REJECTED"
	BookingCancelled = "CANCELLED"
	BookingConsumed  = "CONSUMED"
)

// ActiveBookingStatuses are the statuses that occupy slot capacity.
var ActiveBookingStatuses = []string{BookingPending, BookingConfirmed, BookingConsumed}

// IsTerminalStatus reports whether a booking status admits no further transitions.
func IsTerminalStatus(status string) bool {
	return status == BookingRejected || status == BookingCancelled || status == BookingConsumed
}

// Booking is a truck arrival reservation for one slot at a terminal.
// SlotEnd is always SlotStart plus the owning port's slot duration.
type Booking struct {
	ID                 string    `bson:"id" json:"id"`
	BookingReference   string    `bson:"bookingReference" json:"bookingReference"`
	TerminalID         string    `bson:"terminalId" json:"terminalId"`
	TruckID            string    `bson:"truckId" json:"truckId"`
	CarrierID          string    `bson:"carrierId" json:"carrierId"`
	DriverID           string    `bson:"driverId" json:"driverId"`
	SlotStart          time.Time `bson:"slotStart" json:"slotStart"`
	SlotEnd            time.Time `bson:"slotEnd" json:"slotEnd"`
	SlotsCount         int       `bson:"slotsCount" json:"slotsCount"`
	Status             string    `bson:"status" json:"status"`
	ContainerMatricule string    `bson:"containerMatricule,omitempty" json:"containerMatricule,omitempty"`
	OverrideReason     string    `bson:"overrideReason,omitempty" json:"overrideReason,omitempty"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`

	// Denormalized display fields, populated on read paths only.
	Terminal *TerminalRef `bson:"-" json:"terminal,omitempty"`
	Truck    *TruckRef    `bson:"-" json:"truck,omitempty"`
	Driver   *DriverRef   `bson:"-" json:"driver,omitempty"`
}

// TerminalRef is the minimal terminal view embedded in booking responses.
type TerminalRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TruckRef is the minimal truck view embedded in booking responses.
type TruckRef struct {
	ID          string `json:"id"`
	PlateNumber string `json:"plateNumber"`
}

// DriverRef is the minimal driver view embedded in booking responses.
type DriverRef struct {
	ID       string `json:"id"`
	FullName string `json:"fullName,omitempty"`
}
