package models

import "time"

// QRCode is an issued gate token for a confirmed booking. At most one
// live (non-superseded, non-used, non-expired) token exists per booking.
type QRCode struct {
	ID           string     `bson:"id" json:"id"`
	BookingID    string     `bson:"bookingId" json:"bookingId"`
	JWTToken     string     `bson:"jwtToken" json:"jwtToken"`
	QRCodeData   string     `bson:"qrCodeData" json:"qrCodeData"`
	ExpiresAt    time.Time  `bson:"expiresAt" json:"expiresAt"`
	UsedAt       *time.Time `bson:"usedAt,omitempty" json:"usedAt,omitempty"`
	SupersededAt *time.Time `bson:"supersededAt,omitempty" json:"-"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
}

// ScanResult is the gate outcome of a token scan. Invalid tokens are a
// routine result, not an error.
type ScanResult struct {
	Valid   bool          `json:"valid"`
	Message string        `json:"message"`
	Booking *GateSnapshot `json:"booking,omitempty"`
}

// GateSnapshot is the denormalized booking view shown at the gate.
type GateSnapshot struct {
	ID               string    `json:"id"`
	BookingReference string    `json:"bookingReference"`
	TruckPlate       string    `json:"truckPlate"`
	DriverName       string    `json:"driverName"`
	SlotStart        time.Time `json:"slotStart"`
	SlotEnd          time.Time `json:"slotEnd"`
	TerminalName     string    `json:"terminalName"`
}
