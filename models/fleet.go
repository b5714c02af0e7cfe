package models

import "time"

// Shared ACTIVE/SUSPENDED statuses for operators, trucks and drivers.
const (
	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
)

// Carrier is a trucking company owning trucks and drivers.
type Carrier struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Name      string    `bson:"name" json:"name"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	User      *User     `bson:"-" json:"user,omitempty"`
}

// Operator is a terminal operator account bound to a port and terminal.
type Operator struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"userId" json:"userId"`
	PortID     string    `bson:"portId" json:"portId"`
	TerminalID string    `bson:"terminalId" json:"terminalId"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	User       *User     `bson:"-" json:"user,omitempty"`
}

// Truck belongs to a carrier. Plate numbers are unique per carrier.
// Suspended trucks cannot be booked.
type Truck struct {
	ID          string    `bson:"id" json:"id"`
	CarrierID   string    `bson:"carrierId" json:"carrierId"`
	PlateNumber string    `bson:"plateNumber" json:"plateNumber"`
	Status      string    `bson:"status" json:"status"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Driver belongs to a carrier and is backed by a user account.
// Suspended drivers cannot be assigned to bookings.
type Driver struct {
	ID        string    `bson:"id" json:"id"`
	CarrierID string    `bson:"carrierId" json:"carrierId"`
	UserID    string    `bson:"userId" json:"userId"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	User      *User     `bson:"-" json:"user,omitempty"`
}
