package models

import "time"

// Port is a managed port with one or more terminals. Slot duration is
// port-wide and expressed in minutes.
type Port struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	CountryCode  string    `bson:"countryCode" json:"countryCode,omitempty"`
	SlotDuration int       `bson:"slotDuration" json:"slotDuration"`
	Timezone     string    `bson:"timezone" json:"timezone"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// Terminal is a capacity-bounded gate/yard unit within a port.
// MaxCapacity is trucks per slot.
type Terminal struct {
	ID          string    `bson:"id" json:"id"`
	PortID      string    `bson:"portId" json:"portId"`
	Name        string    `bson:"name" json:"name"`
	MaxCapacity int       `bson:"maxCapacity" json:"maxCapacity"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
