package models

import "time"

// Exception types.
const (
	ExceptionOverbookedSlot    = "OVERBOOKED_SLOT"
	ExceptionStalePending      = "STALE_PENDING"
	ExceptionOrphanedConfirmed = "ORPHANED_CONFIRMED"
)

// Exception severities.
const (
	SeverityHigh    = "HIGH"
	SeverityMedium  = "MEDIUM"
	SeverityWarning = "WARNING"
)

// Exception is an anomaly detected on a terminal's bookings. Ephemeral:
// recomputed on every query, never persisted.
type Exception struct {
	Type             string    `json:"type"`
	Severity         string    `json:"severity"`
	Message          string    `json:"message"`
	BookingID        string    `json:"bookingId,omitempty"`
	BookingReference string    `json:"bookingReference,omitempty"`
	SlotStart        time.Time `json:"slotStart,omitempty"`
	ExcessCount      int       `json:"excessCount,omitempty"`
	Bookings         []Booking `json:"bookings,omitempty"`
}

// ExceptionSummary aggregates exceptions for one terminal.
type ExceptionSummary struct {
	Total      int            `json:"total"`
	ByType     map[string]int `json:"byType"`
	BySeverity map[string]int `json:"bySeverity"`
}
