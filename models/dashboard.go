package models

import "time"

// StatusCount pairs a booking status with its count.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int    `bson:"count" json:"count"`
}

// TrafficPoint is one hourly bucket of gate traffic.
type TrafficPoint struct {
	Hour    string `json:"hour"`
	Entries int    `json:"entries"`
	Exits   int    `json:"exits"`
}

// TerminalOccupancy is a dashboard row for one terminal.
type TerminalOccupancy struct {
	Terminal  string `json:"terminal"`
	Occupancy int    `json:"occupancy"`
	Capacity  int    `json:"capacity"`
}

// DashboardStats is the admin overview payload.
type DashboardStats struct {
	TotalBookingsToday  int                 `json:"totalBookingsToday"`
	ActiveTrucks        int                 `json:"activeTrucks"`
	GateEntriesToday    int                 `json:"gateEntriesToday"`
	CapacityUtilization float64             `json:"capacityUtilization"`
	BookingsByStatus    []StatusCount       `json:"bookingsByStatus"`
	HourlyTraffic       []TrafficPoint      `json:"hourlyTraffic"`
	TerminalOccupancy   []TerminalOccupancy `json:"terminalOccupancy"`
}

// CurrentSlotInfo describes the slot in progress at a terminal.
type CurrentSlotInfo struct {
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	TrucksInSlot int       `json:"trucksInSlot"`
	Bookings     []Booking `json:"bookings"`
}

// TodaySummary counts a terminal's bookings for the day by status.
type TodaySummary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Consumed  int `json:"consumed"`
	Cancelled int `json:"cancelled"`
}

// RealTimeStatus is the operator live view of one terminal.
type RealTimeStatus struct {
	TerminalID       string          `json:"terminalId"`
	Timestamp        time.Time       `json:"timestamp"`
	CurrentSlot      CurrentSlotInfo `json:"currentSlot"`
	UpcomingArrivals int             `json:"upcomingArrivals"`
	TodaySummary     TodaySummary    `json:"todaySummary"`
	UtilizationRate  float64         `json:"utilizationRate"`
}

// OperatorOverview is the operator dashboard headline payload.
type OperatorOverview struct {
	TerminalID      string       `json:"terminalId"`
	PendingCount    int          `json:"pendingCount"`
	TodaySummary    TodaySummary `json:"todaySummary"`
	ExceptionsTotal int          `json:"exceptionsTotal"`
	UtilizationRate float64      `json:"utilizationRate"`
}

// CarrierOverview is the carrier dashboard headline payload.
type CarrierOverview struct {
	CarrierID        string       `json:"carrierId"`
	UpcomingBookings int          `json:"upcomingBookings"`
	TodaySummary     TodaySummary `json:"todaySummary"`
	ActiveTrucks     int          `json:"activeTrucks"`
	ActiveDrivers    int          `json:"activeDrivers"`
}

// FleetStatus summarizes a carrier's trucks and drivers.
type FleetStatus struct {
	TotalTrucks      int `json:"totalTrucks"`
	ActiveTrucks     int `json:"activeTrucks"`
	SuspendedTrucks  int `json:"suspendedTrucks"`
	TotalDrivers     int `json:"totalDrivers"`
	ActiveDrivers    int `json:"activeDrivers"`
	SuspendedDrivers int `json:"suspendedDrivers"`
}
