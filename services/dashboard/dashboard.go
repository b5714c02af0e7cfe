package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"portflow/models"
	bookingSvc "portflow/services/booking"
)

// utcToday returns the [start, end) window of the current UTC day. Port-wide
// admin aggregates use UTC; terminal views use the port's local day.
func utcToday() (time.Time, time.Time) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func summarize(counts []models.StatusCount) models.TodaySummary {
	var s models.TodaySummary
	for _, c := range counts {
		s.Total += c.Count
		switch c.Status {
		case models.BookingPending:
			s.Pending += c.Count
		case models.BookingConfirmed:
			s.Confirmed += c.Count
		case models.BookingConsumed:
			s.Consumed += c.Count
		case models.BookingCancelled:
			s.Cancelled += c.Count
		}
	}
	return s
}

// AdminStats assembles the port-wide admin overview for the current UTC day.
func (s *DefaultDashboardService) AdminStats(ctx context.Context) (*models.DashboardStats, error) {
	from, to := utcToday()

	counts, err := s.Bookings.CountByStatus(ctx, "", from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings by status: %w", err)
	}
	summary := summarize(counts)

	activeTrucks, err := s.Fleet.CountTrucks(ctx, "", models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count active trucks: %w", err)
	}

	occupancy, utilization, err := s.terminalOccupancy(ctx)
	if err != nil {
		return nil, err
	}

	traffic, err := s.hourlyTraffic(ctx, "", from, to)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		TotalBookingsToday:  summary.Total,
		ActiveTrucks:        activeTrucks,
		GateEntriesToday:    summary.Consumed,
		CapacityUtilization: utilization,
		BookingsByStatus:    counts,
		HourlyTraffic:       traffic,
		TerminalOccupancy:   occupancy,
	}, nil
}

// terminalOccupancy computes the live occupancy of every terminal's current
// slot, plus the overall utilization percentage.
func (s *DefaultDashboardService) terminalOccupancy(ctx context.Context) ([]models.TerminalOccupancy, float64, error) {
	terminals, err := s.Registry.ListTerminals(ctx, "")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list terminals: %w", err)
	}

	rows := make([]models.TerminalOccupancy, 0, len(terminals))
	var totalBooked, totalCapacity int
	for _, terminal := range terminals {
		port, err := s.Registry.GetPort(ctx, terminal.PortID)
		if err != nil {
			continue
		}
		start, end, err := currentSlotWindow(port)
		if err != nil {
			continue
		}
		booked, err := s.Bookings.SlotOccupancy(ctx, terminal.ID, start, end,
			[]string{models.BookingConfirmed, models.BookingConsumed})
		if err != nil {
			return nil, 0, fmt.Errorf("failed to compute occupancy for terminal %s: %w", terminal.ID, err)
		}
		rows = append(rows, models.TerminalOccupancy{
			Terminal:  terminal.Name,
			Occupancy: booked,
			Capacity:  terminal.MaxCapacity,
		})
		totalBooked += booked
		totalCapacity += terminal.MaxCapacity
	}

	var utilization float64
	if totalCapacity > 0 {
		utilization = float64(totalBooked) / float64(totalCapacity) * 100
	}
	return rows, utilization, nil
}

// currentSlotWindow returns the slot containing now in the port's local day.
func currentSlotWindow(port *models.Port) (time.Time, time.Time, error) {
	dayStart, err := bookingSvc.DayBounds(port, "")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	duration := bookingSvc.SlotDurationOf(port)
	now := time.Now().In(dayStart.Location())
	start := dayStart.Add(now.Sub(dayStart) / duration * duration)
	end := start.Add(duration)
	if dayEnd := dayStart.AddDate(0, 0, 1); end.After(dayEnd) {
		end = dayEnd
	}
	return start, end, nil
}

// hourlyTraffic buckets consumed bookings by slot hour. Entries count slot
// starts, exits slot ends.
func (s *DefaultDashboardService) hourlyTraffic(ctx context.Context, terminalID string, from, to time.Time) ([]models.TrafficPoint, error) {
	consumed, err := s.Bookings.List(ctx, models.BookingListFilter{
		Status:     models.BookingConsumed,
		TerminalID: terminalID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list consumed bookings: %w", err)
	}

	type bucket struct{ entries, exits int }
	buckets := make(map[string]*bucket)
	at := func(hour string) *bucket {
		b, ok := buckets[hour]
		if !ok {
			b = &bucket{}
			buckets[hour] = b
		}
		return b
	}
	for _, b := range consumed {
		at(b.SlotStart.Format("15:00")).entries++
		at(b.SlotEnd.Format("15:00")).exits++
	}

	hours := make([]string, 0, len(buckets))
	for hour := range buckets {
		hours = append(hours, hour)
	}
	sort.Strings(hours)

	points := make([]models.TrafficPoint, 0, len(hours))
	for _, hour := range hours {
		points = append(points, models.TrafficPoint{
			Hour:    hour,
			Entries: buckets[hour].entries,
			Exits:   buckets[hour].exits,
		})
	}
	return points, nil
}

// OperatorOverview assembles the headline view for one terminal's local day.
func (s *DefaultDashboardService) OperatorOverview(ctx context.Context, terminalID string) (*models.OperatorOverview, error) {
	status, err := s.Exception.RealTimeStatus(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	exceptions, err := s.Exception.ExceptionSummary(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	return &models.OperatorOverview{
		TerminalID:      terminalID,
		PendingCount:    status.TodaySummary.Pending,
		TodaySummary:    status.TodaySummary,
		ExceptionsTotal: exceptions.Total,
		UtilizationRate: status.UtilizationRate,
	}, nil
}

// PendingApprovals lists the terminal's PENDING bookings.
func (s *DefaultDashboardService) PendingApprovals(ctx context.Context, terminalID string) ([]models.Booking, error) {
	bookings, err := s.Bookings.List(ctx, models.BookingListFilter{
		Status:     models.BookingPending,
		TerminalID: terminalID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending bookings: %w", err)
	}
	return bookings, nil
}

// TodayTraffic buckets one terminal's gate traffic for its local day.
func (s *DefaultDashboardService) TodayTraffic(ctx context.Context, terminalID string) ([]models.TrafficPoint, error) {
	terminal, err := s.Registry.GetTerminal(ctx, terminalID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch terminal: %w", err)
	}
	port, err := s.Registry.GetPort(ctx, terminal.PortID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch port: %w", err)
	}
	dayStart, err := bookingSvc.DayBounds(port, "")
	if err != nil {
		return nil, err
	}
	return s.hourlyTraffic(ctx, terminalID, dayStart, dayStart.AddDate(0, 0, 1))
}

// CarrierOverview assembles the headline view for one carrier's UTC day.
func (s *DefaultDashboardService) CarrierOverview(ctx context.Context, carrierID string) (*models.CarrierOverview, error) {
	from, to := utcToday()
	today, err := s.Bookings.List(ctx, models.BookingListFilter{
		CarrierID: carrierID,
		From:      from,
		To:        to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list carrier bookings: %w", err)
	}

	var summary models.TodaySummary
	for _, b := range today {
		summary.Total++
		switch b.Status {
		case models.BookingPending:
			summary.Pending++
		case models.BookingConfirmed:
			summary.Confirmed++
		case models.BookingConsumed:
			summary.Consumed++
		case models.BookingCancelled:
			summary.Cancelled++
		}
	}

	upcoming, err := s.UpcomingBookings(ctx, carrierID)
	if err != nil {
		return nil, err
	}
	activeTrucks, err := s.Fleet.CountTrucks(ctx, carrierID, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count trucks: %w", err)
	}
	activeDrivers, err := s.Fleet.CountDrivers(ctx, carrierID, models.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to count drivers: %w", err)
	}

	return &models.CarrierOverview{
		CarrierID:        carrierID,
		UpcomingBookings: len(upcoming),
		TodaySummary:     summary,
		ActiveTrucks:     activeTrucks,
		ActiveDrivers:    activeDrivers,
	}, nil
}

// UpcomingBookings lists the carrier's confirmed bookings with a future slot.
func (s *DefaultDashboardService) UpcomingBookings(ctx context.Context, carrierID string) ([]models.Booking, error) {
	bookings, err := s.Bookings.List(ctx, models.BookingListFilter{
		Status:    models.BookingConfirmed,
		CarrierID: carrierID,
		From:      time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming bookings: %w", err)
	}
	return bookings, nil
}

// FleetStatus summarizes the carrier's trucks and drivers by status.
func (s *DefaultDashboardService) FleetStatus(ctx context.Context, carrierID string) (*models.FleetStatus, error) {
	status := &models.FleetStatus{}
	var err error
	if status.ActiveTrucks, err = s.Fleet.CountTrucks(ctx, carrierID, models.StatusActive); err != nil {
		return nil, fmt.Errorf("failed to count trucks: %w", err)
	}
	if status.SuspendedTrucks, err = s.Fleet.CountTrucks(ctx, carrierID, models.StatusSuspended); err != nil {
		return nil, fmt.Errorf("failed to count trucks: %w", err)
	}
	if status.ActiveDrivers, err = s.Fleet.CountDrivers(ctx, carrierID, models.StatusActive); err != nil {
		return nil, fmt.Errorf("failed to count drivers: %w", err)
	}
	if status.SuspendedDrivers, err = s.Fleet.CountDrivers(ctx, carrierID, models.StatusSuspended); err != nil {
		return nil, fmt.Errorf("failed to count drivers: %w", err)
	}
	status.TotalTrucks = status.ActiveTrucks + status.SuspendedTrucks
	status.TotalDrivers = status.ActiveDrivers + status.SuspendedDrivers
	return status, nil
}
