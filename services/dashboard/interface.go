package dashboard

import (
	"context"

	bookingRepo "portflow/database/repository/booking"
	fleetRepo "portflow/database/repository/fleet"
	registryRepo "portflow/database/repository/registry"
	"portflow/services/exception"

	"portflow/models"
)

// DashboardService aggregates read-only headline views. Everything here is
// derived from the live booking set; nothing is persisted.
type DashboardService interface {
	// AdminStats is the port-wide admin overview for today.
	AdminStats(ctx context.Context) (*models.DashboardStats, error)
	// OperatorOverview is the headline view for one terminal.
	OperatorOverview(ctx context.Context, terminalID string) (*models.OperatorOverview, error)
	// PendingApprovals lists the terminal's PENDING bookings, oldest requests
	// surfacing through the standard newest-first ordering.
	PendingApprovals(ctx context.Context, terminalID string) ([]models.Booking, error)
	// TodayTraffic buckets the terminal's gate traffic by hour.
	TodayTraffic(ctx context.Context, terminalID string) ([]models.TrafficPoint, error)
	// CarrierOverview is the headline view for one carrier.
	CarrierOverview(ctx context.Context, carrierID string) (*models.CarrierOverview, error)
	// UpcomingBookings lists the carrier's confirmed future bookings.
	UpcomingBookings(ctx context.Context, carrierID string) ([]models.Booking, error)
	// FleetStatus summarizes the carrier's truck and driver pool.
	FleetStatus(ctx context.Context, carrierID string) (*models.FleetStatus, error)
}

// DefaultDashboardService implements DashboardService.
type DefaultDashboardService struct {
	Bookings  bookingRepo.BookingRepository
	Fleet     fleetRepo.FleetRepository
	Registry  registryRepo.RegistryRepository
	Exception exception.DetectorService
}
