package exception

import (
	"context"
	"time"

	bookingRepo "portflow/database/repository/booking"
	registryRepo "portflow/database/repository/registry"
	"portflow/models"
)

// DetectorService computes booking anomalies for operator dashboards.
// Results are ephemeral: recomputed from the live booking set on every call,
// never cached or persisted. Callers poll.
type DetectorService interface {
	ListExceptions(ctx context.Context, terminalID, date string) ([]models.Exception, error)
	ExceptionSummary(ctx context.Context, terminalID string) (*models.ExceptionSummary, error)
	RealTimeStatus(ctx context.Context, terminalID string) (*models.RealTimeStatus, error)
}

// DefaultDetectorService implements DetectorService.
type DefaultDetectorService struct {
	Repo     bookingRepo.BookingRepository
	Registry registryRepo.RegistryRepository
	// StaleWindow is how close to its slot a PENDING booking may get before
	// it is flagged. Operational tuning, not an invariant.
	StaleWindow time.Duration
}
