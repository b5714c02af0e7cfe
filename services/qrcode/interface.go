package qrcode

import (
	"context"
	"time"

	qrRepo "portflow/database/repository/qrcode"
	auditSvc "portflow/services/audit"
	"portflow/services/booking"

	fleetRepo "portflow/database/repository/fleet"
	registryRepo "portflow/database/repository/registry"
	userRepo "portflow/database/repository/user"
	"portflow/models"
)

// QRService issues and consumes gate tokens for confirmed bookings.
type QRService interface {
	// GenerateQR issues a fresh token for a CONFIRMED booking, superseding
	// any previously issued token of the same booking.
	GenerateQR(ctx context.Context, actor models.Actor, bookingID string) (*models.QRCode, error)
	// ScanQR validates a scanned token and, when valid, consumes both the
	// token and the booking exactly once.
	ScanQR(ctx context.Context, actor models.Actor, token string) (*models.ScanResult, error)
}

// DefaultQRService implements QRService.
type DefaultQRService struct {
	Repo     qrRepo.QRCodeRepository
	Bookings booking.BookingService
	Registry registryRepo.RegistryRepository
	Fleet    fleetRepo.FleetRepository
	Users    userRepo.UserRepository
	Audit    auditSvc.Recorder
	// Grace extends token validity past the slot end, covering trucks held
	// up in the gate queue.
	Grace time.Duration
}
