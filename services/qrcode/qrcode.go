package qrcode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	qrRepo "portflow/database/repository/qrcode"
	"portflow/models"
	"portflow/utils"
)

// GenerateQR issues a gate token for a confirmed booking. Re-generating is
// allowed any number of times; each issue supersedes all earlier tokens so
// only the latest one scans successfully at the gate.
func (s *DefaultQRService) GenerateQR(ctx context.Context, actor models.Actor, bookingID string) (*models.QRCode, error) {
	b, err := s.Bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingConfirmed {
		return nil, utils.InvalidStateError("cannot generate a gate token for a %s booking", b.Status)
	}

	now := time.Now().UTC()
	if err := s.Repo.SupersedeForBooking(ctx, b.ID, now); err != nil {
		return nil, fmt.Errorf("failed to supersede previous tokens: %w", err)
	}

	qr := &models.QRCode{
		ID:        uuid.New().String(),
		BookingID: b.ID,
		ExpiresAt: b.SlotEnd.Add(s.Grace),
		CreatedAt: now,
	}
	token, err := signGateToken(qr.ID, b.ID, qr.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign gate token: %w", err)
	}
	qr.JWTToken = token
	qr.QRCodeData = token

	if err := s.Repo.Insert(ctx, qr); err != nil {
		return nil, fmt.Errorf("failed to store gate token: %w", err)
	}
	s.Audit.Record(ctx, actor, "QR_CODE", qr.ID, models.ActionGenerated,
		fmt.Sprintf("generated gate token for booking %s", b.BookingReference))
	return qr, nil
}

// ScanQR resolves a scanned token. Invalid tokens yield a negative ScanResult
// rather than an error; only infrastructure failures surface as errors.
// Exactly one of any number of concurrent scans of the same token succeeds.
func (s *DefaultQRService) ScanQR(ctx context.Context, actor models.Actor, token string) (*models.ScanResult, error) {
	qrID, bookingID, err := parseGateToken(token)
	if err != nil {
		return &models.ScanResult{Valid: false, Message: "invalid or expired token"}, nil
	}

	qr, err := s.Repo.GetByID(ctx, qrID)
	if err != nil {
		if errors.Is(err, qrRepo.ErrNotFound) {
			return &models.ScanResult{Valid: false, Message: "unknown token"}, nil
		}
		return nil, fmt.Errorf("failed to load gate token: %w", err)
	}
	if qr.BookingID != bookingID {
		return &models.ScanResult{Valid: false, Message: "invalid or expired token"}, nil
	}
	if qr.SupersededAt != nil {
		return &models.ScanResult{Valid: false, Message: "token superseded by a newer one"}, nil
	}
	if qr.UsedAt != nil {
		return &models.ScanResult{Valid: false, Message: "token already used"}, nil
	}
	now := time.Now().UTC()
	if now.After(qr.ExpiresAt) {
		return &models.ScanResult{Valid: false, Message: "token expired"}, nil
	}

	if err := s.Repo.Consume(ctx, qr.ID, now); err != nil {
		if errors.Is(err, qrRepo.ErrAlreadyUsed) {
			return &models.ScanResult{Valid: false, Message: "token already used"}, nil
		}
		return nil, fmt.Errorf("failed to consume gate token: %w", err)
	}

	// The token is spent at this point, so the scan is recorded before the
	// check-in transition it triggers.
	s.Audit.Record(ctx, actor, "QR_CODE", qr.ID, models.ActionScanned,
		fmt.Sprintf("scanned gate token for booking %s", bookingID))

	b, err := s.Bookings.ConsumeBooking(ctx, actor, bookingID)
	if err != nil {
		var appErr *utils.AppError
		if errors.As(err, &appErr) {
			return &models.ScanResult{Valid: false, Message: appErr.Message}, nil
		}
		return nil, err
	}

	return &models.ScanResult{
		Valid:   true,
		Message: "check-in complete",
		Booking: s.gateSnapshot(ctx, b),
	}, nil
}

// gateSnapshot assembles the display view shown on the gate screen. Lookup
// failures degrade to blank fields, never a failed scan.
func (s *DefaultQRService) gateSnapshot(ctx context.Context, b *models.Booking) *models.GateSnapshot {
	snap := &models.GateSnapshot{
		ID:               b.ID,
		BookingReference: b.BookingReference,
		SlotStart:        b.SlotStart,
		SlotEnd:          b.SlotEnd,
	}
	if truck, err := s.Fleet.GetTruck(ctx, b.TruckID); err == nil {
		snap.TruckPlate = truck.PlateNumber
	}
	if driver, err := s.Fleet.GetDriver(ctx, b.DriverID); err == nil {
		if user, err := s.Users.GetByID(ctx, driver.UserID); err == nil {
			snap.DriverName = user.FullName
		}
	}
	if terminal, err := s.Registry.GetTerminal(ctx, b.TerminalID); err == nil {
		snap.TerminalName = terminal.Name
	}
	return snap
}
