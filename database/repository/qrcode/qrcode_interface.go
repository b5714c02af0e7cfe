package qrRepo

import (
	"context"
	"errors"
	"time"

	"portflow/models"
)

var (
	// ErrNotFound is returned when no QR code matches the query.
	ErrNotFound = errors.New("qr code not found")
	// ErrAlreadyUsed is returned when a consume finds the token already used.
	ErrAlreadyUsed = errors.New("qr code already used")
)

// QRCodeRepository defines data access for gate tokens.
type QRCodeRepository interface {
	// Insert writes a freshly issued token.
	Insert(ctx context.Context, qr *models.QRCode) error
	// GetByID retrieves a token by its unique ID.
	GetByID(ctx context.Context, id string) (*models.QRCode, error)
	// SupersedeForBooking marks every unused token of the booking superseded.
	SupersedeForBooking(ctx context.Context, bookingID string, at time.Time) error
	// Consume marks the token used. Exactly one concurrent caller succeeds;
	// the rest receive ErrAlreadyUsed.
	Consume(ctx context.Context, id string, at time.Time) error
}
