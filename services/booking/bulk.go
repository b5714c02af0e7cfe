package booking

import (
	"context"

	"portflow/models"
)

// BulkConfirm applies ConfirmBooking to each id independently. One item's
// failure never blocks or rolls back the others.
func (s *DefaultBookingService) BulkConfirm(ctx context.Context, actor models.Actor, ids []string) models.BulkResult {
	return s.bulkApply(ctx, ids, func(id string) error {
		_, err := s.ConfirmBooking(ctx, actor, id)
		return err
	})
}

// BulkReject applies RejectBooking to each id independently.
func (s *DefaultBookingService) BulkReject(ctx context.Context, actor models.Actor, ids []string) models.BulkResult {
	return s.bulkApply(ctx, ids, func(id string) error {
		_, err := s.RejectBooking(ctx, actor, id)
		return err
	})
}

func (s *DefaultBookingService) bulkApply(ctx context.Context, ids []string, apply func(id string) error) models.BulkResult {
	result := models.BulkResult{Failed: []string{}}
	for _, id := range ids {
		if err := apply(id); err != nil {
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Succeeded++
	}
	return result
}
