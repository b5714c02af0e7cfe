package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"portflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// withTransaction runs fn inside a mongo session transaction. Competing
// capacity writes on the same slot either serialize or abort with a
// transient write conflict, which surfaces as an error to the caller.
func (r *MongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateWithCapacity inserts the booking only if its slot still has room,
// counting PENDING/CONFIRMED/CONSUMED bookings.
func (r *MongoBookingRepo) CreateWithCapacity(ctx context.Context, booking *models.Booking, maxCapacity int) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		used, err := r.slotOccupancy(sc, booking.TerminalID, booking.SlotStart, booking.SlotEnd, models.ActiveBookingStatuses)
		if err != nil {
			return err
		}
		if used+booking.SlotsCount > maxCapacity {
			return ErrNoCapacity
		}
		if _, err := r.coll.InsertOne(sc, booking); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrDuplicateReference
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	})
}

// ConfirmWithCapacity transitions a PENDING booking to CONFIRMED, re-checking
// the confirmed occupancy of its slot inside the transaction so that two
// concurrent confirms cannot both land past capacity.
func (r *MongoBookingRepo) ConfirmWithCapacity(ctx context.Context, id string, maxCapacity int) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var booking models.Booking
		if err := r.coll.FindOne(sc, bson.M{"id": id}).Decode(&booking); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return fmt.Errorf("fetch booking failed: %w", err)
		}
		if booking.Status != models.BookingPending {
			return ErrStaleStatus
		}

		confirmed, err := r.slotOccupancy(sc, booking.TerminalID, booking.SlotStart, booking.SlotEnd,
			[]string{models.BookingConfirmed, models.BookingConsumed})
		if err != nil {
			return err
		}
		if confirmed+booking.SlotsCount > maxCapacity {
			return ErrNoCapacity
		}

		result, err := r.coll.UpdateOne(sc,
			bson.M{"id": id, "status": models.BookingPending},
			bson.M{"$set": bson.M{"status": models.BookingConfirmed}})
		if err != nil {
			return fmt.Errorf("confirm booking failed: %w", err)
		}
		if result.MatchedCount == 0 {
			return ErrStaleStatus
		}
		return nil
	})
}

// ReassignWithCapacity moves a non-terminal booking to a new slot only if
// the destination slot has capacity for it.
func (r *MongoBookingRepo) ReassignWithCapacity(ctx context.Context, id string, newStart, newEnd time.Time, maxCapacity int) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		var booking models.Booking
		if err := r.coll.FindOne(sc, bson.M{"id": id}).Decode(&booking); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return fmt.Errorf("fetch booking failed: %w", err)
		}
		if models.IsTerminalStatus(booking.Status) {
			return ErrStaleStatus
		}

		used, err := r.slotOccupancy(sc, booking.TerminalID, newStart, newEnd, models.ActiveBookingStatuses)
		if err != nil {
			return err
		}
		if used+booking.SlotsCount > maxCapacity {
			return ErrNoCapacity
		}

		result, err := r.coll.UpdateOne(sc,
			bson.M{"id": id, "status": booking.Status},
			bson.M{"$set": bson.M{"slotStart": newStart, "slotEnd": newEnd}})
		if err != nil {
			return fmt.Errorf("reassign booking failed: %w", err)
		}
		if result.MatchedCount == 0 {
			return ErrStaleStatus
		}
		return nil
	})
}
