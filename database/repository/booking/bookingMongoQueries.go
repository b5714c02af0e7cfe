// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"portflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// OccupancyBySlot sums SlotsCount per slot start over the given statuses
// for bookings of the terminal within [from, to).
func (r *MongoBookingRepo) OccupancyBySlot(ctx context.Context, terminalID string, from, to time.Time, statuses []string) (map[time.Time]int, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"terminalId": terminalID,
			"status":     bson.M{"$in": statuses},
			"slotStart":  bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$slotStart",
			"booked": bson.M{"$sum": "$slotsCount"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating occupancy for terminal %s: %w", terminalID, err)
	}
	defer cursor.Close(ctx)

	var rows []models.SlotOccupancy
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("error decoding occupancy rows: %w", err)
	}

	occupancy := make(map[time.Time]int, len(rows))
	for _, row := range rows {
		occupancy[row.SlotStart.UTC()] = row.Booked
	}
	return occupancy, nil
}

// SlotOccupancy sums SlotsCount for bookings of the terminal in
// [slotStart, slotEnd) with one of the given statuses.
func (r *MongoBookingRepo) SlotOccupancy(ctx context.Context, terminalID string, slotStart, slotEnd time.Time, statuses []string) (int, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	return r.slotOccupancy(ctx, terminalID, slotStart, slotEnd, statuses)
}

// slotOccupancy runs the occupancy aggregation on the caller's context so it
// can participate in a session transaction.
func (r *MongoBookingRepo) slotOccupancy(ctx context.Context, terminalID string, slotStart, slotEnd time.Time, statuses []string) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"terminalId": terminalID,
			"status":     bson.M{"$in": statuses},
			"slotStart":  bson.M{"$gte": slotStart, "$lt": slotEnd},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"booked": bson.M{"$sum": "$slotsCount"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("error aggregating slot occupancy: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Booked int `bson:"booked"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("error decoding slot occupancy: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Booked, nil
}

// CountByStatus groups bookings of the window by status.
func (r *MongoBookingRepo) CountByStatus(ctx context.Context, terminalID string, from, to time.Time) ([]models.StatusCount, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	match := bson.M{"slotStart": bson.M{"$gte": from, "$lt": to}}
	if terminalID != "" {
		match["terminalId"] = terminalID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating status counts: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []models.StatusCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("error decoding status counts: %w", err)
	}
	return counts, nil
}
