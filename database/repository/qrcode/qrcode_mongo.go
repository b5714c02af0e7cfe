package qrRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portflow/database"
	"portflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoQRCodeRepo implements QRCodeRepository using MongoDB.
type MongoQRCodeRepo struct {
	coll *mongo.Collection
}

// NewMongoQRCodeRepo creates a new instance of QRCodeRepository using MongoDB.
func NewMongoQRCodeRepo() QRCodeRepository {
	coll := database.DB().Collection("qrcodes")
	repo := &MongoQRCodeRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoQRCodeRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert writes a freshly issued token.
func (r *MongoQRCodeRepo) Insert(ctx context.Context, qr *models.QRCode) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, qr); err != nil {
		return fmt.Errorf("failed to insert qr code: %w", err)
	}
	return nil
}

// GetByID retrieves a token by its unique ID.
func (r *MongoQRCodeRepo) GetByID(ctx context.Context, id string) (*models.QRCode, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var qr models.QRCode
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&qr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch qr code %s: %w", id, err)
	}
	return &qr, nil
}

// SupersedeForBooking marks every unused token of the booking superseded.
func (r *MongoQRCodeRepo) SupersedeForBooking(ctx context.Context, bookingID string, at time.Time) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"bookingId": bookingID, "usedAt": nil, "supersededAt": nil}
	if _, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"supersededAt": at}}); err != nil {
		return fmt.Errorf("failed to supersede qr codes for booking %s: %w", bookingID, err)
	}
	return nil
}

// Consume marks the token used via a guarded update on usedAt. The filter
// matches at most once, so a concurrent double-scan resolves to exactly one
// success.
func (r *MongoQRCodeRepo) Consume(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "usedAt": nil}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"usedAt": at}})
	if err != nil {
		return fmt.Errorf("failed to consume qr code %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		if n, countErr := r.coll.CountDocuments(ctx, bson.M{"id": id}); countErr == nil && n == 0 {
			return ErrNotFound
		}
		return ErrAlreadyUsed
	}
	return nil
}
