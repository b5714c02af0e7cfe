package fleetRepo

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

// ErrNotFound is returned when no fleet entity matches the query.
var ErrNotFound = errors.New("fleet entity not found")

// MongoFleetRepo implements FleetRepository using MongoDB.
type MongoFleetRepo struct {
	carrierColl  *mongo.Collection
	operatorColl *mongo.Collection
	truckColl    *mongo.Collection
	driverColl   *mongo.Collection
}

// NewMongoFleetRepo creates a new instance of FleetRepository using MongoDB.
func NewMongoFleetRepo() FleetRepository {
	db := database.DB()
	repo := &MongoFleetRepo{
		carrierColl:  db.Collection("carriers"),
		operatorColl: db.Collection("operators"),
		truckColl:    db.Collection("trucks"),
		driverColl:   db.Collection("drivers"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoFleetRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	for coll, indexes := range map[*mongo.Collection][]mongo.IndexModel{
		r.carrierColl: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		r.operatorColl: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		r.truckColl: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "carrierId", Value: 1}, {Key: "plateNumber", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		r.driverColl: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "carrierId", Value: 1}}},
		},
	} {
		if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", coll.Name(), err)
		}
	}
	return nil
}

// CreateCarrier inserts a new carrier document.
func (r *MongoFleetRepo) CreateCarrier(ctx context.Context, carrier *models.Carrier) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	carrier.CreatedAt = time.Now()
	if _, err := r.carrierColl.InsertOne(ctx, carrier); err != nil {
		return fmt.Errorf("failed to create carrier: %w", err)
	}
	return nil
}

// GetCarrier retrieves a carrier by its unique ID.
func (r *MongoFleetRepo) GetCarrier(ctx context.Context, id string) (*models.Carrier, error) {
	return r.findCarrier(ctx, bson.M{"id": id})
}

// GetCarrierByUser retrieves the carrier owned by the given user.
func (r *MongoFleetRepo) GetCarrierByUser(ctx context.Context, userID string) (*models.Carrier, error) {
	return r.findCarrier(ctx, bson.M{"userId": userID})
}

func (r *MongoFleetRepo) findCarrier(ctx context.Context, filter bson.M) (*models.Carrier, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var carrier models.Carrier
	if err := r.carrierColl.FindOne(ctx, filter).Decode(&carrier); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch carrier: %w", err)
	}
	return &carrier, nil
}

// ListCarriers retrieves all carriers.
func (r *MongoFleetRepo) ListCarriers(ctx context.Context) ([]models.Carrier, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.carrierColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list carriers: %w", err)
	}
	defer cursor.Close(ctx)

	var carriers []models.Carrier
	if err := cursor.All(ctx, &carriers); err != nil {
		return nil, fmt.Errorf("failed to decode carriers: %w", err)
	}
	return carriers, nil
}

// CreateOperator inserts a new operator document.
func (r *MongoFleetRepo) CreateOperator(ctx context.Context, operator *models.Operator) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	operator.CreatedAt = time.Now()
	if _, err := r.operatorColl.InsertOne(ctx, operator); err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}
	return nil
}

// GetOperatorByUser retrieves the operator bound to the given user.
func (r *MongoFleetRepo) GetOperatorByUser(ctx context.Context, userID string) (*models.Operator, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var operator models.Operator
	if err := r.operatorColl.FindOne(ctx, bson.M{"userId": userID}).Decode(&operator); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch operator for user %s: %w", userID, err)
	}
	return &operator, nil
}

// ListOperators retrieves all operators.
func (r *MongoFleetRepo) ListOperators(ctx context.Context) ([]models.Operator, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.operatorColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	defer cursor.Close(ctx)

	var operators []models.Operator
	if err := cursor.All(ctx, &operators); err != nil {
		return nil, fmt.Errorf("failed to decode operators: %w", err)
	}
	return operators, nil
}

// CreateTruck inserts a new truck document.
func (r *MongoFleetRepo) CreateTruck(ctx context.Context, truck *models.Truck) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	truck.CreatedAt = time.Now()
	if _, err := r.truckColl.InsertOne(ctx, truck); err != nil {
		return fmt.Errorf("failed to create truck: %w", err)
	}
	return nil
}

// GetTruck retrieves a truck by its unique ID.
func (r *MongoFleetRepo) GetTruck(ctx context.Context, id string) (*models.Truck, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var truck models.Truck
	if err := r.truckColl.FindOne(ctx, bson.M{"id": id}).Decode(&truck); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch truck with id %s: %w", id, err)
	}
	return &truck, nil
}

// ListTrucks retrieves trucks, optionally filtered by carrier.
func (r *MongoFleetRepo) ListTrucks(ctx context.Context, carrierID string) ([]models.Truck, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if carrierID != "" {
		filter["carrierId"] = carrierID
	}
	cursor, err := r.truckColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list trucks: %w", err)
	}
	defer cursor.Close(ctx)

	var trucks []models.Truck
	if err := cursor.All(ctx, &trucks); err != nil {
		return nil, fmt.Errorf("failed to decode trucks: %w", err)
	}
	return trucks, nil
}

// SetTruckStatus flips a truck between ACTIVE and SUSPENDED.
func (r *MongoFleetRepo) SetTruckStatus(ctx context.Context, id, status string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.truckColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to set truck %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountTrucks counts trucks matching the carrier/status filter.
func (r *MongoFleetRepo) CountTrucks(ctx context.Context, carrierID, status string) (int, error) {
	return r.countColl(ctx, r.truckColl, carrierID, status)
}

// CreateDriver inserts a new driver document.
func (r *MongoFleetRepo) CreateDriver(ctx context.Context, driver *models.Driver) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	driver.CreatedAt = time.Now()
	if _, err := r.driverColl.InsertOne(ctx, driver); err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

// GetDriver retrieves a driver by its unique ID.
func (r *MongoFleetRepo) GetDriver(ctx context.Context, id string) (*models.Driver, error) {
	return r.findDriver(ctx, bson.M{"id": id})
}

// GetDriverByUser retrieves the driver bound to the given user.
func (r *MongoFleetRepo) GetDriverByUser(ctx context.Context, userID string) (*models.Driver, error) {
	return r.findDriver(ctx, bson.M{"userId": userID})
}

func (r *MongoFleetRepo) findDriver(ctx context.Context, filter bson.M) (*models.Driver, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var driver models.Driver
	if err := r.driverColl.FindOne(ctx, filter).Decode(&driver); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch driver: %w", err)
	}
	return &driver, nil
}

// ListDrivers retrieves drivers, optionally filtered by carrier.
func (r *MongoFleetRepo) ListDrivers(ctx context.Context, carrierID string) ([]models.Driver, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if carrierID != "" {
		filter["carrierId"] = carrierID
	}
	cursor, err := r.driverColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer cursor.Close(ctx)

	var drivers []models.Driver
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, fmt.Errorf("failed to decode drivers: %w", err)
	}
	return drivers, nil
}

// SetDriverStatus flips a driver between ACTIVE and SUSPENDED.
func (r *MongoFleetRepo) SetDriverStatus(ctx context.Context, id, status string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.driverColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to set driver %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountDrivers counts drivers matching the carrier/status filter.
func (r *MongoFleetRepo) CountDrivers(ctx context.Context, carrierID, status string) (int, error) {
	return r.countColl(ctx, r.driverColl, carrierID, status)
}

func (r *MongoFleetRepo) countColl(ctx context.Context, coll *mongo.Collection, carrierID, status string) (int, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if carrierID != "" {
		filter["carrierId"] = carrierID
	}
	if status != "" {
		filter["status"] = status
	}
	n, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", coll.Name(), err)
	}
	return int(n), nil
}
