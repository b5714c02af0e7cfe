package registryRepo

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

// ErrNotFound is returned when no port or terminal matches the query.
var ErrNotFound = errors.New("registry entity not found")

// MongoRegistryRepo implements RegistryRepository using MongoDB.
type MongoRegistryRepo struct {
	portColl     *mongo.Collection
	terminalColl *mongo.Collection
}

// NewMongoRegistryRepo creates a new instance of RegistryRepository using MongoDB.
func NewMongoRegistryRepo() RegistryRepository {
	db := database.DB()
	repo := &MongoRegistryRepo{
		portColl:     db.Collection("ports"),
		terminalColl: db.Collection("terminals"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoRegistryRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.portColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create port indexes: %w", err)
	}
	_, err := r.terminalColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "portId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create terminal indexes: %w", err)
	}
	return nil
}

// CreatePort inserts a new port document.
func (r *MongoRegistryRepo) CreatePort(ctx context.Context, port *models.Port) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	port.CreatedAt = time.Now()
	if _, err := r.portColl.InsertOne(ctx, port); err != nil {
		return fmt.Errorf("failed to create port: %w", err)
	}
	return nil
}

// GetPort retrieves a port by its unique ID.
func (r *MongoRegistryRepo) GetPort(ctx context.Context, id string) (*models.Port, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var port models.Port
	if err := r.portColl.FindOne(ctx, bson.M{"id": id}).Decode(&port); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch port with id %s: %w", id, err)
	}
	return &port, nil
}

// ListPorts retrieves all ports.
func (r *MongoRegistryRepo) ListPorts(ctx context.Context) ([]models.Port, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.portColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}
	defer cursor.Close(ctx)

	var ports []models.Port
	if err := cursor.All(ctx, &ports); err != nil {
		return nil, fmt.Errorf("failed to decode ports: %w", err)
	}
	return ports, nil
}

// CreateTerminal inserts a new terminal document.
func (r *MongoRegistryRepo) CreateTerminal(ctx context.Context, terminal *models.Terminal) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	terminal.CreatedAt = time.Now()
	if _, err := r.terminalColl.InsertOne(ctx, terminal); err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	return nil
}

// GetTerminal retrieves a terminal by its unique ID.
func (r *MongoRegistryRepo) GetTerminal(ctx context.Context, id string) (*models.Terminal, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var terminal models.Terminal
	if err := r.terminalColl.FindOne(ctx, bson.M{"id": id}).Decode(&terminal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch terminal with id %s: %w", id, err)
	}
	return &terminal, nil
}

// ListTerminals retrieves terminals, optionally filtered by port.
func (r *MongoRegistryRepo) ListTerminals(ctx context.Context, portID string) ([]models.Terminal, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if portID != "" {
		filter["portId"] = portID
	}
	cursor, err := r.terminalColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list terminals: %w", err)
	}
	defer cursor.Close(ctx)

	var terminals []models.Terminal
	if err := cursor.All(ctx, &terminals); err != nil {
		return nil, fmt.Errorf("failed to decode terminals: %w", err)
	}
	return terminals, nil
}

// UpdateTerminalCapacity sets a terminal's max capacity.
func (r *MongoRegistryRepo) UpdateTerminalCapacity(ctx context.Context, id string, maxCapacity int) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.terminalColl.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"maxCapacity": maxCapacity}})
	if err != nil {
		return fmt.Errorf("failed to update terminal %s capacity: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
