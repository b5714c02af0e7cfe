package fleetRepo

import (
	"context"

	"portflow/models"
)

// FleetRepository defines data access for carriers, operators, trucks and drivers.
type FleetRepository interface {
	// CreateCarrier inserts a new carrier.
	CreateCarrier(ctx context.Context, carrier *models.Carrier) error
	// GetCarrier retrieves a carrier by its unique ID.
	GetCarrier(ctx context.Context, id string) (*models.Carrier, error)
	// GetCarrierByUser retrieves the carrier owned by the given user.
	GetCarrierByUser(ctx context.Context, userID string) (*models.Carrier, error)
	// ListCarriers retrieves all carriers.
	ListCarriers(ctx context.Context) ([]models.Carrier, error)

	// CreateOperator inserts a new operator.
	CreateOperator(ctx context.Context, operator *models.Operator) error
	// GetOperatorByUser retrieves the operator bound to the given user.
	GetOperatorByUser(ctx context.Context, userID string) (*models.Operator, error)
	// ListOperators retrieves all operators.
	ListOperators(ctx context.Context) ([]models.Operator, error)

	// CreateTruck inserts a new truck.
	CreateTruck(ctx context.Context, truck *models.Truck) error
	// GetTruck retrieves a truck by its unique ID.
	GetTruck(ctx context.Context, id string) (*models.Truck, error)
	// ListTrucks retrieves trucks, optionally filtered by carrier.
	ListTrucks(ctx context.Context, carrierID string) ([]models.Truck, error)
	// SetTruckStatus flips a truck between ACTIVE and SUSPENDED.
	SetTruckStatus(ctx context.Context, id, status string) error
	// CountTrucks counts trucks matching the carrier/status filter.
	CountTrucks(ctx context.Context, carrierID, status string) (int, error)

	// CreateDriver inserts a new driver.
	CreateDriver(ctx context.Context, driver *models.Driver) error
	// GetDriver retrieves a driver by its unique ID.
	GetDriver(ctx context.Context, id string) (*models.Driver, error)
	// GetDriverByUser retrieves the driver bound to the given user.
	GetDriverByUser(ctx context.Context, userID string) (*models.Driver, error)
	// ListDrivers retrieves drivers, optionally filtered by carrier.
	ListDrivers(ctx context.Context, carrierID string) ([]models.Driver, error)
	// SetDriverStatus flips a driver between ACTIVE and SUSPENDED.
	SetDriverStatus(ctx context.Context, id, status string) error
	// CountDrivers counts drivers matching the carrier/status filter.
	CountDrivers(ctx context.Context, carrierID, status string) (int, error)
}
