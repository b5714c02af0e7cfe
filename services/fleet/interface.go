package fleet

import (
	"context"

	fleetRepo "portflow/database/repository/fleet"
	userRepo "portflow/database/repository/user"
	auditSvc "portflow/services/audit"

	"portflow/models"
)

// CarrierInput carries a new carrier company definition.
type CarrierInput struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// OperatorInput binds a user account to a port and terminal.
type OperatorInput struct {
	UserID     string `json:"userId"`
	PortID     string `json:"portId"`
	TerminalID string `json:"terminalId"`
}

// TruckInput carries a new truck registration.
type TruckInput struct {
	CarrierID   string `json:"carrierId"`
	PlateNumber string `json:"plateNumber"`
}

// DriverInput binds a driver user to a carrier.
type DriverInput struct {
	CarrierID string `json:"carrierId"`
	UserID    string `json:"userId"`
}

// FleetService manages carriers, operators, trucks and drivers.
type FleetService interface {
	CreateCarrier(ctx context.Context, actor models.Actor, input CarrierInput) (*models.Carrier, error)
	GetCarrier(ctx context.Context, id string) (*models.Carrier, error)
	GetCarrierByUser(ctx context.Context, userID string) (*models.Carrier, error)
	ListCarriers(ctx context.Context) ([]models.Carrier, error)

	CreateOperator(ctx context.Context, actor models.Actor, input OperatorInput) (*models.Operator, error)
	GetOperatorByUser(ctx context.Context, userID string) (*models.Operator, error)
	ListOperators(ctx context.Context) ([]models.Operator, error)

	CreateTruck(ctx context.Context, actor models.Actor, input TruckInput) (*models.Truck, error)
	ListTrucks(ctx context.Context, carrierID string) ([]models.Truck, error)
	// SetTruckStatus suspends or reactivates a truck. An empty carrierID
	// skips the ownership check (admin path).
	SetTruckStatus(ctx context.Context, actor models.Actor, id, carrierID, status string) error

	CreateDriver(ctx context.Context, actor models.Actor, input DriverInput) (*models.Driver, error)
	GetDriverByUser(ctx context.Context, userID string) (*models.Driver, error)
	ListDrivers(ctx context.Context, carrierID string) ([]models.Driver, error)
	// SetDriverStatus suspends or reactivates a driver, same rules as trucks.
	SetDriverStatus(ctx context.Context, actor models.Actor, id, carrierID, status string) error
}

// DefaultFleetService implements FleetService.
type DefaultFleetService struct {
	Repo  fleetRepo.FleetRepository
	Users userRepo.UserRepository
	Audit auditSvc.Recorder
}
