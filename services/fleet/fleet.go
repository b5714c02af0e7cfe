package fleet

import (
	"context"
	"errors"
	"fmt"
	"time"

	fleetRepo "portflow/database/repository/fleet"
	"portflow/models"
	"portflow/utils"

	"github.com/google/uuid"
)

func (s *DefaultFleetService) CreateCarrier(ctx context.Context, actor models.Actor, input CarrierInput) (*models.Carrier, error) {
	if input.Name == "" {
		return nil, utils.ValidationError("carrier name is required")
	}
	if _, err := s.Users.GetByID(ctx, input.UserID); err != nil {
		return nil, utils.ValidationError("unknown user %s", input.UserID)
	}

	carrier := &models.Carrier{
		ID:        uuid.New().String(),
		UserID:    input.UserID,
		Name:      input.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateCarrier(ctx, carrier); err != nil {
		return nil, fmt.Errorf("failed to create carrier: %w", err)
	}
	s.Audit.Record(ctx, actor, "CARRIER", carrier.ID, models.ActionCreated,
		fmt.Sprintf("registered carrier %s", carrier.Name))
	return carrier, nil
}

func (s *DefaultFleetService) GetCarrier(ctx context.Context, id string) (*models.Carrier, error) {
	carrier, err := s.Repo.GetCarrier(ctx, id)
	if err != nil {
		if errors.Is(err, fleetRepo.ErrNotFound) {
			return nil, utils.NotFoundError("carrier %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch carrier: %w", err)
	}
	return carrier, nil
}

func (s *DefaultFleetService) GetCarrierByUser(ctx context.Context, userID string) (*models.Carrier, error) {
	carrier, err := s.Repo.GetCarrierByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, fleetRepo.ErrNotFound) {
			return nil, utils.NotFoundError("no carrier bound to user %s", userID)
		}
		return nil, fmt.Errorf("failed to fetch carrier: %w", err)
	}
	return carrier, nil
}

func (s *DefaultFleetService) ListCarriers(ctx context.Context) ([]models.Carrier, error) {
	carriers, err := s.Repo.ListCarriers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list carriers: %w", err)
	}
	return carriers, nil
}

func (s *DefaultFleetService) CreateOperator(ctx context.Context, actor models.Actor, input OperatorInput) (*models.Operator, error) {
	if input.PortID == "" || input.TerminalID == "" {
		return nil, utils.ValidationError("port and terminal are required")
	}
	if _, err := s.Users.GetByID(ctx, input.UserID); err != nil {
		return nil, utils.ValidationError("unknown user %s", input.UserID)
	}

	operator := &models.Operator{
		ID:         uuid.New().String(),
		UserID:     input.UserID,
		PortID:     input.PortID,
		TerminalID: input.TerminalID,
		Status:     models.StatusActive,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.CreateOperator(ctx, operator); err != nil {
		return nil, fmt.Errorf("failed to create operator: %w", err)
	}
	s.Audit.Record(ctx, actor, "OPERATOR", operator.ID, models.ActionCreated,
		fmt.Sprintf("registered operator for terminal %s", operator.TerminalID))
	return operator, nil
}

func (s *DefaultFleetService) GetOperatorByUser(ctx context.Context, userID string) (*models.Operator, error) {
	operator, err := s.Repo.GetOperatorByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, fleetRepo.ErrNotFound) {
			return nil, utils.NotFoundError("no operator bound to user %s", userID)
		}
		return nil, fmt.Errorf("failed to fetch operator: %w", err)
	}
	return operator, nil
}

func (s *DefaultFleetService) ListOperators(ctx context.Context) ([]models.Operator, error) {
	operators, err := s.Repo.ListOperators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	return operators, nil
}

func (s *DefaultFleetService) CreateTruck(ctx context.Context, actor models.Actor, input TruckInput) (*models.Truck, error) {
	if input.PlateNumber == "" {
		return nil, utils.ValidationError("plate number is required")
	}
	if _, err := s.GetCarrier(ctx, input.CarrierID); err != nil {
		return nil, err
	}

	truck := &models.Truck{
		ID:          uuid.New().String(),
		CarrierID:   input.CarrierID,
		PlateNumber: input.PlateNumber,
		Status:      models.StatusActive,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.CreateTruck(ctx, truck); err != nil {
		return nil, fmt.Errorf("failed to create truck: %w", err)
	}
	s.Audit.Record(ctx, actor, "TRUCK", truck.ID, models.ActionCreated,
		fmt.Sprintf("registered truck %s", truck.PlateNumber))
	return truck, nil
}

func (s *DefaultFleetService) ListTrucks(ctx context.Context, carrierID string) ([]models.Truck, error) {
	trucks, err := s.Repo.ListTrucks(ctx, carrierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trucks: %w", err)
	}
	return trucks, nil
}

func (s *DefaultFleetService) SetTruckStatus(ctx context.Context, actor models.Actor, id, carrierID, status string) error {
	if status != models.StatusActive && status != models.StatusSuspended {
		return utils.ValidationError("unknown status %q", status)
	}
	truck, err := s.Repo.GetTruck(ctx, id)
	if err != nil {
		if errors.Is(err, fleetRepo.ErrNotFound) {
			return utils.NotFoundError("truck %s not found", id)
		}
		return fmt.Errorf("failed to fetch truck: %w", err)
	}
	if carrierID != "" && truck.CarrierID != carrierID {
		return utils.ForbiddenError("truck %s does not belong to this carrier", id)
	}
	if err := s.Repo.SetTruckStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update truck status: %w", err)
	}
	s.Audit.Record(ctx, actor, "TRUCK", id, models.ActionUpdated,
		fmt.Sprintf("set truck %s to %s", truck.PlateNumber, status))
	return nil
}

func (s *DefaultFleetService) CreateDriver(ctx context.Context, actor models.Actor, input DriverInput) (*models.Driver, error) {
	if _, err := s.GetCarrier(ctx, input.CarrierID); err != nil {
		return nil, err
	}
	u, err := s.Users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, utils.ValidationError("unknown user %s", input.UserID)
	}
	if u.Role != models.RoleDriver {
		return nil, utils.ValidationError("user %s does not have the DRIVER role", input.UserID)
	}

	driver := &models.Driver{
		ID:        uuid.New().String(),
		CarrierID: input.CarrierID,
		UserID:    input.UserID,
		Status:    models.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateDriver(ctx, driver); err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}
	s.Audit.Record(ctx, actor, "DRIVER", driver.ID, models.ActionCreated,
		fmt.Sprintf("registered driver %s", u.FullName))
	return driver, nil
}

func (s *DefaultFleetService) GetDriverByUser(ctx context.Context, userID string) (*models.Driver, error) {
	driver, err := s.Repo.GetDriverByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, fleetRepo.ErrNotFound) {
			return nil, utils.NotFoundError("no driver bound to user %s", userID)
		}
		return nil, fmt.Errorf("failed to fetch driver: %w", err)
	}
	if u, err := s.Users.GetByID(ctx, driver.UserID); err == nil {
		u.PasswordHash = ""
		driver.User = u
	}
	return driver, nil
}

func (s *DefaultFleetService) ListDrivers(ctx context.Context, carrierID string) ([]models.Driver, error) {
	drivers, err := s.Repo.ListDrivers(ctx, carrierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	for i := range drivers {
		if u, err := s.Users.GetByID(ctx, drivers[i].UserID); err == nil {
			u.PasswordHash = ""
			drivers[i].User = u
		}
	}
	return drivers, nil
}

func (s *DefaultFleetService) SetDriverStatus(ctx context.Context, actor models.Actor, id, carrierID, status string) error {
	if status != models.StatusActive && status != models.StatusSuspended {
		return utils.ValidationError("unknown status %q", status)
	}
	driver, err := s.Repo.GetDriver(ctx, id)
	if err != nil {
		if errors.Is(err, fleetRepo.ErrNotFound) {
			return utils.NotFoundError("driver %s not found", id)
		}
		return fmt.Errorf("failed to fetch driver: %w", err)
	}
	if carrierID != "" && driver.CarrierID != carrierID {
		return utils.ForbiddenError("driver %s does not belong to this carrier", id)
	}
	if err := s.Repo.SetDriverStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update driver status: %w", err)
	}
	s.Audit.Record(ctx, actor, "DRIVER", id, models.ActionUpdated,
		fmt.Sprintf("set driver %s to %s", id, status))
	return nil
}
