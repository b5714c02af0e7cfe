package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	registryRepo "portflow/database/repository/registry"
	auditSvc "portflow/services/audit"

	"portflow/models"
	"portflow/utils"

	"github.com/google/uuid"
)

// PortInput carries a new port definition.
type PortInput struct {
	Name         string `json:"name"`
	CountryCode  string `json:"countryCode"`
	Timezone     string `json:"timezone"`
	SlotDuration int    `json:"slotDuration"`
}

// TerminalInput carries a new terminal definition.
type TerminalInput struct {
	PortID      string `json:"portId"`
	Name        string `json:"name"`
	MaxCapacity int    `json:"maxCapacity"`
}

// RegistryService manages the static port and terminal registry.
type RegistryService interface {
	CreatePort(ctx context.Context, actor models.Actor, input PortInput) (*models.Port, error)
	GetPort(ctx context.Context, id string) (*models.Port, error)
	ListPorts(ctx context.Context) ([]models.Port, error)
	CreateTerminal(ctx context.Context, actor models.Actor, input TerminalInput) (*models.Terminal, error)
	GetTerminal(ctx context.Context, id string) (*models.Terminal, error)
	ListTerminals(ctx context.Context, portID string) ([]models.Terminal, error)
	// SetTerminalCapacity changes a terminal's slot capacity. Existing
	// bookings are untouched; shrinking below current occupancy surfaces
	// as overbooked-slot exceptions.
	SetTerminalCapacity(ctx context.Context, actor models.Actor, id string, maxCapacity int) (*models.Terminal, error)
}

// DefaultRegistryService implements RegistryService.
type DefaultRegistryService struct {
	Repo  registryRepo.RegistryRepository
	Audit auditSvc.Recorder
}

func (s *DefaultRegistryService) CreatePort(ctx context.Context, actor models.Actor, input PortInput) (*models.Port, error) {
	if input.Name == "" {
		return nil, utils.ValidationError("port name is required")
	}
	if input.SlotDuration <= 0 {
		return nil, utils.ValidationError("slot duration must be a positive number of minutes")
	}
	if _, err := time.LoadLocation(input.Timezone); err != nil {
		return nil, utils.ValidationError("unknown timezone %q", input.Timezone)
	}

	port := &models.Port{
		ID:           uuid.New().String(),
		Name:         input.Name,
		CountryCode:  input.CountryCode,
		Timezone:     input.Timezone,
		SlotDuration: input.SlotDuration,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.CreatePort(ctx, port); err != nil {
		return nil, fmt.Errorf("failed to create port: %w", err)
	}
	s.Audit.Record(ctx, actor, "PORT", port.ID, models.ActionCreated,
		fmt.Sprintf("created port %s", port.Name))
	return port, nil
}

func (s *DefaultRegistryService) GetPort(ctx context.Context, id string) (*models.Port, error) {
	port, err := s.Repo.GetPort(ctx, id)
	if err != nil {
		if errors.Is(err, registryRepo.ErrNotFound) {
			return nil, utils.NotFoundError("port %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch port: %w", err)
	}
	return port, nil
}

func (s *DefaultRegistryService) ListPorts(ctx context.Context) ([]models.Port, error) {
	ports, err := s.Repo.ListPorts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ports: %w", err)
	}
	return ports, nil
}

func (s *DefaultRegistryService) CreateTerminal(ctx context.Context, actor models.Actor, input TerminalInput) (*models.Terminal, error) {
	if input.Name == "" {
		return nil, utils.ValidationError("terminal name is required")
	}
	if input.MaxCapacity <= 0 {
		return nil, utils.ValidationError("max capacity must be positive")
	}
	if _, err := s.GetPort(ctx, input.PortID); err != nil {
		return nil, err
	}

	terminal := &models.Terminal{
		ID:          uuid.New().String(),
		PortID:      input.PortID,
		Name:        input.Name,
		MaxCapacity: input.MaxCapacity,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.CreateTerminal(ctx, terminal); err != nil {
		return nil, fmt.Errorf("failed to create terminal: %w", err)
	}
	s.Audit.Record(ctx, actor, "TERMINAL", terminal.ID, models.ActionCreated,
		fmt.Sprintf("created terminal %s with capacity %d", terminal.Name, terminal.MaxCapacity))
	return terminal, nil
}

func (s *DefaultRegistryService) GetTerminal(ctx context.Context, id string) (*models.Terminal, error) {
	terminal, err := s.Repo.GetTerminal(ctx, id)
	if err != nil {
		if errors.Is(err, registryRepo.ErrNotFound) {
			return nil, utils.NotFoundError("terminal %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch terminal: %w", err)
	}
	return terminal, nil
}

func (s *DefaultRegistryService) ListTerminals(ctx context.Context, portID string) ([]models.Terminal, error) {
	terminals, err := s.Repo.ListTerminals(ctx, portID)
	if err != nil {
		return nil, fmt.Errorf("failed to list terminals: %w", err)
	}
	return terminals, nil
}

func (s *DefaultRegistryService) SetTerminalCapacity(ctx context.Context, actor models.Actor, id string, maxCapacity int) (*models.Terminal, error) {
	if maxCapacity <= 0 {
		return nil, utils.ValidationError("max capacity must be positive")
	}
	terminal, err := s.GetTerminal(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := terminal.MaxCapacity
	if err := s.Repo.UpdateTerminalCapacity(ctx, id, maxCapacity); err != nil {
		return nil, fmt.Errorf("failed to update terminal capacity: %w", err)
	}
	terminal.MaxCapacity = maxCapacity
	s.Audit.Record(ctx, actor, "TERMINAL", id, models.ActionUpdated,
		fmt.Sprintf("changed capacity of terminal %s from %d to %d", terminal.Name, previous, maxCapacity))
	return terminal, nil
}
