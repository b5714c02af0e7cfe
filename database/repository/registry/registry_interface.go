package registryRepo

import (
	"context"

	"portflow/models"
)

// RegistryRepository defines data access for ports and terminals.
type RegistryRepository interface {
	// CreatePort inserts a new port.
	CreatePort(ctx context.Context, port *models.Port) error
	// GetPort retrieves a port by its unique ID.
	GetPort(ctx context.Context, id string) (*models.Port, error)
	// ListPorts retrieves all ports.
	ListPorts(ctx context.Context) ([]models.Port, error)
	// CreateTerminal inserts a new terminal.
	CreateTerminal(ctx context.Context, terminal *models.Terminal) error
	// GetTerminal retrieves a terminal by its unique ID.
	GetTerminal(ctx context.Context, id string) (*models.Terminal, error)
	// ListTerminals retrieves terminals, optionally filtered by port.
	ListTerminals(ctx context.Context, portID string) ([]models.Terminal, error)
	// UpdateTerminalCapacity sets a terminal's max capacity.
	UpdateTerminalCapacity(ctx context.Context, id string, maxCapacity int) error
}
