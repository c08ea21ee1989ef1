// Package ports defines the contracts between the core and the adapters:
// repositories, the unit of work, and outbound clients. The core depends on
// these interfaces only; adapters implement them.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository is the persistence contract for courier aggregates,
// including their storage places and occupancy.
type CourierRepository interface {
	// Add persists a new courier aggregate.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by identifier, with all its storage places.
	// Returns errs.ObjectNotFoundError when no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves the couriers whose storage places are all
	// empty, i.e. those that can be offered new orders.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)

	// GetAll retrieves every courier regardless of availability.
	GetAll(ctx context.Context) ([]*courier.Courier, error)
}
