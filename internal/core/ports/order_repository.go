package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstInCreatedStatus retrieves the oldest order still waiting for a
	// courier, in creation order. Returns errs.ObjectNotFoundError when no
	// order is waiting.
	GetFirstInCreatedStatus(ctx context.Context) (*order.Order, error)

	// GetAllInAssignedStatus retrieves every order currently in progress.
	GetAllInAssignedStatus(ctx context.Context) ([]*order.Order, error)
}
