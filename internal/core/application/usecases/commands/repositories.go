// Package commands contains the write-side operations of the service.
// Every command follows the same shape: a validated command value object and
// a handler that runs it inside a unit of work.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of work seams for command handlers. Handlers declare the narrowest
// interface they need, so tests can mock exactly that.
type (
	// TxManager is the transaction lifecycle shared by every unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory yields an order repository bound to the transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory yields a courier repository bound to the transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderUoW is the transaction boundary for order-only commands.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates order units of work, one per command.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW is the transaction boundary for courier-only commands.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates courier units of work, one per command.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW is the transaction boundary for commands that change both
	// aggregates together.
	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
	}

	// UoWFactory creates cross-aggregate units of work, one per command.
	UoWFactory interface {
		Create() UoW
	}
)
