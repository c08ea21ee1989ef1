package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command, isolating
// concurrent operations from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from
// it share one database transaction; Commit also drains the domain events of
// every aggregate written during the transaction into the outbox, so the
// events become durable atomically with the state change.
type UnitOfWork interface {
	// Begin starts the transaction.
	Begin(ctx context.Context) error

	// Commit writes pending outbox rows and commits the transaction.
	Commit(ctx context.Context) error

	// Rollback aborts the transaction. Safe to defer after a commit.
	Rollback(ctx context.Context) error

	// CourierRepository returns a repository bound to the transaction.
	CourierRepository() CourierRepository

	// OrderRepository returns a repository bound to the transaction.
	OrderRepository() OrderRepository
}
