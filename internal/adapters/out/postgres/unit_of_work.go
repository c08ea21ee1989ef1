// Package postgres implements the persistence ports with GORM on Postgres.
//
// The unit of work is the write path's transaction boundary. Repositories
// obtained from it share one transaction and report every written aggregate
// back to it; on commit the unit of work serializes the aggregates' pending
// domain events into outbox rows inside that same transaction. State change
// and event record therefore become durable together or not at all.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates a fresh unit of work per business operation.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates the factory over the given connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces an isolated unit of work with its own transaction state
// and aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]kernel.Aggregate, 0),
	}
}

// GormUnitOfWork implements ports.UnitOfWork on a GORM transaction.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []kernel.Aggregate
}

// Begin starts the transaction. Calling Begin on an already started unit of
// work is a no-op; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit records the tracked aggregates' domain events in the outbox and
// commits the transaction. Event buffers are cleared only after the commit
// succeeds; a failed commit leaves the aggregates still carrying their
// events.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.recordDomainEvents(ctx); err != nil {
		_ = uow.tx.Rollback()
		uow.tx = nil
		return err
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, aggregate := range uow.trackedAggregates {
		aggregate.ClearDomainEvents()
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]

	return nil
}

// Rollback aborts the transaction.
// Returns gorm.ErrInvalidTransaction when none is active, which makes a
// deferred rollback after a successful commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// CourierRepository returns a courier repository bound to the current
// transaction, or to the plain connection when none is active.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the plain connection when none is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written during this unit of work.
// Called by the repositories on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(aggregate kernel.Aggregate) {
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// recordDomainEvents serializes the pending events of every tracked
// aggregate into outbox rows within the open transaction. The row id is the
// event id, so an aggregate tracked twice records its events once.
func (uow *GormUnitOfWork) recordDomainEvents(ctx context.Context) error {
	var rows []outboxrepo.MessageDTO

	for _, aggregate := range uow.trackedAggregates {
		for _, event := range aggregate.DomainEvents() {
			content, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("serialize %s: %w", event.EventType(), err)
			}

			rows = append(rows, outboxrepo.MessageDTO{
				ID:            event.EventID().Bytes(),
				Type:          event.EventType(),
				Content:       string(content),
				OccurredOnUTC: event.OccurredAtUTC(),
			})
		}
	}

	return outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, rows)
}
