package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// CreateOrderCommandHandler resolves the delivery street into a location and
// persists the new order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	geoClient  ports.GeoClient
}

// NewCreateOrderCommandHandler creates the handler.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, geoClient ports.GeoClient) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		geoClient:  geoClient,
	}
}

// Handle geocodes the street and stores the order in one transaction.
// Geocoding happens before the transaction opens so a slow geo service does
// not hold a database transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, err := h.geoClient.Resolve(ctx, cmd.Street())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	// The basket id is the order id, so a retried basket is a no-op.
	if _, err = repo.Get(ctx, cmd.BasketID()); err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	aggregate, err := order.NewOrder(cmd.BasketID(), location, cmd.Volume())
	if err != nil {
		return err
	}

	if err = repo.Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
