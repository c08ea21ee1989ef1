package commands

import (
	"context"
)

// AddStoragePlaceCommandHandler loads a courier, adds the storage place and
// persists the change.
type AddStoragePlaceCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewAddStoragePlaceCommandHandler creates the handler.
func NewAddStoragePlaceCommandHandler(uowFactory CourierUoWFactory) AddStoragePlaceCommandHandler {
	return AddStoragePlaceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle equips the courier with the new storage place in one transaction.
// Returns errs.ObjectNotFoundError when the courier does not exist.
func (h *AddStoragePlaceCommandHandler) Handle(ctx context.Context, cmd AddStoragePlaceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.AddStoragePlace(cmd.Name(), cmd.TotalVolume()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
