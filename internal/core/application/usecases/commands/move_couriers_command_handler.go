package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

// MoveCouriersCommandHandler advances every courier with an assigned order
// one tick toward its destination and completes deliveries on arrival. All
// updates happen in a single transaction.
type MoveCouriersCommandHandler struct {
	uowFactory UoWFactory
}

// NewMoveCouriersCommandHandler creates the handler.
func NewMoveCouriersCommandHandler(uowFactory UoWFactory) MoveCouriersCommandHandler {
	return MoveCouriersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes one movement tick over all assigned orders.
// An assigned order without a courier id means the stored data broke an
// invariant; the tick fails loudly instead of papering over it.
func (h *MoveCouriersCommandHandler) Handle(ctx context.Context, cmd MoveCouriersCommand) error {
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
	orderRepo := uow.OrderRepository()

	assigned, err := orderRepo.GetAllInAssignedStatus(ctx)
	if err != nil {
		return err
	}

	for _, assignedOrder := range assigned {
		courierID := assignedOrder.CourierID()
		if courierID == nil {
			return fmt.Errorf("assigned order %s has no courier", assignedOrder.ID())
		}

		assignee, err := courierRepo.Get(ctx, *courierID)
		if err != nil {
			return err
		}

		if err = h.moveCourier(assignee, assignedOrder); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, assignedOrder); err != nil {
			return err
		}

		if err = courierRepo.Update(ctx, assignee); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// moveCourier advances one courier and completes the delivery if the courier
// has reached the order's destination.
func (h *MoveCouriersCommandHandler) moveCourier(assignee *courier.Courier, assignedOrder *order.Order) error {
	if err := assignee.Move(assignedOrder.Location()); err != nil {
		return err
	}

	arrived, err := assignee.Location().IsEqual(assignedOrder.Location())
	if err != nil {
		return err
	}
	if !arrived {
		return nil
	}

	return assignee.CompleteOrder(assignedOrder)
}
