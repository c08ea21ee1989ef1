package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// Expected no-op outcomes of an assignment pass. The world simply has no work
// to do; callers treat these as quiet results, not failures.
var (
	ErrNoOrderToAssign     = errors.New("no order waiting for assignment")
	ErrNoAvailableCouriers = errors.New("no available couriers")
	ErrNoSuitableCourier   = errors.New("no courier can take the order")
)

// AssignOrdersCommandHandler runs one assignment pass: the oldest waiting
// order, the available couriers, and the dispatcher to pick the winner. Both
// aggregates are updated in a single transaction.
type AssignOrdersCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
}

// NewAssignOrdersCommandHandler creates the handler.
func NewAssignOrdersCommandHandler(uowFactory UoWFactory) AssignOrdersCommandHandler {
	return AssignOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewOrderDispatcher(),
	}
}

// Handle assigns the oldest waiting order to the best available courier.
// Returns ErrNoOrderToAssign, ErrNoAvailableCouriers or ErrNoSuitableCourier
// when there is nothing to do; any other error is a real failure.
func (h *AssignOrdersCommandHandler) Handle(ctx context.Context, cmd AssignOrdersCommand) error {
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

	waitingOrder, err := orderRepo.GetFirstInCreatedStatus(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOrderToAssign
	}
	if err != nil {
		return err
	}

	couriers, err := courierRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}
	if len(couriers) == 0 {
		return ErrNoAvailableCouriers
	}

	winner, err := h.dispatcher.Dispatch(waitingOrder, couriers)
	if err != nil {
		return err
	}
	if winner == nil {
		return ErrNoSuitableCourier
	}

	if err = winner.TakeOrder(waitingOrder); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, waitingOrder); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, winner); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
