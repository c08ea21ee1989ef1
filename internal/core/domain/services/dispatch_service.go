package services

import (
	"math"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// OrderDispatcher is a domain service that selects the best courier for an
// order: among the couriers able to take it, the one with the smallest
// estimated time to the order's location wins.
//
// Dispatch only selects. It mutates neither the order nor the couriers;
// the caller decides what to do with the winner.
type OrderDispatcher struct{}

// NewOrderDispatcher creates an OrderDispatcher.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch returns the courier with the smallest time to the order's
// location among those that can take the order. Ties keep the earlier
// courier in the slice, so the result is deterministic for a given input
// order. When no candidate fits, Dispatch returns (nil, nil): couriers all
// being busy or too small is an expected outcome, not a failure.
//
// The order must be valid and still assignable, the candidate set must be
// non-empty, and each candidate courier must be valid. Violations surface
// as errors.
func (OrderDispatcher) Dispatch(o *order.Order, couriers []*courier.Courier) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if err := o.Status().ValidateAssign(); err != nil {
		return nil, err
	}

	if len(couriers) == 0 {
		return nil, errs.NewValueIsRequiredError("couriers")
	}

	var (
		bestCourier *courier.Courier
		bestTime    = math.MaxFloat64
	)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		canTake, err := c.CanTakeOrder(o)
		if err != nil {
			return nil, err
		}
		if !canTake {
			continue
		}

		eta, err := c.CalculateTimeToLocation(o.Location())
		if err != nil {
			return nil, err
		}

		// Strict less keeps the first courier on equal times.
		if eta < bestTime {
			bestTime = eta
			bestCourier = c
		}
	}

	return bestCourier, nil //nolint:nilnil // no candidate is not an error
}
