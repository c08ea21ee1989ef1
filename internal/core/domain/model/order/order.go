package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for a delivery order. It owns the destination
// location, the package volume, and the lifecycle state machine, and raises a
// CompletedDomainEvent when the delivery finishes.
//
// Invariants:
//   - volume is positive and immutable after creation
//   - status only moves forward: Created -> Assigned -> Completed
//   - courierID is set exactly when status is not Created
//
// The courier is referenced by identifier only; order and courier aggregates
// never hold pointers to each other.
type Order struct {
	id        kernel.UUID
	courierID *kernel.UUID
	location  kernel.Location
	volume    int
	status    Status

	// domainEvents buffers events raised by state changes until the unit of
	// work drains them into the outbox at commit time.
	domainEvents []kernel.DomainEvent

	isConstructed bool
}

// NewOrder creates an order in Created status with no courier.
// All parameters are validated; validation errors are joined.
func NewOrder(id kernel.UUID, location kernel.Location, volume int) (*Order, error) {
	o := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setLocation(location),
		o.setVolume(volume),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistent state.
// Beyond field validation it checks the status/courier consistency rule, so a
// corrupted row (e.g. Assigned with no courier) is rejected at the boundary.
func RestoreOrder(
	id kernel.UUID,
	location kernel.Location,
	volume int,
	status Status,
	courierID *kernel.UUID,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setLocation(location),
		o.setVolume(volume),
		o.setStatus(status),
		o.setCourierID(courierID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate reports whether the order was created via a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Location returns the delivery destination.
func (o *Order) Location() kernel.Location {
	return o.location
}

// Volume returns the package volume.
func (o *Order) Volume() int {
	return o.volume
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CourierID returns the assigned courier's identifier, or nil while the order
// is still in Created status.
func (o *Order) CourierID() *kernel.UUID {
	return o.courierID
}

// Assign attaches the order to a courier and moves it to Assigned.
// Fails if the courier id is invalid or the order is not in Created status;
// assigning an already-assigned order is an invariant violation.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

// Complete marks the order as delivered and raises CompletedDomainEvent.
// Fails unless the order is Assigned with a courier recorded.
func (o *Order) Complete() error {
	if o.courierID == nil {
		return errs.NewValueIsRequiredError("courierID")
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.raiseDomainEvent(NewCompletedDomainEvent(o.id, *o.courierID))
	return nil
}

// DomainEvents returns a copy of the pending event buffer.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	out := make([]kernel.DomainEvent, len(o.domainEvents))
	copy(out, o.domainEvents)
	return out
}

// ClearDomainEvents empties the pending event buffer. Called by the unit of
// work after the events are recorded in the outbox.
func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) raiseDomainEvent(event kernel.DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setVolume(volume int) error {
	if volume <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("volume",
			fmt.Errorf("%d is not greater than 0", volume))
	}
	o.volume = volume
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setCourierID is only used during restore; consistency with the status is
// checked here so both fields must already be set.
func (o *Order) setCourierID(courierID *kernel.UUID) error {
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}

	if err := o.status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return err
	}

	o.courierID = courierID
	return nil
}
