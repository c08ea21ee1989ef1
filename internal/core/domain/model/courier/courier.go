package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// defaultBagName is the name of the storage place every courier starts with.
	defaultBagName = "bag"
	// defaultBagVolume is the capacity of the default bag.
	defaultBagVolume = 10
)

var (
	// ErrCourierIsNotConstructed is returned for zero-value or nil couriers.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")

	// ErrNoStoragePlaceCanTakeOrder indicates no storage place is free with
	// enough capacity for the order.
	ErrNoStoragePlaceCanTakeOrder = errors.New("no storage place can take the order")

	// ErrOrderNotStoredByCourier indicates the courier does not currently
	// carry the given order; completing it would hide an inconsistent state.
	ErrOrderNotStoredByCourier = errors.New("order is not stored by this courier")
)

// Courier is the aggregate root for a delivery courier: identity, grid
// position, movement speed, and an ordered list of storage places.
//
// Storage selection is first-fit in declaration order: a larger place added
// later is only used when earlier places cannot take the order. This keeps
// assignment deterministic; do not replace it with best-fit.
type Courier struct {
	id            kernel.UUID
	name          string
	speed         int
	location      kernel.Location
	storagePlaces []*StoragePlace

	domainEvents []kernel.DomainEvent

	guard guard.ConstructorGuard
}

// NewCourier creates a courier at the given location with one default bag
// (volume 10). Name must be non-blank and speed positive; errors are joined.
func NewCourier(id kernel.UUID, name string, speed int, location kernel.Location) (*Courier, error) {
	c := &Courier{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setSpeed(speed),
		c.setLocation(location),
		c.AddStoragePlace(defaultBagName, defaultBagVolume),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a courier from persistent state together with
// its storage places and their occupancy. At least one storage place is
// required.
func RestoreCourier(
	id kernel.UUID,
	name string,
	speed int,
	location kernel.Location,
	storagePlaces []*StoragePlace,
) (*Courier, error) {
	c := &Courier{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setSpeed(speed),
		c.setLocation(location),
		c.setStoragePlaces(storagePlaces),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate reports whether the courier was created via a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's name.
func (c *Courier) Name() string {
	return c.name
}

// Speed returns how many grid units the courier covers per movement tick.
func (c *Courier) Speed() int {
	return c.speed
}

// Location returns the courier's current grid position.
func (c *Courier) Location() kernel.Location {
	return c.location
}

// StoragePlaces returns the courier's storage places in declaration order.
// The slice is a copy; the places themselves are the aggregate's own.
func (c *Courier) StoragePlaces() []*StoragePlace {
	out := make([]*StoragePlace, len(c.storagePlaces))
	copy(out, c.storagePlaces)
	return out
}

// IsAvailable reports whether every storage place is empty, i.e. the courier
// carries nothing and can be offered new orders.
func (c *Courier) IsAvailable() bool {
	for _, place := range c.storagePlaces {
		if place.IsOccupied() {
			return false
		}
	}
	return true
}

// AddStoragePlace appends a new storage place with the given name and
// capacity. Validation is inherited from NewStoragePlace.
func (c *Courier) AddStoragePlace(name string, totalVolume int) error {
	place, err := NewStoragePlace(kernel.NewUUID(), name, totalVolume)
	if err != nil {
		return err
	}

	c.storagePlaces = append(c.storagePlaces, place)
	return nil
}

// CanTakeOrder reports whether the courier could take the order right now:
// the order must still be in Created status and some storage place must fit
// its volume.
func (c *Courier) CanTakeOrder(o *order.Order) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	if o.Status() != order.Created {
		return false, nil
	}

	place, err := c.findStorageForVolume(o.Volume())
	if err != nil {
		return false, err
	}

	return place != nil, nil
}

// TakeOrder stores the order in the first storage place that fits it and
// assigns the order to this courier. Both aggregates change together: the
// slot becomes occupied and the order moves to Assigned.
// Fails with ErrNoStoragePlaceCanTakeOrder when nothing fits, and with the
// order's own invariant error when it is not in Created status.
func (c *Courier) TakeOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if err := o.Status().ValidateAssign(); err != nil {
		return err
	}

	place, err := c.findStorageForVolume(o.Volume())
	if err != nil {
		return err
	}
	if place == nil {
		return ErrNoStoragePlaceCanTakeOrder
	}

	if err = place.Store(o.ID(), o.Volume()); err != nil {
		return err
	}

	if err = o.Assign(c.id); err != nil {
		// Undo the occupancy so a failed assignment leaves the courier as it was.
		place.Clear()
		return err
	}

	return nil
}

// CompleteOrder frees the storage place holding the order and completes the
// order. Fails with ErrOrderNotStoredByCourier when no place holds it (an
// Assigned order the courier does not carry means inconsistent data) and with
// the order's invariant error when it is not Assigned.
func (c *Courier) CompleteOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	place := c.findStoragePlaceByOrderID(o.ID())
	if place == nil {
		return ErrOrderNotStoredByCourier
	}

	if err := o.Complete(); err != nil {
		return err
	}

	place.Clear()
	return nil
}

// CalculateTimeToLocation estimates how many ticks the courier needs to
// reach target: Manhattan distance divided by speed, as a fraction.
func (c *Courier) CalculateTimeToLocation(target kernel.Location) (float64, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	distance, err := c.location.Distance(target)
	if err != nil {
		return 0, err
	}

	return float64(distance) / float64(c.speed), nil
}

// Move advances the courier one tick toward target: up to Speed grid units,
// spent on the X axis first and the remainder on Y, clamped so the courier
// never overshoots. Reaching the target exactly may take several ticks.
func (c *Courier) Move(target kernel.Location) error {
	if err := target.Validate(); err != nil {
		return err
	}

	distance, err := c.location.Distance(target)
	if err != nil {
		return err
	}
	if distance == 0 {
		return nil
	}

	steps := min(c.speed, distance)
	curX, curY := c.location.X(), c.location.Y()
	tgtX, tgtY := target.X(), target.Y()

	stepsX := min(steps, int(absCoordinate(tgtX-curX)))
	switch {
	case curX < tgtX:
		curX += kernel.Coordinate(stepsX) //nolint:gosec // bounded by grid size
	case curX > tgtX:
		curX -= kernel.Coordinate(stepsX) //nolint:gosec // bounded by grid size
	}
	steps -= stepsX

	stepsY := min(steps, int(absCoordinate(tgtY-curY)))
	switch {
	case curY < tgtY:
		curY += kernel.Coordinate(stepsY) //nolint:gosec // bounded by grid size
	case curY > tgtY:
		curY -= kernel.Coordinate(stepsY) //nolint:gosec // bounded by grid size
	}

	newLocation, err := kernel.NewLocation(curX, curY)
	if err != nil {
		return err
	}
	return c.setLocation(newLocation)
}

// DomainEvents returns a copy of the pending event buffer.
func (c *Courier) DomainEvents() []kernel.DomainEvent {
	out := make([]kernel.DomainEvent, len(c.domainEvents))
	copy(out, c.domainEvents)
	return out
}

// ClearDomainEvents empties the pending event buffer.
func (c *Courier) ClearDomainEvents() {
	c.domainEvents = nil
}

// findStorageForVolume returns the first storage place able to take the given
// volume, or nil when none can. First-fit in declaration order.
func (c *Courier) findStorageForVolume(volume int) (*StoragePlace, error) {
	for _, place := range c.storagePlaces {
		canStore, err := place.CanStore(volume)
		if err != nil {
			return nil, err
		}

		if canStore {
			return place, nil
		}
	}

	return nil, nil //nolint:nilnil // nothing found and no error
}

func (c *Courier) findStoragePlaceByOrderID(orderID kernel.UUID) *StoragePlace {
	for _, place := range c.storagePlaces {
		if place.OrderID() != nil && place.OrderID().IsEqual(orderID) {
			return place
		}
	}

	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) setSpeed(speed int) error {
	if speed <= 0 {
		return errs.NewValueIsRequiredError("speed")
	}
	c.speed = speed
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *Courier) setStoragePlaces(storagePlaces []*StoragePlace) error {
	if len(storagePlaces) == 0 {
		return errs.NewValueIsRequiredError("storagePlaces")
	}

	for _, place := range storagePlaces {
		if err := place.Validate(); err != nil {
			return err
		}
	}

	c.storagePlaces = make([]*StoragePlace, len(storagePlaces))
	copy(c.storagePlaces, storagePlaces)
	return nil
}

func absCoordinate(c kernel.Coordinate) kernel.Coordinate {
	if c < 0 {
		return -c
	}
	return c
}
