package courier

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrCannotStoreOrderInThisStoragePlace indicates the place is occupied or
	// the order volume exceeds its capacity.
	ErrCannotStoreOrderInThisStoragePlace = errors.New("cannot store order in this storage place")

	// ErrStoragePlaceIsNotConstructed is returned for zero-value storage places.
	ErrStoragePlaceIsNotConstructed = errors.New("StoragePlace must be created via NewStoragePlace constructor")
)

// StoragePlace is a named capacity slot on a courier that holds at most one
// order at a time. Capacity is fixed at creation; occupancy flips on Store
// and Clear.
type StoragePlace struct {
	id          kernel.UUID
	name        string
	totalVolume int

	// orderID references the occupying order, nil when the slot is empty.
	orderID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewStoragePlace creates an empty storage place.
// Name must be non-blank and totalVolume positive; errors are joined.
func NewStoragePlace(id kernel.UUID, name string, totalVolume int) (*StoragePlace, error) {
	place := &StoragePlace{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		place.setID(id),
		place.setName(name),
		place.setTotalVolume(totalVolume),
	); err != nil {
		return nil, err
	}

	return place, nil
}

// RestoreStoragePlace reconstructs a storage place from persistent state,
// including its occupancy.
func RestoreStoragePlace(id kernel.UUID, name string, totalVolume int, orderID *kernel.UUID) (*StoragePlace, error) {
	place, err := NewStoragePlace(id, name, totalVolume)
	if err != nil {
		return nil, err
	}

	if orderID != nil {
		if err = orderID.Validate(); err != nil {
			return nil, err
		}
		stored := *orderID
		place.orderID = &stored
	}

	return place, nil
}

// Validate reports whether the place was created via a constructor.
func (p *StoragePlace) Validate() error {
	if p == nil {
		return ErrStoragePlaceIsNotConstructed
	}
	return p.guard.Validate(ErrStoragePlaceIsNotConstructed)
}

// ID returns the storage place identifier.
func (p *StoragePlace) ID() kernel.UUID {
	return p.id
}

// Name returns the human-readable slot name.
func (p *StoragePlace) Name() string {
	return p.name
}

// TotalVolume returns the fixed capacity of the slot.
func (p *StoragePlace) TotalVolume() int {
	return p.totalVolume
}

// OrderID returns the occupying order's identifier, or nil when empty.
func (p *StoragePlace) OrderID() *kernel.UUID {
	return p.orderID
}

// IsOccupied reports whether the slot currently holds an order.
func (p *StoragePlace) IsOccupied() bool {
	return p.orderID != nil
}

// CanStore reports whether an order of the given volume fits: the slot must
// be empty and the volume within capacity. A non-positive volume is a
// validation error, not a "does not fit" answer.
func (p *StoragePlace) CanStore(volume int) (bool, error) {
	if volume <= 0 {
		return false, errs.NewValueIsRequiredError("volume")
	}

	return !p.IsOccupied() && volume <= p.totalVolume, nil
}

// Store occupies the slot with the given order.
// Fails with ErrCannotStoreOrderInThisStoragePlace when CanStore is false.
func (p *StoragePlace) Store(orderID kernel.UUID, volume int) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	canStore, err := p.CanStore(volume)
	if err != nil {
		return err
	}
	if !canStore {
		return ErrCannotStoreOrderInThisStoragePlace
	}

	p.orderID = &orderID
	return nil
}

// Clear unconditionally frees the slot. Idempotent: clearing an empty slot is
// a no-op.
func (p *StoragePlace) Clear() {
	p.orderID = nil
}

func (p *StoragePlace) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *StoragePlace) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *StoragePlace) setTotalVolume(totalVolume int) error {
	if totalVolume <= 0 {
		return errs.NewValueIsRequiredError("totalVolume")
	}
	p.totalVolume = totalVolume
	return nil
}
