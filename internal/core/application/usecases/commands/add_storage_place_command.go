package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAddStoragePlaceCommandIsNotConstructed = errors.New(
		"AddStoragePlaceCommand must be created via NewAddStoragePlaceCommand constructor",
	)
	ErrStorageNameIsRequired = errors.New("storage place name is required")
	ErrVolumeIsInvalid       = errors.New("volume must be greater than 0")
)

// AddStoragePlaceCommand equips an existing courier with an extra storage
// place, e.g. a trunk next to the default bag.
type AddStoragePlaceCommand struct { //nolint:recvcheck // pointer receivers only for construction
	courierID   kernel.UUID
	name        string
	totalVolume int

	guard guard.ConstructorGuard
}

// NewAddStoragePlaceCommand creates the command.
// CourierID must be valid, name non-blank and totalVolume positive.
func NewAddStoragePlaceCommand(courierID kernel.UUID, name string, totalVolume int) (AddStoragePlaceCommand, error) {
	command := AddStoragePlaceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(courierID),
		command.setName(name),
		command.setTotalVolume(totalVolume),
	); err != nil {
		return AddStoragePlaceCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddStoragePlaceCommand) Validate() error {
	return c.guard.Validate(ErrAddStoragePlaceCommandIsNotConstructed)
}

// CourierID returns the identifier of the courier to equip.
func (c AddStoragePlaceCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the new storage place name.
func (c AddStoragePlaceCommand) Name() string {
	return c.name
}

// TotalVolume returns the new storage place capacity.
func (c AddStoragePlaceCommand) TotalVolume() int {
	return c.totalVolume
}

func (c *AddStoragePlaceCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *AddStoragePlaceCommand) setName(name string) error {
	if name == "" {
		return ErrStorageNameIsRequired
	}

	c.name = name
	return nil
}

func (c *AddStoragePlaceCommand) setTotalVolume(totalVolume int) error {
	if totalVolume <= 0 {
		return ErrVolumeIsInvalid
	}

	c.totalVolume = totalVolume
	return nil
}
