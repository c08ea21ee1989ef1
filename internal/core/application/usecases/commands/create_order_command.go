package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrStreetIsRequired = errors.New("street is required")
)

// CreateOrderCommand registers a new delivery order. The basket id doubles as
// the order id, which makes order creation idempotent per basket: retried
// deliveries of the same basket produce the same order.
type CreateOrderCommand struct { //nolint:recvcheck // pointer receivers only for construction
	basketID kernel.UUID
	street   string
	volume   int

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates the command.
// BasketID must be valid, street non-blank and volume positive.
func NewCreateOrderCommand(basketID kernel.UUID, street string, volume int) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setBasketID(basketID),
		command.setStreet(street),
		command.setVolume(volume),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// BasketID returns the basket identifier, used as the order identifier.
func (c CreateOrderCommand) BasketID() kernel.UUID {
	return c.basketID
}

// Street returns the delivery street to geocode.
func (c CreateOrderCommand) Street() string {
	return c.street
}

// Volume returns the order volume.
func (c CreateOrderCommand) Volume() int {
	return c.volume
}

func (c *CreateOrderCommand) setBasketID(basketID kernel.UUID) error {
	if err := basketID.Validate(); err != nil {
		return err
	}

	c.basketID = basketID
	return nil
}

func (c *CreateOrderCommand) setStreet(street string) error {
	if street == "" {
		return ErrStreetIsRequired
	}

	c.street = street
	return nil
}

func (c *CreateOrderCommand) setVolume(volume int) error {
	if volume <= 0 {
		return ErrVolumeIsInvalid
	}

	c.volume = volume
	return nil
}
