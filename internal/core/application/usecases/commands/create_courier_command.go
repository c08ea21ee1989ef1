package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrNameIsRequired = errors.New("name is required")
	ErrSpeedIsInvalid = errors.New("speed must be greater than 0")
)

// CreateCourierCommand registers a new courier with a name, a speed and a
// starting location. The courier id is generated by the command.
type CreateCourierCommand struct { //nolint:recvcheck // pointer receivers only for construction
	courierID kernel.UUID
	name      string
	speed     int
	location  kernel.Location

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates the command.
// Name must be non-blank, speed positive and location valid.
func NewCreateCourierCommand(name string, speed int, location kernel.Location) (CreateCourierCommand, error) {
	command := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(kernel.NewUUID()),
		command.setName(name),
		command.setSpeed(speed),
		command.setLocation(location),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the generated identifier of the courier to create.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier name.
func (c CreateCourierCommand) Name() string {
	return c.name
}

// Speed returns the courier speed.
func (c CreateCourierCommand) Speed() int {
	return c.speed
}

// Location returns the courier's starting location.
func (c CreateCourierCommand) Location() kernel.Location {
	return c.location
}

func (c *CreateCourierCommand) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.courierID = id
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setSpeed(speed int) error {
	if speed <= 0 {
		return ErrSpeedIsInvalid
	}

	c.speed = speed
	return nil
}

func (c *CreateCourierCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
