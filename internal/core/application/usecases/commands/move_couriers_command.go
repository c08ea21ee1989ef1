package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrMoveCouriersCommandIsNotConstructed = errors.New(
	"MoveCouriersCommand must be created via NewMoveCouriersCommand constructor",
)

// MoveCouriersCommand triggers one movement tick: every courier with an
// assigned order advances toward its destination, completing deliveries on
// arrival. Parameterless; the scheduler issues it every tick.
type MoveCouriersCommand struct {
	guard guard.ConstructorGuard
}

// NewMoveCouriersCommand creates the command.
func NewMoveCouriersCommand() MoveCouriersCommand {
	return MoveCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *MoveCouriersCommand) Validate() error {
	return c.guard.Validate(ErrMoveCouriersCommandIsNotConstructed)
}
