package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrAssignOrdersCommandIsNotConstructed = errors.New(
	"AssignOrdersCommand must be created via NewAssignOrdersCommand constructor",
)

// AssignOrdersCommand triggers one assignment pass: match the oldest waiting
// order with the best available courier. Parameterless; the scheduler issues
// it every tick.
type AssignOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignOrdersCommand creates the command.
func NewAssignOrdersCommand() AssignOrdersCommand {
	return AssignOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AssignOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrdersCommandIsNotConstructed)
}
