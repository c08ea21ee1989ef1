package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrProcessOutboxMessagesCommandIsNotConstructed = errors.New(
	"ProcessOutboxMessagesCommand must be created via NewProcessOutboxMessagesCommand constructor",
)

// ProcessOutboxMessagesCommand triggers one outbox publishing pass.
// Parameterless; the scheduler issues it every tick.
type ProcessOutboxMessagesCommand struct {
	guard guard.ConstructorGuard
}

// NewProcessOutboxMessagesCommand creates the command.
func NewProcessOutboxMessagesCommand() ProcessOutboxMessagesCommand {
	return ProcessOutboxMessagesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ProcessOutboxMessagesCommand) Validate() error {
	return c.guard.Validate(ErrProcessOutboxMessagesCommandIsNotConstructed)
}
