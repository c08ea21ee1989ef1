package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderAssignmentJob dispatches pending orders to couriers.
// Runs every second; ticks overlap-protected, so a slow dispatch never
// stacks up behind itself.
type OrderAssignmentJob struct {
	handler commands.AssignOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderAssignmentJob creates a job driving AssignOrdersCommandHandler.
func NewOrderAssignmentJob(handler commands.AssignOrdersCommandHandler, logger *slog.Logger) *OrderAssignmentJob {
	return &OrderAssignmentJob{
		handler: handler,
		cron:    newSecondlyCron(),
		logger:  logger.With("component", "order_assignment_job"),
	}
}

// Start begins assigning orders every second.
func (j *OrderAssignmentJob) Start() error {
	_, err := j.cron.AddFunc(everySecond, func() {
		ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
		defer cancel()

		cmd := commands.NewAssignOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty backlog or an idle fleet is the normal quiet state,
			// not a failure.
			if errors.Is(err, commands.ErrNoOrderToAssign) ||
				errors.Is(err, commands.ErrNoAvailableCouriers) ||
				errors.Is(err, commands.ErrNoSuitableCourier) {
				j.logger.DebugContext(ctx, "nothing to assign", "reason", err)
				return
			}
			j.logger.ErrorContext(ctx, "order assignment failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("order assignment job started")
	return nil
}

// Stop stops the job.
func (j *OrderAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.Info("order assignment job stopped")
}
