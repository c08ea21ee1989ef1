package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// CourierMovementJob advances every busy courier one movement tick per second
// and completes deliveries on arrival.
type CourierMovementJob struct {
	handler commands.MoveCouriersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCourierMovementJob creates a job driving MoveCouriersCommandHandler.
func NewCourierMovementJob(handler commands.MoveCouriersCommandHandler, logger *slog.Logger) *CourierMovementJob {
	return &CourierMovementJob{
		handler: handler,
		cron:    newSecondlyCron(),
		logger:  logger.With("component", "courier_movement_job"),
	}
}

// Start begins moving couriers every second.
func (j *CourierMovementJob) Start() error {
	_, err := j.cron.AddFunc(everySecond, func() {
		ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
		defer cancel()

		cmd := commands.NewMoveCouriersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "courier movement failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("courier movement job started")
	return nil
}

// Stop stops the job.
func (j *CourierMovementJob) Stop() {
	j.cron.Stop()
	j.logger.Info("courier movement job stopped")
}
