package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OutboxProcessingJob relays committed domain events from the outbox table to
// the message broker. Runs every second; failed messages stay unprocessed and
// are retried on later ticks.
type OutboxProcessingJob struct {
	handler commands.ProcessOutboxMessagesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOutboxProcessingJob creates a job driving ProcessOutboxMessagesCommandHandler.
func NewOutboxProcessingJob(
	handler commands.ProcessOutboxMessagesCommandHandler,
	logger *slog.Logger,
) *OutboxProcessingJob {
	return &OutboxProcessingJob{
		handler: handler,
		cron:    newSecondlyCron(),
		logger:  logger.With("component", "outbox_processing_job"),
	}
}

// Start begins relaying outbox messages every second.
func (j *OutboxProcessingJob) Start() error {
	_, err := j.cron.AddFunc(everySecond, func() {
		ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
		defer cancel()

		cmd := commands.NewProcessOutboxMessagesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "outbox processing failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("outbox processing job started")
	return nil
}

// Stop stops the job.
func (j *OutboxProcessingJob) Stop() {
	j.cron.Stop()
	j.logger.Info("outbox processing job stopped")
}
