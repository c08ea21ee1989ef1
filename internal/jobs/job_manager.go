package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	everySecond = "* * * * * *"

	// tickTimeout bounds a single job run so a stuck database call cannot
	// hold a tick open indefinitely.
	tickTimeout = 30 * time.Second
)

// newSecondlyCron builds a scheduler with second resolution that skips a tick
// while the previous one is still running.
func newSecondlyCron() *cron.Cron {
	return cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderAssignmentJob  *OrderAssignmentJob
	courierMovementJob  *CourierMovementJob
	outboxProcessingJob *OutboxProcessingJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	assignOrdersHandler commands.AssignOrdersCommandHandler,
	moveCouriersHandler commands.MoveCouriersCommandHandler,
	processOutboxHandler commands.ProcessOutboxMessagesCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderAssignmentJob:  NewOrderAssignmentJob(assignOrdersHandler, logger),
		courierMovementJob:  NewCourierMovementJob(moveCouriersHandler, logger),
		outboxProcessingJob: NewOutboxProcessingJob(processOutboxHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; already started jobs are
// stopped again in that case.
func (jm *JobManager) StartAll() error {
	if err := jm.orderAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start order assignment job: %w", err)
	}

	if err := jm.courierMovementJob.Start(); err != nil {
		jm.orderAssignmentJob.Stop()
		return fmt.Errorf("failed to start courier movement job: %w", err)
	}

	if err := jm.outboxProcessingJob.Start(); err != nil {
		jm.courierMovementJob.Stop()
		jm.orderAssignmentJob.Stop()
		return fmt.Errorf("failed to start outbox processing job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxProcessingJob.Stop()
	jm.courierMovementJob.Stop()
	jm.orderAssignmentJob.Stop()
}
