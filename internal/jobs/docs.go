// Package jobs provides the scheduled background tasks that drive the
// delivery workflow.
//
// Three jobs run on a one-second cron schedule (github.com/robfig/cron/v3):
//
//  1. OrderAssignmentJob - dispatches the oldest pending order to the best
//     available courier.
//  2. CourierMovementJob - advances busy couriers toward their orders and
//     completes deliveries on arrival.
//  3. OutboxProcessingJob - relays committed domain events from the outbox
//     table to the message broker.
//
// Each tick is bounded by a timeout and skipped while the previous tick is
// still running. The assignment job treats "nothing to assign" outcomes as
// the normal quiet state and logs them at debug level only.
//
// Jobs are managed through JobManager, which starts and stops them as a unit.
package jobs
