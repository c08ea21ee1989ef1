// Package order contains the Order aggregate: destination, volume, the
// Created -> Assigned -> Completed state machine, and the CompletedDomainEvent
// raised on delivery.
//
// Couriers are referenced by identifier only. Completion is the only state
// change visible outside the process; it is delivered through the
// transactional outbox, never published directly from the aggregate.
package order
