package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// OutboxMessage is a durable record of a domain event awaiting publication.
// The message id equals the event id, which makes inserts idempotent.
type OutboxMessage struct {
	ID             kernel.UUID
	Type           string
	Content        []byte
	OccurredOnUTC  time.Time
	ProcessedOnUTC *time.Time
}

// OutboxRepository reads and settles outbox messages. Rows are written by the
// unit of work inside the business transaction; this interface serves the
// publishing side.
type OutboxRepository interface {
	// GetUnprocessed returns up to limit unprocessed messages, oldest first
	// by occurrence time.
	GetUnprocessed(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkProcessed stamps the given messages as published. Messages left
	// unstamped are picked up again on the next pass, so delivery is
	// at-least-once.
	MarkProcessed(ctx context.Context, ids []kernel.UUID, processedAt time.Time) error
}
