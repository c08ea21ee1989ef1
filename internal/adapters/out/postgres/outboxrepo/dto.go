// Package outboxrepo persists the transactional outbox: domain events
// recorded durably in the same transaction as the aggregate change that
// raised them, then published asynchronously.
package outboxrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
)

// MessageDTO is the database shape of one outbox row. The row id equals the
// event id, so re-recording the same event is a no-op. Rows are stamped, not
// deleted, once published.
type MessageDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type           string     `gorm:"type:varchar(255);not null"`
	Content        string     `gorm:"type:text;not null"`
	OccurredOnUTC  time.Time  `gorm:"not null;index"`
	ProcessedOnUTC *time.Time `gorm:"index"`
}

// TableName maps the DTO to the "outbox_messages" table.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func toPort(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:             id,
		Type:           dto.Type,
		Content:        []byte(dto.Content),
		OccurredOnUTC:  dto.OccurredOnUTC,
		ProcessedOnUTC: dto.ProcessedOnUTC,
	}, nil
}
