package outboxrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository with GORM.
// The write side (Add) runs inside the unit of work's transaction; the read
// side serves the publishing job on the plain connection.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates the repository bound to the given
// connection or transaction.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add inserts outbox rows. Conflicting ids are skipped: the event was
// already recorded and recording is idempotent.
func (r *GormOutboxRepository) Add(ctx context.Context, messages []MessageDTO) error {
	if len(messages) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&messages).Error
}

// GetUnprocessed returns up to limit unpublished rows, oldest first.
func (r *GormOutboxRepository) GetUnprocessed(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []MessageDTO
	if err := r.db.WithContext(ctx).
		Where("processed_on_utc IS NULL").
		Order("occurred_on_utc").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		message, err := toPort(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// MarkProcessed stamps the given rows as published.
func (r *GormOutboxRepository) MarkProcessed(ctx context.Context, ids []kernel.UUID, processedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ?", raw).
		Update("processed_on_utc", processedAt).Error
}
