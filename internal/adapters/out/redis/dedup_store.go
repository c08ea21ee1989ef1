// Package redis holds the idempotent-consumer deduplication store. Incoming
// broker messages are at-least-once, so the consumer marks each basket id
// before acting on it and skips ids it has already seen.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	basketKeyPrefix = "dispatch:basket:"

	// Older entries may be reprocessed; order creation itself is idempotent
	// per basket, the dedup window only suppresses the common duplicates.
	dedupTTL = 24 * time.Hour
)

var ErrRedisClientIsRequired = errors.New("redis client is required")

// DedupStore records processed basket ids with a bounded TTL.
type DedupStore struct {
	client *goredis.Client
}

// NewDedupStore creates a store over an already-configured redis client.
func NewDedupStore(client *goredis.Client) (*DedupStore, error) {
	if client == nil {
		return nil, ErrRedisClientIsRequired
	}
	return &DedupStore{client: client}, nil
}

// MarkIfNew atomically records the basket id and reports whether it was seen
// for the first time. Returns false for duplicates within the dedup window.
func (s *DedupStore) MarkIfNew(ctx context.Context, basketID string) (bool, error) {
	firstSeen, err := s.client.SetNX(ctx, basketKeyPrefix+basketID, 1, dedupTTL).Result()
	if err != nil {
		return false, fmt.Errorf("mark basket %s: %w", basketID, err)
	}

	return firstSeen, nil
}

// Unmark forgets the basket id so a broker redelivery is processed again.
// Called when acting on the basket failed after it was marked; a mark must
// only survive if an order actually came out of it.
func (s *DedupStore) Unmark(ctx context.Context, basketID string) error {
	if err := s.client.Del(ctx, basketKeyPrefix+basketID).Err(); err != nil {
		return fmt.Errorf("unmark basket %s: %w", basketID, err)
	}

	return nil
}
