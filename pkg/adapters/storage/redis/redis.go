package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/ports"
)

const keyPrefix = "voyago:plan:"

// ResultStore implements ports.ResultStore on Redis with JSON
// serialization and a per-key TTL.
type ResultStore struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewResultStore creates a Redis-backed result store.
func NewResultStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ResultStore {
	return &ResultStore{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// Save persists a plan result.
func (s *ResultStore) Save(ctx context.Context, result *domain.PlanResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal plan result: %w", err)
	}

	if err := s.client.Set(ctx, planKey(result.PlanID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save plan result: %w", err)
	}

	s.logger.Debug("plan result saved",
		zap.String("plan_id", result.PlanID),
		zap.Bool("success", result.Success))
	return nil
}

// Get retrieves a plan result by plan ID.
func (s *ResultStore) Get(ctx context.Context, planID string) (*domain.PlanResult, error) {
	data, err := s.client.Get(ctx, planKey(planID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ports.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get plan result: %w", err)
	}

	var result domain.PlanResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan result: %w", err)
	}
	return &result, nil
}

// Delete removes a plan result.
func (s *ResultStore) Delete(ctx context.Context, planID string) error {
	if err := s.client.Del(ctx, planKey(planID)).Err(); err != nil {
		return fmt.Errorf("failed to delete plan result: %w", err)
	}
	s.logger.Debug("plan result deleted", zap.String("plan_id", planID))
	return nil
}

// List returns all stored plan IDs.
func (s *ResultStore) List(ctx context.Context) ([]string, error) {
	pattern := keyPrefix + "*"

	var cursor uint64
	var keys []string
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	planIDs := make([]string, 0, len(keys))
	for _, key := range keys {
		if len(key) > len(keyPrefix) {
			planIDs = append(planIDs, key[len(keyPrefix):])
		}
	}
	return planIDs, nil
}

func planKey(planID string) string {
	return keyPrefix + planID
}

var _ ports.ResultStore = (*ResultStore)(nil)
