package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/octobees/sales-routes/api/internal/entity"
)

const registryKeyPrefix = "registry:cnpj:"

// ErrCacheMiss is returned by RecordCache.Get when nothing is cached for the CNPJ.
var ErrCacheMiss = errors.New("registry record not cached")

// RecordCache stores resolved registry records keyed by CNPJ.
type RecordCache interface {
	Get(ctx context.Context, cnpj string) (*entity.RegistryRecord, error)
	Set(ctx context.Context, record *entity.RegistryRecord) error
}

// redisCommands is the subset of redis.Cmdable used by RedisRecordCache.
type redisCommands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisRecordCache persists registry records in Redis with TTL-based eviction.
type RedisRecordCache struct {
	client redisCommands
	ttl    time.Duration
}

// NewRedisRecordCache wraps a Redis client; ttl <= 0 defaults to 24h.
func NewRedisRecordCache(client redisCommands, ttl time.Duration) *RedisRecordCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisRecordCache{client: client, ttl: ttl}
}

// Get loads a cached record, returning ErrCacheMiss when absent.
func (c *RedisRecordCache) Get(ctx context.Context, cnpj string) (*entity.RegistryRecord, error) {
	data, err := c.client.Get(ctx, registryKeyPrefix+cnpj).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("read registry cache: %w", err)
	}

	var record entity.RegistryRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode registry cache: %w", err)
	}
	return &record, nil
}

// Set writes record under its CNPJ, overwriting any previous entry.
func (c *RedisRecordCache) Set(ctx context.Context, record *entity.RegistryRecord) error {
	if record == nil {
		return fmt.Errorf("registry record is required")
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode registry cache: %w", err)
	}
	if err := c.client.Set(ctx, registryKeyPrefix+record.CNPJ, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("write registry cache: %w", err)
	}
	return nil
}
