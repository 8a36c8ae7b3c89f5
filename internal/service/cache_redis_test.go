package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/sales-routes/api/internal/entity"
)

type redisStub struct {
	values  map[string]string
	lastTTL time.Duration
	getErr  error
	setErr  error
}

func (r *redisStub) Get(ctx context.Context, key string) *redis.StringCmd {
	if r.getErr != nil {
		return redis.NewStringResult("", r.getErr)
	}
	value, ok := r.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (r *redisStub) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if r.setErr != nil {
		return redis.NewStatusResult("", r.setErr)
	}
	r.lastTTL = expiration
	r.values[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func TestRedisRecordCache_RoundTrip(t *testing.T) {
	stub := &redisStub{values: map[string]string{}}
	cache := NewRedisRecordCache(stub, time.Hour)

	_, err := cache.Get(context.Background(), "11222333000181")
	require.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(context.Background(), sampleRecord(entity.SourceCNPJA)))
	assert.Equal(t, time.Hour, stub.lastTTL)
	assert.Contains(t, stub.values, "registry:cnpj:11222333000181")

	record, err := cache.Get(context.Background(), "11222333000181")
	require.NoError(t, err)
	assert.Equal(t, "PADARIA CENTRAL LTDA", record.LegalName)
	assert.Equal(t, entity.SourceCNPJA, record.Source)
}

func TestRedisRecordCache_Errors(t *testing.T) {
	stub := &redisStub{values: map[string]string{"registry:cnpj:1": "{not json"}}
	cache := NewRedisRecordCache(stub, 0)
	assert.Equal(t, 24*time.Hour, cache.ttl)

	_, err := cache.Get(context.Background(), "1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)

	stub.getErr = errors.New("connection reset")
	_, err = cache.Get(context.Background(), "1")
	assert.ErrorContains(t, err, "read registry cache")

	stub.setErr = errors.New("read only replica")
	assert.ErrorContains(t, cache.Set(context.Background(), sampleRecord(entity.SourceCNPJA)), "write registry cache")
	assert.Error(t, cache.Set(context.Background(), nil))
}
