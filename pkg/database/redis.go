package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisRepository 定義介面
type RedisRepository[T any] interface {
	Set(ctx context.Context, key string, value T, ttl time.Duration) error
	Get(ctx context.Context, key string) (T, error)
	Del(ctx context.Context, key string) error
}

type redisRepository[T any] struct {
	client *redis.Client
}

// NewRedisRepository init Redis repository (Set, Get, Del)
func NewRedisRepository[T any](masterName string, sentinelAddrs []string, db int) (RedisRepository[T], error) {
	rdb := redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:    masterName,    // 哨兵主節點名稱
		SentinelAddrs: sentinelAddrs, // 哨兵地址列表
		Password:      "",
		DB:            db,
	})

	// 測試連線
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis sentinel: %w", err)
	}

	return &redisRepository[T]{client: rdb}, nil
}

func (r *redisRepository[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisRepository[T]) Get(ctx context.Context, key string) (T, error) {
	var zeroValue T
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return zeroValue, fmt.Errorf("redis.Nil")
	} else if err != nil {
		return zeroValue, fmt.Errorf("failed to get session: %w", err)
	}

	var result T
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return zeroValue, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return result, nil
}

func (r *redisRepository[T]) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
