package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// RedisCache stores ranked lists as JSON with a TTL.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedis connects to addr and verifies the connection with PING.
func NewRedis(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisCache{Client: client, TTL: ttl}, nil
}

// GetJSON decodes the cached list into dest. A missing key reports false without error.
func (c *RedisCache) GetJSON(ctx context.Context, userID string, limit int, dest any) (bool, error) {
	val, err := c.Client.Get(ctx, Key(userID, limit)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("decode cached list: %w", err)
	}
	return true, nil
}

func (c *RedisCache) SetJSON(ctx context.Context, userID string, limit int, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, Key(userID, limit), payload, c.TTL).Err()
}

// Invalidate removes every cached list size for userID.
func (c *RedisCache) Invalidate(ctx context.Context, userID string) error {
	iter := c.Client.Scan(ctx, 0, userPattern(userID), scanBatch).Iterator()
	keys := make([]string, 0, 4)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}
