package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultCartKey is the fixed namespace under which the cart is stored.
const DefaultCartKey = "marketplace:cart"

// RedisAdapter persists the cart payload at a single fixed key, standing in
// for the browser's durable client storage.
type RedisAdapter struct {
	client *redis.Client
	key    string
}

func NewRedisAdapter(client *redis.Client, key string) *RedisAdapter {
	if key == "" {
		key = DefaultCartKey
	}
	return &RedisAdapter{client: client, key: key}
}

func (r *RedisAdapter) Load(ctx context.Context) ([]byte, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (r *RedisAdapter) Save(ctx context.Context, payload []byte) error {
	return r.client.Set(ctx, r.key, payload, 0).Err()
}
