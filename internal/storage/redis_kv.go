package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "taskwall:"

// RedisKV stores every key as a plain redis string under a common prefix.
type RedisKV struct {
	rc     *redis.Client
	prefix string
}

func NewRedisKV(rc *redis.Client, prefix string) (*RedisKV, error) {
	if rc == nil {
		return nil, errors.New("storage: nil redis client")
	}
	return &RedisKV{rc: rc, prefix: prefix}, nil
}

// OpenRedis accepts either a redis:// URL or a bare host:port address.
func OpenRedis(ctx context.Context, addr, prefix string) (*RedisKV, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{Addr: addr}
	}
	rc := redis.NewClient(opts)
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisKV(rc, prefix)
}

func (r *RedisKV) Close() error {
	return r.rc.Close()
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := r.rc.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.rc.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	n, err := r.rc.Del(ctx, r.prefix+key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
