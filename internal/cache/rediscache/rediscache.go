package rediscache

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/BearBump/CaseDesk/internal/cache"
)

// RedisCache хранит сериализованные записи стора (магазины, плейбуки).
// Стор — внешний HTTP API с жёсткими лимитами, кэш снимает с него
// повторные чтения редко меняющихся таблиц.
type RedisCache struct {
	c *redis.Client
}

// New возвращает кэш поверх redis. Пустой адрес — redis не сконфигурирован,
// тогда отдаётся no-op: вызывающие всегда ходят в источник.
func New(addr string) cache.BytesCache {
	if addr == "" {
		return cache.Noop{}
	}
	return &RedisCache{
		c: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

// Get: промах — не ошибка, (nil, false, nil).
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "redis get")
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.c.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}
