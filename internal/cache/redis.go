// Package cache оборачивает подключение к redis. Данные здесь не
// кэшируются (это вне задач сервиса) — redis используется только для
// короткоживущих блокировок верификации checkout-сессий.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/translatio/internal/config"
)

// Cache хранит клиента redis.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к redis и проверяет соединение ping-ом.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.Initserver"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// AcquireLock пытается взять блокировку по ключу (SET NX) на время ttl.
// Возвращает false, если блокировка уже удерживается.
func (c *Cache) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	const op = "cache.AcquireLock"
	ok, err := c.Db.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

// ReleaseLock снимает блокировку по ключу.
func (c *Cache) ReleaseLock(ctx context.Context, key string) error {
	const op = "cache.ReleaseLock"
	if err := c.Db.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
