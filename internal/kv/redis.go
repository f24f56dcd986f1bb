// Package kv содержит бэкенды хранения коллекции подписок.
// Каждый бэкенд хранит коллекцию одним непрозрачным JSON-блобом
// под общеизвестным ключом; формат блоба — ровно список записей,
// без поля версии схемы.
package kv

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Key — общеизвестный ключ, под которым лежит коллекция.
const Key = "subscriptions"

// Redis хранит блоб в Redis.
type Redis struct {
	db *redis.Client
}

// NewRedis открывает соединение с Redis и проверяет его.
func NewRedis(ctx context.Context, cfg config.RedisConnection) (*Redis, error) {
	const op = "kv.NewRedis"

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
	return &Redis{db: db}, nil
}

// Load читает коллекцию из Redis; found == false, если ключа нет.
func (r *Redis) Load(ctx context.Context) ([]models.Subscription, bool, error) {
	const op = "kv.Redis.Load"

	val, err := r.db.Get(ctx, Key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var subs []models.Subscription
	if err := json.Unmarshal([]byte(val), &subs); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return subs, true, nil
}

// Save записывает коллекцию целиком, без срока жизни ключа.
func (r *Redis) Save(ctx context.Context, subs []models.Subscription) error {
	const op = "kv.Redis.Save"

	data, err := json.Marshal(subs)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := r.db.Set(ctx, Key, data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (r *Redis) Close() error {
	return r.db.Close()
}
