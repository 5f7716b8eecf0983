package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ivanoskov/daily_balance_bot/internal/model"
)

// RedisStore хранит JSON-запись пользователя по ключу botdata:<userID>.
// Подходит для развертываний, где Redis настроен с персистентностью.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, userID int64) (*model.Record, error) {
	data, err := s.client.Get(ctx, redisKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user data: %w", err)
	}

	var rec model.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse user data: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Put(ctx context.Context, userID int64, rec *model.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode user data: %w", err)
	}

	// Записи живут бессрочно: дневной журнал чистит движок, а не TTL
	if err := s.client.Set(ctx, redisKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save user data: %w", err)
	}
	return nil
}

func redisKey(userID int64) string {
	return fmt.Sprintf("botdata:%d", userID)
}
