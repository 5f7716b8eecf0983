package storage

import (
	"context"
	"fmt"

	"github.com/ivanoskov/daily_balance_bot/internal/config"
	"github.com/ivanoskov/daily_balance_bot/internal/model"
)

// Store определяет контракт хранилища данных пользователей: отдельная запись
// на каждый userID, переживает перезапуск процесса, последняя запись
// побеждает. Get возвращает nil без ошибки, если записи ещё нет.
type Store interface {
	Get(ctx context.Context, userID int64) (*model.Record, error)
	Put(ctx context.Context, userID int64, rec *model.Record) error
}

// FromConfig создает хранилище выбранного в конфигурации типа
func FromConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage {
	case "", "file":
		return NewFileStore(cfg.StateFile)
	case "supabase":
		return NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey)
	case "redis":
		return NewRedisStore(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage)
	}
}
