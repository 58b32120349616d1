package repository

import (
	"context"
	"errors"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// SettingRepository persists small named app settings (the UI theme flag).
type SettingRepository struct {
	rdb *redis.Client
}

func NewSettingRepository(rdb *redis.Client) *SettingRepository {
	return &SettingRepository{rdb: rdb}
}

// Get returns the setting value and whether it was present.
func (r *SettingRepository) Get(ctx context.Context, name string) (string, bool, error) {
	raw, err := r.rdb.Get(ctx, config.StorageKey.SettingKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

// Set writes the setting value.
func (r *SettingRepository) Set(ctx context.Context, name, value string) error {
	return r.rdb.Set(ctx, config.StorageKey.SettingKey(name), value, 0).Err()
}
