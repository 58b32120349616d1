package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// UserRepository persists the full user collection as one JSON value under
// a single namespaced key, plus the signed-in identity snapshot.
type UserRepository struct {
	rdb *redis.Client
}

func NewUserRepository(rdb *redis.Client) *UserRepository {
	return &UserRepository{rdb: rdb}
}

// GetAll loads the user collection. A missing key or unparseable value
// yields an empty collection, never an error: stored data is user-owned
// and non-critical, so corruption fails open.
func (r *UserRepository) GetAll(ctx context.Context) ([]model.User, error) {
	raw, err := r.rdb.Get(ctx, config.StorageKey.UsersKey()).Result()
	if errors.Is(err, redis.Nil) {
		return []model.User{}, nil
	}
	if err != nil {
		return nil, err
	}

	var users []model.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return []model.User{}, nil
	}
	return users, nil
}

// SaveAll overwrites the stored user collection.
func (r *UserRepository) SaveAll(ctx context.Context, users []model.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, config.StorageKey.UsersKey(), raw, 0).Err()
}

// GetCurrent loads the persisted signed-in identity snapshot, if any.
func (r *UserRepository) GetCurrent(ctx context.Context) (*model.SafeUser, error) {
	raw, err := r.rdb.Get(ctx, config.StorageKey.CurrentUserKey()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var user model.SafeUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// SetCurrent writes through the signed-in identity snapshot.
func (r *UserRepository) SetCurrent(ctx context.Context, user model.SafeUser) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, config.StorageKey.CurrentUserKey(), raw, 0).Err()
}

// ClearCurrent removes the signed-in identity snapshot on logout.
func (r *UserRepository) ClearCurrent(ctx context.Context) error {
	return r.rdb.Del(ctx, config.StorageKey.CurrentUserKey()).Err()
}
