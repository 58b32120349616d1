package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// HistoryRepository persists each user's quiz history as a capped,
// most-recent-first log keyed by user id.
type HistoryRepository struct {
	rdb *redis.Client
}

func NewHistoryRepository(rdb *redis.Client) *HistoryRepository {
	return &HistoryRepository{rdb: rdb}
}

// GetByUser loads a user's history, failing open to an empty log on
// missing or corrupted data.
func (r *HistoryRepository) GetByUser(ctx context.Context, userID string) ([]model.QuizResult, error) {
	raw, err := r.rdb.Get(ctx, config.StorageKey.HistoryKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return []model.QuizResult{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []model.QuizResult
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return []model.QuizResult{}, nil
	}
	return entries, nil
}

// Add prepends the entry to the user's history and truncates it to the
// most recent HistoryMax entries.
func (r *HistoryRepository) Add(ctx context.Context, userID string, entry model.QuizResult) error {
	entries, err := r.GetByUser(ctx, userID)
	if err != nil {
		return err
	}

	entries = append([]model.QuizResult{entry}, entries...)
	if len(entries) > model.HistoryMax {
		entries = entries[:model.HistoryMax]
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, config.StorageKey.HistoryKey(userID), raw, 0).Err()
}
