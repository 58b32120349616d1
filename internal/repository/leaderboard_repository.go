package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// LeaderboardRepository persists the global leaderboard as a capped,
// most-recent-first log under a single key.
type LeaderboardRepository struct {
	rdb *redis.Client
}

func NewLeaderboardRepository(rdb *redis.Client) *LeaderboardRepository {
	return &LeaderboardRepository{rdb: rdb}
}

// GetAll loads the leaderboard, failing open to an empty log on missing
// or corrupted data.
func (r *LeaderboardRepository) GetAll(ctx context.Context) ([]model.QuizResult, error) {
	raw, err := r.rdb.Get(ctx, config.StorageKey.LeaderboardKey()).Result()
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

// Add inserts the entry at the front and truncates the log to the most
// recent LeaderboardMax entries.
func (r *LeaderboardRepository) Add(ctx context.Context, entry model.QuizResult) error {
	entries, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	entries = append([]model.QuizResult{entry}, entries...)
	if len(entries) > model.LeaderboardMax {
		entries = entries[:model.LeaderboardMax]
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, config.StorageKey.LeaderboardKey(), raw, 0).Err()
}
