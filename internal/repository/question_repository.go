package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// QuestionRepository persists admin-authored question sets as a single
// subject-to-questions map. Authored sets shadow the built-in defaults.
type QuestionRepository struct {
	rdb *redis.Client
}

func NewQuestionRepository(rdb *redis.Client) *QuestionRepository {
	return &QuestionRepository{rdb: rdb}
}

// GetAll loads the authored question map, failing open to an empty map
// on missing or corrupted data.
func (r *QuestionRepository) GetAll(ctx context.Context) (map[string][]model.Question, error) {
	raw, err := r.rdb.Get(ctx, config.StorageKey.QuestionsKey()).Result()
	if errors.Is(err, redis.Nil) {
		return map[string][]model.Question{}, nil
	}
	if err != nil {
		return nil, err
	}

	var sets map[string][]model.Question
	if err := json.Unmarshal([]byte(raw), &sets); err != nil {
		return map[string][]model.Question{}, nil
	}
	return sets, nil
}

// SaveSubject replaces one subject's authored question set.
func (r *QuestionRepository) SaveSubject(ctx context.Context, subject string, questions []model.Question) error {
	sets, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	sets[subject] = questions
	return r.saveAll(ctx, sets)
}

// DeleteSubject removes one subject's authored set, restoring any
// built-in default for that subject.
func (r *QuestionRepository) DeleteSubject(ctx context.Context, subject string) error {
	sets, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	delete(sets, subject)
	return r.saveAll(ctx, sets)
}

func (r *QuestionRepository) saveAll(ctx context.Context, sets map[string][]model.Question) error {
	raw, err := json.Marshal(sets)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, config.StorageKey.QuestionsKey(), raw, 0).Err()
}
