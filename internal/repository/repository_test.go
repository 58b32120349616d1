package repository

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/model"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func sampleResult(n int) model.QuizResult {
	return model.QuizResult{
		ID:         fmt.Sprintf("res-%d", n),
		Subject:    "Math",
		Difficulty: model.DifficultyMedium,
		Percentage: n,
		Correct:    n,
		Total:      10,
		MaxStreak:  2,
		Date:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(n) * time.Hour),
	}
}

func TestUserRepositoryRoundTrip(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewUserRepository(client)
	ctx := context.Background()

	users := []model.User{{
		ID:             "u1",
		Name:           "Ann",
		Email:          "ann@x.com",
		Password:       "pw1",
		CreatedAt:      time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC),
		TotalQuizzes:   3,
		BestScore:      90,
		TotalCorrect:   21,
		TotalQuestions: 30,
	}}

	if err := repo.SaveAll(ctx, users); err != nil {
		t.Fatalf("save users: %v", err)
	}
	got, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get users: %v", err)
	}
	if !reflect.DeepEqual(got, users) {
		t.Fatalf("round-trip mismatch:\n got  %+v\n want %+v", got, users)
	}
}

func TestUserRepositoryMissingKeyIsEmpty(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewUserRepository(client)

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get users: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection, got %d users", len(got))
	}
}

func TestUserRepositoryCorruptedValueFailsOpen(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewUserRepository(client)

	if err := mr.Set(config.StorageKey.UsersKey(), "{not json"); err != nil {
		t.Fatalf("seed corrupted value: %v", err)
	}

	got, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("expected fail-open read, got error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty collection from corrupted data, got %d", len(got))
	}
}

func TestCurrentUserSnapshotLifecycle(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewUserRepository(client)
	ctx := context.Background()

	if got, err := repo.GetCurrent(ctx); err != nil || got != nil {
		t.Fatalf("expected no snapshot initially, got %v err %v", got, err)
	}

	snapshot := model.SafeUser{ID: "u1", Name: "Ann", Email: "ann@x.com"}
	if err := repo.SetCurrent(ctx, snapshot); err != nil {
		t.Fatalf("set current: %v", err)
	}
	got, err := repo.GetCurrent(ctx)
	if err != nil {
		t.Fatalf("get current: %v", err)
	}
	if got == nil || got.ID != "u1" {
		t.Fatalf("expected snapshot for u1, got %+v", got)
	}

	if err := repo.ClearCurrent(ctx); err != nil {
		t.Fatalf("clear current: %v", err)
	}
	if got, err := repo.GetCurrent(ctx); err != nil || got != nil {
		t.Fatalf("expected cleared snapshot, got %v err %v", got, err)
	}
}

func TestLeaderboardInsertsAtFrontAndTruncates(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewLeaderboardRepository(client)
	ctx := context.Background()

	for i := 0; i < model.LeaderboardMax+1; i++ {
		if err := repo.Add(ctx, sampleResult(i)); err != nil {
			t.Fatalf("add entry %d: %v", i, err)
		}
	}

	entries, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	if len(entries) != model.LeaderboardMax {
		t.Fatalf("expected %d entries, got %d", model.LeaderboardMax, len(entries))
	}
	if entries[0].ID != fmt.Sprintf("res-%d", model.LeaderboardMax) {
		t.Fatalf("expected newest entry first, got %s", entries[0].ID)
	}
	// The oldest entry (res-0) fell off the end.
	if entries[len(entries)-1].ID != "res-1" {
		t.Fatalf("expected res-1 last, got %s", entries[len(entries)-1].ID)
	}
}

func TestLeaderboardCorruptedValueFailsOpen(t *testing.T) {
	mr, client := newTestClient(t)
	repo := NewLeaderboardRepository(client)
	ctx := context.Background()

	if err := mr.Set(config.StorageKey.LeaderboardKey(), "[[["); err != nil {
		t.Fatalf("seed corrupted value: %v", err)
	}

	// A write after corruption starts from the empty log instead of failing.
	if err := repo.Add(ctx, sampleResult(1)); err != nil {
		t.Fatalf("add after corruption: %v", err)
	}
	entries, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestHistoryPerUserTruncation(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewHistoryRepository(client)
	ctx := context.Background()

	for i := 0; i < model.HistoryMax+1; i++ {
		if err := repo.Add(ctx, "u1", sampleResult(i)); err != nil {
			t.Fatalf("add entry %d: %v", i, err)
		}
	}
	if err := repo.Add(ctx, "u2", sampleResult(999)); err != nil {
		t.Fatalf("add entry for u2: %v", err)
	}

	entries, err := repo.GetByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(entries) != model.HistoryMax {
		t.Fatalf("expected %d entries, got %d", model.HistoryMax, len(entries))
	}
	if entries[0].ID != fmt.Sprintf("res-%d", model.HistoryMax) {
		t.Fatalf("expected newest entry first, got %s", entries[0].ID)
	}

	other, err := repo.GetByUser(ctx, "u2")
	if err != nil {
		t.Fatalf("get history u2: %v", err)
	}
	if len(other) != 1 {
		t.Fatalf("expected u2 history isolated with 1 entry, got %d", len(other))
	}
}

func TestHistoryKeepsQuestionSnapshot(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewHistoryRepository(client)
	ctx := context.Background()

	entry := sampleResult(1)
	entry.Questions = []model.Question{
		{ID: 1, QuestionText: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2, Explanation: "why"},
	}
	entry.Answers = model.AnswerMap{0: model.TimedOutAnswer()}

	if err := repo.Add(ctx, "u1", entry); err != nil {
		t.Fatalf("add entry: %v", err)
	}
	entries, err := repo.GetByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if !reflect.DeepEqual(entries[0], entry) {
		t.Fatalf("snapshot mismatch:\n got  %+v\n want %+v", entries[0], entry)
	}
}

func TestQuestionRepositorySaveAndDelete(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewQuestionRepository(client)
	ctx := context.Background()

	qs := []model.Question{
		{ID: 1, QuestionText: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
	}
	if err := repo.SaveSubject(ctx, "History", qs); err != nil {
		t.Fatalf("save subject: %v", err)
	}

	sets, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if !reflect.DeepEqual(sets["History"], qs) {
		t.Fatalf("expected saved set, got %+v", sets["History"])
	}

	if err := repo.DeleteSubject(ctx, "History"); err != nil {
		t.Fatalf("delete subject: %v", err)
	}
	sets, err = repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all after delete: %v", err)
	}
	if _, ok := sets["History"]; ok {
		t.Fatal("expected subject removed")
	}
}

func TestSettingRepository(t *testing.T) {
	_, client := newTestClient(t)
	repo := NewSettingRepository(client)
	ctx := context.Background()

	if _, ok, err := repo.Get(ctx, "darkMode"); err != nil || ok {
		t.Fatalf("expected absent setting, got ok=%v err=%v", ok, err)
	}
	if err := repo.Set(ctx, "darkMode", "true"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := repo.Get(ctx, "darkMode")
	if err != nil || !ok || value != "true" {
		t.Fatalf("expected true, got %q ok=%v err=%v", value, ok, err)
	}
}
