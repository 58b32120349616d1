package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/brainspark/brainspark-backend/internal/repository"
	"github.com/rs/zerolog"
)

type sessionFixture struct {
	svc             *SessionService
	accountService  *AccountService
	leaderboardRepo *repository.LeaderboardRepository
	historyRepo     *repository.HistoryRepository
}

func newSessionFixture(t *testing.T, cfg *config.Config) *sessionFixture {
	t.Helper()
	client := newTestRedis(t)

	userRepo := repository.NewUserRepository(client)
	historyRepo := repository.NewHistoryRepository(client)
	leaderboardRepo := repository.NewLeaderboardRepository(client)
	questionRepo := repository.NewQuestionRepository(client)

	accountService := NewAccountService(cfg, userRepo, historyRepo, zerolog.Nop())
	questionService := NewQuestionService(questionRepo, zerolog.Nop())
	aiService := NewAIService(cfg, zerolog.Nop())

	return &sessionFixture{
		svc:             NewSessionService(cfg, questionService, aiService, accountService, leaderboardRepo, zerolog.Nop()),
		accountService:  accountService,
		leaderboardRepo: leaderboardRepo,
		historyRepo:     historyRepo,
	}
}

func TestStartRequiresSubjectXorTopic(t *testing.T) {
	fx := newSessionFixture(t, testConfig())
	ctx := context.Background()

	_, err := fx.svc.Start(ctx, "", model.StartQuizRequest{})
	if !errors.Is(err, ErrSubjectOrTopicRequired) {
		t.Errorf("neither set: got %v", err)
	}
	_, err = fx.svc.Start(ctx, "", model.StartQuizRequest{Subject: "Math", Topic: "Go"})
	if !errors.Is(err, ErrSubjectOrTopicRequired) {
		t.Errorf("both set: got %v", err)
	}
	_, err = fx.svc.Start(ctx, "", model.StartQuizRequest{Subject: "Nonexistent"})
	if !errors.Is(err, ErrNoQuestions) {
		t.Errorf("unknown subject: got %v", err)
	}
}

func TestStartSubjectView(t *testing.T) {
	fx := newSessionFixture(t, testConfig())

	view, err := fx.svc.Start(context.Background(), "", model.StartQuizRequest{Subject: "Math"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.ID == "" || view.Subject != "Math" || view.IsAI {
		t.Errorf("unexpected view header: %+v", view)
	}
	if view.TotalQuestions != 10 || view.CurrentIndex != 0 {
		t.Errorf("questions = %d index = %d", view.TotalQuestions, view.CurrentIndex)
	}
	if view.Difficulty != model.DifficultyMedium {
		t.Errorf("default difficulty = %q", view.Difficulty)
	}
	if view.Question == nil || len(view.Question.Options) != model.OptionCount {
		t.Fatalf("missing question view: %+v", view.Question)
	}
	if view.RemainingSeconds <= 0 {
		t.Errorf("countdown not running: %d", view.RemainingSeconds)
	}
}

func TestStartAITopic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply(t, validArray)))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.GroqAPIURL = srv.URL
	cfg.AITimeout = 5 * time.Second
	fx := newSessionFixture(t, cfg)

	view, err := fx.svc.Start(context.Background(), "", model.StartQuizRequest{Topic: "Go concurrency", Difficulty: "hard"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !view.IsAI || view.Subject != "Go concurrency" {
		t.Errorf("unexpected view: is_ai=%v subject=%q", view.IsAI, view.Subject)
	}
	if view.TotalQuestions != 2 {
		t.Errorf("questions = %d, want 2", view.TotalQuestions)
	}
	if view.Difficulty != model.DifficultyHard {
		t.Errorf("difficulty = %q", view.Difficulty)
	}
}

func TestFullQuizFlowWithPersistence(t *testing.T) {
	fx := newSessionFixture(t, testConfig())
	ctx := context.Background()

	user, _, err := fx.accountService.Register(ctx, "Ann", "ann@example.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	view, err := fx.svc.Start(ctx, user.ID, model.StartQuizRequest{Subject: "Math"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := view.ID

	// Answer then advance through every question.
	for i := 0; i < view.TotalQuestions; i++ {
		if _, err := fx.svc.Answer(id, 0); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if _, err := fx.svc.Next(id); err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
	}

	final, err := fx.svc.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !final.Finished {
		t.Fatal("quiz not finished after last advance")
	}

	summary, result, err := fx.svc.Result(ctx, id)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if summary.Total != 10 || summary.Correct+summary.Wrong != 10 {
		t.Errorf("unexpected summary: %+v", summary)
	}
	if result.Subject != "Math" || result.Total != 10 {
		t.Errorf("unexpected result: %+v", result)
	}

	// A second call returns the cached result without persisting again.
	_, again, err := fx.svc.Result(ctx, id)
	if err != nil {
		t.Fatalf("result again: %v", err)
	}
	if again.ID != result.ID {
		t.Errorf("result recomputed: %q vs %q", again.ID, result.ID)
	}

	entries, err := fx.leaderboardRepo.GetAll(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != result.ID {
		t.Errorf("leaderboard entries: %+v", entries)
	}

	stats, err := fx.accountService.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if stats.TotalQuizzes != 1 || stats.TotalQuestions != 10 {
		t.Errorf("stats not updated: %+v", stats)
	}
	history, err := fx.historyRepo.GetByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history entries: %d", len(history))
	}
}

func TestAnonymousResultSkipsStats(t *testing.T) {
	fx := newSessionFixture(t, testConfig())
	ctx := context.Background()

	view, err := fx.svc.Start(ctx, "", model.StartQuizRequest{Subject: "Python"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := fx.svc.Finish(view.ID); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, _, err := fx.svc.Result(ctx, view.ID); err != nil {
		t.Fatalf("result: %v", err)
	}

	entries, err := fx.leaderboardRepo.GetAll(ctx)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("leaderboard entries: %d", len(entries))
	}
}

func TestResultBeforeFinish(t *testing.T) {
	fx := newSessionFixture(t, testConfig())
	ctx := context.Background()

	view, err := fx.svc.Start(ctx, "", model.StartQuizRequest{Subject: "Math"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := fx.svc.Result(ctx, view.ID); !errors.Is(err, ErrQuizNotFinished) {
		t.Errorf("got %v, want ErrQuizNotFinished", err)
	}
}

func TestLifelines(t *testing.T) {
	fx := newSessionFixture(t, testConfig())
	ctx := context.Background()

	view, err := fx.svc.Start(ctx, "", model.StartQuizRequest{Subject: "Math"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := view.ID

	events, cancel, err := fx.svc.Subscribe(id)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	if _, err := fx.svc.UseLifeline(id, "teleport"); !errors.Is(err, ErrUnknownLifeline) {
		t.Errorf("unknown lifeline: got %v", err)
	}

	view, err = fx.svc.UseLifeline(id, LifelineFiftyFifty)
	if err != nil {
		t.Fatalf("fifty-fifty: %v", err)
	}
	if len(view.Eliminated) != 2 || !view.Lifelines.FiftyFifty {
		t.Errorf("fifty-fifty view: eliminated=%v lifelines=%+v", view.Eliminated, view.Lifelines)
	}

	before := view.RemainingSeconds
	view, err = fx.svc.UseLifeline(id, LifelineExtraTime)
	if err != nil {
		t.Fatalf("extra-time: %v", err)
	}
	if !view.Lifelines.ExtraTime || !view.ExtraTimeAdded {
		t.Errorf("extra-time not recorded: %+v", view.Lifelines)
	}
	if view.RemainingSeconds <= before {
		t.Errorf("countdown not extended: %d -> %d", before, view.RemainingSeconds)
	}
	waitForEvent(t, events, EventExtraTime)

	view, err = fx.svc.UseLifeline(id, LifelineSkip)
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if view.CurrentIndex != 1 || !view.Lifelines.Skip {
		t.Errorf("skip did not advance: %+v", view)
	}
	if a, ok := view.Answers[0]; !ok || !a.IsSkipped() {
		t.Errorf("skip sentinel missing: %+v", view.Answers)
	}
}

func TestSkipReuseDoesNotRestartCountdown(t *testing.T) {
	cfg := testConfig()
	cfg.QuestionTime = 10 * time.Second
	fx := newSessionFixture(t, cfg)

	view, err := fx.svc.Start(context.Background(), "", model.StartQuizRequest{Subject: "Math"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := view.ID

	view, err = fx.svc.UseLifeline(id, LifelineSkip)
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	before := view.RemainingSeconds

	events, cancel, err := fx.svc.Subscribe(id)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	// Let the countdown tick down, then re-invoke the consumed lifeline.
	time.Sleep(1200 * time.Millisecond)
	view, err = fx.svc.UseLifeline(id, LifelineSkip)
	if err != nil {
		t.Fatalf("skip reuse: %v", err)
	}
	if view.RemainingSeconds >= before {
		t.Errorf("used-skip reuse reset the countdown: %ds -> %ds", before, view.RemainingSeconds)
	}
	if view.CurrentIndex != 1 {
		t.Errorf("used-skip reuse moved the cursor: index %d", view.CurrentIndex)
	}
	if len(view.Answers) != 1 {
		t.Errorf("used-skip reuse recorded an answer: %+v", view.Answers)
	}

	select {
	case ev := <-events:
		t.Errorf("used-skip reuse broadcast %q", ev.Type)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestExtraTimeAfterAnswerStaysCancelled(t *testing.T) {
	cfg := testConfig()
	cfg.QuestionTime = 250 * time.Millisecond
	cfg.ExtraTime = 250 * time.Millisecond
	fx := newSessionFixture(t, cfg)

	view, err := fx.svc.Start(context.Background(), "", model.StartQuizRequest{Subject: "Math"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := view.ID

	events, cancel, err := fx.svc.Subscribe(id)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	if _, err := fx.svc.Answer(id, 1); err != nil {
		t.Fatalf("answer: %v", err)
	}
	view, err = fx.svc.UseLifeline(id, LifelineExtraTime)
	if err != nil {
		t.Fatalf("extra-time: %v", err)
	}
	if !view.Lifelines.ExtraTime {
		t.Error("extra-time lifeline not consumed")
	}
	if view.RemainingSeconds != 0 {
		t.Errorf("extra-time re-armed a cancelled countdown: %ds", view.RemainingSeconds)
	}

	// No timeout may fire against the recorded answer.
	deadline := time.After(800 * time.Millisecond)
	for {
		select {
		case ev := <-events:
			if ev.Type == EventTimeout {
				t.Fatalf("timeout broadcast for an already-answered question: %+v", ev)
			}
		case <-deadline:
			view, err = fx.svc.Get(id)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if opt, ok := view.Answers[0].Option(); !ok || opt != 1 {
				t.Errorf("answer lost: %+v", view.Answers[0])
			}
			if view.CurrentIndex != 0 {
				t.Errorf("session advanced without Next: index %d", view.CurrentIndex)
			}
			return
		}
	}
}

func TestTimeoutEventCarriesExpiredIndex(t *testing.T) {
	cfg := testConfig()
	cfg.QuestionTime = 40 * time.Millisecond
	fx := newSessionFixture(t, cfg)

	view, err := fx.svc.Start(context.Background(), "", model.StartQuizRequest{Subject: "Math"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	events, cancel, err := fx.svc.Subscribe(view.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	ev := waitForEvent(t, events, EventTimeout)
	if ev.QuestionIndex != 0 {
		t.Errorf("timeout event index = %d, want the expired question 0", ev.QuestionIndex)
	}
}

func TestTimeoutAdvancesAndRecordsSentinel(t *testing.T) {
	cfg := testConfig()
	cfg.QuestionTime = 30 * time.Millisecond
	fx := newSessionFixture(t, cfg)

	view, err := fx.svc.Start(context.Background(), "", model.StartQuizRequest{Subject: "Math"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := view.ID

	deadline := time.Now().Add(2 * time.Second)
	for {
		view, err = fx.svc.Get(id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if a, ok := view.Answers[0]; ok && a.IsTimedOut() {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("question never timed out: %+v", view.Answers)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if view.CurrentIndex == 0 && !view.Finished {
		t.Errorf("timeout did not advance: %+v", view)
	}
	if view.CurrentStreak != 0 {
		t.Errorf("streak not reset on timeout: %d", view.CurrentStreak)
	}
}

func TestAnswerCancelsCountdown(t *testing.T) {
	cfg := testConfig()
	cfg.QuestionTime = 30 * time.Millisecond
	fx := newSessionFixture(t, cfg)

	view, err := fx.svc.Start(context.Background(), "", model.StartQuizRequest{Subject: "Math"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := view.ID

	if _, err := fx.svc.Answer(id, 2); err != nil {
		t.Fatalf("answer: %v", err)
	}
	time.Sleep(120 * time.Millisecond)

	view, err = fx.svc.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	a, ok := view.Answers[0]
	if !ok {
		t.Fatal("answer missing")
	}
	if opt, isOpt := a.Option(); !isOpt || opt != 2 {
		t.Errorf("answer overwritten by stale timeout: %+v", a)
	}
	if view.CurrentIndex != 0 {
		t.Errorf("session advanced without Next: index %d", view.CurrentIndex)
	}
}

func TestResetDropsSessionAndClosesSubscribers(t *testing.T) {
	fx := newSessionFixture(t, testConfig())

	view, err := fx.svc.Start(context.Background(), "", model.StartQuizRequest{Subject: "Math"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	events, cancel, err := fx.svc.Subscribe(view.ID)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	if err := fx.svc.Reset(view.ID); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := fx.svc.Get(view.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("got %v, want ErrSessionNotFound", err)
	}
	waitForClose(t, events)

	if err := fx.svc.Reset(view.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("double reset: got %v", err)
	}
}

func TestReapIdle(t *testing.T) {
	fx := newSessionFixture(t, testConfig())

	view, err := fx.svc.Start(context.Background(), "", model.StartQuizRequest{Subject: "Math"})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if reaped := fx.svc.ReapIdle(time.Hour); reaped != 0 {
		t.Errorf("fresh session reaped: %d", reaped)
	}
	if reaped := fx.svc.ReapIdle(-time.Second); reaped != 1 {
		t.Errorf("reaped = %d, want 1", reaped)
	}
	if _, err := fx.svc.Get(view.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("reaped session still present: %v", err)
	}
}

func waitForEvent(t *testing.T, events <-chan TimerEvent, eventType string) TimerEvent {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("event channel closed while waiting for %q", eventType)
			}
			if ev.Type == eventType {
				return ev
			}
		case <-deadline:
			t.Fatalf("no %q event within deadline", eventType)
		}
	}
}

func waitForClose(t *testing.T, events <-chan TimerEvent) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("event channel not closed within deadline")
		}
	}
}
