package service

import (
	"context"
	"sync"
	"time"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/brainspark/brainspark-backend/internal/quiz"
	"github.com/brainspark/brainspark-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Lifeline kinds accepted by UseLifeline.
const (
	LifelineFiftyFifty = "fifty-fifty"
	LifelineExtraTime  = "extra-time"
	LifelineSkip       = "skip"
)

// Timer event types streamed to countdown subscribers.
const (
	EventQuestion  = "question"
	EventExtraTime = "extra_time"
	EventTimeout   = "timeout"
	EventFinished  = "finished"
)

// TimerEvent notifies subscribers of countdown-relevant transitions.
type TimerEvent struct {
	Type             string `json:"type"`
	QuestionIndex    int    `json:"question_index"`
	RemainingSeconds int    `json:"remaining_seconds"`
	Finished         bool   `json:"finished"`
}

// LifelineState reports which lifelines have been consumed.
type LifelineState struct {
	FiftyFifty bool `json:"fifty_fifty"`
	ExtraTime  bool `json:"extra_time"`
	Skip       bool `json:"skip"`
}

// QuestionView is the client-facing question shape. It never carries the
// correct index or the explanation while the quiz is running.
type QuestionView struct {
	Index        int      `json:"index"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
}

// SessionView is the client-facing snapshot of a live session.
type SessionView struct {
	ID               string           `json:"id"`
	Subject          string           `json:"subject"`
	IsAI             bool             `json:"is_ai"`
	Difficulty       model.Difficulty `json:"difficulty"`
	TotalQuestions   int              `json:"total_questions"`
	CurrentIndex     int              `json:"current_index"`
	Question         *QuestionView    `json:"question,omitempty"`
	Answers          model.AnswerMap  `json:"answers"`
	CurrentStreak    int              `json:"current_streak"`
	MaxStreak        int              `json:"max_streak"`
	Lifelines        LifelineState    `json:"lifelines"`
	Eliminated       []int            `json:"eliminated,omitempty"`
	ExtraTimeAdded   bool             `json:"extra_time_added"`
	RemainingSeconds int              `json:"remaining_seconds"`
	Finished         bool             `json:"finished"`
}

// liveSession pairs a state machine with its countdown and ownership data.
type liveSession struct {
	id      string
	userID  string
	subject string
	isAI    bool
	machine *quiz.Session

	// deadline is the active countdown's expiry; timerGen invalidates
	// stale AfterFunc callbacks after a cancel or restart.
	deadline time.Time
	timerGen uint64

	result      *model.QuizResult
	summary     model.ScoreSummary
	lastTouched time.Time

	subscribers map[chan TimerEvent]struct{}
}

// SessionService owns every live quiz session and its countdown. All
// transitions run under one lock: the state machine itself is
// single-threaded by design, the timers are the only autonomous actors.
type SessionService struct {
	cfg             *config.Config
	questionService *QuestionService
	aiService       *AIService
	accountService  *AccountService
	leaderboardRepo *repository.LeaderboardRepository
	log             zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*liveSession
}

func NewSessionService(
	cfg *config.Config,
	questionService *QuestionService,
	aiService *AIService,
	accountService *AccountService,
	leaderboardRepo *repository.LeaderboardRepository,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		cfg:             cfg,
		questionService: questionService,
		aiService:       aiService,
		accountService:  accountService,
		leaderboardRepo: leaderboardRepo,
		log:             log.With().Str("component", "session_service").Logger(),
		sessions:        make(map[string]*liveSession),
	}
}

// Start creates a session from a built-in subject or an AI topic and
// begins the first question's countdown. userID may be empty for
// anonymous play.
func (s *SessionService) Start(ctx context.Context, userID string, req model.StartQuizRequest) (SessionView, error) {
	if (req.Subject == "") == (req.Topic == "") {
		return SessionView{}, ErrSubjectOrTopicRequired
	}

	difficulty := model.Difficulty(req.Difficulty)
	if req.Difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	var (
		questions []model.Question
		subject   string
		isAI      bool
		err       error
	)
	if req.Subject != "" {
		subject = req.Subject
		questions, err = s.questionService.QuestionsForSubject(ctx, req.Subject)
	} else {
		subject = req.Topic
		isAI = true
		count := req.Count
		if count == 0 {
			count = 10
		}
		questions, err = s.aiService.Generate(ctx, req.Topic, count, difficulty)
	}
	if err != nil {
		return SessionView{}, err
	}
	if len(questions) == 0 {
		return SessionView{}, ErrNoQuestions
	}

	machine := quiz.NewSession(difficulty)
	machine.SetQuestions(questions)

	ls := &liveSession{
		id:          uuid.New().String(),
		userID:      userID,
		subject:     subject,
		isAI:        isAI,
		machine:     machine,
		lastTouched: time.Now(),
		subscribers: make(map[chan TimerEvent]struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[ls.id] = ls
	s.startCountdown(ls, s.cfg.QuestionTime)
	s.broadcast(ls, EventQuestion)

	s.log.Info().
		Str("session_id", ls.id).
		Str("subject", subject).
		Bool("is_ai", isAI).
		Str("difficulty", string(difficulty)).
		Int("questions", len(questions)).
		Msg("Quiz session started")

	return s.view(ls), nil
}

// Get returns the current snapshot of a session.
func (s *SessionService) Get(id string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[id]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	return s.view(ls), nil
}

// Answer records an option for the current question. Selecting an answer
// cancels the pending countdown so a late timeout cannot overwrite it.
func (s *SessionService) Answer(id string, option int) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[id]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	ls.lastTouched = time.Now()

	if err := ls.machine.SelectAnswer(option); err != nil {
		return SessionView{}, err
	}
	s.cancelCountdown(ls)
	return s.view(ls), nil
}

// Next advances to the following question, restarting the countdown, or
// finishes the quiz when the current question is the last one.
func (s *SessionService) Next(id string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[id]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	ls.lastTouched = time.Now()

	if err := ls.machine.NextQuestion(); err != nil {
		return SessionView{}, err
	}
	s.afterAdvance(ls, EventQuestion)
	return s.view(ls), nil
}

// Finish force-finishes the quiz.
func (s *SessionService) Finish(id string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[id]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	ls.lastTouched = time.Now()

	ls.machine.Finish()
	s.cancelCountdown(ls)
	s.broadcast(ls, EventFinished)
	return s.view(ls), nil
}

// UseLifeline applies one of the three single-use lifelines.
func (s *SessionService) UseLifeline(id, kind string) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[id]
	if !ok {
		return SessionView{}, ErrSessionNotFound
	}
	ls.lastTouched = time.Now()

	switch kind {
	case LifelineFiftyFifty:
		if err := ls.machine.UseFiftyFifty(); err != nil {
			return SessionView{}, err
		}
	case LifelineExtraTime:
		alreadyUsed := ls.machine.ExtraTimeUsed
		if err := ls.machine.UseExtraTime(); err != nil {
			return SessionView{}, err
		}
		if !alreadyUsed {
			s.extendCountdown(ls, s.cfg.ExtraTime)
			s.broadcast(ls, EventExtraTime)
		}
	case LifelineSkip:
		alreadyUsed := ls.machine.SkipUsed
		if err := ls.machine.UseSkip(); err != nil {
			return SessionView{}, err
		}
		// A consumed skip is a no-op in the machine; restarting the
		// countdown here would let repeated skips reset the clock.
		if !alreadyUsed {
			s.afterAdvance(ls, EventQuestion)
		}
	default:
		return SessionView{}, ErrUnknownLifeline
	}
	return s.view(ls), nil
}

// Result computes the score for a finished session, persisting the
// leaderboard entry and — for signed-in owners — user stats and history.
// Persistence happens exactly once per session; later calls return the
// cached result.
func (s *SessionService) Result(ctx context.Context, id string) (model.ScoreSummary, model.QuizResult, error) {
	s.mu.Lock()
	ls, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return model.ScoreSummary{}, model.QuizResult{}, ErrSessionNotFound
	}
	ls.lastTouched = time.Now()

	if !ls.machine.Finished {
		s.mu.Unlock()
		return model.ScoreSummary{}, model.QuizResult{}, ErrQuizNotFinished
	}
	if ls.result != nil {
		summary, result := ls.summary, *ls.result
		s.mu.Unlock()
		return summary, result, nil
	}

	summary := quiz.ScoreSession(ls.machine)

	answers := make(model.AnswerMap, len(ls.machine.Answers))
	for k, v := range ls.machine.Answers {
		answers[k] = v
	}
	result := model.QuizResult{
		ID:         uuid.New().String(),
		Subject:    ls.subject,
		IsAI:       ls.isAI,
		Difficulty: ls.machine.Difficulty,
		Percentage: summary.Percentage,
		Correct:    summary.Correct,
		Total:      summary.Total,
		MaxStreak:  summary.MaxStreak,
		Date:       time.Now().UTC(),
		Questions:  ls.machine.Questions,
		Answers:    answers,
	}
	ls.result = &result
	ls.summary = summary
	userID := ls.userID
	s.mu.Unlock()

	if err := s.leaderboardRepo.Add(ctx, result); err != nil {
		s.log.Error().Err(err).Str("session_id", id).Msg("Leaderboard write failed")
	}
	if userID != "" {
		if err := s.accountService.UpdateStats(ctx, userID, result); err != nil {
			s.log.Error().Err(err).Str("user_id", userID).Msg("Stats update failed")
		}
	}
	return summary, result, nil
}

// Reset discards a session entirely.
func (s *SessionService) Reset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.drop(ls)
	return nil
}

// Subscribe registers a countdown event listener. The returned cancel
// func must be called when the listener goes away.
func (s *SessionService) Subscribe(id string) (<-chan TimerEvent, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ls, ok := s.sessions[id]
	if !ok {
		return nil, nil, ErrSessionNotFound
	}

	ch := make(chan TimerEvent, 8)
	ls.subscribers[ch] = struct{}{}

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if live, ok := s.sessions[id]; ok {
			delete(live.subscribers, ch)
		}
	}
	return ch, cancel, nil
}

// ReapIdle drops sessions untouched for longer than maxIdle and returns
// how many were removed.
func (s *SessionService) ReapIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for _, ls := range s.sessions {
		if time.Since(ls.lastTouched) > maxIdle {
			s.drop(ls)
			reaped++
		}
	}
	return reaped
}

// ─── internals (all called with s.mu held) ─────────────────────────────────

func (s *SessionService) drop(ls *liveSession) {
	s.cancelCountdown(ls)
	for ch := range ls.subscribers {
		close(ch)
	}
	ls.subscribers = make(map[chan TimerEvent]struct{})
	delete(s.sessions, ls.id)
}

// afterAdvance restarts the countdown for the new question or winds the
// session down when the advance finished the quiz.
func (s *SessionService) afterAdvance(ls *liveSession, event string) {
	if ls.machine.Finished {
		s.cancelCountdown(ls)
		s.broadcast(ls, EventFinished)
		return
	}
	s.startCountdown(ls, s.cfg.QuestionTime)
	s.broadcast(ls, event)
}

// startCountdown arms the per-question timer. Bumping timerGen first makes
// every previously armed callback stale: a countdown never outlives its
// question.
func (s *SessionService) startCountdown(ls *liveSession, d time.Duration) {
	ls.timerGen++
	gen := ls.timerGen
	ls.deadline = time.Now().Add(d)

	id := ls.id
	time.AfterFunc(d, func() {
		s.fireTimeout(id, gen)
	})
}

// extendCountdown adds bonus time to the active countdown. A cancelled
// countdown (the question was already answered) stays cancelled: re-arming
// a timer here would later fire a timeout against the recorded answer.
func (s *SessionService) extendCountdown(ls *liveSession, bonus time.Duration) {
	if ls.deadline.IsZero() {
		return
	}
	remaining := time.Until(ls.deadline)
	if remaining < 0 {
		remaining = 0
	}
	s.startCountdown(ls, remaining+bonus)
}

func (s *SessionService) cancelCountdown(ls *liveSession) {
	ls.timerGen++
	ls.deadline = time.Time{}
}

// fireTimeout runs from the timer goroutine; it re-checks the generation
// under the lock so cancelled or restarted countdowns are ignored.
func (s *SessionService) fireTimeout(id string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ls, ok := s.sessions[id]
	if !ok || ls.timerGen != gen {
		return
	}

	index := ls.machine.CurrentIndex
	applied, err := ls.machine.Timeout()
	if err != nil || !applied {
		return
	}
	s.log.Debug().Str("session_id", id).Int("index", index).Msg("Question timed out")
	s.broadcastAt(ls, EventTimeout, index)
	s.afterAdvance(ls, EventQuestion)
}

// broadcast fans an event for the current question out to subscribers.
func (s *SessionService) broadcast(ls *liveSession, eventType string) {
	s.broadcastAt(ls, eventType, ls.machine.CurrentIndex)
}

// broadcastAt carries an explicit question index; timeout events use the
// index the countdown expired on, not the one the machine advanced to.
// Sends never block; slow listeners miss the event.
func (s *SessionService) broadcastAt(ls *liveSession, eventType string, index int) {
	event := TimerEvent{
		Type:             eventType,
		QuestionIndex:    index,
		RemainingSeconds: remainingSeconds(ls),
		Finished:         ls.machine.Finished,
	}
	for ch := range ls.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func remainingSeconds(ls *liveSession) int {
	if ls.deadline.IsZero() || ls.machine.Finished {
		return 0
	}
	remaining := int(time.Until(ls.deadline).Round(time.Second).Seconds())
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s *SessionService) view(ls *liveSession) SessionView {
	m := ls.machine
	view := SessionView{
		ID:             ls.id,
		Subject:        ls.subject,
		IsAI:           ls.isAI,
		Difficulty:     m.Difficulty,
		TotalQuestions: len(m.Questions),
		CurrentIndex:   m.CurrentIndex,
		Answers:        m.Answers,
		CurrentStreak:  m.CurrentStreak,
		MaxStreak:      m.MaxStreak,
		Lifelines: LifelineState{
			FiftyFifty: m.FiftyFiftyUsed,
			ExtraTime:  m.ExtraTimeUsed,
			Skip:       m.SkipUsed,
		},
		Eliminated:       m.EliminatedOptions[m.CurrentIndex],
		ExtraTimeAdded:   m.ExtraTimeAdded,
		RemainingSeconds: remainingSeconds(ls),
		Finished:         m.Finished,
	}

	if q, ok := m.CurrentQuestion(); ok {
		view.Question = &QuestionView{
			Index:        m.CurrentIndex,
			QuestionText: q.QuestionText,
			Options:      q.Options,
		}
	}
	return view
}
