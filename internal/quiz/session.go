package quiz

import (
	"errors"
	"math/rand"

	"github.com/brainspark/brainspark-backend/internal/model"
)

// Session state machine errors.
var (
	ErrNotStarted    = errors.New("quiz session has no questions loaded")
	ErrFinished      = errors.New("quiz session is already finished")
	ErrInvalidOption = errors.New("option index out of range")
)

// Session is the state of one quiz attempt. Transitions happen through the
// action methods below; the type itself knows nothing about timers,
// transport, or persistence.
type Session struct {
	Questions     []model.Question `json:"questions"`
	CurrentIndex  int              `json:"current_index"`
	Answers       model.AnswerMap  `json:"answers"`
	CurrentStreak int              `json:"current_streak"`
	MaxStreak     int              `json:"max_streak"`

	// Lifeline used-flags. Monotonic: once true, never reset within a session.
	FiftyFiftyUsed bool `json:"fifty_fifty_used"`
	ExtraTimeUsed  bool `json:"extra_time_used"`
	SkipUsed       bool `json:"skip_used"`

	// EliminatedOptions holds, per question index, the two wrong options
	// removed by the 50:50 lifeline. Never contains the correct index.
	EliminatedOptions map[int][]int `json:"eliminated_options"`

	// ExtraTimeAdded is true only for the question the extra-time lifeline
	// was applied to; cleared on every advance.
	ExtraTimeAdded bool `json:"extra_time_added"`

	Difficulty model.Difficulty `json:"difficulty"`
	Started    bool             `json:"started"`
	Finished   bool             `json:"finished"`
}

// NewSession returns a pre-start session at the given difficulty.
func NewSession(difficulty model.Difficulty) *Session {
	return &Session{
		Answers:           model.AnswerMap{},
		EliminatedOptions: map[int][]int{},
		Difficulty:        difficulty,
	}
}

// SetQuestions installs the question list and resets every per-session
// field: index 0, empty answers, zero streaks, all lifelines unused.
func (s *Session) SetQuestions(questions []model.Question) {
	s.Questions = questions
	s.CurrentIndex = 0
	s.Answers = model.AnswerMap{}
	s.CurrentStreak = 0
	s.MaxStreak = 0
	s.FiftyFiftyUsed = false
	s.ExtraTimeUsed = false
	s.SkipUsed = false
	s.EliminatedOptions = map[int][]int{}
	s.ExtraTimeAdded = false
	s.Started = true
	s.Finished = false
}

// active guards the actions that need a current question.
func (s *Session) active() error {
	if !s.Started || len(s.Questions) == 0 {
		return ErrNotStarted
	}
	if s.Finished || s.CurrentIndex >= len(s.Questions) {
		return ErrFinished
	}
	return nil
}

// SelectAnswer records option as the answer for the current question and
// recomputes the streak. Re-selecting overwrites the prior choice; the
// index does not advance.
func (s *Session) SelectAnswer(option int) error {
	if err := s.active(); err != nil {
		return err
	}
	if option < 0 || option >= model.OptionCount {
		return ErrInvalidOption
	}

	s.Answers[s.CurrentIndex] = model.OptionAnswer(option)
	if option == s.Questions[s.CurrentIndex].CorrectAnswer {
		s.CurrentStreak++
	} else {
		s.CurrentStreak = 0
	}
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}
	return nil
}

// NextQuestion advances to the next question, or finishes the quiz when
// the current question is the last one.
func (s *Session) NextQuestion() error {
	if err := s.active(); err != nil {
		return err
	}
	s.advance()
	return nil
}

func (s *Session) advance() {
	next := s.CurrentIndex + 1
	if next >= len(s.Questions) {
		s.Finished = true
		return
	}
	s.CurrentIndex = next
	s.ExtraTimeAdded = false
}

// Finish marks the quiz finished unconditionally.
func (s *Session) Finish() {
	s.Finished = true
}

// UseFiftyFifty eliminates two pseudorandom wrong options for the current
// question. A second invocation is a no-op; the correct option is never
// eliminated.
func (s *Session) UseFiftyFifty() error {
	if err := s.active(); err != nil {
		return err
	}
	if s.FiftyFiftyUsed {
		return nil
	}

	correct := s.Questions[s.CurrentIndex].CorrectAnswer
	wrong := make([]int, 0, model.OptionCount-1)
	for i := 0; i < model.OptionCount; i++ {
		if i != correct {
			wrong = append(wrong, i)
		}
	}
	rand.Shuffle(len(wrong), func(i, j int) {
		wrong[i], wrong[j] = wrong[j], wrong[i]
	})

	s.FiftyFiftyUsed = true
	s.EliminatedOptions[s.CurrentIndex] = wrong[:2]
	return nil
}

// UseExtraTime flags the current question for bonus countdown time.
// A second invocation is a no-op.
func (s *Session) UseExtraTime() error {
	if err := s.active(); err != nil {
		return err
	}
	if s.ExtraTimeUsed {
		return nil
	}
	s.ExtraTimeUsed = true
	s.ExtraTimeAdded = true
	return nil
}

// UseSkip records a skip for the current question and advances, finishing
// the quiz if this was the last question. Does not affect the streak.
// A second invocation is a no-op.
func (s *Session) UseSkip() error {
	if err := s.active(); err != nil {
		return err
	}
	if s.SkipUsed {
		return nil
	}
	s.SkipUsed = true
	s.Answers[s.CurrentIndex] = model.SkippedAnswer()
	s.advance()
	return nil
}

// Timeout records the countdown expiring on the current question, resets
// the streak, and advances. A timeout firing after an answer was already
// selected is stale: it reports false and changes nothing, since selecting
// an answer is meant to cancel the pending countdown. The bool lets the
// caller distinguish an applied timeout from the stale no-op.
func (s *Session) Timeout() (bool, error) {
	if err := s.active(); err != nil {
		return false, err
	}
	if a, ok := s.Answers[s.CurrentIndex]; ok {
		if _, answered := a.Option(); answered {
			return false, nil
		}
	}
	s.Answers[s.CurrentIndex] = model.TimedOutAnswer()
	s.CurrentStreak = 0
	s.advance()
	return true, nil
}

// Reset returns the session to its initial pre-start state.
func (s *Session) Reset() {
	*s = *NewSession(s.Difficulty)
}

// CurrentQuestion returns the question at the cursor, or false when the
// session is not active.
func (s *Session) CurrentQuestion() (model.Question, bool) {
	if s.active() != nil {
		return model.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}
