package quiz

import (
	"reflect"
	"testing"

	"github.com/brainspark/brainspark-backend/internal/model"
)

func TestScoreClassification(t *testing.T) {
	questions := testQuestions(10)
	answers := model.AnswerMap{
		0: model.OptionAnswer(questions[0].CorrectAnswer),
		1: model.OptionAnswer((questions[1].CorrectAnswer + 1) % model.OptionCount),
		2: model.SkippedAnswer(),
		3: model.TimedOutAnswer(),
	}

	got := Score(questions, answers, 1)
	want := model.ScoreSummary{
		Correct:    1,
		Wrong:      1,
		Unanswered: 7,
		Skipped:    1,
		Total:      10,
		Percentage: 10,
		MaxStreak:  1,
	}
	if got != want {
		t.Fatalf("score mismatch:\n got  %+v\n want %+v", got, want)
	}
}

func TestScoreEmptyQuestionList(t *testing.T) {
	got := Score(nil, model.AnswerMap{}, 0)
	if got.Total != 0 || got.Percentage != 0 {
		t.Fatalf("expected zero total and percentage, got %+v", got)
	}
}

func TestScorePercentageRounding(t *testing.T) {
	questions := testQuestions(3)
	answers := model.AnswerMap{
		0: model.OptionAnswer(questions[0].CorrectAnswer),
		1: model.OptionAnswer(questions[1].CorrectAnswer),
	}

	got := Score(questions, answers, 2)
	// 2/3 = 66.67%, rounds to 67.
	if got.Percentage != 67 {
		t.Fatalf("expected percentage 67, got %d", got.Percentage)
	}
}

func TestScoreIsPure(t *testing.T) {
	questions := testQuestions(6)
	answers := model.AnswerMap{
		0: model.OptionAnswer(2),
		3: model.SkippedAnswer(),
		5: model.TimedOutAnswer(),
	}

	first := Score(questions, answers, 3)
	for i := 0; i < 10; i++ {
		if again := Score(questions, answers, 3); again != first {
			t.Fatalf("score not deterministic: %+v != %+v", again, first)
		}
	}
	// The inputs must come back untouched.
	if len(answers) != 3 {
		t.Fatalf("Score mutated the answer map: %d entries", len(answers))
	}
}

func TestScoreSessionMatchesDirectCall(t *testing.T) {
	s := startedSession(t, 4)
	if err := s.SelectAnswer(s.Questions[0].CorrectAnswer); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := s.NextQuestion(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if _, err := s.Timeout(); err != nil {
		t.Fatalf("timeout: %v", err)
	}

	direct := Score(s.Questions, s.Answers, s.MaxStreak)
	viaSession := ScoreSession(s)
	if !reflect.DeepEqual(direct, viaSession) {
		t.Fatalf("ScoreSession mismatch: %+v != %+v", viaSession, direct)
	}
}
