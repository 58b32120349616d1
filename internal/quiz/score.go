package quiz

import (
	"math"

	"github.com/brainspark/brainspark-backend/internal/model"
)

// Score classifies every question into exactly one of correct, wrong,
// unanswered, or skipped and aggregates the counts. It is a pure function:
// both the results view and the persistence writers derive from it, so it
// must stay deterministic and side-effect-free.
//
// Classification rules: a skip sentinel counts as skipped; a missing entry
// or a timeout counts as unanswered; a recorded option matching the
// question's correct index counts as correct; anything else is wrong.
func Score(questions []model.Question, answers model.AnswerMap, maxStreak int) model.ScoreSummary {
	summary := model.ScoreSummary{
		Total:     len(questions),
		MaxStreak: maxStreak,
	}

	for i, q := range questions {
		answer, ok := answers[i]
		switch {
		case !ok || answer.IsTimedOut():
			summary.Unanswered++
		case answer.IsSkipped():
			summary.Skipped++
		default:
			option, _ := answer.Option()
			if option == q.CorrectAnswer {
				summary.Correct++
			} else {
				summary.Wrong++
			}
		}
	}

	if summary.Total > 0 {
		summary.Percentage = int(math.Round(float64(summary.Correct) / float64(summary.Total) * 100))
	}
	return summary
}

// ScoreSession derives the summary for a session's own questions/answers.
func ScoreSession(s *Session) model.ScoreSummary {
	return Score(s.Questions, s.Answers, s.MaxStreak)
}
