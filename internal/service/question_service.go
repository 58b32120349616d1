package service

import (
	"context"
	"sort"

	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/brainspark/brainspark-backend/internal/repository"
	"github.com/rs/zerolog"
)

// QuestionService supplies question sets: built-in defaults merged with
// admin-authored sets. A non-empty authored set shadows the default for
// its subject.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

func NewQuestionService(questionRepo *repository.QuestionRepository, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// Subjects returns every subject name, built-in and authored, sorted.
func (s *QuestionService) Subjects(ctx context.Context) ([]string, error) {
	authored, err := s.questionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var subjects []string
	for name := range defaultQuestions {
		seen[name] = true
		subjects = append(subjects, name)
	}
	for name := range authored {
		if !seen[name] {
			subjects = append(subjects, name)
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}

// QuestionsForSubject returns the active question set for a subject:
// the authored set when present and non-empty, otherwise the built-in
// default. ErrNoQuestions when neither exists.
func (s *QuestionService) QuestionsForSubject(ctx context.Context, subject string) ([]model.Question, error) {
	authored, err := s.questionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if qs, ok := authored[subject]; ok && len(qs) > 0 {
		return qs, nil
	}
	if qs, ok := defaultQuestions[subject]; ok {
		return qs, nil
	}
	return nil, ErrNoQuestions
}

// All returns the merged subject-to-questions view, authored sets shadowing
// defaults.
func (s *QuestionService) All(ctx context.Context) (map[string][]model.Question, error) {
	authored, err := s.questionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	merged := make(map[string][]model.Question, len(defaultQuestions)+len(authored))
	for name, qs := range defaultQuestions {
		merged[name] = qs
	}
	for name, qs := range authored {
		merged[name] = qs
	}
	return merged, nil
}

// SaveSubject replaces a subject's authored question set. Question ids are
// assigned sequentially within the set.
func (s *QuestionService) SaveSubject(ctx context.Context, subject string, inputs []model.QuestionInput) error {
	questions := make([]model.Question, len(inputs))
	for i, in := range inputs {
		questions[i] = model.Question{
			ID:            i + 1,
			QuestionText:  in.QuestionText,
			Options:       in.Options,
			CorrectAnswer: in.CorrectAnswer,
			Explanation:   in.Explanation,
		}
	}

	if err := s.questionRepo.SaveSubject(ctx, subject, questions); err != nil {
		return err
	}
	s.log.Info().Str("subject", subject).Int("count", len(questions)).Msg("Question set saved")
	return nil
}

// DeleteSubject removes a subject's authored set.
func (s *QuestionService) DeleteSubject(ctx context.Context, subject string) error {
	if err := s.questionRepo.DeleteSubject(ctx, subject); err != nil {
		return err
	}
	s.log.Info().Str("subject", subject).Msg("Question set deleted")
	return nil
}
