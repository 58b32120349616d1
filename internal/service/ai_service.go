package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/rs/zerolog"
)

// difficultyInstructions tune the generation prompt per level.
var difficultyInstructions = map[model.Difficulty]string{
	model.DifficultyEasy:   "Make the questions beginner-friendly and straightforward. Focus on basic concepts and definitions.",
	model.DifficultyMedium: "Make the questions moderately challenging. Include application-based and conceptual questions.",
	model.DifficultyHard:   "Make the questions very challenging. Include tricky edge cases, advanced concepts, and questions that require deep understanding.",
}

// AIService generates question sets from an OpenAI-compatible
// chat-completions endpoint. Its output is untrusted input: every question
// passes through a normalization boundary before entering a session.
type AIService struct {
	cfg    *config.Config
	client *http.Client
	log    zerolog.Logger
}

func NewAIService(cfg *config.Config, log zerolog.Logger) *AIService {
	return &AIService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.AITimeout},
		log:    log.With().Str("component", "ai_service").Logger(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// aiQuestion is the wire shape questions come back in.
type aiQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Generate requests count questions about topic at the given difficulty.
// Every failure mode (network, non-2xx, empty or unparseable body,
// non-array result) surfaces as a descriptive error with no partial result.
func (s *AIService) Generate(ctx context.Context, topic string, count int, difficulty model.Difficulty) ([]model.Question, error) {
	payload := chatRequest{
		Model: s.cfg.GroqModel,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a quiz question generator. Always respond with valid JSON only, no markdown formatting.",
			},
			{
				Role:    "user",
				Content: buildPrompt(topic, count, difficulty),
			},
		},
		Temperature: temperatureFor(difficulty),
		MaxTokens:   6000,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.GroqAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.GroqAPIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read generation response: %w", err)
	}

	var parsed chatResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Prefer the provider's own error message when it parses.
		if json.Unmarshal(raw, &parsed) == nil && parsed.Error != nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("failed to generate questions: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("failed to generate questions: API request failed with status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("failed to generate questions: no response from AI")
	}

	questions, err := normalizeQuestions(parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("topic", topic).Int("count", len(questions)).Msg("AI questions generated")
	return questions, nil
}

func buildPrompt(topic string, count int, difficulty model.Difficulty) string {
	return fmt.Sprintf(`Generate exactly %d multiple choice quiz questions about "%s".

Difficulty level: %s
%s

IMPORTANT: Return ONLY a valid JSON array, no markdown, no code fences, no explanation. Each element must be an object with these exact fields:
- "question": the question text (string)
- "options": an array of exactly 4 option strings
- "correctAnswer": the index (0-3) of the correct option
- "explanation": a brief 1-2 sentence explanation of WHY the correct answer is right

Example format:
[{"question":"What is X?","options":["A","B","C","D"],"correctAnswer":0,"explanation":"A is correct because..."}]

Make the questions educational, progressively harder within the %s range, and ensure all 4 options are plausible. The correct answer must be accurate. The explanation should be clear and educational.`,
		count, topic, strings.ToUpper(string(difficulty)), difficultyInstructions[difficulty], difficulty)
}

func temperatureFor(difficulty model.Difficulty) float64 {
	switch difficulty {
	case model.DifficultyEasy:
		return 0.5
	case model.DifficultyHard:
		return 0.8
	default:
		return 0.7
	}
}

// normalizeQuestions validates and coerces the model's output into
// Question values: code fences stripped, options clamped to exactly 4,
// a missing correctness index defaulted to 0, a missing explanation
// replaced with a placeholder. Questions with fewer than 4 options are
// dropped rather than padded.
func normalizeQuestions(content string) ([]model.Question, error) {
	cleaned := strings.TrimSpace(content)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var raw []aiQuestion
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("failed to generate questions: invalid response format from AI")
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("failed to generate questions: invalid response format from AI")
	}

	questions := make([]model.Question, 0, len(raw))
	for _, q := range raw {
		if q.Question == "" || len(q.Options) < model.OptionCount {
			continue
		}

		correct := 0
		if q.CorrectAnswer != nil && *q.CorrectAnswer >= 0 && *q.CorrectAnswer < model.OptionCount {
			correct = *q.CorrectAnswer
		}
		explanation := q.Explanation
		if explanation == "" {
			explanation = "No explanation available."
		}

		questions = append(questions, model.Question{
			ID:            len(questions) + 1,
			QuestionText:  q.Question,
			Options:       q.Options[:model.OptionCount],
			CorrectAnswer: correct,
			Explanation:   explanation,
		})
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("failed to generate questions: invalid response format from AI")
	}
	return questions, nil
}
