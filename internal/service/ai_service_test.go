package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/rs/zerolog"
)

func newAIService(url string) *AIService {
	return NewAIService(&config.Config{
		GroqAPIURL: url,
		GroqAPIKey: "test-key",
		GroqModel:  "test-model",
		AITimeout:  5 * time.Second,
	}, zerolog.Nop())
}

func chatReply(t *testing.T, content string) string {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	})
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
	return string(body)
}

const validArray = `[
	{"question":"What is 2+2?","options":["3","4","5","6"],"correctAnswer":1,"explanation":"Basic addition."},
	{"question":"What is 3+3?","options":["5","6","7","8"],"correctAnswer":1,"explanation":"Basic addition."}
]`

func TestGenerate(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(chatReply(t, validArray)))
	}))
	defer srv.Close()

	svc := newAIService(srv.URL)
	questions, err := svc.Generate(context.Background(), "arithmetic", 2, model.DifficultyEasy)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].CorrectAnswer != 1 || questions[0].ID != 1 {
		t.Errorf("unexpected first question: %+v", questions[0])
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.Temperature != 0.5 {
		t.Errorf("easy temperature = %v, want 0.5", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 2 || !strings.Contains(gotReq.Messages[1].Content, "arithmetic") {
		t.Errorf("prompt does not mention the topic: %+v", gotReq.Messages)
	}
}

func TestGenerateStripsCodeFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply(t, "```json\n"+validArray+"\n```")))
	}))
	defer srv.Close()

	questions, err := newAIService(srv.URL).Generate(context.Background(), "t", 2, model.DifficultyMedium)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("got %d questions, want 2", len(questions))
	}
}

func TestGenerateNormalization(t *testing.T) {
	// Five options clamp to four; a missing correctAnswer defaults to 0;
	// a missing explanation gets a placeholder; short-option questions drop.
	content := `[
		{"question":"keep","options":["a","b","c","d","e"]},
		{"question":"drop","options":["a","b"]}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply(t, content)))
	}))
	defer srv.Close()

	questions, err := newAIService(srv.URL).Generate(context.Background(), "t", 2, model.DifficultyHard)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}
	q := questions[0]
	if len(q.Options) != model.OptionCount {
		t.Errorf("options not clamped: %v", q.Options)
	}
	if q.CorrectAnswer != 0 {
		t.Errorf("correct answer = %d, want default 0", q.CorrectAnswer)
	}
	if q.Explanation != "No explanation available." {
		t.Errorf("explanation = %q", q.Explanation)
	}
}

func TestGenerateProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached"}}`))
	}))
	defer srv.Close()

	_, err := newAIService(srv.URL).Generate(context.Background(), "t", 2, model.DifficultyMedium)
	if err == nil || !strings.Contains(err.Error(), "Rate limit reached") {
		t.Errorf("got %v, want provider message", err)
	}
}

func TestGenerateStatusErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	_, err := newAIService(srv.URL).Generate(context.Background(), "t", 2, model.DifficultyMedium)
	if err == nil || !strings.Contains(err.Error(), "status 500") {
		t.Errorf("got %v, want status error", err)
	}
}

func TestGenerateEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newAIService(srv.URL).Generate(context.Background(), "t", 2, model.DifficultyMedium)
	if err == nil || !strings.Contains(err.Error(), "no response from AI") {
		t.Errorf("got %v, want no-response error", err)
	}
}

func TestGenerateInvalidContent(t *testing.T) {
	for _, content := range []string{"not json at all", "[]", `{"question":"object not array"}`} {
		content := content
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(chatReply(t, content)))
		}))

		_, err := newAIService(srv.URL).Generate(context.Background(), "t", 2, model.DifficultyMedium)
		srv.Close()
		if err == nil || !strings.Contains(err.Error(), "invalid response format") {
			t.Errorf("content %q: got %v, want format error", content, err)
		}
	}
}
