package model

import (
	"time"
)

// ScoreSummary is the derived outcome of a finished session.
type ScoreSummary struct {
	Correct    int `json:"correct"`
	Wrong      int `json:"wrong"`
	Unanswered int `json:"unanswered"`
	Skipped    int `json:"skipped"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
	MaxStreak  int `json:"max_streak"`
}

// QuizResult is one completed quiz attempt. The same shape serves the
// global leaderboard (capped at 20) and per-user history (capped at 50);
// history entries additionally carry the full question/answer snapshot
// for later review.
type QuizResult struct {
	ID         string     `json:"id,omitempty"`
	Subject    string     `json:"subject"`
	IsAI       bool       `json:"is_ai"`
	Difficulty Difficulty `json:"difficulty"`
	Percentage int        `json:"percentage"`
	Correct    int        `json:"correct"`
	Total      int        `json:"total"`
	MaxStreak  int        `json:"max_streak"`
	Date       time.Time  `json:"date"`
	Questions  []Question `json:"questions,omitempty"`
	Answers    AnswerMap  `json:"answers,omitempty"`
}

// LeaderboardMax and HistoryMax cap the persisted logs, most-recent-first.
const (
	LeaderboardMax = 20
	HistoryMax     = 50
)
