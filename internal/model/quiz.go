package model

// StartQuizRequest begins a new session from a built-in subject or an
// AI-generated topic. Exactly one of subject or topic must be set.
type StartQuizRequest struct {
	Subject    string `json:"subject" binding:"omitempty,max=100"`
	Topic      string `json:"topic" binding:"omitempty,max=200"`
	Count      int    `json:"count" binding:"omitempty,min=1,max=20"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// AnswerRequest records an option choice for the current question.
type AnswerRequest struct {
	Option *int `json:"option" binding:"required,min=0,max=3"`
}

// ThemeRequest sets the persisted UI theme preference.
type ThemeRequest struct {
	DarkMode *bool `json:"dark_mode" binding:"required"`
}
