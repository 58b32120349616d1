package model

// Difficulty enumerates quiz difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// OptionCount is the fixed number of options every question carries.
const OptionCount = 4

// Question represents a single multiple-choice question.
// Immutable once loaded into a session.
type Question struct {
	ID            int      `json:"id"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuestionInput is the payload for one authored question.
type QuestionInput struct {
	QuestionText  string   `json:"question_text" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,len=4,dive,required,max=500"`
	CorrectAnswer int      `json:"correct_answer" binding:"min=0,max=3"`
	Explanation   string   `json:"explanation" binding:"max=2000"`
}

// SaveQuestionsRequest is the payload for replacing a subject's question set.
type SaveQuestionsRequest struct {
	Questions []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}
