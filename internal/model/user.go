package model

import (
	"time"
)

// User is a registered account with lifetime quiz stats.
// The password is stored as plaintext, faithful to the storage format this
// service inherited; treating it as a secret is explicitly not attempted.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	CreatedAt      time.Time `json:"created_at"`
	TotalQuizzes   int       `json:"total_quizzes"`
	BestScore      int       `json:"best_score"`
	TotalCorrect   int       `json:"total_correct"`
	TotalQuestions int       `json:"total_questions"`
}

// SafeUser is the password-free identity view returned to clients and
// cached as the signed-in snapshot.
type SafeUser struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	TotalQuizzes   int       `json:"total_quizzes"`
	BestScore      int       `json:"best_score"`
	TotalCorrect   int       `json:"total_correct"`
	TotalQuestions int       `json:"total_questions"`
}

// Safe strips the password from a User.
func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		CreatedAt:      u.CreatedAt,
		TotalQuizzes:   u.TotalQuizzes,
		BestScore:      u.BestScore,
		TotalCorrect:   u.TotalCorrect,
		TotalQuestions: u.TotalQuestions,
	}
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=4,max=100"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,max=100"`
}
