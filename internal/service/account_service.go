package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/brainspark/brainspark-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Claims extends JWT standard claims with the account identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

// AccountService registers and authenticates users and aggregates their
// lifetime quiz stats. Passwords are stored and compared as plaintext,
// matching the storage format this service inherited.
type AccountService struct {
	cfg         *config.Config
	userRepo    *repository.UserRepository
	historyRepo *repository.HistoryRepository
	log         zerolog.Logger
}

func NewAccountService(cfg *config.Config, userRepo *repository.UserRepository, historyRepo *repository.HistoryRepository, log zerolog.Logger) *AccountService {
	return &AccountService{
		cfg:         cfg,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		log:         log.With().Str("component", "account_service").Logger(),
	}
}

// normalizeEmail is the case-insensitive uniqueness key for accounts.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with zeroed stats and establishes it as
// the signed-in identity. Fails with ErrDuplicateEmail when the normalized
// email is already taken; the existing user is never overwritten.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (model.SafeUser, string, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return model.SafeUser{}, "", err
	}

	normalized := normalizeEmail(email)
	for _, u := range users {
		if normalizeEmail(u.Email) == normalized {
			return model.SafeUser{}, "", ErrDuplicateEmail
		}
	}

	user := model.User{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     normalized,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	users = append(users, user)
	if err := s.userRepo.SaveAll(ctx, users); err != nil {
		return model.SafeUser{}, "", err
	}

	safe := user.Safe()
	if err := s.userRepo.SetCurrent(ctx, safe); err != nil {
		return model.SafeUser{}, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return model.SafeUser{}, "", err
	}

	s.log.Info().Str("user_id", user.ID).Msg("User registered")
	return safe, token, nil
}

// Login authenticates by normalized email and exact password and
// establishes the matching identity.
func (s *AccountService) Login(ctx context.Context, email, password string) (model.SafeUser, string, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return model.SafeUser{}, "", err
	}

	normalized := normalizeEmail(email)
	for _, u := range users {
		if normalizeEmail(u.Email) == normalized && u.Password == password {
			safe := u.Safe()
			if err := s.userRepo.SetCurrent(ctx, safe); err != nil {
				return model.SafeUser{}, "", err
			}
			token, err := s.generateToken(u)
			if err != nil {
				return model.SafeUser{}, "", err
			}
			return safe, token, nil
		}
	}
	return model.SafeUser{}, "", ErrInvalidCredentials
}

// Logout clears the persisted signed-in identity snapshot.
func (s *AccountService) Logout(ctx context.Context) error {
	return s.userRepo.ClearCurrent(ctx)
}

// GetByID returns the password-free view of a user.
func (s *AccountService) GetByID(ctx context.Context, userID string) (model.SafeUser, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return model.SafeUser{}, err
	}
	for _, u := range users {
		if u.ID == userID {
			return u.Safe(), nil
		}
	}
	return model.SafeUser{}, ErrUserNotFound
}

// UpdateStats folds a finished quiz into the user's lifetime stats,
// refreshes the identity snapshot, and prepends the result to the user's
// history log.
func (s *AccountService) UpdateStats(ctx context.Context, userID string, result model.QuizResult) error {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range users {
		if users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrUserNotFound
	}

	users[idx].TotalQuizzes++
	users[idx].TotalCorrect += result.Correct
	users[idx].TotalQuestions += result.Total
	if result.Percentage > users[idx].BestScore {
		users[idx].BestScore = result.Percentage
	}

	if err := s.userRepo.SaveAll(ctx, users); err != nil {
		return err
	}
	if err := s.userRepo.SetCurrent(ctx, users[idx].Safe()); err != nil {
		return err
	}
	return s.historyRepo.Add(ctx, userID, result)
}

// History returns the user's quiz history, most recent first.
func (s *AccountService) History(ctx context.Context, userID string) ([]model.QuizResult, error) {
	return s.historyRepo.GetByUser(ctx, userID)
}

// generateToken signs an identity-bearing JWT for the API.
func (s *AccountService) generateToken(user model.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: user.ID,
		Name:   user.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a bearer token, returning its claims.
func (s *AccountService) ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
