package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/database"
	"github.com/brainspark/brainspark-backend/internal/handler"
	"github.com/brainspark/brainspark-backend/internal/logger"
	"github.com/brainspark/brainspark-backend/internal/repository"
	"github.com/brainspark/brainspark-backend/internal/router"
	"github.com/brainspark/brainspark-backend/internal/service"
	"github.com/brainspark/brainspark-backend/internal/validator"
	"github.com/brainspark/brainspark-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting BrainSpark Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(rdb)
	leaderboardRepo := repository.NewLeaderboardRepository(rdb)
	historyRepo := repository.NewHistoryRepository(rdb)
	questionRepo := repository.NewQuestionRepository(rdb)
	settingRepo := repository.NewSettingRepository(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	accountService := service.NewAccountService(cfg, userRepo, historyRepo, log)
	questionService := service.NewQuestionService(questionRepo, log)
	aiService := service.NewAIService(cfg, log)
	sessionService := service.NewSessionService(cfg, questionService, aiService, accountService, leaderboardRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(accountService),
		Quiz:        handler.NewQuizHandler(sessionService),
		Question:    handler.NewQuestionHandler(questionService),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardRepo, accountService),
		Setting:     handler.NewSettingHandler(settingRepo),
		WS:          handler.NewWSHandler(sessionService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	reaper := worker.NewSessionReaper(sessionService, cfg.SessionIdleTTL, log)
	go reaper.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(accountService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
