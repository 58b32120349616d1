package router

import (
	"net/http"
	"time"

	"github.com/brainspark/brainspark-backend/internal/config"
	"github.com/brainspark/brainspark-backend/internal/handler"
	"github.com/brainspark/brainspark-backend/internal/middleware"
	"github.com/brainspark/brainspark-backend/internal/response"
	"github.com/brainspark/brainspark-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Quiz        *handler.QuizHandler
	Question    *handler.QuestionHandler
	Leaderboard *handler.LeaderboardHandler
	Setting     *handler.SettingHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	accountService *service.AccountService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		auth.POST("/logout", middleware.RequireAuth(accountService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(accountService), handlers.Auth.Me)
	}

	// ─── 2. Quiz Group (Anonymous play allowed) ────────────────────────
	// AI generation gets its own rate-limited start route.
	aiLimiter := middleware.NewRateLimiter(cfg.AIRatePerMinute, time.Minute)

	quizAPI := router.Group("/api/v1/quizzes")
	quizAPI.Use(middleware.OptionalAuth(accountService))
	{
		quizAPI.POST("", handlers.Quiz.StartSubject)
		quizAPI.POST("/ai", aiLimiter.Middleware(), handlers.Quiz.StartAI)

		quizAPI.GET("/:id", handlers.Quiz.Get)
		quizAPI.POST("/:id/answer", handlers.Quiz.Answer)
		quizAPI.POST("/:id/next", handlers.Quiz.Next)
		quizAPI.POST("/:id/finish", handlers.Quiz.Finish)
		quizAPI.POST("/:id/lifelines/:kind", handlers.Quiz.Lifeline)
		quizAPI.GET("/:id/result", handlers.Quiz.Result)
		quizAPI.DELETE("/:id", handlers.Quiz.Reset)
	}

	// ─── 3. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/quizzes/:session_id/timer", handlers.WS.TimerStream)
	}

	// ─── 4. Public Content ─────────────────────────────────────────────
	publicAPI := router.Group("/api/v1")
	{
		publicAPI.GET("/subjects", handlers.Question.Subjects)
		publicAPI.GET("/leaderboard", handlers.Leaderboard.Leaderboard)
		publicAPI.GET("/settings/theme", handlers.Setting.GetTheme)
		publicAPI.PUT("/settings/theme", handlers.Setting.SetTheme)
	}

	// ─── 5. Account Group (JWT) ────────────────────────────────────────
	accountAPI := router.Group("/api/v1")
	accountAPI.Use(middleware.RequireAuth(accountService))
	{
		accountAPI.GET("/history", handlers.Leaderboard.History)
		accountAPI.GET("/history/:id", handlers.Leaderboard.HistoryEntry)
	}

	// ─── 6. Admin Group (JWT, question authoring) ──────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAuth(accountService))
	{
		adminAPI.GET("/questions", handlers.Question.All)
		adminAPI.GET("/questions/:name", handlers.Question.SubjectQuestions)
		adminAPI.PUT("/questions/:name", handlers.Question.SaveSubject)
		adminAPI.DELETE("/questions/:name", handlers.Question.DeleteSubject)
	}

	return router
}
