package handler

import (
	"net/http"

	"github.com/brainspark/brainspark-backend/internal/middleware"
	"github.com/brainspark/brainspark-backend/internal/repository"
	"github.com/brainspark/brainspark-backend/internal/response"
	"github.com/brainspark/brainspark-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardRepo *repository.LeaderboardRepository
	accountService  *service.AccountService
}

func NewLeaderboardHandler(leaderboardRepo *repository.LeaderboardRepository, accountService *service.AccountService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardRepo: leaderboardRepo, accountService: accountService}
}

// Leaderboard godoc
// GET /api/v1/leaderboard
func (h *LeaderboardHandler) Leaderboard(c *gin.Context) {
	entries, err := h.leaderboardRepo.GetAll(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"leaderboard": entries})
}

// History godoc
// GET /api/v1/history
func (h *LeaderboardHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	entries, err := h.accountService.History(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"history": entries})
}

// HistoryEntry godoc
// GET /api/v1/history/:id
// Returns one result with its full question/answer snapshot for review.
func (h *LeaderboardHandler) HistoryEntry(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	entries, err := h.accountService.History(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	id := c.Param("id")
	for _, entry := range entries {
		if entry.ID == id {
			response.Success(c, http.StatusOK, gin.H{"entry": entry})
			return
		}
	}
	response.Fail(c, http.StatusNotFound, response.ErrNotFound)
}
