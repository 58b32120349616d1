package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/brainspark/brainspark-backend/internal/middleware"
	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/brainspark/brainspark-backend/internal/quiz"
	"github.com/brainspark/brainspark-backend/internal/response"
	"github.com/brainspark/brainspark-backend/internal/service"
	"github.com/brainspark/brainspark-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuizHandler struct {
	sessionService *service.SessionService
}

func NewQuizHandler(sessionService *service.SessionService) *QuizHandler {
	return &QuizHandler{sessionService: sessionService}
}

// StartSubject godoc
// POST /api/v1/quizzes
func (h *QuizHandler) StartSubject(c *gin.Context) {
	var req model.StartQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	req.Topic = ""

	h.start(c, req)
}

// StartAI godoc
// POST /api/v1/quizzes/ai
// Rate-limited: every request costs an upstream generation call.
func (h *QuizHandler) StartAI(c *gin.Context) {
	var req model.StartQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	req.Subject = ""

	h.start(c, req)
}

func (h *QuizHandler) start(c *gin.Context, req model.StartQuizRequest) {
	view, err := h.sessionService.Start(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubjectOrTopicRequired):
			response.Fail(c, http.StatusBadRequest, response.ErrSubjectOrTopic)
		case errors.Is(err, service.ErrNoQuestions):
			response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
		case strings.HasPrefix(err.Error(), "failed to generate questions"):
			response.FailWithMessage(c, http.StatusBadGateway, response.ErrAIGeneration, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"session": view})
}

// Get godoc
// GET /api/v1/quizzes/:id
func (h *QuizHandler) Get(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.Get(id)
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": view})
}

// Answer godoc
// POST /api/v1/quizzes/:id/answer
func (h *QuizHandler) Answer(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.sessionService.Answer(id, *req.Option)
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": view})
}

// Next godoc
// POST /api/v1/quizzes/:id/next
func (h *QuizHandler) Next(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.Next(id)
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": view})
}

// Finish godoc
// POST /api/v1/quizzes/:id/finish
func (h *QuizHandler) Finish(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.Finish(id)
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": view})
}

// Lifeline godoc
// POST /api/v1/quizzes/:id/lifelines/:kind
func (h *QuizHandler) Lifeline(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	view, err := h.sessionService.UseLifeline(id, c.Param("kind"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownLifeline) {
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownLifeline)
			return
		}
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"session": view})
}

// Reset godoc
// DELETE /api/v1/quizzes/:id
func (h *QuizHandler) Reset(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.sessionService.Reset(id); err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "session discarded"})
}

// Result godoc
// GET /api/v1/quizzes/:id/result
func (h *QuizHandler) Result(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	summary, result, err := h.sessionService.Result(c.Request.Context(), id)
	if err != nil {
		h.failSession(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"score": summary, "result": result})
}

func (h *QuizHandler) sessionID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return "", false
	}
	return id, true
}

func (h *QuizHandler) failSession(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrQuizNotFinished):
		response.Fail(c, http.StatusConflict, response.ErrQuizNotFinished)
	case errors.Is(err, quiz.ErrFinished):
		response.Fail(c, http.StatusConflict, response.ErrQuizFinished)
	case errors.Is(err, quiz.ErrInvalidOption):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidOption)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
