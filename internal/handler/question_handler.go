package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/brainspark/brainspark-backend/internal/response"
	"github.com/brainspark/brainspark-backend/internal/service"
	"github.com/brainspark/brainspark-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *service.QuestionService
}

func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// Subjects godoc
// GET /api/v1/subjects
func (h *QuestionHandler) Subjects(c *gin.Context) {
	subjects, err := h.questionService.Subjects(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// All godoc
// GET /api/v1/admin/questions
// Full merged view including correct answers; auth-guarded.
func (h *QuestionHandler) All(c *gin.Context) {
	sets, err := h.questionService.All(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"questions": sets})
}

// SubjectQuestions godoc
// GET /api/v1/admin/questions/:name
func (h *QuestionHandler) SubjectQuestions(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	questions, err := h.questionService.QuestionsForSubject(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			response.Fail(c, http.StatusNotFound, response.ErrNoQuestions)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subject": name, "questions": questions})
}

// SaveSubject godoc
// PUT /api/v1/admin/questions/:name
func (h *QuestionHandler) SaveSubject(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SaveQuestionsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.questionService.SaveSubject(c.Request.Context(), name, req.Questions); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "question set saved"})
}

// DeleteSubject godoc
// DELETE /api/v1/admin/questions/:name
func (h *QuestionHandler) DeleteSubject(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.DeleteSubject(c.Request.Context(), name); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "question set deleted"})
}
