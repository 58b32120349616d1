package handler

import (
	"net/http"
	"strconv"

	"github.com/brainspark/brainspark-backend/internal/model"
	"github.com/brainspark/brainspark-backend/internal/repository"
	"github.com/brainspark/brainspark-backend/internal/response"
	"github.com/brainspark/brainspark-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

const themeSetting = "darkMode"

type SettingHandler struct {
	settingRepo *repository.SettingRepository
}

func NewSettingHandler(settingRepo *repository.SettingRepository) *SettingHandler {
	return &SettingHandler{settingRepo: settingRepo}
}

// GetTheme godoc
// GET /api/v1/settings/theme
func (h *SettingHandler) GetTheme(c *gin.Context) {
	value, ok, err := h.settingRepo.Get(c.Request.Context(), themeSetting)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	darkMode := false
	if ok {
		darkMode, _ = strconv.ParseBool(value)
	}
	response.Success(c, http.StatusOK, gin.H{"dark_mode": darkMode})
}

// SetTheme godoc
// PUT /api/v1/settings/theme
func (h *SettingHandler) SetTheme(c *gin.Context) {
	var req model.ThemeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.settingRepo.Set(c.Request.Context(), themeSetting, strconv.FormatBool(*req.DarkMode)); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"dark_mode": *req.DarkMode})
}
