package handlers

import (
	"errors"
	"net/http"

	"github.com/lewis-Dimun/green-fashion-score/internal/models"
	"github.com/lewis-Dimun/green-fashion-score/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OptionsHandler struct {
	log     *zap.Logger
	options *repository.OptionRepo
}

func NewOptionsHandler(log *zap.Logger, options *repository.OptionRepo) *OptionsHandler {
	return &OptionsHandler{log: log, options: options}
}

func (h *OptionsHandler) List(c *gin.Context) {
	options, err := h.options.List(c.Request.Context(), c.Query("questionId"))
	if err != nil {
		h.log.Error("Failed to list options", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to load options")
		return
	}
	c.JSON(http.StatusOK, options)
}

type optionRequest struct {
	Label      string   `json:"label"`
	Points     *float64 `json:"points"`
	QuestionID string   `json:"questionId"`
}

func (h *OptionsHandler) Create(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Label == "" || req.Points == nil || req.QuestionID == "" {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	option := &models.Option{
		Label:      req.Label,
		Points:     *req.Points,
		QuestionID: req.QuestionID,
	}
	if err := h.options.Create(c.Request.Context(), option); err != nil {
		h.log.Error("Failed to create option", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to create option")
		return
	}
	c.JSON(http.StatusCreated, option)
}

func (h *OptionsHandler) Get(c *gin.Context) {
	option, err := h.options.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "Option not found")
			return
		}
		h.log.Error("Failed to load option", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to load option")
		return
	}
	c.JSON(http.StatusOK, option)
}

func (h *OptionsHandler) Update(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	changes := map[string]interface{}{}
	if req.Label != "" {
		changes["label"] = req.Label
	}
	if req.Points != nil {
		changes["points"] = *req.Points
	}
	if req.QuestionID != "" {
		changes["question_id"] = req.QuestionID
	}
	if len(changes) == 0 {
		jsonError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	option, err := h.options.Update(c.Request.Context(), c.Param("id"), changes)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			jsonError(c, http.StatusNotFound, "Option not found")
			return
		}
		h.log.Error("Failed to update option", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to update option")
		return
	}
	c.JSON(http.StatusOK, option)
}

func (h *OptionsHandler) Delete(c *gin.Context) {
	if err := h.options.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Error("Failed to delete option", zap.Error(err))
		jsonError(c, http.StatusInternalServerError, "Failed to delete option")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
